package swagger

import _ "embed"

// ContentType is the media type the document is served with.
const ContentType = "application/yaml"

// Document is the OpenAPI description of the shortlist API.
//
//go:embed openapi.yaml
var Document []byte
