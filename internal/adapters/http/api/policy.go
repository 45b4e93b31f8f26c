package api

import (
	"net/http"

	"github.com/okian/scout/internal/domain/policy"
)

// PolicyProvider exposes the policy the shortlist was scored with.
type PolicyProvider interface {
	Policy() policy.ScoringPolicy
}

// PolicyHandler handles policy requests.
type PolicyHandler struct {
	provider PolicyProvider
}

// NewPolicyHandler creates a new policy handler.
func NewPolicyHandler(provider PolicyProvider) *PolicyHandler {
	return &PolicyHandler{provider: provider}
}

// HandleGetPolicy handles GET /policy requests.
func (h *PolicyHandler) HandleGetPolicy(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.provider.Policy())
}
