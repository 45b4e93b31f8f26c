package config

import "errors"

var (
	// ErrInvalidConfig reports a loaded configuration that fails validation.
	ErrInvalidConfig = errors.New("invalid scout config")
	// ErrLoadConfig reports a config file or environment that could not be read.
	ErrLoadConfig = errors.New("load scout config")
)
