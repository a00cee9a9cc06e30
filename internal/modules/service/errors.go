package service

import (
	"errors"

	"github.com/schema-studio/schema-studio/internal/modules/repo"
)

// Service layer errors. Handlers classify these into HTTP statuses:
// not-found errors map to 404, validation errors to 400, everything else
// (upstream and extraction failures) to 500.
var (
	ErrSessionNotFound = repo.ErrSessionNotFound
	ErrTableNotFound   = errors.New("table not found in detailed design")

	ErrDescriptionRequired = errors.New("project description is required")
	ErrCredentialRequired  = errors.New("API key is required and no fallback key is configured")
	ErrDesignNotGenerated  = errors.New("detailed design not generated yet")
	ErrNoSchemasGenerated  = errors.New("no table schemas generated yet, generate table schemas first")
	ErrMalformedCompletion = errors.New("completion payload is missing required fields")
)
