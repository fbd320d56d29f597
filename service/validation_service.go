package service

import (
	"context"

	"github.com/lintai-dev/lintai/domain"
	"github.com/lintai-dev/lintai/internal/engine"
)

// ValidationServiceImpl implements the ValidationService interface
type ValidationServiceImpl struct{}

// NewValidationService creates a new validation service
func NewValidationService() *ValidationServiceImpl {
	return &ValidationServiceImpl{}
}

// Validate scores the request's output against its assertions. The call is
// a pure computation: identical requests yield identical reports, and the
// context exists only for interface symmetry with callers that batch.
func (s *ValidationServiceImpl) Validate(ctx context.Context, req domain.ValidationRequest) (*domain.ValidationReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return engine.Score(req.Assertions, req.Output, req.Threshold), nil
}
