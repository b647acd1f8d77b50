package service

import (
	"errors"

	"github.com/Harishez/data-voyage-visualizer/internal/domain"
	"github.com/Harishez/data-voyage-visualizer/internal/pipeline"
	"github.com/Harishez/data-voyage-visualizer/internal/session"
)

// ErrInvalidEvent is returned when a submitted event cannot be published as-is
var ErrInvalidEvent = errors.New("invalid event")

// IsValidationError reports whether err was caused by the caller's input
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidEvent) ||
		errors.Is(err, pipeline.ErrInvalidConfig) ||
		errors.Is(err, session.ErrDuplicateMetric) ||
		errors.Is(err, domain.ErrUnknownField)
}
