package transform

import (
	"fmt"

	"github.com/rgehrsitz/pajak/internal/domain"
)

// InputTransform is one what-if change to a taxpayer's calculation input.
// Transforms compose: each receives the output of the previous one.
type InputTransform interface {
	// Apply returns a modified copy of base
	Apply(base domain.AnnualInput) (domain.AnnualInput, error)

	// Name returns a short identifier such as "raise_salary"
	Name() string

	// Description returns a human-readable description of the change
	Description() string

	// Validate checks the transform parameters against base without applying it
	Validate(base domain.AnnualInput) error
}

// ApplyTransforms applies transforms in order to base. AnnualInput holds no
// references, so base itself is never modified.
func ApplyTransforms(base domain.AnnualInput, transforms []InputTransform) (domain.AnnualInput, error) {
	current := base

	for i, transform := range transforms {
		if transform == nil {
			return domain.AnnualInput{}, fmt.Errorf("transform at index %d is nil", i)
		}

		if err := transform.Validate(current); err != nil {
			return domain.AnnualInput{}, fmt.Errorf("transform %s validation failed: %w", transform.Name(), err)
		}

		next, err := transform.Apply(current)
		if err != nil {
			return domain.AnnualInput{}, fmt.Errorf("transform %s failed: %w", transform.Name(), err)
		}

		current = next
	}

	return current, nil
}

// TransformError represents an error that occurred during transformation.
type TransformError struct {
	TransformName string
	Operation     string
	Reason        string
	Err           error
}

func (e *TransformError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transform %s (%s): %s: %v", e.TransformName, e.Operation, e.Reason, e.Err)
	}
	return fmt.Sprintf("transform %s (%s): %s", e.TransformName, e.Operation, e.Reason)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// NewTransformError creates a new TransformError.
func NewTransformError(transformName, operation, reason string, err error) error {
	return &TransformError{
		TransformName: transformName,
		Operation:     operation,
		Reason:        reason,
		Err:           err,
	}
}
