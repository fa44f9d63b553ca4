package transform

import (
	"fmt"

	"github.com/rgehrsitz/pajak/internal/domain"
)

// SetMaritalStatus changes the PTKP marital status
type SetMaritalStatus struct {
	Status domain.MaritalStatus
}

func (t *SetMaritalStatus) Apply(base domain.AnnualInput) (domain.AnnualInput, error) {
	status, err := domain.ParseMaritalStatus(string(t.Status))
	if err != nil {
		return domain.AnnualInput{}, NewTransformError(t.Name(), "apply", "invalid status", err)
	}
	base.Taxpayer.MaritalStatus = status
	return base, nil
}

func (t *SetMaritalStatus) Name() string { return "set_status" }

func (t *SetMaritalStatus) Description() string {
	return fmt.Sprintf("Change marital status to %s", t.Status)
}

func (t *SetMaritalStatus) Validate(base domain.AnnualInput) error {
	if _, err := domain.ParseMaritalStatus(string(t.Status)); err != nil {
		return NewTransformError(t.Name(), "validate", "invalid status", err)
	}
	return nil
}

// AddDependents adjusts the dependent count by Delta. The count stays
// uncapped here; the PTKP lookup caps it at three.
type AddDependents struct {
	Delta int
}

func (t *AddDependents) Apply(base domain.AnnualInput) (domain.AnnualInput, error) {
	base.Taxpayer.Dependents += t.Delta
	return base, nil
}

func (t *AddDependents) Name() string { return "add_dependents" }

func (t *AddDependents) Description() string {
	if t.Delta == 1 {
		return "Add one dependent"
	}
	return fmt.Sprintf("Change dependents by %+d", t.Delta)
}

func (t *AddDependents) Validate(base domain.AnnualInput) error {
	if base.Taxpayer.Dependents+t.Delta < 0 {
		return NewTransformError(t.Name(), "validate",
			fmt.Sprintf("taxpayer has only %d dependents", base.Taxpayer.Dependents), nil)
	}
	return nil
}

// SetNPWP records whether the taxpayer holds a tax ID
type SetNPWP struct {
	Has bool
}

func (t *SetNPWP) Apply(base domain.AnnualInput) (domain.AnnualInput, error) {
	base.Taxpayer.HasNPWP = t.Has
	return base, nil
}

func (t *SetNPWP) Name() string { return "set_npwp" }

func (t *SetNPWP) Description() string {
	if t.Has {
		return "Register for an NPWP"
	}
	return "Without NPWP (20% surcharge)"
}

func (t *SetNPWP) Validate(base domain.AnnualInput) error { return nil }

// SetMethod switches the withholding method
type SetMethod struct {
	Method domain.Method
}

func (t *SetMethod) Apply(base domain.AnnualInput) (domain.AnnualInput, error) {
	method, err := domain.ParseMethod(string(t.Method))
	if err != nil {
		return domain.AnnualInput{}, NewTransformError(t.Name(), "apply", "invalid method", err)
	}
	base.Method = method
	return base, nil
}

func (t *SetMethod) Name() string { return "set_method" }

func (t *SetMethod) Description() string {
	return fmt.Sprintf("Withhold using the %s method", t.Method)
}

func (t *SetMethod) Validate(base domain.AnnualInput) error {
	if _, err := domain.ParseMethod(string(t.Method)); err != nil {
		return NewTransformError(t.Name(), "validate", "invalid method", err)
	}
	return nil
}
