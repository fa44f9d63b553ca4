package transform

import (
	"errors"
	"testing"

	"github.com/rgehrsitz/pajak/internal/domain"
	"github.com/shopspring/decimal"
)

func createTestInput() domain.AnnualInput {
	return domain.AnnualInput{
		Taxpayer:     domain.Taxpayer{Name: "Budi", MaritalStatus: domain.StatusSingle, HasNPWP: true},
		Compensation: domain.Compensation{Salary: decimal.NewFromInt(10_050_000)},
		Method:       domain.MethodGross,
	}
}

func TestApplyTransforms_EmptyTransforms(t *testing.T) {
	base := createTestInput()

	result, err := ApplyTransforms(base, nil)
	if err != nil {
		t.Fatalf("Expected no error for empty transforms, got: %v", err)
	}
	if result != base {
		t.Error("Expected an unchanged copy of the base input")
	}
}

func TestApplyTransforms_NilTransform(t *testing.T) {
	_, err := ApplyTransforms(createTestInput(), []InputTransform{nil})
	if err == nil {
		t.Error("Expected error for nil transform, got nil")
	}
}

func TestApplyTransforms_ValidationFailure(t *testing.T) {
	_, err := ApplyTransforms(createTestInput(), []InputTransform{&AddDependents{Delta: -1}})
	if err == nil {
		t.Fatal("Expected validation error when removing a dependent nobody has")
	}

	var tErr *TransformError
	if !errors.As(err, &tErr) {
		t.Fatalf("Expected TransformError in chain, got %v", err)
	}
	if tErr.TransformName != "add_dependents" {
		t.Errorf("Expected add_dependents, got %s", tErr.TransformName)
	}
}

func TestApplyTransforms_DoesNotModifyBase(t *testing.T) {
	base := createTestInput()

	result, err := ApplyTransforms(base, []InputTransform{&RaiseSalary{Percent: decimal.NewFromInt(10)}})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	if !base.Compensation.Salary.Equal(decimal.NewFromInt(10_050_000)) {
		t.Errorf("Base salary changed to %s", base.Compensation.Salary)
	}
	if !result.Compensation.Salary.Equal(decimal.NewFromInt(11_055_000)) {
		t.Errorf("Expected 11055000, got %s", result.Compensation.Salary)
	}
}

func TestApplyTransforms_TransformChaining(t *testing.T) {
	// the bonus is computed from the salary the raise produced
	transforms := []InputTransform{
		&SetSalary{Amount: decimal.NewFromInt(8_000_000)},
		&RaiseSalary{Percent: decimal.NewFromInt(25)},
		&SetBonusMonths{Months: decimal.NewFromInt(2)},
		&SetMaritalStatus{Status: domain.StatusMarried},
		&AddDependents{Delta: 2},
		&SetNPWP{Has: false},
		&SetMethod{Method: domain.MethodGrossUp},
		&SetAllowance{Amount: decimal.NewFromInt(500_000)},
		&SetInsurance{Include: true},
		&SetZakat{Monthly: decimal.NewFromInt(250_000)},
	}

	result, err := ApplyTransforms(createTestInput(), transforms)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	if !result.Compensation.Salary.Equal(decimal.NewFromInt(10_000_000)) {
		t.Errorf("Expected salary 10000000, got %s", result.Compensation.Salary)
	}
	if !result.Compensation.AnnualBonus.Equal(decimal.NewFromInt(20_000_000)) {
		t.Errorf("Expected bonus 20000000, got %s", result.Compensation.AnnualBonus)
	}
	if result.Taxpayer.StatusCode() != "K/2" {
		t.Errorf("Expected K/2, got %s", result.Taxpayer.StatusCode())
	}
	if result.Taxpayer.HasNPWP {
		t.Error("Expected NPWP to be cleared")
	}
	if result.Method != domain.MethodGrossUp {
		t.Errorf("Expected gross_up, got %s", result.Method)
	}
	if !result.Compensation.IncludeInsurance {
		t.Error("Expected insurance to be included")
	}
	if !result.Deductions.ZakatMonthly.Equal(decimal.NewFromInt(250_000)) {
		t.Errorf("Expected zakat 250000, got %s", result.Deductions.ZakatMonthly)
	}
}

func TestTransformValidation(t *testing.T) {
	base := createTestInput()

	tests := []struct {
		name      string
		transform InputTransform
	}{
		{"raise below -100%", &RaiseSalary{Percent: decimal.NewFromInt(-100)}},
		{"negative salary", &SetSalary{Amount: decimal.NewFromInt(-1)}},
		{"negative allowance", &SetAllowance{Amount: decimal.NewFromInt(-1)}},
		{"negative bonus months", &SetBonusMonths{Months: decimal.NewFromInt(-1)}},
		{"negative zakat", &SetZakat{Monthly: decimal.NewFromInt(-1)}},
		{"bad status", &SetMaritalStatus{Status: "X"}},
		{"bad method", &SetMethod{Method: "net"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.transform.Validate(base); err == nil {
				t.Error("Expected validation error")
			}
		})
	}
}

func TestDescriptions(t *testing.T) {
	tests := []struct {
		transform InputTransform
		expected  string
	}{
		{&RaiseSalary{Percent: decimal.NewFromInt(10)}, "Raise salary by 10%"},
		{&RaiseSalary{Percent: decimal.NewFromInt(-5)}, "Cut salary by 5%"},
		{&AddDependents{Delta: 1}, "Add one dependent"},
		{&AddDependents{Delta: -2}, "Change dependents by -2"},
		{&SetNPWP{Has: false}, "Without NPWP (20% surcharge)"},
	}

	for _, tt := range tests {
		if got := tt.transform.Description(); got != tt.expected {
			t.Errorf("%s: expected %q, got %q", tt.transform.Name(), tt.expected, got)
		}
	}
}

func TestTransformError(t *testing.T) {
	err := NewTransformError("set_status", "validate", "invalid status", nil)

	expected := "transform set_status (validate): invalid status"
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}
}

func TestTransformError_WithWrappedError(t *testing.T) {
	inner := errors.New("boom")
	err := NewTransformError("set_method", "apply", "invalid method", inner)

	if !errors.Is(err, inner) {
		t.Error("Expected wrapped error to be unwrappable")
	}
	if err.Error() != "transform set_method (apply): invalid method: boom" {
		t.Errorf("Unexpected message %q", err.Error())
	}
}

func TestTransformRegistry_ParseTransformSpec(t *testing.T) {
	registry := NewTransformRegistry()

	tr, err := registry.ParseTransformSpec("raise_salary:percent=15")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	raise, ok := tr.(*RaiseSalary)
	if !ok {
		t.Fatalf("Expected *RaiseSalary, got %T", tr)
	}
	if !raise.Percent.Equal(decimal.NewFromInt(15)) {
		t.Errorf("Expected 15, got %s", raise.Percent)
	}

	tr, err = registry.ParseTransformSpec("set_status: status=k ")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if tr.(*SetMaritalStatus).Status != domain.StatusMarried {
		t.Error("Expected status to be normalized to K")
	}

	for _, bad := range []string{
		"raise_salary",
		"raise_salary:percent",
		"raise_salary:pct=10",
		"raise_salary:percent=lots",
		"set_npwp:has=maybe",
		"add_dependents:count=one",
		"set_method:method=net",
		"unknown:x=1",
	} {
		if _, err := registry.ParseTransformSpec(bad); err == nil {
			t.Errorf("Expected error for %q", bad)
		}
	}
}

func TestTransformRegistry_List(t *testing.T) {
	names := NewTransformRegistry().List()
	if len(names) != 10 {
		t.Fatalf("Expected 10 transforms, got %d: %v", len(names), names)
	}
	if names[0] != "add_dependents" {
		t.Errorf("Expected sorted names, first is %s", names[0])
	}
}
