package transform

import (
	"fmt"

	"github.com/rgehrsitz/pajak/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// RaiseSalary scales the monthly salary by Percent (10 means +10%)
type RaiseSalary struct {
	Percent decimal.Decimal
}

func (t *RaiseSalary) Apply(base domain.AnnualInput) (domain.AnnualInput, error) {
	factor := decimal.NewFromInt(1).Add(t.Percent.Div(hundred))
	base.Compensation.Salary = base.Compensation.Salary.Mul(factor).Round(0)
	return base, nil
}

func (t *RaiseSalary) Name() string { return "raise_salary" }

func (t *RaiseSalary) Description() string {
	if t.Percent.IsNegative() {
		return fmt.Sprintf("Cut salary by %s%%", t.Percent.Neg())
	}
	return fmt.Sprintf("Raise salary by %s%%", t.Percent)
}

func (t *RaiseSalary) Validate(base domain.AnnualInput) error {
	if t.Percent.LessThanOrEqual(hundred.Neg()) {
		return NewTransformError(t.Name(), "validate", "percent must be above -100", nil)
	}
	return nil
}

// SetSalary replaces the monthly salary
type SetSalary struct {
	Amount decimal.Decimal
}

func (t *SetSalary) Apply(base domain.AnnualInput) (domain.AnnualInput, error) {
	base.Compensation.Salary = t.Amount
	return base, nil
}

func (t *SetSalary) Name() string { return "set_salary" }

func (t *SetSalary) Description() string {
	return fmt.Sprintf("Set monthly salary to %s", t.Amount.StringFixed(0))
}

func (t *SetSalary) Validate(base domain.AnnualInput) error {
	if t.Amount.IsNegative() {
		return NewTransformError(t.Name(), "validate", "salary cannot be negative", nil)
	}
	return nil
}

// SetAllowance replaces the fixed monthly allowance
type SetAllowance struct {
	Amount decimal.Decimal
}

func (t *SetAllowance) Apply(base domain.AnnualInput) (domain.AnnualInput, error) {
	base.Compensation.Allowance = t.Amount
	return base, nil
}

func (t *SetAllowance) Name() string { return "set_allowance" }

func (t *SetAllowance) Description() string {
	return fmt.Sprintf("Set monthly allowance to %s", t.Amount.StringFixed(0))
}

func (t *SetAllowance) Validate(base domain.AnnualInput) error {
	if t.Amount.IsNegative() {
		return NewTransformError(t.Name(), "validate", "allowance cannot be negative", nil)
	}
	return nil
}

// SetBonusMonths sets the annual bonus to Months times the monthly salary,
// the usual way a THR is expressed
type SetBonusMonths struct {
	Months decimal.Decimal
}

func (t *SetBonusMonths) Apply(base domain.AnnualInput) (domain.AnnualInput, error) {
	base.Compensation.AnnualBonus = base.Compensation.Salary.Mul(t.Months)
	return base, nil
}

func (t *SetBonusMonths) Name() string { return "set_bonus_months" }

func (t *SetBonusMonths) Description() string {
	return fmt.Sprintf("Pay a bonus of %s month(s) salary", t.Months)
}

func (t *SetBonusMonths) Validate(base domain.AnnualInput) error {
	if t.Months.IsNegative() {
		return NewTransformError(t.Name(), "validate", "months cannot be negative", nil)
	}
	return nil
}

// SetInsurance toggles the employer-paid JKK/JKM add-on
type SetInsurance struct {
	Include bool
}

func (t *SetInsurance) Apply(base domain.AnnualInput) (domain.AnnualInput, error) {
	base.Compensation.IncludeInsurance = t.Include
	return base, nil
}

func (t *SetInsurance) Name() string { return "set_insurance" }

func (t *SetInsurance) Description() string {
	if t.Include {
		return "Count employer JKK/JKM premiums as income"
	}
	return "Exclude employer JKK/JKM premiums"
}

func (t *SetInsurance) Validate(base domain.AnnualInput) error { return nil }

// SetZakat replaces the monthly zakat paid through the employer
type SetZakat struct {
	Monthly decimal.Decimal
}

func (t *SetZakat) Apply(base domain.AnnualInput) (domain.AnnualInput, error) {
	base.Deductions.ZakatMonthly = t.Monthly
	return base, nil
}

func (t *SetZakat) Name() string { return "set_zakat" }

func (t *SetZakat) Description() string {
	return fmt.Sprintf("Pay zakat of %s per month", t.Monthly.StringFixed(0))
}

func (t *SetZakat) Validate(base domain.AnnualInput) error {
	if t.Monthly.IsNegative() {
		return NewTransformError(t.Name(), "validate", "zakat cannot be negative", nil)
	}
	return nil
}
