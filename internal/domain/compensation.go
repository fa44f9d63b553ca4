package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Method selects who bears the employee's PPh 21
type Method string

const (
	// MethodGross deducts the tax from the employee's pay
	MethodGross Method = "gross"
	// MethodGrossUp has the employer pay a tax allowance equal to the tax on itself
	MethodGrossUp Method = "gross_up"
)

// ParseMethod accepts "gross", "gross-up", "grossup" and "gross_up"
func ParseMethod(s string) (Method, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	v = strings.NewReplacer("-", "_", " ", "_").Replace(v)
	switch v {
	case "", "gross", "net_deduction":
		return MethodGross, nil
	case "gross_up", "grossup":
		return MethodGrossUp, nil
	default:
		return "", fmt.Errorf("unknown withholding method %q (want gross or gross_up)", s)
	}
}

// Compensation is the monthly pay package in whole Rupiah
type Compensation struct {
	Salary           decimal.Decimal `yaml:"salary" json:"salary"`
	Allowance        decimal.Decimal `yaml:"allowance" json:"allowance"`                 // fixed monthly allowance
	IncludeInsurance bool            `yaml:"include_insurance" json:"include_insurance"` // employer-paid JKK/JKM
	AnnualBonus      decimal.Decimal `yaml:"annual_bonus" json:"annual_bonus"`           // one-time, not replicated monthly
}

// Deductions are the annual deduction inputs for reconciliation
type Deductions struct {
	SkipStandardCost bool            `yaml:"skip_standard_cost" json:"skip_standard_cost"`
	PensionMonthly   decimal.Decimal `yaml:"pension_monthly" json:"pension_monthly"` // manual override; zero means auto
	ZakatMonthly     decimal.Decimal `yaml:"zakat_monthly" json:"zakat_monthly"`
}

// AnnualInput bundles everything the year-end reconciliation needs
type AnnualInput struct {
	Taxpayer     Taxpayer     `yaml:"taxpayer" json:"taxpayer"`
	Compensation Compensation `yaml:"compensation" json:"compensation"`
	Method       Method       `yaml:"method" json:"method"`
	Deductions   Deductions   `yaml:"deductions" json:"deductions"`
}
