package api

import (
	"github.com/rgehrsitz/pajak/internal/domain"
	"github.com/rgehrsitz/pajak/internal/output"
	"github.com/rgehrsitz/pajak/internal/record"
	"github.com/shopspring/decimal"
)

// CalculationRequest is the body of every POST /api/pph21 endpoint. Amounts
// may be sent as JSON numbers or strings; they are whole Rupiah per month
// except AnnualBonus.
type CalculationRequest struct {
	Title            string          `json:"title,omitempty"`
	Name             string          `json:"name,omitempty"`
	MaritalStatus    string          `json:"marital_status"`
	Dependents       int             `json:"dependents"`
	HasNPWP          *bool           `json:"has_npwp,omitempty"` // defaults to true
	Method           string          `json:"method,omitempty"`
	Salary           decimal.Decimal `json:"salary"`
	Allowance        decimal.Decimal `json:"allowance"`
	IncludeInsurance bool            `json:"include_insurance"`
	AnnualBonus      decimal.Decimal `json:"annual_bonus"`
	PensionMonthly   decimal.Decimal `json:"pension_monthly"`
	ZakatMonthly     decimal.Decimal `json:"zakat_monthly"`
	SkipStandardCost bool            `json:"skip_standard_cost"`
}

// AnnualInput converts the request into the calculation input; the method
// spelling is parsed here, the rest is checked by config.ValidateAnnualInput.
func (r CalculationRequest) AnnualInput() (domain.AnnualInput, error) {
	method, err := domain.ParseMethod(r.Method)
	if err != nil {
		return domain.AnnualInput{}, err
	}
	hasNPWP := true
	if r.HasNPWP != nil {
		hasNPWP = *r.HasNPWP
	}
	return domain.AnnualInput{
		Taxpayer: domain.Taxpayer{
			Name:          r.Name,
			MaritalStatus: domain.MaritalStatus(r.MaritalStatus),
			Dependents:    r.Dependents,
			HasNPWP:       hasNPWP,
		},
		Compensation: domain.Compensation{
			Salary:           r.Salary,
			Allowance:        r.Allowance,
			IncludeInsurance: r.IncludeInsurance,
			AnnualBonus:      r.AnnualBonus,
		},
		Method: method,
		Deductions: domain.Deductions{
			SkipStandardCost: r.SkipStandardCost,
			PensionMonthly:   r.PensionMonthly,
			ZakatMonthly:     r.ZakatMonthly,
		},
	}, nil
}

// NetToGrossRequest is the body of POST /api/pph21/net-to-gross. Salary is
// ignored; Target is take_home or annual_net.
type NetToGrossRequest struct {
	CalculationRequest
	Target string          `json:"target"`
	Amount decimal.Decimal `json:"amount"`
}

// WhatIfRequest is the body of POST /api/pph21/what-if
type WhatIfRequest struct {
	CalculationRequest
	Templates  []string `json:"templates"`
	Transforms []string `json:"transforms"`
}

// AnnualResponse is returned by POST /api/pph21/annual
type AnnualResponse struct {
	Result   domain.ReconciliationResult `json:"result"`
	Schedule []domain.MonthlyWithholding `json:"schedule"`
	Record   record.Record               `json:"record"`
}

// TERTableResponse is returned by GET /api/ter/{category}
type TERTableResponse struct {
	Category domain.Category `json:"category"`
	TopRate  decimal.Decimal `json:"top_rate"`
	Rows     []output.TERRow `json:"rows"`
}

// ErrorResponse is the body of every non-2xx reply
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
