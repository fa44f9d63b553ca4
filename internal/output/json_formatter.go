package output

import (
	"encoding/json"

	"github.com/rgehrsitz/pajak/internal/domain"
)

// JSONFormatter emits the report with each taxpayer's withholding schedule
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

type jsonTaxpayer struct {
	domain.TaxpayerResult
	Schedule []domain.MonthlyWithholding `json:"schedule"`
}

type jsonReport struct {
	Rules          domain.RulesMetadata `json:"rules"`
	Results        []jsonTaxpayer       `json:"results"`
	TotalAnnualTax string               `json:"total_annual_tax"`
}

func (j JSONFormatter) Format(report *domain.CalculationReport) ([]byte, error) {
	out := jsonReport{
		Rules:          report.Rules,
		Results:        make([]jsonTaxpayer, 0, len(report.Results)),
		TotalAnnualTax: report.TotalAnnualTax().String(),
	}
	for _, tr := range report.Results {
		out.Results = append(out.Results, jsonTaxpayer{TaxpayerResult: tr, Schedule: tr.Result.Schedule()})
	}
	return json.MarshalIndent(out, "", "  ")
}
