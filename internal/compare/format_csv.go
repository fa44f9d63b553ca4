package compare

import (
	"encoding/csv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Scenario",
		"Type",
		"Status",
		"Category",
		"Method",
		"Salary",
		"Monthly Tax",
		"Take Home",
		"Annual Tax",
		"December Tax",
		"Effective Rate",
		"Employer Cost",
		"Take Home Diff",
		"Annual Tax Diff",
		"Annual Tax % Change",
		"Employer Cost Diff",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if compSet.BaseResult != nil {
		if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
			return "", err
		}
	}

	for i := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&compSet.AlternativeResults[i], "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult, scenarioType string) []string {
	return []string{
		result.ScenarioName,
		scenarioType,
		result.StatusCode,
		string(result.Category),
		string(result.Method),
		result.Salary.StringFixed(2),
		result.MonthlyTax.StringFixed(2),
		result.TakeHome.StringFixed(2),
		result.AnnualTax.StringFixed(2),
		result.DecemberTax.StringFixed(2),
		result.EffectiveRate.StringFixed(4),
		result.EmployerCost.StringFixed(2),
		result.TakeHomeDiffFromBase.StringFixed(2),
		result.AnnualTaxDiffFromBase.StringFixed(2),
		result.AnnualTaxPctFromBase.StringFixed(2),
		result.EmployerCostDiffFromBase.StringFixed(2),
	}
}
