package compare

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/pajak/internal/output"
	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing scenarios
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString("PPh 21 WHAT-IF COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 90) + "\n")
	sb.WriteString(fmt.Sprintf("Base Scenario: %s\n", compSet.BaseScenarioName))
	if compSet.ConfigPath != "" {
		sb.WriteString(fmt.Sprintf("Configuration: %s\n", compSet.ConfigPath))
	}
	sb.WriteString("\n")

	nameWidth := 22
	numWidth := 16

	sb.WriteString(fmt.Sprintf("%-*s %-8s %*s %*s %*s %*s\n",
		nameWidth, "Scenario",
		"Status",
		numWidth, "Monthly Tax",
		numWidth, "Take-Home",
		numWidth, "Annual Tax",
		numWidth, "December"))
	sb.WriteString(strings.Repeat("-", 90) + "\n")

	if compSet.BaseResult != nil {
		sb.WriteString(tf.formatRow(compSet.BaseResult, nameWidth, numWidth, true))
	}

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 90) + "\n")
		for i := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&compSet.AlternativeResults[i], nameWidth, numWidth, false))
		}
	}

	sb.WriteString(strings.Repeat("=", 90) + "\n")

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 90) + "\n")

		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s: %s\n", alt.ScenarioName, alt.Description))

			sb.WriteString(fmt.Sprintf("  Take-Home:      %s%s per month\n",
				tf.deltaSymbol(alt.TakeHomeDiffFromBase),
				output.FormatRupiah(alt.TakeHomeDiffFromBase)))

			if !alt.AnnualTaxDiffFromBase.IsZero() {
				sb.WriteString(fmt.Sprintf("  Annual Tax:     %s%s (%s%%)\n",
					tf.deltaSymbol(alt.AnnualTaxDiffFromBase),
					output.FormatRupiah(alt.AnnualTaxDiffFromBase),
					alt.AnnualTaxPctFromBase.StringFixed(1)))
			}

			if !alt.EmployerCostDiffFromBase.IsZero() {
				sb.WriteString(fmt.Sprintf("  Employer Cost:  %s%s per year\n",
					tf.deltaSymbol(alt.EmployerCostDiffFromBase),
					output.FormatRupiah(alt.EmployerCostDiffFromBase)))
			}
		}
		sb.WriteString("\n")
	}

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 90) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatRow formats a single scenario row
func (tf *TableFormatter) formatRow(result *ComparisonResult, nameWidth, numWidth int, isBase bool) string {
	name := result.ScenarioName
	if isBase {
		name += " (base)"
	}

	return fmt.Sprintf("%-*s %-8s %*s %*s %*s %*s\n",
		nameWidth, tf.truncate(name, nameWidth),
		result.StatusCode,
		numWidth, output.FormatRupiah(result.MonthlyTax),
		numWidth, output.FormatRupiah(result.TakeHome),
		numWidth, output.FormatRupiah(result.AnnualTax),
		numWidth, output.FormatRupiah(result.DecemberTax))
}

// deltaSymbol prefixes positive deltas; FormatRupiah already signs negatives
func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	}
	return ""
}

// truncate truncates a string to maxLen
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// FormatCompact creates a single-line summary of take-home changes
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base: %s | ", compSet.BaseScenarioName))

	for i, alt := range compSet.AlternativeResults {
		if i > 0 {
			sb.WriteString(" | ")
		}
		change := "="
		if !alt.TakeHomeDiffFromBase.IsZero() {
			change = tf.deltaSymbol(alt.TakeHomeDiffFromBase) + output.FormatRupiah(alt.TakeHomeDiffFromBase)
		}
		sb.WriteString(fmt.Sprintf("%s: %s", alt.ScenarioName, change))
	}

	return sb.String()
}
