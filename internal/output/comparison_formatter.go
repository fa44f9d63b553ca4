package output

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rgehrsitz/pajak/internal/domain"
)

// ComparisonFormatter defines a formatter for gross vs gross-up comparisons
type ComparisonFormatter interface {
	FormatComparison(cmp *domain.MethodComparison) (string, error)
	Name() string
}

// NewComparisonFormatter creates a formatter based on the format name
func NewComparisonFormatter(format string) ComparisonFormatter {
	switch strings.ToLower(format) {
	case "json":
		return &ComparisonJSONFormatter{}
	default:
		return &ComparisonTableFormatter{}
	}
}

// ComparisonTableFormatter formats a comparison as a side-by-side table
type ComparisonTableFormatter struct{}

func (f *ComparisonTableFormatter) Name() string {
	return "table"
}

func (f *ComparisonTableFormatter) FormatComparison(cmp *domain.MethodComparison) (string, error) {
	if cmp == nil {
		return "", fmt.Errorf("comparison cannot be nil")
	}

	g, u := cmp.Gross, cmp.GrossUp
	var out strings.Builder
	out.WriteString("GROSS vs GROSS-UP\n")
	out.WriteString("=================================================================\n")
	out.WriteString(fmt.Sprintf("Taxpayer: %s (%s, TER %s)\n\n", g.Taxpayer.Name, g.StatusCode, g.Monthly.Category))

	row := func(label, a, b string) {
		out.WriteString(fmt.Sprintf("%-24s %18s %18s\n", label, a, b))
	}
	row("", "Gross", "Gross-Up")
	row("Tax Allowance", FormatRupiah(g.Monthly.TaxAllowance), FormatRupiah(u.Monthly.TaxAllowance))
	row("Gross Basis", FormatRupiah(g.Monthly.GrossBasis), FormatRupiah(u.Monthly.GrossBasis))
	row("TER Rate", FormatPercentage(g.Monthly.Rate), FormatPercentage(u.Monthly.Rate))
	row("Monthly PPh 21", FormatRupiah(g.Monthly.MonthlyTax), FormatRupiah(u.Monthly.MonthlyTax))
	row("Take-Home Pay", FormatRupiah(g.Monthly.TakeHome), FormatRupiah(u.Monthly.TakeHome))
	row("Annual Gross", FormatRupiah(g.AnnualGross), FormatRupiah(u.AnnualGross))
	row("Annual PPh 21", FormatRupiah(g.TotalAnnualTax), FormatRupiah(u.TotalAnnualTax))
	row("December", FormatRupiah(g.DecemberTax), FormatRupiah(u.DecemberTax))
	out.WriteString("\n")
	out.WriteString(fmt.Sprintf("Employer extra cost (annual): %s\n", FormatRupiah(cmp.EmployerExtraCost)))
	out.WriteString(fmt.Sprintf("Employee take-home gain:      %s / month\n", FormatRupiah(cmp.TakeHomeGain)))
	out.WriteString(fmt.Sprintf("Additional annual tax:        %s\n", FormatRupiah(cmp.AnnualTaxDelta)))
	if !u.Monthly.Converged {
		out.WriteString(fmt.Sprintf("Warning: gross-up stopped after %d iterations without converging\n", u.Monthly.Iterations))
	}
	return out.String(), nil
}

// ComparisonJSONFormatter formats a comparison as JSON
type ComparisonJSONFormatter struct{}

func (f *ComparisonJSONFormatter) Name() string {
	return "json"
}

func (f *ComparisonJSONFormatter) FormatComparison(cmp *domain.MethodComparison) (string, error) {
	if cmp == nil {
		return "", fmt.Errorf("comparison cannot be nil")
	}
	data, err := json.MarshalIndent(cmp, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal comparison: %w", err)
	}
	return string(data), nil
}
