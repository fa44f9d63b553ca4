package output

import (
	"bytes"
	"fmt"

	"github.com/rgehrsitz/pajak/internal/domain"
)

// ConsoleFormatter prints one summary line per taxpayer
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(report *domain.CalculationReport) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "PPh 21 SUMMARY")
	fmt.Fprintln(&buf, "==============")
	fmt.Fprintf(&buf, "%-24s %-6s %-3s %-9s %16s %18s %18s\n", "Taxpayer", "Status", "Cat", "Method", "Monthly", "Annual", "December")
	for _, tr := range report.Results {
		r := tr.Result
		fmt.Fprintf(&buf, "%-24s %-6s %-3s %-9s %16s %18s %18s\n",
			truncate(tr.Name, 24), r.StatusCode, r.Monthly.Category, r.Monthly.Method,
			FormatRupiah(r.Monthly.MonthlyTax), FormatRupiah(r.TotalAnnualTax), FormatRupiah(r.DecemberTax))
	}
	fmt.Fprintf(&buf, "Total annual PPh 21: %s\n", FormatRupiah(report.TotalAnnualTax()))
	return buf.Bytes(), nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
