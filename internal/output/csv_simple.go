package output

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"time"

	"github.com/rgehrsitz/pajak/internal/domain"
)

// CSVSummarizer implements the simple summary CSV output (one row per taxpayer).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(report *domain.CalculationReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Taxpayer", "Status", "Category", "Method", "HasNPWP", "TERRate", "MonthlyTax", "AnnualGross", "TaxableIncome", "AnnualTax", "PaidJanToNov", "DecemberTax"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, tr := range report.Results {
		r := tr.Result
		row := []string{
			tr.Name,
			r.StatusCode,
			string(r.Monthly.Category),
			string(r.Monthly.Method),
			strconv.FormatBool(r.Taxpayer.HasNPWP),
			r.Monthly.Rate.String(),
			r.Monthly.MonthlyTax.StringFixed(2),
			r.AnnualGross.StringFixed(2),
			r.TaxableIncome.StringFixed(0),
			r.TotalAnnualTax.StringFixed(2),
			r.PaidJanToNov.StringFixed(2),
			r.DecemberTax.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// DetailedCSVFormatter writes the monthly withholding schedule, twelve rows per taxpayer
type DetailedCSVFormatter struct{}

func (c DetailedCSVFormatter) Name() string { return "detailed-csv" }

func (c DetailedCSVFormatter) Format(report *domain.CalculationReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"Taxpayer", "Month", "Basis", "Tax"}); err != nil {
		return nil, err
	}
	for _, tr := range report.Results {
		for _, row := range tr.Result.Schedule() {
			basis := "TER"
			if row.Month == time.December {
				basis = "Pasal 17"
			}
			if err := w.Write([]string{tr.Name, row.Month.String(), basis, row.Tax.StringFixed(2)}); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
