package output

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/rgehrsitz/pajak/internal/domain"
)

// ConsoleVerboseFormatter renders the full per-taxpayer breakdown
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(report *domain.CalculationReport) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, "=================================================================================")
	fmt.Fprintln(&buf, "PPh 21 WITHHOLDING AND ANNUAL RECONCILIATION")
	fmt.Fprintln(&buf, "=================================================================================")
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	for _, a := range Assumptions(report.Rules) {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	for i, tr := range report.Results {
		fmt.Fprintf(&buf, "TAXPAYER %d: %s\n", i+1, tr.Name)
		fmt.Fprintln(&buf, strings.Repeat("=", 50))
		WriteMonthly(&buf, tr.Result.Monthly)
		fmt.Fprintln(&buf)
		WriteReconciliation(&buf, tr.Result)
		fmt.Fprintln(&buf)
		WriteSchedule(&buf, tr.Result)
		fmt.Fprintln(&buf)
	}

	fmt.Fprintln(&buf, "SUMMARY")
	fmt.Fprintln(&buf, "=======")
	fmt.Fprintf(&buf, "Taxpayers:              %d\n", len(report.Results))
	fmt.Fprintf(&buf, "Total Annual PPh 21:    %s\n", FormatRupiah(report.TotalAnnualTax()))
	return buf.Bytes(), nil
}

// WriteMonthly prints the regular-month TER withholding
func WriteMonthly(w io.Writer, m domain.MonthlyResult) {
	fmt.Fprintln(w, "REGULAR MONTH (JAN-NOV):")
	fmt.Fprintf(w, "  TER Category:          %s\n", m.Category)
	fmt.Fprintf(w, "  Method:                %s\n", m.Method)
	fmt.Fprintf(w, "  Base Cash:             %s\n", FormatRupiah(m.BaseCash))
	if m.InsuranceAddOn.IsPositive() {
		fmt.Fprintf(w, "    incl. JKK/JKM:       %s\n", FormatRupiah(m.InsuranceAddOn))
	}
	if m.Method == domain.MethodGrossUp {
		fmt.Fprintf(w, "  Tax Allowance:         %s\n", FormatRupiah(m.TaxAllowance))
	}
	fmt.Fprintf(w, "  Gross Basis:           %s\n", FormatRupiah(m.GrossBasis))
	fmt.Fprintf(w, "  TER Rate:              %s\n", FormatPercentage(m.Rate))
	fmt.Fprintf(w, "  Monthly PPh 21:        %s\n", FormatRupiah(m.MonthlyTax))
	fmt.Fprintf(w, "  Take-Home Pay:         %s\n", FormatRupiah(m.TakeHome))
	if m.Method == domain.MethodGrossUp {
		status := "converged"
		if !m.Converged {
			status = "NOT converged, last value used"
		}
		fmt.Fprintf(w, "  Gross-Up Iterations:   %d (%s)\n", m.Iterations, status)
	}
}

// WriteReconciliation prints the annual Pasal 17 computation
func WriteReconciliation(w io.Writer, r domain.ReconciliationResult) {
	fmt.Fprintf(w, "ANNUAL RECONCILIATION (%s):\n", r.StatusCode)
	fmt.Fprintf(w, "  Annual Gross:          %s\n", FormatRupiah(r.AnnualGross))
	fmt.Fprintf(w, "  Biaya Jabatan:        -%s\n", FormatRupiah(r.StandardCost))
	fmt.Fprintf(w, "  Pension (JHT+JP):     -%s\n", FormatRupiah(r.Pension))
	if r.Zakat.IsPositive() {
		fmt.Fprintf(w, "  Zakat:                -%s\n", FormatRupiah(r.Zakat))
	}
	fmt.Fprintf(w, "  Net Income:            %s\n", FormatRupiah(r.NetIncome))
	fmt.Fprintf(w, "  PTKP:                 -%s\n", FormatRupiah(r.PTKP))
	fmt.Fprintf(w, "  Taxable Income (PKP):  %s\n", FormatRupiah(r.TaxableIncome))
	for _, b := range r.Brackets {
		upTo := "above"
		if !b.UpTo.IsZero() {
			upTo = "to " + FormatRupiah(b.UpTo)
		}
		fmt.Fprintf(w, "    %6s %-20s on %s = %s\n", FormatPercentage(b.Rate), upTo, FormatRupiah(b.Taxable), FormatRupiah(b.Tax))
	}
	if r.Surcharge.IsPositive() {
		fmt.Fprintf(w, "  No-NPWP Surcharge:    +%s\n", FormatRupiah(r.Surcharge))
	}
	fmt.Fprintf(w, "  Annual PPh 21:         %s\n", FormatRupiah(r.TotalAnnualTax))
	fmt.Fprintf(w, "  Paid Jan-Nov:          %s\n", FormatRupiah(r.PaidJanToNov))
	if r.IsRefund() {
		fmt.Fprintf(w, "  December (REFUND):     %s\n", FormatRupiah(r.DecemberTax))
	} else {
		fmt.Fprintf(w, "  December:              %s\n", FormatRupiah(r.DecemberTax))
	}
}

// WriteSchedule prints the twelve-month withholding schedule
func WriteSchedule(w io.Writer, r domain.ReconciliationResult) {
	fmt.Fprintln(w, "WITHHOLDING SCHEDULE:")
	for _, row := range r.Schedule() {
		fmt.Fprintf(w, "  %-10s %s\n", row.Month, FormatRupiah(row.Tax))
	}
}
