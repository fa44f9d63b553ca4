package breakeven

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rgehrsitz/pajak/internal/output"
)

// TableFormatter formats solver results as a console table
type TableFormatter struct{}

// Format generates a formatted table for a solver result
func (tf *TableFormatter) Format(result *Result) string {
	var sb strings.Builder
	r := result.Reconciliation

	sb.WriteString("NET-TO-GROSS SALARY\n")
	sb.WriteString(strings.Repeat("=", 60) + "\n")
	sb.WriteString(fmt.Sprintf("Target:              %s %s\n", tf.targetLabel(result.Target), output.FormatRupiah(result.Amount)))
	if r.Taxpayer.Name != "" {
		sb.WriteString(fmt.Sprintf("Taxpayer:            %s (%s)\n", r.Taxpayer.Name, r.StatusCode))
	} else {
		sb.WriteString(fmt.Sprintf("Status:              %s\n", r.StatusCode))
	}
	sb.WriteString(fmt.Sprintf("Method:              %s, TER %s\n", r.Monthly.Method, r.Monthly.Category))
	sb.WriteString(fmt.Sprintf("Result:              %s\n", tf.formatStatus(result.Success)))
	sb.WriteString(fmt.Sprintf("Iterations:          %d\n", result.Iterations))
	if result.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergence:         %s\n", result.ConvergenceInfo))
	}
	sb.WriteString("\n")

	sb.WriteString("REQUIRED SALARY\n")
	sb.WriteString(strings.Repeat("-", 60) + "\n")
	sb.WriteString(fmt.Sprintf("Monthly Salary:      %s\n", output.FormatRupiah(result.Salary)))
	sb.WriteString(fmt.Sprintf("Achieved:            %s\n", output.FormatRupiah(result.Achieved)))
	sb.WriteString(fmt.Sprintf("Overshoot:           %s\n", result.Difference.StringFixed(2)))
	sb.WriteString("\n")

	sb.WriteString("TAX AT THIS SALARY\n")
	sb.WriteString(strings.Repeat("-", 60) + "\n")
	sb.WriteString(fmt.Sprintf("Monthly TER:         %s at %s\n", output.FormatRupiah(r.Monthly.MonthlyTax), output.FormatPercentage(r.Monthly.Rate)))
	sb.WriteString(fmt.Sprintf("Annual Tax:          %s\n", output.FormatRupiah(r.TotalAnnualTax)))
	sb.WriteString(fmt.Sprintf("December:            %s\n", output.FormatRupiah(r.DecemberTax)))

	return sb.String()
}

func (tf *TableFormatter) formatStatus(success bool) string {
	if success {
		return "✓ Converged"
	}
	return "⚠ Outside tolerance"
}

func (tf *TableFormatter) targetLabel(t Target) string {
	if t == TargetAnnualNet {
		return "annual net"
	}
	return "monthly take-home"
}

// JSONFormatter formats results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output
func (jf *JSONFormatter) Format(result *Result) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(result, "", "  ")
	} else {
		data, err = json.Marshal(result)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}
