package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/rgehrsitz/pajak/internal/config"
	"github.com/rgehrsitz/pajak/internal/domain"
	"github.com/rgehrsitz/pajak/internal/output"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// addInputFlags registers the single-taxpayer flags. Annual commands also
// take the bonus and deduction flags.
func addInputFlags(cmd *cobra.Command, annual bool) {
	f := cmd.Flags()
	f.String("salary", "0", "Monthly base salary in Rupiah")
	f.String("allowance", "0", "Fixed monthly allowance in Rupiah")
	f.String("status", "TK", "Marital status: TK, K or HB")
	f.Int("dependents", 0, "Number of dependents (capped at 3)")
	f.String("method", "gross", "Withholding method: gross or gross_up")
	f.Bool("insurance", false, "Include employer-paid JKK/JKM premiums in the TER basis")
	f.StringP("format", "f", "table", "Output format (table, json)")
	f.String("regulatory-config", "", "Path to regulatory config file (default: regulatory.yaml if it exists)")
	if !annual {
		return
	}
	f.String("name", "", "Taxpayer name for the report")
	f.String("bonus", "0", "One-time annual bonus (THR) in Rupiah")
	f.String("pension", "0", "Monthly employee pension contribution; 0 applies the statutory JHT+JP rates")
	f.String("zakat", "0", "Monthly zakat paid through the employer")
	f.Bool("no-npwp", false, "Taxpayer has no NPWP (20% surcharge)")
	f.Bool("skip-standard-cost", false, "Do not deduct biaya jabatan")
}

// inputFromFlags builds and validates a calculation input from the flags
// registered by addInputFlags
func inputFromFlags(cmd *cobra.Command) (domain.AnnualInput, error) {
	f := cmd.Flags()

	amounts := map[string]decimal.Decimal{}
	for _, name := range []string{"salary", "allowance", "bonus", "pension", "zakat"} {
		if f.Lookup(name) == nil {
			continue
		}
		raw, _ := f.GetString(name)
		d, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(raw), "_", ""))
		if err != nil {
			return domain.AnnualInput{}, fmt.Errorf("--%s: %q is not an amount", name, raw)
		}
		amounts[name] = d
	}

	boolFlag := func(name string) bool {
		if f.Lookup(name) == nil {
			return false
		}
		v, _ := f.GetBool(name)
		return v
	}

	methodName, _ := f.GetString("method")
	method, err := domain.ParseMethod(methodName)
	if err != nil {
		return domain.AnnualInput{}, err
	}
	status, _ := f.GetString("status")
	dependents, _ := f.GetInt("dependents")
	var name string
	if f.Lookup("name") != nil {
		name, _ = f.GetString("name")
	}

	in := domain.AnnualInput{
		Taxpayer: domain.Taxpayer{
			Name:          name,
			MaritalStatus: domain.MaritalStatus(status),
			Dependents:    dependents,
			HasNPWP:       !boolFlag("no-npwp"),
		},
		Compensation: domain.Compensation{
			Salary:           amounts["salary"],
			Allowance:        amounts["allowance"],
			IncludeInsurance: boolFlag("insurance"),
			AnnualBonus:      amounts["bonus"],
		},
		Method: method,
		Deductions: domain.Deductions{
			SkipStandardCost: boolFlag("skip-standard-cost"),
			PensionMonthly:   amounts["pension"],
			ZakatMonthly:     amounts["zakat"],
		},
	}
	if err := config.ValidateAnnualInput(&in); err != nil {
		return domain.AnnualInput{}, err
	}
	return in, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func monthlyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "monthly",
		Short: "Calculate the regular-month TER withholding",
		Example: `  pajak monthly --salary 10050000 --status TK
  pajak monthly --salary 25000000 --status K --dependents 2 --method gross-up --insurance`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := inputFromFlags(cmd)
			if err != nil {
				return err
			}
			rules, err := loadRules(cmd)
			if err != nil {
				return err
			}
			res := newCalculator(rules).MonthlyWithholding(in.Compensation, in.Taxpayer.Category(), in.Method)

			out := cmd.OutOrStdout()
			switch format, _ := cmd.Flags().GetString("format"); strings.ToLower(format) {
			case "json":
				return writeJSON(out, res)
			case "table", "console", "":
				output.WriteMonthly(out, res)
				return nil
			default:
				return fmt.Errorf("unknown output format: %s (valid: table, json)", format)
			}
		},
	}
	addInputFlags(cmd, false)
	return cmd
}

func annualCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "annual",
		Short: "Calculate the December Pasal 17 reconciliation for one taxpayer",
		Example: `  pajak annual --salary 10050000 --status TK
  pajak annual --salary 7500000 --status HB --dependents 1 --no-npwp --pension 150000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := inputFromFlags(cmd)
			if err != nil {
				return err
			}
			rules, err := loadRules(cmd)
			if err != nil {
				return err
			}
			res := newCalculator(rules).ReconcileAnnual(in)

			out := cmd.OutOrStdout()
			switch format, _ := cmd.Flags().GetString("format"); strings.ToLower(format) {
			case "json":
				return writeJSON(out, struct {
					Result   domain.ReconciliationResult `json:"result"`
					Schedule []domain.MonthlyWithholding `json:"schedule"`
				}{res, res.Schedule()})
			case "table", "console", "":
				output.WriteMonthly(out, res.Monthly)
				fmt.Fprintln(out)
				output.WriteReconciliation(out, res)
				fmt.Fprintln(out)
				output.WriteSchedule(out, res)
				return nil
			default:
				return fmt.Errorf("unknown output format: %s (valid: table, json)", format)
			}
		},
	}
	addInputFlags(cmd, true)
	return cmd
}

func compareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare gross and gross-up withholding for one taxpayer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := inputFromFlags(cmd)
			if err != nil {
				return err
			}
			rules, err := loadRules(cmd)
			if err != nil {
				return err
			}
			cmp := newCalculator(rules).CompareMethods(in)

			format, _ := cmd.Flags().GetString("format")
			text, err := output.NewComparisonFormatter(format).FormatComparison(&cmp)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), text)
			return nil
		},
	}
	addInputFlags(cmd, true)
	return cmd
}
