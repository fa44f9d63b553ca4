package main

import (
	"fmt"

	"github.com/rgehrsitz/pajak/internal/domain"
	"github.com/rgehrsitz/pajak/internal/output"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func initCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [output-file]",
		Short: "Write a starter batch file",
		Long: `Write a batch configuration with one taxpayer. Without --salary the
file holds a worked example (TK/0 earning Rp 10.050.000 a month);
otherwise the taxpayer is built from the input flags.`,
		Example: `  pajak init
  pajak init payroll.yaml --name "Sari" --salary 25000000 --status K --dependents 2`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := "pajak.yaml"
			if len(args) == 1 {
				filename = args[0]
			}
			if fileExists(filename) && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", filename)
			}

			entry := domain.TaxpayerEntry{
				Taxpayer:     domain.Taxpayer{Name: "Budi Santoso", MaritalStatus: domain.StatusSingle, HasNPWP: true},
				Method:       domain.MethodGross,
				Compensation: domain.Compensation{Salary: decimal.NewFromInt(10_050_000)},
			}
			if cmd.Flags().Changed("salary") {
				in, err := inputFromFlags(cmd)
				if err != nil {
					return err
				}
				entry = domain.TaxpayerEntry{
					Taxpayer:     in.Taxpayer,
					Method:       in.Method,
					Compensation: in.Compensation,
					Deductions:   in.Deductions,
				}
			}

			cfg := &domain.Configuration{Taxpayers: []domain.TaxpayerEntry{entry}}
			if err := output.SaveConfiguration(cfg, filename); err != nil {
				return fmt.Errorf("failed to write %s: %w", filename, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", filename)
			return nil
		},
	}
	addInputFlags(cmd, true)
	_ = cmd.Flags().MarkHidden("format")
	_ = cmd.Flags().MarkHidden("regulatory-config")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	return cmd
}
