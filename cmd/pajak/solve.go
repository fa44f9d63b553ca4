package main

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/pajak/internal/breakeven"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func netToGrossCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "net-to-gross",
		Short: "Find the monthly salary that yields a take-home or annual net target",
		Example: `  pajak net-to-gross --take-home 9000000 --status TK
  pajak net-to-gross --annual-net 117750900 --status K --dependents 1 --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := solveRequestFromFlags(cmd)
			if err != nil {
				return err
			}
			rules, err := loadRules(cmd)
			if err != nil {
				return err
			}

			res, err := breakeven.NewDefaultSolver(newCalculator(rules)).Solve(cmd.Context(), req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch format, _ := cmd.Flags().GetString("format"); strings.ToLower(format) {
			case "json":
				text, err := (&breakeven.JSONFormatter{Pretty: true}).Format(res)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, text)
			case "table", "console", "":
				fmt.Fprint(out, (&breakeven.TableFormatter{}).Format(res))
			default:
				return fmt.Errorf("unknown output format: %s (valid: table, json)", format)
			}
			return nil
		},
	}
	addInputFlags(cmd, true)
	_ = cmd.Flags().MarkHidden("salary")
	cmd.Flags().String("take-home", "", "Target regular-month take-home pay in Rupiah")
	cmd.Flags().String("annual-net", "", "Target annual cash after the December settlement in Rupiah")
	cmd.Flags().Int("max-iterations", 0, "Bisection iteration cap (0 uses the default)")
	cmd.MarkFlagsMutuallyExclusive("take-home", "annual-net")
	cmd.MarkFlagsOneRequired("take-home", "annual-net")
	return cmd
}

func solveRequestFromFlags(cmd *cobra.Command) (breakeven.Request, error) {
	base, err := inputFromFlags(cmd)
	if err != nil {
		return breakeven.Request{}, err
	}

	target, flag := breakeven.TargetTakeHome, "take-home"
	if cmd.Flags().Changed("annual-net") {
		target, flag = breakeven.TargetAnnualNet, "annual-net"
	}
	raw, _ := cmd.Flags().GetString(flag)
	amount, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(raw), "_", ""))
	if err != nil {
		return breakeven.Request{}, fmt.Errorf("--%s: %q is not an amount", flag, raw)
	}
	maxIter, _ := cmd.Flags().GetInt("max-iterations")

	return breakeven.Request{
		Base:          base,
		Target:        target,
		Amount:        amount,
		MaxIterations: maxIter,
	}, nil
}
