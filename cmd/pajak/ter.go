package main

import (
	"fmt"

	"github.com/rgehrsitz/pajak/internal/calculation"
	"github.com/rgehrsitz/pajak/internal/domain"
	"github.com/rgehrsitz/pajak/internal/output"
	"github.com/spf13/cobra"
)

func terCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ter [A|B|C]",
		Short: "Print the TER rate tables",
		Long: `Print the monthly TER (tarif efektif rata-rata) rate table for one
category, or all three when no category is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			categories := domain.Categories
			if len(args) == 1 {
				cat, err := domain.ParseCategory(args[0])
				if err != nil {
					return err
				}
				categories = []domain.Category{cat}
			}

			format, _ := cmd.Flags().GetString("format")
			out := cmd.OutOrStdout()
			for i, cat := range categories {
				text, err := output.FormatTERTable(calculation.RateTableFor(cat), format)
				if err != nil {
					return err
				}
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprint(out, text)
			}
			return nil
		},
	}
	cmd.Flags().StringP("format", "f", "table", "Output format (table, csv, json)")
	return cmd
}
