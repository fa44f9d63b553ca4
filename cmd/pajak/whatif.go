package main

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/pajak/internal/compare"
	"github.com/rgehrsitz/pajak/internal/transform"
	"github.com/spf13/cobra"
)

func whatIfCmd() *cobra.Command {
	var (
		templates  string
		transforms []string
		listOnly   bool
	)

	cmd := &cobra.Command{
		Use:   "what-if",
		Short: "Compare a taxpayer against what-if scenarios",
		Long: `Reconcile one taxpayer as configured and again under each scenario,
showing how monthly withholding, take-home and the annual tax move.

Scenarios come from built-in templates (--with) or ad-hoc transforms
(--transform name:key=value). Run with --list to see every template.`,
		Example: `  pajak what-if --salary 10050000 --status TK --with raise_10pct,married,gross_up
  pajak what-if --salary 7500000 --status HB --dependents 1 --transform set_npwp:has=true --format csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if listOnly {
				fmt.Fprintln(out, transform.GetTemplateHelp(transform.CreateBuiltInTemplates()))
				fmt.Fprintf(out, "Transforms: %s\n", strings.Join(transform.NewTransformRegistry().List(), ", "))
				return nil
			}

			in, err := inputFromFlags(cmd)
			if err != nil {
				return err
			}
			rules, err := loadRules(cmd)
			if err != nil {
				return err
			}

			set, err := compare.NewCompareEngine(newCalculator(rules)).Compare(cmd.Context(), in, compare.CompareOptions{
				Templates:  transform.ParseTemplateList(templates),
				Transforms: transforms,
			})
			if err != nil {
				return err
			}

			switch format, _ := cmd.Flags().GetString("format"); strings.ToLower(format) {
			case "json":
				text, err := (&compare.JSONFormatter{Pretty: true}).Format(set)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, text)
			case "csv":
				text, err := (&compare.CSVFormatter{}).Format(set)
				if err != nil {
					return err
				}
				fmt.Fprint(out, text)
			case "compact":
				fmt.Fprintln(out, (&compare.TableFormatter{}).FormatCompact(set))
			case "table", "console", "":
				fmt.Fprint(out, (&compare.TableFormatter{}).Format(set))
			default:
				return fmt.Errorf("unknown output format: %s (valid: table, csv, json, compact)", format)
			}
			return nil
		},
	}
	addInputFlags(cmd, true)
	cmd.Flags().StringVar(&templates, "with", "", "Comma-separated built-in templates")
	cmd.Flags().StringArrayVar(&transforms, "transform", nil, "Ad-hoc transform as name:key=value (repeatable)")
	cmd.Flags().BoolVar(&listOnly, "list", false, "List templates and transforms, then exit")
	return cmd
}
