package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/rgehrsitz/pajak/internal/calculation"
	"github.com/rgehrsitz/pajak/internal/config"
	"github.com/rgehrsitz/pajak/internal/domain"
	"github.com/rgehrsitz/pajak/internal/logging"
	"github.com/rgehrsitz/pajak/internal/output"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const defaultRegulatoryFile = "regulatory.yaml"

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "pajak %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(out, info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

// fileExists checks if a file exists
func fileExists(filename string) bool {
	_, err := os.Stat(filename)
	return !os.IsNotExist(err)
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "pajak",
		Short: "Indonesian PPh 21 withholding calculator",
		Long: `Calculates Indonesian employee income tax (PPh 21) under the TER scheme:
monthly withholding for January to November, the employer gross-up
allowance, and the December Pasal 17 reconciliation.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			debugMode, _ := cmd.Flags().GetBool("debug")
			level, _ := cmd.Flags().GetString("log-level")
			switch {
			case debugMode:
				logging.SetupWithLevel(slog.LevelDebug)
			case level != "":
				logging.SetupWithLevel(logging.ParseLevel(level))
			default:
				logging.Setup()
			}
		},
	}
	root.PersistentFlags().Bool("debug", false, "Enable debug output for detailed calculations")
	root.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (default: LOG_LEVEL or info)")

	root.AddCommand(
		calculateCmd(),
		validateCmd(),
		initCmd(),
		monthlyCmd(),
		annualCmd(),
		compareCmd(),
		netToGrossCmd(),
		whatIfCmd(),
		terCmd(),
		serveCmd(),
		versionCmd(),
	)
	return root
}

// newCalculator returns a calculator that reports through the default slog logger
func newCalculator(rules domain.Rules) *calculation.Calculator {
	calc := calculation.NewCalculatorWithRules(rules)
	calc.SetLogger(logging.NewSlogLogger(slog.Default()))
	return calc
}

// regulatoryFile returns the --regulatory-config value, or regulatory.yaml
// when that exists in the working directory. implicit reports the fallback.
func regulatoryFile(cmd *cobra.Command) (file string, implicit bool) {
	file, _ = cmd.Flags().GetString("regulatory-config")
	if file == "" && fileExists(defaultRegulatoryFile) {
		return defaultRegulatoryFile, true
	}
	return file, false
}

// loadConfiguration reads a taxpayer batch, overlaying regulatory overrides
// when present. A broken implicit regulatory.yaml falls back to the batch's
// own rules; an explicit one is an error.
func loadConfiguration(cmd *cobra.Command, inputFile string) (*domain.Configuration, error) {
	parser := config.NewInputParser()
	regFile, implicit := regulatoryFile(cmd)
	if regFile == "" {
		return parser.LoadFromFile(inputFile)
	}

	slog.Info("loading regulatory config", "file", regFile)
	cfg, err := parser.LoadFromFileWithRegulatory(inputFile, regFile)
	if err != nil && implicit {
		slog.Warn("failed to load with regulatory config, falling back to standalone config", "error", err)
		return parser.LoadFromFile(inputFile)
	}
	return cfg, err
}

// loadRules returns the rules for flag-driven commands
func loadRules(cmd *cobra.Command) (domain.Rules, error) {
	regFile, implicit := regulatoryFile(cmd)
	if regFile == "" {
		return domain.DefaultRules(), nil
	}
	rules, err := config.NewInputParser().LoadRegulatory(regFile)
	if err != nil {
		if implicit {
			slog.Warn("ignoring regulatory config", "file", regFile, "error", err)
			return domain.DefaultRules(), nil
		}
		return domain.Rules{}, err
	}
	return *rules, nil
}

func calculateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calculate [input-file]",
		Short: "Calculate PPh 21 for every taxpayer in a batch file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfiguration(cmd, args[0])
			if err != nil {
				return err
			}

			report, err := newCalculator(config.ResolveRules(cfg)).Run(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			format, _ := cmd.Flags().GetString("format")
			f := output.GetFormatterByName(format)
			if f == nil {
				return fmt.Errorf("unsupported format %q (formats: %v, aliases: %v)",
					format, output.AvailableFormatterNames(), output.AvailableFormatAliases())
			}

			if save, _ := cmd.Flags().GetBool("save"); save {
				filename, err := output.WriteFormatted(f, report, output.ExtensionFor(format))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", filename)
				return nil
			}

			data, err := f.Format(report)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringP("format", "f", "console", "Output format (console, console-lite, csv, detailed-csv, json, html)")
	cmd.Flags().Bool("save", false, "Write the report to a timestamped file instead of stdout")
	cmd.Flags().String("regulatory-config", "", "Path to regulatory config file (default: regulatory.yaml if it exists)")
	return cmd
}

func validateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [input-file]",
		Short: "Validate a configuration file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfiguration(cmd, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration file %s is valid (%d taxpayers)\n", args[0], len(cfg.Taxpayers))
			return nil
		},
	}
	cmd.Flags().String("regulatory-config", "", "Path to regulatory config file (default: regulatory.yaml if it exists)")
	return cmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
