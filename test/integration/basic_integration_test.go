package integration

import (
	"context"
	"testing"
	"time"

	"github.com/rgehrsitz/pajak/internal/calculation"
	"github.com/rgehrsitz/pajak/internal/config"
	"github.com/rgehrsitz/pajak/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	exampleConfig    = "../testdata/example.yaml"
	regulatoryConfig = "../testdata/regulatory.yaml"
)

func loadExample(t *testing.T) *domain.Configuration {
	t.Helper()
	cfg, err := config.NewInputParser().LoadFromFile(exampleConfig)
	require.NoError(t, err, "Should load configuration successfully")
	return cfg
}

// TestBasicIntegration tests basic end-to-end functionality
func TestBasicIntegration(t *testing.T) {
	t.Run("configuration_loading", func(t *testing.T) {
		cfg := loadExample(t)
		require.Len(t, cfg.Taxpayers, 3)
		assert.Equal(t, domain.MethodGrossUp, cfg.Taxpayers[1].Method)
		assert.Equal(t, domain.MethodGross, cfg.Taxpayers[2].Method, "a missing method defaults to gross")
		assert.Nil(t, cfg.Rules, "example has no inline rules")
	})

	t.Run("calculation_engine", func(t *testing.T) {
		cfg := loadExample(t)
		calc := calculation.NewCalculatorWithRules(config.ResolveRules(cfg))

		report, err := calc.Run(context.Background(), cfg)
		require.NoError(t, err, "Should run batch successfully")
		require.Len(t, report.Results, len(cfg.Taxpayers))

		for i, tr := range report.Results {
			assert.Equal(t, cfg.Taxpayers[i].Name, tr.Name, "Results stay in file order")
			assert.Equal(t, 12, len(tr.Result.Schedule()))
		}

		budi := report.Results[0].Result
		assert.True(t, budi.Monthly.MonthlyTax.Equal(decimal.NewFromInt(201_000)))
		assert.True(t, budi.TotalAnnualTax.Equal(decimal.NewFromInt(2_849_100)))
		assert.True(t, budi.DecemberTax.Equal(decimal.NewFromInt(638_100)))

		sari := report.Results[1].Result
		assert.Equal(t, domain.CategoryB, sari.Monthly.Category)
		assert.True(t, sari.Monthly.Converged)
		assert.True(t, sari.Monthly.TaxAllowance.IsPositive())
		assert.True(t, sari.Zakat.Equal(decimal.NewFromInt(3_000_000)))

		andi := report.Results[2].Result
		assert.Equal(t, "HB/1", andi.StatusCode)
		assert.Equal(t, domain.MethodGross, andi.Monthly.Method)
		assert.True(t, andi.Pension.Equal(decimal.NewFromInt(1_800_000)))
		// 90M gross - 4.5M biaya jabatan - 1.8M pension - 58.5M PTKP = 25.2M at 5%, plus 20%
		assert.True(t, andi.TaxableIncome.Equal(decimal.NewFromInt(25_200_000)))
		assert.True(t, andi.Surcharge.Equal(decimal.NewFromInt(252_000)))
		assert.True(t, andi.TotalAnnualTax.Equal(decimal.NewFromInt(1_512_000)))
	})

	t.Run("regulatory_override", func(t *testing.T) {
		cfg, err := config.NewInputParser().LoadFromFileWithRegulatory(exampleConfig, regulatoryConfig)
		require.NoError(t, err)
		require.NotNil(t, cfg.Rules)

		withFile, err := calculation.NewCalculatorWithRules(config.ResolveRules(cfg)).Run(context.Background(), cfg)
		require.NoError(t, err)
		defaults, err := calculation.NewCalculator().Run(context.Background(), cfg)
		require.NoError(t, err)

		// the regulatory fixture restates the defaults
		assert.True(t, withFile.TotalAnnualTax().Equal(defaults.TotalAnnualTax()))
	})
}

// TestErrorHandling tests error conditions
func TestErrorHandling(t *testing.T) {
	t.Run("missing_config_file", func(t *testing.T) {
		_, err := config.NewInputParser().LoadFromFile("nonexistent.yaml")
		assert.Error(t, err, "Should fail for missing config file")
	})

	t.Run("invalid_config_structure", func(t *testing.T) {
		err := config.NewInputParser().ValidateConfiguration(&domain.Configuration{})
		assert.Error(t, err, "Should fail validation for an empty batch")
	})

	t.Run("missing_regulatory_file", func(t *testing.T) {
		_, err := config.NewInputParser().LoadFromFileWithRegulatory(exampleConfig, "nonexistent-regulatory.yaml")
		assert.Error(t, err)
	})

	t.Run("cancelled_context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := calculation.NewCalculator().Run(ctx, loadExample(t))
		assert.ErrorIs(t, err, context.Canceled)
	})
}

// TestPerformance tests basic performance requirements
func TestPerformance(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping performance tests in short mode")
	}

	t.Run("calculation_performance", func(t *testing.T) {
		cfg := loadExample(t)
		calc := calculation.NewCalculator()

		start := time.Now()
		for i := 0; i < 1000; i++ {
			_, err := calc.Run(context.Background(), cfg)
			require.NoError(t, err)
		}
		duration := time.Since(start)

		assert.Less(t, duration, 10*time.Second, "1000 batch runs should complete within 10 seconds")
		t.Logf("1000 batch runs completed in %v", duration)
	})
}

// TestDataConsistency tests data consistency across operations
func TestDataConsistency(t *testing.T) {
	t.Run("calculation_consistency", func(t *testing.T) {
		cfg := loadExample(t)
		calc := calculation.NewCalculator()

		first, err := calc.Run(context.Background(), cfg)
		require.NoError(t, err)
		second, err := calc.Run(context.Background(), cfg)
		require.NoError(t, err)

		require.Equal(t, len(first.Results), len(second.Results))
		for i := range first.Results {
			a, b := first.Results[i].Result, second.Results[i].Result
			assert.True(t, a.TotalAnnualTax.Equal(b.TotalAnnualTax), "Annual tax should be deterministic")
			assert.True(t, a.DecemberTax.Equal(b.DecemberTax), "December tax should be deterministic")
			assert.Equal(t, a.Monthly.Iterations, b.Monthly.Iterations)
		}
	})

	t.Run("batch_matches_single_calculation", func(t *testing.T) {
		cfg := loadExample(t)
		calc := calculation.NewCalculator()

		report, err := calc.Run(context.Background(), cfg)
		require.NoError(t, err)

		for i, entry := range cfg.Taxpayers {
			single := calc.ReconcileAnnual(entry.AnnualInput())
			assert.True(t, single.TotalAnnualTax.Equal(report.Results[i].Result.TotalAnnualTax), entry.Name)

			byIndex, err := calc.RunTaxpayer(context.Background(), cfg, i)
			require.NoError(t, err)
			assert.True(t, byIndex.Result.DecemberTax.Equal(report.Results[i].Result.DecemberTax), entry.Name)
		}
	})

	t.Run("schedule_sums_to_annual_tax", func(t *testing.T) {
		report, err := calculation.NewCalculator().Run(context.Background(), loadExample(t))
		require.NoError(t, err)

		for _, tr := range report.Results {
			total := decimal.Zero
			for _, row := range tr.Result.Schedule() {
				total = total.Add(row.Tax)
			}
			assert.True(t, total.Equal(tr.Result.TotalAnnualTax), tr.Name)
		}
	})
}
