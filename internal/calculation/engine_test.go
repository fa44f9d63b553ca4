package calculation

import (
	"context"
	"fmt"
	"testing"

	"github.com/rgehrsitz/pajak/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCalculator(t *testing.T) {
	calc := NewCalculator()

	assert.NotNil(t, calc, "Should create calculator")
	assert.NotNil(t, calc.Logger, "Should initialize logger")
	assert.Equal(t, 2024, calc.Rules.Metadata.DataYear)
	assert.Len(t, calc.Rules.Brackets, 5)
	assert.Equal(t, 50, calc.Rules.GrossUpMaxIterations)
}

func TestNewCalculatorWithRules_FillsDefaults(t *testing.T) {
	calc := NewCalculatorWithRules(domain.Rules{
		PTKP: domain.PTKPRules{
			Base:      decimal.NewFromInt(60_000_000),
			Married:   decimal.NewFromInt(5_000_000),
			Dependent: decimal.NewFromInt(5_000_000),
		},
	})

	assert.True(t, calc.Rules.PTKP.Base.Equal(decimal.NewFromInt(60_000_000)), "override kept")
	assert.True(t, calc.Rules.StandardCost.AnnualCap.Equal(decimal.NewFromInt(6_000_000)), "missing section defaulted")
	assert.Len(t, calc.Rules.Brackets, 5)
}

func TestCalculator_SetLogger(t *testing.T) {
	calc := NewCalculator()

	customLogger := &TestLogger{}
	calc.SetLogger(customLogger)
	assert.Equal(t, customLogger, calc.Logger, "Should set custom logger")

	calc.SetLogger(nil)
	assert.NotNil(t, calc.Logger, "Should not be nil")
	assert.IsType(t, NopLogger{}, calc.Logger, "Should be no-op logger")
}

func testConfiguration() *domain.Configuration {
	return &domain.Configuration{
		Taxpayers: []domain.TaxpayerEntry{
			{
				Taxpayer:     domain.Taxpayer{Name: "Budi", MaritalStatus: domain.StatusSingle, HasNPWP: true},
				Compensation: salary(10_050_000),
			},
			{
				Taxpayer:     domain.Taxpayer{Name: "Sari", MaritalStatus: domain.StatusMarried, Dependents: 2, HasNPWP: true},
				Method:       domain.MethodGrossUp,
				Compensation: salary(25_000_000),
			},
		},
	}
}

func TestCalculator_Run(t *testing.T) {
	calc := NewCalculator()
	logger := &TestLogger{}
	calc.SetLogger(logger)

	report, err := calc.Run(context.Background(), testConfiguration())

	require.NoError(t, err)
	require.Len(t, report.Results, 2)
	assert.Equal(t, 2024, report.Rules.DataYear)

	assert.Equal(t, "Budi", report.Results[0].Name)
	assert.Equal(t, domain.MethodGross, report.Results[0].Input.Method, "empty method defaults to gross")
	assert.True(t, report.Results[0].Result.TotalAnnualTax.Equal(decimal.NewFromInt(2_849_100)))

	assert.Equal(t, "Sari", report.Results[1].Name)
	assert.Equal(t, domain.CategoryB, report.Results[1].Result.Monthly.Category)
	assert.Equal(t, domain.MethodGrossUp, report.Results[1].Result.Monthly.Method)

	expectedTotal := report.Results[0].Result.TotalAnnualTax.Add(report.Results[1].Result.TotalAnnualTax)
	assert.True(t, report.TotalAnnualTax().Equal(expectedTotal))
	assert.NotEmpty(t, logger.messages)
}

func TestCalculator_Run_Errors(t *testing.T) {
	calc := NewCalculator()

	_, err := calc.Run(context.Background(), nil)
	assert.Error(t, err)

	_, err = calc.Run(context.Background(), &domain.Configuration{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no taxpayers")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = calc.Run(ctx, testConfiguration())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCalculator_RunTaxpayer(t *testing.T) {
	calc := NewCalculator()
	cfg := testConfiguration()

	result, err := calc.RunTaxpayer(context.Background(), cfg, 1)
	require.NoError(t, err)
	assert.Equal(t, "Sari", result.Name)
	assert.Equal(t, "K/2", result.Result.StatusCode)

	result, err = calc.RunTaxpayer(context.Background(), cfg, 5)
	assert.Error(t, err, "Should error for invalid index")
	assert.Nil(t, result, "Should return nil result")
	assert.Contains(t, err.Error(), "taxpayer index 5 out of range", "Should have specific error message")
}

// TestLogger is a simple logger for testing
type TestLogger struct {
	messages []string
	warnings []string
}

func (tl *TestLogger) Debugf(format string, args ...any) {
	tl.messages = append(tl.messages, "DEBUG: "+fmt.Sprintf(format, args...))
}

func (tl *TestLogger) Infof(format string, args ...any) {
	tl.messages = append(tl.messages, "INFO: "+fmt.Sprintf(format, args...))
}

func (tl *TestLogger) Warnf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	tl.messages = append(tl.messages, "WARN: "+msg)
	tl.warnings = append(tl.warnings, msg)
}

func (tl *TestLogger) Errorf(format string, args ...any) {
	tl.messages = append(tl.messages, "ERROR: "+fmt.Sprintf(format, args...))
}
