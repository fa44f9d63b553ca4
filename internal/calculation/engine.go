package calculation

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/pajak/internal/domain"
)

// Run reconciles every taxpayer in a configuration, in file order
func (c *Calculator) Run(ctx context.Context, cfg *domain.Configuration) (*domain.CalculationReport, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is nil")
	}
	if len(cfg.Taxpayers) == 0 {
		return nil, fmt.Errorf("no taxpayers provided")
	}

	report := &domain.CalculationReport{
		Rules:   c.Rules.Metadata,
		Results: make([]domain.TaxpayerResult, 0, len(cfg.Taxpayers)),
	}
	for i, entry := range cfg.Taxpayers {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("calculation cancelled at taxpayer %d: %w", i, err)
		}
		in := entry.AnnualInput()
		c.logger().Infof("calculating taxpayer %d (%s) category %s method %s", i, entry.Name, entry.Category(), in.Method)
		report.Results = append(report.Results, domain.TaxpayerResult{
			Name:   entry.Name,
			Input:  in,
			Result: c.ReconcileAnnual(in),
		})
	}
	return report, nil
}

// RunTaxpayer reconciles a single taxpayer by index
func (c *Calculator) RunTaxpayer(ctx context.Context, cfg *domain.Configuration, index int) (*domain.TaxpayerResult, error) {
	if cfg == nil || index < 0 || index >= len(cfg.Taxpayers) {
		return nil, fmt.Errorf("taxpayer index %d out of range", index)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entry := cfg.Taxpayers[index]
	in := entry.AnnualInput()
	return &domain.TaxpayerResult{Name: entry.Name, Input: in, Result: c.ReconcileAnnual(in)}, nil
}
