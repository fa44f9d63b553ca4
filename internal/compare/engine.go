package compare

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/pajak/internal/calculation"
	"github.com/rgehrsitz/pajak/internal/config"
	"github.com/rgehrsitz/pajak/internal/domain"
	"github.com/rgehrsitz/pajak/internal/transform"
)

// CompareEngine runs what-if scenarios against a base input
type CompareEngine struct {
	Calc              *calculation.Calculator
	MetricsCalculator *MetricsCalculator
	TemplateRegistry  *transform.TemplateRegistry
	TransformRegistry *transform.TransformRegistry
}

// NewCompareEngine creates a comparison engine with the built-in templates
func NewCompareEngine(calc *calculation.Calculator) *CompareEngine {
	if calc == nil {
		calc = calculation.NewCalculator()
	}
	return &CompareEngine{
		Calc:              calc,
		MetricsCalculator: NewMetricsCalculator(),
		TemplateRegistry:  transform.CreateBuiltInTemplates(),
		TransformRegistry: transform.NewTransformRegistry(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	BaseScenarioName string   // label for the base row; defaults to the taxpayer name or "base"
	Templates        []string // built-in template names, one scenario each
	Transforms       []string // "name:key=value" specs, one scenario each
}

// Compare reconciles base and one alternative per template or transform spec
func (ce *CompareEngine) Compare(ctx context.Context, base domain.AnnualInput, options CompareOptions) (*ComparisonSet, error) {
	if err := config.ValidateAnnualInput(&base); err != nil {
		return nil, fmt.Errorf("invalid base input: %w", err)
	}
	if len(options.Templates)+len(options.Transforms) == 0 {
		return nil, fmt.Errorf("at least one template or transform is required")
	}

	baseName := options.BaseScenarioName
	if baseName == "" {
		baseName = base.Taxpayer.Name
	}
	if baseName == "" {
		baseName = "base"
	}

	baseResult := ce.MetricsCalculator.CalculateMetrics(baseName, base, ce.Calc.ReconcileAnnual(base))
	baseResult.Description = "As configured"

	alternatives := []ComparisonResult{}
	run := func(name, description string, transforms []transform.InputTransform) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		modified, err := transform.ApplyTransforms(base, transforms)
		if err != nil {
			return fmt.Errorf("failed to apply %s: %w", name, err)
		}
		if err := config.ValidateAnnualInput(&modified); err != nil {
			return fmt.Errorf("scenario %s is invalid: %w", name, err)
		}

		alt := ce.MetricsCalculator.CalculateMetrics(name, modified, ce.Calc.ReconcileAnnual(modified))
		alt.Description = description
		alternatives = append(alternatives, ce.MetricsCalculator.CalculateComparison(alt, baseResult))
		return nil
	}

	for _, templateName := range options.Templates {
		template, ok := ce.TemplateRegistry.Get(templateName)
		if !ok {
			return nil, fmt.Errorf("template %s not found", templateName)
		}
		if err := run(template.Name, template.Description, template.Transforms); err != nil {
			return nil, err
		}
	}

	for _, spec := range options.Transforms {
		tr, err := ce.TransformRegistry.ParseTransformSpec(spec)
		if err != nil {
			return nil, err
		}
		if err := run(spec, tr.Description(), []transform.InputTransform{tr}); err != nil {
			return nil, err
		}
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   baseName,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}
