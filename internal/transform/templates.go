package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/pajak/internal/domain"
	"github.com/shopspring/decimal"
)

// TemplateRegistry manages built-in what-if templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Description string
	Transforms  []InputTransform
}

// NewTemplateRegistry creates an empty template registry
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(strings.TrimSpace(name))]
	return t, ok
}

// List returns all registered template names, sorted
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CreateBuiltInTemplates creates a template registry with common payroll
// what-ifs
func CreateBuiltInTemplates() *TemplateRegistry {
	registry := NewTemplateRegistry()

	for _, pct := range []int64{5, 10, 20} {
		registry.Register(Template{
			Name:        fmt.Sprintf("raise_%dpct", pct),
			Description: fmt.Sprintf("Raise salary by %d%%", pct),
			Transforms:  []InputTransform{&RaiseSalary{Percent: decimal.NewFromInt(pct)}},
		})
	}

	registry.Register(Template{
		Name:        "thr",
		Description: "Pay a one-month THR bonus",
		Transforms:  []InputTransform{&SetBonusMonths{Months: decimal.NewFromInt(1)}},
	})

	registry.Register(Template{
		Name:        "married",
		Description: "Marry (status K)",
		Transforms:  []InputTransform{&SetMaritalStatus{Status: domain.StatusMarried}},
	})

	registry.Register(Template{
		Name:        "add_dependent",
		Description: "Add one dependent",
		Transforms:  []InputTransform{&AddDependents{Delta: 1}},
	})

	registry.Register(Template{
		Name:        "married_with_child",
		Description: "Marry and add one dependent",
		Transforms: []InputTransform{
			&SetMaritalStatus{Status: domain.StatusMarried},
			&AddDependents{Delta: 1},
		},
	})

	registry.Register(Template{
		Name:        "gross_up",
		Description: "Employer bears the tax (gross-up)",
		Transforms:  []InputTransform{&SetMethod{Method: domain.MethodGrossUp}},
	})

	registry.Register(Template{
		Name:        "gross",
		Description: "Employee bears the tax (gross)",
		Transforms:  []InputTransform{&SetMethod{Method: domain.MethodGross}},
	})

	registry.Register(Template{
		Name:        "with_npwp",
		Description: "Register for an NPWP",
		Transforms:  []InputTransform{&SetNPWP{Has: true}},
	})

	registry.Register(Template{
		Name:        "without_npwp",
		Description: "Without NPWP (20% surcharge)",
		Transforms:  []InputTransform{&SetNPWP{Has: false}},
	})

	registry.Register(Template{
		Name:        "with_insurance",
		Description: "Count employer JKK/JKM premiums as income",
		Transforms:  []InputTransform{&SetInsurance{Include: true}},
	})

	return registry
}

// ApplyTemplate applies a template to a base input
func ApplyTemplate(base domain.AnnualInput, template Template) (domain.AnnualInput, error) {
	return ApplyTransforms(base, template.Transforms)
}

// ParseTemplateList parses a comma-separated list of template names
func ParseTemplateList(templateList string) []string {
	if templateList == "" {
		return nil
	}

	parts := strings.Split(templateList, ",")
	templates := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			templates = append(templates, trimmed)
		}
	}
	return templates
}

// GetTemplateHelp returns formatted help text for all templates
func GetTemplateHelp(registry *TemplateRegistry) string {
	if len(registry.templates) == 0 {
		return "No templates registered"
	}

	var sb strings.Builder
	sb.WriteString("Available Templates:\n\n")

	groups := map[string][]Template{}
	order := []string{"Pay", "Family", "Withholding"}
	for _, name := range registry.List() {
		t := registry.templates[name]
		switch {
		case strings.HasPrefix(name, "raise_"), name == "thr", name == "with_insurance":
			groups["Pay"] = append(groups["Pay"], t)
		case strings.HasPrefix(name, "married"), name == "add_dependent":
			groups["Family"] = append(groups["Family"], t)
		default:
			groups["Withholding"] = append(groups["Withholding"], t)
		}
	}

	for _, group := range order {
		templates := groups[group]
		if len(templates) == 0 {
			continue
		}

		sb.WriteString(fmt.Sprintf("%s:\n", group))
		for _, t := range templates {
			sb.WriteString(fmt.Sprintf("  %-20s %s\n", t.Name, t.Description))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Usage:\n")
	sb.WriteString("  pajak what-if --salary 10050000 --status TK --with raise_10pct,married\n")
	sb.WriteString("  pajak what-if --salary 10050000 --transform raise_salary:percent=15\n")

	return sb.String()
}
