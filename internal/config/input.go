package config

import (
	"fmt"
	"os"

	"github.com/rgehrsitz/pajak/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of taxpayer input files and regulatory overrides
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a taxpayer batch from a YAML (or JSON) file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates a taxpayer batch
func (ip *InputParser) Parse(data []byte) (*domain.Configuration, error) {
	var config domain.Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// LoadFromFileWithRegulatory loads a taxpayer batch and replaces any inline
// rules with the contents of a separate regulatory file. An empty regulatory
// path behaves like LoadFromFile.
func (ip *InputParser) LoadFromFileWithRegulatory(inputFile, regulatoryFile string) (*domain.Configuration, error) {
	config, err := ip.LoadFromFile(inputFile)
	if err != nil {
		return nil, err
	}
	if regulatoryFile == "" {
		return config, nil
	}

	rules, err := ip.LoadRegulatory(regulatoryFile)
	if err != nil {
		return nil, err
	}
	config.Rules = rules
	return config, nil
}

// LoadRegulatory reads a regulatory override file. Sections left out of the
// file keep their default values.
func (ip *InputParser) LoadRegulatory(filename string) (*domain.Rules, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read regulatory file %s: %w", filename, err)
	}

	var rules domain.Rules
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("failed to parse regulatory YAML: %w", err)
	}

	merged := rules.WithDefaults()
	if err := ip.ValidateRules(&merged); err != nil {
		return nil, fmt.Errorf("regulatory validation failed: %w", err)
	}
	return &merged, nil
}

// ResolveRules returns the rules a configuration should be calculated with
func ResolveRules(config *domain.Configuration) domain.Rules {
	if config == nil || config.Rules == nil {
		return domain.DefaultRules()
	}
	return config.Rules.WithDefaults()
}

// ValidateConfiguration validates the loaded configuration. Method and
// marital status spellings are normalized in place.
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if len(config.Taxpayers) == 0 {
		return fmt.Errorf("no taxpayers provided")
	}

	for i := range config.Taxpayers {
		entry := &config.Taxpayers[i]
		if err := ip.validateEntry(entry); err != nil {
			return fmt.Errorf("taxpayer %d (%s) validation failed: %w", i, entry.Name, err)
		}
	}

	if config.Rules != nil {
		merged := config.Rules.WithDefaults()
		if err := ip.ValidateRules(&merged); err != nil {
			return fmt.Errorf("rules validation failed: %w", err)
		}
	}
	return nil
}

func (ip *InputParser) validateEntry(entry *domain.TaxpayerEntry) error {
	if entry.Name == "" {
		return fmt.Errorf("name is required")
	}

	method, err := domain.ParseMethod(string(entry.Method))
	if err != nil {
		return err
	}
	entry.Method = method

	in := entry.AnnualInput()
	if err := ValidateAnnualInput(&in); err != nil {
		return err
	}
	entry.Taxpayer = in.Taxpayer
	return nil
}

// ValidateAnnualInput checks a single calculation input. The marital status
// is normalized in place. Dependents above the statutory cap are accepted and
// capped during calculation.
func ValidateAnnualInput(in *domain.AnnualInput) error {
	if in.Taxpayer.MaritalStatus == "" {
		return fmt.Errorf("marital status is required")
	}
	status, err := domain.ParseMaritalStatus(string(in.Taxpayer.MaritalStatus))
	if err != nil {
		return err
	}
	in.Taxpayer.MaritalStatus = status

	if in.Taxpayer.Dependents < 0 {
		return fmt.Errorf("dependents cannot be negative")
	}

	amounts := []struct {
		name  string
		value decimal.Decimal
	}{
		{"salary", in.Compensation.Salary},
		{"allowance", in.Compensation.Allowance},
		{"annual bonus", in.Compensation.AnnualBonus},
		{"pension contribution", in.Deductions.PensionMonthly},
		{"zakat", in.Deductions.ZakatMonthly},
	}
	for _, a := range amounts {
		if a.value.IsNegative() {
			return fmt.Errorf("%s cannot be negative", a.name)
		}
	}
	return nil
}

// ValidateRules checks that a rule set is usable by the calculator
func (ip *InputParser) ValidateRules(rules *domain.Rules) error {
	one := decimal.NewFromInt(1)
	rates := []struct {
		name  string
		value decimal.Decimal
	}{
		{"standard cost rate", rules.StandardCost.Rate},
		{"JKK rate", rules.Insurance.JKKRate},
		{"JKM rate", rules.Insurance.JKMRate},
		{"JHT rate", rules.Pension.JHTRate},
		{"JP rate", rules.Pension.JPRate},
		{"no-NPWP surcharge", rules.NoNPWPSurcharge},
	}
	for _, r := range rates {
		if r.value.IsNegative() || r.value.GreaterThan(one) {
			return fmt.Errorf("%s must be between 0 and 1", r.name)
		}
	}

	if rules.PTKP.Base.IsNegative() || rules.PTKP.Married.IsNegative() || rules.PTKP.Dependent.IsNegative() {
		return fmt.Errorf("PTKP amounts cannot be negative")
	}
	if rules.StandardCost.AnnualCap.IsNegative() {
		return fmt.Errorf("standard cost cap cannot be negative")
	}
	if rules.Pension.JPSalaryCap.IsNegative() {
		return fmt.Errorf("JP salary cap cannot be negative")
	}

	if len(rules.Brackets) == 0 {
		return fmt.Errorf("at least one progressive bracket is required")
	}
	lower := decimal.Zero
	for i, b := range rules.Brackets {
		if b.Rate.IsNegative() || b.Rate.GreaterThan(one) {
			return fmt.Errorf("bracket %d rate must be between 0 and 1", i)
		}
		last := i == len(rules.Brackets)-1
		if b.Unbounded() {
			if !last {
				return fmt.Errorf("bracket %d: only the last bracket may be unbounded", i)
			}
			continue
		}
		if !b.UpTo.GreaterThan(lower) {
			return fmt.Errorf("bracket %d upper bound must be above %s", i, lower)
		}
		lower = b.UpTo
	}
	if !rules.Brackets[len(rules.Brackets)-1].Unbounded() {
		return fmt.Errorf("the last progressive bracket must be unbounded (up_to omitted)")
	}
	return nil
}
