package domain

// Configuration is a batch of taxpayers loaded from an input YAML file
type Configuration struct {
	Taxpayers []TaxpayerEntry `yaml:"taxpayers" json:"taxpayers"`
	Rules     *Rules          `yaml:"rules,omitempty" json:"rules,omitempty"` // optional inline overrides
}

// TaxpayerEntry is one employee in the input file
type TaxpayerEntry struct {
	Taxpayer     `yaml:",inline"`
	Method       Method       `yaml:"method" json:"method"`
	Compensation Compensation `yaml:"compensation" json:"compensation"`
	Deductions   Deductions   `yaml:"deductions" json:"deductions"`
}

// AnnualInput converts the entry into the reconciliation input
func (e TaxpayerEntry) AnnualInput() AnnualInput {
	method := e.Method
	if method == "" {
		method = MethodGross
	}
	return AnnualInput{
		Taxpayer:     e.Taxpayer,
		Compensation: e.Compensation,
		Method:       method,
		Deductions:   e.Deductions,
	}
}
