package domain

import (
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Rules contains the regulatory parameters for PPh 21 reconciliation.
// Loaded from regulatory.yaml when supplied, otherwise DefaultRules applies.
// The TER tables themselves are not configurable.
type Rules struct {
	Metadata             RulesMetadata        `yaml:"metadata" json:"metadata"`
	PTKP                 PTKPRules            `yaml:"ptkp" json:"ptkp"`
	StandardCost         StandardCostRules    `yaml:"standard_cost" json:"standard_cost"`
	Insurance            InsuranceRules       `yaml:"insurance" json:"insurance"`
	Pension              PensionRules         `yaml:"pension" json:"pension"`
	Brackets             []ProgressiveBracket `yaml:"progressive_brackets" json:"progressive_brackets"`
	NoNPWPSurcharge      decimal.Decimal      `yaml:"no_npwp_surcharge" json:"no_npwp_surcharge"`
	GrossUpMaxIterations int                  `yaml:"gross_up_max_iterations" json:"gross_up_max_iterations"`

	decoded bool // fields were decoded over DefaultRules, so zeros are explicit
}

// UnmarshalYAML decodes over DefaultRules: keys left out of the document keep
// their default, and keys present keep their value even when it is zero.
func (r *Rules) UnmarshalYAML(value *yaml.Node) error {
	type plain Rules
	p := plain(DefaultRules())
	if err := value.Decode(&p); err != nil {
		return err
	}
	*r = Rules(p)
	r.decoded = true
	return nil
}

// RulesMetadata describes the regulatory data set
type RulesMetadata struct {
	DataYear    int    `yaml:"data_year" json:"data_year"`
	Description string `yaml:"description" json:"description"`
}

// PTKPRules are the annual non-taxable income thresholds
type PTKPRules struct {
	Base      decimal.Decimal `yaml:"base" json:"base"`
	Married   decimal.Decimal `yaml:"married" json:"married"`
	Dependent decimal.Decimal `yaml:"dependent" json:"dependent"` // per dependent, max 3
}

// StandardCostRules is biaya jabatan
type StandardCostRules struct {
	Rate      decimal.Decimal `yaml:"rate" json:"rate"`
	AnnualCap decimal.Decimal `yaml:"annual_cap" json:"annual_cap"`
}

// InsuranceRules are the employer-paid BPJS Ketenagakerjaan premiums that count as income
type InsuranceRules struct {
	JKKRate decimal.Decimal `yaml:"jkk_rate" json:"jkk_rate"` // work accident
	JKMRate decimal.Decimal `yaml:"jkm_rate" json:"jkm_rate"` // death
}

// PensionRules are the employee contributions deductible at year end
type PensionRules struct {
	JHTRate     decimal.Decimal `yaml:"jht_rate" json:"jht_rate"` // old-age savings
	JPRate      decimal.Decimal `yaml:"jp_rate" json:"jp_rate"`   // pension, capped
	JPSalaryCap decimal.Decimal `yaml:"jp_salary_cap" json:"jp_salary_cap"`
}

// ProgressiveBracket is one rung of the Pasal 17 ladder. A zero UpTo on the
// last bracket means unbounded.
type ProgressiveBracket struct {
	UpTo decimal.Decimal `yaml:"up_to" json:"up_to"`
	Rate decimal.Decimal `yaml:"rate" json:"rate"`
}

// Unbounded reports whether the bracket has no upper limit
func (b ProgressiveBracket) Unbounded() bool {
	return b.UpTo.IsZero()
}

// DefaultRules returns the 2024 parameters (UU HPP, PP 58/2023, PMK 168/2023)
func DefaultRules() Rules {
	return Rules{
		Metadata: RulesMetadata{
			DataYear:    2024,
			Description: "PPh 21 TER regime (PP 58/2023, PMK 168/2023), Pasal 17 per UU HPP",
		},
		PTKP: PTKPRules{
			Base:      decimal.NewFromInt(54_000_000),
			Married:   decimal.NewFromInt(4_500_000),
			Dependent: decimal.NewFromInt(4_500_000),
		},
		StandardCost: StandardCostRules{
			Rate:      decimal.RequireFromString("0.05"),
			AnnualCap: decimal.NewFromInt(6_000_000),
		},
		Insurance: InsuranceRules{
			JKKRate: decimal.RequireFromString("0.0024"),
			JKMRate: decimal.RequireFromString("0.003"),
		},
		Pension: PensionRules{
			JHTRate:     decimal.RequireFromString("0.02"),
			JPRate:      decimal.RequireFromString("0.01"),
			JPSalaryCap: decimal.NewFromInt(10_042_300),
		},
		Brackets: []ProgressiveBracket{
			{UpTo: decimal.NewFromInt(60_000_000), Rate: decimal.RequireFromString("0.05")},
			{UpTo: decimal.NewFromInt(250_000_000), Rate: decimal.RequireFromString("0.15")},
			{UpTo: decimal.NewFromInt(500_000_000), Rate: decimal.RequireFromString("0.25")},
			{UpTo: decimal.NewFromInt(5_000_000_000), Rate: decimal.RequireFromString("0.30")},
			{Rate: decimal.RequireFromString("0.35")},
		},
		NoNPWPSurcharge:      decimal.RequireFromString("0.20"),
		GrossUpMaxIterations: 50,
	}
}

// WithDefaults fills zero-valued sections from DefaultRules. Rules decoded
// from YAML already carry their defaults and only get the iteration cap
// checked.
func (r Rules) WithDefaults() Rules {
	d := DefaultRules()
	if r.GrossUpMaxIterations <= 0 {
		r.GrossUpMaxIterations = d.GrossUpMaxIterations
	}
	if r.decoded {
		return r
	}
	if r.Metadata.DataYear == 0 {
		r.Metadata = d.Metadata
	}
	if r.PTKP.Base.IsZero() {
		r.PTKP = d.PTKP
	}
	if r.StandardCost.Rate.IsZero() {
		r.StandardCost = d.StandardCost
	}
	if r.Insurance.JKKRate.IsZero() && r.Insurance.JKMRate.IsZero() {
		r.Insurance = d.Insurance
	}
	if r.Pension.JHTRate.IsZero() && r.Pension.JPRate.IsZero() {
		r.Pension = d.Pension
	}
	if len(r.Brackets) == 0 {
		r.Brackets = d.Brackets
	}
	if r.NoNPWPSurcharge.IsZero() {
		r.NoNPWPSurcharge = d.NoNPWPSurcharge
	}
	return r
}
