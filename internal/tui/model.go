package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/pajak/internal/calculation"
	"github.com/rgehrsitz/pajak/internal/config"
	"github.com/rgehrsitz/pajak/internal/domain"
)

type field int

const (
	fieldStatus field = iota
	fieldDependents
	fieldSalary
	fieldAllowance
	fieldBonus
	fieldPension
	fieldZakat
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Status (TK/K/HB)",
	"Dependents",
	"Salary / month",
	"Allowance / month",
	"Annual bonus",
	"Pension / month",
	"Zakat / month",
}

// Model represents the entire application state. Every edit recomputes the
// reconciliation synchronously; the calculator is fast enough that no
// background command is needed.
type Model struct {
	currentScene  Scene
	previousScene Scene

	width  int
	height int

	configPath string
	calc       *calculation.Calculator

	inputs           []textinput.Model
	focus            field
	method           domain.Method
	hasNPWP          bool
	includeInsurance bool

	result     *domain.ReconciliationResult
	comparison *domain.MethodComparison
	inputErr   error

	err    error
	status string

	// copy writes to the system clipboard; replaced in tests
	copy func(string) error
}

// NewModel creates the calculator. A non-empty configPath prefills the form
// from the first taxpayer in that batch file.
func NewModel(configPath string) Model {
	m := Model{
		currentScene: SceneCalculator,
		configPath:   configPath,
		calc:         calculation.NewCalculator(),
		inputs:       make([]textinput.Model, fieldCount),
		focus:        fieldSalary,
		method:       domain.MethodGross,
		hasNPWP:      true,
		copy:         clipboard.WriteAll,
		width:        100,
		height:       30,
	}
	for i := range m.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 18
		ti.Width = 18
		ti.Placeholder = "0"
		m.inputs[i] = ti
	}
	m.inputs[fieldStatus].Placeholder = "TK"
	m.inputs[fieldStatus].CharLimit = 2
	m.inputs[fieldDependents].CharLimit = 2
	m.setValue(fieldStatus, "TK")
	m.setValue(fieldDependents, "0")

	m.setFocus(m.focus)
	m.recalculate()
	return m
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	if m.configPath == "" {
		return textinput.Blink
	}
	return tea.Batch(loadConfigCmd(m.configPath), textinput.Blink)
}

// loadConfigCmd returns a command that loads the configuration file
func loadConfigCmd(path string) tea.Cmd {
	return func() tea.Msg {
		cfg, err := config.NewInputParser().LoadFromFile(path)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return ConfigLoadedMsg{Config: cfg}
	}
}

// copyCmd returns a command that writes text to the clipboard
func copyCmd(write func(string) error, text string) tea.Cmd {
	return func() tea.Msg {
		return CopiedMsg{Err: write(text)}
	}
}

func (m *Model) setValue(f field, v string) {
	m.inputs[f].SetValue(v)
}

func (m *Model) setFocus(f field) {
	m.focus = f
	for i := range m.inputs {
		if field(i) == f {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
}

func (m *Model) moveFocus(delta int) {
	next := (int(m.focus) + delta + int(fieldCount)) % int(fieldCount)
	m.setFocus(field(next))
}

// applyConfig prefills the form from the first taxpayer and adopts the
// batch's rules
func (m *Model) applyConfig(cfg *domain.Configuration) {
	if cfg == nil {
		return
	}
	m.calc = calculation.NewCalculatorWithRules(config.ResolveRules(cfg))
	if len(cfg.Taxpayers) == 0 {
		return
	}

	in := cfg.Taxpayers[0].AnnualInput()
	m.setValue(fieldStatus, string(in.Taxpayer.MaritalStatus))
	m.setValue(fieldDependents, strconv.Itoa(in.Taxpayer.Dependents))
	m.setValue(fieldSalary, in.Compensation.Salary.String())
	m.setValue(fieldAllowance, in.Compensation.Allowance.String())
	m.setValue(fieldBonus, in.Compensation.AnnualBonus.String())
	m.setValue(fieldPension, in.Deductions.PensionMonthly.String())
	m.setValue(fieldZakat, in.Deductions.ZakatMonthly.String())
	m.method = in.Method
	m.hasNPWP = in.Taxpayer.HasNPWP
	m.includeInsurance = in.Compensation.IncludeInsurance
}

// Input builds the calculation input from the form
func (m Model) Input() (domain.AnnualInput, error) {
	deps := 0
	if v := strings.TrimSpace(m.inputs[fieldDependents].Value()); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return domain.AnnualInput{}, fmt.Errorf("dependents: %q is not a whole number", v)
		}
		deps = n
	}

	amounts := make(map[field]decimal.Decimal, 5)
	for _, f := range []field{fieldSalary, fieldAllowance, fieldBonus, fieldPension, fieldZakat} {
		d, err := parseAmount(m.inputs[f].Value())
		if err != nil {
			return domain.AnnualInput{}, fmt.Errorf("%s: %w", strings.ToLower(fieldLabels[f]), err)
		}
		amounts[f] = d
	}

	return domain.AnnualInput{
		Taxpayer: domain.Taxpayer{
			MaritalStatus: domain.MaritalStatus(m.inputs[fieldStatus].Value()),
			Dependents:    deps,
			HasNPWP:       m.hasNPWP,
		},
		Compensation: domain.Compensation{
			Salary:           amounts[fieldSalary],
			Allowance:        amounts[fieldAllowance],
			IncludeInsurance: m.includeInsurance,
			AnnualBonus:      amounts[fieldBonus],
		},
		Method: m.method,
		Deductions: domain.Deductions{
			PensionMonthly: amounts[fieldPension],
			ZakatMonthly:   amounts[fieldZakat],
		},
	}, nil
}

func (m *Model) recalculate() {
	in, err := m.Input()
	if err == nil {
		err = config.ValidateAnnualInput(&in)
	}
	if err != nil {
		m.inputErr = err
		m.result = nil
		m.comparison = nil
		return
	}

	res := m.calc.ReconcileAnnual(in)
	cmp := m.calc.CompareMethods(in)
	m.inputErr = nil
	m.result = &res
	m.comparison = &cmp
}

// parseAmount accepts whole Rupiah written as "10050000", "10.050.000",
// "10,050,000" or "Rp 10.050.000". Empty means zero.
func parseAmount(s string) (decimal.Decimal, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	v = strings.TrimPrefix(v, "rp")
	v = strings.NewReplacer(".", "", ",", "", "_", "", " ", "").Replace(v)
	if v == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%q is not an amount", s)
	}
	return d, nil
}
