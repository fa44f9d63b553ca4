package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/pajak/internal/domain"
)

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	next, ok := updated.(Model)
	require.True(t, ok)
	return next, cmd
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return m
}

func key(t *testing.T, m Model, k tea.KeyType) Model {
	t.Helper()
	m, _ = send(t, m, tea.KeyMsg{Type: k})
	return m
}

func TestNewModel_Defaults(t *testing.T) {
	m := NewModel("")

	assert.Equal(t, SceneCalculator, m.currentScene)
	assert.Equal(t, fieldSalary, m.focus)
	assert.Equal(t, domain.MethodGross, m.method)
	assert.True(t, m.hasNPWP)
	require.NoError(t, m.inputErr)
	require.NotNil(t, m.result)
	assert.Equal(t, domain.CategoryA, m.result.Monthly.Category)
	assert.True(t, m.result.TotalAnnualTax.IsZero())
}

func TestTyping_RecomputesWorkedExample(t *testing.T) {
	m := typeText(t, NewModel(""), "10.050.000")

	require.NotNil(t, m.result)
	assert.True(t, m.result.Monthly.MonthlyTax.Equal(decimal.NewFromInt(201_000)))
	assert.True(t, m.result.TotalAnnualTax.Equal(decimal.NewFromInt(2_849_100)))
	assert.True(t, m.result.DecemberTax.Equal(decimal.NewFromInt(638_100)))
	assert.Contains(t, m.View(), "Rp 638.100")
}

func TestFocusNavigation(t *testing.T) {
	m := NewModel("")

	m = key(t, m, tea.KeyTab)
	assert.Equal(t, fieldAllowance, m.focus)
	assert.True(t, m.inputs[fieldAllowance].Focused())
	assert.False(t, m.inputs[fieldSalary].Focused())

	m = key(t, m, tea.KeyShiftTab)
	m = key(t, m, tea.KeyShiftTab)
	m = key(t, m, tea.KeyShiftTab)
	assert.Equal(t, fieldStatus, m.focus)

	m = key(t, m, tea.KeyUp)
	assert.Equal(t, fieldZakat, m.focus, "focus wraps around")
}

func TestToggleMethod(t *testing.T) {
	m := typeText(t, NewModel(""), "10000000")

	m = key(t, m, tea.KeyCtrlT)
	require.NotNil(t, m.result)
	assert.Equal(t, domain.MethodGrossUp, m.result.Monthly.Method)
	assert.Equal(t, "230179.03", m.result.Monthly.TaxAllowance.StringFixed(2))
	assert.Contains(t, m.View(), "Tax allowance")

	m = key(t, m, tea.KeyCtrlT)
	assert.Equal(t, domain.MethodGross, m.result.Monthly.Method)
}

func TestToggleNPWPAndInsurance(t *testing.T) {
	m := typeText(t, NewModel(""), "10050000")

	m = key(t, m, tea.KeyCtrlN)
	require.NotNil(t, m.result)
	assert.True(t, m.result.Surcharge.Equal(decimal.NewFromInt(569_820)))

	m = key(t, m, tea.KeyCtrlE)
	assert.True(t, m.result.Monthly.InsuranceAddOn.IsPositive())
}

func TestInvalidInput(t *testing.T) {
	m := NewModel("")
	m.setFocus(fieldStatus)
	m = key(t, m, tea.KeyBackspace)
	m = key(t, m, tea.KeyBackspace)
	m = typeText(t, m, "X")

	require.Error(t, m.inputErr)
	assert.Nil(t, m.result)
	assert.Nil(t, m.comparison)
	assert.Contains(t, m.View(), "unknown marital status")

	m = key(t, m, tea.KeyBackspace)
	m = typeText(t, m, "K")
	assert.NoError(t, m.inputErr)
	assert.NotNil(t, m.result)
}

func TestMarriedWithThreeDependents(t *testing.T) {
	m := NewModel("")
	m.setValue(fieldStatus, "K")
	m.setValue(fieldDependents, "5")
	m.setValue(fieldSalary, "12050000")
	m.recalculate()

	require.NotNil(t, m.result)
	assert.Equal(t, domain.CategoryC, m.result.Monthly.Category)
	assert.Equal(t, "K/3", m.result.StatusCode)
	assert.Equal(t, "0.02", m.result.Monthly.Rate.String())
}

func TestCopySummary(t *testing.T) {
	var copied string
	m := typeText(t, NewModel(""), "10050000")
	m.copy = func(s string) error {
		copied = s
		return nil
	}

	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyCtrlY})
	require.NotNil(t, cmd)
	msg := cmd()
	require.IsType(t, CopiedMsg{}, msg)

	m, _ = send(t, m, msg)
	assert.Equal(t, "Summary copied to clipboard", m.status)
	assert.Contains(t, copied, "TK/0 TER A gross")
	assert.Contains(t, copied, "December 638100")
}

func TestCopySummary_Failure(t *testing.T) {
	m := NewModel("")
	m.copy = func(string) error { return errors.New("no clipboard utility") }

	_, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyCtrlY})
	m, _ = send(t, m, cmd())
	assert.Contains(t, m.status, "no clipboard utility")
}

func TestNavigation(t *testing.T) {
	m := typeText(t, NewModel(""), "10000000")

	_, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyF2})
	require.NotNil(t, cmd)
	m, _ = send(t, m, cmd())
	assert.Equal(t, SceneCompare, m.currentScene)
	view := m.View()
	assert.Contains(t, view, "Gross-Up")
	assert.Contains(t, view, "Employer extra cost")

	before := m.inputs[fieldSalary].Value()
	m = typeText(t, m, "9")
	assert.Equal(t, before, m.inputs[fieldSalary].Value(), "fields are read-only off the calculator")

	_, cmd = send(t, m, tea.KeyMsg{Type: tea.KeyF3})
	m, _ = send(t, m, cmd())
	assert.Equal(t, SceneTER, m.currentScene)
	assert.Contains(t, m.View(), "TER CATEGORY A")

	_, cmd = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	m, _ = send(t, m, cmd())
	assert.Equal(t, SceneCalculator, m.currentScene)

	_, cmd = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestConfigLoaded(t *testing.T) {
	cmd := loadConfigCmd("../../test/testdata/example.yaml")
	msg := cmd()
	loaded, ok := msg.(ConfigLoadedMsg)
	require.True(t, ok, "got %T", msg)
	require.Len(t, loaded.Config.Taxpayers, 3)

	m, _ := send(t, NewModel("example.yaml"), loaded)
	assert.Equal(t, "10050000", m.inputs[fieldSalary].Value())
	assert.Equal(t, "TK", m.inputs[fieldStatus].Value())
	assert.Equal(t, "Loaded example.yaml", m.status)
	require.NotNil(t, m.result)
	assert.True(t, m.result.DecemberTax.Equal(decimal.NewFromInt(638_100)))
}

func TestConfigLoad_Error(t *testing.T) {
	msg := loadConfigCmd("does-not-exist.yaml")()
	errMsg, ok := msg.(ErrorMsg)
	require.True(t, ok)

	m, _ := send(t, NewModel(""), errMsg)
	assert.Contains(t, m.View(), "Press any key to continue")

	m = key(t, m, tea.KeyEnter)
	assert.NoError(t, m.err)
}

func TestWindowResize(t *testing.T) {
	m, _ := send(t, NewModel(""), tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, 120, m.width)
	assert.Equal(t, 40, m.height)
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in       string
		expected int64
		wantErr  bool
	}{
		{"10050000", 10_050_000, false},
		{"10.050.000", 10_050_000, false},
		{"Rp 10,050,000", 10_050_000, false},
		{"", 0, false},
		{"  ", 0, false},
		{"abc", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			d, err := parseAmount(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, d.Equal(decimal.NewFromInt(tt.expected)))
		})
	}
}
