package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/pajak/internal/calculation"
	"github.com/rgehrsitz/pajak/internal/domain"
	"github.com/rgehrsitz/pajak/internal/output"
	"github.com/rgehrsitz/pajak/internal/tui/components"
)

// View renders the current state of the application
func (m Model) View() string {
	if m.err != nil {
		return m.renderApp(ErrorStyle.Render(fmt.Sprintf("Error: %s\n\nPress any key to continue...", m.err)))
	}

	var content string
	switch m.currentScene {
	case SceneCalculator:
		content = m.renderCalculator()
	case SceneCompare:
		content = m.renderCompare()
	case SceneTER:
		content = m.renderTER()
	case SceneHelp:
		content = m.renderHelp()
	default:
		content = "Unknown scene"
	}
	return m.renderApp(content)
}

// renderApp wraps content with title bar and status bar
func (m Model) renderApp(content string) string {
	title := lipgloss.JoinVertical(lipgloss.Left,
		TitleStyle.Render("PAJAK - PPh 21 TER Calculator"),
		SubtitleStyle.Render(m.currentScene.String()),
	)
	return lipgloss.JoinVertical(lipgloss.Left, title, content, m.renderStatusBar())
}

func (m Model) renderStatusBar() string {
	shortcuts := []string{
		formatShortcut("tab", "next"),
		formatShortcut("^t", "method"),
		formatShortcut("^n", "NPWP"),
		formatShortcut("^e", "insurance"),
		formatShortcut("^y", "copy"),
		formatShortcut("F2", "compare"),
		formatShortcut("F3", "TER"),
		formatShortcut("F1", "help"),
		formatShortcut("esc", "back/quit"),
	}
	text := strings.Join(shortcuts, " • ")
	if m.status != "" {
		text += "  " + InfoStyle.Render(m.status)
	}
	return StatusBarStyle.Width(m.width).Render(text)
}

func formatShortcut(key, desc string) string {
	return StatusKeyStyle.Render(key) + " " + desc
}

func (m Model) renderCalculator() string {
	return lipgloss.JoinHorizontal(lipgloss.Top, m.renderForm(), " ", m.renderResult())
}

func (m Model) renderForm() string {
	var b strings.Builder
	for i, in := range m.inputs {
		label := FieldLabelStyle
		if field(i) == m.focus {
			label = FocusedLabelStyle
		}
		b.WriteString(label.Render(fieldLabels[i]))
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(FieldLabelStyle.Render("Method") + string(m.method) + "\n")
	b.WriteString(FieldLabelStyle.Render("NPWP") + yesNo(m.hasNPWP) + "\n")
	b.WriteString(FieldLabelStyle.Render("JKK/JKM insurance") + yesNo(m.includeInsurance))
	if m.inputErr != nil {
		b.WriteString("\n\n" + ErrorStyle.Render(m.inputErr.Error()))
	}
	return ActiveBorderStyle.Render(b.String())
}

func (m Model) renderResult() string {
	if m.result == nil {
		return BorderStyle.Render(InfoStyle.Render("Fix the highlighted input to see results"))
	}
	r := m.result
	mo := r.Monthly

	december := components.NewMetricCard("December settlement", FormatCurrency(r.DecemberTax))
	if r.IsRefund() {
		december.WithTrend(true, "refund to employee")
	}

	cards := []*components.MetricCard{
		components.NewMetricCard("Category", fmt.Sprintf("TER %s", mo.Category)).
			WithDescription(fmt.Sprintf("%s at %s", r.StatusCode, output.FormatPercentage(mo.Rate))),
		components.NewMetricCard("Monthly PPh 21", FormatCurrency(mo.MonthlyTax)).
			WithDescription("Jan-Nov, TER"),
		components.NewMetricCard("Annual PPh 21", FormatCurrency(r.TotalAnnualTax)).
			WithDescription("PKP " + FormatCurrency(r.TaxableIncome)),
		december,
		components.NewMetricCard("Take-home / month", FormatCurrency(mo.TakeHome)),
	}
	if mo.Method == domain.MethodGrossUp {
		card := components.NewMetricCard("Tax allowance", FormatCurrency(mo.TaxAllowance)).
			WithDescription(fmt.Sprintf("%d iterations", mo.Iterations))
		if !mo.Converged {
			card.WithTrend(false, "did not converge")
		}
		cards = append(cards, card)
	}
	if r.Surcharge.IsPositive() {
		cards = append(cards, components.NewMetricCard("No-NPWP surcharge", FormatCurrency(r.Surcharge)))
	}

	return components.MetricGrid(cards, 2)
}

func (m Model) renderCompare() string {
	if m.comparison == nil {
		return BorderStyle.Render(InfoStyle.Render("Fix the calculator inputs to compare methods"))
	}
	c := m.comparison

	var b strings.Builder
	b.WriteString(TableHeaderStyle.Render(fmt.Sprintf("%-22s %18s %18s", "", "Gross", "Gross-Up")))
	b.WriteString("\n")
	rows := []struct {
		label       string
		gross, grossUp decimal.Decimal
	}{
		{"Tax allowance / month", c.Gross.Monthly.TaxAllowance, c.GrossUp.Monthly.TaxAllowance},
		{"Monthly PPh 21", c.Gross.Monthly.MonthlyTax, c.GrossUp.Monthly.MonthlyTax},
		{"Take-home / month", c.Gross.Monthly.TakeHome, c.GrossUp.Monthly.TakeHome},
		{"Annual PPh 21", c.Gross.TotalAnnualTax, c.GrossUp.TotalAnnualTax},
		{"December", c.Gross.DecemberTax, c.GrossUp.DecemberTax},
	}
	for _, row := range rows {
		fmt.Fprintf(&b, "%-22s %18s %18s\n", row.label, FormatCurrency(row.gross), FormatCurrency(row.grossUp))
	}
	b.WriteString("\n")
	b.WriteString(TableHighlightStyle.Render(fmt.Sprintf("%-22s %37s", "Employer extra cost", FormatCurrency(c.EmployerExtraCost))))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%-22s %37s", "Take-home gain", FormatCurrency(c.TakeHomeGain))
	return BorderStyle.Render(b.String())
}

func (m Model) renderTER() string {
	cat := domain.CategoryA
	if m.result != nil {
		cat = m.result.Monthly.Category
	}
	text, err := output.FormatTERTable(calculation.RateTableFor(cat), "table")
	if err != nil {
		return ErrorStyle.Render(err.Error())
	}
	if m.result != nil {
		text += "\n" + TableHighlightStyle.Render(fmt.Sprintf("Current: %s on %s",
			output.FormatPercentage(m.result.Monthly.Rate), FormatCurrency(m.result.Monthly.GrossBasis)))
	}
	return BorderStyle.Render(text)
}

func (m Model) renderHelp() string {
	return BorderStyle.Render(`PAJAK - PPh 21 TER Calculator

Type amounts in whole Rupiah; "10.050.000" and "Rp 10,050,000" both work.
Results update on every keystroke.

KEYBOARD SHORTCUTS:
  tab/enter/down  Next field
  shift+tab/up    Previous field
  ctrl+t          Toggle gross / gross-up
  ctrl+n          Toggle NPWP registration
  ctrl+e          Toggle employer JKK/JKM insurance
  ctrl+y          Copy summary to clipboard
  F2              Compare withholding methods
  F3              TER table for the current category
  F1              Show this help
  esc             Back (quit from the calculator)
  ctrl+c          Quit`)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
