package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/pajak/internal/domain"
	"github.com/rgehrsitz/pajak/internal/record"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case NavigateMsg:
		m.previousScene = m.currentScene
		m.currentScene = msg.Scene
		return m, nil

	case ErrorMsg:
		m.err = msg.Err
		return m, nil

	case ConfigLoadedMsg:
		m.applyConfig(msg.Config)
		m.recalculate()
		m.status = fmt.Sprintf("Loaded %s", m.configPath)
		return m, nil

	case CopiedMsg:
		if msg.Err != nil {
			m.status = fmt.Sprintf("Copy failed: %v", msg.Err)
		} else {
			m.status = "Summary copied to clipboard"
		}
		return m, nil
	}

	return m.updateFocusedInput(msg)
}

func navigate(s Scene) tea.Cmd {
	return func() tea.Msg {
		return NavigateMsg{Scene: s}
	}
}

// handleKeyPress processes keyboard input. Plain keys belong to the focused
// field, so global shortcuts use ctrl and function keys.
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.err != nil {
		m.err = nil
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		if m.currentScene == SceneCalculator {
			return m, tea.Quit
		}
		return m, navigate(SceneCalculator)

	case "f1":
		return m, navigate(SceneHelp)
	case "f2":
		return m, navigate(SceneCompare)
	case "f3":
		return m, navigate(SceneTER)

	case "tab", "down", "enter":
		m.moveFocus(1)
		return m, nil
	case "shift+tab", "up":
		m.moveFocus(-1)
		return m, nil

	case "ctrl+t":
		if m.method == domain.MethodGrossUp {
			m.method = domain.MethodGross
		} else {
			m.method = domain.MethodGrossUp
		}
		m.recalculate()
		return m, nil

	case "ctrl+n":
		m.hasNPWP = !m.hasNPWP
		m.recalculate()
		return m, nil

	case "ctrl+e":
		m.includeInsurance = !m.includeInsurance
		m.recalculate()
		return m, nil

	case "ctrl+y":
		if m.result == nil {
			m.status = "Nothing to copy"
			return m, nil
		}
		return m, copyCmd(m.copy, record.Summary(*m.result))
	}

	return m.updateFocusedInput(msg)
}

// updateFocusedInput passes a message to the focused field and recomputes
// when its value changed
func (m Model) updateFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.currentScene != SceneCalculator {
		return m, nil
	}

	before := m.inputs[m.focus].Value()
	updated, cmd := m.inputs[m.focus].Update(msg)
	m.inputs[m.focus] = updated
	if updated.Value() != before {
		m.status = ""
		m.recalculate()
	}
	return m, cmd
}
