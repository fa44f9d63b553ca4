package tui

import "github.com/rgehrsitz/pajak/internal/domain"

// Scene represents different screens in the TUI
type Scene int

const (
	SceneCalculator Scene = iota
	SceneCompare
	SceneTER
	SceneHelp
)

// NavigateMsg switches to a different scene
type NavigateMsg struct {
	Scene Scene
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// ConfigLoadedMsg carries a batch file used to prefill the form
type ConfigLoadedMsg struct {
	Config *domain.Configuration
}

// CopiedMsg reports the outcome of a clipboard copy
type CopiedMsg struct {
	Err error
}

func (s Scene) String() string {
	switch s {
	case SceneCalculator:
		return "Calculator"
	case SceneCompare:
		return "Gross vs Gross-Up"
	case SceneTER:
		return "TER Table"
	case SceneHelp:
		return "Help"
	default:
		return "Unknown"
	}
}
