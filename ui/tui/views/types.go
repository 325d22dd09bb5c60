package views

import (
	"ecosoap/ui/tui/state"
)

// ViewProps contains UI-specific properties provided by the Controller.
type ViewProps struct {
	Width, Height int

	// Component States
	SpinnerView  string
	ChartView    string
	SelectorView string
	HelpView     string

	// Form fields in display order, already rendered by their text inputs.
	Inputs []string
	Focus  int
}

// View defines the contract for any renderable page in the TUI.
type View interface {
	Render(s state.AppState, props ViewProps) string
}
