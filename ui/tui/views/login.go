package views

import (
	"ecosoap/ui/tui/state"
	"ecosoap/ui/tui/styles"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
)

var loginLabels = []string{"Username", "Password"}

type LoginView struct{}

func (v LoginView) Render(s state.AppState, props ViewProps) string {
	header := styles.HeaderStyle.Width(props.Width).Render("ECO-SOAP BANK // PARTNER CONSOLE")

	var fields []string
	for i, input := range props.Inputs {
		if i >= len(loginLabels) {
			break
		}
		fields = append(fields, renderField(loginLabels[i], input, i == props.Focus))
	}

	status := renderStatusLine(s.Err, s.Notice)
	if s.Loading {
		status = lipgloss.NewStyle().PaddingLeft(2).Render(props.SpinnerView + " Signing in...")
	}

	form := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Bold(true).PaddingLeft(2).Foreground(styles.BrandColor).Render("SIGN IN"),
		styles.CopyStyle.Render("Use the account your property registered with."),
		lipgloss.JoinVertical(lipgloss.Left, fields...),
		"",
		status,
	)

	return zone.Scan(lipgloss.JoinVertical(lipgloss.Left,
		header,
		lipgloss.NewStyle().Padding(1, 0).Render(form),
		lipgloss.NewStyle().PaddingLeft(2).Render(props.HelpView),
	))
}
