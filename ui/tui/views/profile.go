package views

import (
	"ecosoap/ui/tui/state"
	"ecosoap/ui/tui/styles"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
)

var profileLabels = []string{"First name", "Last name", "Email", "Phone"}

type ProfileView struct{}

func (v ProfileView) Render(s state.AppState, props ViewProps) string {
	header := styles.HeaderStyle.Width(props.Width).Render("ECO-SOAP BANK // PROFILE")

	username := ""
	if s.User != nil {
		username = s.User.Username
	}

	var fields []string
	for i, input := range props.Inputs {
		if i >= len(profileLabels) {
			break
		}
		fields = append(fields, renderField(profileLabels[i], input, i == props.Focus))
	}

	status := renderStatusLine(s.Err, s.Notice)
	if s.Saving {
		status = lipgloss.NewStyle().PaddingLeft(2).Render(props.SpinnerView + " Saving...")
	}

	form := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Bold(true).PaddingLeft(2).Foreground(styles.BrandColor).Render("ACCOUNT"),
		styles.CopyStyle.Render("Signed in as "+username),
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
