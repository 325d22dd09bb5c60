package views

import (
	"fmt"

	"ecosoap/internal/output"
	"ecosoap/ui/tui/state"
	"ecosoap/ui/tui/styles"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
)

// PickupHistoryView is the home screen: the property selector on top, the
// selected property's pickups and chart below.
type PickupHistoryView struct{}

func (v PickupHistoryView) Render(s state.AppState, props ViewProps) string {
	name := ""
	if s.User != nil {
		name = s.User.DisplayName()
	}
	header := styles.HeaderStyle.Width(props.Width).Render("ECO-SOAP BANK // " + name)

	var body string
	switch {
	case len(s.Properties) == 0 && !s.Loading:
		body = styles.CopyStyle.Render("No properties are linked to this account.")
	case s.Loading || s.History == nil:
		body = lipgloss.NewStyle().PaddingLeft(2).Render(props.SpinnerView + " Loading pickups...")
	default:
		body = v.renderHistory(*s.History, props)
	}

	updated := ""
	if !s.LastUpdate.IsZero() {
		updated = fmt.Sprintf(" Last Update: %s", s.LastUpdate.Format("15:04:05"))
	}

	return zone.Scan(lipgloss.JoinVertical(lipgloss.Left,
		header,
		lipgloss.NewStyle().Foreground(styles.Subtle).Render(updated),
		props.SelectorView,
		renderStatusLine(s.Err, s.Notice),
		body,
		lipgloss.NewStyle().PaddingLeft(2).Render(props.HelpView),
	))
}

func (v PickupHistoryView) renderHistory(h output.HistoryView, props ViewProps) string {
	title := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Bold(true).Render(h.Property),
		lipgloss.NewStyle().Foreground(styles.Subtle).Render(h.Subtitle),
	)

	var sections []string
	for _, sec := range h.Sections {
		if len(sec.Cells) == 0 {
			continue
		}
		sections = append(sections, RenderSection(sec, props.Width/2+10))
	}
	if len(sections) == 0 {
		sections = append(sections, styles.CopyStyle.Render("No pickups yet."))
	}

	list := styles.CardStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		lipgloss.JoinVertical(lipgloss.Left, sections...),
		"",
		fmt.Sprintf("%d pickups | %d cartons", h.TotalPickups, h.TotalCartons),
	))

	return lipgloss.JoinHorizontal(lipgloss.Top, list, props.ChartView)
}
