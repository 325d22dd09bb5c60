package views

import (
	"fmt"

	"ecosoap/internal/output"
	"ecosoap/ui/tui/styles"

	"github.com/charmbracelet/lipgloss"
)

func ColorForTone(tone output.Tone) lipgloss.Style {
	sStyle := styles.StatusStyle
	switch tone {
	case output.TonePending:
		return sStyle.Foreground(styles.Warning)
	case output.ToneCancelled:
		return sStyle.Foreground(styles.Danger)
	}
	return sStyle.Foreground(styles.Success)
}

// RenderCell draws one pickup as a two or three line block.
func RenderCell(c output.Cell, width int) string {
	status := ColorForTone(c.Tone).Render(c.StatusIcon + " " + c.Status)
	head := fmt.Sprintf("%s  %s  %s", c.DateLabel, status, lipgloss.NewStyle().Foreground(styles.Subtle).Render(c.Code))

	detail := c.Collection + " · " + c.CartonSummary()
	lines := []string{head, lipgloss.NewStyle().PaddingLeft(2).Render(detail)}
	if c.Notes != "" {
		lines = append(lines, styles.CopyStyle.MarginBottom(0).Render(c.Notes))
	}

	block := lipgloss.JoinVertical(lipgloss.Left, lines...)
	if width > 0 {
		block = lipgloss.NewStyle().MaxWidth(width).Render(block)
	}
	return block
}

// RenderSection draws a section title followed by its cells.
func RenderSection(sec output.Section, width int) string {
	title := lipgloss.NewStyle().Bold(true).Foreground(styles.Highlight).
		Render(fmt.Sprintf("%s (%d)", sec.Title, len(sec.Cells)))

	parts := []string{title}
	for _, c := range sec.Cells {
		parts = append(parts, RenderCell(c, width))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderField(label, input string, focused bool) string {
	box := styles.BlurredFieldStyle
	if focused {
		box = styles.FocusedFieldStyle
	}
	return lipgloss.JoinHorizontal(lipgloss.Center,
		styles.FieldLabelStyle.Render(label),
		box.Render(input),
	)
}

func renderStatusLine(errVal error, notice string) string {
	switch {
	case errVal != nil:
		return styles.ErrorStyle.Render("✗ " + errVal.Error())
	case notice != "":
		return styles.NoticeStyle.Render(notice)
	}
	return ""
}
