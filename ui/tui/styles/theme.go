package styles

import "github.com/charmbracelet/lipgloss"

var (
	BrandColor = lipgloss.Color("#2f9e6e")
	BaseColor  = lipgloss.Color("#444")

	Subtle    = lipgloss.AdaptiveColor{Light: "#9a9d92", Dark: "#6c6c6c"}
	Highlight = lipgloss.AdaptiveColor{Light: "#1f7a54", Dark: "#48c78e"}
	Warning   = lipgloss.Color("220")
	Danger    = lipgloss.Color("196")
	Success   = lipgloss.Color("46")

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(BrandColor).
			Align(lipgloss.Left).
			Padding(1, 2)

	TitleStyle = lipgloss.NewStyle().
			MarginLeft(1).
			MarginRight(5).
			Padding(0, 1).
			Italic(true).
			Foreground(lipgloss.Color("#FFF7DB"))

	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Highlight).
			Padding(1, 2).
			Margin(1, 1)

	CopyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888")).
			Italic(true).
			MarginBottom(1).
			PaddingLeft(2)

	StatusStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFF"))

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Danger).
			PaddingLeft(2)

	NoticeStyle = lipgloss.NewStyle().
			Foreground(Highlight).
			PaddingLeft(2)

	// Property selector
	SelectorBoxStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(BrandColor).
				MarginLeft(2)

	SelectorRowStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#AAA")).
				Padding(0, 1)

	SelectorSelectedStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FFF")).
				Padding(0, 1)

	SelectorCursorStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FFF")).
				Background(BrandColor).
				Padding(0, 1)

	// Forms
	FieldLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888")).
			Width(12).
			PaddingLeft(2)

	FocusedFieldStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(BrandColor).
				Width(36)

	BlurredFieldStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(BaseColor).
				Width(36)
)
