package components

import (
	"ecosoap/internal/output"
	"ecosoap/internal/store"
	"ecosoap/ui/tui/styles"

	"github.com/NimbleMarkets/ntcharts/canvas"
	"github.com/NimbleMarkets/ntcharts/linechart"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// PickupChart plots soap cartons collected per month.
type PickupChart struct {
	Chart     linechart.Model
	History   []store.MonthTotal
	MaxMonths int
	Width     int
	Height    int
}

func NewPickupChart(width, height, maxMonths int) *PickupChart {
	return &PickupChart{
		Chart:     linechart.New(width, height, 0, 1, 0, 1),
		MaxMonths: maxMonths,
		Width:     width,
		Height:    height,
	}
}

func (c *PickupChart) Init() tea.Cmd {
	return nil
}

// SetData keeps the most recent MaxMonths buckets and rescales the axes.
func (c *PickupChart) SetData(monthly []store.MonthTotal) {
	if c.MaxMonths > 0 && len(monthly) > c.MaxMonths {
		monthly = monthly[len(monthly)-c.MaxMonths:]
	}
	c.History = append([]store.MonthTotal(nil), monthly...)

	maxY := 1
	for _, m := range c.History {
		maxY = max(maxY, m.SoapCartons)
	}
	maxX := max(len(c.History)-1, 1)
	// width, height, minX, maxX, minY, maxY
	c.Chart = linechart.New(c.Width, c.Height, 0, float64(maxX), 0, float64(maxY))
}

func (c *PickupChart) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return c, nil
}

func (c *PickupChart) Resize(w, h int) {
	c.Width = w
	c.Height = h
	c.SetData(c.History)
}

func (c *PickupChart) View() string {
	title := lipgloss.NewStyle().Bold(true).Render("Soap cartons per month")

	if len(c.History) < 2 {
		return styles.CardStyle.Render(
			lipgloss.JoinVertical(lipgloss.Left,
				title,
				lipgloss.NewStyle().Foreground(styles.Subtle).Render("Not enough pickups to chart yet."),
			),
		)
	}

	c.Chart.Clear()
	for i := 0; i < len(c.History)-1; i++ {
		y1 := float64(c.History[i].SoapCartons)
		y2 := float64(c.History[i+1].SoapCartons)
		c.Chart.DrawBrailleLine(
			canvas.Float64Point{X: float64(i), Y: y1},
			canvas.Float64Point{X: float64(i + 1), Y: y2},
		)
	}
	c.Chart.DrawXYAxisAndLabel()

	span := output.MonthLabel(c.History[0].Month) + " – " + output.MonthLabel(c.History[len(c.History)-1].Month)

	return styles.CardStyle.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			title,
			c.Chart.View(),
			lipgloss.NewStyle().Foreground(styles.Subtle).Render(span),
		),
	)
}
