package components

import (
	"fmt"
	"log/slog"
	"math"

	"ecosoap/internal/logging"
	"ecosoap/internal/selector"
	"ecosoap/ui/tui/styles"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"go.uber.org/atomic"
)

var lastSelectorID = atomic.NewInt64(0)

// PropertyChangedMsg is emitted when a different property moves to the front.
type PropertyChangedMsg struct {
	Name string
}

type SelectorKeys struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Close  key.Binding
}

func DefaultSelectorKeys() SelectorKeys {
	return SelectorKeys{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "Up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "Down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("⤶", "Choose property"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Close list"),
		),
	}
}

// PropertySelector hosts a selector.Selector in the TUI. Taps come from the
// keyboard or mouse, the auto-collapse runs on Bubble Tea ticks, and the
// drawn height follows the selector's content height through a spring.
type PropertySelector struct {
	core   *selector.Selector
	sched  *Scheduler
	keys   SelectorKeys
	log    *slog.Logger
	prefix string

	spring   harmonica.Spring
	height   float64
	velocity float64

	cursor  int
	focused bool
	Width   int
}

func NewPropertySelector(names []string, cfg selector.Config, fps int, log *slog.Logger) (*PropertySelector, error) {
	sched := NewScheduler()
	core, err := selector.New(names, sched, cfg)
	if err != nil {
		return nil, err
	}
	if fps <= 0 {
		fps = 60
	}
	return &PropertySelector{
		core:    core,
		sched:   sched,
		keys:    DefaultSelectorKeys(),
		log:     logging.OrDiscard(log),
		prefix:  fmt.Sprintf("selector%d_", lastSelectorID.Inc()),
		spring:  harmonica.NewSpring(harmonica.FPS(fps), 12.0, 0.9),
		height:  float64(core.ContentHeight()),
		focused: true,
		Width:   44,
	}, nil
}

// Init marks the selector visible, which starts the auto-collapse timer.
func (p *PropertySelector) Init() tea.Cmd {
	return p.Show()
}

// Show is called whenever the selector's screen comes into view.
func (p *PropertySelector) Show() tea.Cmd {
	p.core.OnBecomeVisible()
	return p.sched.Cmd()
}

// Hide is called when navigating away from the selector's screen.
func (p *PropertySelector) Hide() {
	p.core.OnBecomeHidden()
}

func (p *PropertySelector) Close() {
	p.core.Close()
}

func (p *PropertySelector) Focus() { p.focused = true }
func (p *PropertySelector) Blur() { p.focused = false }

func (p *PropertySelector) Core() *selector.Selector { return p.core }
func (p *PropertySelector) Keys() SelectorKeys { return p.keys }

func (p *PropertySelector) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case TimerFiredMsg:
		if p.sched.Fire(msg.ID) {
			p.cursor = 0
			p.log.Debug("property selector auto-collapsed", "state", p.core.State().String())
		}

	case tea.KeyMsg:
		if !p.focused {
			return p, nil
		}
		cmd = p.handleKey(msg)

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
			return p, nil
		}
		for i := 0; i < p.core.Len(); i++ {
			if zone.Get(p.zoneID(i)).InBounds(msg) {
				cmd = p.Tap(i)
				break
			}
		}
	}

	return p, tea.Batch(cmd, p.sched.Cmd())
}

func (p *PropertySelector) handleKey(msg tea.KeyMsg) tea.Cmd {
	if p.core.State() == selector.Collapsed {
		if key.Matches(msg, p.keys.Select) {
			return p.Tap(0)
		}
		return nil
	}

	switch {
	case key.Matches(msg, p.keys.Up):
		if p.cursor > 0 {
			p.cursor--
		}
	case key.Matches(msg, p.keys.Down):
		if p.cursor < p.core.Len()-1 {
			p.cursor++
		}
	case key.Matches(msg, p.keys.Select):
		return p.Tap(p.cursor)
	case key.Matches(msg, p.keys.Close):
		return p.Tap(p.core.SelectedIndex())
	}
	return nil
}

// Tap forwards a row tap to the selector. An out-of-range index is logged
// and dropped; the widget keeps its current state.
func (p *PropertySelector) Tap(index int) tea.Cmd {
	before := p.core.Selected()
	if err := p.core.OnRowTapped(index); err != nil {
		p.log.Error("property selector tap rejected", "index", index, "err", err)
		return nil
	}
	p.cursor = 0

	after := p.core.Selected()
	p.log.Debug("property selector tapped", "index", index, "state", p.core.State().String(), "selected", after)
	if after == before {
		return nil
	}
	return func() tea.Msg {
		return PropertyChangedMsg{Name: after}
	}
}

// Animate advances the height spring by one frame.
func (p *PropertySelector) Animate() {
	target := float64(p.core.ContentHeight())
	p.height, p.velocity = p.spring.Update(p.height, p.velocity, target)
}

// DrawnHeight is the number of lines currently drawn, clamped to the
// selector's collapsed and expanded heights.
func (p *PropertySelector) DrawnHeight() int {
	minH := p.core.RowHeight()
	maxH := p.core.RowHeight() * p.core.Len()
	h := int(math.Round(p.height))
	return max(minH, min(h, maxH))
}

// Settled reports whether the spring has reached the content height.
func (p *PropertySelector) Settled() bool {
	return p.DrawnHeight() == p.core.ContentHeight() && math.Abs(p.velocity) < 0.01
}

func (p *PropertySelector) View() string {
	rowHeight := p.core.RowHeight()
	drawn := p.DrawnHeight()
	visible := int(math.Ceil(float64(drawn) / float64(rowHeight)))
	expanded := p.core.State() == selector.Expanded

	var rows []string
	for row := range p.core.Render().Rows {
		if row.Index >= visible {
			break
		}

		marker := "  "
		if row.Index == 0 {
			marker = "▸ "
			if expanded {
				marker = "▾ "
			}
		}

		style := styles.SelectorRowStyle
		switch {
		case expanded && row.Index == p.cursor && p.focused:
			style = styles.SelectorCursorStyle
		case row.Selected:
			style = styles.SelectorSelectedStyle
		}

		rendered := style.Width(p.Width).Height(rowHeight).Render(marker + row.Label)
		rows = append(rows, zone.Mark(p.zoneID(row.Index), rendered))
	}

	list := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return styles.SelectorBoxStyle.Render(lipgloss.NewStyle().MaxHeight(drawn).Render(list))
}

func (p *PropertySelector) zoneID(i int) string {
	return fmt.Sprintf("%srow_%d", p.prefix, i)
}
