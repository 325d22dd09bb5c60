package components

import (
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"ecosoap/internal/selector"
	"ecosoap/internal/store"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
)

func TestMain(m *testing.M) {
	zone.NewGlobal()
	os.Exit(m.Run())
}

// collect runs cmd and any batches it returns.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	switch msg := cmd().(type) {
	case nil:
		return nil
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, collect(c)...)
		}
		return out
	default:
		return []tea.Msg{msg}
	}
}

func testSelectorConfig() selector.Config {
	return selector.Config{RowHeight: 1, CollapseDelay: time.Millisecond}
}

func TestScheduler_FireAndCancel(t *testing.T) {
	s := NewScheduler()
	ran := 0

	s.Schedule(time.Millisecond, func() { ran++ })
	if s.Pending() != 1 {
		t.Fatalf("Expected 1 pending task, got %d", s.Pending())
	}

	cmd := s.Cmd()
	if cmd == nil {
		t.Fatalf("Expected a tick command")
	}
	if s.Cmd() != nil {
		t.Errorf("Expected queue to be drained after Cmd")
	}

	msg, ok := cmd().(TimerFiredMsg)
	if !ok {
		t.Fatalf("Expected TimerFiredMsg")
	}
	if !s.Fire(msg.ID) {
		t.Errorf("Expected pending task to fire")
	}
	if ran != 1 {
		t.Errorf("Expected task to run once, got %d", ran)
	}
	if s.Fire(msg.ID) {
		t.Errorf("Expected a task to fire only once")
	}

	h := s.Schedule(time.Millisecond, func() { ran++ })
	msg = s.Cmd()().(TimerFiredMsg)
	h.Cancel()

	if s.Fire(msg.ID) {
		t.Errorf("Expected cancelled task not to fire")
	}
	if ran != 1 {
		t.Errorf("Expected cancelled task not to run, got %d runs", ran)
	}
	if s.Pending() != 0 {
		t.Errorf("Expected no pending tasks, got %d", s.Pending())
	}
}

func TestScheduler_IDsAreUnique(t *testing.T) {
	a, b := NewScheduler(), NewScheduler()
	a.Schedule(time.Millisecond, func() {})
	b.Schedule(time.Millisecond, func() {})

	msgA := a.Cmd()().(TimerFiredMsg)
	msgB := b.Cmd()().(TimerFiredMsg)

	if msgA.ID == msgB.ID {
		t.Fatalf("Expected distinct timer ids, got %d twice", msgA.ID)
	}
	if b.Fire(msgA.ID) {
		t.Errorf("Expected a scheduler to ignore another scheduler's timer")
	}
}

func TestNewPropertySelector_Empty(t *testing.T) {
	_, err := NewPropertySelector(nil, testSelectorConfig(), 60, nil)
	if !errors.Is(err, selector.ErrNoProperties) {
		t.Errorf("Expected ErrNoProperties, got %v", err)
	}
}

func TestPropertySelector_AutoCollapse(t *testing.T) {
	p, err := NewPropertySelector([]string{"A", "B", "C"}, testSelectorConfig(), 60, nil)
	if err != nil {
		t.Fatalf("NewPropertySelector() error = %v", err)
	}

	cmd := p.Init()
	if cmd == nil {
		t.Fatalf("Expected Init to schedule the collapse")
	}
	if p.Show() != nil {
		t.Errorf("Expected a second Show to schedule nothing while a collapse is pending")
	}

	for _, msg := range collect(cmd) {
		p.Update(msg)
	}

	if p.Core().State() != selector.Collapsed {
		t.Errorf("Expected Collapsed after the timer fired, got %v", p.Core().State())
	}
}

func TestPropertySelector_Keys(t *testing.T) {
	p, err := NewPropertySelector([]string{"A", "B", "C"}, testSelectorConfig(), 60, nil)
	if err != nil {
		t.Fatalf("NewPropertySelector() error = %v", err)
	}

	tests := []struct {
		name    string
		key     tea.KeyMsg
		state   selector.State
		list    string
		changed string
	}{
		{"down", tea.KeyMsg{Type: tea.KeyDown}, selector.Expanded, "A,B,C", ""},
		{"down again", tea.KeyMsg{Type: tea.KeyDown}, selector.Expanded, "A,B,C", ""},
		{"choose C", tea.KeyMsg{Type: tea.KeyEnter}, selector.Collapsed, "C,A,B", "C"},
		{"reopen", tea.KeyMsg{Type: tea.KeyEnter}, selector.Expanded, "C,A,B", ""},
		{"close", tea.KeyMsg{Type: tea.KeyEsc}, selector.Collapsed, "C,A,B", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, cmd := p.Update(tt.key)

			if p.Core().State() != tt.state {
				t.Errorf("Expected state %v, got %v", tt.state, p.Core().State())
			}
			if got := strings.Join(p.Core().Properties(), ","); got != tt.list {
				t.Errorf("Expected list %s, got %s", tt.list, got)
			}

			var changed string
			for _, msg := range collect(cmd) {
				if m, ok := msg.(PropertyChangedMsg); ok {
					changed = m.Name
				}
			}
			if changed != tt.changed {
				t.Errorf("Expected PropertyChangedMsg %q, got %q", tt.changed, changed)
			}
		})
	}
}

func TestPropertySelector_TapInvalid(t *testing.T) {
	p, err := NewPropertySelector([]string{"A", "B"}, testSelectorConfig(), 60, nil)
	if err != nil {
		t.Fatalf("NewPropertySelector() error = %v", err)
	}

	if cmd := p.Tap(5); cmd != nil {
		t.Errorf("Expected no command for an invalid tap")
	}
	if p.Core().State() != selector.Expanded || p.Core().Selected() != "A" {
		t.Errorf("Expected state unchanged after invalid tap")
	}
}

func TestPropertySelector_Blurred(t *testing.T) {
	p, err := NewPropertySelector([]string{"A", "B"}, testSelectorConfig(), 60, nil)
	if err != nil {
		t.Fatalf("NewPropertySelector() error = %v", err)
	}
	p.Blur()

	p.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if p.Core().State() != selector.Expanded {
		t.Errorf("Expected keys to be ignored while blurred")
	}
}

func TestPropertySelector_AnimateAndView(t *testing.T) {
	p, err := NewPropertySelector([]string{"Hotel Zephyr", "Harbor Inn", "Sunset Cottage"}, testSelectorConfig(), 60, nil)
	if err != nil {
		t.Fatalf("NewPropertySelector() error = %v", err)
	}

	out := zone.Scan(p.View())
	for _, name := range []string{"Hotel Zephyr", "Harbor Inn", "Sunset Cottage"} {
		if !strings.Contains(out, name) {
			t.Errorf("Expected expanded view to contain %s", name)
		}
	}

	p.Tap(0)
	for i := 0; i < 60; i++ {
		p.Animate()
	}

	if p.DrawnHeight() != 1 {
		t.Errorf("Expected drawn height 1 once settled, got %d", p.DrawnHeight())
	}

	out = zone.Scan(p.View())
	if !strings.Contains(out, "Hotel Zephyr") {
		t.Errorf("Expected collapsed view to show the selected property")
	}
	if strings.Contains(out, "Harbor Inn") {
		t.Errorf("Expected collapsed view to hide other properties")
	}
}

// waitForZone blocks until id is registered by a prior zone.Scan.
func waitForZone(t *testing.T, id string) *zone.ZoneInfo {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for {
		if z := zone.Get(id); !z.IsZero() {
			return z
		}
		if time.Now().After(deadline) {
			t.Fatalf("Expected zone %s to be registered", id)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestPropertySelector_MouseTap(t *testing.T) {
	p, err := NewPropertySelector([]string{"A", "B", "C"}, testSelectorConfig(), 60, nil)
	if err != nil {
		t.Fatalf("NewPropertySelector() error = %v", err)
	}

	zone.Scan(p.View())
	z := waitForZone(t, p.zoneID(2))

	ignored := []struct {
		name string
		msg  tea.MouseMsg
	}{
		{"left press", tea.MouseMsg{X: z.StartX, Y: z.StartY, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress}},
		{"right release", tea.MouseMsg{X: z.StartX, Y: z.StartY, Button: tea.MouseButtonRight, Action: tea.MouseActionRelease}},
		{"motion", tea.MouseMsg{X: z.StartX, Y: z.StartY, Button: tea.MouseButtonNone, Action: tea.MouseActionMotion}},
	}
	for _, tt := range ignored {
		t.Run(tt.name, func(t *testing.T) {
			p.Update(tt.msg)
			if p.Core().State() != selector.Expanded {
				t.Errorf("Expected Expanded, got %v", p.Core().State())
			}
			if got := strings.Join(p.Core().Properties(), ","); got != "A,B,C" {
				t.Errorf("Expected list A,B,C, got %s", got)
			}
		})
	}

	_, cmd := p.Update(tea.MouseMsg{X: z.StartX, Y: z.StartY, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease})

	if got := strings.Join(p.Core().Properties(), ","); got != "C,A,B" {
		t.Errorf("Expected list C,A,B, got %s", got)
	}
	if p.Core().State() != selector.Collapsed {
		t.Errorf("Expected Collapsed after tap, got %v", p.Core().State())
	}

	var changed string
	for _, msg := range collect(cmd) {
		if m, ok := msg.(PropertyChangedMsg); ok {
			changed = m.Name
		}
	}
	if changed != "C" {
		t.Errorf("Expected PropertyChangedMsg %q, got %q", "C", changed)
	}
}

func TestPropertySelector_MouseOutsideRows(t *testing.T) {
	p, err := NewPropertySelector([]string{"A", "B", "C"}, testSelectorConfig(), 60, nil)
	if err != nil {
		t.Fatalf("NewPropertySelector() error = %v", err)
	}

	zone.Scan(p.View())
	z := waitForZone(t, p.zoneID(2))

	p.Update(tea.MouseMsg{X: z.EndX + 50, Y: z.EndY + 50, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease})

	if p.Core().State() != selector.Expanded || p.Core().Selected() != "A" {
		t.Errorf("Expected a release outside every row to be ignored")
	}
}

func TestPickupChart(t *testing.T) {
	c := NewPickupChart(30, 8, 3)

	if !strings.Contains(c.View(), "Not enough pickups") {
		t.Errorf("Expected placeholder without data")
	}

	var monthly []store.MonthTotal
	for i := 1; i <= 5; i++ {
		monthly = append(monthly, store.MonthTotal{
			Month:       time.Date(2026, time.Month(i), 1, 0, 0, 0, 0, time.UTC),
			SoapCartons: i * 2,
		})
	}
	c.SetData(monthly)

	if len(c.History) != 3 {
		t.Fatalf("Expected history trimmed to 3 months, got %d", len(c.History))
	}
	if c.History[0].Month.Month() != time.March {
		t.Errorf("Expected oldest kept month March, got %v", c.History[0].Month.Month())
	}

	out := c.View()
	if !strings.Contains(out, "Soap cartons per month") {
		t.Errorf("Expected chart title")
	}
	if strings.Contains(out, "Not enough pickups") {
		t.Errorf("Expected chart instead of placeholder")
	}

	c.Resize(40, 10)
	if len(c.History) != 3 {
		t.Errorf("Expected Resize to keep history, got %d", len(c.History))
	}
}
