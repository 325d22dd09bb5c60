// Package selector implements the property selector interaction model: a
// compact "current property" row that expands into the full list, moves the
// tapped property to the front, and collapses itself shortly after it first
// becomes visible.
package selector

import (
	"errors"
	"fmt"
	"iter"
	"slices"
	"time"
)

// State is the expansion state of a Selector.
type State int

const (
	Collapsed State = iota
	Expanded
)

func (s State) String() string {
	switch s {
	case Collapsed:
		return "collapsed"
	case Expanded:
		return "expanded"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

var (
	// ErrInvalidIndex is matched by every error returned for a tap outside the list.
	ErrInvalidIndex = errors.New("selector: invalid row index")
	// ErrClosed is returned for taps delivered after Close.
	ErrClosed = errors.New("selector: closed")
	// ErrNoProperties is returned by New for an empty seed list.
	ErrNoProperties = errors.New("selector: at least one property is required")
)

// IndexError reports an out-of-range tap.
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("selector: row index %d out of range [0, %d)", e.Index, e.Len)
}

func (e *IndexError) Unwrap() error {
	return ErrInvalidIndex
}

// Handle is a cancellable scheduled task.
type Handle interface {
	Cancel()
}

// Scheduler runs fn once after delay on the caller's event loop.
type Scheduler interface {
	Schedule(delay time.Duration, fn func()) Handle
}

// Row describes one rendered row.
type Row struct {
	Index    int
	Label    string
	Selected bool
}

// Frame is what the host view needs to draw the selector.
type Frame struct {
	State  State
	Rows   iter.Seq[Row]
	Height int
}

// Config holds the layout and timing parameters of a Selector.
type Config struct {
	RowHeight     int
	CollapseDelay time.Duration
}

// DefaultConfig returns one-line rows and a one second auto-collapse.
func DefaultConfig() Config {
	return Config{
		RowHeight:     1,
		CollapseDelay: time.Second,
	}
}

// Selector is not safe for concurrent use; all methods and the scheduled
// collapse must run on the same event loop.
type Selector struct {
	cfg        Config
	sched      Scheduler
	properties []string
	selected   int
	state      State
	pending    Handle
	generation uint64
	closed     bool
}

// New seeds a selector with a copy of properties. The selector starts
// expanded so the whole list is visible until the first collapse.
func New(properties []string, sched Scheduler, cfg Config) (*Selector, error) {
	if len(properties) == 0 {
		return nil, ErrNoProperties
	}
	if sched == nil {
		return nil, errors.New("selector: scheduler is required")
	}
	if cfg.RowHeight <= 0 {
		cfg.RowHeight = DefaultConfig().RowHeight
	}
	if cfg.CollapseDelay <= 0 {
		cfg.CollapseDelay = DefaultConfig().CollapseDelay
	}

	list := make([]string, len(properties))
	copy(list, properties)

	return &Selector{
		cfg:        cfg,
		sched:      sched,
		properties: list,
		state:      Expanded,
	}, nil
}

// OnBecomeVisible schedules the auto-collapse. Calls made while a collapse
// is already pending do nothing.
func (s *Selector) OnBecomeVisible() {
	if s.closed || s.pending != nil {
		return
	}
	gen := s.generation
	s.pending = s.sched.Schedule(s.cfg.CollapseDelay, func() {
		if s.closed || gen != s.generation {
			return
		}
		s.pending = nil
		if s.state == Expanded {
			s.state = Collapsed
		}
	})
}

// OnBecomeHidden ends the visibility session and drops any pending collapse.
func (s *Selector) OnBecomeHidden() {
	s.cancelPending()
}

// OnRowTapped applies a tap on the row at index. An out-of-range index is a
// caller bug: it is reported as an *IndexError and nothing changes.
func (s *Selector) OnRowTapped(index int) error {
	if s.closed {
		return ErrClosed
	}
	if index < 0 || index >= len(s.properties) {
		return &IndexError{Index: index, Len: len(s.properties)}
	}

	s.cancelPending()

	switch {
	case s.state == Collapsed:
		s.state = Expanded
	case index == s.selected:
		s.state = Collapsed
	default:
		s.moveToFront(index)
		s.state = Collapsed
	}
	return nil
}

// Close cancels any pending collapse. A closed selector ignores visibility
// events and rejects taps.
func (s *Selector) Close() {
	s.cancelPending()
	s.closed = true
}

func (s *Selector) moveToFront(index int) {
	picked := s.properties[index]
	copy(s.properties[1:index+1], s.properties[:index])
	s.properties[0] = picked
	s.selected = 0
}

func (s *Selector) cancelPending() {
	s.generation++
	if s.pending != nil {
		s.pending.Cancel()
		s.pending = nil
	}
}

// Render returns every row in list order plus the content height for the
// current state. Collapsed hosts are expected to draw row 0 only. The frame
// is a snapshot: later taps do not change the rows it yields.
func (s *Selector) Render() Frame {
	return Frame{
		State:  s.state,
		Rows:   s.rows(len(s.properties)),
		Height: s.ContentHeight(),
	}
}

// VisibleRows yields the rows the host should draw in the current state.
func (s *Selector) VisibleRows() iter.Seq[Row] {
	if s.state == Collapsed {
		return s.rows(1)
	}
	return s.rows(len(s.properties))
}

func (s *Selector) rows(limit int) iter.Seq[Row] {
	labels := slices.Clone(s.properties[:min(limit, len(s.properties))])
	selected := s.selected
	return func(yield func(Row) bool) {
		for i, label := range labels {
			if !yield(Row{Index: i, Label: label, Selected: i == selected}) {
				return
			}
		}
	}
}

// ContentHeight is RowHeight when collapsed and RowHeight per property when expanded.
func (s *Selector) ContentHeight() int {
	if s.state == Collapsed {
		return s.cfg.RowHeight
	}
	return s.cfg.RowHeight * len(s.properties)
}

func (s *Selector) State() State { return s.state }
func (s *Selector) SelectedIndex() int { return s.selected }
func (s *Selector) Selected() string { return s.properties[s.selected] }
func (s *Selector) Len() int { return len(s.properties) }
func (s *Selector) Pending() bool { return s.pending != nil }
func (s *Selector) Closed() bool { return s.closed }
func (s *Selector) RowHeight() int { return s.cfg.RowHeight }

// Properties returns a copy of the list in display order.
func (s *Selector) Properties() []string {
	out := make([]string, len(s.properties))
	copy(out, s.properties)
	return out
}
