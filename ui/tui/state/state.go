package state

import (
	"time"

	"ecosoap/internal/model"
	"ecosoap/internal/output"
)

type Page int

const (
	PageLogin Page = iota
	PageHistory
	PageProfile
)

func (p Page) String() string {
	switch p {
	case PageHistory:
		return "history"
	case PageProfile:
		return "profile"
	default:
		return "login"
	}
}

// AppState holds what the views need to draw the current screen.
type AppState struct {
	User       *model.User
	Properties []model.Property
	Current    *model.Property
	History    *output.HistoryView
	Loading    bool
	Saving     bool
	Err        error
	Notice     string
	LastUpdate time.Time
	Page       Page
}

// PropertyByName finds one of the signed-in user's properties.
func (s AppState) PropertyByName(name string) *model.Property {
	for i := range s.Properties {
		if s.Properties[i].Name == name {
			return &s.Properties[i]
		}
	}
	return nil
}

// PropertyNames lists the user's properties in their stored order.
func (s AppState) PropertyNames() []string {
	names := make([]string, len(s.Properties))
	for i, p := range s.Properties {
		names[i] = p.Name
	}
	return names
}
