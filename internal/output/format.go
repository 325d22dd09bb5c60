package output

import (
	"fmt"
	"strings"
	"time"

	"ecosoap/internal/model"
	"ecosoap/internal/store"
)

// Section constants to avoid hardcoded strings
const (
	SectionUpcoming  = "upcoming"
	SectionCompleted = "completed"
	SectionCancelled = "cancelled"
)

// Tone tells a renderer which color family a cell belongs to.
type Tone string

const (
	ToneComplete  Tone = "complete"
	TonePending   Tone = "pending"
	ToneCancelled Tone = "cancelled"
)

const dateLayout = "Jan 2, 2006"

// UI/view-model types (no printing here)
type Cell struct {
	Code       string
	DateLabel  string
	Status     string
	StatusIcon string
	Tone       Tone
	Collection string
	Cartons    []CartonBadge
	Notes      string
}

type CartonBadge struct {
	Icon    string
	Label   string
	Percent int
}

type Section struct {
	ID    string
	Title string
	Cells []Cell
}

type HistoryView struct {
	Property     string
	Subtitle     string
	Sections     []Section
	TotalPickups int
	TotalCartons int
	Monthly      []store.MonthTotal
}

// FormatPickup converts a pickup record into a display cell.
func FormatPickup(p model.Pickup) Cell {
	c := Cell{
		Code:       p.ConfirmationCode,
		DateLabel:  dateLabel(p),
		Status:     statusLabel(p.Status),
		StatusIcon: statusIcon(p.Status),
		Tone:       toneFor(p.Status),
		Collection: collectionLabel(p.CollectionType),
		Notes:      p.Notes,
	}
	for _, carton := range p.Cartons {
		c.Cartons = append(c.Cartons, CartonBadge{
			Icon:    productIcon(carton.ProductType),
			Label:   productLabel(carton.ProductType),
			Percent: carton.Percentage,
		})
	}
	return c
}

// CartonSummary renders badges as "◆ Soap 80% · ◍ Bottles 30%".
func (c Cell) CartonSummary() string {
	if len(c.Cartons) == 0 {
		return "No cartons"
	}
	parts := make([]string, 0, len(c.Cartons))
	for _, b := range c.Cartons {
		parts = append(parts, fmt.Sprintf("%s %s %d%%", b.Icon, b.Label, b.Percent))
	}
	return strings.Join(parts, " · ")
}

// BuildHistory groups a property's pickups into upcoming, completed and
// cancelled sections, keeping the order they were given in.
func BuildHistory(property model.Property, pickups []model.Pickup, summary *store.Summary) HistoryView {
	sec := map[string]*Section{
		SectionUpcoming:  {ID: SectionUpcoming, Title: "Upcoming"},
		SectionCompleted: {ID: SectionCompleted, Title: "Completed"},
		SectionCancelled: {ID: SectionCancelled, Title: "Cancelled"},
	}

	for _, p := range pickups {
		cell := FormatPickup(p)
		switch p.Status {
		case model.StatusSubmitted:
			sec[SectionUpcoming].Cells = append(sec[SectionUpcoming].Cells, cell)
		case model.StatusComplete:
			sec[SectionCompleted].Cells = append(sec[SectionCompleted].Cells, cell)
		case model.StatusCancelled:
			sec[SectionCancelled].Cells = append(sec[SectionCancelled].Cells, cell)
		}
	}

	view := HistoryView{
		Property:     property.Name,
		Subtitle:     propertySubtitle(property),
		TotalPickups: len(pickups),
		Sections: []Section{
			*sec[SectionUpcoming],
			*sec[SectionCompleted],
			*sec[SectionCancelled],
		},
	}
	if summary != nil {
		view.TotalCartons = summary.TotalCartons
		view.Monthly = summary.Monthly
	}
	return view
}

func (v HistoryView) SectionByID(id string) *Section {
	for i := range v.Sections {
		if v.Sections[i].ID == id {
			return &v.Sections[i]
		}
	}
	return nil
}

func propertySubtitle(p model.Property) string {
	var parts []string
	if p.City != "" {
		parts = append(parts, p.City)
	}
	switch p.Type {
	case model.PropertyHotel:
		parts = append(parts, "Hotel")
	case model.PropertyBedAndBreakfast:
		parts = append(parts, "Bed & Breakfast")
	}
	if p.Rooms > 0 {
		parts = append(parts, fmt.Sprintf("%d rooms", p.Rooms))
	}
	return strings.Join(parts, " · ")
}

func dateLabel(p model.Pickup) string {
	if p.Status == model.StatusComplete && p.PickupDate != nil {
		return "Picked up " + p.PickupDate.Format(dateLayout)
	}
	return "Ready " + p.ReadyDate.Format(dateLayout)
}

func statusLabel(s model.Status) string {
	switch s {
	case model.StatusSubmitted:
		return "Submitted"
	case model.StatusComplete:
		return "Complete"
	case model.StatusCancelled:
		return "Cancelled"
	}
	return "Unknown"
}

func statusIcon(s model.Status) string {
	switch s {
	case model.StatusSubmitted:
		return "◷"
	case model.StatusComplete:
		return "✓"
	case model.StatusCancelled:
		return "✗"
	}
	return "?"
}

func toneFor(s model.Status) Tone {
	switch s {
	case model.StatusComplete:
		return ToneComplete
	case model.StatusCancelled:
		return ToneCancelled
	}
	return TonePending
}

func collectionLabel(c model.CollectionType) string {
	switch c {
	case model.CollectionGeneratedLabel:
		return "Shipping label"
	case model.CollectionLocal:
		return "Local pickup"
	case model.CollectionCourier:
		return "Courier"
	}
	return "Other"
}

func productIcon(p model.ProductType) string {
	switch p {
	case model.ProductSoap:
		return "◆"
	case model.ProductLinens:
		return "≋"
	case model.ProductBottles:
		return "◍"
	case model.ProductPaper:
		return "▤"
	}
	return "•"
}

func productLabel(p model.ProductType) string {
	switch p {
	case model.ProductSoap:
		return "Soap"
	case model.ProductLinens:
		return "Linens"
	case model.ProductBottles:
		return "Bottles"
	case model.ProductPaper:
		return "Paper"
	}
	return "Other"
}

// MonthLabel formats a chart bucket, e.g. "Apr 26".
func MonthLabel(t time.Time) string {
	return t.Format("Jan 06")
}
