package output

import (
	"testing"
	"time"

	"ecosoap/internal/model"
	"ecosoap/internal/store"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestFormatPickup(t *testing.T) {
	picked := date(2026, 4, 6)
	tests := []struct {
		name      string
		pickup    model.Pickup
		wantDate  string
		wantIcon  string
		wantTone  Tone
		wantLabel string
	}{
		{
			name:      "complete uses pickup date",
			pickup:    model.Pickup{Status: model.StatusComplete, ReadyDate: date(2026, 4, 2), PickupDate: &picked, CollectionType: model.CollectionCourier},
			wantDate:  "Picked up Apr 6, 2026",
			wantIcon:  "✓",
			wantTone:  ToneComplete,
			wantLabel: "Courier",
		},
		{
			name:      "submitted uses ready date",
			pickup:    model.Pickup{Status: model.StatusSubmitted, ReadyDate: date(2026, 10, 28), CollectionType: model.CollectionGeneratedLabel},
			wantDate:  "Ready Oct 28, 2026",
			wantIcon:  "◷",
			wantTone:  TonePending,
			wantLabel: "Shipping label",
		},
		{
			name:      "cancelled",
			pickup:    model.Pickup{Status: model.StatusCancelled, ReadyDate: date(2026, 8, 20), CollectionType: model.CollectionLocal},
			wantDate:  "Ready Aug 20, 2026",
			wantIcon:  "✗",
			wantTone:  ToneCancelled,
			wantLabel: "Local pickup",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := FormatPickup(tt.pickup)
			if c.DateLabel != tt.wantDate {
				t.Errorf("DateLabel = %q, want %q", c.DateLabel, tt.wantDate)
			}
			if c.StatusIcon != tt.wantIcon || c.Tone != tt.wantTone {
				t.Errorf("icon/tone = %q/%q, want %q/%q", c.StatusIcon, c.Tone, tt.wantIcon, tt.wantTone)
			}
			if c.Collection != tt.wantLabel {
				t.Errorf("Collection = %q, want %q", c.Collection, tt.wantLabel)
			}
		})
	}
}

func TestCartonSummary(t *testing.T) {
	c := FormatPickup(model.Pickup{Cartons: []model.Carton{
		{ProductType: model.ProductSoap, Percentage: 80},
		{ProductType: model.ProductBottles, Percentage: 30},
	}})
	if got := c.CartonSummary(); got != "◆ Soap 80% · ◍ Bottles 30%" {
		t.Errorf("CartonSummary() = %q", got)
	}
	if got := (Cell{}).CartonSummary(); got != "No cartons" {
		t.Errorf("empty CartonSummary() = %q", got)
	}
}

func TestBuildHistory(t *testing.T) {
	prop := model.Property{Name: "Hotel Zephyr", Type: model.PropertyHotel, Rooms: 361, City: "San Francisco"}
	pickups := []model.Pickup{
		{ConfirmationCode: "ESB-3", Status: model.StatusSubmitted},
		{ConfirmationCode: "ESB-2", Status: model.StatusCancelled},
		{ConfirmationCode: "ESB-1", Status: model.StatusComplete},
		{ConfirmationCode: "ESB-0", Status: model.StatusComplete},
	}
	summary := &store.Summary{TotalCartons: 5, Monthly: []store.MonthTotal{{Month: date(2026, 4, 1), SoapCartons: 2}}}

	view := BuildHistory(prop, pickups, summary)

	if view.Subtitle != "San Francisco · Hotel · 361 rooms" {
		t.Errorf("Subtitle = %q", view.Subtitle)
	}
	if view.TotalPickups != 4 || view.TotalCartons != 5 || len(view.Monthly) != 1 {
		t.Errorf("unexpected totals %+v", view)
	}

	completed := view.SectionByID(SectionCompleted)
	if completed == nil || len(completed.Cells) != 2 || completed.Cells[0].Code != "ESB-1" {
		t.Errorf("unexpected completed section %+v", completed)
	}
	if up := view.SectionByID(SectionUpcoming); up == nil || len(up.Cells) != 1 {
		t.Errorf("unexpected upcoming section %+v", up)
	}
	if view.SectionByID("missing") != nil {
		t.Error("SectionByID returned a section for an unknown id")
	}
}

func TestMonthLabel(t *testing.T) {
	if got := MonthLabel(date(2026, 4, 1)); got != "Apr 26" {
		t.Errorf("MonthLabel() = %q", got)
	}
}
