package store

import (
	"context"
	"errors"
	"testing"

	"ecosoap/internal/model"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	userID   = "aa5728b5-9e4e-4ac6-8841-14aa425ad81c"
	zephyrID = "b52be6be-614d-4982-9239-7ada03780a4f"
	harborID = "08e0b661-dab1-4aae-9b50-f4e5f0bfc47b"
)

const testFixture = `
[[users]]
id = "aa5728b5-9e4e-4ac6-8841-14aa425ad81c"
username = "demo"
password = "secret"
first_name = "Dana"
properties = ["08e0b661-dab1-4aae-9b50-f4e5f0bfc47b", "b52be6be-614d-4982-9239-7ada03780a4f"]

[[properties]]
id = "b52be6be-614d-4982-9239-7ada03780a4f"
name = "Hotel Zephyr"
type = "hotel"
rooms = 361
city = "San Francisco"

[[properties]]
id = "08e0b661-dab1-4aae-9b50-f4e5f0bfc47b"
name = "Harbor Inn"

[[pickups]]
id = "abafc8f5-6441-4d31-a7bc-6100dfcae57a"
confirmation_code = "ESB-1"
property_id = "b52be6be-614d-4982-9239-7ada03780a4f"
status = "complete"
collection_type = "courier"
ready_date = 2026-04-02
pickup_date = 2026-04-06

  [[pickups.cartons]]
  product = "soap"
  percentage = 100

  [[pickups.cartons]]
  product = "bottles"
  percentage = 60

[[pickups]]
id = "9576479c-d342-4473-bb8a-85def93a6a40"
confirmation_code = "ESB-2"
property_id = "b52be6be-614d-4982-9239-7ada03780a4f"
status = "cancelled"
collection_type = "local"
ready_date = 2026-04-20

  [[pickups.cartons]]
  product = "soap"
  percentage = 50

[[pickups]]
id = "53413ef3-d501-4bf1-b048-79a14a366470"
confirmation_code = "ESB-3"
property_id = "b52be6be-614d-4982-9239-7ada03780a4f"
status = "submitted"
collection_type = "generated-label"
ready_date = 2026-06-01
notes = "side entrance"

  [[pickups.cartons]]
  product = "soap"
  percentage = 80

  [[pickups.cartons]]
  product = "soap"
  percentage = 20
`

func newTestRepo(t *testing.T) *Repo {
	t.Helper()
	ctx := context.Background()

	client, err := NewClient()
	if err != nil {
		t.Fatalf("failed to create duckdb client: %v", err)
	}
	repo := NewRepo(client, nil)
	t.Cleanup(func() { repo.Close() })

	if err := repo.Migrate(ctx); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}
	f, err := DecodeFixture(testFixture)
	if err != nil {
		t.Fatalf("DecodeFixture() error = %v", err)
	}
	if err := repo.LoadFixture(ctx, f); err != nil {
		t.Fatalf("LoadFixture() error = %v", err)
	}
	return repo
}

func TestUserByUsername(t *testing.T) {
	repo := newTestRepo(t)

	u, err := repo.UserByUsername(context.Background(), "demo")
	if err != nil {
		t.Fatalf("UserByUsername() error = %v", err)
	}
	if u.ID.String() != userID || u.FirstName != "Dana" {
		t.Errorf("unexpected user %+v", u)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret")); err != nil {
		t.Errorf("stored hash does not match fixture password: %v", err)
	}
	if len(u.PropertyIDs) != 2 || u.PropertyIDs[0].String() != harborID {
		t.Errorf("expected property order from fixture, got %v", u.PropertyIDs)
	}

	if _, err := repo.UserByUsername(context.Background(), "nobody"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestPropertiesForUser(t *testing.T) {
	repo := newTestRepo(t)

	props, err := repo.PropertiesForUser(context.Background(), uuid.MustParse(userID))
	if err != nil {
		t.Fatalf("PropertiesForUser() error = %v", err)
	}
	if len(props) != 2 {
		t.Fatalf("Expected 2 properties, got %d", len(props))
	}
	if props[0].Name != "Harbor Inn" || props[1].Name != "Hotel Zephyr" {
		t.Errorf("unexpected order: %s, %s", props[0].Name, props[1].Name)
	}
	if props[0].Type != model.PropertyOther {
		t.Errorf("missing type should default to other, got %q", props[0].Type)
	}
	if props[1].Rooms != 361 || props[1].City != "San Francisco" {
		t.Errorf("unexpected property %+v", props[1])
	}
}

func TestPickupsForProperty(t *testing.T) {
	repo := newTestRepo(t)

	pickups, err := repo.PickupsForProperty(context.Background(), uuid.MustParse(zephyrID))
	if err != nil {
		t.Fatalf("PickupsForProperty() error = %v", err)
	}
	if len(pickups) != 3 {
		t.Fatalf("Expected 3 pickups, got %d", len(pickups))
	}

	codes := []string{pickups[0].ConfirmationCode, pickups[1].ConfirmationCode, pickups[2].ConfirmationCode}
	if codes[0] != "ESB-3" || codes[1] != "ESB-2" || codes[2] != "ESB-1" {
		t.Errorf("Expected newest first, got %v", codes)
	}

	first := pickups[2]
	if first.PickupDate == nil || first.PickupDate.Day() != 6 {
		t.Errorf("Expected pickup date on ESB-1, got %v", first.PickupDate)
	}
	if len(first.Cartons) != 2 || first.Cartons[1].ProductType != model.ProductBottles {
		t.Errorf("unexpected cartons %+v", first.Cartons)
	}
	if pickups[0].PickupDate != nil {
		t.Error("submitted pickup should have no pickup date")
	}
	if pickups[0].Notes != "side entrance" {
		t.Errorf("unexpected notes %q", pickups[0].Notes)
	}

	empty, err := repo.PickupsForProperty(context.Background(), uuid.MustParse(harborID))
	if err != nil || len(empty) != 0 {
		t.Errorf("Expected no pickups for Harbor Inn, got %d (%v)", len(empty), err)
	}
}

func TestPickupSummary(t *testing.T) {
	repo := newTestRepo(t)

	s, err := repo.PickupSummary(context.Background(), uuid.MustParse(zephyrID))
	if err != nil {
		t.Fatalf("PickupSummary() error = %v", err)
	}
	if s.Counts[model.StatusComplete] != 1 || s.Counts[model.StatusCancelled] != 1 || s.Counts[model.StatusSubmitted] != 1 {
		t.Errorf("unexpected counts %v", s.Counts)
	}
	if s.TotalCartons != 4 {
		t.Errorf("Expected 4 cartons outside cancelled pickups, got %d", s.TotalCartons)
	}
	if len(s.Monthly) != 2 {
		t.Fatalf("Expected 2 months, got %+v", s.Monthly)
	}
	if s.Monthly[0].Month.Month() != 4 || s.Monthly[0].SoapCartons != 1 {
		t.Errorf("unexpected April total %+v", s.Monthly[0])
	}
	if s.Monthly[1].Month.Month() != 6 || s.Monthly[1].SoapCartons != 2 {
		t.Errorf("unexpected June total %+v", s.Monthly[1])
	}
}

func TestPickupSummary_Cancelled(t *testing.T) {
	repo := newTestRepo(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s, err := repo.PickupSummary(ctx, uuid.MustParse(zephyrID))
	if err == nil {
		t.Fatal("Expected an error for a cancelled context")
	}
	if s != nil {
		t.Errorf("Expected no partial summary, got %+v", s)
	}
}

func TestUpdateProfile(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	id := uuid.MustParse(userID)

	u, err := repo.UpdateProfile(ctx, id, Profile{FirstName: "Dee", LastName: "W", Email: "dee@example.com", Phone: "555"})
	if err != nil {
		t.Fatalf("UpdateProfile() error = %v", err)
	}
	if u.FirstName != "Dee" || u.Email != "dee@example.com" {
		t.Errorf("unexpected updated user %+v", u)
	}
	if len(u.PropertyIDs) != 2 {
		t.Error("profile update dropped property links")
	}

	if _, err := repo.UpdateProfile(ctx, uuid.New(), Profile{}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestFixtureValidation(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"malformed uuid", `
[[properties]]
id = "not-a-uuid"
name = "X"
`},
		{"unknown property", `
[[users]]
id = "aa5728b5-9e4e-4ac6-8841-14aa425ad81c"
username = "demo"
password = "x"
properties = ["b52be6be-614d-4982-9239-7ada03780a4f"]
`},
		{"duplicate property name", `
[[properties]]
id = "b52be6be-614d-4982-9239-7ada03780a4f"
name = "Same"
[[properties]]
id = "08e0b661-dab1-4aae-9b50-f4e5f0bfc47b"
name = "Same"
[[users]]
id = "aa5728b5-9e4e-4ac6-8841-14aa425ad81c"
username = "demo"
password = "x"
properties = ["b52be6be-614d-4982-9239-7ada03780a4f", "08e0b661-dab1-4aae-9b50-f4e5f0bfc47b"]
`},
		{"unknown status", `
[[properties]]
id = "b52be6be-614d-4982-9239-7ada03780a4f"
name = "X"
[[pickups]]
id = "abafc8f5-6441-4d31-a7bc-6100dfcae57a"
confirmation_code = "ESB-1"
property_id = "b52be6be-614d-4982-9239-7ada03780a4f"
status = "lost"
collection_type = "courier"
ready_date = 2026-04-02
`},
		{"missing password", `
[[users]]
id = "aa5728b5-9e4e-4ac6-8841-14aa425ad81c"
username = "demo"
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := DecodeFixture(tt.data)
			if err != nil {
				return
			}
			if _, _, _, err := f.Records(); err == nil {
				t.Error("Expected validation error")
			}
		})
	}
}

func TestLoadFixtureFile_Demo(t *testing.T) {
	f, err := LoadFixtureFile("../../testdata/fixture.toml")
	if err != nil {
		t.Fatalf("LoadFixtureFile() error = %v", err)
	}
	users, props, pickups, err := f.Records()
	if err != nil {
		t.Fatalf("Records() error = %v", err)
	}
	if len(users) == 0 || len(props) == 0 || len(pickups) == 0 {
		t.Errorf("demo fixture is empty: %d users, %d properties, %d pickups", len(users), len(props), len(pickups))
	}
}
