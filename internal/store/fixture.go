package store

import (
	"fmt"
	"time"

	"ecosoap/internal/model"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Fixture is the TOML seed file loaded into the store at startup.
type Fixture struct {
	Users      []FixtureUser     `toml:"users"`
	Properties []FixtureProperty `toml:"properties"`
	Pickups    []FixturePickup   `toml:"pickups"`
}

type FixtureUser struct {
	ID           uuid.UUID   `toml:"id"`
	Username     string      `toml:"username"`
	PasswordHash string      `toml:"password_hash"`
	Password     string      `toml:"password"` // hashed on load; demo fixtures only
	FirstName    string      `toml:"first_name"`
	LastName     string      `toml:"last_name"`
	Email        string      `toml:"email"`
	Phone        string      `toml:"phone"`
	Properties   []uuid.UUID `toml:"properties"`
}

type FixtureProperty struct {
	ID    uuid.UUID `toml:"id"`
	Name  string    `toml:"name"`
	Type  string    `toml:"type"`
	Rooms int       `toml:"rooms"`
	City  string    `toml:"city"`
}

type FixturePickup struct {
	ID               uuid.UUID       `toml:"id"`
	ConfirmationCode string          `toml:"confirmation_code"`
	PropertyID       uuid.UUID       `toml:"property_id"`
	Status           string          `toml:"status"`
	CollectionType   string          `toml:"collection_type"`
	ReadyDate        time.Time       `toml:"ready_date"`
	PickupDate       time.Time       `toml:"pickup_date"`
	Notes            string          `toml:"notes"`
	Cartons          []FixtureCarton `toml:"cartons"`
}

type FixtureCarton struct {
	Product    string `toml:"product"`
	Percentage int    `toml:"percentage"`
}

// FixtureError reports an inconsistent fixture record.
type FixtureError struct {
	Record  string
	Message string
}

func (e *FixtureError) Error() string {
	return "fixture error: " + e.Record + ": " + e.Message
}

// LoadFixtureFile decodes a TOML fixture. Malformed UUIDs fail here.
func LoadFixtureFile(path string) (*Fixture, error) {
	var f Fixture
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return nil, fmt.Errorf("decode fixture %s: %w", path, err)
	}
	return &f, nil
}

// DecodeFixture decodes a TOML fixture from a string.
func DecodeFixture(data string) (*Fixture, error) {
	var f Fixture
	if _, err := toml.Decode(data, &f); err != nil {
		return nil, fmt.Errorf("decode fixture: %w", err)
	}
	return &f, nil
}

// Records validates the fixture and converts it to domain records.
func (f *Fixture) Records() ([]model.User, []model.Property, []model.Pickup, error) {
	properties := make([]model.Property, 0, len(f.Properties))
	byID := make(map[uuid.UUID]model.Property, len(f.Properties))
	for _, fp := range f.Properties {
		if fp.ID == uuid.Nil {
			return nil, nil, nil, &FixtureError{Record: "property " + fp.Name, Message: "missing id"}
		}
		if fp.Name == "" {
			return nil, nil, nil, &FixtureError{Record: "property " + fp.ID.String(), Message: "missing name"}
		}
		if _, dup := byID[fp.ID]; dup {
			return nil, nil, nil, &FixtureError{Record: "property " + fp.Name, Message: "duplicate id"}
		}
		ptype, err := model.ParsePropertyType(fp.Type)
		if err != nil {
			return nil, nil, nil, &FixtureError{Record: "property " + fp.Name, Message: err.Error()}
		}
		p := model.Property{ID: fp.ID, Name: fp.Name, Type: ptype, Rooms: fp.Rooms, City: fp.City}
		byID[p.ID] = p
		properties = append(properties, p)
	}

	users := make([]model.User, 0, len(f.Users))
	usernames := make(map[string]bool, len(f.Users))
	for _, fu := range f.Users {
		rec := "user " + fu.Username
		if fu.ID == uuid.Nil || fu.Username == "" {
			return nil, nil, nil, &FixtureError{Record: rec, Message: "id and username are required"}
		}
		if usernames[fu.Username] {
			return nil, nil, nil, &FixtureError{Record: rec, Message: "duplicate username"}
		}
		usernames[fu.Username] = true

		hash := fu.PasswordHash
		if hash == "" {
			if fu.Password == "" {
				return nil, nil, nil, &FixtureError{Record: rec, Message: "password or password_hash is required"}
			}
			b, err := bcrypt.GenerateFromPassword([]byte(fu.Password), bcrypt.DefaultCost)
			if err != nil {
				return nil, nil, nil, fmt.Errorf("hash password for %s: %w", fu.Username, err)
			}
			hash = string(b)
		}

		names := make(map[string]bool, len(fu.Properties))
		for _, pid := range fu.Properties {
			p, ok := byID[pid]
			if !ok {
				return nil, nil, nil, &FixtureError{Record: rec, Message: "unknown property " + pid.String()}
			}
			// The property selector identifies entries by name.
			if names[p.Name] {
				return nil, nil, nil, &FixtureError{Record: rec, Message: "duplicate property name " + p.Name}
			}
			names[p.Name] = true
		}

		users = append(users, model.User{
			ID:           fu.ID,
			Username:     fu.Username,
			PasswordHash: hash,
			FirstName:    fu.FirstName,
			LastName:     fu.LastName,
			Email:        fu.Email,
			Phone:        fu.Phone,
			PropertyIDs:  append([]uuid.UUID(nil), fu.Properties...),
		})
	}

	pickups := make([]model.Pickup, 0, len(f.Pickups))
	for _, fp := range f.Pickups {
		rec := "pickup " + fp.ConfirmationCode
		if fp.ID == uuid.Nil || fp.ConfirmationCode == "" {
			return nil, nil, nil, &FixtureError{Record: rec, Message: "id and confirmation_code are required"}
		}
		if _, ok := byID[fp.PropertyID]; !ok {
			return nil, nil, nil, &FixtureError{Record: rec, Message: "unknown property " + fp.PropertyID.String()}
		}
		if fp.ReadyDate.IsZero() {
			return nil, nil, nil, &FixtureError{Record: rec, Message: "missing ready_date"}
		}
		status, err := model.ParseStatus(fp.Status)
		if err != nil {
			return nil, nil, nil, &FixtureError{Record: rec, Message: err.Error()}
		}
		ctype, err := model.ParseCollectionType(fp.CollectionType)
		if err != nil {
			return nil, nil, nil, &FixtureError{Record: rec, Message: err.Error()}
		}

		p := model.Pickup{
			ID:               fp.ID,
			ConfirmationCode: fp.ConfirmationCode,
			PropertyID:       fp.PropertyID,
			Status:           status,
			CollectionType:   ctype,
			ReadyDate:        civilDate(fp.ReadyDate),
			Notes:            fp.Notes,
		}
		if !fp.PickupDate.IsZero() {
			d := civilDate(fp.PickupDate)
			p.PickupDate = &d
		}
		for _, fc := range fp.Cartons {
			product, err := model.ParseProductType(fc.Product)
			if err != nil {
				return nil, nil, nil, &FixtureError{Record: rec, Message: err.Error()}
			}
			if fc.Percentage < 0 || fc.Percentage > 100 {
				return nil, nil, nil, &FixtureError{Record: rec, Message: "carton percentage must be within 0-100"}
			}
			p.Cartons = append(p.Cartons, model.Carton{ProductType: product, Percentage: fc.Percentage})
		}
		pickups = append(pickups, p)
	}

	return users, properties, pickups, nil
}

// civilDate drops the time-of-day and zone TOML attaches to local dates.
func civilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
