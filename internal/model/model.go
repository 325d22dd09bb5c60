// Package model holds the records shown by the partner console: users, the
// properties they manage and the soap pickups scheduled for each property.
package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID
	Username     string
	PasswordHash string
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	PropertyIDs  []uuid.UUID
}

// DisplayName falls back to the username when no name is on file.
func (u User) DisplayName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Username
	}
	return name
}

type PropertyType string

const (
	PropertyHotel           PropertyType = "hotel"
	PropertyBedAndBreakfast PropertyType = "bed-and-breakfast"
	PropertyOther           PropertyType = "other"
)

type Property struct {
	ID    uuid.UUID
	Name  string
	Type  PropertyType
	Rooms int
	City  string
}

type Status string

const (
	StatusSubmitted Status = "submitted"
	StatusComplete  Status = "complete"
	StatusCancelled Status = "cancelled"
)

type CollectionType string

const (
	CollectionGeneratedLabel CollectionType = "generated-label"
	CollectionLocal          CollectionType = "local"
	CollectionCourier        CollectionType = "courier"
	CollectionOther          CollectionType = "other"
)

type ProductType string

const (
	ProductSoap    ProductType = "soap"
	ProductLinens  ProductType = "linens"
	ProductBottles ProductType = "bottles"
	ProductPaper   ProductType = "paper"
	ProductOther   ProductType = "other"
)

// Carton is one box in a pickup; Percentage is how full it is.
type Carton struct {
	ProductType ProductType
	Percentage  int
}

type Pickup struct {
	ID               uuid.UUID
	ConfirmationCode string
	PropertyID       uuid.UUID
	Status           Status
	CollectionType   CollectionType
	ReadyDate        time.Time
	PickupDate       *time.Time
	Notes            string
	Cartons          []Carton
}

// EnumError reports a string that is not a known enum value.
type EnumError struct {
	Kind  string
	Value string
}

func (e *EnumError) Error() string {
	return fmt.Sprintf("unknown %s %q", e.Kind, e.Value)
}

func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.ToLower(strings.TrimSpace(s))); st {
	case StatusSubmitted, StatusComplete, StatusCancelled:
		return st, nil
	}
	return "", &EnumError{Kind: "pickup status", Value: s}
}

func ParseCollectionType(s string) (CollectionType, error) {
	switch ct := CollectionType(strings.ToLower(strings.TrimSpace(s))); ct {
	case CollectionGeneratedLabel, CollectionLocal, CollectionCourier, CollectionOther:
		return ct, nil
	}
	return "", &EnumError{Kind: "collection type", Value: s}
}

func ParseProductType(s string) (ProductType, error) {
	switch pt := ProductType(strings.ToLower(strings.TrimSpace(s))); pt {
	case ProductSoap, ProductLinens, ProductBottles, ProductPaper, ProductOther:
		return pt, nil
	}
	return "", &EnumError{Kind: "product type", Value: s}
}

func ParsePropertyType(s string) (PropertyType, error) {
	switch pt := PropertyType(strings.ToLower(strings.TrimSpace(s))); pt {
	case PropertyHotel, PropertyBedAndBreakfast, PropertyOther:
		return pt, nil
	case "":
		return PropertyOther, nil
	}
	return "", &EnumError{Kind: "property type", Value: s}
}
