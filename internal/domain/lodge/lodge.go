package lodge

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/unn-housing/service-booking/internal/domain"
)

// LodgeType is the kind of accommodation on offer.
type LodgeType string

const (
	TypeApartment     LodgeType = "APARTMENT"
	TypeSelfContained LodgeType = "SELF_CONTAINED"
	TypeShared        LodgeType = "SHARED"
	TypeHostel        LodgeType = "HOSTEL"
)

// IsValid returns true if the lodge type is recognized.
func (t LodgeType) IsValid() bool {
	switch t {
	case TypeApartment, TypeSelfContained, TypeShared, TypeHostel:
		return true
	}
	return false
}

// Lodge is the aggregate root for a bookable unit listed by an owner.
type Lodge struct {
	id            uuid.UUID
	ownerID       uuid.UUID
	title         string
	description   string
	location      string
	lodgeType     LodgeType
	rent          float64
	deposit       float64
	bedrooms      int
	bathrooms     int
	amenities     []string
	availableFrom *time.Time
	availableTo   *time.Time
	createdAt     time.Time
	updatedAt     time.Time
}

// Details carries the mutable listing fields, used both at creation and on update.
type Details struct {
	Title         string
	Description   string
	Location      string
	Type          LodgeType
	Rent          float64
	Deposit       float64
	Bedrooms      int
	Bathrooms     int
	Amenities     []string
	AvailableFrom *time.Time
	AvailableTo   *time.Time
}

func (d Details) validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return domain.NewValidationError("lodge title is required")
	}
	if strings.TrimSpace(d.Location) == "" {
		return domain.NewValidationError("lodge location is required")
	}
	if !d.Type.IsValid() {
		return domain.NewValidationError(fmt.Sprintf("invalid lodge type: %s", d.Type))
	}
	if d.Rent < 0 || d.Deposit < 0 {
		return domain.NewValidationError("rent and deposit must not be negative")
	}
	if d.Bedrooms < 0 || d.Bathrooms < 0 {
		return domain.NewValidationError("room counts must not be negative")
	}
	if d.AvailableFrom != nil && d.AvailableTo != nil && !d.AvailableFrom.Before(*d.AvailableTo) {
		return domain.NewValidationError("availableFrom must be before availableTo")
	}
	return nil
}

// NewLodge creates a new listing owned by ownerID.
func NewLodge(ownerID uuid.UUID, d Details) (*Lodge, error) {
	if ownerID == uuid.Nil {
		return nil, domain.NewValidationError("owner ID is required")
	}
	if err := d.validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	l := &Lodge{
		id:        uuid.New(),
		ownerID:   ownerID,
		createdAt: now,
		updatedAt: now,
	}
	l.apply(d)
	return l, nil
}

// Reconstruct rebuilds a Lodge from persistence data (no validation).
func Reconstruct(id, ownerID uuid.UUID, d Details, createdAt, updatedAt time.Time) *Lodge {
	l := &Lodge{
		id:        id,
		ownerID:   ownerID,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
	l.apply(d)
	return l
}

func (l *Lodge) apply(d Details) {
	l.title = strings.TrimSpace(d.Title)
	l.description = d.Description
	l.location = strings.TrimSpace(d.Location)
	l.lodgeType = d.Type
	l.rent = d.Rent
	l.deposit = d.Deposit
	l.bedrooms = d.Bedrooms
	l.bathrooms = d.Bathrooms
	l.amenities = append([]string(nil), d.Amenities...)
	l.availableFrom = d.AvailableFrom
	l.availableTo = d.AvailableTo
}

// --- Getters ---

func (l *Lodge) ID() uuid.UUID             { return l.id }
func (l *Lodge) OwnerID() uuid.UUID        { return l.ownerID }
func (l *Lodge) Title() string             { return l.title }
func (l *Lodge) Description() string       { return l.description }
func (l *Lodge) Location() string          { return l.location }
func (l *Lodge) Type() LodgeType           { return l.lodgeType }
func (l *Lodge) Rent() float64             { return l.rent }
func (l *Lodge) Deposit() float64          { return l.deposit }
func (l *Lodge) Bedrooms() int             { return l.bedrooms }
func (l *Lodge) Bathrooms() int            { return l.bathrooms }
func (l *Lodge) Amenities() []string       { return l.amenities }
func (l *Lodge) AvailableFrom() *time.Time { return l.availableFrom }
func (l *Lodge) AvailableTo() *time.Time   { return l.availableTo }
func (l *Lodge) CreatedAt() time.Time      { return l.createdAt }
func (l *Lodge) UpdatedAt() time.Time      { return l.updatedAt }

// Details returns the current listing fields.
func (l *Lodge) Details() Details {
	return Details{
		Title:         l.title,
		Description:   l.description,
		Location:      l.location,
		Type:          l.lodgeType,
		Rent:          l.rent,
		Deposit:       l.deposit,
		Bedrooms:      l.bedrooms,
		Bathrooms:     l.bathrooms,
		Amenities:     append([]string(nil), l.amenities...),
		AvailableFrom: l.availableFrom,
		AvailableTo:   l.availableTo,
	}
}

// --- Behavior ---

// IsOwnedBy checks if the lodge belongs to the given owner.
func (l *Lodge) IsOwnedBy(ownerID uuid.UUID) bool {
	return l.ownerID == ownerID
}

// Update replaces the listing fields after validating them as a whole.
func (l *Lodge) Update(d Details) error {
	if err := d.validate(); err != nil {
		return err
	}
	l.apply(d)
	l.updatedAt = time.Now().UTC()
	return nil
}
