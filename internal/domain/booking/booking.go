package booking

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/unn-housing/service-booking/internal/domain"
)

// emptyPaymentDetails is stored on every new booking; payment is not processed here.
var emptyPaymentDetails = json.RawMessage(`{}`)

// Booking is the aggregate root for a tenant's reservation of one unit.
type Booking struct {
	id             uuid.UUID
	tenantID       uuid.UUID
	unitID         uuid.UUID
	stay           DateRange
	status         BookingStatus
	paymentDetails json.RawMessage
	totalRent      float64

	createdAt time.Time
	updatedAt time.Time
}

// NewBooking creates a new Booking aggregate with status PENDING.
func NewBooking(tenantID, unitID uuid.UUID, stay DateRange, totalRent float64) (*Booking, error) {
	if tenantID == uuid.Nil {
		return nil, domain.NewValidationError("tenant ID is required")
	}
	if unitID == uuid.Nil {
		return nil, domain.NewValidationError("unit ID is required")
	}
	if stay.CheckIn().IsZero() || !stay.CheckIn().Before(stay.CheckOut()) {
		return nil, domain.NewValidationError(MsgInvalidDateRange)
	}
	if totalRent < 0 {
		return nil, domain.NewValidationError("total rent must not be negative")
	}

	now := time.Now().UTC()
	return &Booking{
		id:             uuid.New(),
		tenantID:       tenantID,
		unitID:         unitID,
		stay:           stay,
		status:         StatusPending,
		paymentDetails: emptyPaymentDetails,
		totalRent:      totalRent,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

// ReconstructBooking rebuilds a Booking from persistence data (no validation).
func ReconstructBooking(
	id uuid.UUID,
	tenantID uuid.UUID,
	unitID uuid.UUID,
	checkIn time.Time,
	checkOut time.Time,
	status BookingStatus,
	paymentDetails json.RawMessage,
	totalRent float64,
	createdAt time.Time,
	updatedAt time.Time,
) *Booking {
	if len(paymentDetails) == 0 {
		paymentDetails = emptyPaymentDetails
	}
	return &Booking{
		id:             id,
		tenantID:       tenantID,
		unitID:         unitID,
		stay:           DateRange{checkIn: checkIn.UTC(), checkOut: checkOut.UTC()},
		status:         status,
		paymentDetails: paymentDetails,
		totalRent:      totalRent,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

// --- Getters ---

// ID returns the booking's unique identifier.
func (b *Booking) ID() uuid.UUID { return b.id }

// TenantID returns the owning tenant's user ID.
func (b *Booking) TenantID() uuid.UUID { return b.tenantID }

// UnitID returns the booked lodge's ID.
func (b *Booking) UnitID() uuid.UUID { return b.unitID }

// Stay returns the booked date range.
func (b *Booking) Stay() DateRange { return b.stay }

// CheckIn returns the check-in instant.
func (b *Booking) CheckIn() time.Time { return b.stay.CheckIn() }

// CheckOut returns the check-out instant.
func (b *Booking) CheckOut() time.Time { return b.stay.CheckOut() }

// Status returns the current booking status.
func (b *Booking) Status() BookingStatus { return b.status }

// PaymentDetails returns the opaque payment blob as stored.
func (b *Booking) PaymentDetails() json.RawMessage { return b.paymentDetails }

// TotalRent returns the rent charged for the stay.
func (b *Booking) TotalRent() float64 { return b.totalRent }

// CreatedAt returns the creation timestamp.
func (b *Booking) CreatedAt() time.Time { return b.createdAt }

// UpdatedAt returns the last-updated timestamp.
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }

// --- Behavior ---

// IsOwnedBy checks if the booking belongs to the given tenant.
func (b *Booking) IsOwnedBy(tenantID uuid.UUID) bool {
	return b.tenantID == tenantID
}

// Reschedule moves the booking to a new stay. Availability is checked by the caller.
func (b *Booking) Reschedule(stay DateRange) error {
	if stay.CheckIn().IsZero() || !stay.CheckIn().Before(stay.CheckOut()) {
		return domain.NewValidationError(MsgInvalidDateRange)
	}
	b.stay = stay
	b.updatedAt = time.Now().UTC()
	return nil
}

// ReplacePaymentDetails stores a new payment blob without interpreting it.
func (b *Booking) ReplacePaymentDetails(details json.RawMessage) error {
	if len(details) == 0 || string(details) == "null" {
		details = emptyPaymentDetails
	}
	if !json.Valid(details) {
		return domain.NewValidationError("paymentDetails must be valid JSON")
	}
	b.paymentDetails = append(json.RawMessage(nil), details...)
	b.updatedAt = time.Now().UTC()
	return nil
}
