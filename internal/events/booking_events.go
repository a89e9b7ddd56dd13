package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	// Source identifies this service in every emitted event.
	Source = "service-booking"

	BookingCreated   = "booking.created"
	BookingUpdated   = "booking.updated"
	BookingCancelled = "booking.cancelled"
)

// BookingEvent is the payload of every booking lifecycle event.
type BookingEvent struct {
	BookingID    uuid.UUID `json:"bookingId"`
	TenantID     uuid.UUID `json:"tenantId"`
	UnitID       uuid.UUID `json:"unitId"`
	CheckInDate  time.Time `json:"checkInDate"`
	CheckOutDate time.Time `json:"checkOutDate"`
	Status       string    `json:"status"`
	TotalRent    float64   `json:"totalRent"`
	OccurredAt   time.Time `json:"occurredAt"`
}
