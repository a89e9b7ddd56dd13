package booking

import (
	"context"

	"github.com/google/uuid"
)

// BookingRepository defines the persistence contract for booking aggregates.
type BookingRepository interface {
	OverlapFinder

	// FindByID retrieves a booking by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Booking, error)

	// FindByIDAndTenant retrieves a booking only if it belongs to tenantID.
	// A foreign booking is reported as not found.
	FindByIDAndTenant(ctx context.Context, id, tenantID uuid.UUID) (*Booking, error)

	// FindByUnitID retrieves every booking for a unit, ordered by check-in.
	FindByUnitID(ctx context.Context, unitID uuid.UUID) ([]*Booking, error)

	// FindByTenantID retrieves every booking owned by a tenant, newest first.
	FindByTenantID(ctx context.Context, tenantID uuid.UUID) ([]*Booking, error)

	// ListAll retrieves all bookings with pagination (admin).
	ListAll(ctx context.Context, page, limit int) ([]*Booking, int64, error)

	// CountByStatus returns booking counts grouped by status (admin).
	CountByStatus(ctx context.Context) (map[string]int64, error)

	// Save persists a new booking.
	Save(ctx context.Context, booking *Booking) error

	// Update persists changes to an existing booking.
	Update(ctx context.Context, booking *Booking) error

	// Delete hard-deletes a booking.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithUnitLock runs fn in a transaction holding an exclusive lock on the
	// unit, so availability checks and writes for that unit are serialized.
	// The repository passed to fn is bound to the transaction.
	WithUnitLock(ctx context.Context, unitID uuid.UUID, fn func(tx BookingRepository) error) error
}
