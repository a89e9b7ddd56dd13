package booking

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/unn-housing/service-booking/internal/domain"
)

// OverlapFinder loads candidate conflicts for a unit from storage.
type OverlapFinder interface {
	FindOverlapping(ctx context.Context, unitID uuid.UUID, stay DateRange, excludeID *uuid.UUID) ([]*Booking, error)
}

// AvailabilityChecker decides whether a stay is free for a unit. It has no side effects.
type AvailabilityChecker struct {
	finder OverlapFinder
}

// NewAvailabilityChecker creates a checker backed by the given finder.
func NewAvailabilityChecker(finder OverlapFinder) *AvailabilityChecker {
	return &AvailabilityChecker{finder: finder}
}

// Check returns every booking of unitID whose stay overlaps the candidate,
// ignoring the booking identified by excludeID.
func (c *AvailabilityChecker) Check(ctx context.Context, unitID uuid.UUID, stay DateRange, excludeID *uuid.UUID) ([]*Booking, error) {
	candidates, err := c.finder.FindOverlapping(ctx, unitID, stay, excludeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query overlapping bookings: %w", err)
	}

	// Storage queries can be broader than the half-open rule; filter again here.
	conflicts := make([]*Booking, 0, len(candidates))
	for _, bk := range candidates {
		if bk.UnitID() != unitID {
			continue
		}
		if excludeID != nil && bk.ID() == *excludeID {
			continue
		}
		if bk.Stay().Overlaps(stay) {
			conflicts = append(conflicts, bk)
		}
	}
	return conflicts, nil
}

// IsAvailable reports whether no other booking of the unit overlaps the stay.
func (c *AvailabilityChecker) IsAvailable(ctx context.Context, unitID uuid.UUID, stay DateRange, excludeID *uuid.UUID) (bool, error) {
	conflicts, err := c.Check(ctx, unitID, stay, excludeID)
	if err != nil {
		return false, err
	}
	return len(conflicts) == 0, nil
}

// EnsureAvailable returns a validation error when the stay collides with another booking.
func (c *AvailabilityChecker) EnsureAvailable(ctx context.Context, unitID uuid.UUID, stay DateRange, excludeID *uuid.UUID) error {
	ok, err := c.IsAvailable(ctx, unitID, stay, excludeID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.NewValidationError(MsgUnavailable)
	}
	return nil
}
