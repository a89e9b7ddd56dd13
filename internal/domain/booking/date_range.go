package booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/unn-housing/service-booking/internal/domain"
)

const (
	// MsgInvalidDateRange is returned whenever check-in is not strictly before check-out.
	MsgInvalidDateRange = "Check-in date must be before check-out date"
	// MsgUnavailable is returned when a range collides with another booking of the same unit.
	MsgUnavailable = "Property is not available for the requested dates"
)

// DateRange is a half-open stay interval [checkIn, checkOut).
type DateRange struct {
	checkIn  time.Time
	checkOut time.Time
}

// NewDateRange validates and normalizes a stay interval to UTC.
func NewDateRange(checkIn, checkOut time.Time) (DateRange, error) {
	if checkIn.IsZero() || checkOut.IsZero() {
		return DateRange{}, domain.NewValidationError("check-in and check-out dates are required")
	}
	if !checkIn.Before(checkOut) {
		return DateRange{}, domain.NewValidationError(MsgInvalidDateRange)
	}
	return DateRange{checkIn: checkIn.UTC(), checkOut: checkOut.UTC()}, nil
}

// CheckIn returns the inclusive start of the stay.
func (r DateRange) CheckIn() time.Time { return r.checkIn }

// CheckOut returns the exclusive end of the stay.
func (r DateRange) CheckOut() time.Time { return r.checkOut }

// Overlaps reports whether two ranges intersect. Ranges that only touch at an
// endpoint (one's check-out equals the other's check-in) do not overlap.
func (r DateRange) Overlaps(other DateRange) bool {
	return r.checkIn.Before(other.checkOut) && r.checkOut.After(other.checkIn)
}

// Equal reports whether both endpoints are the same instant.
func (r DateRange) Equal(other DateRange) bool {
	return r.checkIn.Equal(other.checkIn) && r.checkOut.Equal(other.checkOut)
}

// Merge returns the range obtained by replacing whichever endpoints are non-nil,
// validated as a whole.
func (r DateRange) Merge(checkIn, checkOut *time.Time) (DateRange, error) {
	in, out := r.checkIn, r.checkOut
	if checkIn != nil {
		in = *checkIn
	}
	if checkOut != nil {
		out = *checkOut
	}
	return NewDateRange(in, out)
}

func (r DateRange) String() string {
	return fmt.Sprintf("[%s, %s)", r.checkIn.Format(time.RFC3339), r.checkOut.Format(time.RFC3339))
}

var dateLayouts = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

// ParseDate accepts an RFC 3339 timestamp or a plain calendar date (taken as
// UTC midnight) and returns the instant in UTC.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, domain.NewValidationError("date is required")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, domain.NewValidationError(fmt.Sprintf("invalid date: %q", value))
}
