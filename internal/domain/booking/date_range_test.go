package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unn-housing/service-booking/internal/domain"
)

func day(d int) time.Time {
	return time.Date(2024, time.June, d, 0, 0, 0, 0, time.UTC)
}

func mustRange(t *testing.T, in, out int) DateRange {
	t.Helper()
	r, err := NewDateRange(day(in), day(out))
	require.NoError(t, err)
	return r
}

func TestNewDateRange_RejectsNonIncreasing(t *testing.T) {
	_, err := NewDateRange(day(5), day(5))
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindValidation))
	assert.Equal(t, MsgInvalidDateRange, err.Error())

	_, err = NewDateRange(day(6), day(5))
	assert.Error(t, err)

	_, err = NewDateRange(time.Time{}, day(5))
	assert.Error(t, err)
}

func TestNewDateRange_NormalizesToUTC(t *testing.T) {
	loc := time.FixedZone("WAT", 3600)
	r, err := NewDateRange(time.Date(2024, 6, 1, 12, 0, 0, 0, loc), time.Date(2024, 6, 2, 12, 0, 0, 0, loc))
	require.NoError(t, err)
	assert.Equal(t, time.UTC, r.CheckIn().Location())
	assert.Equal(t, 11, r.CheckIn().Hour())
}

func TestDateRange_Overlaps(t *testing.T) {
	existing := mustRange(t, 10, 15)

	tests := []struct {
		name    string
		in, out int
		want    bool
	}{
		{"abuts existing check-out", 15, 20, false},
		{"abuts existing check-in", 5, 10, false},
		{"overlaps tail", 13, 18, true},
		{"overlaps head", 8, 11, true},
		{"inside", 11, 14, true},
		{"envelops", 9, 20, true},
		{"identical", 10, 15, true},
		{"disjoint before", 1, 9, false},
		{"disjoint after", 16, 19, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidate := mustRange(t, tt.in, tt.out)
			assert.Equal(t, tt.want, existing.Overlaps(candidate))
			assert.Equal(t, tt.want, candidate.Overlaps(existing), "overlap must be symmetric")
		})
	}
}

func TestDateRange_OverlapsBeforeMonthStart(t *testing.T) {
	existing := mustRange(t, 3, 5)
	earlier, err := NewDateRange(time.Date(2024, time.May, 28, 0, 0, 0, 0, time.UTC), day(3))
	require.NoError(t, err)
	assert.False(t, existing.Overlaps(earlier))
}

func TestDateRange_Merge(t *testing.T) {
	stored := mustRange(t, 1, 5)

	newOut := day(8)
	merged, err := stored.Merge(nil, &newOut)
	require.NoError(t, err)
	assert.True(t, merged.CheckIn().Equal(day(1)))
	assert.True(t, merged.CheckOut().Equal(day(8)))

	lateIn := day(6)
	_, err = stored.Merge(&lateIn, nil)
	require.Error(t, err)
	assert.Equal(t, MsgInvalidDateRange, err.Error())

	same, err := stored.Merge(nil, nil)
	require.NoError(t, err)
	assert.True(t, same.Equal(stored))
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2024-06-01")
	require.NoError(t, err)
	assert.True(t, got.Equal(day(1)))

	got, err = ParseDate("2024-06-01T14:00:00+01:00")
	require.NoError(t, err)
	assert.Equal(t, 13, got.Hour())
	assert.Equal(t, time.UTC, got.Location())

	_, err = ParseDate("next tuesday")
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindValidation))

	_, err = ParseDate("  ")
	assert.Error(t, err)
}
