package booking

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBooking_Defaults(t *testing.T) {
	tenantID, unitID := uuid.New(), uuid.New()
	bk, err := NewBooking(tenantID, unitID, mustRange(t, 1, 5), 3000)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, bk.ID())
	assert.Equal(t, StatusPending, bk.Status())
	assert.JSONEq(t, `{}`, string(bk.PaymentDetails()))
	assert.Equal(t, 3000.0, bk.TotalRent())
	assert.True(t, bk.IsOwnedBy(tenantID))
	assert.False(t, bk.IsOwnedBy(uuid.New()))
}

func TestNewBooking_Validation(t *testing.T) {
	stay := mustRange(t, 1, 5)

	_, err := NewBooking(uuid.Nil, uuid.New(), stay, 3000)
	assert.Error(t, err)

	_, err = NewBooking(uuid.New(), uuid.Nil, stay, 3000)
	assert.Error(t, err)

	_, err = NewBooking(uuid.New(), uuid.New(), DateRange{}, 3000)
	assert.Error(t, err)

	_, err = NewBooking(uuid.New(), uuid.New(), stay, -1)
	assert.Error(t, err)
}

func TestBooking_Reschedule(t *testing.T) {
	bk, err := NewBooking(uuid.New(), uuid.New(), mustRange(t, 1, 5), 3000)
	require.NoError(t, err)

	require.NoError(t, bk.Reschedule(mustRange(t, 6, 9)))
	assert.True(t, bk.CheckIn().Equal(day(6)))
	assert.True(t, bk.CheckOut().Equal(day(9)))

	assert.Error(t, bk.Reschedule(DateRange{}))
}

func TestBooking_ReplacePaymentDetails(t *testing.T) {
	bk, err := NewBooking(uuid.New(), uuid.New(), mustRange(t, 1, 5), 3000)
	require.NoError(t, err)

	require.NoError(t, bk.ReplacePaymentDetails(json.RawMessage(`{"method":"transfer","ref":"TX-1"}`)))
	assert.JSONEq(t, `{"method":"transfer","ref":"TX-1"}`, string(bk.PaymentDetails()))

	require.NoError(t, bk.ReplacePaymentDetails(json.RawMessage(`null`)))
	assert.JSONEq(t, `{}`, string(bk.PaymentDetails()))

	assert.Error(t, bk.ReplacePaymentDetails(json.RawMessage(`{broken`)))
}

func TestParseBookingStatus(t *testing.T) {
	for _, s := range AllStatuses {
		got, err := ParseBookingStatus(string(s))
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
	_, err := ParseBookingStatus("requested")
	assert.Error(t, err)
}
