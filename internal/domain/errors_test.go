package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNotFoundError_DoesNotLeakID(t *testing.T) {
	err := NewNotFoundError("Booking", "b7c1")
	assert.Equal(t, "Booking not found", err.Error())
	assert.Equal(t, "b7c1", err.ID)
	assert.Equal(t, KindNotFound, err.Kind)
}

func TestAsDomainError_UnwrapsWrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("failed to find booking: %w", NewValidationError("bad dates"))

	de, ok := AsDomainError(wrapped)
	require.True(t, ok)
	assert.Equal(t, KindValidation, de.Kind)
	assert.True(t, IsKind(wrapped, KindValidation))
	assert.False(t, IsNotFound(wrapped))
}

func TestAsDomainError_PlainError(t *testing.T) {
	_, ok := AsDomainError(fmt.Errorf("connection refused"))
	assert.False(t, ok)
}

func TestNewPaginatedResult(t *testing.T) {
	tests := []struct {
		name      string
		total     int64
		limit     int
		wantPages int
	}{
		{"exact", 40, 20, 2},
		{"remainder", 41, 20, 3},
		{"empty", 0, 20, 0},
		{"zero limit", 5, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := NewPaginatedResult[int](nil, tt.total, 1, tt.limit)
			assert.Equal(t, tt.wantPages, res.TotalPages)
			assert.NotNil(t, res.Items)
		})
	}
}
