// Package testutil provides an in-memory SQLite database and fixtures for tests.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/unn-housing/service-booking/internal/auth"
	"github.com/unn-housing/service-booking/internal/config"
	"github.com/unn-housing/service-booking/internal/database"
	"github.com/unn-housing/service-booking/internal/domain/lodge"
	"github.com/unn-housing/service-booking/internal/domain/user"
	"github.com/unn-housing/service-booking/internal/repository"
)

// NewDB opens a private in-memory SQLite database with every table migrated.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	cfg := config.DatabaseConfig{DSN: "file:" + uuid.NewString() + "?mode=memory&cache=shared&_time_format=sqlite"}
	db, err := database.Connect(cfg, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, repository.AutoMigrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// Day returns midnight UTC of the given day in June 2024.
func Day(d int) time.Time {
	return time.Date(2024, time.June, d, 0, 0, 0, 0, time.UTC)
}

// CreateUser inserts a user with the given role.
func CreateUser(t *testing.T, db *gorm.DB, role auth.Role) *user.User {
	t.Helper()

	u, err := user.NewUser(uuid.NewString()[:8]+"@students.unn.edu.ng", "hash", "Ada", "Obi", role)
	require.NoError(t, err)
	require.NoError(t, repository.NewGormUserRepository(db).Save(context.Background(), u))
	return u
}

// CreateLodge inserts a lodge owned by ownerID.
func CreateLodge(t *testing.T, db *gorm.DB, ownerID uuid.UUID) *lodge.Lodge {
	t.Helper()

	l, err := lodge.NewLodge(ownerID, lodge.Details{
		Title:     "Self-contained near Hilltop",
		Location:  "Nsukka",
		Type:      lodge.TypeSelfContained,
		Rent:      150000,
		Bedrooms:  1,
		Bathrooms: 1,
		Amenities: []string{"water", "prepaid meter"},
	})
	require.NoError(t, err)
	require.NoError(t, repository.NewGormLodgeRepository(db).Save(context.Background(), l))
	return l
}
