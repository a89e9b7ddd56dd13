package application_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/unn-housing/service-booking/internal/application"
	"github.com/unn-housing/service-booking/internal/auth"
	"github.com/unn-housing/service-booking/internal/domain"
	"github.com/unn-housing/service-booking/internal/repository"
	"github.com/unn-housing/service-booking/internal/testutil"
)

func lodgeRequest() application.LodgeRequest {
	return application.LodgeRequest{
		Title:     "Two-bedroom flat, Odenigbo",
		Location:  "Nsukka",
		Type:      "apartment",
		Rent:      250000,
		Bedrooms:  2,
		Bathrooms: 1,
		Amenities: []string{"borehole"},
	}
}

func TestLodgeService_Lifecycle(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	svc := application.NewLodgeService(repository.NewGormLodgeRepository(db), zap.NewNop())
	owner := testutil.CreateUser(t, db, auth.RolePropertyOwner)
	ownerID := auth.Identity{UserID: owner.ID(), Roles: []auth.Role{auth.RolePropertyOwner}}

	created, err := svc.CreateLodge(ctx, owner.ID(), lodgeRequest())
	require.NoError(t, err)
	assert.Equal(t, "APARTMENT", created.Type)

	page, err := svc.ListLodges(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)

	req := lodgeRequest()
	req.Rent = 300000
	updated, err := svc.UpdateLodge(ctx, ownerID, created.ID, req)
	require.NoError(t, err)
	assert.Equal(t, 300000.0, updated.Rent)

	stranger := auth.Identity{UserID: uuid.New(), Roles: []auth.Role{auth.RolePropertyOwner}}
	_, err = svc.UpdateLodge(ctx, stranger, created.ID, req)
	assert.True(t, domain.IsKind(err, domain.KindForbidden))

	mine, err := svc.GetMyLodges(ctx, owner.ID())
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	admin := auth.Identity{UserID: uuid.New(), Roles: []auth.Role{auth.RoleAdmin}}
	require.NoError(t, svc.DeleteLodge(ctx, admin, created.ID))

	_, err = svc.GetLodge(ctx, created.ID)
	assert.True(t, domain.IsNotFound(err))
}

func TestLodgeService_Validation(t *testing.T) {
	db := testutil.NewDB(t)
	svc := application.NewLodgeService(repository.NewGormLodgeRepository(db), zap.NewNop())
	owner := testutil.CreateUser(t, db, auth.RolePropertyOwner)

	req := lodgeRequest()
	req.Type = "castle"
	_, err := svc.CreateLodge(context.Background(), owner.ID(), req)
	assert.True(t, domain.IsKind(err, domain.KindValidation))

	req = lodgeRequest()
	from := time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, -1, 0)
	req.AvailableFrom, req.AvailableTo = &from, &to
	_, err = svc.CreateLodge(context.Background(), owner.ID(), req)
	assert.True(t, domain.IsKind(err, domain.KindValidation))
}
