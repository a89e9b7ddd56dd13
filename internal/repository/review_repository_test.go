package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unn-housing/service-booking/internal/auth"
	"github.com/unn-housing/service-booking/internal/domain"
	"github.com/unn-housing/service-booking/internal/domain/review"
	"github.com/unn-housing/service-booking/internal/repository"
	"github.com/unn-housing/service-booking/internal/testutil"
)

func TestReviewRepository(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	repo := repository.NewGormReviewRepository(db)
	owner := testutil.CreateUser(t, db, auth.RolePropertyOwner)
	tenant := testutil.CreateUser(t, db, auth.RoleTenant)
	l := testutil.CreateLodge(t, db, owner.ID())

	r, err := review.NewReview(l.ID(), tenant.ID(), 4, "Steady water supply")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, r))

	require.NoError(t, r.Edit(5, "Steady water and light"))
	require.NoError(t, repo.Update(ctx, r))

	list, err := repo.FindByLodgeID(ctx, l.ID())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 5, list[0].Rating())

	require.NoError(t, repo.Delete(ctx, r.ID()))
	_, err = repo.FindByID(ctx, r.ID())
	assert.True(t, domain.IsNotFound(err))
}
