package application_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/unn-housing/service-booking/internal/application"
	"github.com/unn-housing/service-booking/internal/auth"
	"github.com/unn-housing/service-booking/internal/domain"
	"github.com/unn-housing/service-booking/internal/repository"
	"github.com/unn-housing/service-booking/internal/testutil"
)

func TestAuthService(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	jwtManager := auth.NewJWTManager("test-secret", time.Minute, time.Hour)
	svc := application.NewAuthService(repository.NewGormUserRepository(db), jwtManager, zap.NewNop())

	reg, err := svc.Register(ctx, application.RegisterRequest{
		Email: "Chioma@Students.unn.edu.ng", Password: "correct-horse", FirstName: "Chioma", LastName: "Eze",
	})
	require.NoError(t, err)
	assert.Equal(t, "chioma@students.unn.edu.ng", reg.User.Email)
	assert.Equal(t, "TENANT", reg.User.Role)

	claims, err := jwtManager.ValidateToken(reg.Tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, claims.UserID)

	_, err = svc.Register(ctx, application.RegisterRequest{
		Email: "chioma@students.unn.edu.ng", Password: "correct-horse", FirstName: "C", LastName: "E",
	})
	assert.True(t, domain.IsKind(err, domain.KindConflict))

	_, err = svc.Register(ctx, application.RegisterRequest{
		Email: "admin@unn.edu.ng", Password: "correct-horse", FirstName: "A", LastName: "B", Role: "admin",
	})
	assert.True(t, domain.IsKind(err, domain.KindForbidden))

	_, err = svc.Login(ctx, application.LoginRequest{Email: "chioma@students.unn.edu.ng", Password: "wrong-password"})
	assert.True(t, domain.IsKind(err, domain.KindUnauthorized))

	login, err := svc.Login(ctx, application.LoginRequest{Email: "chioma@students.unn.edu.ng", Password: "correct-horse"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(ctx, application.RefreshRequest{RefreshToken: login.Tokens.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.Tokens.AccessToken)

	_, err = svc.Refresh(ctx, application.RefreshRequest{RefreshToken: login.Tokens.AccessToken})
	assert.True(t, domain.IsKind(err, domain.KindUnauthorized))
}
