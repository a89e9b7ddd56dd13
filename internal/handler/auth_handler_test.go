package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unn-housing/service-booking/internal/application"
)

func TestAuthRoutes_RegisterLoginRefresh(t *testing.T) {
	s := newTestServer(t)
	email := uuid.NewString()[:8] + "@students.unn.edu.ng"

	w := s.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email": email, "password": "long-enough", "firstName": "Ngozi", "lastName": "Okafor",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email": email, "password": "long-enough", "firstName": "Ngozi", "lastName": "Okafor",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": email, "password": "wrong-password"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": email, "password": "long-enough"})
	require.Equal(t, http.StatusOK, w.Code)
	var login application.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
	assert.Equal(t, "TENANT", login.User.Role)

	// A refresh token cannot be used as a bearer token.
	w = s.do(t, http.MethodGet, "/api/v1/bookings/user", login.Tokens.RefreshToken, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/auth/refresh", "", map[string]string{"refreshToken": login.Tokens.RefreshToken})
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/auth/refresh", "", map[string]string{"refreshToken": login.Tokens.AccessToken})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRoutes_AdminCannotSelfRegister(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email": "root@unn.edu.ng", "password": "long-enough", "firstName": "A", "lastName": "B", "role": "admin",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{"email": "x@unn.edu.ng"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
