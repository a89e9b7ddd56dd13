package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unn-housing/service-booking/internal/application"
	"github.com/unn-housing/service-booking/internal/auth"
)

func decodeUser(t *testing.T, body []byte) application.UserDTO {
	t.Helper()
	var dto application.UserDTO
	require.NoError(t, json.Unmarshal(body, &dto), string(body))
	return dto
}

func TestUserProfileRoutes(t *testing.T) {
	s := newTestServer(t)
	userID, tok := s.register(t, auth.RoleTenant)

	w := s.do(t, http.MethodGet, "/api/v1/users/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/users/profile", tok, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	profile := decodeUser(t, w.Body.Bytes())
	assert.Equal(t, userID, profile.ID)
	assert.Equal(t, "Chidi", profile.FirstName)

	w = s.do(t, http.MethodPut, "/api/v1/users/profile", tok, map[string]string{"lastName": "Okafor", "role": "ADMIN"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	profile = decodeUser(t, w.Body.Bytes())
	assert.Equal(t, "Chidi", profile.FirstName)
	assert.Equal(t, "Okafor", profile.LastName)
	assert.Equal(t, string(auth.RoleTenant), profile.Role)

	w = s.do(t, http.MethodPut, "/api/v1/users/profile", tok, map[string]string{"email": "nope"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPut, "/api/v1/users/profile", tok, "{")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUserAdminRoutes(t *testing.T) {
	s := newTestServer(t)
	tenantID, tenantTok := s.register(t, auth.RoleTenant)
	adminTok := s.token(t, uuid.New(), auth.RoleAdmin)

	w := s.do(t, http.MethodGet, "/api/v1/users", tenantTok, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = s.do(t, http.MethodDelete, "/api/v1/users/"+s.owner.String(), tenantTok, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/users?limit=1", adminTok, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var page struct {
		Data  []application.UserDTO `json:"data"`
		Total int64                 `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Len(t, page.Data, 1)
	assert.Equal(t, int64(2), page.Total)

	userPath := "/api/v1/users/" + tenantID.String()
	w = s.do(t, http.MethodGet, userPath, adminTok, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, tenantID, decodeUser(t, w.Body.Bytes()).ID)

	w = s.do(t, http.MethodGet, "/api/v1/users/not-a-uuid", adminTok, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid user ID", errorMessage(t, w))

	w = s.do(t, http.MethodGet, "/api/v1/users/"+uuid.NewString(), adminTok, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodPut, userPath, adminTok, map[string]string{"role": "SUPERUSER"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPut, userPath, adminTok, map[string]string{"role": "PROPERTY_OWNER"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, string(auth.RolePropertyOwner), decodeUser(t, w.Body.Bytes()).Role)

	// The seeded owner still has a lodge.
	w = s.do(t, http.MethodDelete, "/api/v1/users/"+s.owner.String(), adminTok, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(t, http.MethodDelete, userPath, adminTok, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = s.do(t, http.MethodGet, userPath, adminTok, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
