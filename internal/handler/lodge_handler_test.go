package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unn-housing/service-booking/internal/application"
	"github.com/unn-housing/service-booking/internal/auth"
)

func lodgeBody(title string) map[string]interface{} {
	return map[string]interface{}{
		"title":     title,
		"location":  "Odenigwe, Nsukka",
		"type":      "shared",
		"rent":      90000,
		"bedrooms":  2,
		"amenities": []string{"borehole"},
	}
}

func TestLodgeRoutes_OwnerLifecycle(t *testing.T) {
	s := newTestServer(t)
	ownerID, ownerTok := s.register(t, auth.RolePropertyOwner)

	w := s.do(t, http.MethodPost, "/api/v1/lodges", ownerTok, lodgeBody("Twin room"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created application.LodgeDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, ownerID, created.OwnerID)
	assert.Equal(t, "SHARED", created.Type)

	w = s.do(t, http.MethodGet, "/api/v1/lodges/mine", ownerTok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var mine []application.LodgeDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &mine))
	require.Len(t, mine, 1)

	path := "/api/v1/lodges/" + created.ID.String()
	w = s.do(t, http.MethodPut, path, ownerTok, lodgeBody("Twin room, renovated"))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(t, http.MethodGet, path, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var fetched application.LodgeDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fetched))
	assert.Equal(t, "Twin room, renovated", fetched.Title)

	w = s.do(t, http.MethodDelete, path, ownerTok, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = s.do(t, http.MethodGet, path, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLodgeRoutes_Permissions(t *testing.T) {
	s := newTestServer(t)
	_, tenantTok := s.register(t, auth.RoleTenant)
	_, otherOwnerTok := s.register(t, auth.RolePropertyOwner)

	w := s.do(t, http.MethodPost, "/api/v1/lodges", tenantTok, lodgeBody("Nope"))
	assert.Equal(t, http.StatusForbidden, w.Code)

	path := "/api/v1/lodges/" + s.unitID.String()
	w = s.do(t, http.MethodPut, path, otherOwnerTok, lodgeBody("Hijacked"))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, http.MethodDelete, path, otherOwnerTok, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/lodges/bogus", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLodgeRoutes_DeleteWithBookingsConflicts(t *testing.T) {
	s := newTestServer(t)
	_, tenantTok := s.register(t, auth.RoleTenant)
	require.Equal(t, http.StatusCreated, s.book(t, tenantTok, "2024-06-01", "2024-06-05").Code)

	ownerTok := s.token(t, s.owner, auth.RolePropertyOwner)
	w := s.do(t, http.MethodDelete, "/api/v1/lodges/"+s.unitID.String(), ownerTok, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLodgeRoutes_ListIsPaginated(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/v1/lodges?limit=0", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var page struct {
		Data       []application.LodgeDTO `json:"data"`
		Total      int64                  `json:"total"`
		Page       int                    `json:"page"`
		Limit      int                    `json:"limit"`
		TotalPages int                    `json:"totalPages"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Len(t, page.Data, 1)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 20, page.Limit)
	assert.Equal(t, 1, page.TotalPages)
}
