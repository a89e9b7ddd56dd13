package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/unn-housing/service-booking/internal/application"
	"github.com/unn-housing/service-booking/internal/auth"
	"github.com/unn-housing/service-booking/internal/events"
	"github.com/unn-housing/service-booking/internal/handler"
	"github.com/unn-housing/service-booking/internal/middleware"
	"github.com/unn-housing/service-booking/internal/repository"
	"github.com/unn-housing/service-booking/internal/testutil"
)

type testServer struct {
	router *gin.Engine
	jwt    *auth.JWTManager
	unitID uuid.UUID
	owner  uuid.UUID
}

func newTestServer(t *testing.T) *testServer {
	gin.SetMode(gin.TestMode)
	db := testutil.NewDB(t)
	log := zap.NewNop()

	owner := testutil.CreateUser(t, db, auth.RolePropertyOwner)
	unit := testutil.CreateLodge(t, db, owner.ID())

	jwtManager := auth.NewJWTManager("test-secret", time.Minute, time.Hour)
	users := repository.NewGormUserRepository(db)
	lodges := repository.NewGormLodgeRepository(db)
	bookings := repository.NewGormBookingRepository(db)
	reviews := repository.NewGormReviewRepository(db)

	bookingService := application.NewBookingService(bookings, users, lodges, events.NopPublisher{}, 0, log)

	router := gin.New()
	router.Use(middleware.RecoveryMiddleware(log), middleware.RequestIDMiddleware(), middleware.LoggerMiddleware(log))
	handler.NewAuthHandler(application.NewAuthService(users, jwtManager, log)).RegisterRoutes(&router.RouterGroup)
	handler.NewBookingHandler(bookingService).RegisterRoutes(&router.RouterGroup, jwtManager)
	handler.NewAdminBookingHandler(bookingService).RegisterRoutes(&router.RouterGroup, jwtManager)
	handler.NewLodgeHandler(application.NewLodgeService(lodges, log)).RegisterRoutes(&router.RouterGroup, jwtManager)
	handler.NewReviewHandler(application.NewReviewService(reviews, lodges, log)).RegisterRoutes(&router.RouterGroup, jwtManager)
	handler.NewUserHandler(application.NewUserService(users, log)).RegisterRoutes(&router.RouterGroup, jwtManager)

	return &testServer{router: router, jwt: jwtManager, unitID: unit.ID(), owner: owner.ID()}
}

// register creates an account through the API and returns its id and access token.
func (s *testServer) register(t *testing.T, role auth.Role) (uuid.UUID, string) {
	t.Helper()

	w := s.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email":     uuid.NewString()[:8] + "@students.unn.edu.ng",
		"password":  "correct-horse",
		"firstName": "Chidi",
		"lastName":  "Eze",
		"role":      string(role),
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp application.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.User.ID, resp.Tokens.AccessToken
}

func (s *testServer) token(t *testing.T, userID uuid.UUID, role auth.Role) string {
	t.Helper()
	tok, err := s.jwt.GenerateAccessToken(userID, role)
	require.NoError(t, err)
	return tok
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) book(t *testing.T, token, in, out string) *httptest.ResponseRecorder {
	t.Helper()
	return s.do(t, http.MethodPost, "/api/v1/bookings", token, map[string]string{
		"unitId":       s.unitID.String(),
		"checkInDate":  in,
		"checkOutDate": out,
	})
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body.Error
}

func decodeBooking(t *testing.T, w *httptest.ResponseRecorder) application.BookingDTO {
	t.Helper()
	var dto application.BookingDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &dto), w.Body.String())
	return dto
}
