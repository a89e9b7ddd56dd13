package handler

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/unn-housing/service-booking/internal/application"
	"github.com/unn-housing/service-booking/internal/auth"
	"github.com/unn-housing/service-booking/internal/middleware"
	"github.com/unn-housing/service-booking/internal/response"
)

const (
	msgMissingFields   = "Missing required fields"
	msgInvalidBody     = "Invalid request body"
	msgBookingNotFound = "Booking not found"
	msgUnauthorized    = "Unauthorized"
)

// BookingHandler handles HTTP requests for booking operations.
type BookingHandler struct {
	service *application.BookingService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(service *application.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

// RegisterRoutes registers all booking routes on the given router group.
func (h *BookingHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authMW := middleware.AuthMiddleware(jwtManager)

	bookings := r.Group("/api/v1/bookings")
	{
		bookings.POST("", authMW, h.CreateBooking)
		bookings.GET("/user", authMW, h.ListMyBookings)
		bookings.GET("/user/:bookingId", authMW, h.GetMyBooking)
		bookings.PUT("/user/:bookingId", authMW, h.UpdateMyBooking)
		bookings.DELETE("/user/:bookingId", authMW, h.CancelMyBooking)
		bookings.GET("/property/:unitId", h.ListUnitBookings)
	}
}

// CreateBooking handles POST /api/v1/bookings.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	tenantID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, msgUnauthorized)
		return
	}

	var req application.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, msgMissingFields)
		return
	}
	if !req.HasRequiredFields() {
		response.BadRequest(c, msgMissingFields)
		return
	}

	result, err := h.service.CreateBooking(c.Request.Context(), tenantID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// ListMyBookings handles GET /api/v1/bookings/user.
func (h *BookingHandler) ListMyBookings(c *gin.Context) {
	tenantID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, msgUnauthorized)
		return
	}

	result, err := h.service.GetBookingsByTenant(c.Request.Context(), tenantID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"bookings": result})
}

// GetMyBooking handles GET /api/v1/bookings/user/:bookingId.
func (h *BookingHandler) GetMyBooking(c *gin.Context) {
	tenantID, bookingID, ok := tenantAndBooking(c)
	if !ok {
		return
	}

	result, err := h.service.GetBookingByTenant(c.Request.Context(), tenantID, bookingID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// UpdateMyBooking handles PUT /api/v1/bookings/user/:bookingId.
func (h *BookingHandler) UpdateMyBooking(c *gin.Context) {
	tenantID, bookingID, ok := tenantAndBooking(c)
	if !ok {
		return
	}

	// An absent body is an empty partial update, same as {}.
	var req application.UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		// A foreign booking must look missing even when the body is garbage.
		if _, ferr := h.service.GetBookingByTenant(c.Request.Context(), tenantID, bookingID); ferr != nil {
			response.Error(c, ferr)
			return
		}
		response.BadRequest(c, msgInvalidBody)
		return
	}

	result, err := h.service.UpdateBookingByTenant(c.Request.Context(), tenantID, bookingID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// CancelMyBooking handles DELETE /api/v1/bookings/user/:bookingId.
func (h *BookingHandler) CancelMyBooking(c *gin.Context) {
	tenantID, bookingID, ok := tenantAndBooking(c)
	if !ok {
		return
	}

	result, err := h.service.CancelBookingByTenant(c.Request.Context(), tenantID, bookingID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ListUnitBookings handles GET /api/v1/bookings/property/:unitId.
func (h *BookingHandler) ListUnitBookings(c *gin.Context) {
	unitID, err := uuid.Parse(c.Param("unitId"))
	if err != nil {
		response.BadRequest(c, "invalid unit ID")
		return
	}

	result, err := h.service.GetBookingsByUnit(c.Request.Context(), unitID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// tenantAndBooking resolves the caller and the :bookingId param. A malformed
// id is reported as a missing booking.
func tenantAndBooking(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	tenantID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, msgUnauthorized)
		return uuid.Nil, uuid.Nil, false
	}

	bookingID, err := uuid.Parse(c.Param("bookingId"))
	if err != nil {
		response.NotFound(c, msgBookingNotFound)
		return uuid.Nil, uuid.Nil, false
	}
	return tenantID, bookingID, true
}
