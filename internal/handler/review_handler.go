package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/unn-housing/service-booking/internal/application"
	"github.com/unn-housing/service-booking/internal/auth"
	"github.com/unn-housing/service-booking/internal/middleware"
	"github.com/unn-housing/service-booking/internal/response"
)

// ReviewHandler handles HTTP requests for lodge reviews.
type ReviewHandler struct {
	service *application.ReviewService
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(service *application.ReviewService) *ReviewHandler {
	return &ReviewHandler{service: service}
}

// RegisterRoutes registers all review routes.
func (h *ReviewHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authMW := middleware.AuthMiddleware(jwtManager)

	r.POST("/api/v1/lodges/:lodgeId/reviews", authMW, h.CreateReview)
	r.GET("/api/v1/lodges/:lodgeId/reviews", h.ListLodgeReviews)

	reviews := r.Group("/api/v1/reviews")
	{
		reviews.GET("/:reviewId", h.GetReview)
		reviews.PUT("/:reviewId", authMW, h.UpdateReview)
		reviews.DELETE("/:reviewId", authMW, h.DeleteReview)
	}
}

// CreateReview handles POST /api/v1/lodges/:lodgeId/reviews.
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	lodgeID, ok := lodgeIDParam(c)
	if !ok {
		return
	}
	authorID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, msgUnauthorized)
		return
	}

	var req application.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreateReview(c.Request.Context(), lodgeID, authorID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// ListLodgeReviews handles GET /api/v1/lodges/:lodgeId/reviews.
func (h *ReviewHandler) ListLodgeReviews(c *gin.Context) {
	lodgeID, ok := lodgeIDParam(c)
	if !ok {
		return
	}

	result, err := h.service.GetLodgeReviews(c.Request.Context(), lodgeID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// GetReview handles GET /api/v1/reviews/:reviewId.
func (h *ReviewHandler) GetReview(c *gin.Context) {
	reviewID, ok := reviewIDParam(c)
	if !ok {
		return
	}

	result, err := h.service.GetReview(c.Request.Context(), reviewID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// UpdateReview handles PUT /api/v1/reviews/:reviewId.
func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	reviewID, ok := reviewIDParam(c)
	if !ok {
		return
	}
	authorID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, msgUnauthorized)
		return
	}

	var req application.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.UpdateReview(c.Request.Context(), reviewID, authorID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// DeleteReview handles DELETE /api/v1/reviews/:reviewId.
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	reviewID, ok := reviewIDParam(c)
	if !ok {
		return
	}
	authorID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, msgUnauthorized)
		return
	}

	if err := h.service.DeleteReview(c.Request.Context(), reviewID, authorID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func reviewIDParam(c *gin.Context) (uuid.UUID, bool) {
	reviewID, err := uuid.Parse(c.Param("reviewId"))
	if err != nil {
		response.BadRequest(c, "invalid review ID")
		return uuid.Nil, false
	}
	return reviewID, true
}
