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

// LodgeHandler handles HTTP requests for lodge listings.
type LodgeHandler struct {
	service *application.LodgeService
}

// NewLodgeHandler creates a new LodgeHandler.
func NewLodgeHandler(service *application.LodgeService) *LodgeHandler {
	return &LodgeHandler{service: service}
}

// RegisterRoutes registers all lodge routes.
func (h *LodgeHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authMW := middleware.AuthMiddleware(jwtManager)
	ownerRole := middleware.RequireRole(auth.RolePropertyOwner, auth.RoleAdmin)

	lodges := r.Group("/api/v1/lodges")
	{
		lodges.GET("", h.ListLodges)
		lodges.GET("/mine", authMW, ownerRole, h.ListMyLodges)
		lodges.GET("/:lodgeId", h.GetLodge)
		lodges.POST("", authMW, ownerRole, h.CreateLodge)
		lodges.PUT("/:lodgeId", authMW, ownerRole, h.UpdateLodge)
		lodges.DELETE("/:lodgeId", authMW, ownerRole, h.DeleteLodge)
	}
}

// CreateLodge handles POST /api/v1/lodges.
func (h *LodgeHandler) CreateLodge(c *gin.Context) {
	ownerID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, msgUnauthorized)
		return
	}

	var req application.LodgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreateLodge(c.Request.Context(), ownerID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// ListLodges handles GET /api/v1/lodges.
func (h *LodgeHandler) ListLodges(c *gin.Context) {
	page, limit := parsePagination(c)

	result, err := h.service.ListLodges(c.Request.Context(), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, result.Items, result.Total, result.Page, result.Limit)
}

// ListMyLodges handles GET /api/v1/lodges/mine.
func (h *LodgeHandler) ListMyLodges(c *gin.Context) {
	ownerID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, msgUnauthorized)
		return
	}

	result, err := h.service.GetMyLodges(c.Request.Context(), ownerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// GetLodge handles GET /api/v1/lodges/:lodgeId.
func (h *LodgeHandler) GetLodge(c *gin.Context) {
	lodgeID, ok := lodgeIDParam(c)
	if !ok {
		return
	}

	result, err := h.service.GetLodge(c.Request.Context(), lodgeID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// UpdateLodge handles PUT /api/v1/lodges/:lodgeId.
func (h *LodgeHandler) UpdateLodge(c *gin.Context) {
	lodgeID, ok := lodgeIDParam(c)
	if !ok {
		return
	}
	caller, ok := middleware.GetIdentity(c)
	if !ok {
		response.Unauthorized(c, msgUnauthorized)
		return
	}

	var req application.LodgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.UpdateLodge(c.Request.Context(), caller, lodgeID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// DeleteLodge handles DELETE /api/v1/lodges/:lodgeId.
func (h *LodgeHandler) DeleteLodge(c *gin.Context) {
	lodgeID, ok := lodgeIDParam(c)
	if !ok {
		return
	}
	caller, ok := middleware.GetIdentity(c)
	if !ok {
		response.Unauthorized(c, msgUnauthorized)
		return
	}

	if err := h.service.DeleteLodge(c.Request.Context(), caller, lodgeID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func lodgeIDParam(c *gin.Context) (uuid.UUID, bool) {
	lodgeID, err := uuid.Parse(c.Param("lodgeId"))
	if err != nil {
		response.BadRequest(c, "invalid lodge ID")
		return uuid.Nil, false
	}
	return lodgeID, true
}
