package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/tripcanvas/service-travel/internal/application"
	"github.com/tripcanvas/service-travel/internal/auth"
	"github.com/tripcanvas/service-travel/internal/middleware"
	"github.com/tripcanvas/service-travel/internal/response"
)

// TransportationHandler handles HTTP requests for trip transport records.
type TransportationHandler struct {
	service *application.TransportationService
}

// NewTransportationHandler creates a new TransportationHandler.
func NewTransportationHandler(service *application.TransportationService) *TransportationHandler {
	return &TransportationHandler{service: service}
}

// RegisterRoutes registers transportation routes on the given router group.
func (h *TransportationHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authMW := middleware.Auth(jwtManager)

	trips := r.Group("/api/trips/:id/transportations")
	trips.Use(authMW)
	{
		trips.GET("", h.List)
		trips.POST("", h.Create)
	}

	records := r.Group("/api/transportations")
	records.Use(authMW)
	{
		records.PUT("/:id", h.Update)
		records.DELETE("/:id", h.Delete)
	}
}

// List handles GET /api/trips/:id/transportations.
func (h *TransportationHandler) List(c *gin.Context) {
	tripID, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.service.List(c.Request.Context(), tripID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Create handles POST /api/trips/:id/transportations.
func (h *TransportationHandler) Create(c *gin.Context) {
	tripID, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req application.TransportationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.Create(c.Request.Context(), tripID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// Update handles PUT /api/transportations/:id.
func (h *TransportationHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req application.TransportationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Delete handles DELETE /api/transportations/:id.
func (h *TransportationHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
