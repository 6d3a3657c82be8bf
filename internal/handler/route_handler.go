package handler

import (
	"io"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tripcanvas/service-travel/internal/application"
	"github.com/tripcanvas/service-travel/internal/response"
)

// RouteHandler handles HTTP requests for route estimation. Public: the trip
// editor calls it while composing itineraries.
type RouteHandler struct {
	service *application.RouteService
}

// NewRouteHandler creates a new RouteHandler.
func NewRouteHandler(service *application.RouteService) *RouteHandler {
	return &RouteHandler{service: service}
}

// RegisterRoutes registers route estimation routes on the given router group.
func (h *RouteHandler) RegisterRoutes(r *gin.RouterGroup) {
	routes := r.Group("/api/routes")
	{
		routes.GET("/compute", h.Compute)
		routes.POST("/matrix", h.Matrix)
	}
}

// Compute handles GET /api/routes/compute. Estimation never fails: on any
// upstream problem the response carries the local fallback estimate.
func (h *RouteHandler) Compute(c *gin.Context) {
	originLat, err1 := strconv.ParseFloat(c.Query("originLat"), 64)
	originLng, err2 := strconv.ParseFloat(c.Query("originLng"), 64)
	destLat, err3 := strconv.ParseFloat(c.Query("destLat"), 64)
	destLng, err4 := strconv.ParseFloat(c.Query("destLng"), 64)
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		response.BadRequest(c, "originLat, originLng, destLat and destLng must be valid coordinates")
		return
	}

	estimate := h.service.Compute(c.Request.Context(), originLat, originLng, destLat, destLng, c.Query("mode"))
	response.Success(c, estimate)
}

// Matrix handles POST /api/routes/matrix. The request body is forwarded to
// the routing API; on failure an error envelope flags the fallback.
func (h *RouteHandler) Matrix(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil || len(body) == 0 {
		response.BadRequest(c, "request body is required")
		return
	}

	raw, err := h.service.ComputeMatrix(c.Request.Context(), body)
	if err != nil {
		c.JSON(200, gin.H{"error": err.Error(), "fallback": true})
		return
	}
	c.Data(200, "application/json", raw)
}
