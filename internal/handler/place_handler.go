package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/tripcanvas/service-travel/internal/application"
	placeDomain "github.com/tripcanvas/service-travel/internal/domain/place"
	"github.com/tripcanvas/service-travel/internal/response"
)

// PlaceHandler handles HTTP requests for place suggestions and the place
// cache. These routes are public: the frontend calls them before a user
// signs in.
type PlaceHandler struct {
	service *application.PlaceService
}

// NewPlaceHandler creates a new PlaceHandler.
func NewPlaceHandler(service *application.PlaceService) *PlaceHandler {
	return &PlaceHandler{service: service}
}

// RegisterRoutes registers place routes on the given router group.
func (h *PlaceHandler) RegisterRoutes(r *gin.RouterGroup) {
	places := r.Group("/api/places")
	{
		places.POST("/autocomplete", h.Autocomplete)
		places.GET("/geocode", h.Geocode)
		places.POST("/cache", h.CachePlace)
		places.GET("/cache/:placeId", h.GetCachedPlace)
	}
}

// Autocomplete handles POST /api/places/autocomplete. The query is read from
// the form body or the query string.
func (h *PlaceHandler) Autocomplete(c *gin.Context) {
	query := c.PostForm("q")
	if query == "" {
		query = c.Query("q")
	}

	result, err := h.service.Suggest(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Geocode handles GET /api/places/geocode. The geocoder response passes
// through unchanged.
func (h *PlaceHandler) Geocode(c *gin.Context) {
	raw, err := h.service.Geocode(c.Request.Context(), c.Query("placeId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Data(200, "application/json", raw)
}

// CachePlace handles POST /api/places/cache.
func (h *PlaceHandler) CachePlace(c *gin.Context) {
	var req struct {
		PlaceID   string   `json:"placeId" binding:"required"`
		Name      string   `json:"name"`
		Address   string   `json:"address"`
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
		Category  string   `json:"category"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	p := &placeDomain.Place{
		PlaceID:   req.PlaceID,
		Name:      req.Name,
		Address:   req.Address,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Category:  req.Category,
	}
	if err := h.service.CachePlace(c.Request.Context(), p); err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, p)
}

// GetCachedPlace handles GET /api/places/cache/:placeId.
func (h *PlaceHandler) GetCachedPlace(c *gin.Context) {
	result, err := h.service.GetCachedPlace(c.Request.Context(), c.Param("placeId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
