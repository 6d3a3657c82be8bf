package application

import (
	"context"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/tripcanvas/service-travel/internal/domain/geo"
	"github.com/tripcanvas/service-travel/internal/maps"
	"github.com/tripcanvas/service-travel/internal/metrics"
)

// Travel modes accepted by the route estimator.
var validTravelModes = map[string]struct{}{
	"DRIVE":   {},
	"TRANSIT": {},
	"WALK":    {},
	"BICYCLE": {},
}

// RouteEstimate is the response representation of a route computation.
// TrafficAware is always false: traffic-aware routing is not requested.
type RouteEstimate struct {
	Distance     float64 `json:"distance"`
	Duration     int     `json:"duration"`
	TravelMode   string  `json:"travelMode"`
	Fallback     bool    `json:"fallback"`
	TrafficAware bool    `json:"trafficAware"`
}

// RoutesClient is the slice of the maps client the route service depends on.
type RoutesClient interface {
	HasKey() bool
	ComputeRoutes(ctx context.Context, origin, dest maps.LatLng, mode string) (*maps.RoutesResponse, error)
	ComputeRouteMatrix(ctx context.Context, request json.RawMessage) (json.RawMessage, error)
}

// RouteService estimates travel distance and duration between two points.
type RouteService struct {
	client  RoutesClient
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewRouteService creates a new RouteService.
func NewRouteService(client RoutesClient, m *metrics.Metrics, logger *zap.Logger) *RouteService {
	return &RouteService{client: client, metrics: m, logger: logger}
}

// Compute estimates the route between two coordinates. It first attempts the
// external routing API; on any failure it falls back to a great-circle
// distance with a mode-specific average speed. It never returns an error:
// the fallback is the terminal recovery path.
func (s *RouteService) Compute(ctx context.Context, originLat, originLng, destLat, destLng float64, mode string) RouteEstimate {
	mode = normalizeTravelMode(mode)

	if s.client != nil && s.client.HasKey() {
		resp, err := s.client.ComputeRoutes(ctx,
			maps.LatLng{Latitude: originLat, Longitude: originLng},
			maps.LatLng{Latitude: destLat, Longitude: destLng},
			mode,
		)
		if err == nil {
			if estimate, ok := estimateFromResponse(resp, mode); ok {
				return estimate
			}
			s.logger.Warn("routes response had no usable leg, using fallback",
				zap.String("mode", mode),
			)
		} else {
			s.logger.Warn("route computation failed, using fallback",
				zap.String("mode", mode),
				zap.Error(err),
			)
		}
	}

	if s.metrics != nil {
		s.metrics.RouteFallbacksTotal.Inc()
	}
	distance := geo.HaversineKm(originLat, originLng, destLat, destLng)
	return RouteEstimate{
		Distance:   distance,
		Duration:   geo.EstimateMinutes(distance, mode),
		TravelMode: mode,
		Fallback:   true,
	}
}

// ComputeMatrix forwards a route-matrix request to the routing API and
// returns the origin response unchanged.
func (s *RouteService) ComputeMatrix(ctx context.Context, request json.RawMessage) (json.RawMessage, error) {
	return s.client.ComputeRouteMatrix(ctx, request)
}

func estimateFromResponse(resp *maps.RoutesResponse, mode string) (RouteEstimate, bool) {
	if resp == nil || len(resp.Routes) == 0 || len(resp.Routes[0].Legs) == 0 {
		return RouteEstimate{}, false
	}

	leg := resp.Routes[0].Legs[0]
	seconds, err := parseDurationSeconds(leg.Duration)
	if err != nil {
		return RouteEstimate{}, false
	}

	return RouteEstimate{
		Distance:   math.Round(leg.DistanceMeters/100) / 10,
		Duration:   int(math.Round(float64(seconds) / 60)),
		TravelMode: mode,
		Fallback:   false,
	}, true
}

// parseDurationSeconds parses the Routes API duration string, e.g. "1234s".
func parseDurationSeconds(d string) (int64, error) {
	return strconv.ParseInt(strings.TrimSuffix(d, "s"), 10, 64)
}

func normalizeTravelMode(mode string) string {
	mode = strings.ToUpper(strings.TrimSpace(mode))
	if _, ok := validTravelModes[mode]; !ok {
		return "TRANSIT"
	}
	return mode
}
