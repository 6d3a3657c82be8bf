// Package geo provides pure great-circle distance and travel-time helpers
// used as the deterministic fallback when the external routing API is
// unavailable.
package geo

import (
	"math"
	"strings"
)

const earthRadiusKm = 6371.0

// Average speeds in km/h used for distance-based travel-time estimates.
const (
	speedTransitKmh = 30.0
	speedDriveKmh   = 40.0
	speedWalkKmh    = 5.0
	speedBicycleKmh = 15.0
)

// HaversineKm returns the great-circle distance between two coordinates in
// kilometers, rounded to one decimal place. It never fails for finite inputs;
// out-of-range latitudes and longitudes are not validated.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return math.Round(earthRadiusKm*c*10) / 10
}

// EstimateMinutes estimates travel time in whole minutes for the given
// distance and travel mode, using a mode-specific average speed. Unrecognized
// modes fall back to the transit speed.
func EstimateMinutes(distanceKm float64, mode string) int {
	speed := averageSpeedKmh(mode)
	hours := distanceKm / speed
	return int(math.Round(hours * 60))
}

func averageSpeedKmh(mode string) float64 {
	switch strings.ToUpper(mode) {
	case "TRANSIT":
		return speedTransitKmh
	case "DRIVE":
		return speedDriveKmh
	case "WALK":
		return speedWalkKmh
	case "BICYCLE":
		return speedBicycleKmh
	default:
		return speedTransitKmh
	}
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
