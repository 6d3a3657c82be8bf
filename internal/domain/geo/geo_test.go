package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineKm_SamePointIsZero(t *testing.T) {
	points := [][2]float64{
		{0, 0},
		{37.5665, 126.9780},
		{-33.8688, 151.2093},
		{89.9, -179.9},
	}
	for _, p := range points {
		assert.Equal(t, 0.0, HaversineKm(p[0], p[1], p[0], p[1]))
	}
}

func TestHaversineKm_SeoulToBusan(t *testing.T) {
	// Seoul city hall to Busan city hall, roughly 325 km great-circle.
	d := HaversineKm(37.5665, 126.9780, 35.1796, 129.0756)
	assert.InDelta(t, 325.0, d, 2.0)
}

func TestHaversineKm_RoundedToOneDecimal(t *testing.T) {
	d := HaversineKm(37.5665, 126.9780, 37.5700, 126.9800)
	assert.Equal(t, d, float64(int(d*10))/10)
}

func TestEstimateMinutes_KnownSpeeds(t *testing.T) {
	// 30 km at mode speed.
	assert.Equal(t, 60, EstimateMinutes(30, "TRANSIT"))
	assert.Equal(t, 45, EstimateMinutes(30, "DRIVE"))
	assert.Equal(t, 360, EstimateMinutes(30, "WALK"))
	assert.Equal(t, 120, EstimateMinutes(30, "BICYCLE"))
}

func TestEstimateMinutes_UnknownModeDefaultsToTransit(t *testing.T) {
	for _, mode := range []string{"", "TELEPORT", "flying", "drivee"} {
		assert.Equal(t, EstimateMinutes(42.5, "TRANSIT"), EstimateMinutes(42.5, mode), "mode %q", mode)
	}
}

func TestEstimateMinutes_CaseInsensitiveMode(t *testing.T) {
	assert.Equal(t, EstimateMinutes(12.3, "DRIVE"), EstimateMinutes(12.3, "drive"))
}

func TestEstimateMinutes_MonotonicInDistance(t *testing.T) {
	prev := 0
	for d := 0.0; d <= 500; d += 7.3 {
		m := EstimateMinutes(d, "WALK")
		assert.GreaterOrEqual(t, m, prev)
		prev = m
	}
}
