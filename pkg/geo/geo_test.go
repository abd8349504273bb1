package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCoordinate(t *testing.T) {
	t.Run("accepts valid bounds", func(t *testing.T) {
		c, err := NewCoordinate(90, -180)
		require.NoError(t, err)
		assert.Equal(t, 90.0, c.Lat)
		assert.Equal(t, -180.0, c.Lon)
	})

	t.Run("rejects out of range latitude", func(t *testing.T) {
		_, err := NewCoordinate(90.0001, 0)
		assert.Error(t, err)
	})

	t.Run("rejects out of range longitude", func(t *testing.T) {
		_, err := NewCoordinate(0, 180.5)
		assert.Error(t, err)
	})

	t.Run("rejects non-finite values", func(t *testing.T) {
		_, err := NewCoordinate(math.NaN(), 0)
		assert.Error(t, err)
		_, err = NewCoordinate(0, math.Inf(1))
		assert.Error(t, err)
	})
}

func TestDistanceKm(t *testing.T) {
	t.Run("zero for identical points", func(t *testing.T) {
		p := Coordinate{Lat: 12.97, Lon: 77.59}
		assert.Equal(t, 0.0, DistanceKm(p, p))
	})

	t.Run("symmetric", func(t *testing.T) {
		a := Coordinate{Lat: 12.97, Lon: 77.59}
		b := Coordinate{Lat: 13.08, Lon: 80.27}
		assert.InDelta(t, DistanceKm(a, b), DistanceKm(b, a), 1e-9)
	})

	t.Run("one degree along the equator", func(t *testing.T) {
		a := Coordinate{Lat: 0, Lon: 0}
		b := Coordinate{Lat: 0, Lon: 1}
		assert.InDelta(t, 111.19, DistanceKm(a, b), 0.5)
	})

	t.Run("antipodal points stay finite", func(t *testing.T) {
		a := Coordinate{Lat: 0, Lon: 0}
		b := Coordinate{Lat: 0, Lon: 180}
		d := DistanceKm(a, b)
		assert.False(t, math.IsNaN(d))
		assert.InDelta(t, math.Pi*EarthRadiusKm, d, 1.0)
	})
}

func TestBoxAround(t *testing.T) {
	center := Coordinate{Lat: 12.97, Lon: 77.59}
	box := BoxAround(center, 10)

	t.Run("contains the center", func(t *testing.T) {
		assert.True(t, box.Contains(center))
	})

	t.Run("contains points inside the radius", func(t *testing.T) {
		assert.True(t, box.Contains(Coordinate{Lat: 12.99, Lon: 77.60}))
	})

	t.Run("excludes points far outside", func(t *testing.T) {
		assert.False(t, box.Contains(Coordinate{Lat: 14.0, Lon: 77.59}))
	})

	t.Run("near the pole the longitude range degenerates to full", func(t *testing.T) {
		polar := BoxAround(Coordinate{Lat: 89.9, Lon: 0}, 50)
		assert.True(t, polar.Contains(Coordinate{Lat: 89.9, Lon: 179}))
	})
}
