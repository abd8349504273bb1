package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/civic-complaints/internal/domain"
	"github.com/spec-kit/civic-complaints/internal/repository"
	"github.com/spec-kit/civic-complaints/pkg/geo"
)

func float64Ptr(v float64) *float64 { return &v }

func TestNearest(t *testing.T) {
	area := float64Ptr(100) // service radius sqrt(100/pi)+10 ~= 15.64 km
	home := geo.Coordinate{Lat: 10, Lon: 10}
	m := domain.Municipality{ID: "m1", Name: "Northtown", Home: home, AreaKm2: area}

	t.Run("matches a point inside the service radius", func(t *testing.T) {
		point := geo.Coordinate{Lat: 10.135, Lon: 10} // ~15.0 km north
		got := Nearest(point, []domain.Municipality{m})
		require.NotNil(t, got)
		assert.Equal(t, "m1", got.ID)
	})

	t.Run("rejects a point outside the service radius", func(t *testing.T) {
		point := geo.Coordinate{Lat: 10.18, Lon: 10} // ~20.0 km north
		assert.Nil(t, Nearest(point, []domain.Municipality{m}))
	})

	t.Run("no candidates yields nil", func(t *testing.T) {
		assert.Nil(t, Nearest(home, nil))
	})

	t.Run("default radius applies without area", func(t *testing.T) {
		noArea := domain.Municipality{ID: "m2", Home: home}
		point := geo.Coordinate{Lat: 10.2, Lon: 10} // ~22.2 km, inside default 25
		got := Nearest(point, []domain.Municipality{noArea})
		require.NotNil(t, got)
		assert.Equal(t, "m2", got.ID)
	})

	t.Run("distance ties break on lowest id", func(t *testing.T) {
		a := domain.Municipality{ID: "a", Home: geo.Coordinate{Lat: 10, Lon: 9.9}}
		b := domain.Municipality{ID: "b", Home: geo.Coordinate{Lat: 10, Lon: 10.1}}
		got := Nearest(geo.Coordinate{Lat: 10, Lon: 10}, []domain.Municipality{b, a})
		require.NotNil(t, got)
		assert.Equal(t, "a", got.ID)
	})

	t.Run("nearest wins even when a farther one would also cover", func(t *testing.T) {
		near := domain.Municipality{ID: "near", Home: geo.Coordinate{Lat: 10.05, Lon: 10}}
		far := domain.Municipality{ID: "far", Home: geo.Coordinate{Lat: 10.15, Lon: 10}}
		got := Nearest(geo.Coordinate{Lat: 10.04, Lon: 10}, []domain.Municipality{far, near})
		require.NotNil(t, got)
		assert.Equal(t, "near", got.ID)
	})
}

func TestResolverResolve(t *testing.T) {
	ctx := context.Background()
	municipalities := repository.NewInMemoryMunicipalityRepository()
	citizens := repository.NewInMemoryCitizenRepository()
	resolver := NewMunicipalityResolver(municipalities, citizens)

	m := &domain.Municipality{Name: "Northtown", Home: geo.Coordinate{Lat: 10, Lon: 10}, AreaKm2: float64Ptr(100)}
	require.NoError(t, municipalities.Create(ctx, m))
	citizen := &domain.Citizen{Name: "Asha", Email: "asha@example.com", Status: domain.CitizenStatusActive, IntegrityScore: 100}
	require.NoError(t, citizens.Create(ctx, citizen))

	t.Run("assigns when covered", func(t *testing.T) {
		match, err := resolver.Resolve(ctx, citizen.ID, geo.Coordinate{Lat: 10.05, Lon: 10})
		require.NoError(t, err)
		require.NotNil(t, match)
		assert.Equal(t, m.ID, match.ID)

		stored, err := citizens.GetByID(ctx, citizen.ID)
		require.NoError(t, err)
		require.NotNil(t, stored.MunicipalityID)
		assert.Equal(t, m.ID, *stored.MunicipalityID)
		require.NotNil(t, stored.Coordinate)
	})

	t.Run("clears the assignment but keeps the coordinate when uncovered", func(t *testing.T) {
		outside := geo.Coordinate{Lat: 40, Lon: 40}
		match, err := resolver.Resolve(ctx, citizen.ID, outside)
		require.NoError(t, err)
		assert.Nil(t, match)

		stored, err := citizens.GetByID(ctx, citizen.ID)
		require.NoError(t, err)
		assert.Nil(t, stored.MunicipalityID)
		require.NotNil(t, stored.Coordinate)
		assert.Equal(t, outside, *stored.Coordinate)
	})
}

func TestNearbyMunicipalities(t *testing.T) {
	ctx := context.Background()
	municipalities := repository.NewInMemoryMunicipalityRepository()
	citizens := repository.NewInMemoryCitizenRepository()
	resolver := NewMunicipalityResolver(municipalities, citizens)

	center := geo.Coordinate{Lat: 10, Lon: 10}
	near := &domain.Municipality{Name: "Near", Home: geo.Coordinate{Lat: 10.05, Lon: 10}}
	mid := &domain.Municipality{Name: "Mid", Home: geo.Coordinate{Lat: 10.5, Lon: 10}}
	far := &domain.Municipality{Name: "Far", Home: geo.Coordinate{Lat: 30, Lon: 10}}
	for _, m := range []*domain.Municipality{mid, near, far} {
		require.NoError(t, municipalities.Create(ctx, m))
	}

	t.Run("orders by distance and drops out-of-radius entries", func(t *testing.T) {
		got, err := resolver.NearbyMunicipalities(ctx, center, 6, 200)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "Near", got[0].Name)
		assert.Equal(t, "Mid", got[1].Name)
	})

	t.Run("honors the count cap", func(t *testing.T) {
		got, err := resolver.NearbyMunicipalities(ctx, center, 1, 200)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Near", got[0].Name)
	})
}
