package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/civic-complaints/internal/domain"
	"github.com/spec-kit/civic-complaints/pkg/geo"
	apperrors "github.com/spec-kit/civic-complaints/pkg/util/errorutil"
)

func coordPtr(lat, lon float64) *geo.Coordinate {
	return &geo.Coordinate{Lat: lat, Lon: lon}
}

func TestCheckCreate(t *testing.T) {
	gate := NewProximityGate(0)
	municipality := &domain.Municipality{
		ID:      "m1",
		Home:    geo.Coordinate{Lat: 10, Lon: 10},
		AreaKm2: float64Ptr(100), // radius ~15.64 km
	}

	t.Run("allows an in-range citizen", func(t *testing.T) {
		citizen := &domain.Citizen{IntegrityScore: 100, Coordinate: coordPtr(10.05, 10)}
		assert.NoError(t, gate.CheckCreate(citizen, municipality))
	})

	t.Run("low integrity blocks before distance is considered", func(t *testing.T) {
		citizen := &domain.Citizen{IntegrityScore: 25, Coordinate: coordPtr(10.05, 10)}
		err := gate.CheckCreate(citizen, municipality)
		require.Error(t, err)
		var domainErr *apperrors.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "INTEGRITY_BLOCKED", domainErr.Code)
	})

	t.Run("threshold integrity passes", func(t *testing.T) {
		citizen := &domain.Citizen{IntegrityScore: domain.IntegrityThreshold, Coordinate: coordPtr(10.05, 10)}
		assert.NoError(t, gate.CheckCreate(citizen, municipality))
	})

	t.Run("out of service radius is rejected with the measured distance", func(t *testing.T) {
		citizen := &domain.Citizen{IntegrityScore: 100, Coordinate: coordPtr(10.18, 10)} // ~20 km
		err := gate.CheckCreate(citizen, municipality)
		require.Error(t, err)
		var domainErr *apperrors.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "OUT_OF_RANGE", domainErr.Code)
		assert.Greater(t, domainErr.Details["distance_km"].(float64), domainErr.Details["allowed_km"].(float64))
	})

	t.Run("missing location is rejected", func(t *testing.T) {
		citizen := &domain.Citizen{IntegrityScore: 100}
		assert.Error(t, gate.CheckCreate(citizen, municipality))
	})
}

func TestCanUpvote(t *testing.T) {
	gate := NewProximityGate(1.0)
	complaint := &domain.Complaint{Coordinate: geo.Coordinate{Lat: 10, Lon: 10}}

	t.Run("within one kilometre", func(t *testing.T) {
		citizen := &domain.Citizen{Coordinate: coordPtr(10.005, 10)} // ~0.56 km
		assert.True(t, gate.CanUpvote(citizen, complaint))
	})

	t.Run("beyond one kilometre", func(t *testing.T) {
		citizen := &domain.Citizen{Coordinate: coordPtr(10.02, 10)} // ~2.2 km
		assert.False(t, gate.CanUpvote(citizen, complaint))
	})

	t.Run("no granted location", func(t *testing.T) {
		assert.False(t, gate.CanUpvote(&domain.Citizen{}, complaint))
	})
}
