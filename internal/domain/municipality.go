package domain

import (
	"math"
	"time"

	"github.com/spec-kit/civic-complaints/pkg/geo"
)

const (
	// DefaultServiceRadiusKm applies when a municipality has no known area.
	DefaultServiceRadiusKm = 25.0
	// ServiceRadiusBufferKm is added on top of the radius derived from area.
	ServiceRadiusBufferKm = 10.0
)

// Municipality is a supported local government body with a reference point.
type Municipality struct {
	ID        string
	Name      string
	District  string
	State     string
	Home      geo.Coordinate
	AreaKm2   *float64
	Verified  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ServiceRadiusKm derives the maximum distance from the reference point
// within which a citizen counts as inside the municipality:
// sqrt(area/pi) + buffer when area is known, a fixed default otherwise.
func (m *Municipality) ServiceRadiusKm() float64 {
	if m.AreaKm2 == nil || *m.AreaKm2 <= 0 {
		return DefaultServiceRadiusKm
	}
	return math.Sqrt(*m.AreaKm2/math.Pi) + ServiceRadiusBufferKm
}
