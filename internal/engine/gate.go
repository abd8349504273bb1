package engine

import (
	"github.com/spec-kit/civic-complaints/internal/domain"
	"github.com/spec-kit/civic-complaints/pkg/geo"
	apperrors "github.com/spec-kit/civic-complaints/pkg/util/errorutil"
)

// UpvoteRadiusKm is the fixed proximity requirement for upvoting.
const UpvoteRadiusKm = 1.0

// ProximityGate authorizes location-sensitive actions. Distances are always
// recomputed here from server-held coordinates; client-side "within range"
// claims are treated as UI hints only.
type ProximityGate struct {
	upvoteRadiusKm float64
}

// NewProximityGate builds a gate with the given upvote radius; non-positive
// values fall back to the default.
func NewProximityGate(upvoteRadiusKm float64) *ProximityGate {
	if upvoteRadiusKm <= 0 {
		upvoteRadiusKm = UpvoteRadiusKm
	}
	return &ProximityGate{upvoteRadiusKm: upvoteRadiusKm}
}

// CanUpvote reports whether the citizen is close enough to the complaint
// to upvote it. A citizen without a granted location can never upvote.
func (g *ProximityGate) CanUpvote(citizen *domain.Citizen, complaint *domain.Complaint) bool {
	if citizen == nil || complaint == nil || citizen.Coordinate == nil {
		return false
	}
	return geo.DistanceKm(*citizen.Coordinate, complaint.Coordinate) <= g.upvoteRadiusKm
}

// CheckCreate authorizes complaint creation against the municipality's
// service radius and the citizen's integrity score. Integrity is checked
// first: a blocked citizen is blocked regardless of distance.
func (g *ProximityGate) CheckCreate(citizen *domain.Citizen, municipality *domain.Municipality) error {
	if citizen.IntegrityScore < domain.IntegrityThreshold {
		return apperrors.NewIntegrityBlocked(citizen.IntegrityScore, domain.IntegrityThreshold)
	}
	if citizen.Coordinate == nil {
		return apperrors.NewValidationError("citizen location not granted", nil)
	}
	radius := municipality.ServiceRadiusKm()
	dist := geo.DistanceKm(*citizen.Coordinate, municipality.Home)
	if dist > radius {
		return apperrors.NewOutOfRange(dist, radius)
	}
	return nil
}
