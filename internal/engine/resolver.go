package engine

import (
	"context"
	"sort"

	"github.com/spec-kit/civic-complaints/internal/domain"
	"github.com/spec-kit/civic-complaints/internal/repository"
	"github.com/spec-kit/civic-complaints/pkg/geo"
)

// CandidateSearchRadiusKm bounds the bounding-box pre-filter for
// municipality candidates. Anything farther can never pass a service
// radius check (max area-derived radius stays well below this).
const CandidateSearchRadiusKm = 200.0

// MunicipalityResolver assigns a citizen's home municipality from raw
// coordinates. It is the sole writer of the citizen/municipality
// relationship and is safe to re-invoke on every location grant.
type MunicipalityResolver struct {
	municipalities repository.MunicipalityRepository
	citizens       repository.CitizenRepository
}

// NewMunicipalityResolver constructs the resolver.
func NewMunicipalityResolver(municipalities repository.MunicipalityRepository, citizens repository.CitizenRepository) *MunicipalityResolver {
	return &MunicipalityResolver{municipalities: municipalities, citizens: citizens}
}

// Nearest picks the closest candidate to point, breaking distance ties by
// lowest municipality id. It returns nil when the minimum distance exceeds
// the winning candidate's service radius — a valid empty result, not an
// error.
func Nearest(point geo.Coordinate, candidates []domain.Municipality) *domain.Municipality {
	var (
		best     *domain.Municipality
		bestDist float64
	)
	for i := range candidates {
		dist := geo.DistanceKm(point, candidates[i].Home)
		if best == nil || dist < bestDist || (dist == bestDist && candidates[i].ID < best.ID) {
			best = &candidates[i]
			bestDist = dist
		}
	}
	if best == nil || bestDist > best.ServiceRadiusKm() {
		return nil
	}
	return best
}

// Resolve assigns the citizen to the nearest municipality whose service
// radius covers point, persisting the assignment and the new coordinate.
// When no municipality covers the point, the coordinate is still recorded
// and the assignment is cleared.
func (r *MunicipalityResolver) Resolve(ctx context.Context, citizenID string, point geo.Coordinate) (*domain.Municipality, error) {
	box := geo.BoxAround(point, CandidateSearchRadiusKm)
	candidates, err := r.municipalities.ListWithinBox(ctx, box, 0)
	if err != nil {
		return nil, err
	}

	match := Nearest(point, candidates)
	var municipalityID *string
	if match != nil {
		municipalityID = &match.ID
	}
	if err := r.citizens.UpdateAssignment(ctx, citizenID, municipalityID, point); err != nil {
		return nil, err
	}
	return match, nil
}

// NearbyMunicipalities returns up to count municipalities within radiusKm
// of point, closest first. The candidate scan is bounded by a bounding box
// before any distance computation.
func (r *MunicipalityResolver) NearbyMunicipalities(ctx context.Context, point geo.Coordinate, count int, radiusKm float64) ([]domain.Municipality, error) {
	if radiusKm <= 0 || radiusKm > CandidateSearchRadiusKm {
		radiusKm = CandidateSearchRadiusKm
	}
	if count <= 0 {
		count = 5
	}
	candidates, err := r.municipalities.ListWithinBox(ctx, geo.BoxAround(point, radiusKm), 0)
	if err != nil {
		return nil, err
	}

	type withDist struct {
		m    domain.Municipality
		dist float64
	}
	nearby := make([]withDist, 0, len(candidates))
	for _, m := range candidates {
		if dist := geo.DistanceKm(point, m.Home); dist <= radiusKm {
			nearby = append(nearby, withDist{m: m, dist: dist})
		}
	}
	sort.Slice(nearby, func(i, j int) bool {
		if nearby[i].dist == nearby[j].dist {
			return nearby[i].m.ID < nearby[j].m.ID
		}
		return nearby[i].dist < nearby[j].dist
	})
	if len(nearby) > count {
		nearby = nearby[:count]
	}
	result := make([]domain.Municipality, 0, len(nearby))
	for _, entry := range nearby {
		result = append(result, entry.m)
	}
	return result, nil
}
