package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/civic-complaints/internal/domain"
	"github.com/spec-kit/civic-complaints/internal/engine"
	"github.com/spec-kit/civic-complaints/internal/events"
	"github.com/spec-kit/civic-complaints/internal/repository"
	"github.com/spec-kit/civic-complaints/pkg/geo"
	apperrors "github.com/spec-kit/civic-complaints/pkg/util/errorutil"
)

// LocationService handles citizen location grants: each grant re-runs the
// municipality resolver and emits an assignment event when the outcome is
// recorded.
type LocationService struct {
	resolver       *engine.MunicipalityResolver
	municipalities repository.MunicipalityRepository
	dispatcher     events.Dispatcher
}

// NewLocationService constructs the service.
func NewLocationService(resolver *engine.MunicipalityResolver, municipalities repository.MunicipalityRepository, dispatcher events.Dispatcher) *LocationService {
	return &LocationService{resolver: resolver, municipalities: municipalities, dispatcher: dispatcher}
}

// Municipality fetches one municipality by id.
func (s *LocationService) Municipality(ctx context.Context, id string) (*domain.Municipality, error) {
	m, err := s.municipalities.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return m, nil
}

// UpdateLocation records the citizen's coordinate and resolves their home
// municipality. A nil municipality means no supported municipality covers
// the location — a valid outcome, not a failure.
func (s *LocationService) UpdateLocation(ctx context.Context, citizenID string, point geo.Coordinate) (*domain.Municipality, error) {
	match, err := s.resolver.Resolve(ctx, citizenID, point)
	if err != nil {
		return nil, err
	}
	if s.dispatcher != nil {
		var municipalityID *string
		if match != nil {
			municipalityID = &match.ID
		}
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventMunicipalityAssigned,
			Actor:     citizenActor(citizenID),
			Timestamp: time.Now(),
			Payload:   events.MunicipalityAssignedPayload{MunicipalityID: municipalityID},
		})
	}
	return match, nil
}

// Nearby lists municipalities around the citizen's point, closest first.
func (s *LocationService) Nearby(ctx context.Context, point geo.Coordinate, count int, radiusKm float64) ([]domain.Municipality, error) {
	return s.resolver.NearbyMunicipalities(ctx, point, count, radiusKm)
}
