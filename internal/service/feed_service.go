package service

import (
	"context"

	"github.com/spec-kit/civic-complaints/internal/engine"
	"github.com/spec-kit/civic-complaints/internal/repository"
)

// FeedService produces the paginated trending feed. The corpus read is
// bounded by the repository scan limit and the ranking itself is stateless;
// every request recomputes scores against the current counters.
type FeedService struct {
	complaints repository.ComplaintRepository
	ranking    *engine.RankingEngine
}

// NewFeedService constructs the service.
func NewFeedService(complaints repository.ComplaintRepository, ranking *engine.RankingEngine) *FeedService {
	return &FeedService{complaints: complaints, ranking: ranking}
}

// Feed returns one page of the ranked feed, optionally filtered by
// municipality. Total reflects the whole filtered set within the scan
// limit so callers can compute "has more" locally.
func (s *FeedService) Feed(ctx context.Context, municipalityID *string, page, pageSize int) (engine.RankedPage, error) {
	complaints, err := s.complaints.ListWithFilter(ctx, repository.ComplaintFilter{
		MunicipalityID: municipalityID,
		Limit:          repository.FeedScanLimit,
	})
	if err != nil {
		return engine.RankedPage{}, err
	}
	return s.ranking.Rank(complaints, page, pageSize), nil
}
