package engine

import (
	"context"
	"sort"
	"strings"

	"github.com/spec-kit/civic-complaints/internal/domain"
	"github.com/spec-kit/civic-complaints/internal/repository"
	"github.com/spec-kit/civic-complaints/pkg/geo"
)

const (
	// DuplicateRadiusKm bounds the spatial window for duplicate candidates.
	DuplicateRadiusKm = 1.0
	// TokenOverlapThreshold is the minimum Jaccard overlap between
	// descriptions for a textual match.
	TokenOverlapThreshold = 0.3
	// MaxDuplicateResults caps the advisory result set.
	MaxDuplicateResults = 5
)

// DuplicateCandidate describes a complaint about to be created.
type DuplicateCandidate struct {
	MunicipalityID string
	Department     string
	Topic          string
	Description    string
	Coordinate     geo.Coordinate
}

// DuplicateDetector finds near-duplicate complaints before insert. It is
// purely advisory: the caller decides whether to create anyway, and racing
// creations that miss each other are tolerated — ranking consolidates
// engagement on whichever copy gets upvoted.
type DuplicateDetector struct {
	complaints repository.ComplaintRepository
}

// NewDuplicateDetector constructs the detector.
func NewDuplicateDetector(complaints repository.ComplaintRepository) *DuplicateDetector {
	return &DuplicateDetector{complaints: complaints}
}

// FindSimilar returns up to MaxDuplicateResults open complaints of the same
// municipality within DuplicateRadiusKm that look topically similar,
// ordered by descending upvotes then ascending distance. An empty result
// is the common case, not a failure.
func (d *DuplicateDetector) FindSimilar(ctx context.Context, candidate DuplicateCandidate) ([]domain.Complaint, error) {
	box := geo.BoxAround(candidate.Coordinate, DuplicateRadiusKm)
	corpus, err := d.complaints.ListWithFilter(ctx, repository.ComplaintFilter{
		MunicipalityID: &candidate.MunicipalityID,
		Statuses: []domain.ComplaintStatus{
			domain.ComplaintStatusNew,
			domain.ComplaintStatusPending,
			domain.ComplaintStatusInProgress,
		},
		Box: &box,
	})
	if err != nil {
		return nil, err
	}
	return RankSimilar(candidate, corpus), nil
}

// RankSimilar applies the radius and similarity policy to an already
// fetched corpus. Exposed separately so it stays a pure, testable function.
func RankSimilar(candidate DuplicateCandidate, corpus []domain.Complaint) []domain.Complaint {
	type scored struct {
		complaint domain.Complaint
		dist      float64
	}
	matches := make([]scored, 0, len(corpus))
	for _, existing := range corpus {
		if existing.MunicipalityID != candidate.MunicipalityID {
			continue
		}
		if existing.Status.IsTerminal() {
			continue
		}
		dist := geo.DistanceKm(candidate.Coordinate, existing.Coordinate)
		if dist > DuplicateRadiusKm {
			continue
		}
		if !textuallySimilar(candidate, existing) {
			continue
		}
		matches = append(matches, scored{complaint: existing, dist: dist})
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].complaint.UpvoteCount != matches[j].complaint.UpvoteCount {
			return matches[i].complaint.UpvoteCount > matches[j].complaint.UpvoteCount
		}
		if matches[i].dist != matches[j].dist {
			return matches[i].dist < matches[j].dist
		}
		return matches[i].complaint.ID < matches[j].complaint.ID
	})

	if len(matches) > MaxDuplicateResults {
		matches = matches[:MaxDuplicateResults]
	}
	result := make([]domain.Complaint, 0, len(matches))
	for _, m := range matches {
		result = append(result, m.complaint)
	}
	return result
}

func textuallySimilar(candidate DuplicateCandidate, existing domain.Complaint) bool {
	if tokenOverlap(candidate.Description, existing.Description) >= TokenOverlapThreshold {
		return true
	}
	if candidate.Department == existing.Department && topicSubstring(candidate.Topic, existing.Topic) {
		return true
	}
	return false
}

// tokenOverlap computes the Jaccard ratio over lowercased word sets.
func tokenOverlap(a, b string) float64 {
	setA := tokenSet(a)
	setB := tokenSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}
	intersection := 0
	for token := range setA {
		if _, ok := setB[token]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	return float64(intersection) / float64(union)
}

func tokenSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, token := range strings.Fields(strings.ToLower(text)) {
		token = strings.Trim(token, ".,!?;:\"'()")
		if token != "" {
			set[token] = struct{}{}
		}
	}
	return set
}

func topicSubstring(a, b string) bool {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}
