package engine

import (
	"sort"
	"time"

	"github.com/spec-kit/civic-complaints/internal/domain"
)

// PriorityBucket labels a ranked complaint for display.
type PriorityBucket string

const (
	PriorityHigh   PriorityBucket = "High"
	PriorityMedium PriorityBucket = "Medium"
	PriorityNormal PriorityBucket = "Normal"
)

// Bucket thresholds are fixed; there is no learning component.
const (
	highPriorityThreshold   = 0.7
	mediumPriorityThreshold = 0.4
)

// RankedEntry is a derived, never persisted view of a complaint's trending
// position.
type RankedEntry struct {
	Complaint domain.Complaint
	Score     float64
	Priority  float64
	Bucket    PriorityBucket
}

// RankedPage is one page of the ranked feed. Total covers the full filtered
// set so callers can compute "has more" without another request.
type RankedPage struct {
	Items    []RankedEntry
	Page     int
	PageSize int
	Total    int
}

// Score computes the trending score at the given instant:
// upvotes / (1 + ageHours/24). Monotone in upvotes, halves roughly every
// 24 hours per upvote-equivalent, and strictly decays with age.
func Score(upvotes int, createdAt, now time.Time) float64 {
	ageHours := now.Sub(createdAt).Hours()
	if ageHours < 0 {
		ageHours = 0
	}
	return float64(upvotes) / (1 + ageHours/24)
}

// PriorityOf normalizes a score into [0, 1) for bucket labeling.
func PriorityOf(score float64) float64 {
	if score <= 0 {
		return 0
	}
	p := score / (1 + score)
	if p > 1 {
		p = 1
	}
	return p
}

// BucketOf maps a normalized priority to its display bucket.
func BucketOf(priority float64) PriorityBucket {
	switch {
	case priority > highPriorityThreshold:
		return PriorityHigh
	case priority > mediumPriorityThreshold:
		return PriorityMedium
	default:
		return PriorityNormal
	}
}

// RankingEngine computes the reproducible trending order. It holds no state
// and no cache; every call recomputes from the corpus it is given.
type RankingEngine struct {
	now func() time.Time
}

// NewRankingEngine constructs the engine. A nil clock defaults to time.Now.
func NewRankingEngine(now func() time.Time) *RankingEngine {
	if now == nil {
		now = time.Now
	}
	return &RankingEngine{now: now}
}

// Rank scores the complaints and returns the requested page. Ordering is
// total: descending score, newer createdAt wins ties, then ascending id.
func (e *RankingEngine) Rank(complaints []domain.Complaint, page, pageSize int) RankedPage {
	now := e.now()
	entries := make([]RankedEntry, 0, len(complaints))
	for _, complaint := range complaints {
		score := Score(complaint.UpvoteCount, complaint.CreatedAt, now)
		priority := PriorityOf(score)
		entries = append(entries, RankedEntry{
			Complaint: complaint,
			Score:     score,
			Priority:  priority,
			Bucket:    BucketOf(priority),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		if !entries[i].Complaint.CreatedAt.Equal(entries[j].Complaint.CreatedAt) {
			return entries[i].Complaint.CreatedAt.After(entries[j].Complaint.CreatedAt)
		}
		return entries[i].Complaint.ID < entries[j].Complaint.ID
	})

	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = DefaultFeedPageSize
	}
	total := len(entries)
	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	return RankedPage{
		Items:    entries[start:end],
		Page:     page,
		PageSize: pageSize,
		Total:    total,
	}
}

// DefaultFeedPageSize matches the portal's 8-per-fetch feed.
const DefaultFeedPageSize = 8
