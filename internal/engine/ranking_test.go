package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/civic-complaints/internal/domain"
)

func TestScore(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	t.Run("fresh complaint scores its raw upvotes", func(t *testing.T) {
		assert.InDelta(t, 10.0, Score(10, now, now), 1e-9)
	})

	t.Run("one day of age halves the score", func(t *testing.T) {
		assert.InDelta(t, 5.0, Score(10, now.Add(-24*time.Hour), now), 1e-9)
	})

	t.Run("strictly decays with age", func(t *testing.T) {
		younger := Score(10, now.Add(-1*time.Hour), now)
		older := Score(10, now.Add(-48*time.Hour), now)
		assert.Greater(t, younger, older)
	})

	t.Run("monotone in upvotes", func(t *testing.T) {
		created := now.Add(-6 * time.Hour)
		assert.Greater(t, Score(11, created, now), Score(10, created, now))
	})

	t.Run("future timestamps are clamped", func(t *testing.T) {
		assert.InDelta(t, 10.0, Score(10, now.Add(time.Hour), now), 1e-9)
	})

	t.Run("zero upvotes score zero regardless of age", func(t *testing.T) {
		assert.Zero(t, Score(0, now.Add(-100*time.Hour), now))
	})
}

func TestBuckets(t *testing.T) {
	t.Run("priority stays in the unit interval", func(t *testing.T) {
		assert.Zero(t, PriorityOf(0))
		assert.Less(t, PriorityOf(1000), 1.0)
	})

	t.Run("thresholds map to buckets", func(t *testing.T) {
		assert.Equal(t, PriorityNormal, BucketOf(0))
		assert.Equal(t, PriorityNormal, BucketOf(0.4))
		assert.Equal(t, PriorityMedium, BucketOf(0.41))
		assert.Equal(t, PriorityMedium, BucketOf(0.7))
		assert.Equal(t, PriorityHigh, BucketOf(0.71))
	})
}

func TestRank(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	engine := NewRankingEngine(func() time.Time { return now })

	complaint := func(id string, upvotes int, age time.Duration) domain.Complaint {
		return domain.Complaint{ID: id, UpvoteCount: upvotes, CreatedAt: now.Add(-age)}
	}

	t.Run("orders by score descending", func(t *testing.T) {
		page := engine.Rank([]domain.Complaint{
			complaint("old-hot", 20, 72*time.Hour), // 20/4 = 5
			complaint("new-warm", 8, 0),            // 8
			complaint("cold", 1, 24*time.Hour),     // 0.5
		}, 1, 10)
		require.Len(t, page.Items, 3)
		assert.Equal(t, "new-warm", page.Items[0].Complaint.ID)
		assert.Equal(t, "old-hot", page.Items[1].Complaint.ID)
		assert.Equal(t, "cold", page.Items[2].Complaint.ID)
	})

	t.Run("equal scores favor the newer complaint", func(t *testing.T) {
		page := engine.Rank([]domain.Complaint{
			complaint("older", 5, 2*time.Hour),
			complaint("newer", 5, 1*time.Hour),
		}, 1, 10)
		require.Len(t, page.Items, 2)
		assert.Equal(t, "newer", page.Items[0].Complaint.ID)
	})

	t.Run("full ties break on ascending id", func(t *testing.T) {
		page := engine.Rank([]domain.Complaint{
			complaint("b", 5, time.Hour),
			complaint("a", 5, time.Hour),
		}, 1, 10)
		require.Len(t, page.Items, 2)
		assert.Equal(t, "a", page.Items[0].Complaint.ID)
	})

	t.Run("deterministic across repeated calls", func(t *testing.T) {
		corpus := []domain.Complaint{
			complaint("a", 3, time.Hour),
			complaint("b", 7, 10*time.Hour),
			complaint("c", 7, 10*time.Hour),
		}
		first := engine.Rank(corpus, 1, 10)
		second := engine.Rank(corpus, 1, 10)
		require.Equal(t, len(first.Items), len(second.Items))
		for i := range first.Items {
			assert.Equal(t, first.Items[i].Complaint.ID, second.Items[i].Complaint.ID)
		}
	})

	t.Run("pagination reports the full total", func(t *testing.T) {
		corpus := make([]domain.Complaint, 0, 20)
		for i := 0; i < 20; i++ {
			corpus = append(corpus, complaint(string(rune('a'+i)), i, time.Hour))
		}
		page := engine.Rank(corpus, 2, DefaultFeedPageSize)
		assert.Equal(t, 20, page.Total)
		assert.Equal(t, 2, page.Page)
		assert.Len(t, page.Items, DefaultFeedPageSize)
	})

	t.Run("page beyond the end is empty but keeps the total", func(t *testing.T) {
		page := engine.Rank([]domain.Complaint{complaint("a", 1, 0)}, 5, DefaultFeedPageSize)
		assert.Empty(t, page.Items)
		assert.Equal(t, 1, page.Total)
	})
}
