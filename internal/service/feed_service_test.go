package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/civic-complaints/internal/domain"
	"github.com/spec-kit/civic-complaints/internal/engine"
	"github.com/spec-kit/civic-complaints/internal/repository"
	"github.com/spec-kit/civic-complaints/pkg/geo"
)

func TestFeed(t *testing.T) {
	ctx := context.Background()
	complaints := repository.NewInMemoryComplaintRepository()
	now := time.Now()
	feed := NewFeedService(complaints, engine.NewRankingEngine(func() time.Time { return now }))

	seed := func(municipalityID string, upvotes int, age time.Duration) *domain.Complaint {
		c := &domain.Complaint{
			CitizenID:      "citizen",
			MunicipalityID: municipalityID,
			Department:     "Roads",
			Topic:          "Pothole",
			Description:    "pothole",
			Coordinate:     geo.Coordinate{Lat: 10, Lon: 10},
			Status:         domain.ComplaintStatusNew,
			UpvoteCount:    upvotes,
			CreatedAt:      now.Add(-age),
		}
		require.NoError(t, complaints.Create(ctx, c))
		return c
	}

	hot := seed("m1", 30, time.Hour)
	warm := seed("m1", 10, 2*time.Hour)
	cold := seed("m1", 1, 48*time.Hour)
	other := seed("m2", 50, time.Hour)

	t.Run("unfiltered feed ranks across municipalities", func(t *testing.T) {
		page, err := feed.Feed(ctx, nil, 1, 10)
		require.NoError(t, err)
		require.Len(t, page.Items, 4)
		assert.Equal(t, other.ID, page.Items[0].Complaint.ID)
		assert.Equal(t, hot.ID, page.Items[1].Complaint.ID)
	})

	t.Run("municipality filter restricts the corpus and the total", func(t *testing.T) {
		m1 := "m1"
		page, err := feed.Feed(ctx, &m1, 1, 2)
		require.NoError(t, err)
		assert.Equal(t, 3, page.Total)
		require.Len(t, page.Items, 2)
		assert.Equal(t, hot.ID, page.Items[0].Complaint.ID)
		assert.Equal(t, warm.ID, page.Items[1].Complaint.ID)

		second, err := feed.Feed(ctx, &m1, 2, 2)
		require.NoError(t, err)
		require.Len(t, second.Items, 1)
		assert.Equal(t, cold.ID, second.Items[0].Complaint.ID)
	})

	t.Run("feed entries carry priority buckets", func(t *testing.T) {
		page, err := feed.Feed(ctx, nil, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, engine.PriorityHigh, page.Items[0].Bucket)
	})
}
