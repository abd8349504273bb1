package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryDispatcher(t *testing.T) {
	ctx := context.Background()

	t.Run("delivers to all subscribers of the type", func(t *testing.T) {
		d := NewInMemoryDispatcher()
		var got []string
		d.Subscribe(EventComplaintCreated, func(_ context.Context, e Event) error {
			got = append(got, "first:"+e.ComplaintID)
			return nil
		})
		d.Subscribe(EventComplaintCreated, func(_ context.Context, e Event) error {
			got = append(got, "second:"+e.ComplaintID)
			return nil
		})
		d.Subscribe(EventComplaintUpvoted, func(_ context.Context, _ Event) error {
			got = append(got, "wrong type")
			return nil
		})

		require.NoError(t, d.Publish(ctx, Event{Type: EventComplaintCreated, ComplaintID: "c1"}))
		assert.Equal(t, []string{"first:c1", "second:c1"}, got)
	})

	t.Run("a failing handler does not stop delivery", func(t *testing.T) {
		d := NewInMemoryDispatcher()
		var delivered bool
		d.Subscribe(EventComplaintUpvoted, func(_ context.Context, _ Event) error {
			return errors.New("boom")
		})
		d.Subscribe(EventComplaintUpvoted, func(_ context.Context, _ Event) error {
			delivered = true
			return nil
		})

		require.NoError(t, d.Publish(ctx, Event{Type: EventComplaintUpvoted}))
		assert.True(t, delivered)
	})

	t.Run("publishing without subscribers is a no-op", func(t *testing.T) {
		d := NewInMemoryDispatcher()
		assert.NoError(t, d.Publish(ctx, Event{Type: EventMunicipalityAssigned}))
	})
}
