package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/civic-complaints/internal/domain"
)

func TestIsValidTransition(t *testing.T) {
	allowed := []struct {
		from, to domain.ComplaintStatus
	}{
		{domain.ComplaintStatusNew, domain.ComplaintStatusPending},
		{domain.ComplaintStatusNew, domain.ComplaintStatusInProgress},
		{domain.ComplaintStatusNew, domain.ComplaintStatusRejected},
		{domain.ComplaintStatusPending, domain.ComplaintStatusInProgress},
		{domain.ComplaintStatusPending, domain.ComplaintStatusResolved},
		{domain.ComplaintStatusPending, domain.ComplaintStatusRejected},
		{domain.ComplaintStatusInProgress, domain.ComplaintStatusResolved},
		{domain.ComplaintStatusInProgress, domain.ComplaintStatusRejected},
	}
	for _, tc := range allowed {
		assert.True(t, IsValidTransition(tc.from, tc.to), "%s -> %s should be allowed", tc.from, tc.to)
	}

	denied := []struct {
		from, to domain.ComplaintStatus
	}{
		{domain.ComplaintStatusNew, domain.ComplaintStatusResolved},
		{domain.ComplaintStatusNew, domain.ComplaintStatusNew},
		{domain.ComplaintStatusPending, domain.ComplaintStatusNew},
		{domain.ComplaintStatusInProgress, domain.ComplaintStatusPending},
		{domain.ComplaintStatusResolved, domain.ComplaintStatusPending},
		{domain.ComplaintStatusResolved, domain.ComplaintStatusInProgress},
		{domain.ComplaintStatusRejected, domain.ComplaintStatusNew},
		{domain.ComplaintStatusRejected, domain.ComplaintStatusResolved},
	}
	for _, tc := range denied {
		assert.False(t, IsValidTransition(tc.from, tc.to), "%s -> %s should be denied", tc.from, tc.to)
	}
}

func TestTerminalStatesHaveNoExits(t *testing.T) {
	all := []domain.ComplaintStatus{
		domain.ComplaintStatusNew,
		domain.ComplaintStatusPending,
		domain.ComplaintStatusInProgress,
		domain.ComplaintStatusResolved,
		domain.ComplaintStatusRejected,
	}
	for _, terminal := range []domain.ComplaintStatus{domain.ComplaintStatusResolved, domain.ComplaintStatusRejected} {
		for _, next := range all {
			assert.False(t, IsValidTransition(terminal, next))
		}
	}
}
