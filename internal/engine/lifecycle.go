package engine

import "github.com/spec-kit/civic-complaints/internal/domain"

// allowedTransitions encodes the complaint status graph. Forward moves are
// legal, Rejected is reachable from any non-terminal state, terminal states
// have no exits, and New cannot jump straight to Resolved.
var allowedTransitions = map[domain.ComplaintStatus][]domain.ComplaintStatus{
	domain.ComplaintStatusNew: {
		domain.ComplaintStatusPending,
		domain.ComplaintStatusInProgress,
		domain.ComplaintStatusRejected,
	},
	domain.ComplaintStatusPending: {
		domain.ComplaintStatusInProgress,
		domain.ComplaintStatusResolved,
		domain.ComplaintStatusRejected,
	},
	domain.ComplaintStatusInProgress: {
		domain.ComplaintStatusResolved,
		domain.ComplaintStatusRejected,
	},
	domain.ComplaintStatusResolved: {},
	domain.ComplaintStatusRejected: {},
}

// IsValidTransition reports whether next is reachable from current.
func IsValidTransition(current, next domain.ComplaintStatus) bool {
	for _, candidate := range allowedTransitions[current] {
		if candidate == next {
			return true
		}
	}
	return false
}
