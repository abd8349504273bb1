package domain

import "time"

// EngagementVote records a citizen's upvote on a complaint. Existence
// implies "already upvoted"; at most one per (complaint, citizen) pair and
// insertion is the only mutation — there is no un-vote.
type EngagementVote struct {
	ComplaintID string
	CitizenID   string
	CreatedAt   time.Time
}
