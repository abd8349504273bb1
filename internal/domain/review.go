package domain

import "time"

// Review is citizen feedback on a resolved complaint. At most one review
// exists per (complaint, citizen) pair and only the creator may review.
type Review struct {
	ID          string
	ComplaintID string
	CitizenID   string
	Rating      int
	Feedback    string
	CreatedAt   time.Time
}
