package domain

import "time"

// Comment is a citizen remark attached to a complaint.
type Comment struct {
	ID          string
	ComplaintID string
	CitizenID   string
	Content     string
	CreatedAt   time.Time
}
