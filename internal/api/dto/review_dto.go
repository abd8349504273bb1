package dto

import "time"

// CreateReviewRequest payload.
type CreateReviewRequest struct {
	ComplaintID string `json:"complaint_id"`
	Rating      int    `json:"rating"`
	Feedback    string `json:"feedback"`
}

// ReviewResponse represents a review.
type ReviewResponse struct {
	ID          string    `json:"id"`
	ComplaintID string    `json:"complaint_id"`
	Rating      int       `json:"rating"`
	Feedback    string    `json:"feedback"`
	CreatedAt   time.Time `json:"created_at"`
}

// ComplaintWithReviewResponse pairs a complaint with its review status.
type ComplaintWithReviewResponse struct {
	Complaint ComplaintResponse `json:"complaint"`
	Reviewed  bool              `json:"reviewed"`
}
