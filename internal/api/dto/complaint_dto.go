package dto

import (
	"time"

	"github.com/spec-kit/civic-complaints/internal/domain"
)

// CreateComplaintRequest payload.
type CreateComplaintRequest struct {
	MunicipalityID string  `json:"municipality_id"`
	Department     string  `json:"department"`
	Topic          string  `json:"topic"`
	Description    string  `json:"description"`
	Location       string  `json:"location"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	ForceCreate    bool    `json:"force_create"`
}

// ComplaintResponse represents a complaint.
type ComplaintResponse struct {
	ID                 string                 `json:"id"`
	CitizenID          string                 `json:"citizen_id"`
	MunicipalityID     string                 `json:"municipality_id"`
	Department         string                 `json:"department"`
	Topic              string                 `json:"topic"`
	Description        string                 `json:"description"`
	Location           string                 `json:"location,omitempty"`
	Latitude           float64                `json:"latitude"`
	Longitude          float64                `json:"longitude"`
	Status             domain.ComplaintStatus `json:"status"`
	UpvoteCount        int                    `json:"upvote_count"`
	CreatedAt          time.Time              `json:"created_at"`
	LastStatusChangeAt time.Time              `json:"last_status_change_at"`
	// Upvoted is set only on detail reads for an authenticated citizen.
	Upvoted *bool `json:"upvoted,omitempty"`
}

// SimilarComplaintsResponse is returned when creation found candidates and
// was not forced.
type SimilarComplaintsResponse struct {
	Similar []ComplaintResponse `json:"similar"`
}

// UpvoteResponse carries the post-upvote count.
type UpvoteResponse struct {
	ComplaintID string `json:"complaint_id"`
	UpvoteCount int    `json:"upvote_count"`
}

// TransitionRequest payload for status changes.
type TransitionRequest struct {
	Status  string `json:"status"`
	Comment string `json:"comment"`
}

// CreateCommentRequest payload.
type CreateCommentRequest struct {
	Content string `json:"content"`
}

// CommentResponse represents a comment.
type CommentResponse struct {
	ID        string    `json:"id"`
	CitizenID string    `json:"citizen_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
