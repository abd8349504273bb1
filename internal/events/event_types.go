package events

import (
	"time"

	"github.com/spec-kit/civic-complaints/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventComplaintCreated       EventType = "complaint_created"
	EventComplaintStatusChanged EventType = "complaint_status_changed"
	EventComplaintUpvoted       EventType = "complaint_upvoted"
	EventMunicipalityAssigned   EventType = "municipality_assigned"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	Type       domain.SubjectType `json:"type"`
	CitizenID  *string            `json:"citizen_id,omitempty"`
	OfficialID *string            `json:"official_id,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID          string      `json:"id"`
	Type        EventType   `json:"type"`
	ComplaintID string      `json:"complaint_id,omitempty"`
	Actor       Actor       `json:"actor"`
	Timestamp   time.Time   `json:"timestamp"`
	Payload     interface{} `json:"payload"`
}

// ComplaintCreatedPayload payload.
type ComplaintCreatedPayload struct {
	MunicipalityID string `json:"municipality_id"`
	Department     string `json:"department"`
	Topic          string `json:"topic"`
	SimilarCount   int    `json:"similar_count"`
	Forced         bool   `json:"forced"`
}

// ComplaintStatusChangedPayload payload.
type ComplaintStatusChangedPayload struct {
	OldStatus domain.ComplaintStatus `json:"old_status"`
	NewStatus domain.ComplaintStatus `json:"new_status"`
	Comment   string                 `json:"comment,omitempty"`
}

// ComplaintUpvotedPayload payload.
type ComplaintUpvotedPayload struct {
	UpvoteCount int `json:"upvote_count"`
}

// MunicipalityAssignedPayload payload.
type MunicipalityAssignedPayload struct {
	MunicipalityID *string `json:"municipality_id"`
}
