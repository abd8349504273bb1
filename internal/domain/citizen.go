package domain

import (
	"time"

	"github.com/spec-kit/civic-complaints/pkg/geo"
)

// IntegrityThreshold is the minimum integrity score required to submit
// complaints. Scores below it block creation until moderation lifts them.
const IntegrityThreshold = 30

// CitizenStatus represents lifecycle states for a citizen account.
type CitizenStatus string

const (
	CitizenStatusActive    CitizenStatus = "ACTIVE"
	CitizenStatusSuspended CitizenStatus = "SUSPENDED"
)

// Citizen is the domain model for residents who submit and upvote complaints.
type Citizen struct {
	ID             string
	Name           string
	Email          string
	PasswordHash   string
	Phone          string
	Status         CitizenStatus
	Coordinate     *geo.Coordinate
	MunicipalityID *string
	IntegrityScore int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
