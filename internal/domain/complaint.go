package domain

import (
	"time"

	"github.com/spec-kit/civic-complaints/pkg/geo"
)

// ComplaintStatus enumerates lifecycle states for complaints. The vocabulary
// is fixed and case-sensitive; free-form strings are rejected at the boundary.
type ComplaintStatus string

const (
	ComplaintStatusNew        ComplaintStatus = "New"
	ComplaintStatusPending    ComplaintStatus = "Pending"
	ComplaintStatusInProgress ComplaintStatus = "InProgress"
	ComplaintStatusResolved   ComplaintStatus = "Resolved"
	ComplaintStatusRejected   ComplaintStatus = "Rejected"
)

// ParseComplaintStatus validates a status string against the fixed vocabulary.
func ParseComplaintStatus(s string) (ComplaintStatus, bool) {
	switch ComplaintStatus(s) {
	case ComplaintStatusNew, ComplaintStatusPending, ComplaintStatusInProgress,
		ComplaintStatusResolved, ComplaintStatusRejected:
		return ComplaintStatus(s), true
	}
	return "", false
}

// IsTerminal reports whether no further transitions are allowed.
func (s ComplaintStatus) IsTerminal() bool {
	return s == ComplaintStatusResolved || s == ComplaintStatusRejected
}

// Departments is the fixed catalogue a complaint must be filed under.
var Departments = []string{
	"Water",
	"Electricity",
	"Sanitation",
	"Roads",
	"Illegal Drainage",
	"Dumping",
	"Illegal Construction",
	"Public Toilets",
	"Garbage Collection",
	"Others",
}

// ValidDepartment reports whether the department is in the catalogue.
func ValidDepartment(dept string) bool {
	for _, d := range Departments {
		if d == dept {
			return true
		}
	}
	return false
}

// Complaint is the aggregate for citizen grievances. Complaints are never
// deleted, only moved through statuses by the lifecycle service.
type Complaint struct {
	ID                 string
	CitizenID          string
	MunicipalityID     string
	Department         string
	Topic              string
	Description        string
	Location           string
	Coordinate         geo.Coordinate
	Status             ComplaintStatus
	UpvoteCount        int
	CreatedAt          time.Time
	UpdatedAt          time.Time
	LastStatusChangeAt time.Time
}
