package domain

import "time"

// Official is a municipality employee allowed to move complaints of their
// municipality through the status lifecycle. Officials authenticate by
// phone and a short-lived OTP.
type Official struct {
	ID             string
	Name           string
	Phone          string
	Designation    string
	MunicipalityID string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
