package dto

// UpdateLocationRequest carries a citizen location grant.
type UpdateLocationRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// MunicipalityResponse represents a municipality.
type MunicipalityResponse struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	District        string   `json:"district"`
	State           string   `json:"state"`
	Latitude        float64  `json:"latitude"`
	Longitude       float64  `json:"longitude"`
	AreaKm2         *float64 `json:"area_km2,omitempty"`
	ServiceRadiusKm float64  `json:"service_radius_km"`
	Verified        bool     `json:"verified"`
}

// ResolveResponse reports the outcome of a location grant. Municipality is
// null when no supported municipality covers the coordinates.
type ResolveResponse struct {
	Municipality *MunicipalityResponse `json:"municipality"`
}

// ProfileResponse represents the authenticated citizen.
type ProfileResponse struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Email          string   `json:"email"`
	Phone          string   `json:"phone,omitempty"`
	Latitude       *float64 `json:"latitude,omitempty"`
	Longitude      *float64 `json:"longitude,omitempty"`
	MunicipalityID *string  `json:"municipality_id,omitempty"`
	IntegrityScore int      `json:"integrity_score"`
}
