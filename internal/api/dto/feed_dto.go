package dto

// RankedEntryResponse is one feed row with its derived trending signals.
type RankedEntryResponse struct {
	Complaint ComplaintResponse `json:"complaint"`
	Score     float64           `json:"score"`
	Priority  float64           `json:"priority"`
	Bucket    string            `json:"bucket"`
}

// FeedResponse is one page of the ranked feed. Total covers the full
// filtered set so clients can compute "has more" without another call.
type FeedResponse struct {
	Page    int                   `json:"page"`
	Count   int                   `json:"count"`
	Total   int                   `json:"total"`
	Results []RankedEntryResponse `json:"results"`
}
