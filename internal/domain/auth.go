package domain

// SubjectType differentiates citizen vs official tokens.
type SubjectType string

const (
	SubjectTypeCitizen  SubjectType = "CITIZEN"
	SubjectTypeOfficial SubjectType = "OFFICIAL"
)
