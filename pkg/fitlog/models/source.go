package models

// Source tags where a metric row came from. Informational only; it
// carries no invariant.
type Source string

const (
	SourceManual      Source = "manual"
	SourceAppleHealth Source = "apple_health"
	SourceLoseIt      Source = "loseit"
	SourceAPI         Source = "api"
)
