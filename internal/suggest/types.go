// Package suggest provides the recommendation engine and rule types.
package suggest

import "github.com/blackwell-systems/taskwatch/internal/analyzer"

// Kind classifies a recommendation for display.
type Kind string

// Recommendation kinds.
const (
	KindWarning Kind = "warning"
	KindTip     Kind = "tip"
	KindSuccess Kind = "success"
	KindInsight Kind = "insight"
)

// Fixed thresholds used by the built-in rules.
const (
	// LowCompletionRate is the rate below which planning advice is given.
	LowCompletionRate = 0.6

	// HighCompletionRate is the rate above which the user is congratulated.
	HighCompletionRate = 0.8

	// EstimateOverrunFactor is how far average actual duration may exceed the
	// average estimate before an estimation insight is produced.
	EstimateOverrunFactor = 1.5
)

// Recommendation is an advisory message shown to the user verbatim.
type Recommendation struct {
	Kind    Kind   `json:"kind"`
	Title   string `json:"title"`
	Message string `json:"message"`
	Action  string `json:"action"`
}

// Input provides all data needed by rules to generate recommendations. It is
// assembled from the store by the caller and treated as read-only.
type Input struct {
	// OverdueCount is the number of open tasks dated before today.
	OverdueCount int `json:"overdue_count"`

	// WindowStats holds per-day task counts for the trailing stats window.
	WindowStats []analyzer.DailyStats `json:"window_stats"`

	// Durations holds lifetime average actual and estimated task durations.
	Durations analyzer.DurationSample `json:"durations"`
}

// Rule is a function that examines the input and produces zero or more
// recommendations.
type Rule func(in *Input) []Recommendation
