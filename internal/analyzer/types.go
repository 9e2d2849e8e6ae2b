// Package analyzer computes derived productivity metrics (streaks, completion
// rates, duration drift) from task and habit history.
//
// Every function here is a pure computation over caller-owned slices. Nothing
// performs I/O or keeps state between calls, so the package is safe for
// concurrent use.
package analyzer

import (
	"errors"
	"time"
)

// ErrInvalidInput reports records that violate the data contract, such as
// more completed tasks than total tasks on a day. It signals a defect in the
// query layer, not a condition callers are expected to recover from.
var ErrInvalidInput = errors.New("invalid input")

// DailyActivity records whether a day with at least one task had at least
// one completed task. Days without tasks have no record.
type DailyActivity struct {
	Day        time.Time `json:"day"`
	Productive bool      `json:"productive"`
}

// DailyStats aggregates the tasks scheduled on one day.
type DailyStats struct {
	Day            time.Time `json:"day"`
	TotalTasks     int       `json:"total_tasks"`
	CompletedTasks int       `json:"completed_tasks"`
	PlannedMinutes int       `json:"planned_minutes"`
	ActualMinutes  int       `json:"actual_minutes"`
}

// WindowSummary totals DailyStats over a trailing window.
type WindowSummary struct {
	Days           int `json:"days"`
	ProductiveDays int `json:"productive_days"`
	TotalTasks     int `json:"total_tasks"`
	CompletedTasks int `json:"completed_tasks"`
	PlannedMinutes int `json:"planned_minutes"`
	ActualMinutes  int `json:"actual_minutes"`
}

// DurationSample holds lifetime averages over completed tasks that have a
// recorded actual duration. Either field is nil when there is no data.
type DurationSample struct {
	AverageActual    *float64 `json:"average_actual,omitempty"`
	AverageEstimated *float64 `json:"average_estimated,omitempty"`
}
