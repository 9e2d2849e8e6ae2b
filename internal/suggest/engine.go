package suggest

import (
	"fmt"

	"github.com/blackwell-systems/taskwatch/internal/analyzer"
)

// Engine runs its rules against an Input and collects the resulting
// recommendations in rule order.
type Engine struct {
	rules []Rule
}

// NewEngine creates a new engine with the built-in rules registered in
// display order.
func NewEngine() *Engine {
	return &Engine{
		rules: []Rule{
			OverdueTasks,
			CompletionRate,
			TimeEstimation,
		},
	}
}

// Run validates the input and executes all registered rules. The output keeps
// rule order: overdue alert, then completion rate, then time estimation.
// Invalid input yields an error wrapping analyzer.ErrInvalidInput and no
// recommendations.
func (e *Engine) Run(in *Input) ([]Recommendation, error) {
	if err := Validate(in); err != nil {
		return nil, err
	}

	var all []Recommendation
	for _, rule := range e.rules {
		all = append(all, rule(in)...)
	}
	return all, nil
}

// BuildRecommendations runs the built-in rules over the given data.
func BuildRecommendations(overdueCount int, windowStats []analyzer.DailyStats, durations analyzer.DurationSample) ([]Recommendation, error) {
	return NewEngine().Run(&Input{
		OverdueCount: overdueCount,
		WindowStats:  windowStats,
		Durations:    durations,
	})
}

// Validate checks an Input against the data contract.
func Validate(in *Input) error {
	if in == nil {
		return fmt.Errorf("%w: nil input", analyzer.ErrInvalidInput)
	}
	if in.OverdueCount < 0 {
		return fmt.Errorf("%w: negative overdue count %d", analyzer.ErrInvalidInput, in.OverdueCount)
	}
	if err := analyzer.ValidateDailyStats(in.WindowStats); err != nil {
		return err
	}
	return in.Durations.Validate()
}
