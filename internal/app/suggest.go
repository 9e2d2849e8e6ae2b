package app

import (
	"fmt"

	"github.com/blackwell-systems/taskwatch/internal/output"
	"github.com/blackwell-systems/taskwatch/internal/suggest"
	"github.com/spf13/cobra"
)

var suggestJSON bool

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Show productivity recommendations",
	Long: `Look at overdue tasks, the completion rate over the stats window, and
average actual versus estimated task durations, and print at most one
recommendation for each, always in that order.`,
	Args: cobra.NoArgs,
	RunE: runSuggest,
}

func init() {
	suggestCmd.Flags().BoolVar(&suggestJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(suggestCmd)
}

func runSuggest(cmd *cobra.Command, args []string) error {
	r, e, _, err := loadReport(cmd.Context(), 0)
	if err != nil {
		return err
	}
	defer func() { _ = e.Close() }()

	if suggestJSON || flagJSON {
		recs := r.Recommendations
		if recs == nil {
			recs = []suggest.Recommendation{}
		}
		return outputJSON(recs)
	}

	renderRecommendations(r.Recommendations)
	return nil
}

func renderRecommendations(recs []suggest.Recommendation) {
	fmt.Println(output.Section("Recommendations"))
	fmt.Println()

	if len(recs) == 0 {
		fmt.Println(" Nothing to suggest right now. Keep going!")
		return
	}

	for _, r := range recs {
		fmt.Printf(" %s %s\n", styleKind(r.Kind), output.StyleBold.Render(r.Title))
		fmt.Printf("    %s\n", r.Message)
		fmt.Printf("    %s %s\n", output.StyleMuted.Render("→"), r.Action)
		fmt.Println()
	}
}

func kindLabel(k suggest.Kind) string {
	switch k {
	case suggest.KindWarning:
		return "[WARNING]"
	case suggest.KindTip:
		return "[TIP]"
	case suggest.KindSuccess:
		return "[SUCCESS]"
	case suggest.KindInsight:
		return "[INSIGHT]"
	default:
		return "[NOTE]"
	}
}

func styleKind(k suggest.Kind) string {
	label := kindLabel(k)
	switch k {
	case suggest.KindWarning:
		return output.StyleError.Render(label)
	case suggest.KindTip:
		return output.StyleWarning.Render(label)
	case suggest.KindSuccess:
		return output.StyleSuccess.Render(label)
	case suggest.KindInsight:
		return output.StyleInsight.Render(label)
	default:
		return output.StyleMuted.Render(label)
	}
}
