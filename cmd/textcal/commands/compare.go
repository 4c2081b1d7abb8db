package commands

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/textcal/textcal/internal/extract"
	"github.com/textcal/textcal/internal/pricing"
	"github.com/textcal/textcal/pkg/event"
)

// compareCases is a fixed battery spanning the complexity range the
// pipeline handles; the reference date keeps relative phrases stable
// across runs.
var compareCases = []struct {
	name  string
	input string
}{
	{"simple", "Lunch tomorrow at 1pm"},
	{"with location", "Board meeting next Tuesday 2-4pm at conference room A"},
	{"recurring", "Team standup every Monday at 9am"},
	{"all-day", "Vacation December 25th"},
	{"timezone", "Conference call 3pm EST with client"},
	{"deadline", "Rent due on the first of every month"},
	{"ambiguous", "Call mom sometime this afternoon"},
}

var compareReferenceDate = time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare extraction accuracy, latency and cost across models",
	Long: `Compare runs a fixed battery of extraction cases against each given
model and reports success rate, mean latency, estimated cost, and mean
overall confidence. Cost estimates use a static pricing table; this is an
offline tool, not part of the request path.`,
	RunE: runCompare,
}

func init() {
	compareCmd.Flags().StringSliceP("models", "M", []string{"gpt-4o-mini", "gpt-4o"}, "models to compare")

	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	models, _ := cmd.Flags().GetStringSlice("models")

	completer, err := buildCompleter()
	if err != nil {
		logError("%v", err)
		return err
	}
	service := extract.NewService(completer)

	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "MODEL\tSUCCESS\tAVG MS\tEST COST\tAVG CONFIDENCE")

	for _, model := range models {
		var (
			succeeded  int
			totalMs    int64
			totalCost  float64
			confidence float64
		)

		for _, tc := range compareCases {
			opts := event.Options{
				Timezone:    "America/New_York",
				CurrentDate: compareReferenceDate,
				Model:       model,
			}

			started := time.Now()
			ev, err := service.ExtractEventDetails(cmd.Context(), tc.input, opts)
			totalMs += time.Since(started).Milliseconds()

			inTokens := pricing.EstimateTokens(tc.input)
			totalCost += pricing.Estimate(inTokens, 200, model)

			if err != nil {
				logError("%s / %s: %v", model, tc.name, err)
				continue
			}
			succeeded++
			confidence += ev.Confidence.Overall
		}

		avgConf := 0.0
		if succeeded > 0 {
			avgConf = confidence / float64(succeeded)
		}
		fmt.Fprintf(w, "%s\t%d/%d\t%d\t$%.6f\t%.3f\n",
			model,
			succeeded, len(compareCases),
			totalMs/int64(len(compareCases)),
			totalCost,
			avgConf)
	}

	return w.Flush()
}
