package cli

import (
	"fmt"
	"io"

	"github.com/checkstat-dev/checkstat/pkg/domain/model"
	"github.com/checkstat-dev/checkstat/pkg/domain/types"
	"github.com/checkstat-dev/checkstat/pkg/usecase"
	"github.com/fatih/color"
)

var conclusionGlyphs = map[types.Conclusion]string{
	types.ConclusionSuccess:        "🟢",
	types.ConclusionFailure:        "🔴",
	types.ConclusionNeutral:        "⚪",
	types.ConclusionCancelled:      "❌",
	types.ConclusionTimedOut:       "⌛",
	types.ConclusionActionRequired: "🔧",
	types.ConclusionSkipped:        "⏭️",
}

func glyphFor(run model.CheckRun) string {
	if run.Status != types.CheckStatusCompleted {
		return "🟡"
	}
	if glyph, ok := conclusionGlyphs[run.Conclusion]; ok {
		return glyph
	}
	return string(run.Conclusion)
}

func renderReport(w io.Writer, report *usecase.StatusReport) {
	title := report.Ref.Value
	if report.Branch != "" {
		title = string(report.Branch)
	}

	runs := report.Summary.Runs
	fmt.Fprintf(w, "Found %d runs for %s\n\n", len(runs), title)

	width := 0
	for _, run := range runs {
		if len(run.Name) > width {
			width = len(run.Name)
		}
	}

	bold := color.New(color.Bold)
	for _, run := range runs {
		fmt.Fprintf(w, "%s   %s\n", bold.Sprintf("%-*s", width, run.Name), glyphFor(run))
	}

	if len(runs) > 0 {
		fmt.Fprintln(w)
	}

	switch report.Summary.Overall {
	case types.OverallAllPassed:
		color.New(color.FgGreen).Fprintln(w, "All checks passed")
	case types.OverallSomeFailed:
		color.New(color.FgRed).Fprintln(w, "Some checks failed")
	case types.OverallPending:
		color.New(color.FgYellow).Fprintln(w, "Checks are still running")
	case types.OverallNoRuns:
		fmt.Fprintln(w, "No check runs found")
	}
}
