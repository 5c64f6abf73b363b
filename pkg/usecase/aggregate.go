package usecase

import (
	"context"

	"github.com/checkstat-dev/checkstat/pkg/domain/interfaces"
	"github.com/checkstat-dev/checkstat/pkg/domain/model"
	"github.com/checkstat-dev/checkstat/pkg/domain/types"
)

// Aggregate consumes the page iterator to completion and folds it into one
// summary. Runs are deduplicated by ID with last write winning while the
// first-seen position is kept, so the API's creation order is preserved.
func Aggregate(ctx context.Context, pages interfaces.CheckRunIterator) (*model.StatusSummary, error) {
	var runs []model.CheckRun
	index := map[types.CheckRunID]int{}

	for {
		page, err := pages.Next(ctx)
		if err != nil {
			return nil, err
		}
		if page == nil {
			break
		}

		for _, run := range page.Runs {
			if pos, ok := index[run.ID]; ok {
				runs[pos] = run
				continue
			}
			index[run.ID] = len(runs)
			runs = append(runs, run)
		}
	}

	return &model.StatusSummary{
		Runs:    runs,
		Overall: overallOf(runs),
	}, nil
}

func overallOf(runs []model.CheckRun) types.Overall {
	if len(runs) == 0 {
		return types.OverallNoRuns
	}

	var failed bool
	for _, run := range runs {
		if run.Status != types.CheckStatusCompleted {
			// Pending takes precedence over any completed failure
			return types.OverallPending
		}
		if run.Conclusion.Failed() {
			failed = true
		}
	}

	if failed {
		return types.OverallSomeFailed
	}
	return types.OverallAllPassed
}
