package usecase

import (
	"strings"

	"github.com/checkstat-dev/checkstat/pkg/domain/model"
	"github.com/checkstat-dev/checkstat/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// MatchRun picks the check run to open. With a query, the match must be a
// unique case-insensitive substring of a run name. Without one, a sole run
// is selected implicitly; ambiguity is left for the caller to resolve
// interactively.
func MatchRun(runs []model.CheckRun, query string) (*model.CheckRun, error) {
	if len(runs) == 0 {
		return nil, goerr.New("no check runs to open")
	}

	if query == "" {
		if len(runs) == 1 {
			return &runs[0], nil
		}
		return nil, goerr.Wrap(types.ErrInvalidOption, "multiple check runs found, specify one with --run")
	}

	q := strings.ToLower(query)
	var found *model.CheckRun
	for i := range runs {
		if strings.Contains(strings.ToLower(runs[i].Name), q) {
			if found != nil {
				return nil, goerr.Wrap(types.ErrInvalidOption, "query matches multiple check runs", goerr.V("query", query))
			}
			found = &runs[i]
		}
	}
	if found == nil {
		return nil, goerr.Wrap(types.ErrInvalidOption, "no check run matches query", goerr.V("query", query))
	}

	return found, nil
}
