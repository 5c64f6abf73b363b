package model

import (
	"time"

	"github.com/checkstat-dev/checkstat/pkg/domain/types"
)

// CheckRun is an immutable snapshot of a single CI job result, fetched fresh
// per invocation.
type CheckRun struct {
	ID          types.CheckRunID
	Name        string
	Status      types.CheckStatus
	Conclusion  types.Conclusion
	DetailsURL  string
	HTMLURL     string
	StartedAt   time.Time
	CompletedAt *time.Time
}

// Link returns the URL to show the run to a human. GitHub's web view is
// preferred over the (often external) details URL.
func (x CheckRun) Link() string {
	if x.HTMLURL != "" {
		return x.HTMLURL
	}
	return x.DetailsURL
}

// CheckRunPage is one page of the check-run listing. Transient; folded into
// a StatusSummary and discarded.
type CheckRunPage struct {
	Runs       []CheckRun
	TotalCount int
	NextPage   int
}

// StatusSummary is the aggregated, deduplicated view of all pages for one
// ref, in API (creation) order.
type StatusSummary struct {
	Runs    []CheckRun
	Overall types.Overall
}
