package types

import (
	"log/slog"

	"github.com/google/uuid"
)

type (
	OwnerName    string
	RepoName     string
	CommitSHA    string
	BranchName   string
	AccessToken  string
	CheckRunID   int64
	CheckStatus  string
	Conclusion   string
	Overall      string
	InvocationID string
)

const (
	CheckStatusQueued     CheckStatus = "queued"
	CheckStatusInProgress CheckStatus = "in_progress"
	CheckStatusCompleted  CheckStatus = "completed"
)

const (
	ConclusionSuccess        Conclusion = "success"
	ConclusionFailure        Conclusion = "failure"
	ConclusionNeutral        Conclusion = "neutral"
	ConclusionCancelled      Conclusion = "cancelled"
	ConclusionTimedOut       Conclusion = "timed_out"
	ConclusionActionRequired Conclusion = "action_required"
	ConclusionSkipped        Conclusion = "skipped"
)

// Failed reports whether the conclusion counts against the overall summary.
// Neutral, cancelled and skipped runs do not.
func (x Conclusion) Failed() bool {
	switch x {
	case ConclusionFailure, ConclusionTimedOut, ConclusionActionRequired:
		return true
	}
	return false
}

const (
	OverallAllPassed  Overall = "all_passed"
	OverallSomeFailed Overall = "some_failed"
	OverallPending    Overall = "pending"
	OverallNoRuns     Overall = "no_runs"
)

// DeviceGrantStatus is the outcome of one poll of the device token endpoint.
type DeviceGrantStatus string

const (
	DeviceGrantPending    DeviceGrantStatus = "pending"
	DeviceGrantSlowDown   DeviceGrantStatus = "slow_down"
	DeviceGrantAuthorized DeviceGrantStatus = "authorized"
	DeviceGrantExpired    DeviceGrantStatus = "expired"
	DeviceGrantDenied     DeviceGrantStatus = "denied"
)

func NewInvocationID() InvocationID {
	return InvocationID(uuid.NewString())
}

func (x AccessToken) LogValue() slog.Value {
	return slog.StringValue("***********")
}

func (x AccessToken) String() string {
	return "***********"
}
