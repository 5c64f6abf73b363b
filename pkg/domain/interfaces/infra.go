package interfaces

import (
	"context"
	"time"

	"github.com/checkstat-dev/checkstat/pkg/domain/model"
	"github.com/checkstat-dev/checkstat/pkg/domain/types"
)

// GitHubClient talks to the GitHub REST API. A nil credential means the
// anonymous request path.
type GitHubClient interface {
	// ListCheckRuns returns a lazy, per-call iterator over check-run pages
	// for the given ref. Page fetches happen on Next.
	ListCheckRuns(repo model.RepoIdentity, ref model.RefSpec, cred *model.Credential) CheckRunIterator

	// LookupRepository reports whether the repository is visible with the
	// given credential. Returns types.ErrRepositoryNotFound when it is not.
	LookupRepository(ctx context.Context, repo model.RepoIdentity, cred *model.Credential) error
}

// CheckRunIterator yields pages until exhausted, then returns (nil, nil).
// Not replayable; abandon it by simply not calling Next again.
type CheckRunIterator interface {
	Next(ctx context.Context) (*model.CheckRunPage, error)
}

// DeviceAuthorizer wraps GitHub's OAuth device flow endpoints.
type DeviceAuthorizer interface {
	RequestCode(ctx context.Context, scopes []string) (*model.DeviceCode, error)

	// PollToken performs a single poll of the token endpoint. The status
	// tells the caller how to proceed; the credential is non-nil only on
	// DeviceGrantAuthorized.
	PollToken(ctx context.Context, code *model.DeviceCode) (*model.Credential, types.DeviceGrantStatus, error)
}

// GitSource reads local repository state: remote URLs and HEAD.
type GitSource interface {
	RemoteURLs(ctx context.Context, name string) ([]string, error)
	Head(ctx context.Context) (model.RefSpec, error)

	// HeadBranch returns the branch HEAD points at, or "" when detached.
	HeadBranch(ctx context.Context) (types.BranchName, error)
}

// CredentialStore persists the credential as an atomic unit. Load returns
// (nil, nil) when no credential is stored.
type CredentialStore interface {
	Load(ctx context.Context) (*model.Credential, error)
	Save(ctx context.Context, cred *model.Credential) error
	Clear(ctx context.Context) error
}

// Browser opens a URL in the user's default browser.
type Browser interface {
	Open(url string) error
}

// Clock abstracts wall-clock time and cancellable sleeps so the device-flow
// poller and retry backoff can be tested without real waits.
type Clock interface {
	Now() time.Time
	Sleep(ctx context.Context, d time.Duration) error
}
