package types

import "github.com/m-mizutani/goerr/v2"

var (
	ErrInvalidOption = goerr.New("invalid option")

	// ErrRepositoryUnresolved means no owner/repo pair could be derived from
	// the git remote configuration or command line flags.
	ErrRepositoryUnresolved = goerr.New("repository could not be resolved")

	// ErrNoCommitsYet means the local repository has an unborn HEAD.
	ErrNoCommitsYet = goerr.New("repository has no commits yet")

	// ErrAuthorizationFailed means the device authorization flow ended
	// without a usable token (expired, denied or cancelled).
	ErrAuthorizationFailed = goerr.New("authorization failed")

	// ErrAuthExpired is returned when the API rejects the stored token.
	// It is recovered by a single re-authentication, not shown to the user.
	ErrAuthExpired = goerr.New("authentication expired")

	ErrRepositoryNotFound = goerr.New("repository not found")
	ErrRateLimited        = goerr.New("rate limited by GitHub")
	ErrNetworkFailure     = goerr.New("network failure")
)
