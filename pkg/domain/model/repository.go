package model

import (
	"fmt"
	"regexp"

	"github.com/checkstat-dev/checkstat/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// RepoIdentity identifies a GitHub repository as owner/name. Immutable once
// resolved; all downstream components read it by value.
type RepoIdentity struct {
	Owner types.OwnerName
	Name  types.RepoName
}

var slugPattern = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)

func (x RepoIdentity) Validate() error {
	if x.Owner == "" {
		return goerr.Wrap(types.ErrRepositoryUnresolved, "owner is empty")
	}
	if x.Name == "" {
		return goerr.Wrap(types.ErrRepositoryUnresolved, "repository name is empty")
	}
	if !slugPattern.MatchString(string(x.Owner)) {
		return goerr.Wrap(types.ErrRepositoryUnresolved, "invalid owner name", goerr.V("owner", x.Owner))
	}
	if !slugPattern.MatchString(string(x.Name)) {
		return goerr.Wrap(types.ErrRepositoryUnresolved, "invalid repository name", goerr.V("repo", x.Name))
	}
	return nil
}

func (x RepoIdentity) String() string {
	return fmt.Sprintf("%s/%s", x.Owner, x.Name)
}
