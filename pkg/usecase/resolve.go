package usecase

import (
	"context"

	"github.com/checkstat-dev/checkstat/pkg/domain/model"
	"github.com/checkstat-dev/checkstat/pkg/domain/types"
	"github.com/checkstat-dev/checkstat/pkg/infra/gitlocal"
	"github.com/m-mizutani/goerr/v2"
)

// Target carries the raw command line overrides. Empty fields are resolved
// from the local git repository.
type Target struct {
	Owner string
	Repo  string
	Ref   string
}

// ResolveRepository derives the owner/repo identity. Explicit overrides
// always win over anything parsed from the origin remote; when both are
// given no git state is touched at all.
func (x *UseCase) ResolveRepository(ctx context.Context, target Target) (model.RepoIdentity, error) {
	if target.Owner != "" && target.Repo != "" {
		id := model.RepoIdentity{
			Owner: types.OwnerName(target.Owner),
			Name:  types.RepoName(target.Repo),
		}
		if err := id.Validate(); err != nil {
			return model.RepoIdentity{}, err
		}
		return id, nil
	}

	urls, err := x.clients.GitSource().RemoteURLs(ctx, "origin")
	if err != nil {
		return model.RepoIdentity{}, err
	}
	if len(urls) == 0 {
		return model.RepoIdentity{}, goerr.Wrap(types.ErrRepositoryUnresolved, "origin remote has no URL")
	}

	var id model.RepoIdentity
	var parseErr error
	for _, u := range urls {
		parsed, err := gitlocal.ParseRemoteURL(u)
		if err == nil {
			id = parsed
			parseErr = nil
			break
		}
		parseErr = err
	}
	if parseErr != nil {
		return model.RepoIdentity{}, parseErr
	}

	if target.Owner != "" {
		id.Owner = types.OwnerName(target.Owner)
	}
	if target.Repo != "" {
		id.Name = types.RepoName(target.Repo)
	}
	if err := id.Validate(); err != nil {
		return model.RepoIdentity{}, err
	}

	return id, nil
}

// ResolveRef determines what to query: an explicit --ref value, or the SHA
// of the current HEAD.
func (x *UseCase) ResolveRef(ctx context.Context, target Target) (model.RefSpec, error) {
	if target.Ref != "" {
		ref := model.NewRefSpec(target.Ref)
		if err := ref.Validate(); err != nil {
			return model.RefSpec{}, err
		}
		return ref, nil
	}

	return x.clients.GitSource().Head(ctx)
}
