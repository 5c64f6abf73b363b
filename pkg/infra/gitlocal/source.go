package gitlocal

import (
	"context"
	"errors"

	"github.com/checkstat-dev/checkstat/pkg/domain/interfaces"
	"github.com/checkstat-dev/checkstat/pkg/domain/model"
	"github.com/checkstat-dev/checkstat/pkg/domain/types"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/m-mizutani/goerr/v2"
)

// Source reads remote and HEAD state from a local git repository.
type Source struct {
	dir string
}

var _ interfaces.GitSource = (*Source)(nil)

func New(dir string) *Source {
	if dir == "" {
		dir = "."
	}
	return &Source{dir: dir}
}

func (x *Source) open() (*git.Repository, error) {
	repo, err := git.PlainOpenWithOptions(x.dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, goerr.Wrap(types.ErrRepositoryUnresolved, "failed to open git repository", goerr.V("dir", x.dir), goerr.V("cause", err))
	}
	return repo, nil
}

func (x *Source) RemoteURLs(_ context.Context, name string) ([]string, error) {
	repo, err := x.open()
	if err != nil {
		return nil, err
	}

	remote, err := repo.Remote(name)
	if err != nil {
		return nil, goerr.Wrap(types.ErrRepositoryUnresolved, "remote is not configured", goerr.V("remote", name))
	}

	return remote.Config().URLs, nil
}

func (x *Source) Head(_ context.Context) (model.RefSpec, error) {
	repo, err := x.open()
	if err != nil {
		return model.RefSpec{}, err
	}

	head, err := repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return model.RefSpec{}, goerr.Wrap(types.ErrNoCommitsYet, "HEAD has no commit")
		}
		return model.RefSpec{}, goerr.Wrap(err, "failed to resolve HEAD")
	}

	return model.RefSpec{Value: head.Hash().String(), Kind: model.RefKindSHA}, nil
}

// HeadBranch returns the short branch name of HEAD, or "" when detached.
// Used for display only.
func (x *Source) HeadBranch(_ context.Context) (types.BranchName, error) {
	repo, err := x.open()
	if err != nil {
		return "", err
	}

	head, err := repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return "", goerr.Wrap(types.ErrNoCommitsYet, "HEAD has no commit")
		}
		return "", goerr.Wrap(err, "failed to resolve HEAD")
	}

	if !head.Name().IsBranch() {
		return "", nil
	}
	return types.BranchName(head.Name().Short()), nil
}
