package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/checkstat-dev/checkstat/pkg/domain/model"
	"github.com/checkstat-dev/checkstat/pkg/domain/types"
	"github.com/checkstat-dev/checkstat/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// StatusReport is the aggregated result of one status query, with the
// resolved inputs kept for rendering.
type StatusReport struct {
	Repo    model.RepoIdentity
	Ref     model.RefSpec
	Branch  types.BranchName
	Summary *model.StatusSummary
}

// FetchStatus runs the whole pipeline: resolve repository and ref, load the
// stored credential, list and aggregate check runs. The anonymous path is
// tried first when no credential is stored; a rejected or missing credential
// leads to exactly one device-flow authentication and one retry of the
// listing.
func (x *UseCase) FetchStatus(ctx context.Context, target Target) (*StatusReport, error) {
	repo, err := x.ResolveRepository(ctx, target)
	if err != nil {
		return nil, err
	}

	ref, err := x.ResolveRef(ctx, target)
	if err != nil {
		return nil, err
	}

	logging.From(ctx).Debug("resolved target",
		slog.String("repo", repo.String()),
		slog.String("ref", ref.Value),
		slog.String("kind", string(ref.Kind)),
	)

	cred, err := x.loadCredential(ctx)
	if err != nil {
		return nil, err
	}

	summary, err := x.listCheckRuns(ctx, repo, ref, cred)

	if err != nil && errors.Is(err, types.ErrAuthExpired) {
		logging.From(ctx).Info("stored credential was rejected, re-authenticating")
		cred, err = x.authenticate(ctx)
		if err != nil {
			return nil, err
		}
		summary, err = x.listCheckRuns(ctx, repo, ref, cred)
	}

	if err != nil && errors.Is(err, types.ErrRepositoryNotFound) && cred == nil {
		// Anonymously, "not found" and "private, no access" look the same.
		// Authenticate and try again before giving up.
		logging.From(ctx).Info("repository is not visible anonymously, authentication required",
			slog.String("repo", repo.String()),
		)
		cred, err = x.authenticate(ctx)
		if err != nil {
			return nil, err
		}
		summary, err = x.listCheckRuns(ctx, repo, ref, cred)
	}

	if err != nil {
		if errors.Is(err, types.ErrRepositoryNotFound) && cred != nil {
			// The repository lookup endpoint tells a bad ref apart from a
			// genuinely missing repository.
			if lookupErr := x.clients.GitHub().LookupRepository(ctx, repo, cred); lookupErr == nil {
				return nil, goerr.Wrap(types.ErrRepositoryNotFound, "repository exists but the ref was not found",
					goerr.V("repo", repo.String()), goerr.V("ref", ref.Value))
			}
		}
		return nil, err
	}

	report := &StatusReport{
		Repo:    repo,
		Ref:     ref,
		Summary: summary,
	}

	// Branch name is display sugar only; ignore failures (e.g. when the
	// target was fully specified by flags outside a repository).
	if branch, err := x.clients.GitSource().HeadBranch(ctx); err == nil {
		report.Branch = branch
	}

	return report, nil
}

func (x *UseCase) listCheckRuns(ctx context.Context, repo model.RepoIdentity, ref model.RefSpec, cred *model.Credential) (*model.StatusSummary, error) {
	pages := x.clients.GitHub().ListCheckRuns(repo, ref, cred)
	return Aggregate(ctx, pages)
}

// loadCredential returns the stored credential, or nil when none is usable.
// A locally-expired token is treated as absent; the device flow will be
// driven on demand.
func (x *UseCase) loadCredential(ctx context.Context) (*model.Credential, error) {
	store := x.clients.CredentialStore()
	if store == nil {
		return nil, nil
	}

	cred, err := store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if cred == nil {
		return nil, nil
	}

	if cred.Expired(logging.CtxTime(ctx)) {
		logging.From(ctx).Debug("stored credential is expired, ignoring it")
		return nil, nil
	}

	return cred, nil
}
