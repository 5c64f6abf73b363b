package gitlocal

import (
	"net/url"
	"strings"

	"github.com/checkstat-dev/checkstat/pkg/domain/model"
	"github.com/checkstat-dev/checkstat/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

const gitHubHost = "github.com"

// ParseRemoteURL extracts owner/repo from a GitHub remote URL. Both
// canonical shapes are supported:
//
//	git@github.com:OWNER/REPO.git
//	https://github.com/OWNER/REPO[.git]
//
// plus the ssh:// spelling go-git may report. Non-github.com hosts are
// rejected with ErrRepositoryUnresolved.
func ParseRemoteURL(raw string) (model.RepoIdentity, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return model.RepoIdentity{}, goerr.Wrap(types.ErrRepositoryUnresolved, "remote URL is empty")
	}

	var host, path string

	switch {
	case strings.HasPrefix(raw, "git@"):
		// scp-like syntax: git@host:owner/repo.git
		rest := strings.TrimPrefix(raw, "git@")
		idx := strings.Index(rest, ":")
		if idx < 0 {
			return model.RepoIdentity{}, goerr.Wrap(types.ErrRepositoryUnresolved, "malformed SSH remote URL", goerr.V("url", raw))
		}
		host = rest[:idx]
		path = rest[idx+1:]

	default:
		u, err := url.Parse(raw)
		if err != nil {
			return model.RepoIdentity{}, goerr.Wrap(types.ErrRepositoryUnresolved, "malformed remote URL", goerr.V("url", raw))
		}
		switch u.Scheme {
		case "https", "http", "ssh":
			host = u.Hostname()
			path = strings.TrimPrefix(u.Path, "/")
		default:
			return model.RepoIdentity{}, goerr.Wrap(types.ErrRepositoryUnresolved, "unsupported remote URL scheme", goerr.V("url", raw))
		}
	}

	if host != gitHubHost {
		return model.RepoIdentity{}, goerr.Wrap(types.ErrRepositoryUnresolved, "remote host is not github.com", goerr.V("host", host))
	}

	path = strings.TrimSuffix(strings.TrimSuffix(path, "/"), ".git")
	segments := strings.Split(path, "/")
	if len(segments) != 2 || segments[0] == "" || segments[1] == "" {
		return model.RepoIdentity{}, goerr.Wrap(types.ErrRepositoryUnresolved, "remote URL path is not owner/repo", goerr.V("url", raw))
	}

	id := model.RepoIdentity{
		Owner: types.OwnerName(segments[0]),
		Name:  types.RepoName(segments[1]),
	}
	if err := id.Validate(); err != nil {
		return model.RepoIdentity{}, err
	}

	return id, nil
}
