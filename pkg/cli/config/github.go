package config

import (
	"log/slog"

	"github.com/checkstat-dev/checkstat/pkg/usecase"
	"github.com/urfave/cli/v3"
)

// GitHub holds the repository target overrides. Empty values are resolved
// from the local git repository.
type GitHub struct {
	owner string
	repo  string
	ref   string
	dir   string
}

func (x *GitHub) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "owner",
			Usage:       "GitHub repository owner (auto-detect from git remote if not specified)",
			Category:    "Repository",
			Sources:     cli.EnvVars("CHECKSTAT_OWNER"),
			Destination: &x.owner,
		},
		&cli.StringFlag{
			Name:        "repo",
			Usage:       "GitHub repository name (auto-detect from git remote if not specified)",
			Category:    "Repository",
			Sources:     cli.EnvVars("CHECKSTAT_REPO"),
			Destination: &x.repo,
		},
		&cli.StringFlag{
			Name:        "ref",
			Usage:       "Commit SHA or branch name to query (default: current HEAD)",
			Category:    "Repository",
			Sources:     cli.EnvVars("CHECKSTAT_REF"),
			Destination: &x.ref,
		},
		&cli.StringFlag{
			Name:        "dir",
			Aliases:     []string{"C"},
			Usage:       "Path to the git working copy",
			Category:    "Repository",
			Value:       ".",
			Destination: &x.dir,
		},
	}
}

func (x *GitHub) Target() usecase.Target {
	return usecase.Target{
		Owner: x.owner,
		Repo:  x.repo,
		Ref:   x.ref,
	}
}

func (x *GitHub) Dir() string {
	return x.dir
}

func (x GitHub) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("owner", x.owner),
		slog.String("repo", x.repo),
		slog.String("ref", x.ref),
		slog.String("dir", x.dir),
	)
}
