package cli

import (
	"context"
	"os"

	"github.com/checkstat-dev/checkstat/pkg/cli/config"
	"github.com/m-mizutani/gots/slice"
	"github.com/urfave/cli/v3"
)

func statusCommand() *cli.Command {
	var (
		ghCfg   config.GitHub
		authCfg config.Auth
	)

	return &cli.Command{
		Name:    "status",
		Aliases: []string{"st"},
		Usage:   "Show check run status for the current commit",
		Flags:   slice.Flatten(ghCfg.Flags(), authCfg.Flags()),
		Action: func(ctx context.Context, c *cli.Command) error {
			uc, _, err := newUseCase(&authCfg, &ghCfg)
			if err != nil {
				return err
			}

			report, err := uc.FetchStatus(ctx, ghCfg.Target())
			if err != nil {
				return err
			}

			renderReport(os.Stdout, report)
			return nil
		},
	}
}
