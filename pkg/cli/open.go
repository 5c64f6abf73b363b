package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/checkstat-dev/checkstat/pkg/cli/config"
	"github.com/checkstat-dev/checkstat/pkg/domain/model"
	"github.com/checkstat-dev/checkstat/pkg/usecase"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gots/slice"
	"github.com/urfave/cli/v3"
)

func openCommand() *cli.Command {
	var (
		ghCfg   config.GitHub
		authCfg config.Auth
		query   string
	)

	return &cli.Command{
		Name:  "open",
		Usage: "Open a check run in the browser",
		Flags: slice.Flatten([]cli.Flag{
			&cli.StringFlag{
				Name:        "run",
				Aliases:     []string{"r"},
				Usage:       "Name (or unique substring) of the check run to open",
				Destination: &query,
			},
		}, ghCfg.Flags(), authCfg.Flags()),
		Action: func(ctx context.Context, c *cli.Command) error {
			uc, clients, err := newUseCase(&authCfg, &ghCfg)
			if err != nil {
				return err
			}

			report, err := uc.FetchStatus(ctx, ghCfg.Target())
			if err != nil {
				return err
			}
			runs := report.Summary.Runs

			run, err := usecase.MatchRun(runs, query)
			if err != nil {
				if query != "" || len(runs) < 2 {
					return err
				}
				run, err = promptRun(os.Stderr, os.Stdin, runs)
				if err != nil {
					return err
				}
			}

			url := run.Link()
			if url == "" {
				return goerr.New("check run has no URL to open", goerr.V("name", run.Name))
			}

			// Failure to launch is the whole outcome here, so it is fatal
			return clients.Browser().Open(url)
		},
	}
}

func promptRun(w io.Writer, r io.Reader, runs []model.CheckRun) (*model.CheckRun, error) {
	for i, run := range runs {
		fmt.Fprintf(w, "%3d: %s\n", i+1, run.Name)
	}
	fmt.Fprintf(w, "Select a run [1-%d]: ", len(runs))

	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		return nil, goerr.New("no run selected")
	}

	n, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil || n < 1 || n > len(runs) {
		return nil, goerr.New("invalid selection", goerr.V("input", scanner.Text()))
	}

	return &runs[n-1], nil
}
