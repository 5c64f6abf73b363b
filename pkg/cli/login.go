package cli

import (
	"context"
	"fmt"

	"github.com/checkstat-dev/checkstat/pkg/cli/config"
	"github.com/urfave/cli/v3"
)

func loginCommand() *cli.Command {
	var (
		ghCfg   config.GitHub
		authCfg config.Auth
	)

	return &cli.Command{
		Name:  "login",
		Usage: "Authorize against GitHub via the device flow",
		Flags: authCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			uc, _, err := newUseCase(&authCfg, &ghCfg)
			if err != nil {
				return err
			}

			if _, err := uc.Login(ctx); err != nil {
				return err
			}

			fmt.Println("Successfully logged in!")
			return nil
		},
	}
}

func logoutCommand() *cli.Command {
	var (
		ghCfg   config.GitHub
		authCfg config.Auth
	)

	return &cli.Command{
		Name:  "logout",
		Usage: "Remove the stored GitHub credential",
		Flags: authCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			uc, _, err := newUseCase(&authCfg, &ghCfg)
			if err != nil {
				return err
			}

			if err := uc.Logout(ctx); err != nil {
				return err
			}

			fmt.Println("Logged out")
			return nil
		},
	}
}
