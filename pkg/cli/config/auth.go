package config

import (
	"log/slog"

	"github.com/checkstat-dev/checkstat/pkg/infra/credstore"
	"github.com/urfave/cli/v3"
)

// defaultClientID is the OAuth app the device flow authorizes against.
const defaultClientID = "Iv1.6759afe4a207433f"

type Auth struct {
	clientID       string
	credentialFile string
}

func (x *Auth) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "client-id",
			Usage:       "OAuth app client ID for the device authorization flow",
			Category:    "Auth",
			Value:       defaultClientID,
			Sources:     cli.EnvVars("CHECKSTAT_CLIENT_ID"),
			Destination: &x.clientID,
		},
		&cli.StringFlag{
			Name:        "credential-file",
			Usage:       "Path to the credential file (default: <user config dir>/checkstat/github.toml)",
			Category:    "Auth",
			Sources:     cli.EnvVars("CHECKSTAT_CREDENTIAL_FILE"),
			Destination: &x.credentialFile,
		},
	}
}

func (x *Auth) ClientID() string {
	return x.clientID
}

func (x *Auth) Store() (*credstore.Store, error) {
	path := x.credentialFile
	if path == "" {
		defaultPath, err := credstore.DefaultPath()
		if err != nil {
			return nil, err
		}
		path = defaultPath
	}
	return credstore.New(path), nil
}

func (x Auth) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("client_id", x.clientID),
		slog.String("credential_file", x.credentialFile),
	)
}
