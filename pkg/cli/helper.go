package cli

import (
	"fmt"

	"github.com/checkstat-dev/checkstat/pkg/cli/config"
	"github.com/checkstat-dev/checkstat/pkg/domain/interfaces"
	"github.com/checkstat-dev/checkstat/pkg/domain/model"
	"github.com/checkstat-dev/checkstat/pkg/infra"
	"github.com/checkstat-dev/checkstat/pkg/infra/githubapi"
	"github.com/checkstat-dev/checkstat/pkg/infra/gitlocal"
	"github.com/checkstat-dev/checkstat/pkg/usecase"
	"github.com/checkstat-dev/checkstat/pkg/utils/logging"
)

func newUseCase(auth *config.Auth, gh *config.GitHub) (*usecase.UseCase, *infra.Clients, error) {
	store, err := auth.Store()
	if err != nil {
		return nil, nil, err
	}

	api := githubapi.New(githubapi.WithClientID(auth.ClientID()))

	clients := infra.New(
		infra.WithGitHub(api),
		infra.WithDeviceAuth(api),
		infra.WithGitSource(gitlocal.New(gh.Dir())),
		infra.WithCredentialStore(store),
	)

	uc := usecase.New(clients, usecase.WithDeviceNotify(deviceNotify(clients.Browser())))

	return uc, clients, nil
}

// deviceNotify prints the user code and opens the verification page. A
// browser that fails to launch is not fatal here, the URL is on screen.
func deviceNotify(br interfaces.Browser) usecase.DeviceNotify {
	return func(code *model.DeviceCode) {
		fmt.Printf("Please enter the code %s at %s\n", code.UserCode, code.VerificationURI)
		if err := br.Open(code.VerificationURI); err != nil {
			logging.Default().Warn("failed to open browser, visit the URL manually", "error", err)
		}
	}
}
