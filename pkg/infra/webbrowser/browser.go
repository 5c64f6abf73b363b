package webbrowser

import (
	"github.com/checkstat-dev/checkstat/pkg/domain/interfaces"
	"github.com/cli/browser"
	"github.com/m-mizutani/goerr/v2"
)

// Launcher opens URLs in the user's default browser.
type Launcher struct{}

var _ interfaces.Browser = (*Launcher)(nil)

func New() *Launcher {
	return &Launcher{}
}

func (x *Launcher) Open(url string) error {
	if err := browser.OpenURL(url); err != nil {
		return goerr.Wrap(err, "failed to open browser", goerr.V("url", url))
	}
	return nil
}
