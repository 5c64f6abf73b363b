package infra

import (
	"github.com/checkstat-dev/checkstat/pkg/domain/interfaces"
	"github.com/checkstat-dev/checkstat/pkg/infra/githubapi"
	"github.com/checkstat-dev/checkstat/pkg/infra/gitlocal"
	"github.com/checkstat-dev/checkstat/pkg/infra/webbrowser"
)

type Clients struct {
	github     interfaces.GitHubClient
	deviceAuth interfaces.DeviceAuthorizer
	gitSource  interfaces.GitSource
	credStore  interfaces.CredentialStore
	browser    interfaces.Browser
	clock      interfaces.Clock
}

type Option func(*Clients)

func New(options ...Option) *Clients {
	client := &Clients{
		gitSource: gitlocal.New("."),
		browser:   webbrowser.New(),
		clock:     githubapi.SystemClock(),
	}

	for _, opt := range options {
		opt(client)
	}

	if client.github == nil || client.deviceAuth == nil {
		api := githubapi.New(githubapi.WithClock(client.clock))
		if client.github == nil {
			client.github = api
		}
		if client.deviceAuth == nil {
			client.deviceAuth = api
		}
	}

	return client
}

func (x *Clients) GitHub() interfaces.GitHubClient {
	return x.github
}
func (x *Clients) DeviceAuth() interfaces.DeviceAuthorizer {
	return x.deviceAuth
}
func (x *Clients) GitSource() interfaces.GitSource {
	return x.gitSource
}
func (x *Clients) CredentialStore() interfaces.CredentialStore {
	return x.credStore
}
func (x *Clients) Browser() interfaces.Browser {
	return x.browser
}
func (x *Clients) Clock() interfaces.Clock {
	return x.clock
}

func WithGitHub(client interfaces.GitHubClient) Option {
	return func(x *Clients) {
		x.github = client
	}
}

func WithDeviceAuth(client interfaces.DeviceAuthorizer) Option {
	return func(x *Clients) {
		x.deviceAuth = client
	}
}

func WithGitSource(source interfaces.GitSource) Option {
	return func(x *Clients) {
		x.gitSource = source
	}
}

func WithCredentialStore(store interfaces.CredentialStore) Option {
	return func(x *Clients) {
		x.credStore = store
	}
}

func WithBrowser(browser interfaces.Browser) Option {
	return func(x *Clients) {
		x.browser = browser
	}
}

func WithClock(clock interfaces.Clock) Option {
	return func(x *Clients) {
		x.clock = clock
	}
}
