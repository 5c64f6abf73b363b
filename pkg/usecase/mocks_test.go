package usecase_test

import (
	"context"
	"time"

	"github.com/checkstat-dev/checkstat/pkg/domain/interfaces"
	"github.com/checkstat-dev/checkstat/pkg/domain/model"
	"github.com/checkstat-dev/checkstat/pkg/domain/types"
)

// stubIterator replays pre-built pages, optionally failing at the end.
type stubIterator struct {
	pages []*model.CheckRunPage
	err   error
	pos   int
}

func (x *stubIterator) Next(_ context.Context) (*model.CheckRunPage, error) {
	if x.pos < len(x.pages) {
		page := x.pages[x.pos]
		x.pos++
		return page, nil
	}
	if x.err != nil {
		err := x.err
		x.err = nil
		return nil, err
	}
	return nil, nil
}

// listResult scripts one whole listing attempt.
type listResult struct {
	pages []*model.CheckRunPage
	err   error
}

type githubMock struct {
	results   []listResult
	creds     []*model.Credential
	lookupErr error
	lookups   int
}

func (x *githubMock) ListCheckRuns(_ model.RepoIdentity, _ model.RefSpec, cred *model.Credential) interfaces.CheckRunIterator {
	x.creds = append(x.creds, cred)
	if len(x.results) == 0 {
		return &stubIterator{}
	}
	result := x.results[0]
	x.results = x.results[1:]
	if result.err != nil {
		return &stubIterator{err: result.err}
	}
	return &stubIterator{pages: result.pages}
}

func (x *githubMock) LookupRepository(_ context.Context, _ model.RepoIdentity, _ *model.Credential) error {
	x.lookups++
	return x.lookupErr
}

type deviceAuthMock struct {
	code     *model.DeviceCode
	codeErr  error
	script   []types.DeviceGrantStatus
	cred     *model.Credential
	pollErr  error
	requests int
	polls    int
}

func (x *deviceAuthMock) RequestCode(_ context.Context, _ []string) (*model.DeviceCode, error) {
	x.requests++
	if x.codeErr != nil {
		return nil, x.codeErr
	}
	if x.code != nil {
		return x.code, nil
	}
	return &model.DeviceCode{
		DeviceCode:      "device-code",
		UserCode:        "ABCD-1234",
		VerificationURI: "https://github.com/login/device",
		ExpiresIn:       15 * time.Minute,
		Interval:        5 * time.Second,
	}, nil
}

func (x *deviceAuthMock) PollToken(_ context.Context, _ *model.DeviceCode) (*model.Credential, types.DeviceGrantStatus, error) {
	if x.pollErr != nil {
		return nil, "", x.pollErr
	}
	status := types.DeviceGrantAuthorized
	if x.polls < len(x.script) {
		status = x.script[x.polls]
	}
	x.polls++
	if status == types.DeviceGrantAuthorized {
		cred := x.cred
		if cred == nil {
			cred = &model.Credential{Token: "gho_fresh"}
		}
		return cred, status, nil
	}
	return nil, status, nil
}

type gitSourceMock struct {
	urls    []string
	urlsErr error
	head    model.RefSpec
	headErr error
	branch  types.BranchName
}

func (x *gitSourceMock) RemoteURLs(_ context.Context, _ string) ([]string, error) {
	return x.urls, x.urlsErr
}

func (x *gitSourceMock) Head(_ context.Context) (model.RefSpec, error) {
	return x.head, x.headErr
}

func (x *gitSourceMock) HeadBranch(_ context.Context) (types.BranchName, error) {
	return x.branch, nil
}

type storeMock struct {
	cred    *model.Credential
	loadErr error
	saves   int
	clears  int
}

func (x *storeMock) Load(_ context.Context) (*model.Credential, error) {
	return x.cred, x.loadErr
}

func (x *storeMock) Save(_ context.Context, cred *model.Credential) error {
	x.cred = cred
	x.saves++
	return nil
}

func (x *storeMock) Clear(_ context.Context) error {
	x.cred = nil
	x.clears++
	return nil
}

// fakeClock advances its notion of now on every sleep and records the
// requested durations.
type fakeClock struct {
	now    time.Time
	sleeps []time.Duration
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (x *fakeClock) Now() time.Time {
	return x.now
}

func (x *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	x.sleeps = append(x.sleeps, d)
	x.now = x.now.Add(d)
	return nil
}

type browserMock struct {
	urls []string
	err  error
}

func (x *browserMock) Open(url string) error {
	x.urls = append(x.urls, url)
	return x.err
}
