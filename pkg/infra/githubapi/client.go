package githubapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/checkstat-dev/checkstat/pkg/domain/interfaces"
	"github.com/checkstat-dev/checkstat/pkg/domain/model"
	"github.com/checkstat-dev/checkstat/pkg/domain/types"
	"github.com/checkstat-dev/checkstat/pkg/utils/logging"
	"github.com/google/go-github/v53/github"
	"github.com/gregjones/httpcache"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/oauth2"
)

const (
	defaultMaxAttempts = 3
	defaultRetryWait   = time.Second
	listPageSize       = 50
)

// Client is the GitHub API client used for check-run listing, repository
// lookup and the device authorization flow. A nil credential selects the
// anonymous request path.
type Client struct {
	httpClient  *http.Client
	apiBase     *url.URL
	deviceBase  *url.URL
	clientID    string
	maxAttempts int
	retryWait   time.Duration
	clock       interfaces.Clock
}

var (
	_ interfaces.GitHubClient     = (*Client)(nil)
	_ interfaces.DeviceAuthorizer = (*Client)(nil)
)

type Option func(*Client)

// WithBaseURL overrides both the REST API and device-flow endpoints.
// Intended for tests against an httptest server.
func WithBaseURL(base string) Option {
	return func(x *Client) {
		u, err := url.Parse(strings.TrimSuffix(base, "/") + "/")
		if err != nil {
			panic(err)
		}
		x.apiBase = u
		x.deviceBase = u
	}
}

func WithClientID(id string) Option {
	return func(x *Client) {
		x.clientID = id
	}
}

func WithMaxAttempts(n int) Option {
	return func(x *Client) {
		x.maxAttempts = n
	}
}

func WithClock(clock interfaces.Clock) Option {
	return func(x *Client) {
		x.clock = clock
	}
}

func WithHTTPClient(client *http.Client) Option {
	return func(x *Client) {
		x.httpClient = client
	}
}

func New(options ...Option) *Client {
	client := &Client{
		// Conditional-request cache: repeated listings within one
		// invocation (e.g. after re-auth) hit ETags instead of bodies.
		httpClient:  httpcache.NewMemoryCacheTransport().Client(),
		maxAttempts: defaultMaxAttempts,
		retryWait:   defaultRetryWait,
		clock:       SystemClock(),
	}

	for _, opt := range options {
		opt(client)
	}

	return client
}

func (x *Client) api(ctx context.Context, cred *model.Credential) *github.Client {
	httpClient := x.httpClient
	if cred != nil {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: string(cred.Token)})
		httpClient = oauth2.NewClient(context.WithValue(ctx, oauth2.HTTPClient, x.httpClient), ts)
	}

	gh := github.NewClient(httpClient)
	if x.apiBase != nil {
		gh.BaseURL = x.apiBase
	}
	return gh
}

func (x *Client) ListCheckRuns(repo model.RepoIdentity, ref model.RefSpec, cred *model.Credential) interfaces.CheckRunIterator {
	return &checkRunPager{
		client: x,
		repo:   repo,
		ref:    ref,
		cred:   cred,
		page:   1,
	}
}

func (x *Client) LookupRepository(ctx context.Context, repo model.RepoIdentity, cred *model.Credential) error {
	gh := x.api(ctx, cred)

	_, resp, err := gh.Repositories.Get(ctx, string(repo.Owner), string(repo.Name))
	if err == nil {
		return nil
	}

	switch status := statusCode(resp); status {
	case http.StatusNotFound:
		return goerr.Wrap(types.ErrRepositoryNotFound, "repository lookup returned 404", goerr.V("repo", repo.String()))
	case http.StatusUnauthorized:
		return goerr.Wrap(types.ErrAuthExpired, "repository lookup rejected credentials")
	default:
		return goerr.Wrap(err, "repository lookup failed", goerr.V("repo", repo.String()))
	}
}

// checkRunPager fetches check-run pages on demand. Page N+1 needs the page
// number returned with page N, so fetches are strictly sequential.
type checkRunPager struct {
	client *Client
	repo   model.RepoIdentity
	ref    model.RefSpec
	cred   *model.Credential
	page   int
	done   bool
}

func (x *checkRunPager) Next(ctx context.Context) (*model.CheckRunPage, error) {
	if x.done {
		return nil, nil
	}

	page, err := x.client.fetchCheckRunPage(ctx, x.repo, x.ref, x.cred, x.page)
	if err != nil {
		x.done = true
		return nil, err
	}

	if page.NextPage == 0 {
		x.done = true
	} else {
		x.page = page.NextPage
	}

	return page, nil
}

func (x *Client) fetchCheckRunPage(ctx context.Context, repo model.RepoIdentity, ref model.RefSpec, cred *model.Credential, page int) (*model.CheckRunPage, error) {
	gh := x.api(ctx, cred)

	opts := &github.ListCheckRunsOptions{
		ListOptions: github.ListOptions{Page: page, PerPage: listPageSize},
	}

	var lastErr error
	rateLimited := false

	for attempt := 0; attempt < x.maxAttempts; attempt++ {
		result, resp, err := gh.Checks.ListCheckRunsForRef(ctx, string(repo.Owner), string(repo.Name), ref.Value, opts)
		if err == nil {
			out := &model.CheckRunPage{
				Runs:       make([]model.CheckRun, 0, len(result.CheckRuns)),
				TotalCount: result.GetTotal(),
				NextPage:   resp.NextPage,
			}
			for _, run := range result.CheckRuns {
				out.Runs = append(out.Runs, convertCheckRun(run))
			}
			return out, nil
		}

		if ctx.Err() != nil {
			return nil, goerr.Wrap(ctx.Err(), "check run listing cancelled")
		}

		status := statusCode(resp)
		switch {
		case status == http.StatusUnauthorized:
			return nil, goerr.Wrap(types.ErrAuthExpired, "check run listing rejected credentials", goerr.V("repo", repo.String()))

		case status == http.StatusNotFound:
			return nil, goerr.Wrap(types.ErrRepositoryNotFound, "no check runs endpoint for repository", goerr.V("repo", repo.String()), goerr.V("ref", ref.Value))

		case isRateLimit(err, resp):
			rateLimited = true
			lastErr = err

		case status >= 500 || resp == nil:
			// Transport failure or server error: transient, retry
			rateLimited = false
			lastErr = err

		default:
			return nil, goerr.Wrap(err, "github api rejected the request", goerr.V("status", status), goerr.V("repo", repo.String()))
		}

		if attempt+1 >= x.maxAttempts {
			break
		}

		wait := x.retryWait << attempt
		if d := retryAfter(err, resp, x.clock.Now()); d > wait {
			wait = d
		}
		logging.From(ctx).Debug("retrying check run page fetch",
			slog.Int("attempt", attempt+1),
			slog.Int("page", page),
			slog.Duration("wait", wait),
			slog.Any("error", err),
		)
		if err := x.clock.Sleep(ctx, wait); err != nil {
			return nil, goerr.Wrap(err, "retry wait cancelled")
		}
	}

	if rateLimited {
		return nil, goerr.Wrap(types.ErrRateLimited, "retry attempts exhausted while rate limited", goerr.V("attempts", x.maxAttempts), goerr.V("cause", lastErr))
	}
	return nil, goerr.Wrap(types.ErrNetworkFailure, "retry attempts exhausted", goerr.V("attempts", x.maxAttempts), goerr.V("cause", lastErr))
}

func convertCheckRun(run *github.CheckRun) model.CheckRun {
	out := model.CheckRun{
		ID:         types.CheckRunID(run.GetID()),
		Name:       run.GetName(),
		Status:     types.CheckStatus(run.GetStatus()),
		Conclusion: types.Conclusion(run.GetConclusion()),
		DetailsURL: run.GetDetailsURL(),
		HTMLURL:    run.GetHTMLURL(),
		StartedAt:  run.GetStartedAt().Time,
	}
	if run.CompletedAt != nil {
		completed := run.CompletedAt.Time
		out.CompletedAt = &completed
	}
	return out
}

func statusCode(resp *github.Response) int {
	if resp == nil {
		return 0
	}
	return resp.StatusCode
}

func isRateLimit(err error, resp *github.Response) bool {
	var rateErr *github.RateLimitError
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &rateErr) || errors.As(err, &abuseErr) {
		return true
	}

	if resp == nil {
		return false
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		return true
	}
	return resp.StatusCode == http.StatusForbidden && resp.Header.Get("Retry-After") != ""
}

// retryAfter derives a server-specified wait from the error or response.
// Zero means no preference.
func retryAfter(err error, resp *github.Response, now time.Time) time.Duration {
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) && abuseErr.RetryAfter != nil {
		return *abuseErr.RetryAfter
	}

	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		if d := rateErr.Rate.Reset.Time.Sub(now); d > 0 {
			return d
		}
	}

	if resp != nil {
		if v := resp.Header.Get("Retry-After"); v != "" {
			if sec, err := strconv.Atoi(v); err == nil && sec > 0 {
				return time.Duration(sec) * time.Second
			}
		}
	}

	return 0
}
