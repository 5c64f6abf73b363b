package githubapi_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/checkstat-dev/checkstat/pkg/domain/model"
	"github.com/checkstat-dev/checkstat/pkg/domain/types"
	"github.com/checkstat-dev/checkstat/pkg/infra/githubapi"
	"github.com/checkstat-dev/checkstat/pkg/utils/testutil"
	"github.com/m-mizutani/gt"
)

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

var testRepo = model.RepoIdentity{Owner: "secmon-lab", Name: "checkstat"}

func testRef() model.RefSpec {
	return model.RefSpec{Value: "f7c8851da7c7fcc46212fccfb6c9c4bda520f1ca", Kind: model.RefKindSHA}
}

func newTestClient(srv *httptest.Server, clock *fakeClock) *githubapi.Client {
	return githubapi.New(
		githubapi.WithBaseURL(srv.URL),
		githubapi.WithHTTPClient(srv.Client()),
		githubapi.WithClock(clock),
	)
}

func drain(t *testing.T, client *githubapi.Client, cred *model.Credential) ([]model.CheckRun, error) {
	t.Helper()

	it := client.ListCheckRuns(testRepo, testRef(), cred)
	var runs []model.CheckRun
	for {
		page, err := it.Next(context.Background())
		if err != nil {
			return nil, err
		}
		if page == nil {
			return runs, nil
		}
		runs = append(runs, page.Runs...)
	}
}

func TestListCheckRunsPagination(t *testing.T) {
	var requests int
	mux := http.NewServeMux()

	var srv *httptest.Server
	mux.HandleFunc("/repos/secmon-lab/checkstat/commits/f7c8851da7c7fcc46212fccfb6c9c4bda520f1ca/check-runs", func(w http.ResponseWriter, r *http.Request) {
		requests++
		page := r.URL.Query().Get("page")

		w.Header().Set("Content-Type", "application/json")
		switch page {
		case "", "1":
			w.Header().Set("Link", fmt.Sprintf(`<%s%s?page=2>; rel="next"`, srv.URL, r.URL.Path))
			fmt.Fprint(w, `{"total_count":5,"check_runs":[
				{"id":1,"name":"build","status":"completed","conclusion":"success","html_url":"https://github.com/r/1"},
				{"id":2,"name":"lint","status":"completed","conclusion":"success","html_url":"https://github.com/r/2"}
			]}`)
		case "2":
			w.Header().Set("Link", fmt.Sprintf(`<%s%s?page=3>; rel="next"`, srv.URL, r.URL.Path))
			fmt.Fprint(w, `{"total_count":5,"check_runs":[
				{"id":3,"name":"unit","status":"completed","conclusion":"success","html_url":"https://github.com/r/3"},
				{"id":4,"name":"e2e","status":"in_progress","html_url":"https://github.com/r/4"}
			]}`)
		case "3":
			fmt.Fprint(w, `{"total_count":5,"check_runs":[
				{"id":5,"name":"deploy","status":"queued","html_url":"https://github.com/r/5"}
			]}`)
		default:
			t.Errorf("unexpected page parameter: %q", page)
			w.WriteHeader(http.StatusBadRequest)
		}
	})

	srv = httptest.NewServer(mux)
	defer srv.Close()

	client := newTestClient(srv, newFakeClock())

	runs := gt.R1(drain(t, client, nil)).NoError(t)
	gt.V(t, len(runs)).Equal(5)
	gt.V(t, requests).Equal(3)

	gt.V(t, runs[0].Name).Equal("build")
	gt.V(t, runs[0].Status).Equal(types.CheckStatusCompleted)
	gt.V(t, runs[0].Conclusion).Equal(types.ConclusionSuccess)
	gt.V(t, runs[3].Status).Equal(types.CheckStatusInProgress)
	gt.V(t, runs[4].Name).Equal("deploy")
	gt.V(t, runs[4].HTMLURL).Equal("https://github.com/r/5")
}

func TestListCheckRunsAuthHeader(t *testing.T) {
	var authHeader string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"total_count":0,"check_runs":[]}`)
	}))
	defer srv.Close()

	client := newTestClient(srv, newFakeClock())

	cred := &model.Credential{Token: "gho_secret", TokenType: "bearer"}
	gt.R1(drain(t, client, cred)).NoError(t)
	gt.V(t, authHeader).Equal("Bearer gho_secret")
}

func TestListCheckRunsServerErrorRetries(t *testing.T) {
	var requests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	clock := newFakeClock()
	client := newTestClient(srv, clock)

	_, err := drain(t, client, nil)
	gt.Error(t, err)
	gt.V(t, errors.Is(err, types.ErrNetworkFailure)).Equal(true)
	gt.V(t, requests).Equal(3)

	// Doubling backoff between the three attempts
	gt.V(t, clock.sleeps).Equal([]time.Duration{time.Second, 2 * time.Second})
}

func TestListCheckRunsNotFoundDoesNotRetry(t *testing.T) {
	var requests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message":"Not Found"}`)
	}))
	defer srv.Close()

	client := newTestClient(srv, newFakeClock())

	_, err := drain(t, client, nil)
	gt.Error(t, err)
	gt.V(t, errors.Is(err, types.ErrRepositoryNotFound)).Equal(true)
	gt.V(t, requests).Equal(1)
}

func TestListCheckRunsUnauthorizedDoesNotRetry(t *testing.T) {
	var requests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"message":"Bad credentials"}`)
	}))
	defer srv.Close()

	client := newTestClient(srv, newFakeClock())

	_, err := drain(t, client, &model.Credential{Token: "gho_stale"})
	gt.Error(t, err)
	gt.V(t, errors.Is(err, types.ErrAuthExpired)).Equal(true)
	gt.V(t, requests).Equal(1)
}

func TestListCheckRunsRateLimitHonorsRetryAfter(t *testing.T) {
	var requests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Header().Set("Retry-After", "7")
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"message":"You have exceeded a secondary rate limit"}`)
	}))
	defer srv.Close()

	clock := newFakeClock()
	client := newTestClient(srv, clock)

	_, err := drain(t, client, nil)
	gt.Error(t, err)
	gt.V(t, errors.Is(err, types.ErrRateLimited)).Equal(true)
	gt.V(t, requests).Equal(3)

	// Retry-After beats the backoff schedule
	gt.V(t, clock.sleeps).Equal([]time.Duration{7 * time.Second, 7 * time.Second})
}

// TestListCheckRunsLive queries the real API for a public repository. Set
// e.g. TEST_CHECKSTAT_OWNER=golang TEST_CHECKSTAT_REPO=go TEST_CHECKSTAT_REF=master
// to enable it.
func TestListCheckRunsLive(t *testing.T) {
	owner := testutil.GetEnvOrSkip(t, "TEST_CHECKSTAT_OWNER")
	repoName := testutil.GetEnvOrSkip(t, "TEST_CHECKSTAT_REPO")
	refValue := testutil.GetEnvOrSkip(t, "TEST_CHECKSTAT_REF")

	repo := model.RepoIdentity{Owner: types.OwnerName(owner), Name: types.RepoName(repoName)}
	gt.NoError(t, repo.Validate())
	ref := model.NewRefSpec(refValue)
	gt.NoError(t, ref.Validate())

	client := githubapi.New()
	it := client.ListCheckRuns(repo, ref, nil)

	page, err := it.Next(context.Background())
	gt.NoError(t, err)
	gt.V(t, page != nil).Equal(true)
}

func TestLookupRepository(t *testing.T) {
	t.Run("visible repository", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/repos/secmon-lab/checkstat", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"id":1,"full_name":"secmon-lab/checkstat"}`)
		})
		srv := httptest.NewServer(mux)
		defer srv.Close()

		client := newTestClient(srv, newFakeClock())
		gt.NoError(t, client.LookupRepository(context.Background(), testRepo, nil))
	})

	t.Run("missing repository", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"message":"Not Found"}`)
		}))
		defer srv.Close()

		client := newTestClient(srv, newFakeClock())
		err := client.LookupRepository(context.Background(), testRepo, &model.Credential{Token: "gho_token"})
		gt.Error(t, err)
		gt.V(t, errors.Is(err, types.ErrRepositoryNotFound)).Equal(true)
	})
}
