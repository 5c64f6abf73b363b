package model_test

import (
	"testing"
	"time"

	"github.com/checkstat-dev/checkstat/pkg/domain/model"
	"github.com/checkstat-dev/checkstat/pkg/domain/types"
	"github.com/m-mizutani/gt"
)

func TestRepoIdentityValidate(t *testing.T) {
	t.Run("valid identity passes validation", func(t *testing.T) {
		id := model.RepoIdentity{Owner: "secmon-lab", Name: "checkstat"}
		gt.NoError(t, id.Validate())
	})

	t.Run("dots underscores and dashes are allowed", func(t *testing.T) {
		id := model.RepoIdentity{Owner: "my.org-name", Name: "repo_one"}
		gt.NoError(t, id.Validate())
	})

	t.Run("missing owner fails validation", func(t *testing.T) {
		id := model.RepoIdentity{Name: "checkstat"}
		gt.Error(t, id.Validate())
	})

	t.Run("missing name fails validation", func(t *testing.T) {
		id := model.RepoIdentity{Owner: "secmon-lab"}
		gt.Error(t, id.Validate())
	})

	t.Run("owner with slash fails validation", func(t *testing.T) {
		id := model.RepoIdentity{Owner: "a/b", Name: "checkstat"}
		gt.Error(t, id.Validate())
	})

	t.Run("name with space fails validation", func(t *testing.T) {
		id := model.RepoIdentity{Owner: "secmon-lab", Name: "check stat"}
		gt.Error(t, id.Validate())
	})
}

func TestNewRefSpec(t *testing.T) {
	t.Run("full commit hash is a SHA", func(t *testing.T) {
		ref := model.NewRefSpec("f7c8851da7c7fcc46212fccfb6c9c4bda520f1ca")
		gt.V(t, ref.Kind).Equal(model.RefKindSHA)
	})

	t.Run("abbreviated hash is a SHA", func(t *testing.T) {
		ref := model.NewRefSpec("f7c8851")
		gt.V(t, ref.Kind).Equal(model.RefKindSHA)
	})

	t.Run("branch name is a branch", func(t *testing.T) {
		ref := model.NewRefSpec("feature/device-flow")
		gt.V(t, ref.Kind).Equal(model.RefKindBranch)
	})

	t.Run("main is a branch", func(t *testing.T) {
		ref := model.NewRefSpec("main")
		gt.V(t, ref.Kind).Equal(model.RefKindBranch)
	})

	t.Run("empty ref fails validation", func(t *testing.T) {
		ref := model.RefSpec{}
		gt.Error(t, ref.Validate())
	})
}

func TestCredential(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("empty token fails validation", func(t *testing.T) {
		cred := &model.Credential{}
		gt.Error(t, cred.Validate())
	})

	t.Run("token without expiry never expires", func(t *testing.T) {
		cred := &model.Credential{Token: "gho_dummy"}
		gt.V(t, cred.Expired(now)).Equal(false)
	})

	t.Run("future expiry is not expired", func(t *testing.T) {
		expires := now.Add(time.Hour)
		cred := &model.Credential{Token: "gho_dummy", ExpiresAt: &expires}
		gt.V(t, cred.Expired(now)).Equal(false)
	})

	t.Run("past expiry is expired", func(t *testing.T) {
		expires := now.Add(-time.Hour)
		cred := &model.Credential{Token: "gho_dummy", ExpiresAt: &expires}
		gt.V(t, cred.Expired(now)).Equal(true)
	})
}

func TestCheckRunLink(t *testing.T) {
	t.Run("html url wins over details url", func(t *testing.T) {
		run := model.CheckRun{HTMLURL: "https://github.com/x", DetailsURL: "https://ci.example.com/y"}
		gt.V(t, run.Link()).Equal("https://github.com/x")
	})

	t.Run("details url is the fallback", func(t *testing.T) {
		run := model.CheckRun{DetailsURL: "https://ci.example.com/y"}
		gt.V(t, run.Link()).Equal("https://ci.example.com/y")
	})
}

func TestConclusionFailed(t *testing.T) {
	gt.V(t, types.ConclusionFailure.Failed()).Equal(true)
	gt.V(t, types.ConclusionTimedOut.Failed()).Equal(true)
	gt.V(t, types.ConclusionActionRequired.Failed()).Equal(true)
	gt.V(t, types.ConclusionSuccess.Failed()).Equal(false)
	gt.V(t, types.ConclusionNeutral.Failed()).Equal(false)
	gt.V(t, types.ConclusionCancelled.Failed()).Equal(false)
	gt.V(t, types.ConclusionSkipped.Failed()).Equal(false)
}
