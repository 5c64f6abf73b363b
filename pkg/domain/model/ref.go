package model

import (
	"regexp"

	"github.com/checkstat-dev/checkstat/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

type RefKind string

const (
	RefKindSHA    RefKind = "sha"
	RefKindBranch RefKind = "branch"
)

// RefSpec identifies what to query check runs for: a commit SHA or a branch
// name. Passed by value, never mutated.
type RefSpec struct {
	Value string
	Kind  RefKind
}

var shaPattern = regexp.MustCompile(`^[0-9a-f]{7,40}$`)

// NewRefSpec classifies a user-supplied ref string. Anything that looks like
// an abbreviated or full commit hash is treated as a SHA, the rest as a
// branch name.
func NewRefSpec(value string) RefSpec {
	if shaPattern.MatchString(value) {
		return RefSpec{Value: value, Kind: RefKindSHA}
	}
	return RefSpec{Value: value, Kind: RefKindBranch}
}

func (x RefSpec) Validate() error {
	if x.Value == "" {
		return goerr.Wrap(types.ErrInvalidOption, "ref is empty")
	}
	return nil
}
