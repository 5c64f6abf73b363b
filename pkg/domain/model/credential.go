package model

import (
	"time"

	"github.com/checkstat-dev/checkstat/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// Credential is a GitHub user access token obtained via the device
// authorization flow. Owned by the credential store; loaded once per
// invocation and written at most once, on successful login.
type Credential struct {
	Token     types.AccessToken `toml:"access_token" masq:"secret"`
	TokenType string            `toml:"token_type,omitempty"`
	Scope     []string          `toml:"scope,omitempty"`
	ExpiresAt *time.Time        `toml:"expires_at,omitempty"`
}

func (x *Credential) Validate() error {
	if x.Token == "" {
		return goerr.Wrap(types.ErrInvalidOption, "access token is empty")
	}
	return nil
}

// Expired reports whether the token has an expiry in the past. Tokens
// without an expiry never expire locally; the API is the authority.
func (x *Credential) Expired(now time.Time) bool {
	return x.ExpiresAt != nil && x.ExpiresAt.Before(now)
}
