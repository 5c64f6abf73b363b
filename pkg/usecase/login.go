package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/checkstat-dev/checkstat/pkg/domain/model"
	"github.com/checkstat-dev/checkstat/pkg/domain/types"
	"github.com/checkstat-dev/checkstat/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

const (
	defaultPollInterval = 5 * time.Second
	defaultCodeLifetime = 15 * time.Minute

	// GitHub asks for 5 extra seconds between polls on slow_down
	slowDownStep = 5 * time.Second
)

// Login drives the device authorization flow to completion and persists the
// resulting credential.
func (x *UseCase) Login(ctx context.Context) (*model.Credential, error) {
	return x.authenticate(ctx)
}

// Logout removes the persisted credential.
func (x *UseCase) Logout(ctx context.Context) error {
	store := x.clients.CredentialStore()
	if store == nil {
		return nil
	}
	if err := store.Clear(ctx); err != nil {
		return err
	}
	logging.From(ctx).Info("credential removed")
	return nil
}

// authenticate runs the poll state machine: Pending sleeps the interval,
// SlowDown grows it, Expired/Denied/cancellation fail the flow. Nothing is
// persisted unless the flow reaches Authorized.
func (x *UseCase) authenticate(ctx context.Context) (*model.Credential, error) {
	clock := x.clients.Clock()

	code, err := x.clients.DeviceAuth().RequestCode(ctx, []string{"repo"})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to start device authorization")
	}

	logging.From(ctx).Debug("device code issued",
		slog.String("user_code", code.UserCode),
		slog.String("verification_uri", code.VerificationURI),
		slog.Duration("interval", code.Interval),
		slog.Duration("expires_in", code.ExpiresIn),
	)

	if x.deviceNotify != nil {
		x.deviceNotify(code)
	}

	interval := code.Interval
	if interval <= 0 {
		interval = defaultPollInterval
	}
	lifetime := code.ExpiresIn
	if lifetime <= 0 {
		lifetime = defaultCodeLifetime
	}
	deadline := clock.Now().Add(lifetime)

	for {
		cred, status, err := x.clients.DeviceAuth().PollToken(ctx, code)
		if err != nil {
			return nil, goerr.Wrap(types.ErrAuthorizationFailed, "token polling failed", goerr.V("cause", err))
		}

		switch status {
		case types.DeviceGrantAuthorized:
			if store := x.clients.CredentialStore(); store != nil {
				if err := store.Save(ctx, cred); err != nil {
					return nil, goerr.Wrap(err, "failed to persist credential")
				}
			}
			logging.From(ctx).Info("successfully logged in")
			return cred, nil

		case types.DeviceGrantPending:
			// wait and poll again

		case types.DeviceGrantSlowDown:
			interval += slowDownStep

		case types.DeviceGrantExpired:
			return nil, goerr.Wrap(types.ErrAuthorizationFailed, "device code expired")

		case types.DeviceGrantDenied:
			return nil, goerr.Wrap(types.ErrAuthorizationFailed, "access denied by user")

		default:
			return nil, goerr.Wrap(types.ErrAuthorizationFailed, "unexpected grant status", goerr.V("status", status))
		}

		if !clock.Now().Before(deadline) {
			return nil, goerr.Wrap(types.ErrAuthorizationFailed, "device code expired before authorization completed")
		}
		if err := clock.Sleep(ctx, interval); err != nil {
			return nil, goerr.Wrap(types.ErrAuthorizationFailed, "authorization cancelled", goerr.V("cause", err))
		}
	}
}
