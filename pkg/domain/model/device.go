package model

import (
	"time"

	"github.com/checkstat-dev/checkstat/pkg/domain/types"
)

// DeviceCode is the response of GitHub's device authorization endpoint. The
// user code and verification URI are shown to the user; the device code is
// polled against the token endpoint.
type DeviceCode struct {
	DeviceCode      types.AccessToken
	UserCode        string
	VerificationURI string
	ExpiresIn       time.Duration
	Interval        time.Duration
}
