package githubapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/checkstat-dev/checkstat/pkg/domain/model"
	"github.com/checkstat-dev/checkstat/pkg/domain/types"
	"github.com/checkstat-dev/checkstat/pkg/utils/safe"
	"github.com/m-mizutani/goerr/v2"
)

// Device authorization flow endpoints. These live on github.com itself, not
// on the REST API host.
// https://docs.github.com/en/apps/oauth-apps/building-oauth-apps/authorizing-oauth-apps#device-flow
const (
	defaultDeviceBase = "https://github.com"
	deviceCodePath    = "/login/device/code"
	deviceTokenPath   = "/login/oauth/access_token"
)

type deviceCodeResponse struct {
	DeviceCode      string `json:"device_code"`
	UserCode        string `json:"user_code"`
	VerificationURI string `json:"verification_uri"`
	ExpiresIn       int    `json:"expires_in"`
	Interval        int    `json:"interval"`
	Error           string `json:"error"`
	ErrorDesc       string `json:"error_description"`
}

type deviceTokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Scope       string `json:"scope"`
	ExpiresIn   int    `json:"expires_in"`
	Error       string `json:"error"`
	ErrorDesc   string `json:"error_description"`
}

func (x *Client) RequestCode(ctx context.Context, scopes []string) (*model.DeviceCode, error) {
	if x.clientID == "" {
		return nil, goerr.Wrap(types.ErrInvalidOption, "OAuth client ID is not configured")
	}

	form := url.Values{
		"client_id": {x.clientID},
		"scope":     {strings.Join(scopes, " ")},
	}

	var body deviceCodeResponse
	if err := x.postDeviceForm(ctx, deviceCodePath, form, &body); err != nil {
		return nil, err
	}
	if body.Error != "" {
		return nil, goerr.New("device code request rejected", goerr.V("error", body.Error), goerr.V("description", body.ErrorDesc))
	}
	if body.DeviceCode == "" || body.UserCode == "" || body.VerificationURI == "" {
		return nil, goerr.New("device code response is incomplete")
	}

	return &model.DeviceCode{
		DeviceCode:      types.AccessToken(body.DeviceCode),
		UserCode:        body.UserCode,
		VerificationURI: body.VerificationURI,
		ExpiresIn:       time.Duration(body.ExpiresIn) * time.Second,
		Interval:        time.Duration(body.Interval) * time.Second,
	}, nil
}

func (x *Client) PollToken(ctx context.Context, code *model.DeviceCode) (*model.Credential, types.DeviceGrantStatus, error) {
	form := url.Values{
		"client_id":   {x.clientID},
		"device_code": {string(code.DeviceCode)},
		"grant_type":  {"urn:ietf:params:oauth:grant-type:device_code"},
	}

	var body deviceTokenResponse
	if err := x.postDeviceForm(ctx, deviceTokenPath, form, &body); err != nil {
		return nil, "", err
	}

	switch body.Error {
	case "":
		// fall through to the token

	case "authorization_pending":
		return nil, types.DeviceGrantPending, nil
	case "slow_down":
		return nil, types.DeviceGrantSlowDown, nil
	case "expired_token":
		return nil, types.DeviceGrantExpired, nil
	case "access_denied":
		return nil, types.DeviceGrantDenied, nil
	default:
		return nil, "", goerr.New("token polling rejected", goerr.V("error", body.Error), goerr.V("description", body.ErrorDesc))
	}

	if body.AccessToken == "" {
		return nil, "", goerr.New("token response has no access token")
	}

	cred := &model.Credential{
		Token:     types.AccessToken(body.AccessToken),
		TokenType: body.TokenType,
	}
	if body.Scope != "" {
		cred.Scope = strings.Split(body.Scope, ",")
	}
	if body.ExpiresIn > 0 {
		expires := x.clock.Now().Add(time.Duration(body.ExpiresIn) * time.Second)
		cred.ExpiresAt = &expires
	}

	return cred, types.DeviceGrantAuthorized, nil
}

func (x *Client) postDeviceForm(ctx context.Context, path string, form url.Values, out any) error {
	base := defaultDeviceBase
	if x.deviceBase != nil {
		base = strings.TrimSuffix(x.deviceBase.String(), "/")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, base+path, strings.NewReader(form.Encode()))
	if err != nil {
		return goerr.Wrap(err, "failed to build device flow request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := x.httpClient.Do(req)
	if err != nil {
		return goerr.Wrap(types.ErrNetworkFailure, "device flow request failed", goerr.V("cause", err))
	}
	defer safe.Close(resp.Body)

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return goerr.New("device flow endpoint returned an error", goerr.V("status", resp.StatusCode), goerr.V("body", string(data)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return goerr.Wrap(err, "failed to decode device flow response")
	}

	return nil
}
