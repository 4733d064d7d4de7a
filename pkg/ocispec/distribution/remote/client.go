// Package remote implements the registry HTTP engine: transparent
// bearer-token challenge/response handling, a per-resource credential
// cache, and the single-round 401-retry algorithm.
package remote

import (
	"context"
	"net/http"

	"github.com/wuxler/imgpull/pkg/ocispec/authn"
	"github.com/wuxler/imgpull/pkg/util/xcache"
	"github.com/wuxler/imgpull/pkg/xlog"
)

// CredentialCacheCapacity is the bounded size of the per-resource
// credential cache, per the design note that caps it at 32 entries.
const CredentialCacheCapacity = 32

// Client is a registry handle: an immutable base URL, an HTTP client, and a
// bounded credential cache keyed by request URL. The base URL must carry no
// trailing slash.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	credentials xcache.Cache[authn.Credential]
}

// NewClient returns a Client for baseURL using httpClient for transport. If
// httpClient is nil, a client configured to transparently decode gzipped
// JSON responses is built.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Transport: WrapTransport(nil)}
	}
	return &Client{
		BaseURL:     baseURL,
		HTTPClient:  httpClient,
		credentials: xcache.NewMemory[authn.Credential](CredentialCacheCapacity, 0),
	}
}

// Get performs an authenticated GET against url, per the algorithm:
//
//  1. Look up a cached credential for url; send with it if present, else
//     unauthenticated.
//  2. On 2xx, return the response.
//  3. On non-401 failure, return CouldNotGetTokenError.
//  4. On 401 with no WWW-Authenticate, return an authn
//     InvalidAuthenticationChallengeError.
//  5. On 401 with a challenge, invoke the auth engine and retry once per
//     returned credential, in order. The first 2xx response is cached and
//     returned. If none succeed, return authn.ErrCouldNotAuthenticate.
//
// Never retries on non-401 errors, and never performs more than one round
// of auth acquisition per call.
func (c *Client) Get(ctx context.Context, url string, headers http.Header) (*http.Response, error) {
	cred, cached := c.credentials.Get(ctx, url)

	var resp *http.Response
	var err error
	if cached {
		resp, err = c.attempt(ctx, url, headers, &cred)
	} else {
		resp, err = c.attempt(ctx, url, headers, nil)
	}
	if err != nil {
		return nil, err
	}
	if isSuccess(resp.StatusCode) {
		return resp, nil
	}

	if resp.StatusCode != http.StatusUnauthorized {
		defer resp.Body.Close()
		return nil, &CouldNotGetTokenError{StatusCode: resp.StatusCode}
	}

	challengeValues := resp.Header.Values("WWW-Authenticate")
	resp.Body.Close()
	if len(challengeValues) == 0 {
		return nil, &authn.InvalidAuthenticationChallengeError{Reason: "missing WWW-Authenticate header"}
	}

	xlog.DebugContext(ctx, "registry: authentication required", "url", url, "challenges", len(challengeValues))
	creds, err := authn.Challenge(ctx, c.HTTPClient, challengeValues)
	if err != nil {
		return nil, err
	}

	for _, cred := range creds {
		resp, err := c.attempt(ctx, url, headers, &cred)
		if err != nil {
			return nil, err
		}
		if isSuccess(resp.StatusCode) {
			c.credentials.Set(ctx, url, cred, xcache.WithTTL[authn.Credential](cred.Token.TTL()))
			return resp, nil
		}
		resp.Body.Close()
	}

	return nil, authn.ErrCouldNotAuthenticate
}

func (c *Client) attempt(ctx context.Context, url string, headers http.Header, cred *authn.Credential) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	for k, vv := range headers {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	if cred != nil && cred.Token.Token != "" {
		req.Header.Set("Authorization", "Bearer "+cred.Token.Token)
	} else {
		xlog.DebugContext(ctx, "registry: attempting unauthenticated request", "url", url)
	}
	return c.HTTPClient.Do(req)
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}
