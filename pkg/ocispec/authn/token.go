// Package authn implements the Docker Token Authentication flow: parsing
// one or more "WWW-Authenticate: Bearer" challenges out of a response and
// exchanging each against its realm for a bearer token.
package authn

import (
	"encoding/json"
	"fmt"
	"time"
)

const (
	// defaultTokenExpires is the floor applied to a token's expires_in: per
	// the Docker token spec, a token should never be returned with less
	// than 60 seconds to live, so a server that omits or under-reports the
	// field is treated as if it reported this value.
	defaultTokenExpires = 60
)

// Credential is the tagged variant of authentication material this package
// can produce. Currently the only case is a bearer Token; Credential exists
// so that future variants (e.g. Basic) can be added without changing the
// Challenge/registry-engine call sites.
type Credential struct {
	Token Token
}

// Token is the bearer token returned by a token server. token is opaque to
// this client; access_token is accepted as a synonym for token, per the
// Docker token spec.
type Token struct {
	Token        string `json:"token,omitempty"`
	AccessToken  string `json:"access_token,omitempty"`
	ExpiresIn    int    `json:"expires_in,omitempty"`
	IssuedAt     string `json:"issued_at,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// TTL returns how long the token should be cached for, derived from
// ExpiresIn (floored to defaultTokenExpires).
func (t Token) TTL() time.Duration {
	secs := t.ExpiresIn
	if secs < defaultTokenExpires {
		secs = defaultTokenExpires
	}
	return time.Duration(secs) * time.Second
}

// UnmarshalJSON canonicalizes the token/access_token synonym: whichever of
// the two fields is set, both are populated with the same value on decode.
func (t *Token) UnmarshalJSON(data []byte) error {
	type shadow Token
	var s shadow
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("authn: decoding token response: %w", err)
	}
	*t = Token(s)
	if t.Token == "" {
		t.Token = t.AccessToken
	}
	if t.AccessToken == "" {
		t.AccessToken = t.Token
	}
	return nil
}
