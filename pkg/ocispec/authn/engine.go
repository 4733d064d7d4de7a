package authn

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/samber/lo"

	"github.com/wuxler/imgpull/pkg/xlog"
)

// Challenge parses headerValues (typically the result of
// resp.Header.Values("WWW-Authenticate")) into Bearer challenges, exchanges
// each against its realm for a token, and returns one Credential per
// challenge that succeeded. Per-challenge failures are filtered out, not
// surfaced; only the absence of ANY Bearer challenge is an error.
func Challenge(ctx context.Context, client *http.Client, headerValues []string) ([]Credential, error) {
	challenges := parseBearerChallenges(headerValues)
	if len(challenges) == 0 {
		return nil, &InvalidAuthenticationChallengeError{Reason: "no Bearer challenge found"}
	}

	var creds []Credential
	for _, c := range challenges {
		tok, err := fetchToken(ctx, client, c)
		if err != nil {
			xlog.DebugContext(ctx, "authn: skipping challenge that failed", "realm", c.Parameters["realm"], "error", err)
			continue
		}
		creds = append(creds, Credential{Token: *tok})
	}
	return creds, nil
}

// parseBearerChallenges parses every header value and keeps only the
// challenges whose scheme is Bearer.
func parseBearerChallenges(headerValues []string) []Challenge {
	parsed := lo.Map(headerValues, func(h string, _ int) Challenge {
		return ParseChallenge(h)
	})
	return lo.Filter(parsed, func(c Challenge, _ int) bool {
		return c.Scheme == SchemeBearer
	})
}

// fetchToken builds and issues the token request for one Bearer challenge.
// A challenge with no realm is skipped (realm is required to attempt token
// acquisition).
func fetchToken(ctx context.Context, client *http.Client, c Challenge) (*Token, error) {
	realm := c.Parameters["realm"]
	if realm == "" {
		return nil, &InvalidAuthenticationChallengeError{Reason: "challenge has no realm"}
	}

	u, err := url.Parse(realm)
	if err != nil {
		return nil, err
	}
	q := u.Query()
	if service := c.Parameters["service"]; service != "" {
		q.Set("service", service)
	}
	if scope := c.Parameters["scope"]; scope != "" {
		for _, s := range strings.Fields(scope) {
			q.Add("scope", s)
		}
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &CouldNotGetTokenError{StatusCode: resp.StatusCode}
	}

	var tok Token
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return nil, err
	}
	return &tok, nil
}
