package authn_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wuxler/imgpull/pkg/ocispec/authn"
)

func TestParseChallenge_Bearer(t *testing.T) {
	c := authn.ParseChallenge(`Bearer realm="https://auth.example.com/token",service="registry.example.com",scope="repository:library/hello:pull"`)
	assert.Equal(t, authn.SchemeBearer, c.Scheme)
	assert.Equal(t, "https://auth.example.com/token", c.Parameters["realm"])
	assert.Equal(t, "registry.example.com", c.Parameters["service"])
	assert.Equal(t, "repository:library/hello:pull", c.Parameters["scope"])
}

func TestParseChallenge_Basic(t *testing.T) {
	c := authn.ParseChallenge(`Basic realm="registry"`)
	assert.Equal(t, authn.SchemeBasic, c.Scheme)
}

func TestParseChallenge_Unknown(t *testing.T) {
	c := authn.ParseChallenge(`Digest realm="registry"`)
	assert.Equal(t, authn.SchemeUnknown, c.Scheme)
}

func TestToken_TTL_Floor(t *testing.T) {
	tok := authn.Token{ExpiresIn: 5}
	assert.Equal(t, 60*time.Second, tok.TTL())

	tok = authn.Token{ExpiresIn: 300}
	assert.Equal(t, 300*time.Second, tok.TTL())
}

func TestToken_UnmarshalJSON_AccessTokenSynonym(t *testing.T) {
	var tok authn.Token
	require.NoError(t, json.Unmarshal([]byte(`{"access_token":"abc","expires_in":120}`), &tok))
	assert.Equal(t, "abc", tok.Token)
	assert.Equal(t, "abc", tok.AccessToken)

	var tok2 authn.Token
	require.NoError(t, json.Unmarshal([]byte(`{"token":"xyz"}`), &tok2))
	assert.Equal(t, "xyz", tok2.AccessToken)
}

func TestChallenge_FetchesTokenFromRealm(t *testing.T) {
	var gotService, gotScope string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotService = r.URL.Query().Get("service")
		gotScope = r.URL.Query().Get("scope")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token":"tok123","expires_in":300}`))
	}))
	defer ts.Close()

	header := `Bearer realm="` + ts.URL + `",service="registry.example.com",scope="repository:library/hello:pull"`
	creds, err := authn.Challenge(t.Context(), ts.Client(), []string{header})
	require.NoError(t, err)
	require.Len(t, creds, 1)
	assert.Equal(t, "tok123", creds[0].Token.Token)
	assert.Equal(t, "registry.example.com", gotService)
	assert.Equal(t, "repository:library/hello:pull", gotScope)
}

func TestChallenge_NoBearerChallenge(t *testing.T) {
	_, err := authn.Challenge(t.Context(), http.DefaultClient, []string{`Basic realm="registry"`})
	require.Error(t, err)
	var target *authn.InvalidAuthenticationChallengeError
	assert.True(t, errors.As(err, &target))
}

func TestChallenge_SkipsFailingChallenge(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer ts.Close()

	header := `Bearer realm="` + ts.URL + `",service="registry.example.com"`
	creds, err := authn.Challenge(t.Context(), ts.Client(), []string{header})
	require.NoError(t, err)
	assert.Empty(t, creds)
}
