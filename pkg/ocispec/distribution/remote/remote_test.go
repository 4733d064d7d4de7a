package remote_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wuxler/imgpull/pkg/ocispec/authn"
	"github.com/wuxler/imgpull/pkg/ocispec/distribution/remote"
)

func TestClient_Get_Unauthenticated(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	defer ts.Close()

	client := remote.NewClient(ts.URL, ts.Client())
	resp, err := client.Get(t.Context(), ts.URL+"/v2/", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "ok", string(body))
}

func TestClient_Get_NonAuthFailureDoesNotRetry(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	client := remote.NewClient(ts.URL, ts.Client())
	_, err := client.Get(t.Context(), ts.URL+"/v2/", nil)
	require.Error(t, err)
	var target *remote.CouldNotGetTokenError
	assert.True(t, errors.As(err, &target))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestClient_Get_401WithNoChallenge(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer ts.Close()

	client := remote.NewClient(ts.URL, ts.Client())
	_, err := client.Get(t.Context(), ts.URL+"/v2/", nil)
	require.Error(t, err)
	var target *authn.InvalidAuthenticationChallengeError
	assert.True(t, errors.As(err, &target))
}

func TestClient_Get_ChallengeThenSuccessAndCaches(t *testing.T) {
	var resourceCalls, tokenCalls int32

	mux := http.NewServeMux()
	ts := httptest.NewUnstartedServer(mux)
	ts.Start()
	defer ts.Close()

	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&tokenCalls, 1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token":"good-token","expires_in":300}`))
	})
	mux.HandleFunc("/resource", func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&resourceCalls, 1)
		if r.Header.Get("Authorization") != "Bearer good-token" {
			w.Header().Set("WWW-Authenticate", `Bearer realm="`+ts.URL+`/token",service="test"`)
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte("ok"))
		_ = n
	})

	client := remote.NewClient(ts.URL, ts.Client())

	resp, err := client.Get(t.Context(), ts.URL+"/resource", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, int32(1), atomic.LoadInt32(&tokenCalls))

	// Second call reuses the cached credential: no additional token fetch.
	resp2, err := client.Get(t.Context(), ts.URL+"/resource", nil)
	require.NoError(t, err)
	resp2.Body.Close()
	assert.Equal(t, int32(1), atomic.LoadInt32(&tokenCalls))
	assert.Equal(t, int32(3), atomic.LoadInt32(&resourceCalls))
}

func TestVerifyingReader(t *testing.T) {
	data := []byte("hello world")
	d := digestOf(data)

	vr := remote.NewVerifyingReader(byteReader(data), d)
	out, err := io.ReadAll(vr)
	require.NoError(t, err)
	assert.Equal(t, data, out)
	assert.True(t, vr.Verified())
}

func TestVerifyingReader_Mismatch(t *testing.T) {
	vr := remote.NewVerifyingReader(byteReader([]byte("hello world")), digestOf([]byte("something else")))
	_, err := io.ReadAll(vr)
	require.NoError(t, err)
	assert.False(t, vr.Verified())
}
