// Package testregistry implements a minimal in-process OCI/Docker
// distribution registry, enough of the protocol to drive this module's
// end-to-end tests without a network dependency: "/v2/" ping, manifest GET
// (by tag or digest), blob GET, and a bearer-token endpoint.
package testregistry

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/gin-gonic/gin"
	digest "github.com/opencontainers/go-digest"
	"github.com/puzpuzpuz/xsync/v3"
)

// Repository holds the fixtures for one repository name: manifests keyed
// by reference (tag or digest string) and blobs keyed by digest.
type Repository struct {
	Manifests map[string]ManifestFixture
	Blobs     map[digest.Digest][]byte
}

// ManifestFixture is a stored manifest document plus the media type it was
// served with.
type ManifestFixture struct {
	MediaType string
	Body      []byte
}

// Registry is a fake registry server. AuthRequired gates every manifest and
// blob route behind the bearer-token challenge/response flow; when false,
// requests succeed unauthenticated.
type Registry struct {
	Server       *httptest.Server
	AuthRequired bool

	repos  *xsync.MapOf[string, *Repository]
	tokens *xsync.MapOf[string, bool]
	mu     sync.Mutex
}

// New starts a Registry listening on an ephemeral local port.
func New() *Registry {
	r := &Registry{
		repos:  xsync.NewMapOf[string, *Repository](),
		tokens: xsync.NewMapOf[string, bool](),
	}

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/v2/", r.handlePing)
	router.GET("/token", r.handleToken)
	router.GET("/v2/*rest", r.handleV2)

	r.Server = httptest.NewServer(router)
	return r
}

// Close shuts the server down.
func (r *Registry) Close() {
	r.Server.Close()
}

// URL is the registry's base URL, with no trailing slash.
func (r *Registry) URL() string {
	return r.Server.URL
}

// Seed registers name's fixtures, overwriting any prior fixtures for name.
func (r *Registry) Seed(name string, repo *Repository) {
	r.repos.Store(name, repo)
}

func (r *Registry) handlePing(c *gin.Context) {
	if r.AuthRequired {
		c.Header("WWW-Authenticate", `Bearer realm="`+r.URL()+`/token",service="testregistry"`)
		c.Status(http.StatusUnauthorized)
		return
	}
	c.Status(http.StatusOK)
}

func (r *Registry) handleToken(c *gin.Context) {
	token := newToken()
	r.tokens.Store(token, true)
	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"expires_in": 60,
	})
}

func (r *Registry) authorized(c *gin.Context) bool {
	if !r.AuthRequired {
		return true
	}
	h := c.GetHeader("Authorization")
	const prefix = "Bearer "
	if len(h) <= len(prefix) || h[:len(prefix)] != prefix {
		return false
	}
	_, ok := r.tokens.Load(h[len(prefix):])
	return ok
}

func newToken() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
