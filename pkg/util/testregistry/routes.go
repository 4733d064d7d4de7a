package testregistry

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	digest "github.com/opencontainers/go-digest"
)

// handleV2 dispatches "/v2/<name>/manifests/<reference>" and
// "/v2/<name>/blobs/<digest>" requests. gin's wildcard route collapses the
// repository name and the route tail into a single "*rest" parameter,
// since repository names themselves may contain slashes (e.g.
// "library/hello-world").
func (r *Registry) handleV2(c *gin.Context) {
	if !r.authorized(c) {
		c.Header("WWW-Authenticate", `Bearer realm="`+r.URL()+`/token",service="testregistry"`)
		c.Status(http.StatusUnauthorized)
		return
	}

	rest := strings.TrimPrefix(c.Param("rest"), "/")

	name, kind, ref, ok := splitRest(rest)
	if !ok {
		c.Status(http.StatusNotFound)
		return
	}

	repo, ok := r.repos.Load(name)
	if !ok {
		c.Status(http.StatusNotFound)
		return
	}

	switch kind {
	case "manifests":
		r.serveManifest(c, repo, ref)
	case "blobs":
		r.serveBlob(c, repo, ref)
	default:
		c.Status(http.StatusNotFound)
	}
}

// splitRest splits "<name>/manifests/<ref>" or "<name>/blobs/<ref>" on the
// last occurrence of "/manifests/" or "/blobs/", since name may itself
// contain slashes.
func splitRest(rest string) (name, kind, ref string, ok bool) {
	for _, kind := range []string{"manifests", "blobs"} {
		marker := "/" + kind + "/"
		if i := strings.LastIndex(rest, marker); i >= 0 {
			return rest[:i], kind, rest[i+len(marker):], true
		}
	}
	return "", "", "", false
}

func (r *Registry) serveManifest(c *gin.Context, repo *Repository, ref string) {
	fixture, ok := repo.Manifests[ref]
	if !ok {
		c.Status(http.StatusNotFound)
		return
	}
	c.Data(http.StatusOK, fixture.MediaType, fixture.Body)
}

func (r *Registry) serveBlob(c *gin.Context, repo *Repository, ref string) {
	body, ok := repo.Blobs[digest.Digest(ref)]
	if !ok {
		c.Status(http.StatusNotFound)
		return
	}
	c.Data(http.StatusOK, "application/octet-stream", body)
}
