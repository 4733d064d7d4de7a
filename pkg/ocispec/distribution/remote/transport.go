package remote

import (
	"net/http"

	"github.com/klauspost/compress/gzip"
)

// gzipDecodingTransport transparently requests and decodes
// "Content-Encoding: gzip" responses, so JSON endpoints (manifest and
// config fetches) never hand callers a compressed body to deal with. Go's
// own http.Transport does this automatically only when it set the
// Accept-Encoding header itself; since this client sometimes sets other
// headers first, the transport does it explicitly instead of relying on
// that implicit behavior.
type gzipDecodingTransport struct {
	inner http.RoundTripper
}

// WrapTransport returns a RoundTripper that transparently decodes gzip
// response bodies on top of inner. If inner is nil, http.DefaultTransport
// is used.
func WrapTransport(inner http.RoundTripper) http.RoundTripper {
	if inner == nil {
		inner = http.DefaultTransport
	}
	return &gzipDecodingTransport{inner: inner}
}

func (t *gzipDecodingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("Accept-Encoding") == "" {
		req.Header.Set("Accept-Encoding", "gzip")
	}
	resp, err := t.inner.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if resp.Header.Get("Content-Encoding") != "gzip" {
		return resp, nil
	}
	gr, err := gzip.NewReader(resp.Body)
	if err != nil {
		return nil, err
	}
	resp.Body = &gzipReadCloser{gr: gr, inner: resp.Body}
	resp.Header.Del("Content-Encoding")
	resp.Header.Del("Content-Length")
	resp.ContentLength = -1
	return resp, nil
}

type gzipReadCloser struct {
	gr    *gzip.Reader
	inner interface{ Close() error }
}

func (g *gzipReadCloser) Read(p []byte) (int, error) {
	return g.gr.Read(p)
}

func (g *gzipReadCloser) Close() error {
	gerr := g.gr.Close()
	ierr := g.inner.Close()
	if gerr != nil {
		return gerr
	}
	return ierr
}
