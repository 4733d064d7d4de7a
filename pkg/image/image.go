// Package image implements the image handle: pinning a (name, reference)
// to a concrete Schema 2 manifest, selecting a platform entry out of a
// manifest list when necessary, and fetching the image config and layer
// blobs that manifest describes.
package image

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"

	digest "github.com/opencontainers/go-digest"
	"github.com/smallnest/deepcopy"

	"github.com/wuxler/imgpull/pkg/errdefs"
	"github.com/wuxler/imgpull/pkg/ocispec/distribution/remote"
	"github.com/wuxler/imgpull/pkg/ocispec/imagespec"
	"github.com/wuxler/imgpull/pkg/ocispec/manifest"
	"github.com/wuxler/imgpull/pkg/xlog"
)

// Image owns a registry reference, a repository name, and a concrete
// manifest resolved from that repository. It is not safe to share a Image
// across goroutines that mutate the underlying Client's credential cache
// concurrently in ways that would violate the registry engine's "one
// resolution round per Get call" contract (see Client.Get).
type Image struct {
	client    *remote.Client
	name      string
	reference string
	manifest  manifest.Manifest
}

var _ manifest.Fetcher = (*Image)(nil)

// New resolves (name, reference) against client: it fetches the manifest,
// and if the result is a manifest list, applies selector to pick a
// concrete entry and re-fetches that entry's manifest by digest.
func New(ctx context.Context, client *remote.Client, name, reference string, selector manifest.DescriptorMatcher) (*Image, error) {
	img := &Image{client: client, name: name, reference: reference}

	url := fmt.Sprintf("%s/v2/%s/manifests/%s", client.BaseURL, name, reference)
	headers := http.Header{}
	for _, mt := range manifest.AcceptMediaTypes {
		headers.Add("Accept", mt)
	}

	resp, err := client.Get(ctx, url, headers)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	m, err := manifest.Parse(body)
	if err != nil {
		return nil, err
	}

	switch typed := m.(type) {
	case *manifest.ManifestList:
		s2, err := manifest.SelectManifest(ctx, typed, selector, img)
		if err != nil {
			return nil, err
		}
		img.manifest = s2
	default:
		img.manifest = m
	}

	xlog.DebugContext(ctx, "image: resolved", "name", name, "reference", reference, "kind", img.manifest.Type())
	return img, nil
}

// Manifest returns the image's resolved manifest.
func (img *Image) Manifest() manifest.Manifest {
	return img.manifest
}

// Layers returns the image's layer descriptors in base-first order,
// regardless of whether the resolved manifest is Schema 1 or Schema 2.
func (img *Image) Layers() ([]manifest.LayerDescriptor, error) {
	switch m := img.manifest.(type) {
	case *manifest.Schema1:
		return m.LayerDescriptors(), nil
	case *manifest.Schema2:
		return m.LayerDescriptors(), nil
	default:
		return nil, &UnsupportedManifestSchemaError{Kind: img.manifest.Type().String()}
	}
}

// FetchManifestBlob implements manifest.Fetcher: it fetches entry's digest
// as a blob and parses the result as Schema 2, verifying the blob's bytes
// against entry.Digest.
func (img *Image) FetchManifestBlob(ctx context.Context, entry manifest.ManifestListEntry) (*manifest.Schema2, error) {
	rc, err := img.GetBlob(ctx, entry.Digest)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	body, err := io.ReadAll(rc)
	if err != nil {
		return nil, err
	}
	if vr, ok := rc.(*verifyingBody); ok && !vr.Verified() {
		return nil, &remote.DigestMismatchError{Want: vr.Want().String(), Got: "unverified"}
	}

	m, err := manifest.Parse(body)
	if err != nil {
		return nil, err
	}
	s2, ok := m.(*manifest.Schema2)
	if !ok {
		return nil, &UnsupportedManifestSchemaError{Kind: m.Type().String()}
	}
	// Defensive copy: the selector's entry, and any manifest list it was
	// drawn from, must not observe later mutation of this handle's manifest.
	return deepcopy.Copy(s2).(*manifest.Schema2), nil
}

// Config fetches and parses the image's ImageV1 config document. Requires
// the resolved manifest to be Schema 2.
func (img *Image) Config(ctx context.Context) (*imagespec.ImageV1, error) {
	s2, ok := img.manifest.(*manifest.Schema2)
	if !ok {
		return nil, &UnsupportedManifestSchemaError{Kind: img.manifest.Type().String()}
	}

	rc, err := img.GetBlob(ctx, s2.Config.Digest)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	body, err := io.ReadAll(rc)
	if err != nil {
		return nil, err
	}
	if vr, ok := rc.(*verifyingBody); ok && !vr.Verified() {
		return nil, &remote.DigestMismatchError{Want: vr.Want().String(), Got: "unverified"}
	}

	cfg, err := imagespec.Parse(body)
	if err != nil {
		return nil, &ImageSpecError{Cause: err}
	}
	return cfg, nil
}

// GetBlob fetches the blob addressed by dgst, returning a digest-verifying
// reader. The returned value embeds a *remote.VerifyingReader, so it has
// Verified and Want methods; GetBlob does not check the digest itself, and
// callers must fully drain the reader before calling Verified (io.ReadAll
// does this naturally).
func (img *Image) GetBlob(ctx context.Context, dgst digest.Digest) (io.ReadCloser, error) {
	url := fmt.Sprintf("%s/v2/%s/blobs/%s", img.client.BaseURL, img.name, dgst)
	resp, err := img.client.Get(ctx, url, nil)
	if err != nil {
		return nil, err
	}
	return &verifyingBody{
		VerifyingReader: remote.NewVerifyingReader(resp.Body, dgst),
		body:            resp.Body,
	}, nil
}

// verifyingBody adapts a *remote.VerifyingReader (an io.Reader) plus the
// original response body (an io.Closer) into a single io.ReadCloser.
type verifyingBody struct {
	*remote.VerifyingReader
	body io.ReadCloser
}

func (v *verifyingBody) Close() error {
	return v.body.Close()
}

// GetLayer fetches layer's blob and returns a tar reader over its
// (optionally gzip-decoded) contents, plus a closer that releases the
// entire chain (gzip reader and HTTP body). The layer bytes are not checked
// against layer.Digest.
func (img *Image) GetLayer(ctx context.Context, layer manifest.LayerDescriptor) (*tar.Reader, io.Closer, error) {
	rc, err := img.GetBlob(ctx, layer.Digest)
	if err != nil {
		return nil, nil, err
	}

	if !layer.IsGzipped() {
		return tar.NewReader(rc), rc, nil
	}

	gr, err := gzip.NewReader(rc)
	if err != nil {
		rc.Close()
		return nil, nil, err
	}
	return tar.NewReader(gr), multiCloser{gr, rc}, nil
}

type multiCloser struct {
	gz   *gzip.Reader
	body io.ReadCloser
}

func (m multiCloser) Close() error {
	gerr := m.gz.Close()
	berr := m.body.Close()
	if gerr != nil {
		return errdefs.NewE(errdefs.ErrSystem, gerr)
	}
	return berr
}
