package manifest_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wuxler/imgpull/pkg/errdefs"
	"github.com/wuxler/imgpull/pkg/ocispec/manifest"
	"github.com/wuxler/imgpull/pkg/ocispec/platform"
)

func TestParse_Schema1(t *testing.T) {
	m, err := manifest.Parse([]byte(`{"schemaVersion":1,"name":"library/hello-world","tag":"latest","architecture":"amd64","fsLayers":[{"blobSum":"sha256:aaa"},{"blobSum":"sha256:bbb"}]}`))
	require.NoError(t, err)
	s1, ok := m.(*manifest.Schema1)
	require.True(t, ok)
	assert.Equal(t, manifest.KindSchema1, s1.Type())
	assert.Equal(t, 1, s1.Version())

	// Base-first: fsLayers is declared top-most-first, so LayerDescriptors
	// reverses it.
	layers := s1.LayerDescriptors()
	require.Len(t, layers, 2)
	assert.Equal(t, "sha256:bbb", layers[0].Digest.String())
	assert.Equal(t, "sha256:aaa", layers[1].Digest.String())
	assert.True(t, layers[0].IsGzipped())
}

func TestParse_Schema2_OCI(t *testing.T) {
	m, err := manifest.Parse([]byte(`{
		"schemaVersion": 2,
		"mediaType": "application/vnd.oci.distribution.manifest.v2+json",
		"config": {"mediaType": "application/vnd.oci.image.config.v1+json", "digest": "sha256:cfg", "size": 10},
		"layers": [{"mediaType": "application/vnd.oci.image.layer.v1.tar+gzip", "digest": "sha256:layer1", "size": 20}]
	}`))
	require.NoError(t, err)
	s2, ok := m.(*manifest.Schema2)
	require.True(t, ok)
	assert.Equal(t, manifest.KindSchema2, s2.Type())
	assert.Len(t, s2.LayerDescriptors(), 1)
	assert.True(t, s2.LayerDescriptors()[0].IsGzipped())
}

func TestParse_Schema2_Docker(t *testing.T) {
	m, err := manifest.Parse([]byte(`{
		"schemaVersion": 2,
		"mediaType": "application/vnd.docker.distribution.manifest.v2+json",
		"config": {"mediaType": "application/vnd.docker.container.image.v1+json", "digest": "sha256:cfg", "size": 10},
		"layers": [{"mediaType": "application/vnd.docker.image.rootfs.diff.tar.gzip", "digest": "sha256:layer1", "size": 20}]
	}`))
	require.NoError(t, err)
	assert.Equal(t, manifest.KindSchema2, m.Type())
}

func TestParse_ManifestList(t *testing.T) {
	m, err := manifest.Parse([]byte(`{
		"schemaVersion": 2,
		"mediaType": "application/vnd.oci.distribution.manifest.list.v2+json",
		"manifests": [
			{"mediaType": "application/vnd.oci.distribution.manifest.v2+json", "digest": "sha256:amd64", "size": 1, "platform": {"os": "linux", "architecture": "amd64"}},
			{"mediaType": "application/vnd.oci.distribution.manifest.v2+json", "digest": "sha256:arm64", "size": 1, "platform": {"os": "linux", "architecture": "arm64"}}
		]
	}`))
	require.NoError(t, err)
	ml, ok := m.(*manifest.ManifestList)
	require.True(t, ok)
	assert.Equal(t, manifest.KindManifestList, ml.Type())
	assert.Len(t, ml.Manifests, 2)
}

func TestParse_InvalidSchemaVersion(t *testing.T) {
	_, err := manifest.Parse([]byte(`{"schemaVersion": 3}`))
	require.Error(t, err)
	var target *manifest.InvalidSchemaVersionError
	assert.True(t, errors.As(err, &target))
	assert.True(t, errors.Is(err, errdefs.ErrInvalidParameter))
}

func TestParse_InvalidMediaType(t *testing.T) {
	_, err := manifest.Parse([]byte(`{"schemaVersion": 2, "mediaType": "application/unknown+json"}`))
	require.Error(t, err)
	var target *manifest.InvalidMediaTypeError
	assert.True(t, errors.As(err, &target))
}

func TestParse_MalformedJSON(t *testing.T) {
	_, err := manifest.Parse([]byte(`not json`))
	require.Error(t, err)
	var target *manifest.JSONError
	assert.True(t, errors.As(err, &target))
}

type fakeFetcher struct {
	calls []manifest.ManifestListEntry
	s2    *manifest.Schema2
	err   error
}

func (f *fakeFetcher) FetchManifestBlob(_ context.Context, entry manifest.ManifestListEntry) (*manifest.Schema2, error) {
	f.calls = append(f.calls, entry)
	return f.s2, f.err
}

func TestSelectManifest(t *testing.T) {
	list := &manifest.ManifestList{
		Manifests: []manifest.ManifestListEntry{
			{Platform: platform.Platform{OS: platform.Linux, Architecture: platform.ARM64}},
			{Platform: platform.Platform{OS: platform.Linux, Architecture: platform.AMD64}},
		},
	}
	want := &manifest.Schema2{SchemaVersion: 2}
	fetcher := &fakeFetcher{s2: want}

	matcher := func(l *manifest.ManifestList) (manifest.ManifestListEntry, bool) {
		for _, e := range l.Manifests {
			if e.Platform.Architecture == platform.AMD64 {
				return e, true
			}
		}
		return manifest.ManifestListEntry{}, false
	}

	got, err := manifest.SelectManifest(context.Background(), list, matcher, fetcher)
	require.NoError(t, err)
	assert.Same(t, want, got)
	require.Len(t, fetcher.calls, 1)
	assert.Equal(t, platform.AMD64, fetcher.calls[0].Platform.Architecture)
}

func TestSelectManifest_NoMatch(t *testing.T) {
	list := &manifest.ManifestList{}
	noMatch := func(*manifest.ManifestList) (manifest.ManifestListEntry, bool) {
		return manifest.ManifestListEntry{}, false
	}
	_, err := manifest.SelectManifest(context.Background(), list, noMatch, &fakeFetcher{})
	assert.ErrorIs(t, err, manifest.ErrNoMatchingPlatform)
}
