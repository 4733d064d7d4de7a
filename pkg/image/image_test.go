package image_test

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"encoding/json"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wuxler/imgpull/pkg/image"
	"github.com/wuxler/imgpull/pkg/ocispec/distribution/remote"
	"github.com/wuxler/imgpull/pkg/ocispec/manifest"
	"github.com/wuxler/imgpull/pkg/ocispec/platform"
	"github.com/wuxler/imgpull/pkg/util/testregistry"
)

func gzipTar(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var rawBuf bytes.Buffer
	tw := tar.NewWriter(&rawBuf)
	for name, content := range files {
		require.NoError(t, tw.WriteHeader(&tar.Header{Name: name, Size: int64(len(content)), Mode: 0o644}))
		_, err := tw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())

	var gzBuf bytes.Buffer
	gw := gzip.NewWriter(&gzBuf)
	_, err := gw.Write(rawBuf.Bytes())
	require.NoError(t, err)
	require.NoError(t, gw.Close())
	return gzBuf.Bytes()
}

func TestImage_New_HelloWorld(t *testing.T) {
	reg := testregistry.New()
	defer reg.Close()

	repo := testregistry.NewRepository()

	layerBytes := gzipTar(t, map[string]string{"hello": "hello world\n"})
	layerDigest := repo.PutBlob(layerBytes)

	configDoc := []byte(`{"architecture":"amd64","os":"linux","rootfs":{"type":"layers","diff_ids":["sha256:abc"]}}`)
	configDigest := repo.PutBlob(configDoc)

	s2 := map[string]any{
		"schemaVersion": 2,
		"mediaType":     "application/vnd.oci.distribution.manifest.v2+json",
		"config": map[string]any{
			"mediaType": "application/vnd.oci.image.config.v1+json",
			"digest":    configDigest.String(),
			"size":      len(configDoc),
		},
		"layers": []map[string]any{
			{
				"mediaType": "application/vnd.oci.image.layer.v1.tar+gzip",
				"digest":    layerDigest.String(),
				"size":      len(layerBytes),
			},
		},
	}
	s2Bytes, err := json.Marshal(s2)
	require.NoError(t, err)
	s2Digest := repo.PutManifest("sha256-placeholder-unused", "application/vnd.oci.distribution.manifest.v2+json", s2Bytes)

	list := map[string]any{
		"schemaVersion": 2,
		"mediaType":     "application/vnd.oci.distribution.manifest.list.v2+json",
		"manifests": []map[string]any{
			{
				"mediaType": "application/vnd.oci.distribution.manifest.v2+json",
				"digest":    s2Digest.String(),
				"size":      len(s2Bytes),
				"platform":  map[string]any{"os": "linux", "architecture": "amd64"},
			},
		},
	}
	listBytes, err := json.Marshal(list)
	require.NoError(t, err)
	repo.PutManifest("latest", "application/vnd.oci.distribution.manifest.list.v2+json", listBytes)

	reg.Seed("library/hello-world", repo)

	client := remote.NewClient(reg.URL(), reg.Server.Client())
	selector := image.PlatformSelector(platform.Platform{OS: platform.Linux, Architecture: platform.AMD64})

	img, err := image.New(t.Context(), client, "library/hello-world", "latest", selector)
	require.NoError(t, err)

	s2manifest, ok := img.Manifest().(*manifest.Schema2)
	require.True(t, ok)
	assert.Equal(t, manifest.KindSchema2, s2manifest.Type())

	cfg, err := img.Config(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "linux", cfg.OS.String())
	assert.Equal(t, "amd64", cfg.Architecture.String())

	layers, err := img.Layers()
	require.NoError(t, err)
	require.Len(t, layers, 1)

	tr, closer, err := img.GetLayer(t.Context(), layers[0])
	require.NoError(t, err)
	defer closer.Close()

	header, err := tr.Next()
	require.NoError(t, err)
	assert.Equal(t, "hello", header.Name)

	data, err := io.ReadAll(tr)
	require.NoError(t, err)
	assert.Equal(t, "hello world\n", string(data))
}

func TestImage_Config_UnsupportedOnSchema1(t *testing.T) {
	reg := testregistry.New()
	defer reg.Close()

	repo := testregistry.NewRepository()
	s1 := []byte(`{"schemaVersion":1,"name":"library/legacy","tag":"latest","architecture":"amd64","fsLayers":[{"blobSum":"sha256:aaa"}]}`)
	repo.PutManifest("latest", "application/vnd.docker.distribution.manifest.v1+json", s1)
	reg.Seed("library/legacy", repo)

	client := remote.NewClient(reg.URL(), reg.Server.Client())
	img, err := image.New(t.Context(), client, "library/legacy", "latest", image.FirstSelector)
	require.NoError(t, err)

	_, err = img.Config(t.Context())
	require.Error(t, err)
	var target *image.UnsupportedManifestSchemaError
	assert.ErrorAs(t, err, &target)
}
