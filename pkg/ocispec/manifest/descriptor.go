package manifest

import (
	digest "github.com/opencontainers/go-digest"

	"github.com/wuxler/imgpull/pkg/ocispec/platform"
)

// Descriptor describes the content addressed by a manifest, config, or
// layer blob.
type Descriptor struct {
	MediaType string        `json:"mediaType"`
	Digest    digest.Digest `json:"digest"`
	Size      int64         `json:"size"`
	URLs      []string      `json:"urls,omitempty"`
}

// ManifestListEntry is a Descriptor annotated with the platform it targets,
// as found inside a ManifestList's manifests array.
type ManifestListEntry struct {
	Descriptor
	Platform platform.Platform `json:"platform"`
}

// LayerDescriptor extends Descriptor with the "is this layer gzipped"
// classification derived from its media type.
type LayerDescriptor struct {
	Descriptor
}

// gzippedLayerMediaTypes are the full layer media types (matched exactly,
// including any "+gzip" suffix) that denote a gzip-wrapped tar layer.
var gzippedLayerMediaTypes = map[string]bool{
	"application/vnd.docker.image.rootfs.diff.tar.gzip":         true,
	"application/vnd.docker.image.rootfs.foreign.diff.tar.gzip": true,
	"application/vnd.oci.image.layer.v1.tar+gzip":               true,
}

// IsGzipped reports whether the layer's declared media type indicates a
// gzip-compressed tar stream. Any other layer media type is treated as a
// plain (uncompressed) tar stream.
func (l LayerDescriptor) IsGzipped() bool {
	return gzippedLayerMediaTypes[l.MediaType]
}
