package manifest

import digest "github.com/opencontainers/go-digest"

// Schema1 is the legacy Docker Image Manifest v2 Schema 1 document. It may
// still be received from older registries but does not support the
// config-and-layers retrieval path: callers may read Manifest()/Layers()
// but Config() is meaningless for this schema.
type Schema1 struct {
	SchemaVersion int       `json:"schemaVersion"`
	Name          string    `json:"name"`
	Tag           string    `json:"tag"`
	Architecture  string    `json:"architecture"`
	FSLayers      []FSLayer `json:"fsLayers"`
}

// FSLayer references one layer blob of a Schema 1 manifest, oldest entries
// last (schema 1 layer order is the reverse of schema 2).
type FSLayer struct {
	BlobSum string `json:"blobSum"`
}

var _ Manifest = (*Schema1)(nil)

// Version implements Manifest.
func (m *Schema1) Version() int { return m.SchemaVersion }

// Type implements Manifest.
func (m *Schema1) Type() Kind { return KindSchema1 }

// LayerDescriptors returns the schema 1 layers as base-first
// LayerDescriptors, the reverse of FSLayers' declared (top-most-first)
// order. Schema 1 carries no per-layer media type; its layers are always
// gzip-compressed tar, so the returned descriptors report IsGzipped true.
func (m *Schema1) LayerDescriptors() []LayerDescriptor {
	out := make([]LayerDescriptor, len(m.FSLayers))
	for i, l := range m.FSLayers {
		out[len(m.FSLayers)-1-i] = LayerDescriptor{Descriptor: Descriptor{
			MediaType: "application/vnd.docker.image.rootfs.diff.tar.gzip",
			Digest:    digest.Digest(l.BlobSum),
		}}
	}
	return out
}
