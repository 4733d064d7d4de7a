package manifest

import "context"

// ManifestList is a "fat manifest": it enumerates per-platform entries
// rather than describing an image directly.
type ManifestList struct {
	SchemaVersion int                 `json:"schemaVersion"`
	MediaType     string              `json:"mediaType"`
	Manifests     []ManifestListEntry `json:"manifests"`
}

var _ Manifest = (*ManifestList)(nil)

// Version implements Manifest.
func (m *ManifestList) Version() int { return m.SchemaVersion }

// Type implements Manifest.
func (m *ManifestList) Type() Kind { return KindManifestList }

// DescriptorMatcher is a selector erased to a plain function value, per the
// "single method, no state" design note: given a manifest list it returns
// the chosen entry, or ok=false when nothing matches. Implementations must
// be stateless, deterministic, and must not perform I/O.
type DescriptorMatcher func(list *ManifestList) (entry ManifestListEntry, ok bool)

// Fetcher is the capability SelectManifest needs from its caller: fetch the
// bytes of a blob addressed by digest (typically an Image handle's
// GetBlob method) and parse them as Schema 2.
type Fetcher interface {
	FetchManifestBlob(ctx context.Context, entry ManifestListEntry) (*Schema2, error)
}

// SelectManifest applies matcher to pick an entry from the list, fetches
// that entry's digest as a blob through fetcher, and returns the resulting
// Schema 2 manifest. Returns ErrNoMatchingPlatform when matcher selects
// nothing.
func SelectManifest(ctx context.Context, list *ManifestList, matcher DescriptorMatcher, fetcher Fetcher) (*Schema2, error) {
	entry, ok := matcher(list)
	if !ok {
		return nil, ErrNoMatchingPlatform
	}
	return fetcher.FetchManifestBlob(ctx, entry)
}
