package testregistry

import digest "github.com/opencontainers/go-digest"

// NewRepository returns an empty Repository ready for Put calls.
func NewRepository() *Repository {
	return &Repository{
		Manifests: map[string]ManifestFixture{},
		Blobs:     map[digest.Digest][]byte{},
	}
}

// PutManifest registers body under ref (a tag or digest string) and, whatever
// ref is, also under the digest of body, both as a manifest and as a blob, so
// the same document can be fetched as a blob (needed for manifest-list entry
// re-fetch by digest). It returns that digest.
func (repo *Repository) PutManifest(ref, mediaType string, body []byte) digest.Digest {
	repo.Manifests[ref] = ManifestFixture{MediaType: mediaType, Body: body}
	d := digest.FromBytes(body)
	repo.Manifests[d.String()] = ManifestFixture{MediaType: mediaType, Body: body}
	repo.Blobs[d] = body
	return d
}

// PutBlob registers body keyed by its own digest and returns that digest.
func (repo *Repository) PutBlob(body []byte) digest.Digest {
	d := digest.FromBytes(body)
	repo.Blobs[d] = body
	return d
}
