package image

import (
	"github.com/wuxler/imgpull/pkg/ocispec/manifest"
	"github.com/wuxler/imgpull/pkg/ocispec/platform"
)

// PlatformSelector returns a manifest.DescriptorMatcher that picks the
// first manifest list entry whose platform matches p.
func PlatformSelector(p platform.Platform) manifest.DescriptorMatcher {
	return func(list *manifest.ManifestList) (manifest.ManifestListEntry, bool) {
		for _, entry := range list.Manifests {
			if entry.Platform.Matches(p) {
				return entry, true
			}
		}
		return manifest.ManifestListEntry{}, false
	}
}

// FirstSelector is a manifest.DescriptorMatcher that picks the first entry
// unconditionally. Intended for tests only.
func FirstSelector(list *manifest.ManifestList) (manifest.ManifestListEntry, bool) {
	if len(list.Manifests) == 0 {
		return manifest.ManifestListEntry{}, false
	}
	return list.Manifests[0], true
}
