package manifest

import (
	"encoding/json"
	"strings"
)

// mediaTypePrefixes maps a media type's prefix (the portion before the
// first "+") to the schema kind it denotes for a schemaVersion=2 document.
var mediaTypePrefixes = map[string]Kind{
	"application/vnd.oci.distribution.manifest.v2":          KindSchema2,
	"application/vnd.oci.distribution.manifest.list.v2":     KindManifestList,
	"application/vnd.docker.distribution.manifest.v2":       KindSchema2,
	"application/vnd.docker.distribution.manifest.list.v2":  KindManifestList,
}

// Parse probes raw manifest bytes and returns the concrete manifest it
// denotes (*Schema1, *Schema2, or *ManifestList), following the two-step
// schemaVersion/mediaType algorithm:
//
//  1. Decode just schemaVersion.
//  2. schemaVersion == 1 → Schema1.
//  3. schemaVersion == 2 → decode just mediaType, strip the suffix after
//     the first "+", and route by the known prefix table.
//  4. Any other schemaVersion → InvalidSchemaVersionError.
func Parse(data []byte) (Manifest, error) {
	var v versioned
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, &JSONError{Cause: err}
	}

	switch v.SchemaVersion {
	case 1:
		var s1 Schema1
		if err := json.Unmarshal(data, &s1); err != nil {
			return nil, &JSONError{Cause: err}
		}
		return &s1, nil
	case 2:
		var mt mediaTypeOnly
		if err := json.Unmarshal(data, &mt); err != nil {
			return nil, &JSONError{Cause: err}
		}
		prefix := mt.MediaType
		if idx := strings.IndexByte(prefix, '+'); idx >= 0 {
			prefix = prefix[:idx]
		}
		kind, ok := mediaTypePrefixes[prefix]
		if !ok {
			return nil, &InvalidMediaTypeError{MediaType: mt.MediaType}
		}
		switch kind {
		case KindSchema2:
			var s2 Schema2
			if err := json.Unmarshal(data, &s2); err != nil {
				return nil, &JSONError{Cause: err}
			}
			return &s2, nil
		case KindManifestList:
			var ml ManifestList
			if err := json.Unmarshal(data, &ml); err != nil {
				return nil, &JSONError{Cause: err}
			}
			return &ml, nil
		}
		return nil, &InvalidMediaTypeError{MediaType: mt.MediaType}
	default:
		return nil, &InvalidSchemaVersionError{Version: v.SchemaVersion}
	}
}

// AcceptMediaTypes is the ordered Accept header value list an image handle
// must send when requesting a manifest: manifest-list first, then schema-2,
// each in both OCI and Docker-namespaced variants.
var AcceptMediaTypes = []string{
	"application/vnd.oci.distribution.manifest.list.v2+json",
	"application/vnd.docker.distribution.manifest.list.v2+json",
	"application/vnd.oci.distribution.manifest.v2+json",
	"application/vnd.docker.distribution.manifest.v2+json",
}
