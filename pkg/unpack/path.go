package unpack

import (
	"path"
	"strings"
)

const (
	// whiteoutPrefix marks a tar entry as removing an inherited path.
	// See https://github.com/opencontainers/image-spec/blob/main/layer.md#whiteouts
	whiteoutPrefix = ".wh."
	// opaqueWhiteout marks a tar entry as removing all inherited children
	// of its parent directory.
	opaqueWhiteout = whiteoutPrefix + whiteoutPrefix + ".opq"
)

// IsOpaqueWhiteout reports whether path's basename is the opaque-directory
// whiteout marker. Operates on the raw byte string; no path normalization
// is applied, since tar entry names are POSIX paths on the wire regardless
// of host OS.
func IsOpaqueWhiteout(p string) bool {
	return path.Base(p) == opaqueWhiteout
}

// WhiteoutPath reports whether path's basename begins with the whiteout
// prefix but is not the opaque marker, and if so returns the path with
// that prefix stripped from its final component.
//
//	WhiteoutPath("a/b/.wh.c") == ("a/b/c", true)
//	WhiteoutPath("a/b/c") == ("", false)
func WhiteoutPath(p string) (string, bool) {
	dir, base := path.Split(p)
	if !strings.HasPrefix(base, whiteoutPrefix) {
		return "", false
	}
	if base == opaqueWhiteout {
		return "", false
	}
	return dir + strings.TrimPrefix(base, whiteoutPrefix), true
}

// parentPath returns path's parent directory. Root ("/" or "") maps to "/".
func parentPath(p string) string {
	dir := path.Dir(path.Clean(p))
	if dir == "." {
		return "/"
	}
	return dir
}
