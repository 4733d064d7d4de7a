package unpack

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// CheckPathIn reports whether candidate resolves to a location inside
// base, defending sink implementations against filesystem traversal via
// ".." segments or symlinks in an adversarial tar archive.
//
// Both paths are partially canonicalized: starting from the longest
// ancestor and working toward the shortest, filepath.EvalSymlinks is
// attempted on each; the first ancestor that resolves forms the canonical
// prefix, and the unresolved remainder is appended untouched. An ancestor
// that does not exist is skipped in favor of its parent; any other I/O
// error aborts with CanonicalizePathError. The canonicalized result is
// then run through filepath.Clean (no further filesystem access) and
// compared against base's own canonicalization as a boundary-respecting
// path prefix.
func CheckPathIn(base, candidate string) (bool, error) {
	canonBase, err := partialCanonicalize(base)
	if err != nil {
		return false, err
	}
	canonCandidate, err := partialCanonicalize(candidate)
	if err != nil {
		return false, err
	}
	return isPathPrefix(canonBase, canonCandidate), nil
}

func partialCanonicalize(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", &PathAbsError{Cause: err}
	}

	var remainder []string
	cur := abs
	for {
		resolved, err := filepath.EvalSymlinks(cur)
		if err == nil {
			return filepath.Join(append([]string{resolved}, remainder...)...), nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return "", &CanonicalizePathError{Path: p, Cause: err}
		}

		parent := filepath.Dir(cur)
		if parent == cur {
			// Reached the filesystem root without a single resolvable
			// ancestor; fall back to the semantic (unresolved) form.
			return filepath.Clean(abs), nil
		}
		remainder = append([]string{filepath.Base(cur)}, remainder...)
		cur = parent
	}
}

// isPathPrefix reports whether candidate lies within base, treating "/var/"
// as a prefix of "/var/empty" but not treating "/var/empt" as a prefix of
// "/var/empty".
func isPathPrefix(base, candidate string) bool {
	base = filepath.Clean(base)
	candidate = filepath.Clean(candidate)

	if base == candidate {
		return true
	}

	sep := string(filepath.Separator)
	if !strings.HasSuffix(base, sep) {
		base += sep
	}
	return strings.HasPrefix(candidate+sep, base)
}
