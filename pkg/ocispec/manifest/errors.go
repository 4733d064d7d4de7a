package manifest

import (
	"fmt"

	"github.com/wuxler/imgpull/pkg/errdefs"
)

// JSONError wraps a JSON decoding failure encountered while probing or
// parsing a manifest document.
type JSONError struct {
	Cause error
}

func (e *JSONError) Error() string {
	return fmt.Sprintf("manifest: invalid json: %s", e.Cause)
}

func (e *JSONError) Unwrap() error {
	return e.Cause
}

func (e *JSONError) Is(target error) bool {
	return target == errdefs.ErrInvalidParameter
}

// InvalidSchemaVersionError is returned when schemaVersion is neither 1 nor 2.
type InvalidSchemaVersionError struct {
	Version int
}

func (e *InvalidSchemaVersionError) Error() string {
	return fmt.Sprintf("manifest: invalid schemaVersion %d", e.Version)
}

func (e *InvalidSchemaVersionError) Is(target error) bool {
	return target == errdefs.ErrInvalidParameter
}

// InvalidMediaTypeError is returned when a schemaVersion=2 document carries
// a mediaType this package does not recognize.
type InvalidMediaTypeError struct {
	MediaType string
}

func (e *InvalidMediaTypeError) Error() string {
	return fmt.Sprintf("manifest: invalid mediaType %q", e.MediaType)
}

func (e *InvalidMediaTypeError) Is(target error) bool {
	return target == errdefs.ErrInvalidParameter
}

// ErrNoMatchingPlatform is returned by SelectManifest when the selector
// matches no entry in a manifest list.
var ErrNoMatchingPlatform = errdefs.Newf(errdefs.ErrNotFound, "no manifest entry matches the requested platform")
