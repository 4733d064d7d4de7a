package image

import (
	"fmt"

	"github.com/wuxler/imgpull/pkg/errdefs"
)

// UnsupportedManifestSchemaError is returned by Config when the image
// handle's manifest is not Schema 2 (e.g. it is the legacy Schema 1).
type UnsupportedManifestSchemaError struct {
	Kind string
}

func (e *UnsupportedManifestSchemaError) Error() string {
	return fmt.Sprintf("image: unsupported manifest schema %s: config is only available for schema 2", e.Kind)
}

func (e *UnsupportedManifestSchemaError) Is(target error) bool {
	return target == errdefs.ErrUnsupported
}

// ImageSpecError wraps a failure parsing the ImageV1 config document.
type ImageSpecError struct {
	Cause error
}

func (e *ImageSpecError) Error() string {
	return fmt.Sprintf("image: invalid image config: %s", e.Cause)
}

func (e *ImageSpecError) Unwrap() error {
	return e.Cause
}
