package remote

import (
	"fmt"

	"github.com/wuxler/imgpull/pkg/errdefs"
)

// CouldNotGetTokenError is returned when a non-401 GET against the registry
// fails with a status the registry engine is not equipped to recover from.
type CouldNotGetTokenError struct {
	StatusCode int
}

func (e *CouldNotGetTokenError) Error() string {
	return fmt.Sprintf("registry: request failed with status %d", e.StatusCode)
}

func (e *CouldNotGetTokenError) Is(target error) bool {
	return target == errdefs.ErrUnavailable
}

// DigestMismatchError is returned when a blob's streamed bytes do not hash
// to the digest that was requested.
type DigestMismatchError struct {
	Want string
	Got  string
}

func (e *DigestMismatchError) Error() string {
	return fmt.Sprintf("registry: digest mismatch: want %s, got %s", e.Want, e.Got)
}

func (e *DigestMismatchError) Is(target error) bool {
	return target == errdefs.ErrDataLoss
}
