package authn

import (
	"fmt"

	"github.com/wuxler/imgpull/pkg/errdefs"
)

// InvalidAuthenticationChallengeError is returned when a WWW-Authenticate
// header is missing entirely, or present but contains no Bearer challenge.
type InvalidAuthenticationChallengeError struct {
	Reason string
}

func (e *InvalidAuthenticationChallengeError) Error() string {
	return fmt.Sprintf("invalid authentication challenge: %s", e.Reason)
}

func (e *InvalidAuthenticationChallengeError) Is(target error) bool {
	return target == errdefs.ErrUnauthorized
}

// CouldNotGetTokenError is returned when a token request to a challenge's
// realm completes with a non-2xx status.
type CouldNotGetTokenError struct {
	StatusCode int
}

func (e *CouldNotGetTokenError) Error() string {
	return fmt.Sprintf("could not get token: unexpected status %d", e.StatusCode)
}

func (e *CouldNotGetTokenError) Is(target error) bool {
	return target == errdefs.ErrUnauthorized
}

// ErrCouldNotAuthenticate is returned when no credential produced by any
// challenge succeeded against the original request.
var ErrCouldNotAuthenticate = errdefs.Newf(errdefs.ErrUnauthorized, "could not authenticate: no credential was accepted")
