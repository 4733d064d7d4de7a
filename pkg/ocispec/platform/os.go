// Package platform enumerates the OS/architecture values recognized by the
// Go toolchain and matches a parsed Platform against the host.
package platform

import (
	"encoding/json"
	"fmt"

	"github.com/wuxler/imgpull/pkg/errdefs"
)

// OS is a closed enumeration of the GOOS values this package recognizes.
type OS string

// Recognized OS values, matching the Go toolchain's GOOS set.
const (
	Android   OS = "android"
	Darwin    OS = "darwin"
	Dragonfly OS = "dragonfly"
	FreeBSD   OS = "freebsd"
	Linux     OS = "linux"
	NaCl      OS = "nacl"
	NetBSD    OS = "netbsd"
	OpenBSD   OS = "openbsd"
	Plan9     OS = "plan9"
	Solaris   OS = "solaris"
	Windows   OS = "windows"
	ZOS       OS = "zos"
)

var validOS = map[OS]struct{}{
	Android: {}, Darwin: {}, Dragonfly: {}, FreeBSD: {}, Linux: {}, NaCl: {},
	NetBSD: {}, OpenBSD: {}, Plan9: {}, Solaris: {}, Windows: {}, ZOS: {},
}

// ParseOS validates s against the closed GOOS enumeration.
func ParseOS(s string) (OS, error) {
	os := OS(s)
	if _, ok := validOS[os]; !ok {
		return "", errdefs.Newf(errdefs.ErrInvalidParameter, "invalid GOOS value %q", s)
	}
	return os, nil
}

// String implements fmt.Stringer.
func (o OS) String() string {
	return string(o)
}

// UnmarshalJSON implements json.Unmarshaler, validating against the closed set.
func (o *OS) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("GOOS: %w", err)
	}
	parsed, err := ParseOS(s)
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}

// MarshalJSON implements json.Marshaler.
func (o OS) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(o))
}
