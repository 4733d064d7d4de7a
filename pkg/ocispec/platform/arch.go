package platform

import (
	"encoding/json"
	"fmt"

	"github.com/wuxler/imgpull/pkg/errdefs"
)

// Architecture is a closed enumeration of the GOARCH values this package
// recognizes.
type Architecture string

// Recognized architecture values, matching the Go toolchain's GOARCH set.
const (
	I386        Architecture = "386"
	AMD64       Architecture = "amd64"
	AMD64p32    Architecture = "amd64p32"
	ARM         Architecture = "arm"
	ARMbe       Architecture = "armbe"
	ARM64       Architecture = "arm64"
	ARM64be     Architecture = "arm64be"
	PPC64       Architecture = "ppc64"
	PPC64le     Architecture = "ppc64le"
	MIPS        Architecture = "mips"
	MIPSle      Architecture = "mipsle"
	MIPS64      Architecture = "mips64"
	MIPS64le    Architecture = "mips64le"
	MIPS64p32   Architecture = "mips64p32"
	MIPS64p32le Architecture = "mips64p32le"
	PPC         Architecture = "ppc"
	S390        Architecture = "s390"
	S390x       Architecture = "s390x"
	SPARC       Architecture = "sparc"
	SPARC64     Architecture = "sparc64"
)

var validArch = map[Architecture]struct{}{
	I386: {}, AMD64: {}, AMD64p32: {}, ARM: {}, ARMbe: {}, ARM64: {}, ARM64be: {},
	PPC64: {}, PPC64le: {}, MIPS: {}, MIPSle: {}, MIPS64: {}, MIPS64le: {},
	MIPS64p32: {}, MIPS64p32le: {}, PPC: {}, S390: {}, S390x: {}, SPARC: {}, SPARC64: {},
}

// ParseArchitecture validates s against the closed GOARCH enumeration.
func ParseArchitecture(s string) (Architecture, error) {
	arch := Architecture(s)
	if _, ok := validArch[arch]; !ok {
		return "", errdefs.Newf(errdefs.ErrInvalidParameter, "invalid GOARCH value %q", s)
	}
	return arch, nil
}

// String implements fmt.Stringer.
func (a Architecture) String() string {
	return string(a)
}

// UnmarshalJSON implements json.Unmarshaler, validating against the closed set.
func (a *Architecture) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("GOARCH: %w", err)
	}
	parsed, err := ParseArchitecture(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// MarshalJSON implements json.Marshaler.
func (a Architecture) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(a))
}
