// Package runtimespec provides the passive data model for an OCI runtime
// bundle's config.json and runtime state, and documents the runtime
// lifecycle contract. None of this package's types carry interesting
// algorithms: a runtime bundle/state document is a schema to be read or
// written, not something this library parses out of a registry response.
package runtimespec

import (
	"encoding/json"

	"github.com/wuxler/imgpull/pkg/errdefs"
)

// Status is the runtime state of a container: a closed set of well-known
// values plus an open Other(string) tail for runtime-defined extensions.
type Status struct {
	value string
}

var (
	StatusCreating = Status{"creating"}
	StatusCreated  = Status{"created"}
	StatusRunning  = Status{"running"}
	StatusStopped  = Status{"stopped"}
)

// OtherStatus wraps a runtime-defined status value not in the well-known set.
func OtherStatus(s string) Status { return Status{s} }

// String implements fmt.Stringer.
func (s Status) String() string { return s.value }

// IsKnown reports whether s is one of the four OCI-defined states.
func (s Status) IsKnown() bool {
	switch s.value {
	case StatusCreating.value, StatusCreated.value, StatusRunning.value, StatusStopped.value:
		return true
	default:
		return false
	}
}

func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.value)
}

func (s *Status) UnmarshalJSON(data []byte) error {
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return errdefs.NewE(errdefs.ErrInvalidParameter, err)
	}
	s.value = v
	return nil
}

// State is the runtime state of a container, as returned by Runtime.State.
type State struct {
	OCIVersion  string            `json:"ociVersion"`
	ID          string            `json:"id"`
	Status      Status            `json:"status"`
	PID         int                `json:"pid,omitempty"`
	Bundle      string            `json:"bundle"`
	Annotations map[string]string `json:"annotations,omitempty"`
}
