package runtimespec

import "context"

// Runtime is the external lifecycle contract an OCI runtime implements.
// This package documents the contract; no implementation ships here.
type Runtime interface {
	// State MUST return the state of a container identified by ID. MUST
	// error if the container does not exist.
	State(ctx context.Context, id string) (State, error)

	// Create MUST create a new container from the bundle at path with the
	// given ID. MUST error if ID is not unique among containers known to
	// this runtime. All config.json properties except process MUST be
	// applied; process.args MUST NOT be applied until Start. Changes made
	// to config.json after Create has no effect on the container.
	Create(ctx context.Context, id string, bundlePath string) error

	// Start MUST run the user-specified program as given by process. MUST
	// error, with no effect on the container, if the container is not in
	// StatusCreated.
	Start(ctx context.Context, id string) error

	// Kill MUST send signal to the container process. MUST error, with no
	// effect on the container, if the container is neither StatusCreated
	// nor StatusRunning.
	Kill(ctx context.Context, id string, signal int) error

	// Delete MUST delete the resources created during Create. MUST error,
	// with no effect, if the container is not StatusStopped. Resources
	// associated with but not created by the container MUST NOT be deleted.
	Delete(ctx context.Context, id string) error
}
