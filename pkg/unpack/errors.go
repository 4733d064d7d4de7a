package unpack

import (
	"fmt"

	"github.com/wuxler/imgpull/pkg/errdefs"
)

// ErrGetEntries signals that opening or iterating the tar stream for a
// layer failed before any entries could be read.
var ErrGetEntries = errdefs.ErrSystem

// ErrGetEntry signals that advancing to the next tar entry failed mid-layer.
var ErrGetEntry = errdefs.ErrSystem

// ErrGetEntryPath signals that a tar entry's name could not be used as a
// path (e.g. empty name).
var ErrGetEntryPath = errdefs.ErrInvalidParameter

// ErrUnpackEntry signals that a sink callback (Add, WhiteoutFile,
// WhiteoutFolder) returned an error while applying one entry.
var ErrUnpackEntry = errdefs.ErrSystem

// AttemptedFilesystemTraversalError is returned by sink implementations
// (such as FolderSink) when CheckPathIn reports that an entry's path
// resolves outside of the sink's root. CheckPathIn itself only reports a
// bool.
type AttemptedFilesystemTraversalError struct {
	Path string
}

func (e *AttemptedFilesystemTraversalError) Error() string {
	return fmt.Sprintf("unpack: path %q attempts filesystem traversal outside its base directory", e.Path)
}

func (e *AttemptedFilesystemTraversalError) Is(target error) bool {
	return target == errdefs.ErrForbidden
}

// CanonicalizePathError wraps a failure resolving an ancestor of a path via
// filepath.EvalSymlinks during partial canonicalization.
type CanonicalizePathError struct {
	Path  string
	Cause error
}

func (e *CanonicalizePathError) Error() string {
	return fmt.Sprintf("unpack: failed to canonicalize path %q: %s", e.Path, e.Cause)
}

func (e *CanonicalizePathError) Unwrap() error {
	return e.Cause
}

func (e *CanonicalizePathError) Is(target error) bool {
	return target == errdefs.ErrSystem
}

// PathAbsError wraps a failure making a path absolute ahead of
// canonicalization.
type PathAbsError struct {
	Cause error
}

func (e *PathAbsError) Error() string {
	return fmt.Sprintf("unpack: failed to make path absolute: %s", e.Cause)
}

func (e *PathAbsError) Unwrap() error {
	return e.Cause
}

func (e *PathAbsError) Is(target error) bool {
	return target == errdefs.ErrInvalidParameter
}
