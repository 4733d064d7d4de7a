package unpack

import (
	"archive/tar"
	"context"
	"io"
)

// Sink receives the decoded contents of an unpacked layer. Implementations
// of Add, WhiteoutFile, and WhiteoutFolder are themselves responsible for
// defending against filesystem traversal: a path derived from a tar entry
// must be validated with CheckPathIn against the sink's own root before any
// write, since nothing upstream of Sink does this for them.
type Sink interface {
	// Add creates or overwrites path from a regular tar entry. r is the
	// entry's body, truncated to header.Size.
	Add(ctx context.Context, path string, header *tar.Header, r io.Reader) error
	// WhiteoutFile removes a single inherited file or directory at path.
	WhiteoutFile(ctx context.Context, path string) error
	// WhiteoutFolder removes all inherited children of the directory at
	// path, leaving the directory itself in place.
	WhiteoutFolder(ctx context.Context, path string) error
	// PreApply runs once before a layer's entries are applied.
	PreApply(ctx context.Context) error
	// PostApply runs once after a layer's entries are applied.
	PostApply(ctx context.Context) error
}

// NopHooks provides no-op PreApply/PostApply implementations so a Sink
// only needs to implement Add, WhiteoutFile, and WhiteoutFolder.
type NopHooks struct{}

// PreApply implements Sink.
func (NopHooks) PreApply(context.Context) error { return nil }

// PostApply implements Sink.
func (NopHooks) PostApply(context.Context) error { return nil }
