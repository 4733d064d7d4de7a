// Package unpack applies the ordered layer stack of an image onto an
// abstract Sink, dispatching each tar entry to an add or a whiteout
// callback per the AUFS-style whiteout convention.
package unpack

import (
	"archive/tar"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/wuxler/imgpull/pkg/ocispec/manifest"
	"github.com/wuxler/imgpull/pkg/util/xio"
	"github.com/wuxler/imgpull/pkg/xlog"
)

// LayerSource is the capability Unpack needs from an image handle: the
// base-first layer descriptors, and a way to open each one as a
// (possibly gzip-decoded) tar stream.
type LayerSource interface {
	Layers() ([]manifest.LayerDescriptor, error)
	GetLayer(ctx context.Context, layer manifest.LayerDescriptor) (*tar.Reader, io.Closer, error)
}

// Unpack applies every layer of image onto sink, base layer first. Per-entry
// failures abort the current layer immediately; entries already applied
// from that layer are not rolled back.
func Unpack(ctx context.Context, image LayerSource, sink Sink) error {
	layers, err := image.Layers()
	if err != nil {
		return err
	}

	for i, layer := range layers {
		if err := applyLayer(ctx, sink, image, layer); err != nil {
			return fmt.Errorf("unpack: layer %d (%s): %w", i, layer.Digest, err)
		}
	}
	return nil
}

func applyLayer(ctx context.Context, sink Sink, image LayerSource, layer manifest.LayerDescriptor) error {
	if err := sink.PreApply(ctx); err != nil {
		return err
	}

	tr, closer, err := image.GetLayer(ctx, layer)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrGetEntries, err)
	}
	defer closer.Close()

	measured := xio.NewMeasuredReader(tr)

	var added, whiteouts int
	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("%w: %w", ErrGetEntry, err)
		}

		isWhiteout, err := applyChange(ctx, sink, header, measured)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrUnpackEntry, err)
		}
		if isWhiteout {
			whiteouts++
		} else {
			added++
		}
	}

	xlog.InfoContext(ctx, "unpack: layer applied",
		"digest", layer.Digest, "added", added, "whiteouts", whiteouts,
		"bytes", measured.Total(), "bytes_per_sec", measured.BytesPer(time.Second))
	return sink.PostApply(ctx)
}

// applyChange dispatches a single tar entry to the sink, per:
//
//  1. If the entry's basename is the opaque-directory marker
//     (".wh..wh..opq"), whiteout all children of its parent directory.
//  2. Else if the basename begins with the whiteout prefix, whiteout the
//     stripped path.
//  3. Else, add/overwrite the entry.
func applyChange(ctx context.Context, sink Sink, header *tar.Header, r io.Reader) (isWhiteout bool, err error) {
	path := header.Name
	if path == "" {
		return false, ErrGetEntryPath
	}

	if IsOpaqueWhiteout(path) {
		return true, sink.WhiteoutFolder(ctx, parentPath(path))
	}
	if stripped, ok := WhiteoutPath(path); ok {
		return true, sink.WhiteoutFile(ctx, stripped)
	}
	return false, sink.Add(ctx, path, header, r)
}
