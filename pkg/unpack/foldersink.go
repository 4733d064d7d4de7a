package unpack

import (
	"archive/tar"
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/wuxler/imgpull/pkg/xlog"
)

// FolderSink unpacks layers onto an afero.Fs rooted at Root. It targets
// the OS filesystem via afero.NewOsFs() in production and an in-memory
// filesystem via afero.NewMemMapFs() in tests.
type FolderSink struct {
	NopHooks

	Fs   afero.Fs
	Root string
}

var _ Sink = (*FolderSink)(nil)

// NewFolderSink returns a FolderSink rooted at root on fs.
func NewFolderSink(fs afero.Fs, root string) *FolderSink {
	return &FolderSink{Fs: fs, Root: root}
}

// resolve joins path onto the sink's root and verifies the result does not
// escape Root via ".." segments or symlinks.
func (s *FolderSink) resolve(path string) (string, error) {
	target := filepath.Join(s.Root, filepath.FromSlash(path))
	ok, err := CheckPathIn(s.Root, target)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", &AttemptedFilesystemTraversalError{Path: path}
	}
	return target, nil
}

// Add implements Sink.
func (s *FolderSink) Add(ctx context.Context, path string, header *tar.Header, r io.Reader) error {
	target, err := s.resolve(path)
	if err != nil {
		return err
	}

	switch header.Typeflag {
	case tar.TypeDir:
		return s.Fs.MkdirAll(target, os.FileMode(header.Mode))
	case tar.TypeSymlink:
		// afero.Fs has no portable symlink operation; symlink entries are
		// recorded but not materialized.
		xlog.DebugContext(ctx, "unpack: skipping symlink entry", "path", path, "target", header.Linkname)
		return nil
	case tar.TypeLink:
		xlog.DebugContext(ctx, "unpack: skipping hardlink entry", "path", path, "target", header.Linkname)
		return nil
	default:
		if err := s.Fs.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return err
		}
		f, err := s.Fs.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, os.FileMode(header.Mode))
		if err != nil {
			return err
		}
		defer f.Close()
		_, err = io.Copy(f, r)
		return err
	}
}

// WhiteoutFile implements Sink: it removes the single file or directory
// tree at path.
func (s *FolderSink) WhiteoutFile(ctx context.Context, path string) error {
	target, err := s.resolve(path)
	if err != nil {
		return err
	}
	xlog.DebugContext(ctx, "unpack: whiteout file", "path", path)
	err = s.Fs.RemoveAll(target)
	if err != nil && os.IsNotExist(err) {
		return nil
	}
	return err
}

// WhiteoutFolder implements Sink: it removes every child of the directory
// at path, leaving the directory itself in place.
func (s *FolderSink) WhiteoutFolder(ctx context.Context, path string) error {
	target, err := s.resolve(path)
	if err != nil {
		return err
	}

	entries, err := afero.ReadDir(s.Fs, target)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	xlog.DebugContext(ctx, "unpack: whiteout folder", "path", path, "children", len(entries))
	for _, entry := range entries {
		if err := s.Fs.RemoveAll(filepath.Join(target, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}
