package unpack_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wuxler/imgpull/pkg/unpack"
)

func TestWhiteoutPath(t *testing.T) {
	path, ok := unpack.WhiteoutPath("a/b/.wh.c")
	assert.True(t, ok)
	assert.Equal(t, "a/b/c", path)

	_, ok = unpack.WhiteoutPath("a/b/c")
	assert.False(t, ok)

	// The opaque marker is handled separately by IsOpaqueWhiteout, never by
	// WhiteoutPath.
	_, ok = unpack.WhiteoutPath("a/b/.wh..wh..opq")
	assert.False(t, ok)
}

func TestIsOpaqueWhiteout(t *testing.T) {
	assert.True(t, unpack.IsOpaqueWhiteout("a/b/.wh..wh..opq"))
	assert.False(t, unpack.IsOpaqueWhiteout("a/b/.wh.c"))
	assert.False(t, unpack.IsOpaqueWhiteout("a/b/c"))
}
