package remote_test

import (
	"bytes"
	"io"

	digest "github.com/opencontainers/go-digest"
)

func digestOf(data []byte) digest.Digest {
	return digest.FromBytes(data)
}

func byteReader(data []byte) io.Reader {
	return bytes.NewReader(data)
}
