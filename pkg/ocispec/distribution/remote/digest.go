package remote

import (
	"io"

	digest "github.com/opencontainers/go-digest"
)

// VerifyingReader wraps r so that, once fully drained, its bytes are
// checked against want. Call Verified after the last Read returns io.EOF (or
// after the consumer is done reading) to get the verification result.
type VerifyingReader struct {
	r   io.Reader
	want digest.Digest
	v   digest.Verifier
}

// NewVerifyingReader returns a reader over r that hashes bytes as they are
// read, to be checked against want once fully consumed.
func NewVerifyingReader(r io.Reader, want digest.Digest) *VerifyingReader {
	return &VerifyingReader{r: r, want: want, v: want.Verifier()}
}

func (vr *VerifyingReader) Read(p []byte) (int, error) {
	n, err := vr.r.Read(p)
	if n > 0 {
		vr.v.Write(p[:n])
	}
	return n, err
}

// Verified reports whether the bytes read so far hash to the expected
// digest. Only meaningful after the underlying reader has been fully
// drained.
func (vr *VerifyingReader) Verified() bool {
	return vr.v.Verified()
}

// Want returns the digest this reader is verifying against.
func (vr *VerifyingReader) Want() digest.Digest {
	return vr.want
}
