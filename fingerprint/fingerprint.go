// Package fingerprint computes the content identity of a font descriptor.
//
// The fingerprint is a SHA-1 digest over the descriptor's path (UTF-8) or
// raw font bytes, followed by the face index as a 4-byte little-endian
// integer. Two descriptors naming the same face always produce the same
// fingerprint.
package fingerprint

import (
	"crypto/sha1" //nolint:gosec // content identity, not a security boundary
	"encoding/binary"
	"encoding/hex"

	"github.com/gogpu/fonts/source"
)

// Size is the length of a fingerprint in bytes.
const Size = sha1.Size

// Fingerprint is a 20-byte content digest of a font descriptor.
type Fingerprint [Size]byte

// Of returns the fingerprint of d.
func Of(d source.Descriptor) Fingerprint {
	h := sha1.New() //nolint:gosec // see import
	if d.IsPath() {
		h.Write([]byte(d.Path))
	} else {
		h.Write(d.Data)
	}

	var index [4]byte
	binary.LittleEndian.PutUint32(index[:], d.Index)
	h.Write(index[:])

	var fp Fingerprint
	h.Sum(fp[:0])
	return fp
}

// String returns the fingerprint as lower-case hex.
func (fp Fingerprint) String() string {
	return hex.EncodeToString(fp[:])
}

// Short returns the first 8 hex digits, for logs.
func (fp Fingerprint) Short() string {
	return fp.String()[:8]
}
