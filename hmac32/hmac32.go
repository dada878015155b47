// Package hmac32 implements the truncated HMAC-SHA1 keyed integrity check
// used as the CSP packet and AX100 link codec's authentication trailer.
// The key is derived from an arbitrary-length passphrase by taking the
// first 16 bytes of its SHA-1 digest; the resulting tag is the first four
// bytes of the standard HMAC-SHA1 output over that derived key.
package hmac32

import (
	"crypto/hmac"
	"crypto/sha1" //nolint:gosec // required for wire compatibility, not used for new secrets
	"encoding/binary"
)

// TagSize is the width of the truncated authentication tag in bytes.
const TagSize = 4

// deriveKey reduces an arbitrary-length key to the 16-byte form the
// authentication tag is keyed with.
func deriveKey(key []byte) []byte {
	sum := sha1.Sum(key) //nolint:gosec
	return sum[:16]
}

// Tag returns the 4-byte truncated HMAC-SHA1 tag of data under key.
func Tag(key, data []byte) [TagSize]byte {
	mac := hmac.New(sha1.New, deriveKey(key))
	mac.Write(data)
	full := mac.Sum(nil)
	var tag [TagSize]byte
	copy(tag[:], full[:TagSize])
	return tag
}

// Append appends the HMAC tag of data under key to dst.
func Append(dst, key, data []byte) []byte {
	tag := Tag(key, data)
	return append(dst, tag[:]...)
}

// Verify reports whether the last TagSize bytes of frame equal the tag
// computed over the bytes preceding them.
func Verify(key, frame []byte) bool {
	if len(frame) < TagSize {
		return false
	}
	body, trailer := frame[:len(frame)-TagSize], frame[len(frame)-TagSize:]
	want := Tag(key, body)
	return hmac.Equal(want[:], trailer)
}

// Uint32 reinterprets a tag as a single big-endian integer, for callers
// that want to splice it into a larger fixed-width wire struct rather than
// appending raw bytes.
func Uint32(tag [TagSize]byte) uint32 {
	return binary.BigEndian.Uint32(tag[:])
}
