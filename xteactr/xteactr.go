// Package xteactr implements the XTEA block cipher in CTR mode, used as
// the CSP packet codec's optional payload confidentiality layer. XTEA
// provides no authentication of its own; callers are expected to layer an
// outer HMAC (hmac32) when integrity matters.
package xteactr

import (
	"crypto/cipher"
	"crypto/sha1" //nolint:gosec // key derivation only, wire-format requirement
	"encoding/binary"
)

const (
	blockSize = 8  // XTEA operates on 64-bit blocks
	delta     = 0x9E3779B9
	numRounds = 32 // 32 cycles / 64 Feistel rounds, per the reference implementation
)

// xteaBlock implements cipher.Block, the same interface crypto/aes and
// crypto/des satisfy, so XTEA can be driven by the standard library's
// cipher.NewCTR instead of a hand-rolled counter loop.
type xteaBlock struct {
	k [4]uint32
}

// deriveSubkeys reduces an arbitrary-length key to the four big-endian
// 32-bit subkeys XTEA's block routine needs, taking the first 16 bytes of
// SHA-1(key) the same way hmac32 derives its key.
func deriveSubkeys(key []byte) [4]uint32 {
	sum := sha1.Sum(key) //nolint:gosec
	var k [4]uint32
	for i := range k {
		k[i] = binary.BigEndian.Uint32(sum[i*4 : i*4+4])
	}
	return k
}

// newXTEABlock derives the subkeys from key and returns a cipher.Block.
func newXTEABlock(key []byte) cipher.Block {
	return &xteaBlock{k: deriveSubkeys(key)}
}

func (b *xteaBlock) BlockSize() int { return blockSize }

func (b *xteaBlock) Encrypt(dst, src []byte) {
	v0 := binary.BigEndian.Uint32(src[0:4])
	v1 := binary.BigEndian.Uint32(src[4:8])
	var sum uint32
	for i := 0; i < numRounds; i++ {
		v0 += (((v1 << 4) ^ (v1 >> 5)) + v1) ^ (sum + b.k[sum&3])
		sum += delta
		v1 += (((v0 << 4) ^ (v0 >> 5)) + v0) ^ (sum + b.k[(sum>>11)&3])
	}
	binary.BigEndian.PutUint32(dst[0:4], v0)
	binary.BigEndian.PutUint32(dst[4:8], v1)
}

func (b *xteaBlock) Decrypt(dst, src []byte) {
	v0 := binary.BigEndian.Uint32(src[0:4])
	v1 := binary.BigEndian.Uint32(src[4:8])
	sum := uint32((delta * numRounds) & 0xFFFFFFFF)
	for i := 0; i < numRounds; i++ {
		v1 -= (((v0 << 4) ^ (v0 >> 5)) + v0) ^ (sum + b.k[(sum>>11)&3])
		sum -= delta
		v0 -= (((v1 << 4) ^ (v1 >> 5)) + v1) ^ (sum + b.k[sum&3])
	}
	binary.BigEndian.PutUint32(dst[0:4], v0)
	binary.BigEndian.PutUint32(dst[4:8], v1)
}

// nonceBlock expands a 4-byte nonce into the 8-byte initial counter block
// cipher.NewCTR takes as its IV, zero-extending the low half so the same
// nonce always starts the same keystream position.
func nonceBlock(nonce [4]byte) [blockSize]byte {
	var block [blockSize]byte
	copy(block[:4], nonce[:])
	return block
}

// XORWithKeystream encrypts or decrypts data (CTR mode is symmetric) under
// key and the given 4-byte nonce. The two ends of a link must agree on the
// nonce out of band (e.g. a packet sequence counter); it is not carried on
// the wire by this package, since the CSP packet codec's ciphertext length
// must equal its plaintext length.
func XORWithKeystream(key []byte, nonce [4]byte, data []byte) []byte {
	block := newXTEABlock(key)
	iv := nonceBlock(nonce)
	stream := cipher.NewCTR(block, iv[:])
	out := make([]byte, len(data))
	stream.XORKeyStream(out, data)
	return out
}
