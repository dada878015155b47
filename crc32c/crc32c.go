// Package crc32c implements the Castagnoli CRC-32 variant used as the
// trailing integrity check on both the CSP packet codec and the AX100 link
// codec: polynomial 0x1EDC6F41, initial value and final XOR both
// 0xFFFFFFFF, reflected input and output.
package crc32c

import (
	"encoding/binary"
	"hash/crc32"
)

// table is built once from the Castagnoli polynomial. hash/crc32's
// Castagnoli table already implements the reflected/init/final-xor
// convention this component needs; no other profile is supported.
var table = crc32.MakeTable(crc32.Castagnoli)

// Checksum returns the CRC-32C of data.
func Checksum(data []byte) uint32 {
	return crc32.Checksum(data, table)
}

// AppendBigEndian appends the big-endian CRC-32C of data to dst and
// returns the extended slice. This is the default trailer byte order for
// both csp.Packet and ax100.Codec.
func AppendBigEndian(dst, data []byte) []byte {
	sum := Checksum(data)
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], sum)
	return append(dst, buf[:]...)
}

// AppendLittleEndian appends the little-endian CRC-32C of data to dst.
func AppendLittleEndian(dst, data []byte) []byte {
	sum := Checksum(data)
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], sum)
	return append(dst, buf[:]...)
}

// VerifyBigEndian reports whether the last four bytes of frame, read
// big-endian, equal the CRC-32C of the bytes preceding them.
func VerifyBigEndian(frame []byte) bool {
	if len(frame) < 4 {
		return false
	}
	body, trailer := frame[:len(frame)-4], frame[len(frame)-4:]
	return binary.BigEndian.Uint32(trailer) == Checksum(body)
}

// VerifyLittleEndian reports whether the last four bytes of frame, read
// little-endian, equal the CRC-32C of the bytes preceding them.
func VerifyLittleEndian(frame []byte) bool {
	if len(frame) < 4 {
		return false
	}
	body, trailer := frame[:len(frame)-4], frame[len(frame)-4:]
	return binary.LittleEndian.Uint32(trailer) == Checksum(body)
}
