// Package csp implements the CSP (Cubesat Space Protocol) v1 header and
// packet codec: a 32-bit packed header followed by an optionally
// encrypted, authenticated, and checksummed payload.
package csp

import (
	"encoding/binary"

	"github.com/gsradio/csplink/codecerr"
)

// Priority is the two-bit CSP priority field.
type Priority uint8

const (
	PriorityCritical Priority = 0
	PriorityHigh     Priority = 1
	PriorityNorm     Priority = 2
	PriorityLow      Priority = 3
)

// Flag bits within HeaderV1.Flags, matching the wire layout bits [3:0].
const (
	FlagHMAC uint8 = 1 << 3
	FlagXTEA uint8 = 1 << 2
	FlagRDP  uint8 = 1 << 1
	FlagCRC  uint8 = 1 << 0
)

// Endian selects the byte order used to pack/unpack a HeaderV1.
type Endian int

const (
	BigEndian Endian = iota
	LittleEndian
)

// HeaderV1 is the CSP v1 protocol header: a single 32-bit packed
// descriptor (MSB to LSB: priority 2b, src 5b, dst 5b, dport 6b, sport 6b,
// reserved 4b, four 1-bit flags).
type HeaderV1 struct {
	Priority Priority
	Src      uint8
	Dst      uint8
	DPort    uint8
	SPort    uint8
	Flags    uint8
	Endian   Endian
}

func (h HeaderV1) HMAC() bool { return h.Flags&FlagHMAC != 0 }
func (h HeaderV1) XTEA() bool { return h.Flags&FlagXTEA != 0 }
func (h HeaderV1) RDP() bool  { return h.Flags&FlagRDP != 0 }
func (h HeaderV1) CRC() bool  { return h.Flags&FlagCRC != 0 }

func (h *HeaderV1) SetHMAC(v bool) { h.setFlag(FlagHMAC, v) }
func (h *HeaderV1) SetXTEA(v bool) { h.setFlag(FlagXTEA, v) }
func (h *HeaderV1) SetRDP(v bool)  { h.setFlag(FlagRDP, v) }
func (h *HeaderV1) SetCRC(v bool)  { h.setFlag(FlagCRC, v) }

func (h *HeaderV1) setFlag(bit uint8, v bool) {
	if v {
		h.Flags |= bit
	} else {
		h.Flags &^= bit
	}
}

// Validate reports a *codecerr.Error if any field exceeds its wire width.
func (h HeaderV1) Validate() error {
	switch {
	case h.Priority > 3:
		return codecerr.New("csp.HeaderV1", codecerr.FieldOutOfRange, "priority must be 0..3")
	case h.Src > 0x1F:
		return codecerr.New("csp.HeaderV1", codecerr.FieldOutOfRange, "src must be 0..31")
	case h.Dst > 0x1F:
		return codecerr.New("csp.HeaderV1", codecerr.FieldOutOfRange, "dst must be 0..31")
	case h.DPort > 0x3F:
		return codecerr.New("csp.HeaderV1", codecerr.FieldOutOfRange, "dport must be 0..63")
	case h.SPort > 0x3F:
		return codecerr.New("csp.HeaderV1", codecerr.FieldOutOfRange, "sport must be 0..63")
	}
	return nil
}

// Encode serializes the header into its 4-byte wire form.
func (h HeaderV1) Encode() ([]byte, error) {
	if err := h.Validate(); err != nil {
		return nil, err
	}
	v := uint32(h.Priority&0x3)<<30 |
		uint32(h.Src&0x1F)<<25 |
		uint32(h.Dst&0x1F)<<20 |
		uint32(h.DPort&0x3F)<<14 |
		uint32(h.SPort&0x3F)<<8 |
		uint32(h.Flags)

	buf := make([]byte, 4)
	if h.Endian == LittleEndian {
		binary.LittleEndian.PutUint32(buf, v)
	} else {
		binary.BigEndian.PutUint32(buf, v)
	}
	return buf, nil
}

// DecodeHeaderV1 parses a 4-byte CSP v1 header in the given byte order.
func DecodeHeaderV1(b []byte, endian Endian) (HeaderV1, error) {
	if len(b) != 4 {
		return HeaderV1{}, codecerr.New("csp.HeaderV1", codecerr.ShortFrame, "header must be exactly 4 bytes")
	}
	var v uint32
	if endian == LittleEndian {
		v = binary.LittleEndian.Uint32(b)
	} else {
		v = binary.BigEndian.Uint32(b)
	}
	return HeaderV1{
		Priority: Priority((v >> 30) & 0x3),
		Src:      uint8((v >> 25) & 0x1F),
		Dst:      uint8((v >> 20) & 0x1F),
		DPort:    uint8((v >> 14) & 0x3F),
		SPort:    uint8((v >> 8) & 0x3F),
		Flags:    uint8(v & 0xFF),
		Endian:   endian,
	}, nil
}
