package csp

import (
	"crypto/hmac"

	"github.com/gsradio/csplink/codecerr"
	"github.com/gsradio/csplink/crc32c"
	"github.com/gsradio/csplink/hmac32"
	"github.com/gsradio/csplink/xteactr"
)

// CRCEndian selects the byte order of the CRC trailer independent of the
// header's byte order.
type CRCEndian = Endian

// Engines bundles the optional codec engines a Packet may bind. Any may be
// nil; the header's flag bits are authoritative: if a flag is set but the
// matching engine is nil, the trailer passes through unverified on decode
// and is omitted on encode.
type Engines struct {
	HMACKey []byte
	XTEAKey []byte
	// XTEANonce is the out-of-band agreed nonce for this packet; the CSP
	// packet codec does not carry an XTEA nonce on the wire (see
	// xteactr.XORWithKeystream).
	XTEANonce [4]byte
}

func (e *Engines) hasHMAC() bool { return e != nil && e.HMACKey != nil }
func (e *Engines) hasXTEA() bool { return e != nil && e.XTEAKey != nil }

// Packet is a CSP protocol unit: a header plus an application payload,
// with optional XTEA encryption, HMAC authentication, and CRC integrity
// trailers appended in that order on the wire.
type Packet struct {
	Header  HeaderV1
	Payload []byte

	Engines *Engines

	// CRCIncludeHeader controls whether the CRC trailer covers the header
	// bytes in addition to payload+mac. Default false.
	CRCIncludeHeader bool
	CRCEndian        CRCEndian

	// DecodedCRC is the raw 4-byte CRC trailer observed on the most
	// recent Decode call, exposed for inspection regardless of whether
	// verification passed.
	DecodedCRC []byte
}

// Encode serializes the packet: header || payload' || [hmac4] || [crc4],
// where payload' is ciphertext if the XTEA flag is set and an engine is
// bound.
func (p *Packet) Encode() ([]byte, error) {
	header, err := p.Header.Encode()
	if err != nil {
		return nil, err
	}

	payload := p.Payload
	if p.Header.XTEA() && p.Engines.hasXTEA() {
		payload = xteactr.XORWithKeystream(p.Engines.XTEAKey, p.Engines.XTEANonce, payload)
	}

	var mac []byte
	if p.Header.HMAC() && p.Engines.hasHMAC() {
		mac = hmac32.Append(nil, p.Engines.HMACKey, payload)
	}

	var crc []byte
	if p.Header.CRC() {
		var crcInput []byte
		if p.CRCIncludeHeader {
			crcInput = append(append(append([]byte(nil), header...), payload...), mac...)
		} else {
			crcInput = append(append([]byte(nil), payload...), mac...)
		}
		crc = crcTrailer(crcInput, p.CRCEndian)
	}

	out := make([]byte, 0, len(header)+len(payload)+len(mac)+len(crc))
	out = append(out, header...)
	out = append(out, payload...)
	out = append(out, mac...)
	out = append(out, crc...)
	return out, nil
}

func crcTrailer(data []byte, endian CRCEndian) []byte {
	if endian == LittleEndian {
		return crc32c.AppendLittleEndian(nil, data)
	}
	return crc32c.AppendBigEndian(nil, data)
}

// Decode parses a wire-format CSP packet into p, consuming header then
// trailers right-to-left (CRC, then HMAC, then XTEA decryption).
// Verification failures are handled according to mode: in
// codecerr.Strict a typed error is returned and Payload is cleared; in
// codecerr.Lenient the failure is only recorded (via the returned error
// being non-nil still, callers inspecting it choose whether to act) and
// Payload is left populated with the best-effort decoded bytes.
func Decode(data []byte, headerEndian Endian, engines *Engines, crcIncludeHeader bool, crcEndian CRCEndian, mode codecerr.Mode) (*Packet, error) {
	if len(data) < 4 {
		return nil, codecerr.New("csp.Packet", codecerr.ShortFrame, "packet shorter than header")
	}

	header, err := DecodeHeaderV1(data[:4], headerEndian)
	if err != nil {
		return nil, err
	}

	p := &Packet{
		Header:           header,
		Payload:          append([]byte(nil), data[4:]...),
		Engines:          engines,
		CRCIncludeHeader: crcIncludeHeader,
		CRCEndian:        crcEndian,
	}

	if header.CRC() {
		if len(p.Payload) < 4 {
			return failOrSurface(p, mode, codecerr.New("csp.Packet", codecerr.ShortFrame, "missing crc trailer"))
		}
		body, trailer := p.Payload[:len(p.Payload)-4], p.Payload[len(p.Payload)-4:]
		p.DecodedCRC = append([]byte(nil), trailer...)

		var crcInput []byte
		if crcIncludeHeader {
			crcInput = append(append([]byte(nil), data[:4]...), body...)
		} else {
			crcInput = body
		}
		want := crcTrailer(crcInput, crcEndian)
		if !equalBytes(want, trailer) {
			return failOrSurface(p, mode, codecerr.New("csp.Packet", codecerr.CrcMismatch, ""))
		}
		p.Payload = body
	}

	if header.HMAC() && engines.hasHMAC() {
		if len(p.Payload) < hmac32.TagSize {
			return failOrSurface(p, mode, codecerr.New("csp.Packet", codecerr.ShortFrame, "missing hmac trailer"))
		}
		body, trailer := p.Payload[:len(p.Payload)-hmac32.TagSize], p.Payload[len(p.Payload)-hmac32.TagSize:]
		want := hmac32.Tag(engines.HMACKey, body)
		if !hmac.Equal(want[:], trailer) {
			return failOrSurface(p, mode, codecerr.New("csp.Packet", codecerr.HmacMismatch, ""))
		}
		p.Payload = body
	}

	if header.XTEA() && engines.hasXTEA() {
		p.Payload = xteactr.XORWithKeystream(engines.XTEAKey, engines.XTEANonce, p.Payload)
	}

	return p, nil
}

func failOrSurface(p *Packet, mode codecerr.Mode, err error) (*Packet, error) {
	if mode == codecerr.Strict {
		p.Payload = nil
		return nil, err
	}
	// Lenient: bytes are preserved for inspection rather than cleared, so
	// a caller doing telemetry capture can still see what arrived even
	// when verification failed.
	return p, err
}

func equalBytes(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
