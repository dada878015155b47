// Package ax100 implements the GomSpace AX100 radio's link-layer framing:
// idle preamble/postamble, attached sync marker, Golay-coded length field,
// CCSDS scrambling, Reed-Solomon FEC, and optional HMAC/CRC trailers.
package ax100

// ASM is the AX100's 32-bit Attached Sync Marker.
var ASM = [4]byte{0x93, 0x0B, 0x51, 0xDE}

// Config holds the AX100 codec's independent per-layer toggles. Both
// encode and decode of a given frame must use identical configuration.
type Config struct {
	HMACKey     []byte // nil disables the HMAC trailer
	CRC         bool
	ReedSolomon bool
	Scrambler   bool
	LengthField bool
	Syncword    bool
	Prefill     int
	Tailfill    int
	Strict      bool
	Verbose     bool
}

func (c Config) hasHMAC() bool { return c.HMACKey != nil }
