package ax100

import (
	"bytes"
	"os"

	"github.com/charmbracelet/log"

	"github.com/gsradio/csplink/ccsds"
	"github.com/gsradio/csplink/codecerr"
	"github.com/gsradio/csplink/crc32c"
	"github.com/gsradio/csplink/golay2412"
	"github.com/gsradio/csplink/gslog"
	"github.com/gsradio/csplink/hmac32"
)

// Codec applies the AX100 link-layer pipeline over a buffer: HMAC and CRC
// trailers, Reed-Solomon FEC, CCSDS scrambling, a Golay-protected length
// field, and an attached sync marker, each independently toggleable via
// Config.
type Codec struct {
	Config Config
	log    *log.Logger
}

// New returns a Codec with the given configuration. Verbose/strict
// behavior gates whether verification failures are logged and whether
// they're surfaced as errors.
func New(cfg Config) *Codec {
	l := gslog.New("ax100", os.Stderr)
	if cfg.Verbose {
		l.SetLevel(log.DebugLevel)
	}
	return &Codec{Config: cfg, log: l}
}

// Encode applies the configured pipeline to x (a serialized CSP packet or
// opaque bytes) and returns the full on-wire AX100 frame.
func (c *Codec) Encode(x []byte) ([]byte, error) {
	cfg := c.Config

	if cfg.hasHMAC() {
		x = hmac32.Append(append([]byte(nil), x...), cfg.HMACKey, x)
	}

	if cfg.CRC {
		x = crc32c.AppendBigEndian(append([]byte(nil), x...), x)
	}

	if cfg.ReedSolomon {
		if len(x) > 223 {
			// Callers must keep pre-RS frames at or under 223 bytes;
			// excess is dropped here rather than silently corrupting the
			// RS block.
			x = x[:223]
		}
		encoded, err := ccsds.RSEncode(x)
		if err != nil {
			return nil, err
		}
		x = encoded
	}

	if cfg.Scrambler {
		s := ccsds.Scrambler{}
		x = s.Transform(x)
	}

	if cfg.LengthField {
		codeword := golay2412.Encode(uint16(len(x)))
		lenBytes := []byte{byte(codeword >> 16), byte(codeword >> 8), byte(codeword)}
		x = append(lenBytes, x...)
	}

	if cfg.Syncword {
		x = append(append([]byte(nil), ASM[:]...), x...)
	}

	out := make([]byte, 0, cfg.Prefill+len(x)+cfg.Tailfill)
	out = append(out, bytes.Repeat([]byte{0xAA}, cfg.Prefill)...)
	out = append(out, x...)
	out = append(out, bytes.Repeat([]byte{0xAA}, cfg.Tailfill)...)
	return out, nil
}

// Decode reverses Encode. Preamble/postamble framing is assumed already
// stripped by the caller (the transport layer delimits frames); Decode
// starts at the syncword (or length field, if no syncword is configured).
func (c *Codec) Decode(data []byte) (*Frame, error) {
	cfg := c.Config
	frame := &Frame{}

	if cfg.Syncword {
		if len(data) < 4 || !bytes.Equal(data[:4], ASM[:]) {
			if cfg.Verbose {
				c.log.Warn("ASM mismatch")
			}
			return c.fail(codecerr.New("ax100.Codec", codecerr.SyncwordMismatch, ""))
		}
		data = data[4:]
	}

	if cfg.LengthField {
		if len(data) < 3 {
			return c.fail(codecerr.New("ax100.Codec", codecerr.ShortFrame, "missing length field"))
		}
		raw := uint32(data[0])<<16 | uint32(data[1])<<8 | uint32(data[2])
		corrected, errCount := golay2412.Decode(raw)
		if errCount == golay2412.Uncorrectable {
			if cfg.Verbose {
				c.log.Warn("golay length field uncorrectable")
			}
			return c.fail(codecerr.New("ax100.Codec", codecerr.GolayUncorrectable, ""))
		}
		frame.GolayErrors = errCount
		pktLen := int(corrected & 0xFFF)
		data = data[3:]
		if pktLen > len(data) {
			return c.fail(codecerr.New("ax100.Codec", codecerr.ShortFrame, "declared length exceeds buffer"))
		}
		data = data[:pktLen]
	}

	if cfg.Scrambler {
		s := ccsds.Scrambler{}
		data = s.Transform(data)
	}

	if cfg.ReedSolomon {
		decoded, corrected, err := ccsds.RSDecode(data)
		if err != nil {
			if cfg.Verbose {
				c.log.Warn("reed-solomon uncorrectable")
			}
			return c.fail(err)
		}
		if cfg.Verbose && corrected != 0 {
			c.log.Debug("reed-solomon corrected errors", "count", corrected)
		}
		frame.ReedSolomonCorrected = corrected
		data = decoded
	}

	if cfg.CRC {
		if len(data) < 4 {
			return c.fail(codecerr.New("ax100.Codec", codecerr.ShortFrame, "missing crc trailer"))
		}
		body, trailer := data[:len(data)-4], data[len(data)-4:]
		if !crc32c.VerifyBigEndian(append(append([]byte(nil), body...), trailer...)) {
			return c.fail(codecerr.New("ax100.Codec", codecerr.CrcMismatch, ""))
		}
		data = body
	}

	if cfg.hasHMAC() {
		if len(data) < hmac32.TagSize {
			return c.fail(codecerr.New("ax100.Codec", codecerr.ShortFrame, "missing hmac trailer"))
		}
		body, trailer := data[:len(data)-hmac32.TagSize], data[len(data)-hmac32.TagSize:]
		if !hmac32.Verify(cfg.HMACKey, append(append([]byte(nil), body...), trailer...)) {
			return c.fail(codecerr.New("ax100.Codec", codecerr.HmacMismatch, ""))
		}
		data = body
	}

	frame.Payload = data
	return frame, nil
}

// fail applies Config.Strict to a verification failure: strict mode
// returns the error and a nil frame; lenient mode logs it and returns nil
// for both, since earlier layers in the pipeline have already discarded
// the data needed to surface a partial frame (unlike csp.Packet, which
// decodes top-down and can still expose payload bytes on a late failure).
func (c *Codec) fail(err error) (*Frame, error) {
	if c.Config.Strict {
		return nil, err
	}
	c.log.Warn("frame rejected", "err", err)
	return nil, nil
}
