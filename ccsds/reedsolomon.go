package ccsds

import "github.com/gsradio/csplink/codecerr"

// The Galois-field arithmetic below is the classic Phil Karn / KA9Q RS
// codec (the same algorithm the FX.25 correlation-tag encoder uses for its
// RS(255,239)/RS(255,223)/RS(255,191) profiles), parameterized once for
// the CCSDS RS(255,223) profile this link uses: symbol size 8 bits,
// field generator polynomial 0x11D, first consecutive root 1, primitive
// element 1, 32 roots (parity bytes). It is deliberately unexported —
// callers only ever see RSEncode/RSDecode, matching the "opaque FEC
// service" contract: no caller constructs or inspects a codec value.

const (
	rsSymSize = 8
	rsGFPoly  = 0x11d
	rsFCR     = 1
	rsPrim    = 1
	rsNRoots  = 32
	rsNN      = (1 << rsSymSize) - 1 // 255
	rsKK      = rsNN - rsNRoots      // 223

	// MaxCorrectable is the largest number of symbol errors this profile
	// is guaranteed to locate and correct. Reed-Solomon's bounded-distance
	// decoding radius for 32 parity bytes is floor(32/2) = 16 symbols.
	MaxCorrectable = rsNRoots / 2
)

type rsCodec struct {
	alphaTo [rsNN + 1]byte
	indexOf [rsNN + 1]byte
	genPoly [rsNRoots + 1]byte
	iprim   int
}

func modnn(x int) int {
	for x >= rsNN {
		x -= rsNN
		x = (x >> rsSymSize) + (x & rsNN)
	}
	return x
}

// buildCodec initializes the GF(256) log tables and generator polynomial,
// mirroring init_rs_char.
func buildCodec() *rsCodec {
	c := &rsCodec{}

	c.indexOf[0] = rsNN // log(0) treated as -infinity
	c.alphaTo[rsNN] = 0
	sr := 1
	for i := 0; i < rsNN; i++ {
		c.indexOf[sr] = byte(i)
		c.alphaTo[i] = byte(sr)
		sr <<= 1
		if sr&(1<<rsSymSize) != 0 {
			sr ^= rsGFPoly
		}
		sr &= rsNN
	}
	if sr != 1 {
		panic("ccsds: field generator polynomial is not primitive")
	}

	iprim := 1
	for (iprim % rsPrim) != 0 {
		iprim += rsNN
	}
	c.iprim = iprim / rsPrim

	c.genPoly[0] = 1
	root := rsFCR * rsPrim
	for i := 0; i < rsNRoots; i, root = i+1, root+rsPrim {
		c.genPoly[i+1] = 1
		for j := i; j > 0; j-- {
			if c.genPoly[j] != 0 {
				c.genPoly[j] = c.genPoly[j-1] ^ c.alphaTo[modnn(int(c.indexOf[c.genPoly[j]])+root)]
			} else {
				c.genPoly[j] = c.genPoly[j-1]
			}
		}
		c.genPoly[0] = c.alphaTo[modnn(int(c.indexOf[c.genPoly[0]])+root)]
	}
	for i := range c.genPoly {
		c.genPoly[i] = c.indexOf[c.genPoly[i]]
	}
	return c
}

var codec223 = buildCodec()

// encode computes the rsNRoots parity bytes for a rsKK-byte data block,
// mirroring encode_rs_char's LFSR.
func (c *rsCodec) encode(data []byte) [rsNRoots]byte {
	var parity [rsNRoots]byte
	for i := 0; i < rsKK; i++ {
		feedback := c.indexOf[data[i]^parity[0]]
		if int(feedback) != rsNN {
			for j := 1; j < rsNRoots; j++ {
				parity[j] ^= c.alphaTo[modnn(int(feedback)+int(c.genPoly[rsNRoots-j]))]
			}
		}
		copy(parity[:], parity[1:])
		if int(feedback) != rsNN {
			parity[rsNRoots-1] = c.alphaTo[modnn(int(feedback)+int(c.genPoly[0]))]
		} else {
			parity[rsNRoots-1] = 0
		}
	}
	return parity
}

// decode corrects codeword (rsNN bytes, data followed by parity) in place
// and returns the number of corrected symbol errors, or -1 if the block is
// uncorrectable. This is a direct translation of DECODE_RS (syndrome
// formation, Berlekamp-Massey, Chien search, Forney's algorithm) with no
// erasure positions, since this link has no out-of-band indication of
// which symbols are suspect.
func (c *rsCodec) decode(codeword []byte) int {
	var syn [rsNRoots]byte
	synError := byte(0)
	for i := 0; i < rsNRoots; i++ {
		syn[i] = codeword[0]
	}
	for j := 1; j < rsNN; j++ {
		for i := 0; i < rsNRoots; i++ {
			if syn[i] == 0 {
				syn[i] = codeword[j]
			} else {
				syn[i] = codeword[j] ^ c.alphaTo[modnn(int(c.indexOf[syn[i]])+(rsFCR+i)*rsPrim)]
			}
		}
	}
	for i := 0; i < rsNRoots; i++ {
		synError |= syn[i]
		syn[i] = c.indexOf[syn[i]]
	}
	if synError == 0 {
		return 0
	}

	var lambda [rsNRoots + 1]byte
	lambda[0] = 1

	var b [rsNRoots + 1]byte
	for i := range b {
		b[i] = c.indexOf[lambda[i]]
	}

	var t [rsNRoots + 1]byte
	const a0 = rsNN // index-form representation of zero
	r, el := 0, 0
	for {
		r++
		if r > rsNRoots {
			break
		}
		discrR := byte(0)
		for i := 0; i < r; i++ {
			if lambda[i] != 0 && int(syn[r-i-1]) != a0 {
				discrR ^= c.alphaTo[modnn(int(c.indexOf[lambda[i]])+int(syn[r-i-1]))]
			}
		}
		discrRIdx := int(c.indexOf[discrR])
		if discrRIdx == a0 {
			copy(b[1:], b[:])
			b[0] = a0
		} else {
			t[0] = lambda[0]
			for i := 0; i < rsNRoots; i++ {
				if b[i] != a0 {
					t[i+1] = lambda[i+1] ^ c.alphaTo[modnn(discrRIdx+int(b[i]))]
				} else {
					t[i+1] = lambda[i+1]
				}
			}
			if 2*el <= r-1 {
				el = r - el
				for i := 0; i <= rsNRoots; i++ {
					if lambda[i] == 0 {
						b[i] = a0
					} else {
						b[i] = byte(modnn(int(c.indexOf[lambda[i]]) - discrRIdx + rsNN))
					}
				}
			} else {
				copy(b[1:], b[:])
				b[0] = a0
			}
			copy(lambda[:], t[:rsNRoots+1])
		}
	}

	degLambda := 0
	for i := 0; i < rsNRoots+1; i++ {
		lambda[i] = c.indexOf[lambda[i]]
		if int(lambda[i]) != a0 {
			degLambda = i
		}
	}

	var reg [rsNRoots + 1]byte
	copy(reg[1:], lambda[1:rsNRoots+1])
	var root, loc [rsNRoots]int
	count := 0
	for i, k := 1, c.iprim-1; i <= rsNN; i, k = i+1, modnn(k+c.iprim) {
		q := byte(1)
		for j := degLambda; j > 0; j-- {
			if int(reg[j]) != a0 {
				reg[j] = byte(modnn(int(reg[j]) + j))
				q ^= c.alphaTo[reg[j]]
			}
		}
		if q != 0 {
			continue
		}
		root[count] = i
		loc[count] = k
		count++
		if count == degLambda {
			break
		}
	}
	if degLambda != count {
		return -1
	}

	var omega [rsNRoots + 1]byte
	degOmega := 0
	for i := 0; i < rsNRoots; i++ {
		tmp := byte(0)
		j := degLambda
		if i < j {
			j = i
		}
		for ; j >= 0; j-- {
			if int(syn[i-j]) != a0 && int(lambda[j]) != a0 {
				tmp ^= c.alphaTo[modnn(int(syn[i-j])+int(lambda[j]))]
			}
		}
		if tmp != 0 {
			degOmega = i
		}
		omega[i] = c.indexOf[tmp]
	}
	omega[rsNRoots] = a0

	for j := count - 1; j >= 0; j-- {
		num1 := byte(0)
		for i := degOmega; i >= 0; i-- {
			if int(omega[i]) != a0 {
				num1 ^= c.alphaTo[modnn(int(omega[i])+i*root[j])]
			}
		}
		num2 := c.alphaTo[modnn(root[j]*(rsFCR-1)+rsNN)]
		den := byte(0)
		start := degLambda
		if rsNRoots-1 < start {
			start = rsNRoots - 1
		}
		start &^= 1
		for i := start; i >= 0; i -= 2 {
			if int(lambda[i+1]) != a0 {
				den ^= c.alphaTo[modnn(int(lambda[i+1])+i*root[j])]
			}
		}
		if den == 0 {
			return -1
		}
		if num1 != 0 {
			codeword[loc[j]] ^= c.alphaTo[modnn(int(c.indexOf[num1])+int(c.indexOf[num2])+rsNN-int(c.indexOf[den]))]
		}
	}
	return count
}

// RSEncode computes the 32-byte CCSDS RS(255,223) parity for data, applying
// the shortening rule from the AX100 link codec: inputs shorter than 223
// bytes are conceptually left-padded with zeros before encoding, and the
// returned codeword omits that padding — callers get back len(data)+32
// bytes, never a full 255-byte block, unless len(data) is already 223.
// Inputs longer than 223 bytes are an error: the AX100 codec is
// responsible for pre-truncating its frame body before calling this.
func RSEncode(data []byte) ([]byte, error) {
	if len(data) > rsKK {
		return nil, codecerr.New("ccsds.RSEncode", codecerr.FieldOutOfRange, "block exceeds 223 bytes")
	}
	padded := make([]byte, rsKK)
	padding := rsKK - len(data)
	copy(padded[padding:], data)

	parity := codec223.encode(padded)

	out := make([]byte, 0, len(data)+rsNRoots)
	out = append(out, data...)
	out = append(out, parity[:]...)
	return out, nil
}

// RSDecode reverses RSEncode: given a shortened RS(255,223) codeword (data
// followed by 32 parity bytes, with the same zero-padding rule applied
// before decoding), it corrects up to MaxCorrectable symbol errors in
// place and returns the corrected data bytes (parity stripped) along with
// the number of corrections made. An error beyond the bounded-distance
// radius of the code is reported as codecerr.ReedSolomonUncorrectable.
func RSDecode(codeword []byte) ([]byte, int, error) {
	if len(codeword) <= rsNRoots || len(codeword) > rsNN {
		return nil, 0, codecerr.New("ccsds.RSDecode", codecerr.ShortFrame, "codeword length out of range for RS(255,223)")
	}

	padded := make([]byte, rsNN)
	padding := rsNN - len(codeword)
	copy(padded[padding:], codeword)

	corrected := codec223.decode(padded)
	if corrected < 0 {
		return nil, 0, codecerr.New("ccsds.RSDecode", codecerr.ReedSolomonUncorrectable, "")
	}

	dataLen := len(codeword) - rsNRoots
	data := make([]byte, dataLen)
	copy(data, padded[padding:padding+dataLen])
	return data, corrected, nil
}
