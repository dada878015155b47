// Command csplink-tool inspects and builds raw CSP packets from the
// command line, the way gen_packets.go lets a developer synthesize AX.25
// frames without wiring up a full radio stack.
package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/gsradio/csplink/codecerr"
	"github.com/gsradio/csplink/csp"
)

func main() {
	mode := pflag.StringP("mode", "m", "decode", "decode or encode")
	src := pflag.Uint8P("src", "s", 0, "source address (encode)")
	dst := pflag.Uint8P("dst", "d", 0, "destination address (encode)")
	dport := pflag.Uint8P("dport", "D", 0, "destination port (encode)")
	sport := pflag.Uint8P("sport", "S", 0, "source port (encode)")
	withCRC := pflag.Bool("crc", false, "set the CRC flag (encode)")
	little := pflag.Bool("little-endian", false, "use little-endian header/CRC encoding")
	help := pflag.BoolP("help", "h", false, "display help text")

	pflag.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: csplink-tool [options] <hex-payload-or-packet>")
		pflag.PrintDefaults()
	}
	pflag.Parse()

	if *help || pflag.NArg() != 1 {
		pflag.Usage()
		if !*help {
			os.Exit(2)
		}
		return
	}

	endian := csp.BigEndian
	if *little {
		endian = csp.LittleEndian
	}

	raw, err := hex.DecodeString(pflag.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, "invalid hex input:", err)
		os.Exit(1)
	}

	switch *mode {
	case "decode":
		runDecode(raw, endian)
	case "encode":
		runEncode(raw, endian, *src, *dst, *dport, *sport, *withCRC)
	default:
		fmt.Fprintln(os.Stderr, "unknown mode:", *mode)
		os.Exit(2)
	}
}

func runDecode(raw []byte, endian csp.Endian) {
	pkt, err := csp.Decode(raw, endian, nil, true, endian, codecerr.Lenient)
	if pkt == nil {
		fmt.Fprintln(os.Stderr, "decode failed:", err)
		os.Exit(1)
	}
	fmt.Printf("priority=%d src=%d dst=%d dport=%d sport=%d flags=%#02x\n",
		pkt.Header.Priority, pkt.Header.Src, pkt.Header.Dst, pkt.Header.DPort, pkt.Header.SPort, pkt.Header.Flags)
	fmt.Printf("payload=%s\n", hex.EncodeToString(pkt.Payload))
	if err != nil {
		fmt.Fprintln(os.Stderr, "warning:", err)
	}
}

func runEncode(payload []byte, endian csp.Endian, src, dst, dport, sport uint8, withCRC bool) {
	h := csp.HeaderV1{Src: src, Dst: dst, DPort: dport, SPort: sport, Endian: endian}
	h.SetCRC(withCRC)
	pkt := &csp.Packet{Header: h, Payload: payload, CRCEndian: endian}

	out, err := pkt.Encode()
	if err != nil {
		fmt.Fprintln(os.Stderr, "encode failed:", err)
		os.Exit(1)
	}
	fmt.Println(hex.EncodeToString(out))
}
