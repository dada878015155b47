// Command csplink-gw bridges an AX100 radio link (TCP, UDP, serial KISS, or
// a GNU Radio PDU socket) to decoded CSP packets on stdout, and encodes
// lines of hex-encoded payload from stdin back out over the link. It plays
// a thin, scriptable on-ramp for a link layer, built as a starting point
// for a real application rather than an application itself.
package main

import (
	"bufio"
	"context"
	"encoding/hex"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/gsradio/csplink/ax100"
	"github.com/gsradio/csplink/codecerr"
	"github.com/gsradio/csplink/config"
	"github.com/gsradio/csplink/csp"
	"github.com/gsradio/csplink/gslog"
	"github.com/gsradio/csplink/transport"
)

func main() {
	configPath := pflag.StringP("config", "c", "", "path to csplink.yaml (default: search standard locations)")
	help := pflag.BoolP("help", "h", false, "display help text")

	// configPath has to be known before the rest of the flag set is bound
	// (it picks where the YAML defaults those flags will override come
	// from), so it's parsed once up front and again after BindFlags wires
	// in the remaining station-derived flags. The first pass skips the
	// station flags it does not know yet instead of exiting on them.
	pflag.CommandLine.ParseErrorsWhitelist.UnknownFlags = true
	pflag.Parse()
	pflag.CommandLine.ParseErrorsWhitelist.UnknownFlags = false
	if *help {
		pflag.Usage()
		return
	}

	st, loadErr := config.Load(*configPath)
	if st == nil {
		st = &config.Station{}
	}
	st.BindFlags(pflag.CommandLine)
	pflag.Parse()

	if loadErr != nil {
		gslog.Default.Warn("no station config loaded, using flag/defaults only", "err", loadErr)
	}

	iface, err := openInterface(st)
	if err != nil {
		gslog.Default.Fatal("opening link interface", "err", err)
	}
	defer iface.Close()

	ax100cfg, err := st.AX100Config()
	if err != nil {
		gslog.Default.Fatal("loading ax100 config", "err", err)
	}
	codec := ax100.New(ax100cfg)

	engines, err := st.CSPEngines()
	if err != nil {
		gslog.Default.Fatal("loading csp engines", "err", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	go transmitLoop(ctx, iface, codec)
	receiveLoop(ctx, iface, codec, engines, st)
}

func openInterface(st *config.Station) (transport.Interface, error) {
	mtu := st.Link.MTU
	if mtu == 0 {
		mtu = 256
	}
	switch st.Link.Interface {
	case "", "loopback":
		return transport.NewLoopback("gw", mtu, 0), nil
	case "tcp":
		return transport.DialTCP("gw", st.Link.Address, mtu)
	case "udp":
		return transport.NewUdpTun("gw", st.Link.Address, st.Link.Address, mtu)
	case "serial":
		return transport.OpenSerialKISS("gw", st.Link.Address, 9600, mtu)
	case "grc":
		return transport.DialGrcAX100("gw", st.Link.Address, 0, mtu, time.Second)
	default:
		return nil, fmt.Errorf("csplink-gw: unknown interface %q", st.Link.Interface)
	}
}

// transmitLoop reads hex-encoded CSP frames, one per line, from stdin and
// pushes them out over the link after AX100 framing.
func transmitLoop(ctx context.Context, iface transport.Interface, codec *ax100.Codec) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		raw, err := hex.DecodeString(scanner.Text())
		if err != nil {
			gslog.Default.Warn("invalid hex on stdin", "err", err)
			continue
		}
		frame, err := codec.Encode(raw)
		if err != nil {
			gslog.Default.Warn("ax100 encode failed", "err", err)
			continue
		}
		if err := iface.Send(ctx, frame); err != nil {
			gslog.Default.Error("link send failed", "err", err)
		}
	}
}

// receiveLoop pulls link frames, decodes the AX100 framing and the CSP
// packet inside it, and prints a one-line summary per received packet.
func receiveLoop(ctx context.Context, iface transport.Interface, codec *ax100.Codec, engines *csp.Engines, st *config.Station) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		raw, err := iface.Recv(ctx, time.Second)
		if err != nil {
			if codecerr.Is(err, codecerr.TransportTimeout) {
				continue
			}
			gslog.Default.Error("link recv failed", "err", err)
			return
		}

		link, err := codec.Decode(raw)
		if err != nil {
			gslog.Default.Warn("ax100 decode failed", "err", err)
			continue
		}
		if link == nil {
			continue
		}

		pkt, err := csp.Decode(link.Payload, st.Endian(), engines, true, st.Endian(), codecerr.Lenient)
		if err != nil {
			gslog.Default.Warn("csp decode failed", "err", err)
		}
		if pkt == nil {
			continue
		}
		if pkt.Header.Src == st.CSP.MyAddress {
			// Our own uplinked traffic echoing back down the link; drop it
			// rather than forwarding or printing a packet we sent ourselves.
			continue
		}
		fmt.Printf("src=%d dst=%d dport=%d sport=%d payload=%s\n",
			pkt.Header.Src, pkt.Header.Dst, pkt.Header.DPort, pkt.Header.SPort, hex.EncodeToString(pkt.Payload))
	}
}
