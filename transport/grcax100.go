package transport

import (
	"context"
	"net"
	"strconv"
	"time"

	"github.com/gsradio/csplink/codecerr"
)

// DefaultGrcAX100Port is the GNU Radio socket_pdu TCP bridge's default
// port, matching radio_ax100.py's network.socket_pdu('TCP_SERVER', '',
// '52001', ...).
const DefaultGrcAX100Port = 52001

// GrcAX100 is a raw TCP client against a GNU Radio socket_pdu flowgraph
// endpoint: frames are whole PDUs written and read without any additional
// length-prefix framing (the flowgraph already delimits PDUs at the
// socket layer), unlike TcpTun which adds its own length prefix for a
// generic byte-stream peer.
type GrcAX100 struct {
	name string
	mtu  int
	conn net.Conn
}

// DialGrcAX100 connects to a GNU Radio PDU bridge at host:port (default
// port 52001, default MTU 1024, default 1s dial timeout — the original
// prototype's GrcClient defaults). timeout bounds only the connect; each
// Recv takes its own read timeout.
func DialGrcAX100(name, host string, port, mtu int, timeout time.Duration) (*GrcAX100, error) {
	if port == 0 {
		port = DefaultGrcAX100Port
	}
	if mtu == 0 {
		mtu = 1024
	}
	if timeout == 0 {
		timeout = time.Second
	}
	conn, err := net.DialTimeout("tcp", net.JoinHostPort(host, strconv.Itoa(port)), timeout)
	if err != nil {
		return nil, err
	}
	return &GrcAX100{name: name, mtu: mtu, conn: conn}, nil
}

func (g *GrcAX100) Name() string { return g.name }
func (g *GrcAX100) MTU() int     { return g.mtu }

func (g *GrcAX100) Send(ctx context.Context, frame []byte) error {
	_, err := g.conn.Write(frame)
	return err
}

func (g *GrcAX100) Recv(ctx context.Context, timeout time.Duration) ([]byte, error) {
	if timeout > 0 {
		_ = g.conn.SetReadDeadline(time.Now().Add(timeout))
	}
	buf := make([]byte, g.mtu)
	n, err := g.conn.Read(buf)
	if err != nil {
		if ne, ok := err.(net.Error); ok && ne.Timeout() {
			return nil, codecerr.New("transport.GrcAX100", codecerr.TransportTimeout, "")
		}
		return nil, codecerr.New("transport.GrcAX100", codecerr.TransportClosed, err.Error())
	}
	return buf[:n], nil
}

func (g *GrcAX100) Close() error {
	return g.conn.Close()
}
