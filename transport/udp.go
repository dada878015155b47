package transport

import (
	"context"
	"net"
	"time"

	"github.com/gsradio/csplink/codecerr"
)

// UdpTun is a bidirectional UDP tunnel: frames are sent as whole datagrams
// (no length prefix needed, UDP preserves message boundaries) to a fixed
// remote peer, and received from a local listen socket.
type UdpTun struct {
	name   string
	mtu    int
	conn   *net.UDPConn
	remote *net.UDPAddr
}

// NewUdpTun opens a UDP socket bound to listenAddr, with Send targeting
// remoteAddr.
func NewUdpTun(name, listenAddr, remoteAddr string, mtu int) (*UdpTun, error) {
	laddr, err := net.ResolveUDPAddr("udp", listenAddr)
	if err != nil {
		return nil, err
	}
	conn, err := net.ListenUDP("udp", laddr)
	if err != nil {
		return nil, err
	}
	raddr, err := net.ResolveUDPAddr("udp", remoteAddr)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	return &UdpTun{name: name, mtu: mtu, conn: conn, remote: raddr}, nil
}

func (u *UdpTun) Name() string { return u.name }
func (u *UdpTun) MTU() int     { return u.mtu }

func (u *UdpTun) Send(ctx context.Context, frame []byte) error {
	_, err := u.conn.WriteToUDP(frame, u.remote)
	return err
}

func (u *UdpTun) Recv(ctx context.Context, timeout time.Duration) ([]byte, error) {
	if timeout > 0 {
		_ = u.conn.SetReadDeadline(time.Now().Add(timeout))
	}
	buf := make([]byte, u.mtu)
	n, _, err := u.conn.ReadFromUDP(buf)
	if err != nil {
		if ne, ok := err.(net.Error); ok && ne.Timeout() {
			return nil, codecerr.New("transport.UdpTun", codecerr.TransportTimeout, "")
		}
		return nil, codecerr.New("transport.UdpTun", codecerr.TransportClosed, err.Error())
	}
	return buf[:n], nil
}

func (u *UdpTun) Close() error {
	return u.conn.Close()
}
