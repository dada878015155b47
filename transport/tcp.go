package transport

import (
	"context"
	"encoding/binary"
	"io"
	"net"
	"time"

	"github.com/brutella/dnssd"

	"github.com/gsradio/csplink/codecerr"
	"github.com/gsradio/csplink/gslog"
)

// TcpTun is a length-delimited TCP tunnel, usable either as a client
// (dial) or a single-connection server (listen), mirroring the original
// prototype's TcpTun(server=bool) switch. Frames are prefixed with a
// 4-byte big-endian length so Send/Recv boundaries survive TCP's stream
// semantics.
type TcpTun struct {
	name string
	mtu  int
	conn net.Conn
	ln   net.Listener

	announcer *dnssd.Responder
	announce  context.CancelFunc
}

// DialTCP connects to addr as a client.
func DialTCP(name, addr string, mtu int) (*TcpTun, error) {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, err
	}
	return &TcpTun{name: name, mtu: mtu, conn: conn}, nil
}

// ListenTCP accepts a single client connection on addr, then serves as
// that connection's Interface. If announce is true, the listener is
// additionally advertised over mDNS/DNS-SD as a "_csplink._tcp" service,
// so a client application can discover it instead of hard-coding host:port.
func ListenTCP(ctx context.Context, name, addr string, mtu int, announce bool) (*TcpTun, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	t := &TcpTun{name: name, mtu: mtu, ln: ln}

	if announce {
		if err := t.startAnnounce(ctx, ln.Addr().(*net.TCPAddr).Port); err != nil {
			gslog.Default.Warn("dns-sd announce failed", "err", err)
		}
	}

	conn, err := ln.Accept()
	if err != nil {
		_ = ln.Close()
		return nil, err
	}
	t.conn = conn
	return t, nil
}

func (t *TcpTun) startAnnounce(ctx context.Context, port int) error {
	cfg := dnssd.Config{
		Name: t.name,
		Type: "_csplink._tcp",
		Port: port,
	}
	service, err := dnssd.NewService(cfg)
	if err != nil {
		return err
	}
	responder, err := dnssd.NewResponder()
	if err != nil {
		return err
	}
	if _, err := responder.Add(service); err != nil {
		return err
	}

	announceCtx, cancel := context.WithCancel(ctx)
	t.announce = cancel
	go func() {
		_ = responder.Respond(announceCtx)
	}()
	return nil
}

func (t *TcpTun) Name() string { return t.name }
func (t *TcpTun) MTU() int     { return t.mtu }

func (t *TcpTun) Send(ctx context.Context, frame []byte) error {
	var hdr [4]byte
	binary.BigEndian.PutUint32(hdr[:], uint32(len(frame)))
	if _, err := t.conn.Write(hdr[:]); err != nil {
		return err
	}
	_, err := t.conn.Write(frame)
	return err
}

func (t *TcpTun) Recv(ctx context.Context, timeout time.Duration) ([]byte, error) {
	if timeout > 0 {
		_ = t.conn.SetReadDeadline(time.Now().Add(timeout))
	}
	var hdr [4]byte
	if _, err := io.ReadFull(t.conn, hdr[:]); err != nil {
		if ne, ok := err.(net.Error); ok && ne.Timeout() {
			return nil, codecerr.New("transport.TcpTun", codecerr.TransportTimeout, "")
		}
		return nil, codecerr.New("transport.TcpTun", codecerr.TransportClosed, err.Error())
	}
	n := binary.BigEndian.Uint32(hdr[:])
	frame := make([]byte, n)
	if _, err := io.ReadFull(t.conn, frame); err != nil {
		return nil, codecerr.New("transport.TcpTun", codecerr.TransportClosed, err.Error())
	}
	return frame, nil
}

func (t *TcpTun) Close() error {
	if t.announce != nil {
		t.announce()
	}
	if t.conn != nil {
		_ = t.conn.Close()
	}
	if t.ln != nil {
		return t.ln.Close()
	}
	return nil
}
