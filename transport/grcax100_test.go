package transport_test

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gsradio/csplink/transport"
)

// fakeGrc stands in for a GNU Radio socket_pdu flowgraph: it accepts one
// connection and echoes whatever it receives back unmodified, enough to
// exercise GrcAX100's framing-free Send/Recv.
func fakeGrc(t *testing.T, addr string) net.Listener {
	ln, err := net.Listen("tcp", addr)
	require.NoError(t, err)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		buf := make([]byte, 1024)
		for {
			n, err := conn.Read(buf)
			if err != nil {
				return
			}
			if _, err := conn.Write(buf[:n]); err != nil {
				return
			}
		}
	}()
	return ln
}

func TestGrcAX100RoundTrip(t *testing.T) {
	const addr = "127.0.0.1:18960"
	ln := fakeGrc(t, addr)
	defer ln.Close()
	time.Sleep(20 * time.Millisecond)

	c, err := transport.DialGrcAX100("grc0", "127.0.0.1", 18960, 0, time.Second)
	require.NoError(t, err)
	defer c.Close()

	assert.Equal(t, 1024, c.MTU())

	require.NoError(t, c.Send(context.Background(), []byte("frame")))
	got, err := c.Recv(context.Background(), time.Second)
	require.NoError(t, err)
	assert.Equal(t, []byte("frame"), got)
}

func TestGrcAX100DefaultPort(t *testing.T) {
	assert.Equal(t, 52001, transport.DefaultGrcAX100Port)
}
