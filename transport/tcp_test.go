package transport_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gsradio/csplink/codecerr"
	"github.com/gsradio/csplink/transport"
)

func TestTcpTunRoundTrip(t *testing.T) {
	ctx := context.Background()
	serverCh := make(chan *transport.TcpTun, 1)
	errCh := make(chan error, 1)

	// ListenTCP blocks in Accept, so the client dial below is started only
	// after giving the listener a moment to bind the fixed test port.
	const addr = "127.0.0.1:18952"

	go func() {
		srv, err := transport.ListenTCP(ctx, "gw", addr, 512, false)
		if err != nil {
			errCh <- err
			return
		}
		serverCh <- srv
	}()
	time.Sleep(20 * time.Millisecond)

	client, err := transport.DialTCP("client", addr, 512)
	require.NoError(t, err)
	defer client.Close()

	var srv *transport.TcpTun
	select {
	case srv = <-serverCh:
	case err := <-errCh:
		t.Fatalf("listen failed: %v", err)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for server accept")
	}
	defer srv.Close()

	require.NoError(t, client.Send(ctx, []byte("hello csp")))
	got, err := srv.Recv(ctx, time.Second)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello csp"), got)

	require.NoError(t, srv.Send(ctx, []byte("ack")))
	got, err = client.Recv(ctx, time.Second)
	require.NoError(t, err)
	assert.Equal(t, []byte("ack"), got)
}

func TestTcpTunRecvTimeout(t *testing.T) {
	ctx := context.Background()
	const addr = "127.0.0.1:18953"
	serverCh := make(chan *transport.TcpTun, 1)
	go func() {
		srv, err := transport.ListenTCP(ctx, "gw", addr, 512, false)
		if err == nil {
			serverCh <- srv
		}
	}()
	time.Sleep(20 * time.Millisecond)

	client, err := transport.DialTCP("client", addr, 512)
	require.NoError(t, err)
	defer client.Close()
	srv := <-serverCh
	defer srv.Close()

	_, err = client.Recv(ctx, 50*time.Millisecond)
	require.Error(t, err)
	assert.True(t, codecerr.Is(err, codecerr.TransportTimeout))
}
