package transport_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gsradio/csplink/codecerr"
	"github.com/gsradio/csplink/transport"
)

func TestLoopbackRecvIsLastInFirstOut(t *testing.T) {
	l := transport.NewLoopback("lo0", 256, 0)
	ctx := context.Background()

	require.NoError(t, l.Send(ctx, []byte("first")))
	require.NoError(t, l.Send(ctx, []byte("second")))

	got, err := l.Recv(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), got)

	got, err = l.Recv(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, []byte("first"), got)
}

func TestLoopbackRecvEmptyIsTimeout(t *testing.T) {
	l := transport.NewLoopback("lo0", 256, 0)
	_, err := l.Recv(context.Background(), 0)
	require.Error(t, err)
	assert.True(t, codecerr.Is(err, codecerr.TransportTimeout))
}

func TestLoopbackSendDropsOldestOnOverflow(t *testing.T) {
	l := transport.NewLoopback("lo0", 256, 2)
	ctx := context.Background()

	require.NoError(t, l.Send(ctx, []byte("a")))
	require.NoError(t, l.Send(ctx, []byte("b")))
	require.NoError(t, l.Send(ctx, []byte("c"))) // drops "a"

	got, err := l.Recv(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, []byte("c"), got)

	got, err = l.Recv(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, []byte("b"), got)

	_, err = l.Recv(ctx, 0)
	require.Error(t, err) // "a" was dropped, queue now empty
}

func TestLoopbackDefaultQueueLimit(t *testing.T) {
	l := transport.NewLoopback("lo0", 256, 0)
	ctx := context.Background()
	for i := 0; i < transport.DefaultQueueLimit+10; i++ {
		require.NoError(t, l.Send(ctx, []byte{byte(i)}))
	}
	// Draining should yield exactly DefaultQueueLimit frames, not more.
	count := 0
	for {
		if _, err := l.Recv(ctx, 0); err != nil {
			break
		}
		count++
	}
	assert.Equal(t, transport.DefaultQueueLimit, count)
}

func TestLoopbackClosedRejectsSendAndRecv(t *testing.T) {
	l := transport.NewLoopback("lo0", 256, 0)
	ctx := context.Background()
	require.NoError(t, l.Send(ctx, []byte("x")))
	require.NoError(t, l.Close())

	err := l.Send(ctx, []byte("y"))
	require.Error(t, err)
	assert.True(t, codecerr.Is(err, codecerr.TransportClosed))

	_, err = l.Recv(ctx, 0)
	require.Error(t, err)
	assert.True(t, codecerr.Is(err, codecerr.TransportClosed))
}

func TestLoopbackSendCopiesFrame(t *testing.T) {
	l := transport.NewLoopback("lo0", 256, 0)
	ctx := context.Background()
	frame := []byte("mutate me")
	require.NoError(t, l.Send(ctx, frame))
	frame[0] = 'X'

	got, err := l.Recv(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, byte('m'), got[0])
}
