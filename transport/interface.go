// Package transport implements the byte-carrying interfaces that move
// framed AX100 link frames between this process and a radio front-end (or,
// for testing, each other): an in-memory loopback, TCP and UDP tunnels, a
// KISS-framed serial port, and a GNU Radio PDU bridge.
package transport

import (
	"context"
	"time"
)

// Interface is the capability set every transport implements: send a
// frame, receive the next one (blocking up to a deadline), and report an
// MTU and a name for logging.
type Interface interface {
	Send(ctx context.Context, frame []byte) error
	Recv(ctx context.Context, timeout time.Duration) ([]byte, error)
	MTU() int
	Name() string
	Close() error
}
