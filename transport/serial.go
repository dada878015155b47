package transport

import (
	"bufio"
	"context"
	"time"

	"github.com/pkg/term"

	"github.com/gsradio/csplink/codecerr"
)

// SerialKISS carries AX100 link frames KISS-framed over a real serial
// port, driving github.com/pkg/term for a hardware TNC.
type SerialKISS struct {
	name   string
	mtu    int
	fd     *term.Term
	reader *bufio.Reader
}

// OpenSerialKISS opens dev at baud and puts it in raw mode. Supported
// bauds are a fixed set (1200-115200); anything else is rejected rather
// than silently falling back, since this is long-lived ground-station
// infrastructure, not an interactive TNC utility guessing at a user's typo.
func OpenSerialKISS(name, dev string, baud, mtu int) (*SerialKISS, error) {
	fd, err := term.Open(dev, term.RawMode)
	if err != nil {
		return nil, err
	}
	switch baud {
	case 1200, 2400, 4800, 9600, 19200, 38400, 57600, 115200:
		if err := fd.SetSpeed(baud); err != nil {
			_ = fd.Close()
			return nil, err
		}
	default:
		_ = fd.Close()
		return nil, codecerr.New("transport.SerialKISS", codecerr.FieldOutOfRange, "unsupported baud rate")
	}
	return &SerialKISS{name: name, mtu: mtu, fd: fd, reader: bufio.NewReader(fd)}, nil
}

func (s *SerialKISS) Name() string { return s.name }
func (s *SerialKISS) MTU() int     { return s.mtu }

func (s *SerialKISS) Send(ctx context.Context, frame []byte) error {
	encoded := EncodeKISS(frame)
	written, err := s.fd.Write(encoded)
	if err != nil {
		return err
	}
	if written != len(encoded) {
		return codecerr.New("transport.SerialKISS", codecerr.TransportClosed, "short write")
	}
	return nil
}

// Recv reads bytes up to the next FEND-delimited KISS frame. timeout is
// accepted for interface parity; pkg/term's Read blocks on raw-mode reads,
// so true deadline support would need platform-specific VTIME tuning the
// way serial_port_open leaves a TODO for. A caller needing a hard timeout
// should run Recv in its own goroutine and select against ctx.Done().
func (s *SerialKISS) Recv(ctx context.Context, timeout time.Duration) ([]byte, error) {
	if _, err := s.reader.ReadBytes(kissFEND); err != nil {
		return nil, codecerr.New("transport.SerialKISS", codecerr.TransportClosed, err.Error())
	}
	raw, err := s.reader.ReadBytes(kissFEND)
	if err != nil {
		return nil, codecerr.New("transport.SerialKISS", codecerr.TransportClosed, err.Error())
	}
	frame := raw[:len(raw)-1] // drop the trailing FEND
	return DecodeKISS(frame), nil
}

func (s *SerialKISS) Close() error {
	return s.fd.Close()
}
