// Package codecerr defines the typed error taxonomy shared by every codec
// layer in this repository (csp, ax100, and their supporting primitives).
package codecerr

import (
	"errors"
	"fmt"
)

// Kind identifies the category of a codec failure.
type Kind int

const (
	// ShortFrame indicates a buffer was too small to contain its declared
	// or minimum structure.
	ShortFrame Kind = iota
	// SyncwordMismatch indicates the AX100 attached sync marker (ASM) did
	// not match at the expected offset.
	SyncwordMismatch
	// GolayUncorrectable indicates a Golay(24,12) codeword had more than
	// three bit errors.
	GolayUncorrectable
	// ReedSolomonUncorrectable indicates an RS(255,223) block had more
	// errors than its parity budget could locate and correct.
	ReedSolomonUncorrectable
	// CrcMismatch indicates a CRC-32C trailer did not match the
	// recomputed checksum.
	CrcMismatch
	// HmacMismatch indicates an HMAC-SHA1/32 trailer did not match the
	// recomputed tag.
	HmacMismatch
	// FieldOutOfRange indicates a header field exceeded the bit width
	// reserved for it.
	FieldOutOfRange
	// TransportTimeout indicates a transport's Recv deadline elapsed
	// before a frame arrived.
	TransportTimeout
	// TransportClosed indicates an operation was attempted on a
	// transport that has already been closed.
	TransportClosed
)

func (k Kind) String() string {
	switch k {
	case ShortFrame:
		return "short frame"
	case SyncwordMismatch:
		return "syncword mismatch"
	case GolayUncorrectable:
		return "golay uncorrectable"
	case ReedSolomonUncorrectable:
		return "reed-solomon uncorrectable"
	case CrcMismatch:
		return "crc mismatch"
	case HmacMismatch:
		return "hmac mismatch"
	case FieldOutOfRange:
		return "field out of range"
	case TransportTimeout:
		return "transport timeout"
	case TransportClosed:
		return "transport closed"
	default:
		return "unknown codec error"
	}
}

// Error is the concrete error type returned by every codec layer. Component
// identifies the layer that raised it (e.g. "csp.Packet", "ax100.Codec")
// for log correlation; Kind is used for programmatic handling.
type Error struct {
	Kind      Kind
	Component string
	Detail    string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %s", e.Component, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %s", e.Component, e.Kind, e.Detail)
}

// New builds an *Error for the given component and kind.
func New(component string, kind Kind, detail string) *Error {
	return &Error{Kind: kind, Component: component, Detail: detail}
}

// Is reports whether err is, or wraps, a *Error of the given kind.
func Is(err error, kind Kind) bool {
	var ce *Error
	return errors.As(err, &ce) && ce.Kind == kind
}

// Mode selects how csp.Decode reacts to a verification failure (CRC or
// HMAC). Strict mode returns a typed *Error and discards the frame. Lenient
// mode returns the decoded value together with the typed *Error,
// preserving the best-effort bytes for inspection instead of clearing
// them, so telemetry capture can still see what arrived even when
// verification failed.
type Mode int

const (
	// Strict rejects frames that fail any integrity check.
	Strict Mode = iota
	// Lenient accepts frames that fail integrity checks, surfacing the
	// failure through the returned error alongside the decoded value.
	Lenient
)

func (m Mode) String() string {
	if m == Lenient {
		return "lenient"
	}
	return "strict"
}
