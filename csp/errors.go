package csp

import "github.com/gsradio/csplink/codecerr"

// IsCRCMismatch reports whether err is a CRC verification failure from
// this package's Decode.
func IsCRCMismatch(err error) bool { return codecerr.Is(err, codecerr.CrcMismatch) }

// IsHMACMismatch reports whether err is an HMAC verification failure from
// this package's Decode.
func IsHMACMismatch(err error) bool { return codecerr.Is(err, codecerr.HmacMismatch) }
