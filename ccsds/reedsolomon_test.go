package ccsds_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/gsradio/csplink/ccsds"
	"github.com/gsradio/csplink/codecerr"
)

func TestRSRoundTripNoErrors(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 223).Draw(t, "n")
		data := rapid.SliceOfN(rapid.Byte(), n, n).Draw(t, "data")
		codeword, err := ccsds.RSEncode(data)
		require.NoError(t, err)
		require.Len(t, codeword, n+32)

		decoded, corrected, err := ccsds.RSDecode(codeword)
		require.NoError(t, err)
		assert.Equal(t, 0, corrected)
		assert.Equal(t, data, decoded)
	})
}

// Scenario: up to MaxCorrectable (16) byte flips in a full 223-byte block
// must be recoverable; one more than that must fail.
func TestRSCorrectsUpToSixteenErrors(t *testing.T) {
	data := make([]byte, 223)
	for i := range data {
		data[i] = byte(i * 7)
	}
	codeword, err := ccsds.RSEncode(data)
	require.NoError(t, err)

	corrupted := append([]byte(nil), codeword...)
	for i := 0; i < ccsds.MaxCorrectable; i++ {
		corrupted[i*3] ^= 0xFF
	}

	decoded, corrected, err := ccsds.RSDecode(corrupted)
	require.NoError(t, err)
	assert.Equal(t, ccsds.MaxCorrectable, corrected)
	assert.Equal(t, data, decoded)
}

func TestRSSeventeenErrorsUncorrectable(t *testing.T) {
	data := make([]byte, 223)
	for i := range data {
		data[i] = byte(i * 11)
	}
	codeword, err := ccsds.RSEncode(data)
	require.NoError(t, err)

	corrupted := append([]byte(nil), codeword...)
	for i := 0; i < ccsds.MaxCorrectable+1; i++ {
		corrupted[i*3] ^= 0xFF
	}

	_, _, err = ccsds.RSDecode(corrupted)
	require.Error(t, err)
	assert.True(t, codecerr.Is(err, codecerr.ReedSolomonUncorrectable))
}

func TestRSEncodeRejectsOversizedBlock(t *testing.T) {
	_, err := ccsds.RSEncode(make([]byte, 224))
	require.Error(t, err)
	assert.True(t, codecerr.Is(err, codecerr.FieldOutOfRange))
}

func TestRSShortenedBlockRoundTrip(t *testing.T) {
	data := []byte("short telemetry frame")
	codeword, err := ccsds.RSEncode(data)
	require.NoError(t, err)
	require.Len(t, codeword, len(data)+32)

	codeword[2] ^= 0x01
	decoded, corrected, err := ccsds.RSDecode(codeword)
	require.NoError(t, err)
	assert.Equal(t, 1, corrected)
	assert.Equal(t, data, decoded)
}
