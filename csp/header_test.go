package csp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/gsradio/csplink/csp"
)

func TestHeaderV1RoundTripBigEndian(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		h := csp.HeaderV1{
			Priority: csp.Priority(rapid.IntRange(0, 3).Draw(t, "prio")),
			Src:      uint8(rapid.IntRange(0, 31).Draw(t, "src")),
			Dst:      uint8(rapid.IntRange(0, 31).Draw(t, "dst")),
			DPort:    uint8(rapid.IntRange(0, 63).Draw(t, "dport")),
			SPort:    uint8(rapid.IntRange(0, 63).Draw(t, "sport")),
			Flags:    uint8(rapid.IntRange(0, 255).Draw(t, "flags")),
			Endian:   csp.BigEndian,
		}
		b, err := h.Encode()
		require.NoError(t, err)
		require.Len(t, b, 4)

		got, err := csp.DecodeHeaderV1(b, csp.BigEndian)
		require.NoError(t, err)
		assert.Equal(t, h, got)
	})
}

func TestHeaderV1RoundTripLittleEndian(t *testing.T) {
	h := csp.HeaderV1{Priority: csp.PriorityHigh, Src: 3, Dst: 7, DPort: 9, SPort: 1, Flags: 0x0F, Endian: csp.LittleEndian}
	b, err := h.Encode()
	require.NoError(t, err)
	got, err := csp.DecodeHeaderV1(b, csp.LittleEndian)
	require.NoError(t, err)
	assert.Equal(t, h, got)
}

func TestHeaderV1FlagAccessors(t *testing.T) {
	var h csp.HeaderV1
	h.SetCRC(true)
	h.SetHMAC(true)
	assert.True(t, h.CRC())
	assert.True(t, h.HMAC())
	assert.False(t, h.XTEA())
	assert.False(t, h.RDP())

	h.SetCRC(false)
	assert.False(t, h.CRC())
}

func TestHeaderV1RejectsOutOfRangeFields(t *testing.T) {
	h := csp.HeaderV1{Src: 32}
	_, err := h.Encode()
	require.Error(t, err)
}

func TestDecodeHeaderV1RejectsShortInput(t *testing.T) {
	_, err := csp.DecodeHeaderV1([]byte{1, 2, 3}, csp.BigEndian)
	require.Error(t, err)
}
