package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gsradio/csplink/config"
	"github.com/gsradio/csplink/csp"
)

const sampleYAML = `
link:
  interface: tcp
  address: 127.0.0.1:9600
  mtu: 256
csp:
  my_address: 5
  endian: little
  hmac_key_hex: "0102030405060708"
  xtea_key_hex: "0102030405060708"
  xtea_nonce_hex: "00000001"
ax100:
  hmac_key_hex: "0102030405060708"
  crc: true
  reed_solomon: true
  scrambler: true
  length_field: true
  syncword: true
  prefill: 8
  tailfill: 4
  strict: true
`

func writeSample(t *testing.T) string {
	dir := t.TempDir()
	path := filepath.Join(dir, "csplink.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o644))
	return path
}

func TestLoadParsesStationConfig(t *testing.T) {
	st, err := config.Load(writeSample(t))
	require.NoError(t, err)

	assert.Equal(t, "tcp", st.Link.Interface)
	assert.Equal(t, 256, st.Link.MTU)
	assert.Equal(t, uint8(5), st.CSP.MyAddress)
	assert.Equal(t, csp.LittleEndian, st.Endian())
}

func TestLoadMissingFileErrors(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestStationCSPEngines(t *testing.T) {
	st, err := config.Load(writeSample(t))
	require.NoError(t, err)

	engines, err := st.CSPEngines()
	require.NoError(t, err)
	assert.Len(t, engines.HMACKey, 8)
	assert.Len(t, engines.XTEAKey, 8)
	assert.Equal(t, [4]byte{0, 0, 0, 1}, engines.XTEANonce)
}

func TestStationAX100Config(t *testing.T) {
	st, err := config.Load(writeSample(t))
	require.NoError(t, err)

	cfg, err := st.AX100Config()
	require.NoError(t, err)
	assert.True(t, cfg.CRC)
	assert.True(t, cfg.ReedSolomon)
	assert.Equal(t, 8, cfg.Prefill)
	assert.Equal(t, 4, cfg.Tailfill)
}

func TestEndianDefaultsToBig(t *testing.T) {
	var st config.Station
	assert.Equal(t, csp.BigEndian, st.Endian())
}
