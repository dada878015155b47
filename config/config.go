package config

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/gsradio/csplink/ax100"
	"github.com/gsradio/csplink/csp"
)

// Station is a ground-station's on-disk configuration: CSP addressing,
// crypto keys, and AX100 framing options, loaded from a YAML file and
// optionally overridden by pflag command-line flags.
type Station struct {
	Link struct {
		Interface string `yaml:"interface"` // "loopback", "tcp", "udp", "serial", "grc"
		Address   string `yaml:"address"`
		MTU       int    `yaml:"mtu"`
	} `yaml:"link"`

	CSP struct {
		MyAddress  uint8  `yaml:"my_address"`
		Endian     string `yaml:"endian"` // "big" or "little"
		HMACKeyHex   string `yaml:"hmac_key_hex"`
		XTEAKeyHex   string `yaml:"xtea_key_hex"`
		XTEANonceHex string `yaml:"xtea_nonce_hex"` // 4 bytes, agreed out-of-band with the peer
	} `yaml:"csp"`

	AX100 struct {
		HMACKeyHex  string `yaml:"hmac_key_hex"`
		CRC         bool   `yaml:"crc"`
		ReedSolomon bool   `yaml:"reed_solomon"`
		Scrambler   bool   `yaml:"scrambler"`
		LengthField bool   `yaml:"length_field"`
		Syncword    bool   `yaml:"syncword"`
		Prefill     int    `yaml:"prefill"`
		Tailfill    int    `yaml:"tailfill"`
		Strict      bool   `yaml:"strict"`
	} `yaml:"ax100"`
}

// searchLocations mirrors deviceid.go's multi-directory fallback search,
// adapted to a station config file instead of a vendor-supplied data file.
var searchLocations = []string{
	"csplink.yaml",
	"config/csplink.yaml",
	"/etc/csplink/csplink.yaml",
	"/usr/local/etc/csplink/csplink.yaml",
}

// Load reads a Station config from path, or if path is empty, from the
// first of searchLocations that exists.
func Load(path string) (*Station, error) {
	var data []byte
	var err error

	if path != "" {
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: reading %s: %w", path, err)
		}
	} else {
		for _, loc := range searchLocations {
			data, err = os.ReadFile(loc)
			if err == nil {
				break
			}
		}
		if data == nil {
			return nil, fmt.Errorf("config: no config file found in %v", searchLocations)
		}
	}

	var st Station
	if err := yaml.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("config: parsing config: %w", err)
	}
	return &st, nil
}

// BindFlags registers pflag command-line overrides for the fields an
// operator is most likely to want to tweak per-invocation rather than
// edit into the YAML file.
func (s *Station) BindFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&s.Link.Interface, "interface", "i", s.Link.Interface, "link interface: loopback, tcp, udp, serial, grc")
	fs.StringVarP(&s.Link.Address, "address", "a", s.Link.Address, "link address (host:port or device path)")
	fs.IntVarP(&s.Link.MTU, "mtu", "m", s.Link.MTU, "link MTU")
	fs.Uint8VarP(&s.CSP.MyAddress, "my-address", "A", s.CSP.MyAddress, "this station's CSP address")
}

// Endian resolves the configured CSP endianness; an empty or unrecognized
// value is treated as big-endian, CSP's conventional wire order.
func (s *Station) Endian() csp.Endian {
	if s.CSP.Endian == "little" {
		return csp.LittleEndian
	}
	return csp.BigEndian
}

// CSPEngines derives a csp.Engines from the configured hex-encoded keys.
// A blank key string leaves the corresponding engine key nil, disabling
// that layer regardless of the header flags a received packet carries.
func (s *Station) CSPEngines() (*csp.Engines, error) {
	e := &csp.Engines{}
	var err error
	if s.CSP.HMACKeyHex != "" {
		if e.HMACKey, err = decodeKey(s.CSP.HMACKeyHex); err != nil {
			return nil, fmt.Errorf("config: csp.hmac_key_hex: %w", err)
		}
	}
	if s.CSP.XTEAKeyHex != "" {
		if e.XTEAKey, err = decodeKey(s.CSP.XTEAKeyHex); err != nil {
			return nil, fmt.Errorf("config: csp.xtea_key_hex: %w", err)
		}
		nonce, err := decodeKey(s.CSP.XTEANonceHex)
		if err != nil {
			return nil, fmt.Errorf("config: csp.xtea_nonce_hex: %w", err)
		}
		if len(nonce) != 4 {
			return nil, fmt.Errorf("config: csp.xtea_nonce_hex: want 4 bytes, got %d", len(nonce))
		}
		copy(e.XTEANonce[:], nonce)
	}
	return e, nil
}

// AX100Config derives an ax100.Config from the station config.
func (s *Station) AX100Config() (ax100.Config, error) {
	var key []byte
	if s.AX100.HMACKeyHex != "" {
		var err error
		if key, err = decodeKey(s.AX100.HMACKeyHex); err != nil {
			return ax100.Config{}, fmt.Errorf("config: ax100.hmac_key_hex: %w", err)
		}
	}
	return ax100.Config{
		HMACKey:     key,
		CRC:         s.AX100.CRC,
		ReedSolomon: s.AX100.ReedSolomon,
		Scrambler:   s.AX100.Scrambler,
		LengthField: s.AX100.LengthField,
		Syncword:    s.AX100.Syncword,
		Prefill:     s.AX100.Prefill,
		Tailfill:    s.AX100.Tailfill,
		Strict:      s.AX100.Strict,
	}, nil
}

func decodeKey(hexstr string) ([]byte, error) {
	return hex.DecodeString(hexstr)
}
