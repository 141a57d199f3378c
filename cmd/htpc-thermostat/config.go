package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	thermostat "github.com/jake-dog/htpc-thermostat"
	"github.com/jake-dog/htpc-thermostat/firmware"
)

type Config struct {
	Device    string        `env:"DEVICE"    envDefault:"hid"` // "hid" or "tcp"
	Addr      string        `env:"ADDR"      envDefault:"localhost:8486"`
	VendorID  string        `env:"VID"       envDefault:"0x16C0"`
	ProductID string        `env:"PID"       envDefault:"0x0486"`
	SensorKey string        `env:"SENSOR"    envDefault:"coretemp"`
	Interval  time.Duration `env:"INTERVAL"  envDefault:"2s"`
	BandsFile string        `env:"BANDS_FILE"`
	Forward   float64       `env:"FORWARD_HYSTERESIS" envDefault:"2"`
	Reverse   float64       `env:"REVERSE_HYSTERESIS" envDefault:"3"`
	Address   string        `env:"LISTEN"    envDefault:":8123"`
}

// ids parses the HID identity. Hex with 0x prefix and plain decimal are
// both accepted, like the original ini file did.
func (c Config) ids() (vid, pid uint16, err error) {
	v, err := strconv.ParseUint(c.VendorID, 0, 16)
	if err != nil {
		return 0, 0, fmt.Errorf("bad vendor id %q: %w", c.VendorID, err)
	}
	p, err := strconv.ParseUint(c.ProductID, 0, 16)
	if err != nil {
		return 0, 0, fmt.Errorf("bad product id %q: %w", c.ProductID, err)
	}
	return uint16(v), uint16(p), nil
}

// bandsFile is the on-disk shape of a custom ladder:
//
//	levels:
//	  0V: 0
//	  5V: 40
//	  12V: 55
type bandsFile struct {
	Levels map[string]float64 `yaml:"levels"`
}

func (c Config) bands() ([]thermostat.Band, error) {
	if c.BandsFile == "" {
		return thermostat.DefaultBands(), nil
	}
	bts, err := os.ReadFile(c.BandsFile)
	if err != nil {
		return nil, fmt.Errorf("could not read bands file: %w", err)
	}
	var f bandsFile
	if err := yaml.Unmarshal(bts, &f); err != nil {
		return nil, fmt.Errorf("could not parse bands file: %w", err)
	}
	var bands []thermostat.Band
	for name, threshold := range f.Levels {
		level, err := parseLevel(name)
		if err != nil {
			return nil, err
		}
		bands = append(bands, thermostat.Band{Level: level, Threshold: threshold})
	}
	return bands, nil
}

func parseLevel(name string) (firmware.Level, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "0V":
		return firmware.Zero, nil
	case "5V":
		return firmware.Five, nil
	case "12V":
		return firmware.Twelve, nil
	default:
		return firmware.Five, fmt.Errorf("unknown voltage level %q", name)
	}
}
