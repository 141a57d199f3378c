// Package thermostat maps a CPU temperature to the voltage level the
// switch should hold, using a sticky band ladder with directional
// hysteresis so a reading oscillating at a boundary cannot chatter the
// relays.
package thermostat

import (
	"errors"

	"golang.org/x/exp/slices"

	"github.com/jake-dog/htpc-thermostat/firmware"
)

// Band is one rung of the ladder: at or above Threshold the switch should
// hold Level.
type Band struct {
	Level     firmware.Level
	Threshold float64 // degrees Celsius
}

// Thermostat holds the ladder and the currently active rung.
type Thermostat struct {
	bands    []Band
	fwd, rev float64
	idx      int
}

// New builds a ladder from bands sorted by ascending threshold. At least
// two bands are required (a high and a low setting). The lowest band is
// the resting state; its threshold only matters as the floor of the rung
// above it. Forward hysteresis is added to a rung's threshold when
// climbing, reverse hysteresis is subtracted when dropping.
func New(bands []Band, forward, reverse float64) (*Thermostat, error) {
	if len(bands) < 2 {
		return nil, errors.New("thermostat requires at least 2 bands (hi/lo)")
	}
	bands = slices.Clone(bands)
	slices.SortFunc(bands, func(a, b Band) int {
		if a.Threshold > b.Threshold {
			return 1
		}
		return -1
	})
	return &Thermostat{bands: bands, fwd: forward, rev: reverse}, nil
}

// DefaultBands mirror the original deployment: fans off below 40°C, 5V up
// to 55°C, 12V beyond.
func DefaultBands() []Band {
	return []Band{
		{Level: firmware.Zero, Threshold: 0},
		{Level: firmware.Five, Threshold: 40},
		{Level: firmware.Twelve, Threshold: 55},
	}
}

// Mode returns the level for the reading, moving the sticky rung as
// needed. Climbing a rung requires threshold+forward; dropping below one
// requires threshold-reverse.
func (t *Thermostat) Mode(temp float64) firmware.Level {
	for t.idx+1 < len(t.bands) && temp >= t.bands[t.idx+1].Threshold+t.fwd {
		t.idx++
	}
	for t.idx > 0 && temp < t.bands[t.idx].Threshold-t.rev {
		t.idx--
	}
	return t.bands[t.idx].Level
}
