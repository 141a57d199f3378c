package firmware_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jake-dog/htpc-thermostat/firmware"
	"github.com/jake-dog/htpc-thermostat/gpio"
)

type jumpers struct {
	ovr12, ovr0, ovr5 gpio.MemoryInput
}

func (j *jumpers) overrides() firmware.Overrides {
	return firmware.Overrides{
		Twelve: &j.ovr12,
		Zero:   &j.ovr0,
		Five:   &j.ovr5,
	}
}

func TestSampleNoJumper(t *testing.T) {
	var j jumpers
	_, ok := j.overrides().Sample(firmware.Five)
	require.False(t, ok)
}

func TestSampleSingleJumper(t *testing.T) {
	var j jumpers
	j.ovr0.Set(true)

	l, ok := j.overrides().Sample(firmware.Five)
	require.True(t, ok)
	require.Equal(t, firmware.Zero, l)
}

func TestSampleIdempotent(t *testing.T) {
	var j jumpers
	j.ovr12.Set(true)

	l, ok := j.overrides().Sample(firmware.Five)
	require.True(t, ok)
	require.Equal(t, firmware.Twelve, l)

	// jumper still in place: no retrigger
	_, ok = j.overrides().Sample(firmware.Twelve)
	require.False(t, ok)
}

func TestSamplePriority(t *testing.T) {
	// Miswired boards can assert several jumpers at once; the extreme
	// voltages win in a fixed order.
	var j jumpers
	j.ovr12.Set(true)
	j.ovr0.Set(true)
	j.ovr5.Set(true)

	l, ok := j.overrides().Sample(firmware.Five)
	require.True(t, ok)
	require.Equal(t, firmware.Twelve, l)

	j.ovr12.Set(false)
	l, ok = j.overrides().Sample(firmware.Five)
	require.True(t, ok)
	require.Equal(t, firmware.Zero, l)
}

func TestSampleUnwiredPins(t *testing.T) {
	var j jumpers
	j.ovr5.Set(true)
	o := j.overrides()
	o.Twelve = nil
	o.Zero = nil

	l, ok := o.Sample(firmware.Zero)
	require.True(t, ok)
	require.Equal(t, firmware.Five, l)
}
