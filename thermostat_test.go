package thermostat

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jake-dog/htpc-thermostat/firmware"
)

func newDefault(t *testing.T) *Thermostat {
	t.Helper()
	th, err := New(DefaultBands(), 2, 3)
	require.NoError(t, err)
	return th
}

func TestRequiresTwoBands(t *testing.T) {
	_, err := New([]Band{{Level: firmware.Zero}}, 0, 0)
	require.Error(t, err)
}

func TestClimbsWithForwardHysteresis(t *testing.T) {
	th := newDefault(t)

	require.Equal(t, firmware.Zero, th.Mode(30))
	require.Equal(t, firmware.Zero, th.Mode(41.9)) // needs 40+2 to climb
	require.Equal(t, firmware.Five, th.Mode(42))
	require.Equal(t, firmware.Five, th.Mode(56.9)) // needs 55+2
	require.Equal(t, firmware.Twelve, th.Mode(57))
}

func TestDropsWithReverseHysteresis(t *testing.T) {
	th := newDefault(t)
	require.Equal(t, firmware.Twelve, th.Mode(60))

	require.Equal(t, firmware.Twelve, th.Mode(52.5)) // holds until 55-3
	require.Equal(t, firmware.Five, th.Mode(51.9))
	require.Equal(t, firmware.Five, th.Mode(37.5)) // holds until 40-3
	require.Equal(t, firmware.Zero, th.Mode(36.9))
}

func TestNoChatterAtBoundary(t *testing.T) {
	th := newDefault(t)
	require.Equal(t, firmware.Five, th.Mode(45))

	// a reading oscillating around a threshold keeps the band
	for i := 0; i < 10; i++ {
		require.Equal(t, firmware.Five, th.Mode(39.5))
		require.Equal(t, firmware.Five, th.Mode(40.5))
	}
}

func TestSkipsBandsOnBigJump(t *testing.T) {
	th := newDefault(t)

	require.Equal(t, firmware.Twelve, th.Mode(80))
	require.Equal(t, firmware.Zero, th.Mode(10))
}

func TestSortsBands(t *testing.T) {
	th, err := New([]Band{
		{Level: firmware.Twelve, Threshold: 55},
		{Level: firmware.Zero, Threshold: 0},
		{Level: firmware.Five, Threshold: 40},
	}, 0, 0)
	require.NoError(t, err)

	require.Equal(t, firmware.Zero, th.Mode(20))
	require.Equal(t, firmware.Five, th.Mode(45))
	require.Equal(t, firmware.Twelve, th.Mode(60))
}
