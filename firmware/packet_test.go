package firmware_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jake-dog/htpc-thermostat/firmware"
)

func TestEncodeStatus(t *testing.T) {
	buf := firmware.EncodeStatus(firmware.Zero)
	require.Len(t, buf, firmware.PacketSize)
	require.Equal(t, byte(0x02), buf[0])
	for i, b := range buf[1:] {
		require.Zerof(t, b, "padding byte %d", i+1)
	}
}

func TestDecodeCommand(t *testing.T) {
	pkt := make([]byte, firmware.PacketSize)
	pkt[0] = 0x01
	pkt[13] = 0xaa // trailing bytes are ignored

	l, ok := firmware.DecodeCommand(pkt)
	require.True(t, ok)
	require.Equal(t, firmware.Twelve, l)

	_, ok = firmware.DecodeCommand(nil)
	require.False(t, ok)

	pkt[0] = 0x03
	_, ok = firmware.DecodeCommand(pkt)
	require.False(t, ok)
}
