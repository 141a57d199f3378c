package rawhid_test

import (
	"io"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jake-dog/htpc-thermostat/firmware"
	"github.com/jake-dog/htpc-thermostat/rawhid"
)

// fakeSwitch accepts one connection and answers like the simulator does:
// whole 64-byte frames in both directions.
func fakeSwitch(t *testing.T, handle func(conn net.Conn)) string {
	t.Helper()
	ln, err := net.Listen("tcp", "localhost:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		handle(conn)
	}()
	return ln.Addr().String()
}

func TestSetLevel(t *testing.T) {
	got := make(chan byte, 1)
	addr := fakeSwitch(t, func(conn net.Conn) {
		buf := make([]byte, firmware.PacketSize)
		if _, err := io.ReadFull(conn, buf); err != nil {
			return
		}
		got <- buf[0]
	})

	cli, err := rawhid.Dial(addr)
	require.NoError(t, err)
	defer cli.Close()

	require.NoError(t, cli.SetLevel(firmware.Zero))
	select {
	case b := <-got:
		require.Equal(t, byte(0x02), b)
	case <-time.After(time.Second):
		t.Fatal("command never arrived")
	}
}

func TestReadStatus(t *testing.T) {
	addr := fakeSwitch(t, func(conn net.Conn) {
		_, _ = conn.Write(firmware.EncodeStatus(firmware.Twelve))
	})

	cli, err := rawhid.Dial(addr)
	require.NoError(t, err)
	defer cli.Close()

	l, err := cli.ReadStatus(time.Second)
	require.NoError(t, err)
	require.Equal(t, firmware.Twelve, l)
}

func TestReadStatusTimeout(t *testing.T) {
	addr := fakeSwitch(t, func(conn net.Conn) {
		// never send anything
		buf := make([]byte, 1)
		_, _ = conn.Read(buf)
	})

	cli, err := rawhid.Dial(addr)
	require.NoError(t, err)
	defer cli.Close()

	_, err = cli.ReadStatus(50 * time.Millisecond)
	require.ErrorIs(t, err, rawhid.ErrNoStatus)
}

func TestReadStatusBadByte(t *testing.T) {
	addr := fakeSwitch(t, func(conn net.Conn) {
		pkt := make([]byte, firmware.PacketSize)
		pkt[0] = 0x03
		_, _ = conn.Write(pkt)
	})

	cli, err := rawhid.Dial(addr)
	require.NoError(t, err)
	defer cli.Close()

	_, err = cli.ReadStatus(time.Second)
	require.Error(t, err)
	require.NotErrorIs(t, err, rawhid.ErrNoStatus)
}

func TestDialRefused(t *testing.T) {
	_, err := rawhid.Dial("localhost:1")
	require.Error(t, err)
}
