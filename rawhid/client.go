// Package rawhid talks the voltage switch packet protocol from the host
// side: 64-byte command packets out, 64-byte status packets back. The real
// transport is a Teensy RawHID interface; a TCP transport with the same
// framing connects to the simulator.
package rawhid

import (
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"sync"
	"time"

	"github.com/caarlos0/sync/cio"
	logp "github.com/charmbracelet/log"
	"github.com/sstallion/go-hid"

	"github.com/jake-dog/htpc-thermostat/firmware"
)

var log = logp.NewWithOptions(os.Stderr, logp.Options{
	ReportTimestamp: true,
	TimeFormat:      time.Kitchen,
	Prefix:          "rawhid",
})

// Teensy RawHID identity, the default the original board enumerates with.
const (
	VendorID  uint16 = 0x16C0
	ProductID uint16 = 0x0486
)

const dialTimeout = 5 * time.Second

// ErrNoStatus means no status packet arrived within the wait budget. The
// switch only reports every couple of seconds, so this is a steady-state
// condition, not a failure.
var ErrNoStatus = errors.New("no status packet available")

// transport moves whole packets; partial reads and writes are protocol
// errors handled by the caller.
type transport interface {
	write(buf []byte) (int, error)
	read(buf []byte, timeout time.Duration) (int, error)
	close() error
}

// Client is a host-side handle on one voltage switch.
type Client struct {
	lock sync.Mutex
	t    transport
}

// Open connects to the first attached device matching vid/pid over hidapi.
func Open(vid, pid uint16) (*Client, error) {
	if err := hid.Init(); err != nil {
		return nil, fmt.Errorf("could not init hidapi: %w", err)
	}
	dev, err := hid.OpenFirst(vid, pid)
	if err != nil {
		return nil, fmt.Errorf("could not open device %04x:%04x: %w", vid, pid, err)
	}
	return &Client{t: &hidTransport{dev: dev}}, nil
}

// Dial connects to a simulator serving the packet channel over TCP, one
// packet per 64-byte frame.
func Dial(addr string) (*Client, error) {
	conn, err := net.DialTimeout("tcp", addr, dialTimeout)
	if err != nil {
		return nil, fmt.Errorf("could not connect to simulator: %w", err)
	}
	return &Client{t: &tcpTransport{conn: conn}}, nil
}

// SetLevel sends one command packet requesting l.
func (c *Client) SetLevel(l firmware.Level) error {
	c.lock.Lock()
	defer c.lock.Unlock()
	log.Debug("set level", "level", l)
	buf := make([]byte, firmware.PacketSize)
	buf[0] = byte(l)
	n, err := c.t.write(buf)
	if err != nil {
		return fmt.Errorf("could not send command: %w", err)
	}
	if n < firmware.PacketSize {
		return fmt.Errorf("short command write: %d of %d bytes", n, firmware.PacketSize)
	}
	return nil
}

// ReadStatus waits up to timeout for one status packet and decodes the
// level it reports. Returns ErrNoStatus when nothing arrived in time.
func (c *Client) ReadStatus(timeout time.Duration) (firmware.Level, error) {
	c.lock.Lock()
	defer c.lock.Unlock()
	buf := make([]byte, firmware.PacketSize)
	n, err := c.t.read(buf, timeout)
	if err != nil {
		if isTimeout(err) {
			return firmware.Five, ErrNoStatus
		}
		return firmware.Five, fmt.Errorf("could not read status: %w", err)
	}
	if n <= 0 {
		return firmware.Five, ErrNoStatus
	}
	l, ok := firmware.DecodeCommand(buf[:n])
	if !ok {
		return firmware.Five, fmt.Errorf("bad status byte: %#02x", buf[0])
	}
	log.Debug("status", "level", l)
	return l, nil
}

func (c *Client) Close() error {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.t.close()
}

func isTimeout(err error) bool {
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var nerr net.Error
	return errors.As(err, &nerr) && nerr.Timeout()
}

type hidTransport struct {
	dev *hid.Device
}

func (t *hidTransport) write(buf []byte) (int, error) { return t.dev.Write(buf) }

func (t *hidTransport) read(buf []byte, timeout time.Duration) (int, error) {
	return t.dev.ReadWithTimeout(buf, timeout)
}

func (t *hidTransport) close() error {
	if err := t.dev.Close(); err != nil {
		return err
	}
	return hid.Exit()
}

type tcpTransport struct {
	conn net.Conn
}

func (t *tcpTransport) write(buf []byte) (int, error) {
	if err := t.conn.SetWriteDeadline(time.Now().Add(dialTimeout)); err != nil {
		return 0, err
	}
	return t.conn.Write(buf)
}

func (t *tcpTransport) read(buf []byte, timeout time.Duration) (int, error) {
	return io.ReadFull(cio.TimeoutReader(t.conn, timeout), buf)
}

func (t *tcpTransport) close() error { return t.conn.Close() }
