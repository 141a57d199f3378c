package main

import (
	"errors"
	"io"
	"net"
	"sync"
	"time"

	"github.com/jake-dog/htpc-thermostat/firmware"
)

// tcpChannel serves the firmware packet channel over TCP, one packet per
// 64-byte frame. Only the most recent host connection is live, mirroring a
// single USB endpoint. Recv never waits; Send is bounded by the write
// deadline.
type tcpChannel struct {
	ln    net.Listener
	inbox chan [firmware.PacketSize]byte

	mu   sync.Mutex
	conn net.Conn
}

func listen(addr string) (*tcpChannel, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	ch := &tcpChannel{
		ln:    ln,
		inbox: make(chan [firmware.PacketSize]byte, 8),
	}
	go ch.accept()
	return ch, nil
}

func (ch *tcpChannel) accept() {
	for {
		conn, err := ch.ln.Accept()
		if err != nil {
			if !errors.Is(err, net.ErrClosed) {
				log.Error("accept failed", "err", err)
			}
			return
		}
		log.Info("host connected", "addr", conn.RemoteAddr())
		ch.swap(conn)
		go ch.read(conn)
	}
}

func (ch *tcpChannel) swap(conn net.Conn) {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	if ch.conn != nil {
		_ = ch.conn.Close()
	}
	ch.conn = conn
}

func (ch *tcpChannel) read(conn net.Conn) {
	for {
		var pkt [firmware.PacketSize]byte
		if _, err := io.ReadFull(conn, pkt[:]); err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, net.ErrClosed) {
				log.Debug("host read failed", "err", err)
			}
			return
		}
		select {
		case ch.inbox <- pkt:
		default:
			// Inbox full: the switch is not draining, drop like a full
			// USB buffer would.
		}
	}
}

func (ch *tcpChannel) Recv(buf []byte) int {
	select {
	case pkt := <-ch.inbox:
		return copy(buf, pkt[:])
	default:
		return 0
	}
}

func (ch *tcpChannel) Send(buf []byte, timeout time.Duration) int {
	ch.mu.Lock()
	conn := ch.conn
	ch.mu.Unlock()
	if conn == nil {
		return -1
	}
	if err := conn.SetWriteDeadline(time.Now().Add(timeout)); err != nil {
		return -1
	}
	n, err := conn.Write(buf)
	if err != nil {
		return -1
	}
	return n
}

func (ch *tcpChannel) close() {
	_ = ch.ln.Close()
	ch.swap(nil)
}
