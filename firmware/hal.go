package firmware

import "time"

// InputPin is a digital input. Read reports whether the pin is asserted;
// implementations hide electrical polarity (the override jumpers are
// pull-up inputs, asserted when pulled low).
type InputPin interface {
	Read() bool
}

// OutputPin is a digital output.
type OutputPin interface {
	Write(high bool)
}

// PacketChannel is the opaque bidirectional packet transport between the
// switch and the host.
type PacketChannel interface {
	// Recv polls for an inbound packet without waiting. It returns the
	// packet length, or a value <= 0 when no packet is available.
	Recv(buf []byte) int

	// Send transmits one packet, waiting at most timeout for the transport
	// to accept it. A return value <= 0 signals failure.
	Send(buf []byte, timeout time.Duration) int
}

// Clock abstracts time so the control loop can be driven by a fake in
// tests.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type systemClock struct{}

func (systemClock) Now() time.Time        { return time.Now() }
func (systemClock) Sleep(d time.Duration) { time.Sleep(d) }

// SystemClock returns a Clock backed by the runtime clock.
func SystemClock() Clock { return systemClock{} }
