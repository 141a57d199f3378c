package firmware

import (
	"context"
	"os"
	"time"

	logp "github.com/charmbracelet/log"
)

var log = logp.NewWithOptions(os.Stderr, logp.Options{
	ReportTimestamp: true,
	TimeFormat:      time.Kitchen,
	Prefix:          "voltsw",
})

// Defaults for Config fields left zero.
const (
	DefaultCycleInterval = 10 * time.Millisecond
	DefaultStatusPeriod  = 2 * time.Second
	DefaultSendTimeout   = 100 * time.Millisecond
)

// Config wires a Switch to its hardware.
type Config struct {
	Relay1    OutputPin
	Relay2    OutputPin
	PowerLED  OutputPin // driven high once at startup, then left alone
	Overrides Overrides
	Channel   PacketChannel
	Clock     Clock

	CycleInterval time.Duration
	StatusPeriod  time.Duration
	SendTimeout   time.Duration

	Logger *logp.Logger
}

// Switch owns the single current-level value and arbitrates between the
// override jumpers and host commands. Nothing else mutates the level.
type Switch struct {
	cfg      Config
	level    Level
	deadline time.Time
	recv     [PacketSize]byte
}

// New initializes the switch at the safe default level, drives the relays
// to match, and lights the power indicator.
func New(cfg Config) *Switch {
	if cfg.Clock == nil {
		cfg.Clock = SystemClock()
	}
	if cfg.CycleInterval <= 0 {
		cfg.CycleInterval = DefaultCycleInterval
	}
	if cfg.StatusPeriod <= 0 {
		cfg.StatusPeriod = DefaultStatusPeriod
	}
	if cfg.SendTimeout <= 0 {
		cfg.SendTimeout = DefaultSendTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = log
	}

	s := &Switch{cfg: cfg}
	if cfg.PowerLED != nil {
		cfg.PowerLED.Write(true)
	}
	s.apply(Five)
	s.deadline = cfg.Clock.Now().Add(cfg.StatusPeriod)
	return s
}

// Level returns the currently active level.
func (s *Switch) Level() Level { return s.level }

// apply transitions to l and drives both relays in the same step, so no
// cycle can observe a level without its relay pair.
func (s *Switch) apply(l Level) {
	s.level = l
	r1, r2 := l.Relays()
	s.cfg.Relay1.Write(r1)
	s.cfg.Relay2.Write(r2)
}

// Cycle runs one arbitration pass, in strict order: an override jumper
// wins and short-circuits everything else; otherwise one zero-wait poll of
// the channel may apply a host command; otherwise the periodic status
// report gets its chance. A cycle that consumed an inbound packet does not
// also report, matching the original else-chain.
func (s *Switch) Cycle() {
	if l, ok := s.cfg.Overrides.Sample(s.level); ok {
		s.cfg.Logger.Info("override jumper", "level", l)
		s.apply(l)
		return
	}

	if n := s.cfg.Channel.Recv(s.recv[:]); n > 0 {
		if l, ok := DecodeCommand(s.recv[:n]); ok && l != s.level {
			s.cfg.Logger.Info("host command", "level", l)
			s.apply(l)
		}
		return
	}

	s.report()
}

// report emits a status packet once per period. The deadline advances by
// exactly one period rather than resetting to now, so late cycles do not
// accumulate drift. A failed send is dropped; the next period tries again.
func (s *Switch) report() {
	if s.cfg.Clock.Now().Before(s.deadline) {
		return
	}
	s.deadline = s.deadline.Add(s.cfg.StatusPeriod)
	if n := s.cfg.Channel.Send(EncodeStatus(s.level), s.cfg.SendTimeout); n <= 0 {
		s.cfg.Logger.Warn("status send failed", "level", s.level)
	}
}

// Run executes arbitration cycles until ctx is cancelled. There is no
// fatal path: every failure degrades to skipping that cycle's optional
// work.
func (s *Switch) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		s.Cycle()
		s.cfg.Clock.Sleep(s.cfg.CycleInterval)
	}
}
