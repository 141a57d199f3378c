// Package firmware implements the control logic of the voltage switch
// microcontroller: jumper override arbitration, relay drive, and the
// 64-byte status/command packet exchange with the host. All hardware access
// goes through the interfaces in hal.go so the same logic runs on real
// pins, in the simulator, and under tests.
package firmware

// Level is the output voltage the relay network is switched to.
//
// The zero value is Five on purpose: 5V is what the relay wiring produces
// with both coils released, so an uninitialized state matches what the
// hardware does without power.
type Level byte

const (
	Five   Level = 0x00
	Twelve Level = 0x01
	Zero   Level = 0x02
)

const levelMask = 0x03

func (l Level) String() string {
	switch l {
	case Five:
		return "5V"
	case Twelve:
		return "12V"
	case Zero:
		return "0V"
	default:
		return "Unknown"
	}
}

// Relays returns the relay pair drive for the level. The mapping is total:
// every level maps to exactly one pair, and no other combination is
// reachable.
func (l Level) Relays() (relay1, relay2 bool) {
	switch l {
	case Twelve:
		return true, false
	case Zero:
		return false, true
	default:
		return false, false
	}
}

// DecodeLevel interprets a command byte. Only the low 2 bits carry the
// level; the unused fourth encoding is rejected.
func DecodeLevel(b byte) (Level, bool) {
	l := Level(b & levelMask)
	if l > Zero {
		return Five, false
	}
	return l, true
}
