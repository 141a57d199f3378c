package firmware

// Overrides samples the three override jumper pins. A jumper demands its
// level immediately, regardless of any host command.
type Overrides struct {
	Twelve InputPin
	Zero   InputPin
	Five   InputPin
}

// Sample returns the level demanded by the first asserted jumper that
// differs from current. The check order is fixed: 12V, then 0V, then 5V.
// The order is a safety policy, not an accident: if two jumpers are
// bridged by miswiring, the extreme voltages win predictably. A jumper
// asserting the level already active is a no-op and must not retrigger
// relay writes.
func (o Overrides) Sample(current Level) (Level, bool) {
	jumpers := []struct {
		pin   InputPin
		level Level
	}{
		{o.Twelve, Twelve},
		{o.Zero, Zero},
		{o.Five, Five},
	}
	for _, j := range jumpers {
		if j.pin != nil && j.pin.Read() && j.level != current {
			return j.level, true
		}
	}
	return current, false
}
