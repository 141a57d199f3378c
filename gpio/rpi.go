//go:build linux

package gpio

import "github.com/stianeikeland/go-rpio/v4"

// Open maps the BCM2835 GPIO range. Must be called once before creating
// any RPi pin, and balanced with Close.
func Open() error { return rpio.Open() }

func Close() error { return rpio.Close() }

// RPiInput is a pull-up input pin. The override jumpers short the pin to
// ground, so asserted means electrically low.
type RPiInput struct {
	pin rpio.Pin
}

func NewRPiInput(bcm uint8) RPiInput {
	p := rpio.Pin(bcm)
	p.Input()
	p.PullUp()
	return RPiInput{pin: p}
}

func (p RPiInput) Read() bool { return p.pin.Read() == rpio.Low }

// RPiOutput is a push-pull output pin.
type RPiOutput struct {
	pin rpio.Pin
}

func NewRPiOutput(bcm uint8) RPiOutput {
	p := rpio.Pin(bcm)
	p.Output()
	return RPiOutput{pin: p}
}

func (p RPiOutput) Write(high bool) {
	if high {
		p.pin.High()
	} else {
		p.pin.Low()
	}
}
