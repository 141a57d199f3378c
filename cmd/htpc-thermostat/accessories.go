package main

import (
	"net/http"

	"github.com/brutella/hap"
	"github.com/brutella/hap/accessory"
	"github.com/brutella/hap/characteristic"
	"github.com/brutella/hap/service"

	"github.com/jake-dog/htpc-thermostat/firmware"
	"github.com/jake-dog/htpc-thermostat/rawhid"
)

// PowerFan exposes the voltage switch as a HomeKit fan: 0V is off, 5V is
// half speed, 12V is full speed. Setting it from HomeKit sends a command
// to the device; the thermostat will take over again on its next band
// change.
type PowerFan struct {
	*accessory.A
	Fan   *service.Fan
	Speed *characteristic.RotationSpeed
}

func newPowerFan(info accessory.Info, execute Executor) *PowerFan {
	a := &PowerFan{}
	a.A = accessory.New(info, accessory.TypeFan)

	a.Fan = service.NewFan()
	a.AddS(a.Fan.S)

	a.Speed = characteristic.NewRotationSpeed()
	a.Fan.AddC(a.Speed.C)

	set := func(l firmware.Level) (response interface{}, code int) {
		if err := execute(func(cli *rawhid.Client) error {
			return cli.SetLevel(l)
		}); err != nil {
			log.Error("could not set level", "level", l, "err", err)
			return nil, hap.JsonStatusResourceBusy
		}
		return nil, hap.JsonStatusSuccess
	}

	a.Fan.On.SetValueRequestFunc = func(v interface{}, _ *http.Request) (interface{}, int) {
		if v.(bool) {
			return set(firmware.Twelve)
		}
		return set(firmware.Zero)
	}
	a.Speed.SetValueRequestFunc = func(v interface{}, _ *http.Request) (interface{}, int) {
		return set(speedToLevel(v.(float64)))
	}

	return a
}

// Update reflects the level the device reported back into HomeKit and the
// metrics, only touching characteristics that actually changed.
func (a *PowerFan) Update(l firmware.Level) {
	levelGauge.Set(levelVolts(l))
	if v := l != firmware.Zero; a.Fan.On.Value() != v {
		_ = a.Fan.On.SetValue(v)
		log.Info("switch status", "on", v)
	}
	if v := levelSpeed(l); a.Speed.Value() != v {
		_ = a.Speed.SetValue(v)
		log.Info("switch status", "level", l)
	}
}

// TempSensor reports the CPU temperature the thermostat is acting on.
type TempSensor struct {
	*accessory.A
	Sensor *service.TemperatureSensor
}

func newTempSensor(info accessory.Info) *TempSensor {
	a := &TempSensor{}
	a.A = accessory.New(info, accessory.TypeSensor)

	a.Sensor = service.NewTemperatureSensor()
	a.AddS(a.Sensor.S)

	return a
}

func (a *TempSensor) Update(temp float64) {
	temperatureGauge.Set(temp)
	_ = a.Sensor.CurrentTemperature.SetValue(temp)
}

func levelVolts(l firmware.Level) float64 {
	switch l {
	case firmware.Twelve:
		return 12
	case firmware.Zero:
		return 0
	default:
		return 5
	}
}

func levelSpeed(l firmware.Level) float64 {
	switch l {
	case firmware.Twelve:
		return 100
	case firmware.Zero:
		return 0
	default:
		return 50
	}
}

func speedToLevel(speed float64) firmware.Level {
	switch {
	case speed <= 0:
		return firmware.Zero
	case speed <= 50:
		return firmware.Five
	default:
		return firmware.Twelve
	}
}
