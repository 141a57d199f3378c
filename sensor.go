package thermostat

import (
	"context"
	"fmt"
	"strings"

	"github.com/shirou/gopsutil/v4/sensors"
)

// TempSource yields temperature readings in degrees Celsius.
type TempSource interface {
	Read(ctx context.Context) (float64, error)
}

// HostSensor reads the host's hardware sensors through gopsutil, picking
// the first sensor whose key contains Key ("coretemp" on Intel, "k10temp"
// on AMD).
type HostSensor struct {
	Key string
}

func (s HostSensor) Read(ctx context.Context) (float64, error) {
	stats, err := sensors.TemperaturesWithContext(ctx)
	if err != nil && len(stats) == 0 {
		return 0, fmt.Errorf("could not read host sensors: %w", err)
	}
	for _, st := range stats {
		if strings.Contains(st.SensorKey, s.Key) && st.Temperature > 0 {
			return st.Temperature, nil
		}
	}
	return 0, fmt.Errorf("no sensor matching %q", s.Key)
}
