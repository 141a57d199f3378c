package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var temperatureGauge = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "htpc_thermostat",
	Subsystem: "sensor",
	Name:      "temperature_celsius",
	Help:      "",
})

var levelGauge = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "htpc_thermostat",
	Subsystem: "switch",
	Name:      "level_volts",
	Help:      "",
})

var commandCounter = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "htpc_thermostat",
	Subsystem: "switch",
	Name:      "commands_total",
	Help:      "",
})

var commandErrorCounter = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "htpc_thermostat",
	Subsystem: "switch",
	Name:      "command_errors_total",
	Help:      "",
})

var statusCounter = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "htpc_thermostat",
	Subsystem: "switch",
	Name:      "status_packets_total",
	Help:      "",
})
