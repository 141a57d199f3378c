package main

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/brutella/hap"
	"github.com/brutella/hap/accessory"
	"github.com/caarlos0/env/v11"
	"github.com/cenkalti/backoff/v4"
	logp "github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	thermostat "github.com/jake-dog/htpc-thermostat"
	"github.com/jake-dog/htpc-thermostat/firmware"
	"github.com/jake-dog/htpc-thermostat/rawhid"
)

//go:embed index.html
var index []byte

var log = logp.NewWithOptions(os.Stderr, logp.Options{
	ReportTimestamp: true,
	TimeFormat:      time.Kitchen,
	Prefix:          "thermostat",
})

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Executor runs fn against a freshly opened device handle, retrying
// transient failures.
type Executor = func(fn func(cli *rawhid.Client) error) error

const manufacturer = "jake-dog"

func main() {
	log.Info(
		"htpc-thermostat",
		"version", version,
		"commit", commit,
		"date", date,
	)

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		log.Fatal(
			"could not parse env",
			"err",
			strings.TrimPrefix(strings.ReplaceAll(err.Error(), "; ", "\n"), "env: ")+"\n",
		)
	}

	open, err := opener(cfg)
	if err != nil {
		log.Fatal("bad device config", "err", err)
	}

	var deviceLock sync.Mutex
	execute := func(fn func(cli *rawhid.Client) error) error {
		t := time.Now()
		deviceLock.Lock()
		defer deviceLock.Unlock()
		log.Debugf("got device lock after %s", time.Since(t))

		bo := backoff.NewExponentialBackOff()
		bo.MaxInterval = time.Second * 5
		bo.MaxElapsedTime = time.Minute

		return backoff.RetryNotify(func() error {
			commandCounter.Inc()
			cli, err := open()
			if err != nil {
				return fmt.Errorf("could not open voltage switch: %w", err)
			}
			defer func() {
				if err := cli.Close(); err != nil {
					log.Error("could not close voltage switch", "err", err)
				}
			}()
			if err := fn(cli); err != nil {
				commandErrorCounter.Inc()
				return err
			}
			return nil
		}, bo, func(err error, _ time.Duration) {
			log.Error("command to voltage switch failed", "err", err)
		})
	}

	bands, err := cfg.bands()
	if err != nil {
		log.Fatal("could not load bands", "err", err)
	}
	thermo, err := thermostat.New(bands, cfg.Forward, cfg.Reverse)
	if err != nil {
		log.Fatal("could not build thermostat", "err", err)
	}
	sensor := thermostat.HostSensor{Key: cfg.SensorKey}

	readTemp := func() (float64, error) {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Interval)
		defer cancel()
		return sensor.Read(ctx)
	}

	temp, err := readTemp()
	if err != nil {
		log.Fatal("could not read temperature", "err", err)
	}
	want := thermo.Mode(temp)
	log.Info("initial reading", "temp", temp, "level", want)
	if err := execute(func(cli *rawhid.Client) error {
		return cli.SetLevel(want)
	}); err != nil {
		log.Fatal("could not set initial level", "err", err)
	}

	bridge := accessory.NewBridge(accessory.Info{
		Name:         "Thermostat Bridge",
		Manufacturer: manufacturer,
		Firmware:     version,
	})

	fan := newPowerFan(accessory.Info{
		Name:         "HTPC Fans",
		Manufacturer: manufacturer,
		Model:        "voltage switch",
		Firmware:     version,
	}, execute)
	fan.Id = 2
	fan.Update(want)

	tempSensor := newTempSensor(accessory.Info{
		Name:         "HTPC Temperature",
		Manufacturer: manufacturer,
	})
	tempSensor.Id = 3
	tempSensor.Update(temp)

	var pageLock sync.Mutex
	page := struct {
		Temperature float64
		Want        firmware.Level
		Got         firmware.Level
	}{Temperature: temp, Want: want, Got: want}

	go func() {
		tick := time.NewTicker(cfg.Interval)
		for range tick.C {
			temp, err := readTemp()
			if err != nil {
				log.Error("could not read temperature", "err", err)
				continue
			}
			tempSensor.Update(temp)

			mode := thermo.Mode(temp)
			if mode != want {
				log.Info("band change", "temp", temp, "from", want, "to", mode)
				want = mode
				if err := execute(func(cli *rawhid.Client) error {
					return cli.SetLevel(mode)
				}); err != nil {
					log.Error("could not set level", "level", mode, "err", err)
				}
			}

			got, drained := page.Got, false
			if err := execute(func(cli *rawhid.Client) error {
				for {
					l, err := cli.ReadStatus(time.Millisecond * 50)
					if errors.Is(err, rawhid.ErrNoStatus) {
						return nil
					}
					if err != nil {
						return err
					}
					got, drained = l, true
					statusCounter.Inc()
				}
			}); err != nil {
				log.Error("could not read status", "err", err)
			}
			if drained {
				fan.Update(got)
			}

			pageLock.Lock()
			page.Temperature, page.Want, page.Got = temp, want, got
			pageLock.Unlock()
		}
	}()

	fs := hap.NewFsStore("./db")

	server, err := hap.NewServer(fs, bridge.A, fan.A, tempSensor.A)
	if err != nil {
		log.Fatal("fail to create server", "error", err)
	}
	server.Addr = cfg.Address
	server.ServeMux().Handle("/metrics", promhttp.Handler())
	server.ServeMux().Handle("/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tpl := template.Must(template.New("index").Parse(string(index)))
		pageLock.Lock()
		defer pageLock.Unlock()
		_ = tpl.Execute(w, page)
	}))

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	signal.Notify(c, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-c
		log.Info("stopping server")
		signal.Stop(c)
		cancel()
	}()

	log.Info("starting server", "addr", server.Addr)
	if err := server.ListenAndServe(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("failed to close server", "err", err)
	}
}

// opener picks the transport: a real RawHID device, or a TCP connection to
// the simulator.
func opener(cfg Config) (func() (*rawhid.Client, error), error) {
	switch cfg.Device {
	case "hid":
		vid, pid, err := cfg.ids()
		if err != nil {
			return nil, err
		}
		return func() (*rawhid.Client, error) {
			return rawhid.Open(vid, pid)
		}, nil
	case "tcp":
		return func() (*rawhid.Client, error) {
			return rawhid.Dial(cfg.Addr)
		}, nil
	default:
		return nil, fmt.Errorf("unknown device type %q", cfg.Device)
	}
}
