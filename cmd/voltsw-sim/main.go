// Command voltsw-sim runs the voltage switch firmware against in-memory
// pins and a TCP packet channel, so the thermostat daemon can be exercised
// end to end without a device attached. Lines on stdin toggle the override
// jumpers: "12", "0" and "5" flip the matching jumper, "clear" releases
// all of them.
package main

import (
	"bufio"
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	logp "github.com/charmbracelet/log"

	"github.com/jake-dog/htpc-thermostat/firmware"
	"github.com/jake-dog/htpc-thermostat/gpio"
)

var log = logp.NewWithOptions(os.Stderr, logp.Options{
	ReportTimestamp: true,
	TimeFormat:      time.Kitchen,
	Prefix:          "voltsw-sim",
})

var cli struct {
	Listen string        `help:"Address serving the packet channel."  default:"localhost:8486"`
	Cycle  time.Duration `help:"Arbitration cycle interval."          default:"10ms"`
	Status time.Duration `help:"Status reporting period."             default:"2s"`
	Debug  bool          `help:"Enable debug logging."`
}

func main() {
	kctx := kong.Parse(&cli,
		kong.Name("voltsw-sim"),
		kong.Description("Simulated relay voltage switch."),
		kong.UsageOnError(),
	)
	if cli.Debug {
		log.SetLevel(logp.DebugLevel)
	}

	channel, err := listen(cli.Listen)
	kctx.FatalIfErrorf(err)
	defer channel.close()
	log.Info("packet channel listening", "addr", cli.Listen)

	var (
		relay1 gpio.MemoryOutput
		relay2 gpio.MemoryOutput
		led    gpio.MemoryOutput
		ovr12  gpio.MemoryInput
		ovr0   gpio.MemoryInput
		ovr5   gpio.MemoryInput
	)

	sw := firmware.New(firmware.Config{
		Relay1:   &relay1,
		Relay2:   &relay2,
		PowerLED: &led,
		Overrides: firmware.Overrides{
			Twelve: &ovr12,
			Zero:   &ovr0,
			Five:   &ovr5,
		},
		Channel:       channel,
		CycleInterval: cli.Cycle,
		StatusPeriod:  cli.Status,
		Logger:        log,
	})

	ctx, cancel := context.WithCancel(context.Background())
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	signal.Notify(c, syscall.SIGTERM)
	go func() {
		<-c
		signal.Stop(c)
		cancel()
	}()

	go jumperShell(&ovr12, &ovr0, &ovr5)

	go func() {
		tick := time.NewTicker(time.Second)
		for {
			select {
			case <-ctx.Done():
				return
			case <-tick.C:
				log.Debug("state",
					"level", sw.Level(),
					"relay1", relay1.High(),
					"relay2", relay2.High(),
				)
			}
		}
	}()

	log.Info("switch running", "level", sw.Level())
	if err := sw.Run(ctx); err != nil && ctx.Err() == nil {
		log.Error("switch stopped", "err", err)
	}
}

// jumperShell flips jumpers from stdin lines. Toggling is intentional: a
// physical jumper stays put until removed, and so does a simulated one.
func jumperShell(ovr12, ovr0, ovr5 *gpio.MemoryInput) {
	toggle := func(name string, pin *gpio.MemoryInput) {
		asserted := !pin.Read()
		pin.Set(asserted)
		log.Info("jumper", "pin", name, "asserted", asserted)
	}
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		switch scanner.Text() {
		case "12":
			toggle("12V", ovr12)
		case "0":
			toggle("0V", ovr0)
		case "5":
			toggle("5V", ovr5)
		case "clear":
			ovr12.Set(false)
			ovr0.Set(false)
			ovr5.Set(false)
			log.Info("jumpers cleared")
		case "":
		default:
			log.Warn("unknown command", "line", scanner.Text())
		}
	}
}
