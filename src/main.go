package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/jinjor/desktop-sine/src/audio"
	"github.com/jinjor/desktop-sine/src/config"
	"github.com/jinjor/desktop-sine/src/midi"
	"github.com/jinjor/desktop-sine/src/transport"
	"golang.org/x/sync/errgroup"
)

var (
	configFile = flag.String("config", "", "YAML config file")
	headless   = flag.Bool("headless", false, "render without an output device")
	midiIn     = flag.String("midi", "", "prefix of the MIDI IN port name")
	sampleRate = flag.Int("rate", 0, "sample rate in Hz")
	keys       = flag.Bool("keys", true, "read p/s/q from stdin")
	report     = flag.Duration("report", 0, "interval of stats reports, 0 to disable")
	verbose    = flag.Bool("v", false, "log every MIDI event")
)

func main() {
	flag.Parse()
	log.SetFlags(log.Lshortfile)
	log.Printf("NumCPU: %v\n", runtime.NumCPU())

	c, err := loadConfig()
	if err != nil {
		log.Fatalf("error: %v\n", err)
	}
	cfg, err := c.AudioConfig()
	if err != nil {
		log.Fatalf("error: %v\n", err)
	}
	a, err := audio.NewAudio(cfg)
	if err != nil {
		log.Fatalf("error: %v\n", err)
	}
	defer a.Close()

	ctx := context.Background()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, os.Interrupt, syscall.SIGTERM)
	defer func() {
		signal.Stop(signalCh)
		cancel()
	}()
	go func() {
		sig := <-signalCh
		log.Printf("Caught signal %s: shutting down...\n", sig)
		if err := a.Send(audio.Event{Kind: audio.Disconnect}); err != nil {
			cancel()
		}
	}()

	if *keys {
		restore, err := transport.RawTerminal(int(os.Stdin.Fd()))
		if err != nil {
			log.Fatalf("error: %v\n", err)
		}
		defer restore()
		log.SetOutput(transport.CRLF(os.Stderr))
		log.Println("keys: p = play, s = stop, q = quit")
	}
	if c.Audio.Autoplay {
		if err := a.Send(audio.Event{Kind: audio.Play}); err != nil {
			log.Fatalf("error: %v\n", err)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		// the engine decides when the program ends
		defer cancel()
		return a.Start(gctx)
	})
	g.Go(func() error {
		return receiveMidi(gctx, c, a)
	})
	if *keys {
		g.Go(func() error {
			return transport.Run(gctx, os.Stdin, a)
		})
	}
	if *report > 0 {
		g.Go(func() error {
			return sendReports(gctx, a, *report)
		})
	}
	if err := g.Wait(); err != nil {
		log.Printf("error: %v\n", err)
	}
	log.Println("main() ended.")
}

func loadConfig() (*config.Config, error) {
	c := config.Default()
	if *configFile != "" {
		var err error
		c, err = config.Load(*configFile)
		if err != nil {
			return nil, err
		}
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "headless":
			c.Audio.Headless = *headless
		case "midi":
			c.MIDI.In = *midiIn
		case "rate":
			c.Audio.SampleRate = *sampleRate
		}
	})
	return c, nil
}

func receiveMidi(ctx context.Context, c *config.Config, sink audio.Sender) error {
	ch, err := midi.ListenToMidiIn(ctx, c.MIDI.In)
	if err != nil {
		// keys still work without MIDI
		if errors.Is(err, midi.ErrNoInput) {
			log.Printf("WARN: %v\n", err)
		} else {
			log.Printf("WARN: MIDI disabled: %v\n", err)
		}
		return nil
	}
	pump := &midi.Pump{
		Reader:  midi.NewChanReader(ch),
		Sink:    sink,
		Timeout: c.ReadTimeout(),
		Verbose: *verbose,
	}
	err = pump.Run(ctx)
	log.Println("receiveMidi() ended.")
	return err
}

func sendReports(ctx context.Context, a *audio.Audio, interval time.Duration) error {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Println("sendReports() ended.")
			return nil
		case <-t.C:
			log.Printf("%v freq=%.1fHz volume=%.3f\n", a.Stats(), a.PeakFrequency(), a.Volume())
		}
	}
}
