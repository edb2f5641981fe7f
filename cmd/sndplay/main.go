// SPDX-License-Identifier: EPL-2.0

// Command sndplay exercises the engine from a terminal: list devices, play
// files (optionally in 3D), record from a capture device and convert files
// to mono 16-bit WAV.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ik5/sndcore"
	"github.com/ik5/sndcore/config"
	"github.com/ik5/sndcore/internal/log"
)

const usage = `usage: sndplay [global flags] <command> [flags] [args]

commands:
  devices                      list playback and capture devices
  play [-pos x,y,z] files...   play files, waiting until they finish
  record -o out.wav            record from a capture device
  convert -rate 8000 in out    convert a file to mono 16-bit WAV

global flags:
`

type globals struct {
	configPath string
	backend    string
	device     string
	logLevel   string
}

func main() {
	var g globals

	fs := flag.NewFlagSet("sndplay", flag.ExitOnError)
	fs.StringVar(&g.configPath, "config", "sndcore.yaml", "YAML config file")
	fs.StringVar(&g.backend, "backend", "", "backend: auto, oto, miniaudio or null")
	fs.StringVar(&g.device, "device", "", "playback device name")
	fs.StringVar(&g.logLevel, "log", "", "log level")
	fs.Usage = func() {
		fmt.Fprint(fs.Output(), usage)
		fs.PrintDefaults()
	}
	_ = fs.Parse(os.Args[1:])

	if fs.NArg() == 0 {
		fs.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, g, fs.Arg(0), fs.Args()[1:]); err != nil {
		log.L().WithError(err).Error("sndplay failed")
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, g globals, cmd string, args []string) error {
	cfg, err := loadConfig(g)
	if err != nil {
		return err
	}
	log.Init(cfg.LogLevel)

	if cmd == "convert" {
		return convert(args)
	}

	sys, err := sndcore.New(cfg)
	if err != nil {
		return err
	}
	defer sys.Close()

	switch cmd {
	case "devices":
		return devices(sys)
	case "play":
		return play(ctx, sys, args)
	case "record":
		return record(ctx, sys, args)
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func loadConfig(g globals) (config.Config, error) {
	cfg, err := config.Load(g.configPath)
	if err != nil {
		return cfg, err
	}

	if g.backend != "" {
		cfg.Backend = config.Backend(g.backend)
	}
	if g.device != "" {
		cfg.Device = g.device
	}
	if g.logLevel != "" {
		cfg.LogLevel = g.logLevel
	}

	return cfg, cfg.Validate()
}
