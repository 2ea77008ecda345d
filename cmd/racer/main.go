package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/lixenwraith/haunted/config"
	"github.com/lixenwraith/haunted/engine"
	"github.com/lixenwraith/haunted/physics"
	"github.com/lixenwraith/haunted/render"
	"github.com/lixenwraith/haunted/terminal"
)

var (
	profileFlag = flag.String("profile", physics.SpeedBoat.Name, "Vehicle profile: boat, porsche, mclaren")
	seedFlag    = flag.Uint64("seed", 1, "Obstacle placement seed")
	configFlag  = flag.String("config", "", "TOML config file for keys and frame rate")
	debugFlag   = flag.Bool("debug", false, "Write logs to logs/racer.log")
)

func main() {
	flag.Parse()

	if _, ok := physics.Profiles[*profileFlag]; !ok {
		fmt.Fprintf(os.Stderr, "racer: unknown profile %q\n", *profileFlag)
		os.Exit(2)
	}
	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "racer: %v\n", err)
		os.Exit(1)
	}

	if f := engine.SetupLogging("racer", *debugFlag); f != nil {
		defer f.Close()
	}

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "racer: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	defer func() {
		if r := recover(); r != nil {
			engine.HandleCrash(r)
		}
	}()

	km, err := cfg.Keymap()
	if err != nil {
		return err
	}

	rc := physics.Preset(*profileFlag)
	rc.Seed = *seedFlag
	race := engine.NewRace(physics.NewRace(rc))
	log.Printf("racer: %s, %d players, %d obstacles", rc.Profile.Name, rc.Players, len(race.Race.Obstacles))

	screen, err := terminal.Open()
	if err != nil {
		return err
	}
	defer screen.Fini()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	loop := &engine.Loop{
		Scene:     race,
		Surface:   render.NewSurface(rc.Width, rc.Height),
		Presenter: terminal.NewPresenter(screen),
		Input:     terminal.NewInput(screen, km, 0),
		Interval:  cfg.FrameInterval(),
	}
	return loop.Run(ctx)
}
