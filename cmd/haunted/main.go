package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lixenwraith/haunted/audio"
	"github.com/lixenwraith/haunted/config"
	"github.com/lixenwraith/haunted/engine"
	"github.com/lixenwraith/haunted/render"
	"github.com/lixenwraith/haunted/terminal"
)

var (
	configFlag  = flag.String("config", "", "TOML config file (default $"+config.EnvPath+")")
	editionFlag = flag.String("edition", "", "Edition preset when no config file is given: ultimate, stickman")
	levelFlag   = flag.String("level", "", "Level override: built-in name, YAML path or \"generated\"")
	seedFlag    = flag.Uint64("seed", 0, "Seed for generated levels")
	fpsFlag     = flag.Int("fps", 0, "Frame rate override")
	metricsFlag = flag.String("metrics", "", "Serve Prometheus metrics on this address")
	debugFlag   = flag.Bool("debug", false, "Write logs to logs/haunted.log")
	holdFlag    = flag.Duration("hold", 0, "Key hold timeout between terminal repeats")
	muteFlag    = flag.Bool("mute", false, "Disable audio")
)

func main() {
	flag.Parse()

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "haunted: %v\n", err)
		os.Exit(1)
	}

	if f := engine.SetupLogging("haunted", *debugFlag); f != nil {
		defer f.Close()
	}

	if err := run(cfg); err != nil {
		log.Printf("haunted: %v", err)
		fmt.Fprintf(os.Stderr, "haunted: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig applies flag overrides on top of the file or edition preset
func loadConfig() (config.Config, error) {
	var (
		cfg config.Config
		err error
	)
	if *configFlag == "" && os.Getenv(config.EnvPath) == "" && *editionFlag != "" {
		cfg, err = config.Edition(*editionFlag)
	} else {
		cfg, err = config.Load(*configFlag)
	}
	if err != nil {
		return cfg, err
	}

	if *levelFlag != "" {
		cfg.Level.Name = *levelFlag
	}
	if *seedFlag != 0 {
		cfg.Level.Seed = *seedFlag
	}
	if *fpsFlag > 0 {
		cfg.Screen.FPS = *fpsFlag
	}
	if *metricsFlag != "" {
		cfg.Metrics.Enabled = true
		cfg.Metrics.Addr = *metricsFlag
	}
	if *muteFlag {
		cfg.Audio.Enabled = false
	}
	return cfg, cfg.Validate()
}

func run(cfg config.Config) error {
	defer func() {
		if r := recover(); r != nil {
			engine.HandleCrash(r)
		}
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	metrics := engine.NewMetrics()
	if cfg.Metrics.Enabled {
		metrics.Serve(ctx, cfg.Metrics.Addr)
	}

	player := audio.NewPlayer(cfg.AudioPlayer())
	if err := player.Initialize(); err != nil {
		log.Printf("audio: %v (continuing without sound)", err)
	}
	defer player.Cleanup()

	scene, err := engine.HauntedFromConfig(cfg, player, metrics)
	if err != nil {
		return err
	}
	km, err := cfg.Keymap()
	if err != nil {
		return err
	}

	screen, err := terminal.Open()
	if err != nil {
		return err
	}
	defer screen.Fini()

	loop := &engine.Loop{
		Scene:     scene,
		Surface:   render.NewSurface(cfg.Screen.Width, cfg.Screen.Height),
		Presenter: terminal.NewPresenter(screen),
		Input:     terminal.NewInput(screen, km, *holdFlag),
		Interval:  cfg.FrameInterval(),
		Metrics:   metrics,
	}

	start := time.Now()
	err = loop.Run(ctx)
	log.Printf("haunted: %d frames in %s", loop.Frames(), time.Since(start).Round(time.Millisecond))
	return err
}
