package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/lixenwraith/haunted/engine"
	"github.com/lixenwraith/haunted/input"
	"github.com/lixenwraith/haunted/render"
	"github.com/lixenwraith/haunted/terminal"
)

var (
	widthFlag  = flag.Int("width", 800, "Surface width")
	heightFlag = flag.Int("height", 600, "Surface height")
	fpsFlag    = flag.Int("fps", 30, "Frame rate")
)

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "lines: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	defer func() {
		if r := recover(); r != nil {
			engine.HandleCrash(r)
		}
	}()

	screen, err := terminal.Open()
	if err != nil {
		return err
	}
	defer screen.Fini()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	loop := &engine.Loop{
		Scene:     engine.NewLines(),
		Surface:   render.NewSurface(*widthFlag, *heightFlag),
		Presenter: terminal.NewPresenter(screen),
		Input:     terminal.NewInput(screen, input.DefaultKeymap(), 0),
		Interval:  time.Second / time.Duration(max(1, *fpsFlag)),
	}
	return loop.Run(ctx)
}
