package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/lixenwraith/haunted/audio"
	"github.com/lixenwraith/haunted/config"
	"github.com/lixenwraith/haunted/engine"
	"github.com/lixenwraith/haunted/input"
	"github.com/lixenwraith/haunted/render"
)

var (
	configFlag = flag.String("config", "", "TOML config file (default $"+config.EnvPath+")")
	levelFlag  = flag.String("level", "", "Level override: built-in name, YAML path or \"generated\"")
	debugFlag  = flag.Bool("debug", false, "Write logs to logs/haunted-gl.log")
)

// keyNames maps ebiten key names to keymap names where they differ
var keyNames = map[ebiten.Key]string{
	ebiten.KeyArrowLeft:  "left",
	ebiten.KeyArrowRight: "right",
	ebiten.KeyArrowUp:    "up",
	ebiten.KeyArrowDown:  "down",
	ebiten.KeyShiftLeft:  "lshift",
	ebiten.KeyShiftRight: "rshift",
	ebiten.KeyEscape:     "escape",
	ebiten.KeySpace:      "space",
}

// keySource reports real key state, so unlike the terminal no hold tracking is needed
type keySource struct {
	keymap input.Keymap
	keys   []ebiten.Key
	names  []string
}

func (k *keySource) Snapshot(time.Time) input.Snapshot {
	k.keys = inpututil.AppendPressedKeys(k.keys[:0])
	k.names = k.names[:0]
	for _, key := range k.keys {
		name, ok := keyNames[key]
		if !ok {
			name = strings.ToLower(key.String())
		}
		k.names = append(k.names, name)
	}
	return k.keymap.Resolve(k.names)
}

// game adapts the frame loop to ebiten's update and draw callbacks
type game struct {
	loop  *engine.Loop
	frame *ebiten.Image
}

func (g *game) Update() error {
	cont, err := g.loop.Frame()
	if err != nil {
		return err
	}
	if !cont {
		return ebiten.Termination
	}
	return nil
}

// Present uploads the surface into the frame image drawn on the next Draw
func (g *game) Present(s *render.Surface) error {
	g.frame.WritePixels(s.Pix())
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.DrawImage(g.frame, nil)
}

func (g *game) Layout(int, int) (int, int) {
	return g.frame.Bounds().Dx(), g.frame.Bounds().Dy()
}

func main() {
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "haunted-gl: %v\n", err)
		os.Exit(1)
	}
	if *levelFlag != "" {
		cfg.Level.Name = *levelFlag
	}

	if f := engine.SetupLogging("haunted-gl", *debugFlag); f != nil {
		defer f.Close()
	}

	player := audio.NewPlayer(cfg.AudioPlayer())
	if err := player.Initialize(); err != nil {
		log.Printf("audio: %v (continuing without sound)", err)
	}
	defer player.Cleanup()

	metrics := engine.NewMetrics()
	scene, err := engine.HauntedFromConfig(cfg, player, metrics)
	if err != nil {
		fmt.Fprintf(os.Stderr, "haunted-gl: %v\n", err)
		os.Exit(1)
	}
	km, err := cfg.Keymap()
	if err != nil {
		fmt.Fprintf(os.Stderr, "haunted-gl: %v\n", err)
		os.Exit(1)
	}

	w, h := cfg.Screen.Width, cfg.Screen.Height
	g := &game{frame: ebiten.NewImage(w, h)}
	g.loop = &engine.Loop{
		Scene:     scene,
		Surface:   render.NewSurface(w, h),
		Presenter: g,
		Input:     &keySource{keymap: km},
		Metrics:   metrics,
	}

	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("haunted")
	ebiten.SetTPS(max(1, cfg.Screen.FPS))

	if err := ebiten.RunGame(g); err != nil {
		log.Printf("haunted-gl: %v", err)
		fmt.Fprintf(os.Stderr, "haunted-gl: %v\n", err)
		os.Exit(1)
	}
}
