package terminal

import (
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/haunted/engine"
	"github.com/lixenwraith/haunted/input"
)

// eventBuffer is the pending key capacity; overflow is dropped
const eventBuffer = 64

// keyNames maps special tcell keys to keymap names
var keyNames = map[tcell.Key]string{
	tcell.KeyUp:     "up",
	tcell.KeyDown:   "down",
	tcell.KeyLeft:   "left",
	tcell.KeyRight:  "right",
	tcell.KeyEscape: "escape",
	tcell.KeyEnter:  "enter",
	tcell.KeyTab:    "tab",
	tcell.KeyCtrlC:  "escape", // raw mode swallows SIGINT
}

// KeyName returns the keymap name of a key event, "" when unmapped
func KeyName(ev *tcell.EventKey) string {
	if ev.Key() == tcell.KeyRune {
		r := ev.Rune()
		if r == ' ' {
			return "space"
		}
		return strings.ToLower(string(r))
	}
	return keyNames[ev.Key()]
}

// Input pumps screen events into a hold tracker and resolves snapshots through a keymap
type Input struct {
	Keymap input.Keymap

	screen  tcell.Screen
	keys    chan string
	tracker *input.HoldTracker
}

// NewInput starts the event pump; it exits when the screen is finalized
func NewInput(screen tcell.Screen, km input.Keymap, hold time.Duration) *Input {
	in := &Input{
		Keymap:  km,
		screen:  screen,
		keys:    make(chan string, eventBuffer),
		tracker: input.NewHoldTracker(hold),
	}
	engine.Go(in.pump)
	return in
}

func (in *Input) pump() {
	for {
		switch ev := in.screen.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventKey:
			name := KeyName(ev)
			if name == "" {
				continue
			}
			select {
			case in.keys <- name:
			default:
			}
		case *tcell.EventResize:
			in.screen.Sync()
		}
	}
}

// Snapshot drains pending keys and resolves the held set at now
func (in *Input) Snapshot(now time.Time) input.Snapshot {
	for {
		select {
		case k := <-in.keys:
			in.tracker.Press(k, now)
		default:
			return in.Keymap.Resolve(in.tracker.Held(now))
		}
	}
}
