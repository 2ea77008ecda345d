package terminal

import (
	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"

	"github.com/lixenwraith/haunted/engine"
)

// Open initializes the terminal screen and registers its restore as the crash cleanup
func Open() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, errors.Wrap(err, "terminal")
	}
	if err := screen.Init(); err != nil {
		return nil, errors.Wrap(err, "terminal init")
	}
	screen.HideCursor()
	screen.Clear()
	engine.SetCrashCleanup(screen.Fini)
	return screen, nil
}
