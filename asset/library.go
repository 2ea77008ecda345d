package asset

import (
	"image"
	"image/color"
	"log"
	"path/filepath"
	"sync"
)

// Wall element kinds drawn over hit slices
const (
	KindGhost    = "ghost"
	KindPainting = "painting"
	KindCrack    = "crack"
	KindSkeleton = "skeleton"
	KindChair    = "chair"
	KindMirror   = "mirror"
)

// Sprite placeholder kinds for actor frame sets
const (
	SpriteGhost    = "ghost"
	SpriteStickman = "stickman"
)

// Library resolves frame sets and decorations under a root directory, caching results
// Layout: <root>/<set>/*.png for actors, <root>/ghost and <root>/paintings for
// wall textures, <root>/skull/<kind>.png for other decorations
type Library struct {
	root string
	tile int
	seed int64

	mu     sync.Mutex
	actors map[string]Frames
	walls  map[string]Frames
}

// NewLibrary creates a library rooted at dir; tile is the placeholder size in pixels
func NewLibrary(dir string, tile int, seed int64) *Library {
	if tile <= 0 {
		tile = 64
	}
	return &Library{
		root:   dir,
		tile:   tile,
		seed:   seed,
		actors: make(map[string]Frames),
		walls:  make(map[string]Frames),
	}
}

// PlaceholderFor maps a sprite kind to its generator
func PlaceholderFor(sprite string) Placeholder {
	if sprite == SpriteStickman {
		return Stickman
	}
	return Ghost
}

// Actor returns the frames of a named set, generating a placeholder of the given kind
// when the set directory holds no PNGs. size <= 0 uses the tile size
func (l *Library) Actor(set, sprite string, size int) Frames {
	l.mu.Lock()
	defer l.mu.Unlock()

	key := set + "/" + sprite
	if f, ok := l.actors[key]; ok {
		return f
	}
	if size <= 0 {
		size = l.tile
	}

	var frames Frames
	if set != "" {
		frames = LoadFramesOrPlaceholder(filepath.Join(l.root, set), size, PlaceholderFor(sprite))
	} else {
		frames = Frames{PlaceholderFor(sprite)(size)}
	}
	log.Printf("asset: actor set %q resolved to %d frame(s)", key, len(frames))
	l.actors[key] = frames
	return frames
}

// Wall returns decoration frame index of kind, wrapping the index
// Unknown kinds get a gray mottled tile
func (l *Library) Wall(kind string, index int) image.Image {
	l.mu.Lock()
	defer l.mu.Unlock()

	frames, ok := l.walls[kind]
	if !ok {
		frames = l.loadWall(kind)
		l.walls[kind] = frames
	}
	if index < 0 {
		index = -index
	}
	return frames[index%len(frames)]
}

func (l *Library) loadWall(kind string) Frames {
	switch kind {
	case KindGhost:
		return LoadFramesOrPlaceholder(filepath.Join(l.root, "ghost"), l.tile,
			Tint(color.NRGBA{R: 200, G: 200, B: 255, A: 100}))
	case KindPainting:
		return LoadFramesOrPlaceholder(filepath.Join(l.root, "paintings"), l.tile,
			Tint(color.NRGBA{R: 255, G: 100, B: 100, A: 100}))
	default:
		path := filepath.Join(l.root, "skull", kind+".png")
		return Frames{LoadOrPlaceholder(path, l.tile, Mottled(color.NRGBA{R: 100, G: 100, B: 100, A: 150}, l.seed))}
	}
}
