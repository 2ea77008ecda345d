// Package asset loads sprite frames and wall decorations from disk and
// generates placeholders when files are missing, so callers always get a valid image.
package asset

import (
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Placeholder generates a stand-in image of the given size
type Placeholder func(size int) image.Image

// Frames is an ordered animation
type Frames []image.Image

// At returns the frame under an animation cursor, wrapping past the end
func (f Frames) At(cursor float64) image.Image {
	if len(f) == 0 {
		return nil
	}
	i := int(cursor) % len(f)
	if i < 0 {
		i += len(f)
	}
	return f[i]
}

// Load decodes one PNG file
func Load(path string) (image.Image, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer fh.Close()

	img, err := png.Decode(fh)
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", path)
	}
	return img, nil
}

// LoadOrPlaceholder never fails: unreadable files are replaced by the placeholder
func LoadOrPlaceholder(path string, size int, placeholder Placeholder) image.Image {
	img, err := Load(path)
	if err == nil {
		return img
	}
	log.Printf("asset: %v, using placeholder", err)
	return placeholder(size)
}

// LoadFrames reads every *.png in dir in name order, skipping hidden files
// A missing directory yields no frames and no error
func LoadFrames(dir string) (Frames, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", dir)
	}

	var names []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") || !strings.EqualFold(filepath.Ext(name), ".png") {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	frames := make(Frames, 0, len(names))
	for _, name := range names {
		img, err := Load(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		frames = append(frames, img)
	}
	return frames, nil
}

// LoadFramesOrPlaceholder returns the frames in dir, or a single placeholder frame
func LoadFramesOrPlaceholder(dir string, size int, placeholder Placeholder) Frames {
	frames, err := LoadFrames(dir)
	if err != nil {
		log.Printf("asset: %v, using placeholder", err)
	}
	if len(frames) == 0 {
		return Frames{placeholder(size)}
	}
	return frames
}
