// Package inspect reads basic properties of animated GIF files: byte size
// and frame count. It decodes container structure only as far as needed to
// count frames and never re-encodes anything.
package inspect

import (
	"bufio"
	"errors"
	"fmt"
	"image/gif"
	"os"

	"gif-shrink/internal/logging"
)

// ErrNoFrames reports an animation whose container decoded to zero frames.
var ErrNoFrames = errors.New("gif has no frames")

// Info summarizes a GIF file for callers that just want the numbers.
type Info struct {
	SizeKB     float64 `json:"sizeKb"`
	FrameCount int     `json:"frameCount"`
}

// FileSizeKB returns the file's size in kilobytes.
func FileSizeKB(path string) (float64, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("stat %s: %w", path, err)
	}
	return float64(fi.Size()) / 1024.0, nil
}

// FrameCount decodes the GIF container at path and returns the number of
// frames. A structurally valid GIF with zero frames yields ErrNoFrames.
func FrameCount(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			logging.Warn("failed to close gif file %s: %v", path, err)
		}
	}()

	g, err := gif.DecodeAll(bufio.NewReader(f))
	if err != nil {
		return 0, fmt.Errorf("decode gif %s: %w", path, err)
	}
	if len(g.Image) == 0 {
		return 0, ErrNoFrames
	}
	return len(g.Image), nil
}

// Stat returns both size and frame count for path.
func Stat(path string) (*Info, error) {
	size, err := FileSizeKB(path)
	if err != nil {
		return nil, err
	}
	count, err := FrameCount(path)
	if err != nil {
		return nil, err
	}
	return &Info{SizeKB: size, FrameCount: count}, nil
}
