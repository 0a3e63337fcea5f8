package frames

import (
	"bufio"
	"context"
	"fmt"
	"image"
	"image/gif"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"

	"gif-shrink/internal/inspect"
	"gif-shrink/internal/logging"
)

// Merger merges ordered single-frame files into one looping animation.
// *gifsicle.Encoder satisfies it.
type Merger interface {
	Merge(ctx context.Context, framePaths []string, outputPath string, delay int) error
}

// Extract decodes inputPath, keeps every stride-th frame and writes the
// result to outputPath with the given uniform delay (hundredths of a
// second). The per-frame working files live in a scoped temporary directory
// that is removed before Extract returns, whatever the merge outcome.
func Extract(ctx context.Context, merger Merger, inputPath, outputPath string, stride, delay int) error {
	if stride < 1 {
		return fmt.Errorf("invalid stride %d", stride)
	}

	f, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("open %s: %w", inputPath, err)
	}
	g, err := gif.DecodeAll(bufio.NewReader(f))
	if cerr := f.Close(); cerr != nil {
		logging.Warn("failed to close gif file %s: %v", inputPath, cerr)
	}
	if err != nil {
		return fmt.Errorf("decode gif %s: %w", inputPath, err)
	}
	if len(g.Image) == 0 {
		return inspect.ErrNoFrames
	}

	coalesced := coalesce(g)
	indices := selectIndices(len(coalesced), stride)

	tmpDir, err := os.MkdirTemp("", "gif_frames_")
	if err != nil {
		return fmt.Errorf("create frame temp dir: %w", err)
	}
	defer func() {
		if err := os.RemoveAll(tmpDir); err != nil {
			logging.Warn("failed to remove frame temp dir %s: %v", tmpDir, err)
		}
	}()

	framePaths := make([]string, 0, len(indices))
	for i, idx := range indices {
		framePath := filepath.Join(tmpDir, fmt.Sprintf("frame_%d.gif", i))
		if err := writeFrame(framePath, coalesced[idx]); err != nil {
			return err
		}
		framePaths = append(framePaths, framePath)
	}

	return merger.Merge(ctx, framePaths, outputPath, delay)
}

// selectIndices returns the zero-indexed positions 0, stride, 2*stride, …
// below n. A result that would be empty collapses to just the first frame.
func selectIndices(n, stride int) []int {
	var indices []int
	for i := 0; i < n; i += stride {
		indices = append(indices, i)
	}
	if len(indices) == 0 {
		indices = []int{0}
	}
	return indices
}

// coalesce composites each raw paletted frame onto the logical screen so
// every returned frame is self-contained. Background disposal clears the
// frame's rectangle; previous disposal restores the canvas snapshot taken
// before the frame was drawn.
func coalesce(g *gif.GIF) []*image.NRGBA {
	bounds := image.Rect(0, 0, g.Config.Width, g.Config.Height)
	if bounds.Empty() {
		for _, frame := range g.Image {
			bounds = bounds.Union(frame.Bounds())
		}
	}

	canvas := image.NewNRGBA(bounds)
	out := make([]*image.NRGBA, len(g.Image))

	for i, frame := range g.Image {
		var prev *image.NRGBA
		disposal := byte(gif.DisposalNone)
		if i < len(g.Disposal) {
			disposal = g.Disposal[i]
		}
		if disposal == gif.DisposalPrevious {
			prev = imaging.Clone(canvas)
		}

		draw.Draw(canvas, frame.Bounds(), frame, frame.Bounds().Min, draw.Over)
		out[i] = imaging.Clone(canvas)

		switch disposal {
		case gif.DisposalBackground:
			draw.Draw(canvas, frame.Bounds(), image.Transparent, image.Point{}, draw.Src)
		case gif.DisposalPrevious:
			canvas = prev
		}
	}

	return out
}

// writeFrame serializes one coalesced frame as a minimal single-frame GIF.
func writeFrame(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create frame file %s: %w", path, err)
	}

	w := bufio.NewWriter(f)
	encErr := gif.Encode(w, img, &gif.Options{NumColors: 256})
	if encErr == nil {
		encErr = w.Flush()
	}
	if cerr := f.Close(); cerr != nil && encErr == nil {
		encErr = cerr
	}
	if encErr != nil {
		return fmt.Errorf("encode frame %s: %w", path, encErr)
	}
	return nil
}
