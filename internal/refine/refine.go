package refine

import (
	"context"

	"gif-shrink/internal/artifact"
	"gif-shrink/internal/logging"
	"gif-shrink/internal/metrics"
)

// Levels is the ascending lossy-distortion ladder, in gifsicle's
// dimensionless units.
var Levels = []int{30, 60, 90, 120, 150, 180, 210, 240}

// batchSize bounds concurrently held candidate files per worker while still
// overlapping subprocess latency.
const batchSize = 2

// Recompressor runs the encoder's single-file lossy mode.
// *gifsicle.Encoder satisfies it.
type Recompressor interface {
	Lossy(ctx context.Context, level int, inputPath, outputPath string) error
}

// SearchState is the cross-worker coordination surface the refiner needs:
// an advisory "someone already met the budget" flag.
type SearchState interface {
	TargetFound() bool
	MarkTargetFound()
}

// Result is the best candidate a refinement run reached. The caller takes
// ownership of Artifact.
type Result struct {
	SizeKB    float64
	Artifact  *artifact.Handle
	Satisfied bool
}

// Run refines start (owned by the refiner from here on) toward targetKB.
// It returns the smallest candidate produced, which may be start itself if
// no lossy level improved on it. When a candidate meets the budget the
// global flag is set and no further batches are issued.
func Run(ctx context.Context, enc Recompressor, state SearchState, start *artifact.Handle, startSizeKB, targetKB float64, log *logging.Prefixed) Result {
	best := start
	bestSize := startSizeKB
	satisfied := false

	for batchStart := 0; batchStart < len(Levels); batchStart += batchSize {
		if state.TargetFound() {
			log.Debug("target met elsewhere, stopping lossy refinement")
			break
		}

		batch := Levels[batchStart:min(batchStart+batchSize, len(Levels))]
		candidates := runBatch(ctx, enc, best.Path(), batch, log)

		for _, cand := range candidates {
			switch {
			case cand.sizeKB <= targetKB:
				log.Info("lossy=%d met the target size", cand.level)
				if cand.sizeKB < bestSize {
					best.Release()
					best = cand.handle
					bestSize = cand.sizeKB
				}
				satisfied = true
				state.MarkTargetFound()
			case cand.sizeKB < bestSize:
				best.Release()
				best = cand.handle
				bestSize = cand.sizeKB
			}
			if satisfied {
				break
			}
		}

		for _, cand := range candidates {
			if cand.handle != best {
				cand.handle.Release()
			}
		}

		if satisfied {
			break
		}
	}

	return Result{SizeKB: bestSize, Artifact: best, Satisfied: satisfied}
}

type candidate struct {
	level  int
	handle *artifact.Handle
	sizeKB float64
}

// runBatch recompresses inputPath at each level in the batch, returning one
// measured candidate per successful invocation. Failures are logged and
// skipped; their files are cleaned up here.
func runBatch(ctx context.Context, enc Recompressor, inputPath string, levels []int, log *logging.Prefixed) []candidate {
	candidates := make([]candidate, 0, len(levels))

	for _, level := range levels {
		h, err := artifact.New("", "gif_lossy_*")
		if err != nil {
			log.Warn("failed to create lossy=%d candidate file: %v", level, err)
			continue
		}

		if err := enc.Lossy(ctx, level, inputPath, h.Path()); err != nil {
			log.Warn("lossy=%d recompression failed: %v", level, err)
			h.Release()
			continue
		}

		size, err := h.SizeKB()
		if err != nil {
			log.Warn("failed to measure lossy=%d candidate: %v", level, err)
			h.Release()
			continue
		}

		metrics.CandidatesProducedTotal.Inc()
		log.Info("subsampled + lossy=%d size: %.2f KB", level, size)
		candidates = append(candidates, candidate{level: level, handle: h, sizeKB: size})
	}

	return candidates
}
