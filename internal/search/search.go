package search

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/sync/semaphore"

	"gif-shrink/internal/artifact"
	"gif-shrink/internal/frames"
	"gif-shrink/internal/gifsicle"
	"gif-shrink/internal/inspect"
	"gif-shrink/internal/logging"
	"gif-shrink/internal/metrics"
	"gif-shrink/internal/refine"
	"gif-shrink/internal/workers"
)

// ErrNoValidResults reports a search where neither the baseline pass nor
// any strategy produced a usable candidate.
var ErrNoValidResults = errors.New("no strategy produced a usable result")

// Options are the caller-facing parameters of one compression search.
type Options struct {
	InputPath       string
	OutputPath      string
	TargetSizeKB    float64
	MinFramePercent int
	// ThreadCount caps concurrent workers; 0 means all available
	// hardware parallelism.
	ThreadCount int
}

// Result is the structured outcome of Compress. Success reports whether
// the target size was met; a best-effort compression that missed the
// target still fills in the sizes.
type Result struct {
	Success          bool    `json:"success"`
	OriginalSizeKB   float64 `json:"originalSizeKb"`
	CompressedSizeKB float64 `json:"compressedSizeKb"`
	OutputPath       string  `json:"outputPath"`
	Message          string  `json:"message"`
}

// Inspect returns size and frame count for path.
func Inspect(path string) (*inspect.Info, error) {
	return inspect.Stat(path)
}

// Compress searches for the smallest re-encoding of the input that fits
// under the target size and writes the winner to the output path. It never
// returns an error: failures are captured in the result's message.
func Compress(ctx context.Context, opts Options) Result {
	start := time.Now()
	originalKB, finalKB, err := run(ctx, opts)
	metrics.SearchDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.SearchesTotal.WithLabelValues("error").Inc()
		return Result{
			Success: false,
			Message: fmt.Sprintf("compression failed: %v", err),
		}
	}

	success := finalKB <= opts.TargetSizeKB
	reduction := (1.0 - finalKB/originalKB) * 100.0

	var outcome, message string
	switch {
	case success && finalKB == originalKB:
		outcome = "noop"
		message = "file already at or under the target size"
	case success:
		outcome = "target_met"
		message = fmt.Sprintf("compressed below the target size, %.1f%% reduction", reduction)
	default:
		outcome = "best_effort"
		message = fmt.Sprintf("could not reach the target size, best effort %.1f%% reduction", reduction)
	}
	metrics.SearchesTotal.WithLabelValues(outcome).Inc()

	return Result{
		Success:          success,
		OriginalSizeKB:   originalKB,
		CompressedSizeKB: finalKB,
		OutputPath:       opts.OutputPath,
		Message:          message,
	}
}

// run performs the search and returns the original and final sizes.
func run(ctx context.Context, opts Options) (float64, float64, error) {
	originalKB, err := inspect.FileSizeKB(opts.InputPath)
	if err != nil {
		return 0, 0, err
	}
	logging.Info("original size: %.2f KB", originalKB)

	// Idempotent no-op path: nothing to do beyond copying the input.
	if originalKB <= opts.TargetSizeKB {
		logging.Info("already under the %.2f KB target, copying as-is", opts.TargetSizeKB)
		if err := copyFile(opts.InputPath, opts.OutputPath); err != nil {
			return 0, 0, err
		}
		return originalKB, originalKB, nil
	}

	frameCount, err := inspect.FrameCount(opts.InputPath)
	if err != nil {
		return 0, 0, err
	}
	logging.Info("original frame count: %d", frameCount)

	// Detect an absent encoder once, before any strategy work.
	enc := gifsicle.New()
	if err := enc.Probe(ctx); err != nil {
		return 0, 0, err
	}

	baseline, optSize, err := baselinePass(ctx, enc, opts.InputPath)
	if err != nil {
		return 0, 0, err
	}
	logging.Info("baseline optimized size: %.2f KB", optSize)

	if optSize <= opts.TargetSizeKB {
		defer baseline.Release()
		if err := copyFile(baseline.Path(), opts.OutputPath); err != nil {
			return 0, 0, err
		}
		return originalKB, optSize, nil
	}

	strategies := generateStrategies(frameCount, opts.MinFramePercent)
	metrics.StrategiesGeneratedTotal.Add(float64(len(strategies)))

	threadCount := opts.ThreadCount
	if threadCount <= 0 {
		threadCount = workers.ForCPU(0)
	}
	if threadCount > len(strategies) {
		threadCount = len(strategies)
	}
	logging.Info("trying %d strategies across %d workers", len(strategies), threadCount)

	state := NewState()
	state.UpdateBestSize(optSize)

	sem := semaphore.NewWeighted(int64(threadCount))
	results := make(chan workerResult, len(strategies))

	for i, strat := range strategies {
		go func(id int, strat Strategy) {
			if err := sem.Acquire(ctx, 1); err != nil {
				results <- workerResult{}
				return
			}
			defer sem.Release(1)
			results <- runStrategy(ctx, enc, state, opts, strat, frameCount, id)
		}(i+1, strat)
	}

	best := baseline
	bestSize := optSize
	received := 0
	found := false

	for received < len(strategies) && !found {
		res := <-results
		received++
		if !res.ok {
			continue
		}
		switch {
		case res.satisfied:
			best.Release()
			best = res.art
			bestSize = res.sizeKB
			found = true
			state.MarkTargetFound()
			logging.Info("strategy met the target: %.2f KB", bestSize)
		case res.sizeKB < bestSize:
			best.Release()
			best = res.art
			bestSize = res.sizeKB
		default:
			res.art.Release()
		}
	}

	// Outstanding workers observe the target flag at their next checkpoint
	// and finish quickly; join them so no candidate file outlives the
	// search. The bound is one in-flight encoder invocation per worker.
	for received < len(strategies) {
		res := <-results
		received++
		res.art.Release()
	}

	if best == nil {
		return originalKB, 0, ErrNoValidResults
	}

	logging.Info("copying best result (%.2f KB) to %s", bestSize, opts.OutputPath)
	if err := copyFile(best.Path(), opts.OutputPath); err != nil {
		best.Release()
		return 0, 0, err
	}
	best.Release()

	finalKB, err := inspect.FileSizeKB(opts.OutputPath)
	if err != nil {
		return 0, 0, err
	}
	logging.Info("done, final size: %.2f KB", finalKB)
	return originalKB, finalKB, nil
}

// baselinePass optimizes the original in place (no frame dropping) to seed
// the initial best size.
func baselinePass(ctx context.Context, enc *gifsicle.Encoder, inputPath string) (*artifact.Handle, float64, error) {
	baseline, err := artifact.New("", "gif_opt_*")
	if err != nil {
		return nil, 0, err
	}
	if err := enc.Optimize(ctx, inputPath, baseline.Path()); err != nil {
		baseline.Release()
		return nil, 0, err
	}
	size, err := baseline.SizeKB()
	if err != nil {
		baseline.Release()
		return nil, 0, err
	}
	return baseline, size, nil
}

// workerResult is the single terminal message each worker sends to the
// coordinator. Ownership of art transfers with the message.
type workerResult struct {
	sizeKB    float64
	art       *artifact.Handle
	ok        bool
	satisfied bool
}

// runStrategy executes one strategy end to end: subsample, re-optimize,
// then lossy-refine. Failures are local; the worker just reports an
// unsuccessful result. The shared target flag is polled before and after
// each costly encoder step.
func runStrategy(ctx context.Context, enc *gifsicle.Encoder, state *State, opts Options, strat Strategy, frameCount, id int) workerResult {
	log := logging.Worker(id)
	failed := workerResult{}

	if state.TargetFound() {
		log.Debug("target met elsewhere, skipping strategy")
		return failed
	}

	expected := (frameCount + strat.Stride - 1) / strat.Stride
	log.Info("strategy: keep ~%d frames (1 in %d), delay %d", expected, strat.Stride, strat.Delay)

	extracted, err := artifact.New("", "gif_sub_*")
	if err != nil {
		log.Warn("failed to create working file: %v", err)
		return failed
	}

	if err := frames.Extract(ctx, enc, opts.InputPath, extracted.Path(), strat.Stride, strat.Delay); err != nil {
		log.Warn("frame extraction failed: %v", err)
		extracted.Release()
		return failed
	}

	if state.TargetFound() {
		extracted.Release()
		return failed
	}

	// A sub-kilobyte merge output means the encoder produced garbage.
	if size, err := extracted.SizeKB(); err != nil || size < 1.0 {
		log.Warn("extracted file unusable (size %.2f KB, err %v)", size, err)
		extracted.Release()
		return failed
	}

	optimized, err := artifact.New("", "gif_subopt_*")
	if err != nil {
		log.Warn("failed to create optimized working file: %v", err)
		extracted.Release()
		return failed
	}

	if err := enc.OptimizeFast(ctx, extracted.Path(), optimized.Path()); err != nil {
		log.Warn("post-extraction optimize failed: %v", err)
		extracted.Release()
		optimized.Release()
		return failed
	}
	extracted.Release()

	if state.TargetFound() {
		optimized.Release()
		return failed
	}

	optSize, err := optimized.SizeKB()
	if err != nil {
		log.Warn("failed to measure subsampled file: %v", err)
		optimized.Release()
		return failed
	}
	log.Info("subsampled size: %.2f KB", optSize)

	if optSize <= opts.TargetSizeKB {
		log.Info("target met before lossy refinement")
		state.UpdateBestSize(optSize)
		state.MarkTargetFound()
		return workerResult{sizeKB: optSize, art: optimized, ok: true, satisfied: true}
	}

	res := refine.Run(ctx, enc, state, optimized, optSize, opts.TargetSizeKB, log)

	if res.SizeKB < state.BestSize() {
		if state.UpdateBestSize(res.SizeKB) && res.SizeKB <= opts.TargetSizeKB {
			state.MarkTargetFound()
		}
	}

	return workerResult{sizeKB: res.SizeKB, art: res.Artifact, ok: true, satisfied: res.Satisfied}
}

// copyFile copies src to dst, truncating dst if it exists.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}
	defer func() {
		if err := in.Close(); err != nil {
			logging.Warn("failed to close %s: %v", src, err)
		}
	}()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy %s to %s: %w", src, dst, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close %s: %w", dst, err)
	}
	return nil
}
