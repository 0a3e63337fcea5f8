package gifsicle

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"time"

	"gif-shrink/internal/logging"
	"gif-shrink/internal/metrics"
)

// ErrNotFound reports that the gifsicle binary is absent from the search
// path. It is distinct from a present tool exiting non-zero.
var ErrNotFound = errors.New("gifsicle not found, make sure it is installed and in PATH")

// ExecError reports a gifsicle invocation that exited non-zero, carrying
// whatever diagnostic text the tool wrote to stderr.
type ExecError struct {
	Mode   string
	Stderr string
	Err    error
}

func (e *ExecError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("gifsicle %s failed: %v: %s", e.Mode, e.Err, e.Stderr)
	}
	return fmt.Sprintf("gifsicle %s failed: %v", e.Mode, e.Err)
}

func (e *ExecError) Unwrap() error { return e.Err }

// Encoder invokes the gifsicle binary. The zero value is not usable; call
// New.
type Encoder struct {
	bin string
}

// New returns an Encoder bound to the binary named by GIFSICLE_PATH, or
// "gifsicle" from PATH when unset.
func New() *Encoder {
	bin := os.Getenv("GIFSICLE_PATH")
	if bin == "" {
		bin = "gifsicle"
	}
	return &Encoder{bin: bin}
}

// Probe verifies the tool is present and runnable via a cheap version
// check. Absence maps to ErrNotFound.
func (e *Encoder) Probe(ctx context.Context) error {
	if _, err := exec.LookPath(e.bin); err != nil {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	return e.run(ctx, "probe", "--version")
}

// Optimize runs the baseline pass: highest optimization level with careful
// flags and metadata stripping, no frame dropping.
func (e *Encoder) Optimize(ctx context.Context, inputPath, outputPath string) error {
	return e.run(ctx, "optimize",
		"-O3",
		"--no-warnings",
		"--no-conserve-memory",
		"--no-comments",
		"--no-names",
		"--careful",
		inputPath,
		"-o", outputPath,
	)
}

// OptimizeFast re-optimizes a working file at the highest level without the
// careful flag. Used on freshly merged subsampled animations, which were
// just written by gifsicle itself.
func (e *Encoder) OptimizeFast(ctx context.Context, inputPath, outputPath string) error {
	return e.run(ctx, "optimize_fast", "-O3", inputPath, "-o", outputPath)
}

// Lossy recompresses inputPath at the given distortion level. Higher levels
// produce smaller, more distorted files; the scale is gifsicle's own.
func (e *Encoder) Lossy(ctx context.Context, level int, inputPath, outputPath string) error {
	return e.run(ctx, "lossy",
		"-O3",
		"--no-warnings",
		"--no-conserve-memory",
		"--no-comments",
		"--no-names",
		"--lossy="+strconv.Itoa(level),
		inputPath,
		"-o", outputPath,
	)
}

// Merge combines the given single-frame files, in order, into one looping
// animation at outputPath. delay is the uniform inter-frame delay in
// gifsicle's --delay units (hundredths of a second). Non-essential metadata
// is stripped to minimize overhead.
func (e *Encoder) Merge(ctx context.Context, framePaths []string, outputPath string, delay int) error {
	args := make([]string, 0, len(framePaths)+10)
	args = append(args,
		"--no-warnings",
		"--no-conserve-memory",
		"--no-app-extensions",
		"--no-comments",
		"--no-names",
		"-o", outputPath,
		"--delay", strconv.Itoa(delay),
		"--loopcount=forever",
	)
	args = append(args, framePaths...)
	return e.run(ctx, "merge", args...)
}

// run executes one gifsicle invocation, capturing stderr for diagnostics.
func (e *Encoder) run(ctx context.Context, mode string, args ...string) error {
	cmd := exec.CommandContext(ctx, e.bin, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	metrics.EncoderDuration.WithLabelValues(mode).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.EncoderInvocationsTotal.WithLabelValues(mode, "error").Inc()
		if errors.Is(err, exec.ErrNotFound) {
			return fmt.Errorf("%w: %v", ErrNotFound, err)
		}
		logging.Debug("gifsicle %s stderr: %s", mode, stderr.String())
		return &ExecError{Mode: mode, Stderr: stderr.String(), Err: err}
	}

	metrics.EncoderInvocationsTotal.WithLabelValues(mode, "success").Inc()
	return nil
}
