package refine

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"gif-shrink/internal/artifact"
	"gif-shrink/internal/logging"
)

// fakeEncoder produces candidate files whose sizes are scripted per level.
type fakeEncoder struct {
	sizes   map[int]int // level -> output size in bytes
	invoked []int
}

func (f *fakeEncoder) Lossy(_ context.Context, level int, _, outputPath string) error {
	f.invoked = append(f.invoked, level)
	return os.WriteFile(outputPath, make([]byte, f.sizes[level]), 0o644)
}

type fakeState struct {
	found bool
}

func (s *fakeState) TargetFound() bool { return s.found }
func (s *fakeState) MarkTargetFound()  { s.found = true }

func newStartArtifact(t *testing.T, sizeBytes int) *artifact.Handle {
	t.Helper()
	h, err := artifact.New("", "refine_test_start_*")
	if err != nil {
		t.Fatalf("artifact.New() error: %v", err)
	}
	if err := os.WriteFile(h.Path(), make([]byte, sizeBytes), 0o644); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
	return h
}

// scanTemp returns the names of leftover refine temp files under dir.
func scanTemp(t *testing.T, dir string) []string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, "gif_lossy_*"))
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	return matches
}

func TestRunWalksFullLadder(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("TMPDIR", tmp)

	// Sizes shrink along the ladder but never reach the 10 KB target.
	enc := &fakeEncoder{sizes: map[int]int{
		30: 90 * 1024, 60: 80 * 1024, 90: 70 * 1024, 120: 60 * 1024,
		150: 50 * 1024, 180: 40 * 1024, 210: 30 * 1024, 240: 20 * 1024,
	}}
	state := &fakeState{}
	start := newStartArtifact(t, 100*1024)

	res := Run(context.Background(), enc, state, start, 100, 10, logging.Worker(1))

	if res.Satisfied {
		t.Error("expected Satisfied=false when budget never met")
	}
	if res.SizeKB != 20 {
		t.Errorf("SizeKB = %v, want 20 (smallest ladder output)", res.SizeKB)
	}
	if len(enc.invoked) != len(Levels) {
		t.Errorf("invoked %d levels, want %d", len(enc.invoked), len(Levels))
	}
	if state.found {
		t.Error("target flag must stay unset")
	}

	// Only the winning candidate may remain on disk.
	res.Artifact.Release()
	if left := scanTemp(t, tmp); len(left) != 0 {
		t.Errorf("leftover candidate files: %v", left)
	}
}

func TestRunStopsWhenBudgetMet(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("TMPDIR", tmp)

	// Level 60 (first batch) meets the 50 KB target.
	enc := &fakeEncoder{sizes: map[int]int{
		30: 80 * 1024, 60: 45 * 1024, 90: 5 * 1024, 120: 5 * 1024,
	}}
	state := &fakeState{}
	start := newStartArtifact(t, 100*1024)

	res := Run(context.Background(), enc, state, start, 100, 50, logging.Worker(1))

	if !res.Satisfied {
		t.Error("expected Satisfied=true")
	}
	if res.SizeKB != 45 {
		t.Errorf("SizeKB = %v, want 45", res.SizeKB)
	}
	if !state.found {
		t.Error("expected global target flag to be set")
	}
	if len(enc.invoked) != 2 {
		t.Errorf("invoked levels %v, want only the first batch", enc.invoked)
	}

	res.Artifact.Release()
	if left := scanTemp(t, tmp); len(left) != 0 {
		t.Errorf("leftover candidate files: %v", left)
	}
}

func TestRunAbortsWhenTargetAlreadyFound(t *testing.T) {
	enc := &fakeEncoder{sizes: map[int]int{}}
	state := &fakeState{found: true}
	start := newStartArtifact(t, 100*1024)
	defer start.Release()

	res := Run(context.Background(), enc, state, start, 100, 10, logging.Worker(1))

	if len(enc.invoked) != 0 {
		t.Errorf("invoked levels %v, want none", enc.invoked)
	}
	if res.Artifact != start {
		t.Error("expected start artifact returned unchanged")
	}
	if res.SizeKB != 100 {
		t.Errorf("SizeKB = %v, want 100", res.SizeKB)
	}
}

func TestRunDiscardsRegressions(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("TMPDIR", tmp)

	// Every level produces a file larger than the start; best must stay start.
	enc := &fakeEncoder{sizes: map[int]int{
		30: 200 * 1024, 60: 210 * 1024, 90: 220 * 1024, 120: 230 * 1024,
		150: 240 * 1024, 180: 250 * 1024, 210: 260 * 1024, 240: 270 * 1024,
	}}
	state := &fakeState{}
	start := newStartArtifact(t, 100*1024)

	res := Run(context.Background(), enc, state, start, 100, 10, logging.Worker(2))

	if res.Artifact != start {
		t.Error("expected start artifact to remain best")
	}
	if res.SizeKB != 100 {
		t.Errorf("SizeKB = %v, want 100", res.SizeKB)
	}

	res.Artifact.Release()
	if left := scanTemp(t, tmp); len(left) != 0 {
		t.Errorf("leftover candidate files: %v", left)
	}
}
