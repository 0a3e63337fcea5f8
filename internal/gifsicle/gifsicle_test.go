package gifsicle

import (
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewDefaultBinary(t *testing.T) {
	t.Setenv("GIFSICLE_PATH", "")

	enc := New()
	if enc.bin != "gifsicle" {
		t.Errorf("New().bin = %q, want %q", enc.bin, "gifsicle")
	}
}

func TestNewEnvOverride(t *testing.T) {
	t.Setenv("GIFSICLE_PATH", "/opt/tools/gifsicle")

	enc := New()
	if enc.bin != "/opt/tools/gifsicle" {
		t.Errorf("New().bin = %q, want env override", enc.bin)
	}
}

func TestProbeMissingBinary(t *testing.T) {
	t.Setenv("GIFSICLE_PATH", filepath.Join(t.TempDir(), "no-such-gifsicle"))

	err := New().Probe(context.Background())
	if err == nil {
		t.Fatal("expected Probe to fail for missing binary")
	}
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Probe() error = %v, want ErrNotFound", err)
	}
}

func TestProbeInstalled(t *testing.T) {
	if _, err := exec.LookPath("gifsicle"); err != nil {
		t.Skip("gifsicle not installed")
	}
	t.Setenv("GIFSICLE_PATH", "")

	if err := New().Probe(context.Background()); err != nil {
		t.Errorf("Probe() error = %v, want nil", err)
	}
}

func TestExecError(t *testing.T) {
	inner := errors.New("exit status 1")

	withStderr := &ExecError{Mode: "lossy", Stderr: "bad colormap", Err: inner}
	if !strings.Contains(withStderr.Error(), "bad colormap") {
		t.Errorf("Error() = %q, want stderr text included", withStderr.Error())
	}
	if !strings.Contains(withStderr.Error(), "lossy") {
		t.Errorf("Error() = %q, want mode included", withStderr.Error())
	}
	if !errors.Is(withStderr, inner) {
		t.Error("expected ExecError to unwrap to inner error")
	}

	bare := &ExecError{Mode: "merge", Err: inner}
	if strings.Contains(bare.Error(), ": $") {
		t.Errorf("Error() = %q, unexpected trailing separator", bare.Error())
	}
}
