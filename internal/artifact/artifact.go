package artifact

import (
	"fmt"
	"os"

	"gif-shrink/internal/logging"
	"gif-shrink/internal/metrics"
)

// Handle owns one temporary file until released or moved via Take.
// A Handle is not safe for concurrent use; ownership handoff between
// goroutines must be synchronized externally (the search engine moves
// handles through channels, which provides the necessary ordering).
type Handle struct {
	path     string
	released bool
}

// New creates an empty temporary file in dir (os.TempDir() when dir is
// empty) and returns an owning handle for it. The pattern follows
// os.CreateTemp semantics.
func New(dir, pattern string) (*Handle, error) {
	f, err := os.CreateTemp(dir, pattern)
	if err != nil {
		return nil, fmt.Errorf("create temp artifact: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("close temp artifact %s: %w", f.Name(), err)
	}
	return &Handle{path: f.Name()}, nil
}

// Path returns the file path as a non-owning borrow. Holding the returned
// string never obligates or entitles the holder to delete the file.
func (h *Handle) Path() string {
	return h.path
}

// SizeKB stats the file and returns its size in kilobytes.
func (h *Handle) SizeKB() (float64, error) {
	fi, err := os.Stat(h.path)
	if err != nil {
		return 0, fmt.Errorf("stat artifact %s: %w", h.path, err)
	}
	return float64(fi.Size()) / 1024.0, nil
}

// Take moves ownership of the file to a freshly returned handle. The
// receiver becomes inert: its Release is a no-op and Owned reports false.
// Take on a nil or already-released handle returns nil.
func (h *Handle) Take() *Handle {
	if h == nil || h.released {
		return nil
	}
	h.released = true
	return &Handle{path: h.path}
}

// Owned reports whether this handle is still responsible for the file.
func (h *Handle) Owned() bool {
	return h != nil && !h.released
}

// Release deletes the owned file. It is idempotent and a no-op on handles
// that gave up ownership via Take. Deletion failures are logged, not
// returned; cleanup is best effort.
func (h *Handle) Release() {
	if h == nil || h.released {
		return
	}
	h.released = true
	if err := os.Remove(h.path); err != nil {
		if !os.IsNotExist(err) {
			logging.Debug("failed to remove artifact %s: %v", h.path, err)
		}
		return
	}
	metrics.ArtifactsReleasedTotal.Inc()
}
