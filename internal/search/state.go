package search

import (
	"math"
	"sync/atomic"
)

// State is the shared coordination state for one search: the smallest
// candidate size seen so far and whether any worker has met the budget.
// All mutations are single atomic operations; there are no locks. A State
// lives exactly as long as one Compress call.
type State struct {
	// bestSize holds math.Float64bits of the best size. Candidate sizes
	// are non-negative, and for non-negative floats the IEEE-754 bit
	// pattern preserves numeric order, so the CAS loop can compare raw
	// bits directly.
	bestSize    atomic.Uint64
	targetFound atomic.Bool
}

// NewState returns a fresh State with the best size at +Inf.
func NewState() *State {
	s := &State{}
	s.bestSize.Store(math.Float64bits(math.Inf(1)))
	return s
}

// UpdateBestSize records size as the new best if it is strictly smaller
// than the current best, reporting whether the update won. Concurrent
// updates never regress the recorded value.
func (s *State) UpdateBestSize(size float64) bool {
	bits := math.Float64bits(size)
	for {
		current := s.bestSize.Load()
		if bits >= current {
			return false
		}
		if s.bestSize.CompareAndSwap(current, bits) {
			return true
		}
	}
}

// BestSize returns the smallest size recorded so far.
func (s *State) BestSize() float64 {
	return math.Float64frombits(s.bestSize.Load())
}

// MarkTargetFound sets the advisory flag; it is never cleared.
func (s *State) MarkTargetFound() {
	s.targetFound.Store(true)
}

// TargetFound reports whether any worker has met the budget.
func (s *State) TargetFound() bool {
	return s.targetFound.Load()
}
