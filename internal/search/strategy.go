package search

import "math"

// Strategy describes one frame-subsampling attempt: keep every stride-th
// frame and re-time the survivors with a uniform delay (gifsicle --delay
// units). Strategies are generated once per search and consumed read-only.
type Strategy struct {
	Stride int
	Delay  int
}

// aggressiveThreshold is the frame count above which extra high-stride
// strategies are worth trying.
const aggressiveThreshold = 30

// generateStrategies builds the candidate strategy set for an animation
// with frameCount frames, keeping at least minFramePercent% of them (never
// fewer than 3 frames). The result is deterministic for given inputs.
//
// Generated strides start at 2; stride 1 is the baseline pass, which runs
// separately before any strategy.
func generateStrategies(frameCount, minFramePercent int) []Strategy {
	minFrames := int(math.Round(float64(frameCount) * float64(minFramePercent) / 100.0))
	if minFrames < 3 {
		minFrames = 3
	}

	maxStride := int(math.Ceil(float64(frameCount) / float64(minFrames)))
	if maxStride < 2 {
		maxStride = 2
	}
	if maxStride > 10 {
		maxStride = 10
	}

	var strategies []Strategy
	for stride := 2; stride <= maxStride; stride++ {
		strategies = append(strategies, Strategy{Stride: stride, Delay: delayFor(stride, frameCount)})
	}

	if frameCount > aggressiveThreshold {
		for _, stride := range []int{maxStride + 5, maxStride + 10} {
			if frameCount/stride >= minFrames {
				strategies = append(strategies, Strategy{Stride: stride, Delay: delayFor(stride, frameCount)})
			}
		}
	}

	return strategies
}

// delayFor spreads the original playback duration over the surviving
// frames. The integer truncation and +10 floor are deliberate: small
// strides would otherwise produce degenerate near-zero delays.
func delayFor(stride, frameCount int) int {
	return int(100.0*float64(stride)/float64(frameCount)) + 10
}
