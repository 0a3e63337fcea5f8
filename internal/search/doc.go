/*
Package search implements the concurrent multi-strategy compression search.

Given an animated GIF and a byte-size budget, the search runs a baseline
optimization pass, then tries several frame-subsampling strategies in
parallel, each followed by iterative lossy refinement, and keeps the
smallest result. The first result that fits the budget wins immediately;
otherwise the best effort across all strategies is returned.

Workers coordinate through two atomics: a monotonically non-increasing
best-size and a one-way target-found flag. The flag is advisory, polled at
checkpoints between expensive encoder invocations, never a hard preemption,
so an in-flight subprocess always runs to completion. Results travel to the
coordinator over a channel, one terminal message per worker, and every
non-winning artifact is deleted before the search returns.
*/
package search
