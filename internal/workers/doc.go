/*
Package workers determines how many concurrent compression workers to run.

The search engine is subprocess-bound: each worker spends most of its time
waiting on an external encoder invocation, but the encoder itself is
CPU-intensive. One worker per available CPU is therefore the right default.

runtime.NumCPU() reports the host machine's CPU count even when a container
cgroup limits the process to fewer cores; GOMAXPROCS (Go 1.19+) respects the
limit, so worker counts are derived from runtime.GOMAXPROCS(0).

Operators can override the automatic calculation with the GIF_SHRINK_WORKERS
environment variable:

	GIF_SHRINK_WORKERS=4 gif-shrink compress big.gif -o small.gif --target-size 500

A caller-requested thread count of zero means "use all available hardware
parallelism", resolved through ForCPU.
*/
package workers
