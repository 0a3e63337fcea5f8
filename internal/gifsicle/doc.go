// Package gifsicle wraps the gifsicle command-line tool, the external
// encoder the compression search drives.
//
// It supports:
//   - Presence probing (version check) before any real work starts
//   - Baseline whole-file optimization at the highest optimization level
//   - Lossy recompression at a caller-chosen distortion level
//   - Merging per-frame files into one looping animation with a uniform delay
//
// All invocations run as subprocesses and require gifsicle to be installed
// and available in the system PATH, or at the path named by the
// GIFSICLE_PATH environment variable.
package gifsicle
