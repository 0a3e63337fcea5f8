// Package refine drives the external encoder's lossy recompression mode
// against a working file, walking a fixed ascending ladder of distortion
// levels until the byte budget is met or the ladder is exhausted.
//
// Levels are processed in small batches to bound the number of temporary
// files a worker holds open at once. Each level recompresses the current
// best file for this worker, so sizes only ever decrease along the chain.
package refine
