// Package frames implements frame subsampling for animated GIFs.
//
// An input animation is fully decoded, its frames are coalesced onto the
// logical screen (GIF frames may be partial rectangles with
// background/previous disposal), every Nth frame is kept, and the survivors
// are handed to the external encoder to merge into a new animation with a
// uniform inter-frame delay.
//
// Frame selection lives here; encoding stays with the external tool, which
// is a correct and optimized GIF writer.
package frames
