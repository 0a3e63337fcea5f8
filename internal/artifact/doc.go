// Package artifact manages the transient files produced by the compression
// search.
//
// Every candidate file the search creates is wrapped in a Handle that owns
// the underlying path. Ownership is move-only: Take transfers responsibility
// for deletion to a new handle and inertizes the old one, Path hands out a
// non-owning borrow, and Release deletes the file exactly once. This keeps a
// single logical owner per file even as candidates race through workers and
// the coordinator's merge point.
package artifact
