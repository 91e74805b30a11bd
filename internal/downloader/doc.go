// Package downloader orchestrates a single download run.
//
// A run locks the output path, fetches and validates the manifest, selects
// one audio and one 1080p video rendition, assembles both tracks
// concurrently into temporaries under the work directory, and muxes them
// into the requested output. Each run is tagged with a UUID that appears in
// log lines, temporary file names, and the optional run history.
package downloader
