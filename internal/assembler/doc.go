// Package assembler reconstructs a single media file from a segmented track.
//
// The init blob is decoded from the manifest, the index blob is fetched, and
// the output is sized to its final length before any segment arrives. Segments
// are then downloaded concurrently and written with positioned writes at
// offsets derived from the declared sizes alone, so completion order never
// affects the result. Download and write parallelism are bounded separately;
// a download slot is held until its write completes, which caps buffered
// segment memory at DownloadConcurrency bodies.
//
// The first failure stops dispatch of further segments and prevents any
// further writes. Bytes already written stay in the file.
package assembler
