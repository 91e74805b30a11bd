// Package services defines shared utilities consumed by the download pipeline
// stages.
//
// Key responsibilities:
//   - Context helpers that stamp run identifiers, track kinds, and stage names
//     for logging.
//   - Structured error markers plus the Wrap helper that translate failures
//     into consistent history statuses (failed vs invalid).
//
// Use these helpers when wiring new stage logic so error classification and
// log fields stay uniform across the pipeline.
package services
