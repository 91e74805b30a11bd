// Package playlist models the segmented media manifest and fetches it.
//
// Manifests are validated strictly: every declared key must be present with
// the declared JSON type and no other keys are accepted. Validation walks the
// raw document with gjson so errors name the exact offending path before the
// body is decoded into the Go types.
//
// The package also owns URL resolution for track-relative references
// (index blobs and segments).
package playlist
