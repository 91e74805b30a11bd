// Package history keeps a SQLite journal of download runs.
//
// Each run is inserted as running when the orchestrator starts and updated
// with its outcome (completed, failed, invalid) once it ends. The journal is
// informational: callers treat recording failures as warnings.
package history
