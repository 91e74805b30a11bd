// Package preflight provides readiness checks for the filesystem paths a
// download writes into. The doctor command reports them next to the external
// binary checks.
//
// Each check is gated by its config toggle; disabled features are skipped.
package preflight
