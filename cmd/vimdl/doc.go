// Package main hosts the vimdl CLI entrypoint and command graph.
//
// The Cobra command tree resolves configuration lazily, builds the logger and
// HTTP client from it, and hands the actual work to the internal packages:
// download runs the orchestrator, renditions inspects a manifest, history
// reads the run journal, and doctor checks external binaries.
package main
