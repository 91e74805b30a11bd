// Package fileutil holds small filesystem helpers shared by the assembler
// and the download orchestrator.
package fileutil
