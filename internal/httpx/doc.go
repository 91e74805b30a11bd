// Package httpx builds the HTTP client shared by manifest and segment
// retrieval and provides a buffered single-attempt GET helper.
package httpx
