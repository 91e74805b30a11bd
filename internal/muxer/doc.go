// Package muxer wraps the external tool that joins the assembled audio and
// video tracks. The ffmpeg implementation performs a stream copy with no
// re-encoding.
package muxer
