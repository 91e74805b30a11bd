package playlist

import (
	"fmt"

	"vimdl/internal/services"
)

// FetchError reports a failed manifest retrieval: a transport error or a
// non-success response.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch manifest %s: status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch manifest %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() []error {
	if e.Err == nil {
		return []error{services.ErrTransient}
	}
	return []error{services.ErrTransient, e.Err}
}

// SchemaError reports a manifest whose structure does not match the playlist
// shape exactly. Path uses gjson dot notation (e.g. "video.0.segments.3.size").
type SchemaError struct {
	Path   string
	Reason string
	Err    error
}

func (e *SchemaError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("manifest schema: %s", e.Reason)
	}
	return fmt.Sprintf("manifest schema: %s: %s", e.Path, e.Reason)
}

func (e *SchemaError) Unwrap() []error {
	if e.Err == nil {
		return []error{services.ErrValidation}
	}
	return []error{services.ErrValidation, e.Err}
}
