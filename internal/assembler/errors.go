package assembler

import (
	"fmt"

	"vimdl/internal/services"
)

// IndexBlob is the SegmentDownloadError index reported for the index segment.
const IndexBlob = -1

// SegmentDownloadError reports a failed segment or index request.
type SegmentDownloadError struct {
	Index      int
	URL        string
	StatusCode int
	Err        error
}

func (e *SegmentDownloadError) Error() string {
	what := fmt.Sprintf("segment %d", e.Index)
	if e.Index == IndexBlob {
		what = "index segment"
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("download %s (%s): status %d", what, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("download %s (%s): %v", what, e.URL, e.Err)
}

func (e *SegmentDownloadError) Unwrap() []error {
	if e.Err == nil {
		return []error{services.ErrTransient}
	}
	return []error{services.ErrTransient, e.Err}
}

// SegmentSizeError reports a segment body whose length differs from the
// size declared in the manifest.
type SegmentSizeError struct {
	Index    int
	URL      string
	Declared int64
	Received int64
}

func (e *SegmentSizeError) Error() string {
	return fmt.Sprintf("segment %d (%s): declared %d bytes, received %d", e.Index, e.URL, e.Declared, e.Received)
}

func (e *SegmentSizeError) Unwrap() error {
	return services.ErrValidation
}
