package assembler

import (
	"fmt"

	"vimdl/internal/playlist"
	"vimdl/internal/services"
)

// Layout places the init blob, the index blob, and every segment in the
// assembled file. Segment i starts after the two blobs, all earlier
// segments, and Padding bytes per earlier segment.
type Layout struct {
	InitSize  int64
	IndexSize int64
	Padding   int64
	offsets   []int64
	sizes     []int64
	total     int64
}

// NewLayout computes the layout for segments with the given blob sizes.
// Negative segment sizes are rejected.
func NewLayout(initSize, indexSize int64, segments []playlist.Segment, padding int64) (Layout, error) {
	if err := checkSegmentSizes(segments); err != nil {
		return Layout{}, err
	}
	l := Layout{
		InitSize:  initSize,
		IndexSize: indexSize,
		Padding:   padding,
		offsets:   make([]int64, len(segments)),
		sizes:     make([]int64, len(segments)),
	}
	cursor := initSize + indexSize
	for i, seg := range segments {
		l.offsets[i] = cursor
		l.sizes[i] = seg.Size
		cursor += seg.Size + padding
	}
	l.total = cursor
	return l, nil
}

func checkSegmentSizes(segments []playlist.Segment) error {
	for i, seg := range segments {
		if seg.Size < 0 {
			return services.Wrap(services.ErrValidation, "assemble", "layout", fmt.Sprintf("segment %d declares negative size %d", i, seg.Size), nil)
		}
	}
	return nil
}

// IndexOffset is where the index blob begins.
func (l Layout) IndexOffset() int64 {
	return l.InitSize
}

// Offset is the first byte of segment i.
func (l Layout) Offset(i int) int64 {
	return l.offsets[i]
}

// Size is the declared length of segment i.
func (l Layout) Size(i int) int64 {
	return l.sizes[i]
}

// Segments is the number of segments in the layout.
func (l Layout) Segments() int {
	return len(l.offsets)
}

// Total is the exact length of the assembled file.
func (l Layout) Total() int64 {
	return l.total
}
