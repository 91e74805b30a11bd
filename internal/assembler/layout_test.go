package assembler

import (
	"errors"
	"testing"

	"vimdl/internal/playlist"
	"vimdl/internal/services"
)

func mustLayout(t *testing.T, initSize, indexSize int64, segs []playlist.Segment, padding int64) Layout {
	t.Helper()
	l, err := NewLayout(initSize, indexSize, segs, padding)
	if err != nil {
		t.Fatalf("NewLayout returned error: %v", err)
	}
	return l
}

func TestLayoutContiguous(t *testing.T) {
	segs := []playlist.Segment{{Size: 100}, {Size: 200}, {Size: 150}}
	l := mustLayout(t, 10, 5, segs, 0)

	wantOffsets := []int64{15, 115, 315}
	for i, want := range wantOffsets {
		if got := l.Offset(i); got != want {
			t.Fatalf("offset(%d) = %d, want %d", i, got, want)
		}
	}
	if l.Total() != 465 {
		t.Fatalf("total = %d, want 465", l.Total())
	}
	if l.IndexOffset() != 10 {
		t.Fatalf("index offset = %d, want 10", l.IndexOffset())
	}
}

func TestLayoutPadded(t *testing.T) {
	segs := []playlist.Segment{{Size: 100}, {Size: 200}, {Size: 150}}
	l := mustLayout(t, 10, 5, segs, 1)

	wantOffsets := []int64{15, 116, 317}
	for i, want := range wantOffsets {
		if got := l.Offset(i); got != want {
			t.Fatalf("offset(%d) = %d, want %d", i, got, want)
		}
	}
	if l.Total() != 468 {
		t.Fatalf("total = %d, want 468", l.Total())
	}
}

func TestLayoutNoSegments(t *testing.T) {
	l := mustLayout(t, 7, 3, nil, 1)
	if l.Segments() != 0 || l.Total() != 10 {
		t.Fatalf("unexpected empty layout: segments=%d total=%d", l.Segments(), l.Total())
	}
}

func TestLayoutRejectsNegativeSize(t *testing.T) {
	segs := []playlist.Segment{{Size: 100}, {Size: -5}, {Size: 150}}
	if _, err := NewLayout(32, 0, segs, 0); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestLayoutAcceptsZeroSize(t *testing.T) {
	segs := []playlist.Segment{{Size: 0}, {Size: 4}}
	l := mustLayout(t, 2, 1, segs, 0)
	if l.Offset(0) != 3 || l.Offset(1) != 3 || l.Total() != 7 {
		t.Fatalf("unexpected layout: offsets=%d,%d total=%d", l.Offset(0), l.Offset(1), l.Total())
	}
}
