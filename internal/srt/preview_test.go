package srt

import (
	"errors"
	"fmt"
	"testing"
)

func previewTexts(segs []Segment) string {
	out := ""
	for _, s := range segs {
		out += s.TrimmedText()
	}
	return out
}

func TestPreviewKeepsHeadAndTail(t *testing.T) {
	p := NewPreview(3)
	for i := 0; i < 10; i++ {
		p.Observe(NewSegment(float64(i), float64(i+1), fmt.Sprint(i)))
	}
	if got := previewTexts(p.Head()); got != "012" {
		t.Fatalf("head = %q", got)
	}
	if got := previewTexts(p.Tail()); got != "789" {
		t.Fatalf("tail = %q", got)
	}
	if p.Total() != 10 {
		t.Fatalf("total = %d", p.Total())
	}
}

func TestPreviewShortStreamOverlaps(t *testing.T) {
	p := NewPreview(3)
	p.Observe(NewSegment(0, 1, "a"))
	p.Observe(NewSegment(1, 2, "b"))
	if previewTexts(p.Head()) != "ab" || previewTexts(p.Tail()) != "ab" {
		t.Fatalf("head=%q tail=%q", previewTexts(p.Head()), previewTexts(p.Tail()))
	}
}

func TestPreviewWrapPassesThrough(t *testing.T) {
	p := NewPreview(2)
	boom := errors.New("bad")
	seq := func(yield func(Segment, error) bool) {
		if !yield(NewSegment(0, 1, "x"), nil) {
			return
		}
		yield(Segment{}, boom)
	}
	var sawErr bool
	for _, err := range p.Wrap(seq) {
		if err != nil {
			sawErr = true
		}
	}
	if !sawErr {
		t.Fatal("expected error to pass through")
	}
	if p.Total() != 1 {
		t.Fatalf("expected only valid segments observed, got %d", p.Total())
	}
}

func TestPreviewZeroLimit(t *testing.T) {
	p := NewPreview(0)
	p.Observe(NewSegment(0, 1, "x"))
	if len(p.Head()) != 0 || len(p.Tail()) != 0 || p.Total() != 1 {
		t.Fatal("zero limit preview should only count")
	}
}
