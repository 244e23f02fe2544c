package srt

import "iter"

// DefaultPreviewSize is the number of leading and trailing segments kept.
const DefaultPreviewSize = 3

// Preview keeps the first and last few segments of a stream without
// buffering the rest. It is filled by wrapping the sequence handed to an
// Assembler.
type Preview struct {
	limit int
	head  []Segment
	tail  []Segment
	next  int
	total int
}

// NewPreview returns a preview retaining up to limit segments at each end.
func NewPreview(limit int) *Preview {
	if limit < 0 {
		limit = 0
	}
	return &Preview{
		limit: limit,
		head:  make([]Segment, 0, limit),
		tail:  make([]Segment, 0, limit),
	}
}

// Observe records one segment.
func (p *Preview) Observe(seg Segment) {
	p.total++
	if p.limit == 0 {
		return
	}
	if len(p.head) < p.limit {
		p.head = append(p.head, seg)
	}
	if len(p.tail) < p.limit {
		p.tail = append(p.tail, seg)
		return
	}
	p.tail[p.next] = seg
	p.next = (p.next + 1) % p.limit
}

// Wrap returns a sequence that records every segment before passing it on.
func (p *Preview) Wrap(segments iter.Seq2[Segment, error]) iter.Seq2[Segment, error] {
	return func(yield func(Segment, error) bool) {
		for seg, err := range segments {
			if err == nil {
				p.Observe(seg)
			}
			if !yield(seg, err) {
				return
			}
		}
	}
}

// Head returns the first segments seen, in order.
func (p *Preview) Head() []Segment {
	return append([]Segment(nil), p.head...)
}

// Tail returns the last segments seen, in order. Short streams overlap Head.
func (p *Preview) Tail() []Segment {
	out := make([]Segment, 0, len(p.tail))
	if len(p.tail) < p.limit {
		return append(out, p.tail...)
	}
	out = append(out, p.tail[p.next:]...)
	return append(out, p.tail[:p.next]...)
}

// Total returns the number of segments observed.
func (p *Preview) Total() int { return p.total }
