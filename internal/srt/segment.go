package srt

import (
	"fmt"
	"math"
	"strings"
)

// Segment is one recognizer-produced span of speech. Any field may be nil:
// missing timestamps render as zero and missing text is treated as empty.
type Segment struct {
	Start *float64
	End   *float64
	Text  *string
}

// NewSegment builds a fully populated segment.
func NewSegment(start, end float64, text string) Segment {
	return Segment{Start: &start, End: &end, Text: &text}
}

// StartSeconds returns the start time or 0 when absent.
func (s Segment) StartSeconds() float64 { return valueOrZero(s.Start) }

// EndSeconds returns the end time or 0 when absent.
func (s Segment) EndSeconds() float64 { return valueOrZero(s.End) }

// TrimmedText returns the text with surrounding whitespace removed.
func (s Segment) TrimmedText() string {
	if s.Text == nil {
		return ""
	}
	return strings.TrimSpace(*s.Text)
}

func (s Segment) validate() error {
	if err := checkTime("start", s.Start); err != nil {
		return err
	}
	return checkTime("end", s.End)
}

func checkTime(field string, v *float64) error {
	if v == nil {
		return nil
	}
	if !isFinite(*v) {
		return fmt.Errorf("%s %v is not a finite number", field, *v)
	}
	if !fitsMillis(*v) {
		return fmt.Errorf("%s %v exceeds the largest representable timestamp", field, *v)
	}
	return nil
}

func valueOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// fitsMillis reports whether seconds converts to an int64 millisecond count.
func fitsMillis(seconds float64) bool {
	return seconds*msPerSecond < math.MaxInt64
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Cue is a numbered, timestamped subtitle entry ready for serialization.
type Cue struct {
	Index int
	Start string
	End   string
	Text  string
}

// String renders the cue as a SubRip block including the trailing blank line.
func (c Cue) String() string {
	return fmt.Sprintf("%d\n%s --> %s\n%s\n\n", c.Index, c.Start, c.End, c.Text)
}
