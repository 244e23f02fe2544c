package srt

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"

	"whispersrt/internal/logging"
)

// maxConsecutiveRepeats is the number of identical consecutive cues written
// before further occurrences are dropped.
const maxConsecutiveRepeats = 2

var (
	// ErrNoSpeech reports that no cue survived filtering.
	ErrNoSpeech = errors.New("no speech detected")
	// ErrMalformedSegment reports segment data that cannot be rendered.
	ErrMalformedSegment = errors.New("malformed segment")
)

// Decision describes what the Assembler did with a segment.
type Decision int

const (
	// DecisionEmit means the segment became a cue.
	DecisionEmit Decision = iota
	// DecisionFiltered means the text was too short or filler.
	DecisionFiltered
	// DecisionRepeat means the text repeated too many times in a row.
	DecisionRepeat
)

func (d Decision) String() string {
	switch d {
	case DecisionEmit:
		return "emit"
	case DecisionFiltered:
		return "filtered"
	case DecisionRepeat:
		return "repeat"
	default:
		return "unknown"
	}
}

// Stats summarizes one assembly run.
type Stats struct {
	Segments   int
	Cues       int
	Filtered   int
	Suppressed int
}

// Assembler turns segments into numbered cues. It holds per-run state and
// must not be shared between goroutines or reused across runs.
type Assembler struct {
	logger *slog.Logger

	previous    string
	hasPrevious bool
	occurrences int
	index       int
	stats       Stats
}

// NewAssembler returns an Assembler that reports repeat warnings to logger.
// A nil logger discards diagnostics.
func NewAssembler(logger *slog.Logger) *Assembler {
	return &Assembler{logger: logging.NewComponentLogger(logger, "assembler")}
}

// Stats returns counters accumulated so far.
func (a *Assembler) Stats() Stats { return a.stats }

// Next classifies one segment. The returned cue is only valid when the
// decision is DecisionEmit. Next counts the emitted cue; Write takes the count
// back when the cue cannot be written so Stats.Cues matches the output.
func (a *Assembler) Next(seg Segment) (Cue, Decision, error) {
	a.stats.Segments++
	if err := seg.validate(); err != nil {
		return Cue{}, DecisionFiltered, fmt.Errorf("%w: segment %d: %v", ErrMalformedSegment, a.stats.Segments, err)
	}

	text := seg.TrimmedText()
	if !IsMeaningful(text) {
		a.stats.Filtered++
		return Cue{}, DecisionFiltered, nil
	}

	if a.hasPrevious && text == a.previous {
		a.occurrences++
		if a.occurrences == maxConsecutiveRepeats+1 {
			logging.WarnWithContext(a.logger, "repeated text suppressed", "subtitle_repeat_suppressed",
				logging.String("text", text),
				logging.Int("segment", a.stats.Segments),
				logging.String(logging.FieldErrorHint, "recognizer may be looping; try --vad or a larger model"),
				logging.String(logging.FieldImpact, "further consecutive repeats are not written"),
			)
		}
		if a.occurrences > maxConsecutiveRepeats {
			a.stats.Suppressed++
			return Cue{}, DecisionRepeat, nil
		}
	} else {
		a.occurrences = 1
		a.previous = text
		a.hasPrevious = true
	}

	a.index++
	a.stats.Cues++
	return Cue{
		Index: a.index,
		Start: FormatTimestamp(seg.Start),
		End:   FormatTimestamp(seg.End),
		Text:  text,
	}, DecisionEmit, nil
}

// Write folds segments into w in order. A source error stops the fold after
// the cues already written and is returned wrapped; sources report bad data
// by wrapping ErrMalformedSegment. When no cue is emitted the result is ErrNoSpeech.
func (a *Assembler) Write(w io.Writer, segments iter.Seq2[Segment, error]) (Stats, error) {
	for seg, err := range segments {
		if err != nil {
			return a.stats, fmt.Errorf("read segment %d: %w", a.stats.Segments+1, err)
		}
		cue, decision, err := a.Next(seg)
		if err != nil {
			return a.stats, err
		}
		if decision != DecisionEmit {
			continue
		}
		if _, err := io.WriteString(w, cue.String()); err != nil {
			a.index--
			a.stats.Cues--
			return a.stats, fmt.Errorf("write cue %d: %w", cue.Index, err)
		}
	}
	if a.stats.Cues == 0 {
		return a.stats, ErrNoSpeech
	}
	return a.stats, nil
}

// Slice adapts an in-memory segment list to the sequence Write consumes.
func Slice(segments []Segment) iter.Seq2[Segment, error] {
	return func(yield func(Segment, error) bool) {
		for _, seg := range segments {
			if !yield(seg, nil) {
				return
			}
		}
	}
}
