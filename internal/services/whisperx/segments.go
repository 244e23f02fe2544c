package whisperx

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"

	"whispersrt/internal/srt"
)

// rawSegment keeps fields undecoded so null and missing values stay nil.
type rawSegment struct {
	Start json.RawMessage `json:"start"`
	End   json.RawMessage `json:"end"`
	Text  json.RawMessage `json:"text"`
}

// Segments streams the "segments" array of a WhisperX JSON transcript. Other
// top-level keys are skipped. Decoding stops at the first error, which is
// yielded once.
func Segments(r io.Reader) iter.Seq2[srt.Segment, error] {
	return func(yield func(srt.Segment, error) bool) {
		dec := json.NewDecoder(r)
		if err := expectDelim(dec, '{'); err != nil {
			yield(srt.Segment{}, fmt.Errorf("whisperx json: %w", err))
			return
		}
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				yield(srt.Segment{}, fmt.Errorf("whisperx json: %w", err))
				return
			}
			key, _ := keyTok.(string)
			if key != "segments" {
				var skip json.RawMessage
				if err := dec.Decode(&skip); err != nil {
					yield(srt.Segment{}, fmt.Errorf("whisperx json: skip %q: %w", key, err))
					return
				}
				continue
			}
			if !streamSegments(dec, yield) {
				return
			}
		}
	}
}

// streamSegments yields each element of the segments array and reports
// whether decoding should continue.
func streamSegments(dec *json.Decoder, yield func(srt.Segment, error) bool) bool {
	tok, err := dec.Token()
	if err != nil {
		yield(srt.Segment{}, fmt.Errorf("whisperx json: %w", err))
		return false
	}
	if tok == nil {
		return true
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		yield(srt.Segment{}, fmt.Errorf("%w: segments is not an array", srt.ErrMalformedSegment))
		return false
	}
	for position := 1; dec.More(); position++ {
		var raw rawSegment
		if err := dec.Decode(&raw); err != nil {
			var typeErr *json.UnmarshalTypeError
			if errors.As(err, &typeErr) {
				err = fmt.Errorf("%w: segment %d: %v", srt.ErrMalformedSegment, position, err)
			}
			yield(srt.Segment{}, err)
			return false
		}
		seg, err := raw.segment()
		if err != nil {
			yield(srt.Segment{}, fmt.Errorf("%w: segment %d: %v", srt.ErrMalformedSegment, position, err))
			return false
		}
		if !yield(seg, nil) {
			return false
		}
	}
	if _, err := dec.Token(); err != nil {
		yield(srt.Segment{}, fmt.Errorf("whisperx json: %w", err))
		return false
	}
	return true
}

func (r rawSegment) segment() (srt.Segment, error) {
	var seg srt.Segment
	var err error
	if seg.Start, err = decodeOptional[float64](r.Start); err != nil {
		return seg, fmt.Errorf("start: %w", err)
	}
	if seg.End, err = decodeOptional[float64](r.End); err != nil {
		return seg, fmt.Errorf("end: %w", err)
	}
	if seg.Text, err = decodeOptional[string](r.Text); err != nil {
		return seg, fmt.Errorf("text: %w", err)
	}
	return seg, nil
}

func decodeOptional[T any](raw json.RawMessage) (*T, error) {
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	var value T
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, err
	}
	return &value, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}

// OpenSegments streams the segments of the WhisperX transcript at path. The
// file is closed when iteration ends.
func OpenSegments(path string) iter.Seq2[srt.Segment, error] {
	return func(yield func(srt.Segment, error) bool) {
		file, err := os.Open(path)
		if err != nil {
			yield(srt.Segment{}, fmt.Errorf("open transcript: %w", err))
			return
		}
		defer file.Close()
		for seg, err := range Segments(file) {
			if !yield(seg, err) {
				return
			}
		}
	}
}
