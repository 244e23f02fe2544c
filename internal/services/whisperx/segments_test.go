package whisperx

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"whispersrt/internal/srt"
)

func collect(t *testing.T, input string) ([]srt.Segment, error) {
	t.Helper()
	var out []srt.Segment
	for seg, err := range Segments(strings.NewReader(input)) {
		if err != nil {
			return out, err
		}
		out = append(out, seg)
	}
	return out, nil
}

func TestSegmentsDecodesStream(t *testing.T) {
	input := `{
  "language": "tr",
  "segments": [
    {"start": 0.0, "end": 1.5, "text": " Merhaba. ", "words": [{"word": "Merhaba."}]},
    {"start": null, "end": 3.25, "text": "Nasılsın?"},
    {"end": 4}
  ],
  "word_segments": []
}`
	segments, err := collect(t, input)
	if err != nil {
		t.Fatalf("Segments: %v", err)
	}
	if len(segments) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(segments))
	}
	if segments[0].StartSeconds() != 0 || segments[0].EndSeconds() != 1.5 || segments[0].TrimmedText() != "Merhaba." {
		t.Fatalf("unexpected first segment %+v", segments[0])
	}
	if segments[1].Start != nil {
		t.Fatal("null start should decode to nil")
	}
	if segments[2].Text != nil || segments[2].Start != nil {
		t.Fatal("missing fields should decode to nil")
	}
}

func TestSegmentsWithoutSegmentsKey(t *testing.T) {
	segments, err := collect(t, `{"language": "en"}`)
	if err != nil || len(segments) != 0 {
		t.Fatalf("expected empty stream, got %d segments, err %v", len(segments), err)
	}
}

func TestSegmentsRejectsMalformedTimestamp(t *testing.T) {
	segments, err := collect(t, `{"segments": [{"start": 1, "end": 2, "text": "ok."}, {"start": "soon", "text": "x"}]}`)
	if !errors.Is(err, srt.ErrMalformedSegment) {
		t.Fatalf("expected ErrMalformedSegment, got %v", err)
	}
	if !strings.Contains(err.Error(), "segment 2") {
		t.Fatalf("expected position in error, got %v", err)
	}
	if len(segments) != 1 {
		t.Fatalf("expected first segment before failure, got %d", len(segments))
	}
}

func TestSegmentsRejectsNonArray(t *testing.T) {
	if _, err := collect(t, `{"segments": {"start": 1}}`); !errors.Is(err, srt.ErrMalformedSegment) {
		t.Fatalf("expected ErrMalformedSegment, got %v", err)
	}
}

func TestSegmentsRejectsInvalidJSON(t *testing.T) {
	if _, err := collect(t, `[1, 2]`); err == nil {
		t.Fatal("expected error for non-object document")
	}
	if _, err := collect(t, `{"segments": [{"start": 1,`); err == nil {
		t.Fatal("expected error for truncated document")
	}
}

func TestSegmentsStopsWhenConsumerStops(t *testing.T) {
	count := 0
	for range Segments(strings.NewReader(`{"segments": [{"text": "a"}, {"text": "b"}, {"text": "c"}]}`)) {
		count++
		if count == 2 {
			break
		}
	}
	if count != 2 {
		t.Fatalf("expected early stop after 2, got %d", count)
	}
}

func TestOpenSegmentsFeedsAssembler(t *testing.T) {
	path := filepath.Join(t.TempDir(), "speech.json")
	data := `{"segments": [
  {"start": 0, "end": 1.2, "text": "Hmm."},
  {"start": 1.2, "end": 2.5, "text": "Hello there."}
]}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	var sb strings.Builder
	stats, err := srt.NewAssembler(nil).Write(&sb, OpenSegments(path))
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	want := "1\n00:00:01,200 --> 00:00:02,500\nHello there.\n\n"
	if sb.String() != want {
		t.Fatalf("unexpected document\n got: %q\nwant: %q", sb.String(), want)
	}
	if stats.Cues != 1 || stats.Filtered != 1 {
		t.Fatalf("unexpected stats %+v", stats)
	}
}

func TestOpenSegmentsMissingFile(t *testing.T) {
	for _, err := range OpenSegments(filepath.Join(t.TempDir(), "missing.json")) {
		if err == nil {
			t.Fatal("expected open error")
		}
		return
	}
	t.Fatal("expected one error item")
}
