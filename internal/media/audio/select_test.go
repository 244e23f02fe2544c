package audio

import (
	"testing"

	"whispersrt/internal/media/ffprobe"
)

func TestSelectSpeechStreamPrefersLanguageMatch(t *testing.T) {
	streams := []ffprobe.Stream{
		{Index: 0, CodecType: "video"},
		{
			Index:       1,
			CodecType:   "audio",
			CodecName:   "ac3",
			Channels:    6,
			Tags:        map[string]string{"language": "eng"},
			Disposition: map[string]int{"default": 1},
		},
		{
			Index:     2,
			CodecType: "audio",
			CodecName: "aac",
			Channels:  2,
			Tags:      map[string]string{"language": "tur", "title": "Turkish"},
		},
	}

	sel := SelectSpeechStream(streams, "tr")
	if sel.Index != 2 {
		t.Fatalf("expected turkish track (index 2), got %d", sel.Index)
	}
	if sel.Reason != "language match" {
		t.Fatalf("unexpected reason %q", sel.Reason)
	}
	if got := sel.Label(); got != "#2 | tur | aac | 2ch | Turkish" {
		t.Fatalf("unexpected label %q", got)
	}
}

func TestSelectSpeechStreamFallsBackToDefault(t *testing.T) {
	streams := []ffprobe.Stream{
		{Index: 1, CodecType: "audio", Tags: map[string]string{"language": "eng"}},
		{Index: 2, CodecType: "audio", Tags: map[string]string{"language": "fre"}, Disposition: map[string]int{"default": 1}},
	}

	tests := []struct {
		name string
		lang string
		want int
	}{
		{name: "auto detect", lang: "", want: 2},
		{name: "no matching track", lang: "ja", want: 2},
		{name: "match beats default", lang: "en", want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SelectSpeechStream(streams, tt.lang).Index; got != tt.want {
				t.Fatalf("SelectSpeechStream(%q) = %d, want %d", tt.lang, got, tt.want)
			}
		})
	}
}

func TestSelectSpeechStreamPrefersEarliestOnTie(t *testing.T) {
	streams := []ffprobe.Stream{
		{Index: 3, CodecType: "audio"},
		{Index: 4, CodecType: "audio"},
	}
	sel := SelectSpeechStream(streams, "")
	if sel.Index != 3 || sel.Reason != "first audio track" {
		t.Fatalf("unexpected selection %+v", sel)
	}
}

func TestSelectSpeechStreamWithoutAudio(t *testing.T) {
	sel := SelectSpeechStream([]ffprobe.Stream{{Index: 0, CodecType: "video"}}, "en")
	if sel.Found() {
		t.Fatalf("expected no selection, got %+v", sel)
	}
	if sel.Label() != "" {
		t.Fatalf("expected empty label, got %q", sel.Label())
	}
}
