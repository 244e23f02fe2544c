package audio

import (
	"strconv"
	"strings"

	"whispersrt/internal/language"
	"whispersrt/internal/media/ffprobe"
)

// Selection describes the audio stream chosen for transcription.
type Selection struct {
	Stream ffprobe.Stream
	// Index is the container stream index, or -1 when no audio was found.
	Index  int
	Reason string
}

// Found reports whether an audio stream was selected.
func (s Selection) Found() bool {
	return s.Index >= 0
}

// Label returns a human-readable summary of the selected stream.
func (s Selection) Label() string {
	if !s.Found() {
		return ""
	}
	return formatStreamSummary(s.Stream)
}

// SelectSpeechStream ranks the audio streams for transcription. A stream
// tagged with the requested language wins, then a default-flagged stream,
// then the earliest audio stream. An empty language skips the first rule.
func SelectSpeechStream(streams []ffprobe.Stream, lang string) Selection {
	candidates := buildCandidates(streams, lang)
	if len(candidates) == 0 {
		return Selection{Index: -1}
	}

	best := candidates[0]
	bestScore := scoreCandidate(best)
	for _, cand := range candidates[1:] {
		if score := scoreCandidate(cand); score > bestScore {
			best = cand
			bestScore = score
		}
	}
	return Selection{
		Stream: best.stream,
		Index:  best.stream.Index,
		Reason: best.reason(),
	}
}

type candidate struct {
	stream          ffprobe.Stream
	order           int
	languageMatched bool
	defaultFlagged  bool
}

func (c candidate) reason() string {
	switch {
	case c.languageMatched:
		return "language match"
	case c.defaultFlagged:
		return "default track"
	default:
		return "first audio track"
	}
}

func scoreCandidate(cand candidate) int {
	score := 0
	if cand.languageMatched {
		score += 100
	}
	if cand.defaultFlagged {
		score += 10
	}
	// Earlier tracks win ties.
	return score*1000 - cand.order
}

func buildCandidates(streams []ffprobe.Stream, lang string) []candidate {
	lang = strings.TrimSpace(lang)
	result := make([]candidate, 0, len(streams))
	for _, stream := range streams {
		if !strings.EqualFold(stream.CodecType, "audio") {
			continue
		}
		result = append(result, candidate{
			stream:          stream,
			order:           len(result),
			languageMatched: lang != "" && language.Matches(stream.Language(), lang),
			defaultFlagged:  stream.IsDefault(),
		})
	}
	return result
}

func formatStreamSummary(stream ffprobe.Stream) string {
	parts := make([]string, 0, 4)
	parts = append(parts, "#"+strconv.Itoa(stream.Index))
	if lang := stream.Language(); lang != "" {
		parts = append(parts, lang)
	}
	codec := stream.CodecLong
	if codec == "" {
		codec = stream.CodecName
	}
	if codec != "" {
		parts = append(parts, codec)
	}
	if stream.Channels > 0 {
		parts = append(parts, strconv.Itoa(stream.Channels)+"ch")
	}
	if title := strings.TrimSpace(stream.Tags["title"]); title != "" {
		parts = append(parts, title)
	}
	return strings.Join(parts, " | ")
}
