package srt

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// minMeaningfulRunes is the shortest trimmed text considered speech.
const minMeaningfulRunes = 3

// fillerTexts holds lower-cased texts dropped on exact match. Both ellipsis
// forms are intentional.
var fillerTexts = map[string]struct{}{
	"aaaa.": {},
	"hmm.":  {},
	"mmm.":  {},
	"...":   {},
	"..":    {},
}

// IsMeaningful reports whether text should be considered for emission.
func IsMeaningful(text string) bool {
	trimmed := strings.TrimSpace(text)
	if utf8.RuneCountInString(trimmed) < minMeaningfulRunes {
		return false
	}
	// Casers are stateful; build one per call.
	lowered := cases.Lower(language.Und).String(trimmed)
	if _, filler := fillerTexts[lowered]; filler {
		return false
	}
	return true
}
