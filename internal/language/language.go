package language

import (
	"strings"

	xlanguage "golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// ToISO2 returns the two-letter base language for code, accepting ISO 639-1,
// ISO 639-2 and BCP 47 forms ("en", "eng", "en-US"). Unknown or empty input
// returns "".
func ToISO2(code string) string {
	tag, ok := parse(code)
	if !ok {
		return ""
	}
	base, confidence := tag.Base()
	if confidence == xlanguage.No {
		return ""
	}
	iso := base.String()
	if len(iso) != 2 {
		return ""
	}
	return iso
}

// Matches reports whether two codes name the same base language.
func Matches(a, b string) bool {
	left, right := ToISO2(a), ToISO2(b)
	return left != "" && left == right
}

// DisplayName returns the English name for code, or the trimmed code itself
// when it cannot be parsed.
func DisplayName(code string) string {
	tag, ok := parse(code)
	if !ok {
		return strings.TrimSpace(code)
	}
	if name := display.English.Languages().Name(tag); name != "" {
		return name
	}
	return strings.TrimSpace(code)
}

func parse(code string) (xlanguage.Tag, bool) {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" || code == "und" {
		return xlanguage.Und, false
	}
	tag, err := xlanguage.Parse(code)
	if err != nil {
		return xlanguage.Und, false
	}
	return tag, true
}
