package catalog

import (
	"strings"

	"golang.org/x/text/language"
)

// Neutral is the locale code of the invariant culture.
const Neutral = "neutral"

// Invariant is the culture without a specific language.
const Invariant Locale = ""

// Locale is a culture name such as "de", "de-DE" or "" for the invariant culture.
type Locale string

// ParseLocale reads a culture name as written in catalog sources.
// "neutral", "default" and "base" denote the invariant culture.
func ParseLocale(s string) Locale {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case Neutral, "default", "base", "":
		return Invariant
	}
	return Locale(s)
}

// Code returns the two-letter language code of the locale, or Neutral for the
// invariant culture. Languages without an ISO 639-1 code keep their
// three-letter code.
func (l Locale) Code() string {
	if l == Invariant {
		return Neutral
	}
	tag, err := language.Parse(strings.ReplaceAll(string(l), "_", "-"))
	if err == nil {
		base, _ := tag.Base()
		if code := base.String(); code != "und" {
			return code
		}
	}
	primary := strings.FieldsFunc(string(l), func(r rune) bool {
		return r == '-' || r == '_'
	})
	if len(primary) == 0 {
		return Neutral
	}
	return strings.ToLower(primary[0])
}

func (l Locale) String() string {
	if l == Invariant {
		return Neutral
	}
	return string(l)
}
