package i18n

import (
	"golang.org/x/text/language"
)

// DefaultLanguage is used when nothing else matches.
const DefaultLanguage = "en"

// maxAcceptLanguageLength caps the header we parse; 4KB is plenty for real clients.
const maxAcceptLanguageLength = 4096

func newMatcher(langs []string) language.Matcher {
	tags := make([]language.Tag, 0, len(langs))
	for _, l := range langs {
		tags = append(tags, language.Make(l))
	}
	return language.NewMatcher(tags)
}

func matchLanguage(m language.Matcher, langs []string, fallback string, preferences ...string) string {
	if m == nil || len(langs) == 0 {
		return fallback
	}

	want := make([]language.Tag, 0, len(preferences))
	for _, p := range preferences {
		tag, err := language.Parse(p)
		if err != nil {
			continue
		}
		want = append(want, tag)
	}
	if len(want) == 0 {
		return fallback
	}

	_, idx, confidence := m.Match(want...)
	if confidence == language.No || idx < 0 || idx >= len(langs) {
		return fallback
	}
	return langs[idx]
}

// ParseAcceptLanguage picks the supported language that best satisfies an
// Accept-Language header, honoring quality values. Returns defaultLang when
// nothing matches.
func ParseAcceptLanguage(header string, supported []string, defaultLang string) string {
	if header == "" || len(supported) == 0 {
		return defaultLang
	}
	if len(header) > maxAcceptLanguageLength {
		header = header[:maxAcceptLanguageLength]
	}

	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return defaultLang
	}

	_, idx, confidence := newMatcher(supported).Match(tags...)
	if confidence == language.No || idx < 0 || idx >= len(supported) {
		return defaultLang
	}
	return supported[idx]
}
