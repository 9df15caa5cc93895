package models

import "strings"

// Description is a localized text owned by a parent record, keyed by
// (parent id, language id).
type Description struct {
	LanguageID string `json:"language_id"`
	Text       string `json:"description,omitempty"`
}

// NormalizeLanguageID trims and upper-cases a language code ("nl " -> "NL").
func NormalizeLanguageID(lang string) string {
	return strings.ToUpper(strings.TrimSpace(lang))
}

// DescriptionFor returns the text stored for exactly the given language.
func DescriptionFor(descs []Description, lang string) (string, bool) {
	lang = NormalizeLanguageID(lang)
	for _, d := range descs {
		if d.LanguageID == lang {
			return d.Text, true
		}
	}
	return "", false
}

// ResolveDescription picks the text to display. The preferred language wins
// when present; otherwise the fallback language's text is returned (possibly
// empty) together with the fallback language id.
func ResolveDescription(descs []Description, preferred, fallback string) (text string, languageID string) {
	if t, ok := DescriptionFor(descs, preferred); ok {
		return t, NormalizeLanguageID(preferred)
	}
	t, _ := DescriptionFor(descs, fallback)
	return t, NormalizeLanguageID(fallback)
}
