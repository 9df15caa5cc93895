package utils

import (
	"net/http"
	"strings"

	"golang.org/x/text/language"
)

// LanguageNegotiator picks the display language for a request out of a fixed
// set of supported two-letter codes.
type LanguageNegotiator struct {
	supported []string
	fallback  string
	matcher   language.Matcher
}

// NewLanguageNegotiator builds a negotiator. The fallback is used when the
// request expresses no usable preference; it is added to the supported set.
func NewLanguageNegotiator(supported []string, fallback string) *LanguageNegotiator {
	fallback = strings.ToUpper(strings.TrimSpace(fallback))
	codes := []string{fallback}
	for _, s := range supported {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s != "" && s != fallback {
			codes = append(codes, s)
		}
	}
	tags := make([]language.Tag, 0, len(codes))
	for _, c := range codes {
		tags = append(tags, language.Make(strings.ToLower(c)))
	}
	return &LanguageNegotiator{
		supported: codes,
		fallback:  fallback,
		matcher:   language.NewMatcher(tags),
	}
}

// Supported reports whether code is one of the configured languages.
func (n *LanguageNegotiator) Supported(code string) bool {
	code = strings.ToUpper(strings.TrimSpace(code))
	for _, s := range n.supported {
		if s == code {
			return true
		}
	}
	return false
}

// FromRequest resolves ?lang= first, then Accept-Language, then the fallback.
func (n *LanguageNegotiator) FromRequest(r *http.Request) string {
	if q := r.URL.Query().Get("lang"); q != "" && n.Supported(q) {
		return strings.ToUpper(strings.TrimSpace(q))
	}
	accept := r.Header.Get("Accept-Language")
	if accept == "" {
		return n.fallback
	}
	prefs, _, err := language.ParseAcceptLanguage(accept)
	if err != nil || len(prefs) == 0 {
		return n.fallback
	}
	_, idx, conf := n.matcher.Match(prefs...)
	if conf == language.No {
		return n.fallback
	}
	return n.supported[idx]
}
