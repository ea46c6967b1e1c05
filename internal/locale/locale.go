// Package locale picks the content language of a request.
package locale

import (
	"net/http"
	"strings"

	"golang.org/x/text/language"
)

const CookieName = "lang"

// Supported lists the content languages; the first one is the default.
var Supported = []language.Tag{language.English, language.Russian}

var matcher = language.NewMatcher(Supported)

// Parse maps a raw language value to a supported tag.
func Parse(raw string) (language.Tag, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return language.Tag{}, false
	}
	tag, err := language.Parse(raw)
	if err != nil {
		return language.Tag{}, false
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return language.Tag{}, false
	}
	return Supported[idx], true
}

// Resolve checks the lang query parameter, the lang cookie and then
// Accept-Language, defaulting to English.
func Resolve(r *http.Request) language.Tag {
	if tag, ok := Parse(r.URL.Query().Get("lang")); ok {
		return tag
	}
	if c, err := r.Cookie(CookieName); err == nil {
		if tag, ok := Parse(c.Value); ok {
			return tag
		}
	}
	if header := r.Header.Get("Accept-Language"); header != "" {
		tags, _, err := language.ParseAcceptLanguage(header)
		if err == nil && len(tags) > 0 {
			_, idx, conf := matcher.Match(tags...)
			if conf != language.No {
				return Supported[idx]
			}
		}
	}
	return Supported[0]
}
