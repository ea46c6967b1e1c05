package locale

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/text/language"
)

func TestResolve(t *testing.T) {
	cases := []struct {
		name   string
		target string
		cookie string
		accept string
		want   language.Tag
	}{
		{name: "default", target: "/", want: language.English},
		{name: "query", target: "/?lang=ru", want: language.Russian},
		{name: "query region", target: "/?lang=ru-RU", want: language.Russian},
		{name: "query beats cookie", target: "/?lang=en", cookie: "ru", want: language.English},
		{name: "cookie", target: "/", cookie: "ru", want: language.Russian},
		{name: "accept language", target: "/", accept: "ru-RU,ru;q=0.9,en;q=0.8", want: language.Russian},
		{name: "unsupported query falls through", target: "/?lang=xx-invalid-", accept: "ru", want: language.Russian},
		{name: "unsupported accept", target: "/", accept: "de-DE", want: language.English},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, tc.target, nil)
			if tc.cookie != "" {
				r.AddCookie(&http.Cookie{Name: CookieName, Value: tc.cookie})
			}
			if tc.accept != "" {
				r.Header.Set("Accept-Language", tc.accept)
			}
			if got := Resolve(r); got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestParse(t *testing.T) {
	if _, ok := Parse(""); ok {
		t.Fatalf("expected blank to be rejected")
	}
	if tag, ok := Parse("RU"); !ok || tag != language.Russian {
		t.Fatalf("expected ru, got %s %v", tag, ok)
	}
}
