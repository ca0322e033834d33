package mediatype

import (
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		ok      bool
		essence string
		charset string
	}{
		{name: "plain", raw: "application/json", ok: true, essence: "application/json"},
		{name: "with charset", raw: "text/plain; charset=UTF-8", ok: true, essence: "text/plain", charset: "UTF-8"},
		{name: "case preserved", raw: "Application/JSON", ok: true, essence: "Application/JSON"},
		{name: "surrounding space", raw: "  text/xml  ", ok: true, essence: "text/xml"},
		{name: "empty", raw: "", ok: false},
		{name: "no slash", raw: "json", ok: false},
		{name: "empty subtype", raw: "application/", ok: false},
		{name: "bad param", raw: "text/plain; =x", ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mt, ok := Parse(tt.raw)
			if ok != tt.ok {
				t.Fatalf("expected ok=%v, got %v", tt.ok, ok)
			}
			if !ok {
				return
			}
			if mt.Essence() != tt.essence {
				t.Errorf("expected essence %q, got %q", tt.essence, mt.Essence())
			}
			if mt.Charset() != tt.charset {
				t.Errorf("expected charset %q, got %q", tt.charset, mt.Charset())
			}
		})
	}
}

func TestMediaType_Suffix(t *testing.T) {
	mt, ok := Parse("application/atom+xml")
	if !ok {
		t.Fatal("expected a valid media type")
	}
	if mt.Suffix() != "xml" {
		t.Errorf("expected suffix xml, got %q", mt.Suffix())
	}

	mt, _ = Parse("application/json")
	if mt.Suffix() != "" {
		t.Errorf("expected no suffix, got %q", mt.Suffix())
	}
}

// matches checks m against every content type in want.
func matches(t *testing.T, m Matcher, want map[string]bool) {
	t.Helper()
	for ct, expected := range want {
		if got := m(ct); got != expected {
			t.Errorf("match(%q): expected %v, got %v", ct, expected, got)
		}
	}
}

func TestNames(t *testing.T) {
	// Matching is case-sensitive.
	matches(t, Names(JSONTypes...), map[string]bool{
		"application/json":                true,
		"application/json; charset=utf-8": true,
		"application/problem+json":        true,
		"Application/JSON":                false,
		"application/xml":                 false,
		"":                                false,
		"garbage":                         false,
	})
}

func TestSuffix(t *testing.T) {
	matches(t, Suffix("xml"), map[string]bool{
		"application/atom+xml":                true,
		"application/rss+xml; charset=utf-8": true,
		"application/xml":                     false,
		"not a type":                          false,
	})
}

func TestPattern(t *testing.T) {
	matches(t, Pattern(".*/.*"), map[string]bool{
		"application/octet-stream": true,
		"image/png":                true,
		"garbage":                  false,
	})

	defer func() {
		if recover() == nil {
			t.Error("expected panic for an invalid expression")
		}
	}()
	Pattern("(")
}

func TestAny(t *testing.T) {
	matches(t, Any(), map[string]bool{
		"":                     true,
		"garbage":              true,
		"image/png":            true,
		"text/plain; charset=x": true,
	})
}

func TestAnyOf(t *testing.T) {
	matches(t, AnyOf(Names(XMLTypes...), Suffix("xml")), map[string]bool{
		"text/xml":             true,
		"application/soap+xml": true,
		"application/json":     false,
	})
	if AnyOf()("text/xml") {
		t.Error("expected an empty AnyOf to match nothing")
	}
}

func TestTopLevel(t *testing.T) {
	matches(t, TopLevel("text"), map[string]bool{
		"text/csv":                  true,
		"text/plain; charset=utf-8": true,
		"application/text":          false,
		"Text/plain":                false,
		"":                          false,
	})
}
