// Package mediatype parses declared content types and builds the matchers
// that entity rules use to claim them.
//
// Matching is case-sensitive on the type/subtype essence and ignores
// parameters, so "application/json; charset=utf-8" is claimed by a rule
// registered for "application/json" while "Application/JSON" is not.
package mediatype

import (
	"mime"
	"strings"
)

// Well-known media types.
const (
	ApplicationJSON        = "application/json"
	ApplicationProblemJSON = "application/problem+json"
	ApplicationXML         = "application/xml"
	TextXML                = "text/xml"
	ApplicationYAML        = "application/yaml"
	ApplicationXYAML       = "application/x-yaml"
	TextYAML               = "text/yaml"
	TextHTML               = "text/html"
	TextPlain              = "text/plain"
	TextEventStream        = "text/event-stream"
	ApplicationOctetStream = "application/octet-stream"
)

var (
	// JSONTypes are the names claimed by the JSON rule.
	JSONTypes = []string{ApplicationJSON, ApplicationProblemJSON}
	// XMLTypes are the names claimed by the XML rule.
	XMLTypes = []string{ApplicationXML, TextXML}
	// YAMLTypes are the names claimed by the YAML rule.
	YAMLTypes = []string{ApplicationYAML, ApplicationXYAML, TextYAML}
)

// MediaType is a parsed Content-Type value.
type MediaType struct {
	Type    string
	Subtype string
	// Params holds the parameters with lower-cased keys.
	Params map[string]string
}

// Essence returns "type/subtype" without parameters.
func (m MediaType) Essence() string {
	return m.Type + "/" + m.Subtype
}

// Suffix returns the structured syntax suffix of the subtype ("xml" for
// "atom+xml"), or "" when there is none.
func (m MediaType) Suffix() string {
	if i := strings.LastIndexByte(m.Subtype, '+'); i >= 0 {
		return m.Subtype[i+1:]
	}
	return ""
}

// Charset returns the charset parameter, or "" when absent.
func (m MediaType) Charset() string {
	return m.Params["charset"]
}

// Parse parses a Content-Type header value. Empty or malformed input
// reports ok=false. The case of type and subtype is preserved.
func Parse(raw string) (MediaType, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return MediaType{}, false
	}
	essence := raw
	if i := strings.IndexByte(raw, ';'); i >= 0 {
		essence = strings.TrimSpace(raw[:i])
	}
	typ, sub, found := strings.Cut(essence, "/")
	if !found || !isToken(typ) || !isToken(sub) {
		return MediaType{}, false
	}
	_, params, err := mime.ParseMediaType(raw)
	if err != nil {
		return MediaType{}, false
	}
	return MediaType{Type: typ, Subtype: sub, Params: params}, true
}

// isToken reports whether s is a non-empty RFC 7230 token.
func isToken(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case strings.IndexByte("!#$%&'*+-.^_`|~", c) >= 0:
		default:
			return false
		}
	}
	return true
}
