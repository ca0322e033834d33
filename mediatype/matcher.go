package mediatype

import "regexp"

// Matcher decides whether a rule claims a declared content type.
type Matcher func(contentType string) bool

// Names matches when the essence of the declared type equals one of names
// exactly. Absent or malformed types never match.
func Names(names ...string) Matcher {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return func(contentType string) bool {
		mt, ok := Parse(contentType)
		if !ok {
			return false
		}
		_, hit := set[mt.Essence()]
		return hit
	}
}

// Suffix matches well-formed types whose subtype carries the given
// structured syntax suffix, e.g. Suffix("xml") claims "application/atom+xml".
func Suffix(suffix string) Matcher {
	return func(contentType string) bool {
		mt, ok := Parse(contentType)
		return ok && mt.Suffix() == suffix
	}
}

// Pattern matches the full declared string against a regular expression.
// It panics if expr does not compile.
func Pattern(expr string) Matcher {
	re := regexp.MustCompile(expr)
	return func(contentType string) bool {
		return re.MatchString(contentType)
	}
}

// Any matches every declared string, including empty and malformed ones.
func Any() Matcher {
	return func(string) bool { return true }
}

// AnyOf matches when at least one of matchers does.
func AnyOf(matchers ...Matcher) Matcher {
	return func(contentType string) bool {
		for _, m := range matchers {
			if m(contentType) {
				return true
			}
		}
		return false
	}
}

// TopLevel matches well-formed types whose top-level type is typ, e.g.
// TopLevel("text") claims "text/csv" and "text/plain; charset=utf-8".
func TopLevel(typ string) Matcher {
	return func(contentType string) bool {
		mt, ok := Parse(contentType)
		return ok && mt.Type == typ
	}
}
