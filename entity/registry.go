package entity

import (
	"fmt"

	"github.com/kbukum/restclient/codec"
	"github.com/kbukum/restclient/errors"
	"github.com/kbukum/restclient/mediatype"
)

// Factory builds an entity from a declared content type and the raw body.
type Factory func(contentType string, data []byte) Entity

// Rule pairs a content-type matcher with the factory for the entity it
// claims.
type Rule struct {
	// Name identifies the rule in logs and in Registry.Rules.
	Name string
	// Match decides whether the rule claims a content type.
	Match mediatype.Matcher
	// Create builds the entity.
	Create Factory
	// CatchAll marks a rule whose matcher accepts every content type.
	CatchAll bool
}

// StructuredRule claims content types matched by m and decodes them with c.
func StructuredRule(kind Kind, m mediatype.Matcher, c codec.Codec) Rule {
	return Rule{
		Name:  string(kind),
		Match: m,
		Create: func(contentType string, data []byte) Entity {
			return NewStructured(kind, contentType, data, c)
		},
	}
}

// JSONRule claims application/json and +json types.
func JSONRule(c codec.Codec) Rule {
	return StructuredRule(KindJSON, mediatype.AnyOf(mediatype.Names(mediatype.JSONTypes...), mediatype.Suffix("json")), c)
}

// XMLRule claims application/xml, text/xml and +xml types. The codec must
// walk sequences itself; XML has no native array shape.
func XMLRule(c codec.SequenceCodec) Rule {
	return StructuredRule(KindXML, mediatype.AnyOf(mediatype.Names(mediatype.XMLTypes...), mediatype.Suffix("xml")), c)
}

// YAMLRule claims the YAML media types and +yaml types.
func YAMLRule(c codec.Codec) Rule {
	return StructuredRule(KindYAML, mediatype.AnyOf(mediatype.Names(mediatype.YAMLTypes...), mediatype.Suffix("yaml")), c)
}

// HTMLRule claims text/html.
func HTMLRule() Rule {
	return Rule{
		Name:  string(KindHTML),
		Match: mediatype.Names(mediatype.TextHTML),
		Create: func(contentType string, data []byte) Entity {
			return NewHTML(contentType, data)
		},
	}
}

// EventStreamRule claims text/event-stream.
func EventStreamRule() Rule {
	return Rule{
		Name:  string(KindEventStream),
		Match: mediatype.Names(mediatype.TextEventStream),
		Create: func(contentType string, data []byte) Entity {
			return NewEventStream(contentType, data)
		},
	}
}

// TextRule claims every text/* type. Register it after the rules for more
// specific text formats or it will shadow them.
func TextRule() Rule {
	return Rule{
		Name:  string(KindText),
		Match: mediatype.TopLevel("text"),
		Create: func(contentType string, data []byte) Entity {
			return NewText(contentType, data)
		},
	}
}

// CatchAllRule claims every content type, including absent and malformed
// ones, as an opaque entity.
func CatchAllRule() Rule {
	return Rule{
		Name:     string(KindOpaque),
		Match:    mediatype.Any(),
		CatchAll: true,
		Create: func(contentType string, data []byte) Entity {
			return NewOpaque(contentType, data)
		},
	}
}

// Builder collects rules in registration order.
type Builder struct {
	rules []Rule
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Add appends a rule and returns the builder for chaining. It panics if the
// rule has no matcher or no factory.
func (b *Builder) Add(rule Rule) *Builder {
	if rule.Match == nil || rule.Create == nil {
		panic(fmt.Sprintf("entity: rule %q needs both a matcher and a factory", rule.Name))
	}
	b.rules = append(b.rules, rule)
	return b
}

// Build freezes the rules collected so far into a Registry. The builder
// can keep being used; later additions do not affect registries already
// built.
func (b *Builder) Build() *Registry {
	rules := make([]Rule, len(b.rules))
	copy(rules, b.rules)
	return &Registry{rules: rules}
}

// Registry is an immutable, ordered set of rules. It is safe for concurrent
// use.
type Registry struct {
	rules []Rule
}

// Resolve builds the entity for contentType using the first rule that
// claims it. When no rule does, it returns a configuration error; it never
// substitutes an opaque entity on its own.
func (r *Registry) Resolve(contentType string, data []byte) (Entity, error) {
	for _, rule := range r.rules {
		if rule.Match(contentType) {
			return rule.Create(contentType, data), nil
		}
	}
	return nil, errors.NoMatchingRule(contentType)
}

// Rules returns the rule names in resolution order.
func (r *Registry) Rules() []string {
	names := make([]string, len(r.rules))
	for i, rule := range r.rules {
		names[i] = rule.Name
	}
	return names
}

// HasCatchAll reports whether any registered rule is a catch-all.
func (r *Registry) HasCatchAll() bool {
	for _, rule := range r.rules {
		if rule.CatchAll {
			return true
		}
	}
	return false
}

// DefaultRegistry returns the standard rule order: JSON, XML, YAML, HTML,
// event stream, text, then the catch-all. Nil codecs fall back to the
// package defaults.
func DefaultRegistry(json codec.Codec, xml codec.SequenceCodec, yaml codec.Codec) *Registry {
	if json == nil {
		json = codec.JSON()
	}
	if xml == nil {
		xml = codec.XML()
	}
	if yaml == nil {
		yaml = codec.YAML()
	}
	return NewBuilder().
		Add(JSONRule(json)).
		Add(XMLRule(xml)).
		Add(YAMLRule(yaml)).
		Add(HTMLRule()).
		Add(EventStreamRule()).
		Add(TextRule()).
		Add(CatchAllRule()).
		Build()
}
