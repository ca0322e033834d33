// Package entity turns a response body into a typed Entity chosen by the
// declared content type.
//
// A Registry holds an ordered, frozen list of Rules. Resolve walks the rules
// in registration order and the first one whose matcher claims the content
// type builds the Entity:
//
//	reg := entity.NewBuilder().
//	    Add(entity.JSONRule(codec.JSON())).
//	    Add(entity.TextRule()).
//	    Add(entity.CatchAllRule()).
//	    Build()
//
//	e, err := reg.Resolve("application/json", body)
//
// Entities keep their own copy of the bytes; Decode and ReadAsText may be
// called any number of times with the same result.
package entity

import (
	"fmt"
	"reflect"
	"strings"

	"golang.org/x/text/encoding/htmlindex"

	"github.com/kbukum/restclient/errors"
	"github.com/kbukum/restclient/mediatype"
)

// Kind tags the decoding strategy that produced an Entity.
type Kind string

// Built-in entity kinds.
const (
	KindJSON        Kind = "json"
	KindXML         Kind = "xml"
	KindYAML        Kind = "yaml"
	KindHTML        Kind = "html"
	KindEventStream Kind = "event-stream"
	KindText        Kind = "text"
	KindOpaque      Kind = "opaque"
)

// Entity is a typed view over a response body. The set of implementations
// is closed to this package.
type Entity interface {
	// Kind reports the variant.
	Kind() Kind
	// ContentType returns the declared content type the entity was built for.
	ContentType() string
	// Bytes returns a copy of the raw body.
	Bytes() []byte
	// Len returns the body length in bytes.
	Len() int
	// ReadAsText decodes the body as text using the declared charset,
	// defaulting to UTF-8. It never invokes a structured decoder.
	ReadAsText() string
	// Decode decodes the body into v, which must be a non-nil pointer of a
	// type the variant supports. Failures are conversion errors.
	Decode(v any) error

	sealed()
}

// body holds the state every variant shares.
type body struct {
	contentType string
	data        []byte
}

func newBody(contentType string, data []byte) body {
	cp := make([]byte, len(data))
	copy(cp, data)
	return body{contentType: contentType, data: cp}
}

func (b *body) ContentType() string { return b.contentType }

func (b *body) Bytes() []byte {
	cp := make([]byte, len(b.data))
	copy(cp, b.data)
	return cp
}

func (b *body) Len() int { return len(b.data) }

func (b *body) ReadAsText() string { return decodeText(b.contentType, b.data) }

func (b *body) sealed() {}

func decodeText(contentType string, data []byte) string {
	mt, ok := mediatype.Parse(contentType)
	if !ok {
		return string(data)
	}
	switch cs := strings.ToLower(mt.Charset()); cs {
	case "", "utf-8", "utf8", "us-ascii":
		return string(data)
	default:
		enc, err := htmlindex.Get(cs)
		if err != nil {
			return string(data)
		}
		out, err := enc.NewDecoder().Bytes(data)
		if err != nil {
			return string(data)
		}
		return string(out)
	}
}

// TypeName returns the name used for T in conversion errors.
func TypeName[T any]() string {
	return reflect.TypeFor[T]().String()
}

func targetName(v any) string {
	return strings.TrimPrefix(fmt.Sprintf("%T", v), "*")
}

func conversionFailed(e Entity, target string, cause error) error {
	return errors.ConversionFailed(target, cause).
		WithDetail(errors.DetailEntityKind, string(e.Kind())).
		WithDetail(errors.DetailContentType, e.ContentType())
}

func unsupportedTarget(e Entity, target string) error {
	return conversionFailed(e, target, fmt.Errorf("%s entity cannot be decoded into %s", e.Kind(), target))
}
