package entity

import (
	"bytes"
	"fmt"

	"github.com/PuerkitoBio/goquery"

	"github.com/kbukum/restclient/codec"
	"github.com/kbukum/restclient/errors"
	"github.com/kbukum/restclient/httpclient/sse"
)

// Structured is a body decoded by a Codec: JSON, XML, YAML or any custom
// format registered with its own kind.
type Structured struct {
	body
	kind  Kind
	codec codec.Codec
}

// NewStructured builds a structured entity that decodes with c.
func NewStructured(kind Kind, contentType string, data []byte, c codec.Codec) *Structured {
	return &Structured{body: newBody(contentType, data), kind: kind, codec: c}
}

// Kind reports the structured format.
func (e *Structured) Kind() Kind { return e.kind }

// Codec returns the decoder the entity delegates to.
func (e *Structured) Codec() codec.Codec { return e.codec }

// Decode unmarshals the whole body into v.
func (e *Structured) Decode(v any) error {
	if v == nil {
		return unsupportedTarget(e, "<nil>")
	}
	if err := e.codec.Unmarshal(e.data, v); err != nil {
		return conversionFailed(e, targetName(v), err)
	}
	return nil
}

// Text is a plain text body.
type Text struct {
	body
}

// NewText builds a text entity.
func NewText(contentType string, data []byte) *Text {
	return &Text{body: newBody(contentType, data)}
}

// Kind returns KindText.
func (e *Text) Kind() Kind { return KindText }

// Decode accepts only *string.
func (e *Text) Decode(v any) error {
	if p, ok := v.(*string); ok && p != nil {
		*p = e.ReadAsText()
		return nil
	}
	return unsupportedTarget(e, targetName(v))
}

// Opaque is a body no other rule claimed, kept as raw bytes.
type Opaque struct {
	body
}

// NewOpaque builds an opaque entity.
func NewOpaque(contentType string, data []byte) *Opaque {
	return &Opaque{body: newBody(contentType, data)}
}

// Kind returns KindOpaque.
func (e *Opaque) Kind() Kind { return KindOpaque }

// Decode accepts only *[]byte.
func (e *Opaque) Decode(v any) error {
	if p, ok := v.(*[]byte); ok && p != nil {
		*p = e.Bytes()
		return nil
	}
	return unsupportedTarget(e, targetName(v))
}

// HTML is an HTML document body.
type HTML struct {
	body
}

// NewHTML builds an HTML entity.
func NewHTML(contentType string, data []byte) *HTML {
	return &HTML{body: newBody(contentType, data)}
}

// Kind returns KindHTML.
func (e *HTML) Kind() Kind { return KindHTML }

// Decode accepts *string (the markup) and **goquery.Document (a freshly
// parsed document per call).
func (e *HTML) Decode(v any) error {
	switch p := v.(type) {
	case *string:
		if p != nil {
			*p = e.ReadAsText()
			return nil
		}
	case **goquery.Document:
		if p != nil {
			doc, err := goquery.NewDocumentFromReader(bytes.NewReader(e.data))
			if err != nil {
				return conversionFailed(e, targetName(v), err)
			}
			*p = doc
			return nil
		}
	}
	return unsupportedTarget(e, targetName(v))
}

// EventStream is a buffered text/event-stream body.
type EventStream struct {
	body
}

// NewEventStream builds an event stream entity.
func NewEventStream(contentType string, data []byte) *EventStream {
	return &EventStream{body: newBody(contentType, data)}
}

// Kind returns KindEventStream.
func (e *EventStream) Kind() Kind { return KindEventStream }

// Events parses the body into its events, in order.
func (e *EventStream) Events() ([]sse.Event, error) {
	events, err := sse.Parse(e.data)
	if err != nil {
		return nil, conversionFailed(e, "[]sse.Event", err)
	}
	return events, nil
}

// Decode accepts *[]sse.Event and *string.
func (e *EventStream) Decode(v any) error {
	switch p := v.(type) {
	case *[]sse.Event:
		if p != nil {
			events, err := e.Events()
			if err != nil {
				return err
			}
			*p = events
			return nil
		}
	case *string:
		if p != nil {
			*p = e.ReadAsText()
			return nil
		}
	}
	return unsupportedTarget(e, targetName(v))
}

// DecodeList decodes the whole entity into an ordered slice of T in one
// pass. Structured entities delegate to their codec; an event stream yields
// its events when T is sse.Event. The result is never nil on success.
func DecodeList[T any](e Entity) ([]T, error) {
	target := "[]" + TypeName[T]()
	switch v := e.(type) {
	case *Structured:
		items, err := codec.UnmarshalSequence[T](v.codec, v.data)
		if err != nil {
			return nil, conversionFailed(e, target, err)
		}
		return items, nil
	case *EventStream:
		var out []T
		if p, ok := any(&out).(*[]sse.Event); ok {
			events, err := v.Events()
			if err != nil {
				return nil, err
			}
			*p = events
			return out, nil
		}
	case nil:
		return nil, errors.ConversionFailed(target, fmt.Errorf("no entity"))
	}
	return nil, unsupportedTarget(e, target)
}
