// Package codec provides the content decoders that structured entities
// delegate to: JSON, XML and YAML.
//
// A codec decodes a whole body into a value, or into an ordered sequence in
// one pass through UnmarshalSequence. Formats whose sequence shape is not a
// native array (XML) implement SequenceUnmarshaler to define it.
package codec

import (
	"fmt"

	"github.com/kbukum/restclient/mediatype"
)

// Codec provides content-type aware marshaling.
type Codec interface {
	// ContentType returns the MIME type for this codec (e.g., "application/json").
	ContentType() string

	// Marshal encodes v into bytes.
	Marshal(v any) ([]byte, error)

	// Unmarshal decodes data into v.
	Unmarshal(data []byte, v any) error
}

// SequenceUnmarshaler is implemented by codecs that walk a sequence
// themselves. each is called once per element in source order with a
// function that decodes that element into its argument.
type SequenceUnmarshaler interface {
	UnmarshalSequence(data []byte, each func(decode func(v any) error) error) error
}

// SequenceCodec is a codec that defines its own sequence shape. The XML
// rule requires one.
type SequenceCodec interface {
	Codec
	SequenceUnmarshaler
}

// SequenceMarshaler is implemented by codecs that need to wrap a sequence
// in an envelope when encoding it.
type SequenceMarshaler interface {
	MarshalSequence(items []any) ([]byte, error)
}

// UnmarshalSequence decodes the whole of data into an ordered slice of T.
// Order and duplicates are preserved. The result is never nil on success.
//
// Codecs without SequenceUnmarshaler must have a native array shape. An XML
// codec without it is rejected instead of decoding the root element as a
// single item.
func UnmarshalSequence[T any](c Codec, data []byte) ([]T, error) {
	out := make([]T, 0)
	if su, ok := c.(SequenceUnmarshaler); ok {
		err := su.UnmarshalSequence(data, func(decode func(v any) error) error {
			var item T
			if err := decode(&item); err != nil {
				return err
			}
			out = append(out, item)
			return nil
		})
		if err != nil {
			return nil, err
		}
		return out, nil
	}
	if isXML(c.ContentType()) {
		return nil, fmt.Errorf("codec %T decodes %s but has no sequence support", c, c.ContentType())
	}
	if err := c.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	// A null document decodes to a nil slice; it is reported as empty.
	if out == nil {
		out = make([]T, 0)
	}
	return out, nil
}

// MarshalSequence encodes items as a sequence in c's format.
func MarshalSequence[T any](c Codec, items []T) ([]byte, error) {
	if sm, ok := c.(SequenceMarshaler); ok {
		boxed := make([]any, len(items))
		for i := range items {
			boxed[i] = items[i]
		}
		return sm.MarshalSequence(boxed)
	}
	if items == nil {
		items = []T{}
	}
	return c.Marshal(items)
}

func isXML(contentType string) bool {
	mt, ok := mediatype.Parse(contentType)
	if !ok {
		return false
	}
	if mt.Suffix() == "xml" {
		return true
	}
	for _, name := range mediatype.XMLTypes {
		if mt.Essence() == name {
			return true
		}
	}
	return false
}
