package codec

import (
	"bytes"

	"github.com/goccy/go-json"

	"github.com/kbukum/restclient/mediatype"
)

// JSONCodec encodes and decodes JSON with goccy/go-json.
type JSONCodec struct {
	disallowUnknown bool
}

// JSONOption configures a JSONCodec.
type JSONOption func(*JSONCodec)

// DisallowUnknownFields makes decoding into a struct fail on keys the
// struct does not declare.
func DisallowUnknownFields() JSONOption {
	return func(c *JSONCodec) { c.disallowUnknown = true }
}

// JSON returns a JSON codec. Numbers decoded into interface values are kept
// as json.Number so integers survive without float rounding.
func JSON(opts ...JSONOption) *JSONCodec {
	c := &JSONCodec{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ContentType returns application/json.
func (c *JSONCodec) ContentType() string { return mediatype.ApplicationJSON }

// Marshal encodes v as JSON.
func (c *JSONCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

// Unmarshal decodes a single JSON document into v.
func (c *JSONCodec) Unmarshal(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if c.disallowUnknown {
		dec.DisallowUnknownFields()
	}
	return dec.Decode(v)
}
