package codec

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"

	"golang.org/x/net/html/charset"

	"github.com/kbukum/restclient/mediatype"
)

// Default element names used when encoding a sequence.
const (
	DefaultXMLRoot = "items"
	DefaultXMLItem = "item"
)

// XMLCodec encodes and decodes XML. A sequence is the list of child
// elements of the document root, whatever their names.
type XMLCodec struct {
	root string
	item string
}

// XML returns an XML codec that wraps encoded sequences as
// <items><item>...</item></items>.
func XML() *XMLCodec {
	return &XMLCodec{root: DefaultXMLRoot, item: DefaultXMLItem}
}

// WithElementNames returns a copy of c that encodes sequences with the given
// root and item element names.
func (c *XMLCodec) WithElementNames(root, item string) *XMLCodec {
	return &XMLCodec{root: root, item: item}
}

// ContentType returns application/xml.
func (c *XMLCodec) ContentType() string { return mediatype.ApplicationXML }

// Marshal encodes v as XML.
func (c *XMLCodec) Marshal(v any) ([]byte, error) {
	return xml.Marshal(v)
}

// Unmarshal decodes the document element into v.
func (c *XMLCodec) Unmarshal(data []byte, v any) error {
	return newDecoder(data).Decode(v)
}

// MarshalSequence encodes items as children of a single root element.
func (c *XMLCodec) MarshalSequence(items []any) ([]byte, error) {
	var buf bytes.Buffer
	enc := xml.NewEncoder(&buf)
	root := xml.StartElement{Name: xml.Name{Local: c.root}}
	if err := enc.EncodeToken(root); err != nil {
		return nil, err
	}
	for _, item := range items {
		if err := enc.EncodeElement(item, xml.StartElement{Name: xml.Name{Local: c.item}}); err != nil {
			return nil, err
		}
	}
	if err := enc.EncodeToken(root.End()); err != nil {
		return nil, err
	}
	if err := enc.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalSequence walks the children of the root element in order.
func (c *XMLCodec) UnmarshalSequence(data []byte, each func(decode func(v any) error) error) error {
	dec := newDecoder(data)
	if _, err := nextStart(dec); err != nil {
		if err == io.EOF {
			return fmt.Errorf("xml: no root element")
		}
		return err
	}
	for {
		tok, err := dec.Token()
		if err != nil {
			if err == io.EOF {
				return fmt.Errorf("xml: unterminated root element")
			}
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			start := t
			if err := each(func(v any) error { return dec.DecodeElement(v, &start) }); err != nil {
				return err
			}
		case xml.EndElement:
			return nil
		}
	}
}

// newDecoder reads data, converting documents that declare a non-UTF-8
// encoding.
func newDecoder(data []byte) *xml.Decoder {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.CharsetReader = charset.NewReaderLabel
	return dec
}

func nextStart(dec *xml.Decoder) (xml.StartElement, error) {
	for {
		tok, err := dec.Token()
		if err != nil {
			return xml.StartElement{}, err
		}
		if se, ok := tok.(xml.StartElement); ok {
			return se, nil
		}
	}
}
