package codec

import (
	"gopkg.in/yaml.v3"

	"github.com/kbukum/restclient/mediatype"
)

// YAMLCodec encodes and decodes YAML with gopkg.in/yaml.v3.
type YAMLCodec struct{}

// YAML returns a YAML codec.
func YAML() *YAMLCodec { return &YAMLCodec{} }

// ContentType returns application/yaml.
func (c *YAMLCodec) ContentType() string { return mediatype.ApplicationYAML }

// Marshal encodes v as YAML.
func (c *YAMLCodec) Marshal(v any) ([]byte, error) {
	return yaml.Marshal(v)
}

// Unmarshal decodes the first YAML document into v.
func (c *YAMLCodec) Unmarshal(data []byte, v any) error {
	return yaml.Unmarshal(data, v)
}
