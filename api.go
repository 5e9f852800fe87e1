package protocodec

import (
	"fmt"

	"github.com/sviezypan/protocodec/registry"
	"github.com/sviezypan/protocodec/schema"
	"github.com/sviezypan/protocodec/wire"
)

// Codec is the main interface for the library: a schema-driven protobuf
// codec with no code-generation step. Schemas are ordinary values built
// at runtime and shared read-only across calls.
type Codec interface {
	// Encode encodes a value of the given schema into protobuf bytes.
	Encode(s *schema.Schema, value interface{}) ([]byte, error)

	// Decode decodes protobuf bytes into a value of the given schema.
	Decode(s *schema.Schema, data []byte) (interface{}, error)

	// Parse parses the given data into raw fields. This is used when schema is not known.
	Parse(data []byte) (map[string]interface{}, error)

	// RegisterSchema stores a schema under a name for the named operations.
	RegisterSchema(name string, s *schema.Schema) error

	// MarshalNamed encodes a value using a previously registered schema.
	MarshalNamed(name string, value interface{}) ([]byte, error)

	// UnmarshalNamed decodes bytes using a previously registered schema.
	UnmarshalNamed(name string, data []byte) (interface{}, error)

	// StreamEncoder constructs a streaming encoder for the schema.
	StreamEncoder(s *schema.Schema) *wire.StreamEncoder

	// StreamDecoder constructs a streaming decoder for the schema.
	StreamDecoder(s *schema.Schema) *wire.StreamDecoder
}

type codec struct {
	registry *registry.Registry
}

// NewCodec creates a codec with an empty schema registry.
func NewCodec() Codec {
	return &codec{
		registry: registry.NewRegistry(),
	}
}

// Encode encodes a value of the given schema. Pure and re-entrant: the
// codec holds no state between calls.
func (c *codec) Encode(s *schema.Schema, value interface{}) ([]byte, error) {
	return wire.EncodeValue(s, value)
}

// Decode decodes protobuf bytes into a value of the given schema.
func (c *codec) Decode(s *schema.Schema, data []byte) (interface{}, error) {
	return wire.DecodeValue(s, data)
}

// Parse implements Codec - parses protobuf data without schema knowledge.
func (c *codec) Parse(data []byte) (map[string]interface{}, error) {
	if len(data) == 0 {
		return make(map[string]interface{}), nil
	}

	decoder := wire.NewDecoder(data)
	fields, err := decoder.DecodeRawFields()
	if err != nil {
		return nil, fmt.Errorf("failed to decode field: %w", err)
	}

	result := make(map[string]interface{})
	for _, field := range fields {
		// Use field number as key since we don't have schema
		fieldKey := fmt.Sprintf("field_%d", field.FieldNumber)

		// Convert wire type to more readable format
		switch field.WireType {
		case wire.WireVarint:
			result[fieldKey] = map[string]interface{}{
				"type":  "varint",
				"value": field.Data,
			}
		case wire.WireFixed64:
			result[fieldKey] = map[string]interface{}{
				"type":  "fixed64",
				"value": field.Data,
			}
		case wire.WireBytes:
			result[fieldKey] = map[string]interface{}{
				"type":  "bytes",
				"value": field.Data,
			}
		case wire.WireFixed32:
			result[fieldKey] = map[string]interface{}{
				"type":  "fixed32",
				"value": field.Data,
			}
		}
	}

	return result, nil
}

// RegisterSchema stores a schema under a name.
func (c *codec) RegisterSchema(name string, s *schema.Schema) error {
	return c.registry.Register(name, s)
}

// MarshalNamed encodes a value using a registered schema.
func (c *codec) MarshalNamed(name string, value interface{}) ([]byte, error) {
	s, err := c.registry.Get(name)
	if err != nil {
		return nil, fmt.Errorf("schema not found: %v", err)
	}
	return wire.EncodeValue(s, value)
}

// UnmarshalNamed decodes bytes using a registered schema.
func (c *codec) UnmarshalNamed(name string, data []byte) (interface{}, error) {
	s, err := c.registry.Get(name)
	if err != nil {
		return nil, fmt.Errorf("schema not found: %v", err)
	}
	return wire.DecodeValue(s, data)
}

// StreamEncoder constructs a streaming encoder for the schema.
func (c *codec) StreamEncoder(s *schema.Schema) *wire.StreamEncoder {
	return wire.NewStreamEncoder(s)
}

// StreamDecoder constructs a streaming decoder for the schema.
func (c *codec) StreamDecoder(s *schema.Schema) *wire.StreamDecoder {
	return wire.NewStreamDecoder(s)
}

// Encode is a convenience wrapper around wire.EncodeValue.
func Encode(s *schema.Schema, value interface{}) ([]byte, error) {
	return wire.EncodeValue(s, value)
}

// Decode is a convenience wrapper around wire.DecodeValue.
func Decode(s *schema.Schema, data []byte) (interface{}, error) {
	return wire.DecodeValue(s, data)
}
