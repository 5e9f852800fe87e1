package wire

import (
	"github.com/sviezypan/protocodec/schema"
)

// Encoder handles protobuf wire format encoding, driven by a schema
// walked alongside the value being encoded.
type Encoder struct {
	buf []byte
}

// NewEncoder creates a new wire format encoder
func NewEncoder() *Encoder {
	return &Encoder{
		buf: make([]byte, 0, 1024),
	}
}

// Bytes returns the encoded bytes
func (e *Encoder) Bytes() []byte {
	return e.buf
}

// Reset clears the encoder buffer, keeping the allocation for reuse.
func (e *Encoder) Reset() {
	e.buf = e.buf[:0]
}

// EncodeKey appends a field key: varint of (fieldNumber << 3) | wireType.
func (e *Encoder) EncodeKey(fieldNumber FieldNumber, wireType WireType) {
	e.EncodeVarint(uint64(MakeTag(fieldNumber, wireType)))
}

// EncodeValue encodes a value under the given schema and returns its
// bytes. The output is record-like: a schema that does not write its
// own field keys is wrapped as the single field of an implicit record
// at field number 1.
func EncodeValue(s *schema.Schema, value interface{}) ([]byte, error) {
	e := NewEncoder()
	if err := e.EncodeValue(s, value); err != nil {
		return nil, err
	}
	return e.Bytes(), nil
}

// EncodeValue appends the record-like encoding of value to the buffer.
func (e *Encoder) EncodeValue(s *schema.Schema, value interface{}) error {
	s, value, err := reverseResolve(s, value)
	if err != nil {
		return err
	}

	switch s.Kind {
	case schema.KindFail:
		// a failing schema produces no bytes
		return nil
	case schema.KindRecord:
		return e.encodeRecordBody(s.Fields, value)
	case schema.KindTuple:
		return e.encodeTupleBody(s, value)
	case schema.KindOptional:
		if value == nil {
			return nil
		}
		return e.encodeField(1, s.Inner, value)
	case schema.KindEnum:
		return e.encodeEnumBody(s, value)
	case schema.KindSequence:
		return e.encodeSequenceField(1, s, value)
	default:
		return e.encodeField(1, s, value)
	}
}

// reverseResolve applies the reverse maps of any transform layers,
// outermost first, returning the underlying schema and value.
func reverseResolve(s *schema.Schema, v interface{}) (*schema.Schema, interface{}, error) {
	for s.Kind == schema.KindTransform {
		out, err := s.Reverse(v)
		if err != nil {
			return nil, nil, transformationError(err)
		}
		v = out
		s = s.Inner
	}
	return s, v, nil
}

// underlying strips transform layers without touching values.
func underlying(s *schema.Schema) *schema.Schema {
	for s.Kind == schema.KindTransform {
		s = s.Inner
	}
	return s
}

// encodeField appends key and payload for one field. Sequences expand
// to repeated or packed occurrences of the same field number.
func (e *Encoder) encodeField(fieldNumber FieldNumber, s *schema.Schema, value interface{}) error {
	s, value, err := reverseResolve(s, value)
	if err != nil {
		return err
	}

	switch s.Kind {
	case schema.KindFail:
		return nil
	case schema.KindPrimitive:
		return e.encodePrimitiveField(fieldNumber, s.Standard, value)
	case schema.KindRecord:
		sub := NewEncoder()
		if err := sub.encodeRecordBody(s.Fields, value); err != nil {
			return err
		}
		e.EncodeKey(fieldNumber, WireBytes)
		e.EncodeBytes(sub.Bytes())
		return nil
	case schema.KindTuple:
		sub := NewEncoder()
		if err := sub.encodeTupleBody(s, value); err != nil {
			return err
		}
		e.EncodeKey(fieldNumber, WireBytes)
		e.EncodeBytes(sub.Bytes())
		return nil
	case schema.KindOptional:
		sub := NewEncoder()
		if value != nil {
			if err := sub.encodeField(1, s.Inner, value); err != nil {
				return err
			}
		}
		e.EncodeKey(fieldNumber, WireBytes)
		e.EncodeBytes(sub.Bytes())
		return nil
	case schema.KindEnum:
		sub := NewEncoder()
		if err := sub.encodeEnumBody(s, value); err != nil {
			return err
		}
		e.EncodeKey(fieldNumber, WireBytes)
		e.EncodeBytes(sub.Bytes())
		return nil
	case schema.KindSequence:
		return e.encodeSequenceField(fieldNumber, s, value)
	default:
		return payloadError("unsupported schema kind: %s", s.Kind)
	}
}

// encodePrimitiveField appends key and payload for an atomic field.
func (e *Encoder) encodePrimitiveField(fieldNumber FieldNumber, t schema.StandardType, value interface{}) error {
	switch t.Class() {
	case schema.ClassVarint:
		e.EncodeKey(fieldNumber, WireVarint)
		return e.encodeNumericPayload(t, value)
	case schema.ClassFixed32:
		f, err := coerceToFloat32(value)
		if err != nil {
			return payloadError("%v", err)
		}
		e.EncodeKey(fieldNumber, WireFixed32)
		e.EncodeFloat32(f)
		return nil
	case schema.ClassFixed64:
		f, err := coerceToFloat64(value)
		if err != nil {
			return payloadError("%v", err)
		}
		e.EncodeKey(fieldNumber, WireFixed64)
		e.EncodeFloat64(f)
		return nil
	default:
		payload, err := standardPayload(t, value)
		if err != nil {
			return err
		}
		e.EncodeKey(fieldNumber, WireBytes)
		e.EncodeBytes(payload)
		return nil
	}
}

// encodeRecordBody writes the fields of a record, in declaration order,
// omitting fields whose value isDefaultValue reports as omittable.
func (e *Encoder) encodeRecordBody(fields []*schema.Field, value interface{}) error {
	if value == nil {
		return nil
	}
	m, ok := value.(map[string]interface{})
	if !ok {
		return payloadError("record value must be map[string]interface{}, got %T", value)
	}

	for i, f := range fields {
		fv := m[f.Name]
		if isDefaultValue(f.Schema, fv) {
			continue
		}
		if err := e.encodeField(FieldNumber(i+1), f.Schema, fv); err != nil {
			return wrapWithField(err, f.Name)
		}
	}
	return nil
}

// encodeTupleBody writes a tuple as the two-field record (_1, _2).
func (e *Encoder) encodeTupleBody(s *schema.Schema, value interface{}) error {
	p, ok := value.(schema.Pair)
	if !ok {
		return payloadError("tuple value must be schema.Pair, got %T", value)
	}
	fields := s.TupleFields()
	values := [2]interface{}{p.First, p.Second}
	for i, f := range fields {
		if isDefaultValue(f.Schema, values[i]) {
			continue
		}
		if err := e.encodeField(FieldNumber(i+1), f.Schema, values[i]); err != nil {
			return wrapWithField(err, f.Name)
		}
	}
	return nil
}

// encodeEnumBody writes exactly one key and payload whose field number
// is the 1-based ordinal of the selected case. The case payload is
// never omitted, even when it equals the type default: an empty body
// would read back as no case at all.
func (e *Encoder) encodeEnumBody(s *schema.Schema, value interface{}) error {
	variant, ok := value.(schema.Variant)
	if !ok {
		return payloadError("enumeration value must be schema.Variant, got %T", value)
	}
	idx := s.CaseIndex(variant.Case)
	if idx < 0 {
		return structuralError(errUnknownCase(variant.Case))
	}
	if err := e.encodeField(FieldNumber(idx+1), s.Cases[idx].Schema, variant.Value); err != nil {
		return wrapWithField(err, variant.Case)
	}
	return nil
}

// encodeSequenceField writes a sequence at the given field number:
// packed into one length-delimited frame when the element type has a
// primitive fixed wire type, repeated key+payload otherwise. Empty
// sequences emit nothing.
func (e *Encoder) encodeSequenceField(fieldNumber FieldNumber, s *schema.Schema, value interface{}) error {
	items, err := coerceToSlice(value)
	if err != nil {
		return payloadError("%v", err)
	}
	if len(items) == 0 {
		return nil
	}

	resolved := underlying(s.Element)
	if resolved.Kind == schema.KindPrimitive && schema.IsPackedType(resolved.Standard) {
		sub := NewEncoder()
		for _, item := range items {
			rs, rv, err := reverseResolve(s.Element, item)
			if err != nil {
				return err
			}
			if err := sub.encodePackedPayload(rs.Standard, rv); err != nil {
				return err
			}
		}
		e.EncodeKey(fieldNumber, WireBytes)
		e.EncodeBytes(sub.Bytes())
		return nil
	}

	for _, item := range items {
		if err := e.encodeElement(fieldNumber, s.Element, item); err != nil {
			return err
		}
	}
	return nil
}

// encodeElement writes one unpacked sequence element. Nested sequences
// and optionals get one frame per element so the element count survives
// the round trip.
func (e *Encoder) encodeElement(fieldNumber FieldNumber, elem *schema.Schema, value interface{}) error {
	rs, rv, err := reverseResolve(elem, value)
	if err != nil {
		return err
	}

	switch rs.Kind {
	case schema.KindSequence:
		sub := NewEncoder()
		if err := sub.EncodeValue(rs, rv); err != nil {
			return err
		}
		e.EncodeKey(fieldNumber, WireBytes)
		e.EncodeBytes(sub.Bytes())
		return nil
	case schema.KindOptional:
		sub := NewEncoder()
		if rv != nil {
			if err := sub.encodeField(1, rs.Inner, rv); err != nil {
				return err
			}
		}
		e.EncodeKey(fieldNumber, WireBytes)
		e.EncodeBytes(sub.Bytes())
		return nil
	default:
		return e.encodeField(fieldNumber, rs, rv)
	}
}

// encodePackedPayload appends the bare payload of one packed element.
func (e *Encoder) encodePackedPayload(t schema.StandardType, value interface{}) error {
	switch t.Class() {
	case schema.ClassFixed32:
		f, err := coerceToFloat32(value)
		if err != nil {
			return payloadError("%v", err)
		}
		e.EncodeFloat32(f)
		return nil
	case schema.ClassFixed64:
		f, err := coerceToFloat64(value)
		if err != nil {
			return payloadError("%v", err)
		}
		e.EncodeFloat64(f)
		return nil
	default:
		return e.encodeNumericPayload(t, value)
	}
}

// isDefaultValue reports whether a field value may be omitted from the
// wire. Only scalar defaults, empty strings and byte arrays, empty
// sequences, and absent optionals are omitted; composite and temporal
// values are always written.
func isDefaultValue(s *schema.Schema, v interface{}) bool {
	if v == nil {
		return true
	}
	switch s.Kind {
	case schema.KindPrimitive:
		switch s.Standard.Kind {
		case schema.TypeUnit:
			return true
		case schema.TypeBool:
			b, ok := v.(bool)
			return ok && !b
		case schema.TypeByte, schema.TypeShort, schema.TypeInt, schema.TypeLong, schema.TypeChar:
			n, err := coerceToInt64(v)
			return err == nil && n == 0
		case schema.TypeFloat, schema.TypeDouble:
			f, err := coerceToFloat64(v)
			return err == nil && f == 0
		case schema.TypeString:
			str, ok := v.(string)
			return ok && str == ""
		case schema.TypeBytes:
			b, ok := v.([]byte)
			return ok && len(b) == 0
		default:
			return false
		}
	case schema.KindSequence:
		items, ok := v.([]interface{})
		return ok && len(items) == 0
	default:
		return false
	}
}
