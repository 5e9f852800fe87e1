package wire

import (
	"errors"

	"github.com/sviezypan/protocodec/schema"
)

// Decoder handles protobuf wire format decoding, driven by a schema
// walked alongside the incoming bytes. Fields may arrive in any order;
// unknown fields are skipped; absent fields assume their type default.
type Decoder struct {
	buf []byte
	pos int
}

// NewDecoder creates a new wire format decoder
func NewDecoder(data []byte) *Decoder {
	return &Decoder{
		buf: data,
		pos: 0,
	}
}

// DecodeValue decodes one value of the given schema from data. Empty
// input fails with no bytes to decode; the streaming path has its own
// empty-input semantics and uses the Decoder method directly.
func DecodeValue(s *schema.Schema, data []byte) (interface{}, error) {
	if len(data) == 0 {
		return nil, &CodecError{Kind: KindTruncation, Err: ErrNoBytesToDecode}
	}
	d := NewDecoder(data)
	return d.DecodeValue(s)
}

// DecodeValue decodes a record-like frame from the remaining buffer: a
// schema that does not write its own field keys is read as the single
// field of an implicit record at field number 1.
func (d *Decoder) DecodeValue(s *schema.Schema) (interface{}, error) {
	switch s.Kind {
	case schema.KindTransform:
		inner, err := d.DecodeValue(s.Inner)
		if err != nil {
			return nil, err
		}
		out, err := s.Forward(inner)
		if err != nil {
			return nil, transformationError(err)
		}
		return out, nil
	case schema.KindFail:
		return nil, schemaFailError(s.Message)
	case schema.KindRecord:
		return d.decodeRecordBody(s.Fields, len(d.buf))
	case schema.KindTuple:
		return d.decodeTupleBody(s, len(d.buf))
	case schema.KindOptional:
		v, seen, err := d.decodeSingleField(s.Inner, len(d.buf))
		if err != nil {
			return nil, err
		}
		if !seen {
			return nil, nil
		}
		return v, nil
	case schema.KindEnum:
		return d.decodeEnumBody(s, len(d.buf))
	case schema.KindSequence:
		items := []interface{}{}
		for d.pos < len(d.buf) {
			num, wt, err := d.decodeKey()
			if err != nil {
				return nil, err
			}
			if num != 1 {
				if err := d.skipField(wt); err != nil {
					return nil, err
				}
				continue
			}
			items, err = d.decodeSequenceOccurrence(items, s.Element, wt)
			if err != nil {
				return nil, err
			}
		}
		return items, nil
	default:
		v, seen, err := d.decodeSingleField(s, len(d.buf))
		if err != nil {
			return nil, err
		}
		if !seen {
			dv, err := schema.Default(s)
			if err != nil {
				return nil, defaultError(err)
			}
			return dv, nil
		}
		return v, nil
	}
}

// decodeKey reads a field key and validates it: wire types outside
// {0, 1, 2, 5} and field number zero are key decode errors.
func (d *Decoder) decodeKey() (FieldNumber, WireType, error) {
	tag, err := d.DecodeVarint()
	if err != nil {
		return 0, 0, err
	}
	num, wt := ParseTag(Tag(tag))
	if !wt.IsValid() {
		return 0, 0, keyDecodeError(ErrUnknownWireType)
	}
	if num == 0 {
		return 0, 0, keyDecodeError(ErrInvalidFieldNumber)
	}
	return num, wt, nil
}

// skipField skips a payload the schema has no field for.
func (d *Decoder) skipField(wireType WireType) error {
	switch wireType {
	case WireVarint:
		return d.SkipVarint()
	case WireFixed64:
		if d.pos+8 > len(d.buf) {
			return truncationError()
		}
		d.pos += 8
		return nil
	case WireBytes:
		return d.SkipBytes()
	case WireFixed32:
		if d.pos+4 > len(d.buf) {
			return truncationError()
		}
		d.pos += 4
		return nil
	default:
		return keyDecodeError(ErrUnknownWireType)
	}
}

// frameEnd reads the length prefix of a nested frame and returns the
// buffer offset at which the frame ends.
func (d *Decoder) frameEnd(wireType WireType) (int, error) {
	if wireType != WireBytes {
		return 0, payloadError("expected length-delimited payload, got wire type %d", wireType)
	}
	length, err := d.DecodeVarint()
	if err != nil {
		return 0, err
	}
	if length > uint64(len(d.buf)-d.pos) {
		return 0, truncationError()
	}
	return d.pos + int(length), nil
}

// decodeRecordBody reads key/payload pairs until end, resolving each
// field by its 1-based ordinal, then fills absent fields with their
// type defaults.
func (d *Decoder) decodeRecordBody(fields []*schema.Field, end int) (map[string]interface{}, error) {
	values := make(map[string]interface{}, len(fields))

	for d.pos < end {
		num, wt, err := d.decodeKey()
		if err != nil {
			return nil, err
		}

		idx := int(num) - 1
		if idx >= len(fields) {
			// unknown field, skip it
			if err := d.skipField(wt); err != nil {
				return nil, err
			}
			continue
		}

		f := fields[idx]
		if resolved := underlying(f.Schema); resolved.Kind == schema.KindSequence {
			existing, _ := values[f.Name].([]interface{})
			items, err := d.decodeSequenceOccurrence(existing, resolved.Element, wt)
			if err != nil {
				return nil, wrapWithField(err, f.Name)
			}
			values[f.Name] = items
		} else {
			v, err := d.decodeFieldValue(f.Schema, wt)
			if err != nil {
				return nil, wrapWithField(err, f.Name)
			}
			values[f.Name] = v
		}
		if d.pos > end {
			return nil, truncationError()
		}
	}

	for _, f := range fields {
		if v, ok := values[f.Name]; ok {
			// repeated occurrences of a transformed sequence field were
			// accumulated on the inner representation; apply the
			// forward chain once the field is complete
			if f.Schema.Kind == schema.KindTransform {
				if items, isSeq := v.([]interface{}); isSeq && underlying(f.Schema).Kind == schema.KindSequence {
					out, err := applyForwardChain(f.Schema, items)
					if err != nil {
						return nil, wrapWithField(err, f.Name)
					}
					values[f.Name] = out
				}
			}
			continue
		}
		dv, err := schema.Default(f.Schema)
		if err != nil {
			return nil, wrapWithField(defaultError(err), f.Name)
		}
		values[f.Name] = dv
	}

	return values, nil
}

// decodeTupleBody reads a tuple as the two-field record (_1, _2).
func (d *Decoder) decodeTupleBody(s *schema.Schema, end int) (interface{}, error) {
	m, err := d.decodeRecordBody(s.TupleFields(), end)
	if err != nil {
		return nil, err
	}
	return schema.Pair{First: m["_1"], Second: m["_2"]}, nil
}

// decodeEnumBody reads the single key of an enumeration frame. The
// ordinal selects the case; with several keys the last one wins; with
// none the decode fails.
func (d *Decoder) decodeEnumBody(s *schema.Schema, end int) (interface{}, error) {
	var name string
	var value interface{}
	seen := false

	for d.pos < end {
		num, wt, err := d.decodeKey()
		if err != nil {
			return nil, err
		}

		idx := int(num) - 1
		if idx >= len(s.Cases) {
			if err := d.skipField(wt); err != nil {
				return nil, err
			}
			continue
		}

		c := s.Cases[idx]
		if resolved := underlying(c.Schema); resolved.Kind == schema.KindSequence {
			var existing []interface{}
			if seen && name == c.Name {
				existing, _ = value.([]interface{})
			}
			items, err := d.decodeSequenceOccurrence(existing, resolved.Element, wt)
			if err != nil {
				return nil, wrapWithField(err, c.Name)
			}
			value = items
		} else {
			v, err := d.decodeFieldValue(c.Schema, wt)
			if err != nil {
				return nil, wrapWithField(err, c.Name)
			}
			value = v
		}
		name = c.Name
		seen = true
		if d.pos > end {
			return nil, truncationError()
		}
	}

	if !seen {
		return nil, structuralError(ErrMissingEnumerationCase)
	}

	idx := s.CaseIndex(name)
	if c := s.Cases[idx]; c.Schema.Kind == schema.KindTransform && underlying(c.Schema).Kind == schema.KindSequence {
		out, err := applyForwardChain(c.Schema, value)
		if err != nil {
			return nil, wrapWithField(err, name)
		}
		value = out
	}
	return schema.Variant{Case: name, Value: value}, nil
}

// decodeSingleField reads the implicit one-field record used by the
// top-level framing rule and by optionals: only field number 1 carries
// a value, everything else is skipped.
func (d *Decoder) decodeSingleField(s *schema.Schema, end int) (interface{}, bool, error) {
	resolved := underlying(s)
	if resolved.Kind == schema.KindSequence {
		var items []interface{}
		seen := false
		for d.pos < end {
			num, wt, err := d.decodeKey()
			if err != nil {
				return nil, false, err
			}
			if num != 1 {
				if err := d.skipField(wt); err != nil {
					return nil, false, err
				}
				continue
			}
			items, err = d.decodeSequenceOccurrence(items, resolved.Element, wt)
			if err != nil {
				return nil, false, err
			}
			seen = true
		}
		if !seen {
			return nil, false, nil
		}
		v, err := applyForwardChain(s, items)
		if err != nil {
			return nil, false, err
		}
		return v, true, nil
	}

	var value interface{}
	seen := false
	for d.pos < end {
		num, wt, err := d.decodeKey()
		if err != nil {
			return nil, false, err
		}
		if num != 1 {
			if err := d.skipField(wt); err != nil {
				return nil, false, err
			}
			continue
		}
		value, err = d.decodeFieldValue(s, wt)
		if err != nil {
			return nil, false, err
		}
		seen = true
		if d.pos > end {
			return nil, false, truncationError()
		}
	}
	return value, seen, nil
}

// decodeFieldValue reads one field payload under the expected schema.
func (d *Decoder) decodeFieldValue(s *schema.Schema, wireType WireType) (interface{}, error) {
	switch s.Kind {
	case schema.KindTransform:
		inner, err := d.decodeFieldValue(s.Inner, wireType)
		if err != nil {
			return nil, err
		}
		out, err := s.Forward(inner)
		if err != nil {
			return nil, transformationError(err)
		}
		return out, nil
	case schema.KindFail:
		return nil, schemaFailError(s.Message)
	case schema.KindPrimitive:
		return d.decodeStandardPayload(s.Standard, wireType)
	case schema.KindRecord:
		end, err := d.frameEnd(wireType)
		if err != nil {
			return nil, err
		}
		return d.decodeRecordBody(s.Fields, end)
	case schema.KindTuple:
		end, err := d.frameEnd(wireType)
		if err != nil {
			return nil, err
		}
		return d.decodeTupleBody(s, end)
	case schema.KindOptional:
		end, err := d.frameEnd(wireType)
		if err != nil {
			return nil, err
		}
		v, seen, err := d.decodeSingleField(s.Inner, end)
		if err != nil {
			return nil, err
		}
		if !seen {
			return nil, nil
		}
		return v, nil
	case schema.KindEnum:
		end, err := d.frameEnd(wireType)
		if err != nil {
			return nil, err
		}
		return d.decodeEnumBody(s, end)
	case schema.KindSequence:
		// a sequence payload reached outside a repeated-field context
		// is a nested sequence element: one frame wrapping the same
		// field-1 framing a top-level sequence uses
		end, err := d.frameEnd(wireType)
		if err != nil {
			return nil, err
		}
		items := []interface{}{}
		for d.pos < end {
			num, wt, err := d.decodeKey()
			if err != nil {
				return nil, err
			}
			if num != 1 {
				if err := d.skipField(wt); err != nil {
					return nil, err
				}
				continue
			}
			items, err = d.decodeSequenceOccurrence(items, s.Element, wt)
			if err != nil {
				return nil, err
			}
		}
		return items, nil
	default:
		return nil, payloadError("unsupported schema kind: %s", s.Kind)
	}
}

// decodeSequenceOccurrence consumes one occurrence of a repeated field:
// either a packed frame holding any number of primitive elements, or a
// single unpacked element. Repeated occurrences concatenate.
func (d *Decoder) decodeSequenceOccurrence(existing []interface{}, elem *schema.Schema, wireType WireType) ([]interface{}, error) {
	if existing == nil {
		existing = []interface{}{}
	}
	resolved := underlying(elem)

	if wireType == WireBytes && resolved.Kind == schema.KindPrimitive && schema.IsPackedType(resolved.Standard) {
		end, err := d.frameEnd(wireType)
		if err != nil {
			return nil, err
		}
		for d.pos < end {
			v, err := d.decodePackedPayload(resolved.Standard)
			if err != nil {
				return nil, err
			}
			v, err = applyForwardChain(elem, v)
			if err != nil {
				return nil, err
			}
			existing = append(existing, v)
		}
		if d.pos > end {
			return nil, truncationError()
		}
		return existing, nil
	}

	v, err := d.decodeFieldValue(elem, wireType)
	if err != nil {
		return nil, err
	}
	return append(existing, v), nil
}

// applyForwardChain applies the forward maps of the transform layers
// above the underlying schema, innermost first.
func applyForwardChain(s *schema.Schema, v interface{}) (interface{}, error) {
	var chain []*schema.Schema
	for s.Kind == schema.KindTransform {
		chain = append(chain, s)
		s = s.Inner
	}
	for i := len(chain) - 1; i >= 0; i-- {
		out, err := chain[i].Forward(v)
		if err != nil {
			return nil, transformationError(err)
		}
		v = out
	}
	return v, nil
}

// defaultError classifies a failure to resolve a type default.
func defaultError(err error) error {
	if errors.Is(err, schema.ErrNoDefault) {
		return structuralError(ErrMissingEnumerationCase)
	}
	return &CodecError{Kind: KindSchemaFail, Err: err}
}

// DecodeRawFields decodes every key/payload pair in the buffer without
// schema knowledge, reporting raw payload values per wire type.
func (d *Decoder) DecodeRawFields() ([]*RawField, error) {
	var fields []*RawField

	for d.pos < len(d.buf) {
		num, wt, err := d.decodeKey()
		if err != nil {
			return nil, err
		}

		var data interface{}
		switch wt {
		case WireVarint:
			data, err = d.DecodeVarint()
		case WireFixed64:
			data, err = d.DecodeFixed64()
		case WireBytes:
			data, err = d.DecodeBytes()
		case WireFixed32:
			data, err = d.DecodeFixed32()
		}
		if err != nil {
			return nil, err
		}

		fields = append(fields, &RawField{FieldNumber: num, WireType: wt, Data: data})
	}

	return fields, nil
}
