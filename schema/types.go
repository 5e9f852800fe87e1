package schema

// Schema is the runtime description of a type. It is a tagged tree: Kind
// selects the variant and only the fields belonging to that variant are
// set. Schemas are immutable once built and may be shared freely across
// goroutines; the codec borrows them read-only for the duration of one
// encode or decode call.
type Schema struct {
	Kind     Kind
	Standard StandardType // KindPrimitive
	Element  *Schema      // KindSequence
	Fields   []*Field     // KindRecord
	Cases    []*Case      // KindEnum
	First    *Schema      // KindTuple
	Second   *Schema      // KindTuple
	Inner    *Schema      // KindOptional, KindTransform
	Forward  Mapper       // KindTransform: wire representation -> value
	Reverse  Mapper       // KindTransform: value -> wire representation
	Message  string       // KindFail
}

// Mapper converts between the two sides of a Transform schema. A mapper
// either returns the converted value or an error describing why the
// conversion is impossible.
type Mapper func(interface{}) (interface{}, error)

// Field represents a named record field. The position of a field inside
// its record fixes the tag number: the i-th field (1-based) is encoded
// with protobuf field number i.
type Field struct {
	Name   string
	Schema *Schema
}

// Case represents one alternative of an enumeration. As with record
// fields, declaration order fixes the tag number of each case.
type Case struct {
	Name   string
	Schema *Schema
}

// Kind represents the variant of a schema node
type Kind string

const (
	KindPrimitive Kind = "primitive"
	KindSequence  Kind = "sequence"
	KindRecord    Kind = "record"
	KindEnum      Kind = "enumeration"
	KindTuple     Kind = "tuple"
	KindOptional  Kind = "optional"
	KindTransform Kind = "transform"
	KindFail      Kind = "fail"
)

// Primitive builds a schema node for an atomic standard type.
func Primitive(t StandardType) *Schema {
	return &Schema{Kind: KindPrimitive, Standard: t}
}

// Sequence builds a schema for an ordered sequence of like-typed elements.
func Sequence(element *Schema) *Schema {
	return &Schema{Kind: KindSequence, Element: element}
}

// Record builds a schema for a product of heterogeneous named fields.
func Record(fields ...*Field) *Schema {
	return &Schema{Kind: KindRecord, Fields: fields}
}

// Enumeration builds a schema for a discriminated union of alternatives.
func Enumeration(cases ...*Case) *Schema {
	return &Schema{Kind: KindEnum, Cases: cases}
}

// Tuple builds a 2-arity product. On the wire it is identical to a
// record with fields (_1, _2) at numbers 1 and 2.
func Tuple(first, second *Schema) *Schema {
	return &Schema{Kind: KindTuple, First: first, Second: second}
}

// Optional builds a schema for a value that may be absent. On the wire
// it is identical to a record with a single optional field at number 1.
func Optional(inner *Schema) *Schema {
	return &Schema{Kind: KindOptional, Inner: inner}
}

// Transform builds an invertible view over an inner schema. forward maps
// the decoded inner representation to the outer value; reverse maps the
// outer value back to the inner representation before encoding.
func Transform(inner *Schema, forward, reverse Mapper) *Schema {
	return &Schema{Kind: KindTransform, Inner: inner, Forward: forward, Reverse: reverse}
}

// Fail builds a schema that refuses to encode or decode, carrying the
// given message in both directions.
func Fail(message string) *Schema {
	return &Schema{Kind: KindFail, Message: message}
}

// FieldOf builds a named record field.
func FieldOf(name string, s *Schema) *Field {
	return &Field{Name: name, Schema: s}
}

// CaseOf builds a named enumeration case.
func CaseOf(name string, s *Schema) *Case {
	return &Case{Name: name, Schema: s}
}

// TupleFields returns the implicit record fields of a tuple schema.
func (s *Schema) TupleFields() []*Field {
	return []*Field{
		{Name: "_1", Schema: s.First},
		{Name: "_2", Schema: s.Second},
	}
}

// SelfFraming reports whether a schema writes its own field keys, i.e.
// whether a top-level encode of it needs no implicit single-field
// record wrapper. Transform framing follows the inner schema.
func (s *Schema) SelfFraming() bool {
	switch s.Kind {
	case KindRecord, KindTuple, KindOptional, KindEnum, KindFail:
		return true
	case KindTransform:
		return s.Inner.SelfFraming()
	default:
		return false
	}
}

// CaseIndex returns the 0-based ordinal of the named case, or -1 if the
// enumeration has no such case.
func (s *Schema) CaseIndex(name string) int {
	for i, c := range s.Cases {
		if c.Name == name {
			return i
		}
	}
	return -1
}
