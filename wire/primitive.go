package wire

import (
	"fmt"
	"math"
	"math/big"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/sviezypan/protocodec/schema"
)

// Payload encoding and decoding for the standard types. Numeric kinds
// are bare varints; Float and Double are fixed width; everything else
// travels inside a length-delimited frame: raw bytes for strings and
// binary data, canonical decimal text for the big-number kinds, the
// carried layout's textual form for the temporal kinds, and small
// varint groups for the component-based temporal kinds.

func errUnknownCase(name string) error {
	return fmt.Errorf("unknown enumeration case %q", name)
}

// encodeNumericPayload appends the varint payload of a numeric kind,
// range-checking the value against the kind's width.
func (e *Encoder) encodeNumericPayload(t schema.StandardType, value interface{}) error {
	if t.Kind == schema.TypeBool {
		b, err := coerceToBool(value)
		if err != nil {
			return payloadError("%v", err)
		}
		if b {
			e.EncodeVarint(1)
		} else {
			e.EncodeVarint(0)
		}
		return nil
	}

	n, err := coerceToInt64(value)
	if err != nil {
		return payloadError("%v", err)
	}
	switch t.Kind {
	case schema.TypeByte:
		if n < 0 || n > math.MaxUint8 {
			return overflowError("byte", n)
		}
	case schema.TypeShort:
		if n < math.MinInt16 || n > math.MaxInt16 {
			return overflowError("short", n)
		}
	case schema.TypeInt:
		if n < math.MinInt32 || n > math.MaxInt32 {
			return overflowError("int", n)
		}
	case schema.TypeChar:
		if n < 0 || n > int64(utf8.MaxRune) {
			return overflowError("char", n)
		}
	}
	e.EncodeVarint(uint64(n))
	return nil
}

// standardPayload builds the raw frame payload of a bytes-class
// standard type.
func standardPayload(t schema.StandardType, value interface{}) ([]byte, error) {
	switch t.Kind {
	case schema.TypeUnit:
		return nil, nil
	case schema.TypeString:
		s, ok := value.(string)
		if !ok {
			return nil, payloadError("expected string, got %T", value)
		}
		return []byte(s), nil
	case schema.TypeBytes:
		b, ok := value.([]byte)
		if !ok {
			return nil, payloadError("expected []byte, got %T", value)
		}
		return b, nil
	case schema.TypeBigInteger:
		n, ok := value.(*big.Int)
		if !ok || n == nil {
			return nil, payloadError("expected *big.Int, got %T", value)
		}
		return []byte(n.Text(10)), nil
	case schema.TypeBigDecimal:
		d, ok := value.(decimal.Decimal)
		if !ok {
			return nil, payloadError("expected decimal.Decimal, got %T", value)
		}
		return []byte(d.String()), nil
	case schema.TypeDayOfWeek:
		wd, ok := value.(time.Weekday)
		if !ok {
			return nil, payloadError("expected time.Weekday, got %T", value)
		}
		iso := int(wd)
		if iso == 0 {
			iso = 7 // Sunday
		}
		sub := NewEncoder()
		sub.EncodeVarint(uint64(iso))
		return sub.Bytes(), nil
	case schema.TypeMonth:
		m, ok := value.(time.Month)
		if !ok {
			return nil, payloadError("expected time.Month, got %T", value)
		}
		sub := NewEncoder()
		sub.EncodeVarint(uint64(m))
		return sub.Bytes(), nil
	case schema.TypeMonthDay:
		md, ok := value.(schema.MonthDay)
		if !ok {
			return nil, payloadError("expected schema.MonthDay, got %T", value)
		}
		return varintFieldsPayload(int64(md.Month), int64(md.Day)), nil
	case schema.TypeYearMonth:
		ym, ok := value.(schema.YearMonth)
		if !ok {
			return nil, payloadError("expected schema.YearMonth, got %T", value)
		}
		return varintFieldsPayload(int64(ym.Year), int64(ym.Month)), nil
	case schema.TypePeriod:
		p, ok := value.(schema.Period)
		if !ok {
			return nil, payloadError("expected schema.Period, got %T", value)
		}
		return varintFieldsPayload(int64(p.Years), int64(p.Months), int64(p.Days)), nil
	case schema.TypeYear:
		y, ok := value.(schema.Year)
		if !ok {
			return nil, payloadError("expected schema.Year, got %T", value)
		}
		sub := NewEncoder()
		sub.EncodeVarint(EncodeZigZag64(int64(y)))
		return sub.Bytes(), nil
	case schema.TypeZoneOffset:
		z, ok := value.(schema.ZoneOffset)
		if !ok {
			return nil, payloadError("expected schema.ZoneOffset, got %T", value)
		}
		sub := NewEncoder()
		sub.EncodeVarint(EncodeZigZag64(int64(z)))
		return sub.Bytes(), nil
	case schema.TypeDuration:
		dur, ok := value.(time.Duration)
		if !ok {
			return nil, payloadError("expected time.Duration, got %T", value)
		}
		seconds := int64(dur / time.Second)
		nanos := int64(dur % time.Second)
		sub := NewEncoder()
		sub.EncodeVarint(EncodeZigZag64(seconds))
		sub.EncodeVarint(EncodeZigZag64(nanos))
		return sub.Bytes(), nil
	case schema.TypeZoneID:
		loc, ok := value.(*time.Location)
		if !ok || loc == nil {
			return nil, payloadError("expected *time.Location, got %T", value)
		}
		return []byte(loc.String()), nil
	case schema.TypeInstant, schema.TypeLocalDate, schema.TypeLocalTime,
		schema.TypeLocalDateTime, schema.TypeOffsetTime,
		schema.TypeOffsetDateTime, schema.TypeZonedDateTime:
		ts, ok := value.(time.Time)
		if !ok {
			return nil, payloadError("expected time.Time, got %T", value)
		}
		return []byte(ts.Format(t.Layout)), nil
	default:
		return nil, payloadError("unsupported standard type: %s", t.Kind)
	}
}

// varintFieldsPayload encodes a small record of plain-varint fields at
// numbers 1..n, omitting zero components.
func varintFieldsPayload(values ...int64) []byte {
	sub := NewEncoder()
	for i, v := range values {
		if v == 0 {
			continue
		}
		sub.EncodeKey(FieldNumber(i+1), WireVarint)
		sub.EncodeVarint(uint64(v))
	}
	return sub.Bytes()
}

// decodeStandardPayload reads the payload of an atomic field, checking
// the incoming wire type against the one the schema expects.
func (d *Decoder) decodeStandardPayload(t schema.StandardType, wireType WireType) (interface{}, error) {
	switch t.Class() {
	case schema.ClassVarint:
		if wireType != WireVarint {
			return nil, payloadError("invalid wire type %d for %s", wireType, t.Kind)
		}
		return d.decodeNumericPayload(t)
	case schema.ClassFixed32:
		if wireType != WireFixed32 {
			return nil, payloadError("invalid wire type %d for %s", wireType, t.Kind)
		}
		return d.DecodeFloat32()
	case schema.ClassFixed64:
		if wireType != WireFixed64 {
			return nil, payloadError("invalid wire type %d for %s", wireType, t.Kind)
		}
		return d.DecodeFloat64()
	default:
		if wireType != WireBytes {
			return nil, payloadError("invalid wire type %d for %s", wireType, t.Kind)
		}
		data, err := d.DecodeBytes()
		if err != nil {
			return nil, err
		}
		return decodeFramedStandard(t, data)
	}
}

// decodeNumericPayload reads a varint and narrows it to the kind's
// width. Narrowing that loses information fails with integer overflow.
func (d *Decoder) decodeNumericPayload(t schema.StandardType) (interface{}, error) {
	u, err := d.DecodeVarint()
	if err != nil {
		return nil, err
	}
	n := int64(u)
	switch t.Kind {
	case schema.TypeBool:
		return u != 0, nil
	case schema.TypeByte:
		if n < 0 || n > math.MaxUint8 {
			return nil, overflowError("byte", n)
		}
		return uint8(n), nil
	case schema.TypeShort:
		if n < math.MinInt16 || n > math.MaxInt16 {
			return nil, overflowError("short", n)
		}
		return int16(n), nil
	case schema.TypeInt:
		if n < math.MinInt32 || n > math.MaxInt32 {
			return nil, overflowError("int", n)
		}
		return int32(n), nil
	case schema.TypeChar:
		if n < 0 || n > int64(utf8.MaxRune) {
			return nil, overflowError("char", n)
		}
		return rune(n), nil
	default:
		return n, nil
	}
}

// decodeFramedStandard parses the body of a length-delimited atomic
// payload.
func decodeFramedStandard(t schema.StandardType, data []byte) (interface{}, error) {
	switch t.Kind {
	case schema.TypeUnit:
		return nil, nil
	case schema.TypeString:
		return decodeUTF8(data)
	case schema.TypeBytes:
		return data, nil
	case schema.TypeBigInteger:
		n, ok := new(big.Int).SetString(string(data), 10)
		if !ok {
			return nil, payloadError("invalid big integer text %q", data)
		}
		return n, nil
	case schema.TypeBigDecimal:
		dec, err := decimal.NewFromString(string(data))
		if err != nil {
			return nil, payloadError("invalid big decimal text %q: %v", data, err)
		}
		return dec, nil
	case schema.TypeDayOfWeek:
		n, err := singleVarint(data)
		if err != nil {
			return nil, err
		}
		if n < 1 || n > 7 {
			return nil, payloadError("day of week out of range: %d", n)
		}
		return time.Weekday(n % 7), nil
	case schema.TypeMonth:
		n, err := singleVarint(data)
		if err != nil {
			return nil, err
		}
		if n < 1 || n > 12 {
			return nil, payloadError("month out of range: %d", n)
		}
		return time.Month(n), nil
	case schema.TypeMonthDay:
		parts, err := varintFields(data, 2)
		if err != nil {
			return nil, err
		}
		return schema.MonthDay{Month: time.Month(parts[0]), Day: int(parts[1])}, nil
	case schema.TypeYearMonth:
		parts, err := varintFields(data, 2)
		if err != nil {
			return nil, err
		}
		return schema.YearMonth{Year: int(parts[0]), Month: time.Month(parts[1])}, nil
	case schema.TypePeriod:
		parts, err := varintFields(data, 3)
		if err != nil {
			return nil, err
		}
		return schema.Period{Years: int(parts[0]), Months: int(parts[1]), Days: int(parts[2])}, nil
	case schema.TypeYear:
		n, err := singleVarint(data)
		if err != nil {
			return nil, err
		}
		return schema.Year(DecodeZigZag64(n)), nil
	case schema.TypeZoneOffset:
		n, err := singleVarint(data)
		if err != nil {
			return nil, err
		}
		return schema.ZoneOffset(DecodeZigZag64(n)), nil
	case schema.TypeDuration:
		sub := NewDecoder(data)
		secs, err := sub.DecodeVarint()
		if err != nil {
			return nil, err
		}
		nanos, err := sub.DecodeVarint()
		if err != nil {
			return nil, err
		}
		return time.Duration(DecodeZigZag64(secs))*time.Second + time.Duration(DecodeZigZag64(nanos)), nil
	case schema.TypeZoneID:
		name, err := decodeUTF8(data)
		if err != nil {
			return nil, err
		}
		loc, err := time.LoadLocation(name)
		if err != nil {
			return nil, payloadError("unknown zone id %q: %v", name, err)
		}
		return loc, nil
	case schema.TypeInstant, schema.TypeLocalDate, schema.TypeLocalTime,
		schema.TypeLocalDateTime, schema.TypeOffsetTime,
		schema.TypeOffsetDateTime, schema.TypeZonedDateTime:
		text, err := decodeUTF8(data)
		if err != nil {
			return nil, err
		}
		ts, err := time.Parse(t.Layout, text)
		if err != nil {
			return nil, payloadError("invalid %s text %q: %v", t.Kind, text, err)
		}
		return ts, nil
	default:
		return nil, payloadError("unsupported standard type: %s", t.Kind)
	}
}

// decodePackedPayload reads one element payload inside a packed frame.
func (d *Decoder) decodePackedPayload(t schema.StandardType) (interface{}, error) {
	switch t.Class() {
	case schema.ClassFixed32:
		return d.DecodeFloat32()
	case schema.ClassFixed64:
		return d.DecodeFloat64()
	default:
		return d.decodeNumericPayload(t)
	}
}

func singleVarint(data []byte) (uint64, error) {
	sub := NewDecoder(data)
	return sub.DecodeVarint()
}

// varintFields parses a small record of plain-varint fields at numbers
// 1..n, skipping unknown fields and defaulting absent ones to zero.
func varintFields(data []byte, n int) ([]int64, error) {
	sub := NewDecoder(data)
	out := make([]int64, n)
	for sub.pos < len(sub.buf) {
		num, wt, err := sub.decodeKey()
		if err != nil {
			return nil, err
		}
		if int(num) <= n && wt == WireVarint {
			u, err := sub.DecodeVarint()
			if err != nil {
				return nil, err
			}
			out[num-1] = int64(u)
			continue
		}
		if err := sub.skipField(wt); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func decodeUTF8(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", &CodecError{Kind: KindPayload, Err: fmt.Errorf("%w: %q", ErrMalformedUTF8, data)}
	}
	return string(data), nil
}
