package schema

import "time"

// StandardKind enumerates the atomic types a Primitive schema can carry.
type StandardKind string

const (
	TypeUnit           StandardKind = "unit"
	TypeBool           StandardKind = "bool"
	TypeByte           StandardKind = "byte"
	TypeShort          StandardKind = "short"
	TypeInt            StandardKind = "int"
	TypeLong           StandardKind = "long"
	TypeFloat          StandardKind = "float"
	TypeDouble         StandardKind = "double"
	TypeChar           StandardKind = "char"
	TypeString         StandardKind = "string"
	TypeBytes          StandardKind = "binaryBytes"
	TypeBigInteger     StandardKind = "bigInteger"
	TypeBigDecimal     StandardKind = "bigDecimal"
	TypeDayOfWeek      StandardKind = "dayOfWeek"
	TypeMonth          StandardKind = "month"
	TypeMonthDay       StandardKind = "monthDay"
	TypePeriod         StandardKind = "period"
	TypeYear           StandardKind = "year"
	TypeYearMonth      StandardKind = "yearMonth"
	TypeZoneID         StandardKind = "zoneId"
	TypeZoneOffset     StandardKind = "zoneOffset"
	TypeDuration       StandardKind = "duration"
	TypeInstant        StandardKind = "instant"
	TypeLocalDate      StandardKind = "localDate"
	TypeLocalTime      StandardKind = "localTime"
	TypeLocalDateTime  StandardKind = "localDateTime"
	TypeOffsetTime     StandardKind = "offsetTime"
	TypeOffsetDateTime StandardKind = "offsetDateTime"
	TypeZonedDateTime  StandardKind = "zonedDateTime"
)

// StandardType describes an atomic type. Temporal kinds that encode
// textually carry the layout used on the wire in both directions.
type StandardType struct {
	Kind   StandardKind
	Layout string
}

// Default textual layouts for the temporal standard types.
const (
	LayoutInstant        = time.RFC3339Nano
	LayoutLocalDate      = "2006-01-02"
	LayoutLocalTime      = "15:04:05.999999999"
	LayoutLocalDateTime  = "2006-01-02T15:04:05.999999999"
	LayoutOffsetTime     = "15:04:05.999999999Z07:00"
	LayoutOffsetDateTime = time.RFC3339Nano
	LayoutZonedDateTime  = time.RFC3339Nano
)

// Atomic standard types without parameters.
var (
	Unit        = StandardType{Kind: TypeUnit}
	Bool        = StandardType{Kind: TypeBool}
	Byte        = StandardType{Kind: TypeByte}
	Short       = StandardType{Kind: TypeShort}
	Int         = StandardType{Kind: TypeInt}
	Long        = StandardType{Kind: TypeLong}
	Float       = StandardType{Kind: TypeFloat}
	Double      = StandardType{Kind: TypeDouble}
	Char        = StandardType{Kind: TypeChar}
	String      = StandardType{Kind: TypeString}
	Bytes       = StandardType{Kind: TypeBytes}
	BigInteger  = StandardType{Kind: TypeBigInteger}
	BigDecimal  = StandardType{Kind: TypeBigDecimal}
	DayOfWeek   = StandardType{Kind: TypeDayOfWeek}
	Month       = StandardType{Kind: TypeMonth}
	MonthDayT   = StandardType{Kind: TypeMonthDay}
	PeriodT     = StandardType{Kind: TypePeriod}
	YearT       = StandardType{Kind: TypeYear}
	YearMonthT  = StandardType{Kind: TypeYearMonth}
	ZoneID      = StandardType{Kind: TypeZoneID}
	ZoneOffsetT = StandardType{Kind: TypeZoneOffset}
	Duration    = StandardType{Kind: TypeDuration}
)

// Instant builds the instant standard type with the given layout; an
// empty layout selects LayoutInstant.
func Instant(layout string) StandardType {
	return temporal(TypeInstant, layout, LayoutInstant)
}

// LocalDate builds the local-date standard type.
func LocalDate(layout string) StandardType {
	return temporal(TypeLocalDate, layout, LayoutLocalDate)
}

// LocalTime builds the local-time standard type.
func LocalTime(layout string) StandardType {
	return temporal(TypeLocalTime, layout, LayoutLocalTime)
}

// LocalDateTime builds the local-date-time standard type.
func LocalDateTime(layout string) StandardType {
	return temporal(TypeLocalDateTime, layout, LayoutLocalDateTime)
}

// OffsetTime builds the offset-time standard type.
func OffsetTime(layout string) StandardType {
	return temporal(TypeOffsetTime, layout, LayoutOffsetTime)
}

// OffsetDateTime builds the offset-date-time standard type.
func OffsetDateTime(layout string) StandardType {
	return temporal(TypeOffsetDateTime, layout, LayoutOffsetDateTime)
}

// ZonedDateTime builds the zoned-date-time standard type.
func ZonedDateTime(layout string) StandardType {
	return temporal(TypeZonedDateTime, layout, LayoutZonedDateTime)
}

func temporal(kind StandardKind, layout, fallback string) StandardType {
	if layout == "" {
		layout = fallback
	}
	return StandardType{Kind: kind, Layout: layout}
}

// WireClass classifies a standard type by its on-wire form.
type WireClass int

const (
	ClassVarint  WireClass = iota // zero-tag varint payload
	ClassFixed32                  // four-byte little-endian payload
	ClassFixed64                  // eight-byte little-endian payload
	ClassBytes                    // length-delimited payload
)

// Class returns the on-wire form of a standard type.
func (t StandardType) Class() WireClass {
	switch t.Kind {
	case TypeBool, TypeByte, TypeShort, TypeInt, TypeLong, TypeChar:
		return ClassVarint
	case TypeFloat:
		return ClassFixed32
	case TypeDouble:
		return ClassFixed64
	default:
		return ClassBytes
	}
}

var packedEligible = map[StandardKind]struct{}{
	TypeBool:   {},
	TypeByte:   {},
	TypeShort:  {},
	TypeInt:    {},
	TypeLong:   {},
	TypeChar:   {},
	TypeFloat:  {},
	TypeDouble: {},
}

// IsPackedType checks and returns if the standard type is packed when
// it appears as the element of a repeated field.
func IsPackedType(t StandardType) bool {
	_, ok := packedEligible[t.Kind]
	return ok
}
