package schema

import (
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/shopspring/decimal"
)

// ErrNoDefault is returned for enumeration schemas, which select no
// case by default. A Fail schema has no default either; Default reports
// it with the schema's own message instead.
var ErrNoDefault = errors.New("schema has no default value")

// Default resolves the type default of a schema: the value an absent
// field assumes after decoding. It is a pure function of the schema.
func Default(s *Schema) (interface{}, error) {
	switch s.Kind {
	case KindPrimitive:
		return standardDefault(s.Standard), nil
	case KindSequence:
		return []interface{}{}, nil
	case KindRecord:
		out := make(map[string]interface{}, len(s.Fields))
		for _, f := range s.Fields {
			v, err := Default(f.Schema)
			if err != nil {
				return nil, err
			}
			out[f.Name] = v
		}
		return out, nil
	case KindTuple:
		first, err := Default(s.First)
		if err != nil {
			return nil, err
		}
		second, err := Default(s.Second)
		if err != nil {
			return nil, err
		}
		return Pair{First: first, Second: second}, nil
	case KindOptional:
		return nil, nil
	case KindTransform:
		inner, err := Default(s.Inner)
		if err != nil {
			return nil, err
		}
		return s.Forward(inner)
	case KindEnum:
		return nil, ErrNoDefault
	case KindFail:
		return nil, errors.New(s.Message)
	default:
		return nil, fmt.Errorf("unknown schema kind: %s", s.Kind)
	}
}

func standardDefault(t StandardType) interface{} {
	switch t.Kind {
	case TypeUnit:
		return nil
	case TypeBool:
		return false
	case TypeByte:
		return uint8(0)
	case TypeShort:
		return int16(0)
	case TypeInt:
		return int32(0)
	case TypeLong:
		return int64(0)
	case TypeFloat:
		return float32(0)
	case TypeDouble:
		return float64(0)
	case TypeChar:
		return rune(0)
	case TypeString:
		return ""
	case TypeBytes:
		return []byte{}
	case TypeBigInteger:
		return big.NewInt(0)
	case TypeBigDecimal:
		return decimal.Zero
	case TypeDayOfWeek:
		return time.Monday
	case TypeMonth:
		return time.January
	case TypeMonthDay:
		return MonthDay{Month: time.January, Day: 1}
	case TypePeriod:
		return Period{}
	case TypeYear:
		return Year(0)
	case TypeYearMonth:
		return YearMonth{Month: time.January}
	case TypeZoneID:
		return time.UTC
	case TypeZoneOffset:
		return ZoneOffset(0)
	case TypeDuration:
		return time.Duration(0)
	default:
		// the remaining kinds are the textual temporal types
		return time.Time{}
	}
}
