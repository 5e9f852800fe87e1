package wire

import (
	"fmt"
	"math"
)

// Helpers to coerce caller-supplied values onto the codec's canonical
// Go kinds. Integer fields accept any signed or unsigned Go integer
// kind; float fields accept both float widths. No reflection is used:
// only the listed concrete kinds are accepted.

func coerceToInt64(v interface{}) (int64, error) {
	switch t := v.(type) {
	case int64:
		return t, nil
	case int:
		return int64(t), nil
	case int32:
		return int64(t), nil
	case int16:
		return int64(t), nil
	case int8:
		return int64(t), nil
	case uint8:
		return int64(t), nil
	case uint16:
		return int64(t), nil
	case uint32:
		return int64(t), nil
	case uint:
		if uint64(t) > math.MaxInt64 {
			return 0, fmt.Errorf("%w: %d", ErrIntegerOverflow, t)
		}
		return int64(t), nil
	case uint64:
		if t > math.MaxInt64 {
			return 0, fmt.Errorf("%w: %d", ErrIntegerOverflow, t)
		}
		return int64(t), nil
	default:
		return 0, fmt.Errorf("expected integer-like, got %T", v)
	}
}

func coerceToBool(v interface{}) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("expected bool, got %T", v)
	}
	return b, nil
}

func coerceToFloat32(v interface{}) (float32, error) {
	switch t := v.(type) {
	case float32:
		return t, nil
	case float64:
		return float32(t), nil
	default:
		return 0, fmt.Errorf("expected float, got %T", v)
	}
}

func coerceToFloat64(v interface{}) (float64, error) {
	switch t := v.(type) {
	case float64:
		return t, nil
	case float32:
		return float64(t), nil
	default:
		return 0, fmt.Errorf("expected float, got %T", v)
	}
}

func coerceToSlice(v interface{}) ([]interface{}, error) {
	if v == nil {
		return nil, nil
	}
	items, ok := v.([]interface{})
	if !ok {
		return nil, fmt.Errorf("sequence value must be []interface{}, got %T", v)
	}
	return items, nil
}
