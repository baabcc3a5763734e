// Copyright (c) 2026 TIBCO Software Inc.

package sbdf

import (
	"math"
	"time"
)

// InferValueType maps a single Go scalar to its SBDF value type. Integers
// narrower than int64 (int, int8, int16, int32) are treated as Integer;
// int64 and plain Go int values outside the int32 range are treated as
// LongInteger, mirroring the INT->LONG promotion spec.md §4.11 requires
// for a column whose values don't uniformly fit in 32 bits.
func InferValueType(v any) (ValueTypeID, error) {
	switch x := v.(type) {
	case bool:
		return ValueTypeBool, nil
	case int32:
		return ValueTypeInt, nil
	case int:
		if x < math.MinInt32 || x > math.MaxInt32 {
			return ValueTypeLong, nil
		}
		return ValueTypeInt, nil
	case int8, int16:
		return ValueTypeInt, nil
	case int64:
		return ValueTypeLong, nil
	case float32:
		return ValueTypeFloat, nil
	case float64:
		return ValueTypeDouble, nil
	case time.Time:
		return ValueTypeDateTime, nil
	case time.Duration:
		return ValueTypeTimeSpan, nil
	case string:
		return ValueTypeString, nil
	case []byte:
		return ValueTypeBinary, nil
	case Decimal:
		return ValueTypeDecimal, nil
	default:
		return ValueTypeUnknown, inferenceError("unsupported Go type for value inference")
	}
}

// InferSliceValueType infers one common value type for a slice of boxed
// scalars, promoting Integer to LongInteger the moment any element doesn't
// fit in 32 bits (spec.md §4.11's "a column of integers that overflows
// int32 anywhere is written as LongInteger throughout"). Missing cells (a
// nil entry) are dropped before inference, per spec.md §4.11's "from scalar
// values" route; if nothing remains, inference fails with "all values are
// missing" rather than trying to type a nil.
func InferSliceValueType(values []any) (ValueTypeID, error) {
	var vt ValueTypeID
	have := false
	for _, v := range values {
		if v == nil {
			continue
		}
		t, err := InferValueType(v)
		if err != nil {
			return ValueTypeUnknown, err
		}
		if !have {
			vt = t
			have = true
			continue
		}
		if t == vt {
			continue
		}
		if (vt == ValueTypeInt && t == ValueTypeLong) || (vt == ValueTypeLong && t == ValueTypeInt) {
			vt = ValueTypeLong
			continue
		}
		return ValueTypeUnknown, inferenceError("mixed value types in the same column")
	}
	if !have {
		return ValueTypeUnknown, inferenceError("all values are missing")
	}
	return vt, nil
}

// ResolveValueType picks a column's value type with the priority order
// spec.md §4.11 lays out: an explicit user override (one of the twelve
// stable declared type names) wins outright; failing that, a container's
// reported dtype name (also one of those twelve names, e.g. from a
// dataframe-like source); failing that, inference from a sample of the
// column's own values.
func ResolveValueType(override, dtypeName string, sample []any) (ValueTypeID, error) {
	if override != "" {
		if vt, ok := ValueTypeByName(override); ok {
			return vt, nil
		}
		return ValueTypeUnknown, inferenceError("unknown value type override " + override)
	}
	if dtypeName != "" {
		if vt, ok := ValueTypeByName(dtypeName); ok {
			return vt, nil
		}
	}
	return InferSliceValueType(sample)
}
