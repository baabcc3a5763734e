// Copyright (c) 2026 TIBCO Software Inc.

package sbdf

import "time"

// newValueSlice allocates an empty, concrete Go slice for vt with the given
// capacity, e.g. ValueTypeInt -> []int32. This is the one place that knows
// the Go representation for each of the twelve value types; everything
// else in this package goes through it, sliceLen, sliceGet and sliceAppend
// rather than switching on vt itself.
func newValueSlice(vt ValueTypeID, capacity int) (any, error) {
	switch vt {
	case ValueTypeBool:
		return make([]bool, 0, capacity), nil
	case ValueTypeInt:
		return make([]int32, 0, capacity), nil
	case ValueTypeLong:
		return make([]int64, 0, capacity), nil
	case ValueTypeFloat:
		return make([]float32, 0, capacity), nil
	case ValueTypeDouble:
		return make([]float64, 0, capacity), nil
	case ValueTypeDateTime, ValueTypeDate, ValueTypeTime:
		return make([]time.Time, 0, capacity), nil
	case ValueTypeTimeSpan:
		return make([]time.Duration, 0, capacity), nil
	case ValueTypeString:
		return make([]string, 0, capacity), nil
	case ValueTypeBinary:
		return make([][]byte, 0, capacity), nil
	case ValueTypeDecimal:
		return make([]Decimal, 0, capacity), nil
	default:
		return nil, unknownValueTypeError(vt)
	}
}

// sliceLen returns len(values), where values must be one of the concrete
// slice types newValueSlice produces for vt.
func sliceLen(vt ValueTypeID, values any) (int, error) {
	switch vt {
	case ValueTypeBool:
		v, ok := values.([]bool)
		if !ok {
			return 0, conversionError(vt, values)
		}
		return len(v), nil
	case ValueTypeInt:
		v, ok := values.([]int32)
		if !ok {
			return 0, conversionError(vt, values)
		}
		return len(v), nil
	case ValueTypeLong:
		v, ok := values.([]int64)
		if !ok {
			return 0, conversionError(vt, values)
		}
		return len(v), nil
	case ValueTypeFloat:
		v, ok := values.([]float32)
		if !ok {
			return 0, conversionError(vt, values)
		}
		return len(v), nil
	case ValueTypeDouble:
		v, ok := values.([]float64)
		if !ok {
			return 0, conversionError(vt, values)
		}
		return len(v), nil
	case ValueTypeDateTime, ValueTypeDate, ValueTypeTime:
		v, ok := values.([]time.Time)
		if !ok {
			return 0, conversionError(vt, values)
		}
		return len(v), nil
	case ValueTypeTimeSpan:
		v, ok := values.([]time.Duration)
		if !ok {
			return 0, conversionError(vt, values)
		}
		return len(v), nil
	case ValueTypeString:
		v, ok := values.([]string)
		if !ok {
			return 0, conversionError(vt, values)
		}
		return len(v), nil
	case ValueTypeBinary:
		v, ok := values.([][]byte)
		if !ok {
			return 0, conversionError(vt, values)
		}
		return len(v), nil
	case ValueTypeDecimal:
		v, ok := values.([]Decimal)
		if !ok {
			return 0, conversionError(vt, values)
		}
		return len(v), nil
	default:
		return 0, unknownValueTypeError(vt)
	}
}

// sliceGet returns the i'th element of values as an any, boxed the same way
// decodeScalar/encodeScalar expect.
func sliceGet(vt ValueTypeID, values any, i int) (any, error) {
	switch vt {
	case ValueTypeBool:
		v, ok := values.([]bool)
		if !ok {
			return nil, conversionError(vt, values)
		}
		return v[i], nil
	case ValueTypeInt:
		v, ok := values.([]int32)
		if !ok {
			return nil, conversionError(vt, values)
		}
		return v[i], nil
	case ValueTypeLong:
		v, ok := values.([]int64)
		if !ok {
			return nil, conversionError(vt, values)
		}
		return v[i], nil
	case ValueTypeFloat:
		v, ok := values.([]float32)
		if !ok {
			return nil, conversionError(vt, values)
		}
		return v[i], nil
	case ValueTypeDouble:
		v, ok := values.([]float64)
		if !ok {
			return nil, conversionError(vt, values)
		}
		return v[i], nil
	case ValueTypeDateTime, ValueTypeDate, ValueTypeTime:
		v, ok := values.([]time.Time)
		if !ok {
			return nil, conversionError(vt, values)
		}
		return v[i], nil
	case ValueTypeTimeSpan:
		v, ok := values.([]time.Duration)
		if !ok {
			return nil, conversionError(vt, values)
		}
		return v[i], nil
	case ValueTypeString:
		v, ok := values.([]string)
		if !ok {
			return nil, conversionError(vt, values)
		}
		return v[i], nil
	case ValueTypeBinary:
		v, ok := values.([][]byte)
		if !ok {
			return nil, conversionError(vt, values)
		}
		return v[i], nil
	case ValueTypeDecimal:
		v, ok := values.([]Decimal)
		if !ok {
			return nil, conversionError(vt, values)
		}
		return v[i], nil
	default:
		return nil, unknownValueTypeError(vt)
	}
}

// sliceSet overwrites the i'th element of values (boxed the same way
// decodeScalar returns it) with v and returns the slice. Used to
// substitute the missing-value sentinel into a cell marked invalid,
// without disturbing the rest of the slice.
func sliceSet(vt ValueTypeID, values any, i int, v any) (any, error) {
	switch vt {
	case ValueTypeBool:
		s, ok := values.([]bool)
		e, eok := v.(bool)
		if !ok || !eok {
			return nil, conversionError(vt, v)
		}
		s[i] = e
		return s, nil
	case ValueTypeInt:
		s, ok := values.([]int32)
		e, eok := v.(int32)
		if !ok || !eok {
			return nil, conversionError(vt, v)
		}
		s[i] = e
		return s, nil
	case ValueTypeLong:
		s, ok := values.([]int64)
		e, eok := v.(int64)
		if !ok || !eok {
			return nil, conversionError(vt, v)
		}
		s[i] = e
		return s, nil
	case ValueTypeFloat:
		s, ok := values.([]float32)
		e, eok := v.(float32)
		if !ok || !eok {
			return nil, conversionError(vt, v)
		}
		s[i] = e
		return s, nil
	case ValueTypeDouble:
		s, ok := values.([]float64)
		e, eok := v.(float64)
		if !ok || !eok {
			return nil, conversionError(vt, v)
		}
		s[i] = e
		return s, nil
	case ValueTypeDateTime, ValueTypeDate, ValueTypeTime:
		s, ok := values.([]time.Time)
		e, eok := v.(time.Time)
		if !ok || !eok {
			return nil, conversionError(vt, v)
		}
		s[i] = e
		return s, nil
	case ValueTypeTimeSpan:
		s, ok := values.([]time.Duration)
		e, eok := v.(time.Duration)
		if !ok || !eok {
			return nil, conversionError(vt, v)
		}
		s[i] = e
		return s, nil
	case ValueTypeString:
		s, ok := values.([]string)
		e, eok := v.(string)
		if !ok || !eok {
			return nil, conversionError(vt, v)
		}
		s[i] = e
		return s, nil
	case ValueTypeBinary:
		s, ok := values.([][]byte)
		e, eok := v.([]byte)
		if !ok || !eok {
			return nil, conversionError(vt, v)
		}
		s[i] = e
		return s, nil
	case ValueTypeDecimal:
		s, ok := values.([]Decimal)
		e, eok := v.(Decimal)
		if !ok || !eok {
			return nil, conversionError(vt, v)
		}
		s[i] = e
		return s, nil
	default:
		return nil, unknownValueTypeError(vt)
	}
}

// concatValueSlice appends every element of src onto dst, both concrete
// slices for vt. Used by the table reader to fold each table slice's
// per-column values into the column's running, whole-table slice.
func concatValueSlice(vt ValueTypeID, dst, src any) (any, error) {
	n, err := sliceLen(vt, src)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		v, err := sliceGet(vt, src, i)
		if err != nil {
			return nil, err
		}
		dst, err = sliceAppend(vt, dst, v)
		if err != nil {
			return nil, err
		}
	}
	return dst, nil
}

// sliceAppend appends v (boxed the same way decodeScalar returns it) to
// values and returns the (possibly reallocated) slice.
func sliceAppend(vt ValueTypeID, values any, v any) (any, error) {
	switch vt {
	case ValueTypeBool:
		s, ok := values.([]bool)
		e, eok := v.(bool)
		if !ok || !eok {
			return nil, conversionError(vt, v)
		}
		return append(s, e), nil
	case ValueTypeInt:
		s, ok := values.([]int32)
		e, eok := v.(int32)
		if !ok || !eok {
			return nil, conversionError(vt, v)
		}
		return append(s, e), nil
	case ValueTypeLong:
		s, ok := values.([]int64)
		e, eok := v.(int64)
		if !ok || !eok {
			return nil, conversionError(vt, v)
		}
		return append(s, e), nil
	case ValueTypeFloat:
		s, ok := values.([]float32)
		e, eok := v.(float32)
		if !ok || !eok {
			return nil, conversionError(vt, v)
		}
		return append(s, e), nil
	case ValueTypeDouble:
		s, ok := values.([]float64)
		e, eok := v.(float64)
		if !ok || !eok {
			return nil, conversionError(vt, v)
		}
		return append(s, e), nil
	case ValueTypeDateTime, ValueTypeDate, ValueTypeTime:
		s, ok := values.([]time.Time)
		e, eok := v.(time.Time)
		if !ok || !eok {
			return nil, conversionError(vt, v)
		}
		return append(s, e), nil
	case ValueTypeTimeSpan:
		s, ok := values.([]time.Duration)
		e, eok := v.(time.Duration)
		if !ok || !eok {
			return nil, conversionError(vt, v)
		}
		return append(s, e), nil
	case ValueTypeString:
		s, ok := values.([]string)
		e, eok := v.(string)
		if !ok || !eok {
			return nil, conversionError(vt, v)
		}
		return append(s, e), nil
	case ValueTypeBinary:
		s, ok := values.([][]byte)
		e, eok := v.([]byte)
		if !ok || !eok {
			return nil, conversionError(vt, v)
		}
		return append(s, e), nil
	case ValueTypeDecimal:
		s, ok := values.([]Decimal)
		e, eok := v.(Decimal)
		if !ok || !eok {
			return nil, conversionError(vt, v)
		}
		return append(s, e), nil
	default:
		return nil, unknownValueTypeError(vt)
	}
}
