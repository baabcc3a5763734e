// Copyright (c) 2026 TIBCO Software Inc.

package sbdf

import (
	"fmt"
	"io"
	"time"
	"unicode/utf8"
)

// ValueTypeID is the wire tag for one of the twelve SBDF scalar types.
type ValueTypeID uint8

const (
	// ValueTypeUnknown never appears on the wire; it is an internal zero value.
	ValueTypeUnknown ValueTypeID = 0x00
	// ValueTypeBool is a one-byte boolean (0 or 1), typically BIT_ARRAY-packed.
	ValueTypeBool ValueTypeID = 0x01
	// ValueTypeInt is a signed 32-bit integer.
	ValueTypeInt ValueTypeID = 0x02
	// ValueTypeLong is a signed 64-bit integer.
	ValueTypeLong ValueTypeID = 0x03
	// ValueTypeFloat is an IEEE-754 32-bit float.
	ValueTypeFloat ValueTypeID = 0x04
	// ValueTypeDouble is an IEEE-754 64-bit float.
	ValueTypeDouble ValueTypeID = 0x05
	// ValueTypeDateTime is milliseconds since 0001-01-01T00:00:00, signed 64-bit.
	ValueTypeDateTime ValueTypeID = 0x06
	// ValueTypeDate is milliseconds since 0001-01-01, date part only, signed 64-bit.
	ValueTypeDate ValueTypeID = 0x07
	// ValueTypeTime is milliseconds since midnight, signed 64-bit.
	ValueTypeTime ValueTypeID = 0x08
	// ValueTypeTimeSpan is a signed 64-bit millisecond duration.
	ValueTypeTimeSpan ValueTypeID = 0x09
	// ValueTypeString is a length-prefixed UTF-8 string.
	ValueTypeString ValueTypeID = 0x0A
	// 0x0B is an intentional gap in the wire format; never assigned.
	// ValueTypeBinary is a length-prefixed opaque byte blob.
	ValueTypeBinary ValueTypeID = 0x0C
	// ValueTypeDecimal is a 16-byte decimal128 BID-style encoding.
	ValueTypeDecimal ValueTypeID = 0x0D

	// valueTypeInternalByte tags RLE run-length bytes; it is never a column's
	// declared value type, only an encoding detail of EncodingRunLength.
	valueTypeInternalByte ValueTypeID = 0xFE
)

// String renders the wire tag using the stable Spotfire type name where one
// is defined.
func (vt ValueTypeID) String() string {
	if name, ok := declaredTypeNames[vt]; ok {
		return name
	}
	return fmt.Sprintf("ValueType(0x%02x)", uint8(vt))
}

// declaredTypeNames maps each value type to the stable name Spotfire uses
// in its own UI and in a user-supplied type override (spec.md §4.11).
var declaredTypeNames = map[ValueTypeID]string{
	ValueTypeBool:     "Boolean",
	ValueTypeInt:      "Integer",
	ValueTypeLong:     "LongInteger",
	ValueTypeFloat:    "SingleReal",
	ValueTypeDouble:   "Real",
	ValueTypeDateTime: "DateTime",
	ValueTypeDate:     "Date",
	ValueTypeTime:     "Time",
	ValueTypeTimeSpan: "TimeSpan",
	ValueTypeString:   "String",
	ValueTypeBinary:   "Binary",
	ValueTypeDecimal:  "Currency",
}

var namesToValueType = func() map[string]ValueTypeID {
	m := make(map[string]ValueTypeID, len(declaredTypeNames))
	for id, name := range declaredTypeNames {
		m[name] = id
	}
	return m
}()

// ValueTypeByName looks up one of the twelve stable declared type names
// (e.g. for a user-supplied override), returning false if name isn't one
// of them.
func ValueTypeByName(name string) (ValueTypeID, bool) {
	vt, ok := namesToValueType[name]
	return vt, ok
}

// isFixedSize reports whether every scalar of vt occupies fixedSize(vt)
// bytes on the wire (true for everything but STRING and BINARY).
func isFixedSize(vt ValueTypeID) bool {
	switch vt {
	case ValueTypeString, ValueTypeBinary:
		return false
	default:
		return true
	}
}

// fixedSize returns the on-wire byte width of a fixed-size scalar. It is
// meaningless (and unused) for STRING/BINARY, whose width varies per value.
func fixedSize(vt ValueTypeID) (int, error) {
	switch vt {
	case ValueTypeBool:
		return 1, nil
	case ValueTypeInt:
		return 4, nil
	case ValueTypeLong:
		return 8, nil
	case ValueTypeFloat:
		return 4, nil
	case ValueTypeDouble:
		return 8, nil
	case ValueTypeDateTime, ValueTypeDate, ValueTypeTime, ValueTypeTimeSpan:
		return 8, nil
	case ValueTypeDecimal:
		return 16, nil
	default:
		return 0, unknownValueTypeError(vt)
	}
}

// missingValue returns the sentinel Go value SBDF substitutes for a cell
// whose bytes are irrelevant because IsInvalid marks it invalid, matching
// sbdf.py's _ValueType.missing_value table.
func missingValue(vt ValueTypeID) (any, error) {
	switch vt {
	case ValueTypeBool:
		return false, nil
	case ValueTypeInt:
		return int32(0), nil
	case ValueTypeLong:
		return int64(0), nil
	case ValueTypeFloat:
		return float32(0), nil
	case ValueTypeDouble:
		return float64(0), nil
	case ValueTypeDateTime, ValueTypeDate, ValueTypeTime:
		return time.Time{}, nil
	case ValueTypeTimeSpan:
		return time.Duration(0), nil
	case ValueTypeString:
		return "", nil
	case ValueTypeBinary:
		return []byte(nil), nil
	case ValueTypeDecimal:
		return Decimal{}, nil
	default:
		return nil, unknownValueTypeError(vt)
	}
}

// decodeScalar reads one scalar of type vt from r, in the format used by
// fixed-width plain arrays, RLE run values, and metadata default/current
// scalar slots.
func decodeScalar(r io.Reader, vt ValueTypeID) (any, error) {
	switch vt {
	case ValueTypeBool:
		b, err := readUint8(r)
		return b != 0, err
	case ValueTypeInt:
		v, err := readInt32(r)
		return v, err
	case ValueTypeLong:
		v, err := readInt64(r)
		return v, err
	case ValueTypeFloat:
		v, err := readFloat32(r)
		return v, err
	case ValueTypeDouble:
		v, err := readFloat64(r)
		return v, err
	case ValueTypeDateTime:
		ms, err := readInt64(r)
		if err != nil {
			return nil, err
		}
		return millisToTime(ms), nil
	case ValueTypeDate:
		ms, err := readInt64(r)
		if err != nil {
			return nil, err
		}
		return millisToTime(ms), nil
	case ValueTypeTime:
		ms, err := readInt64(r)
		if err != nil {
			return nil, err
		}
		return millisToTime(ms), nil
	case ValueTypeTimeSpan:
		ms, err := readInt64(r)
		if err != nil {
			return nil, err
		}
		return time.Duration(ms) * time.Millisecond, nil
	case ValueTypeString:
		return readString(r)
	case ValueTypeBinary:
		return readBinary(r)
	case ValueTypeDecimal:
		var buf [16]byte
		if err := readFull(r, buf[:]); err != nil {
			return nil, err
		}
		return decodeDecimal128(buf)
	default:
		return nil, unknownValueTypeError(vt)
	}
}

// encodeScalar writes one scalar of type vt to w. v must be the Go
// representation produced by decodeScalar for the same vt.
func encodeScalar(w io.Writer, vt ValueTypeID, v any) error {
	switch vt {
	case ValueTypeBool:
		b, ok := v.(bool)
		if !ok {
			return conversionError(vt, v)
		}
		if b {
			return writeUint8(w, 1)
		}
		return writeUint8(w, 0)
	case ValueTypeInt:
		n, ok := v.(int32)
		if !ok {
			return conversionError(vt, v)
		}
		return writeInt32(w, n)
	case ValueTypeLong:
		n, ok := v.(int64)
		if !ok {
			return conversionError(vt, v)
		}
		return writeInt64(w, n)
	case ValueTypeFloat:
		f, ok := v.(float32)
		if !ok {
			return conversionError(vt, v)
		}
		return writeFloat32(w, f)
	case ValueTypeDouble:
		f, ok := v.(float64)
		if !ok {
			return conversionError(vt, v)
		}
		return writeFloat64(w, f)
	case ValueTypeDateTime, ValueTypeDate, ValueTypeTime:
		t, ok := v.(time.Time)
		if !ok {
			return conversionError(vt, v)
		}
		return writeInt64(w, timeToMillis(t))
	case ValueTypeTimeSpan:
		d, ok := v.(time.Duration)
		if !ok {
			return conversionError(vt, v)
		}
		return writeInt64(w, int64(d/time.Millisecond))
	case ValueTypeString:
		s, ok := v.(string)
		if !ok {
			return conversionError(vt, v)
		}
		if !utf8.ValidString(s) {
			return ErrInvalidUTF8String
		}
		return writeString(w, s)
	case ValueTypeBinary:
		b, ok := v.([]byte)
		if !ok {
			return conversionError(vt, v)
		}
		return writeBinary(w, b)
	case ValueTypeDecimal:
		d, ok := v.(Decimal)
		if !ok {
			return conversionError(vt, v)
		}
		buf, err := encodeDecimal128(d)
		if err != nil {
			return err
		}
		_, err = w.Write(buf[:])
		return err
	default:
		return unknownValueTypeError(vt)
	}
}
