// Copyright (c) 2026 TIBCO Software Inc.

package sbdf

import (
	"fmt"
	"io"
)

// writePlainArray writes values (a concrete slice produced by
// newValueSlice for vt) in the PlainArray(T) wire format: a u32 count,
// then either `count` fixed-size elements back to back, or — for the two
// array-typed value types STRING and BINARY — a u32 total-byte-size
// followed by `count` (7-bit-packed length, bytes) pairs.
func writePlainArray(w io.Writer, vt ValueTypeID, values any) error {
	n, err := sliceLen(vt, values)
	if err != nil {
		return err
	}
	if err := writeInt32(w, int32(n)); err != nil {
		return err
	}

	if !isFixedSize(vt) {
		total := 0
		for i := 0; i < n; i++ {
			elem, err := sliceGet(vt, values, i)
			if err != nil {
				return err
			}
			total += packed7Len(uint32(elemByteLen(vt, elem))) + elemByteLen(vt, elem)
		}
		if err := writeInt32(w, int32(total)); err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			elem, err := sliceGet(vt, values, i)
			if err != nil {
				return err
			}
			b := elemBytes(vt, elem)
			if err := writePacked7(w, uint32(len(b))); err != nil {
				return err
			}
			if _, err := w.Write(b); err != nil {
				return err
			}
		}
		return nil
	}

	for i := 0; i < n; i++ {
		elem, err := sliceGet(vt, values, i)
		if err != nil {
			return err
		}
		if err := encodeScalar(w, vt, elem); err != nil {
			return err
		}
	}
	return nil
}

// readPlainArray reads the PlainArray(T) wire format produced by
// writePlainArray, returning a concrete slice of the shape newValueSlice
// produces for vt.
func readPlainArray(r io.Reader, vt ValueTypeID) (any, error) {
	count, err := readInt32(r)
	if err != nil {
		return nil, err
	}
	if count < 0 {
		return nil, fmt.Errorf("%w: negative element count %d", ErrStructure, count)
	}

	values, err := newValueSlice(vt, int(count))
	if err != nil {
		return nil, err
	}

	if !isFixedSize(vt) {
		if _, err := readInt32(r); err != nil { // total byte size, unused beyond framing
			return nil, err
		}
		for i := int32(0); i < count; i++ {
			elemLen, err := readPacked7(r)
			if err != nil {
				return nil, err
			}
			buf := make([]byte, elemLen)
			if err := readFull(r, buf); err != nil {
				return nil, err
			}
			var elem any
			if vt == ValueTypeString {
				elem = string(buf)
			} else {
				elem = buf
			}
			values, err = sliceAppend(vt, values, elem)
			if err != nil {
				return nil, err
			}
		}
		return values, nil
	}

	for i := int32(0); i < count; i++ {
		elem, err := decodeScalar(r, vt)
		if err != nil {
			return nil, err
		}
		values, err = sliceAppend(vt, values, elem)
		if err != nil {
			return nil, err
		}
	}
	return values, nil
}

// elemByteLen and elemBytes report the STRING/BINARY wire-representation
// length/bytes of a single boxed element, without doing a full round of
// double-encoding — the bytes written here are exactly the payload a
// Scalar(T) write emits after its own length prefix.
func elemByteLen(vt ValueTypeID, elem any) int {
	return len(elemBytes(vt, elem))
}

func elemBytes(vt ValueTypeID, elem any) []byte {
	switch vt {
	case ValueTypeString:
		return []byte(elem.(string))
	case ValueTypeBinary:
		return elem.([]byte)
	default:
		return nil
	}
}
