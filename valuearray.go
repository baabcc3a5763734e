// Copyright (c) 2026 TIBCO Software Inc.

package sbdf

import (
	"fmt"
	"io"
)

// valueArray is the decoded form of a ValueArray wire block: a value type,
// the encoding it was stored under, and — for PLAIN/RUN_LENGTH/BIT — the
// logical (already expanded, row-aligned) values.
type valueArray struct {
	Type     ValueTypeID
	Encoding ValueArrayEncoding
	Values   any // concrete slice per newValueSlice(Type, ...); []bool for EncodingBit
}

// writeValueArrayPlain writes a PLAIN_ARRAY-encoded value array.
func writeValueArrayPlain(w io.Writer, vt ValueTypeID, values any) error {
	if err := writeUint8(w, byte(EncodingPlain)); err != nil {
		return err
	}
	if err := writeUint8(w, byte(vt)); err != nil {
		return err
	}
	return writePlainArray(w, vt, values)
}

// writeValueArrayBit writes a BIT_ARRAY-encoded value array; vt is always
// ValueTypeBool on the wire (spec.md §4.6).
func writeValueArrayBit(w io.Writer, bits []bool) error {
	if err := writeUint8(w, byte(EncodingBit)); err != nil {
		return err
	}
	if err := writeUint8(w, byte(ValueTypeBool)); err != nil {
		return err
	}
	return writeBitArray(w, bits)
}

// readValueArray reads one ValueArray wire block (encoding + vtype header,
// then the encoding-specific payload). RUN_LENGTH is fully parsed and its
// runs are expanded into a flat, row-aligned slice — this module never
// *produces* RUN_LENGTH, but decoding it fully (rather than only skipping
// it) costs nothing extra once the header and both plain sub-arrays have
// been read, and it lets a table reader treat every encoding uniformly.
func readValueArray(r io.Reader) (*valueArray, error) {
	encByte, err := readUint8(r)
	if err != nil {
		return nil, err
	}
	vtByte, err := readUint8(r)
	if err != nil {
		return nil, err
	}
	encoding := ValueArrayEncoding(encByte)
	vt := ValueTypeID(vtByte)

	switch encoding {
	case EncodingPlain:
		values, err := readPlainArray(r, vt)
		if err != nil {
			return nil, err
		}
		return &valueArray{Type: vt, Encoding: encoding, Values: values}, nil

	case EncodingBit:
		bits, err := readBitArray(r)
		if err != nil {
			return nil, err
		}
		return &valueArray{Type: vt, Encoding: encoding, Values: bits}, nil

	case EncodingRunLength:
		runCount, err := readInt32(r)
		if err != nil {
			return nil, err
		}
		if runCount < 0 {
			return nil, fmt.Errorf("%w: negative run count %d", ErrStructure, runCount)
		}
		lengths, err := readInternalByteArray(r)
		if err != nil {
			return nil, err
		}
		if len(lengths) != int(runCount) {
			return nil, fmt.Errorf("%w: run-length array length %d does not match run count %d", ErrStructure, len(lengths), runCount)
		}
		runValues, err := readPlainArray(r, vt)
		if err != nil {
			return nil, err
		}
		nRuns, err := sliceLen(vt, runValues)
		if err != nil {
			return nil, err
		}
		if nRuns != int(runCount) {
			return nil, fmt.Errorf("%w: run-value array length %d does not match run count %d", ErrStructure, nRuns, runCount)
		}
		total := 0
		for _, l := range lengths {
			total += int(l)
		}
		values, err := newValueSlice(vt, total)
		if err != nil {
			return nil, err
		}
		for i := 0; i < int(runCount); i++ {
			elem, err := sliceGet(vt, runValues, i)
			if err != nil {
				return nil, err
			}
			for j := 0; j < int(lengths[i]); j++ {
				values, err = sliceAppend(vt, values, elem)
				if err != nil {
					return nil, err
				}
			}
		}
		return &valueArray{Type: vt, Encoding: encoding, Values: values}, nil

	default:
		return nil, unknownArrayEncodingError(encoding)
	}
}

// readInternalByteArray reads a PlainArray(INTERNAL_BYTE): a u32 count
// followed by that many raw bytes, one per run length. INTERNAL_BYTE is
// not one of the twelve declared value types, so it is handled directly
// here rather than through newValueSlice/sliceAppend.
func readInternalByteArray(r io.Reader) ([]byte, error) {
	count, err := readInt32(r)
	if err != nil {
		return nil, err
	}
	if count < 0 {
		return nil, fmt.Errorf("%w: negative run-length array count %d", ErrStructure, count)
	}
	buf := make([]byte, count)
	if err := readFull(r, buf); err != nil {
		return nil, err
	}
	return buf, nil
}
