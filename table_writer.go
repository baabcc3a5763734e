// Copyright (c) 2026 TIBCO Software Inc.

package sbdf

import (
	"bufio"
	"io"
)

// DefaultWriteBufferSize sizes the buffered writer TableWriter wraps its
// destination in.
const DefaultWriteBufferSize = 64 * 1024

// TableWriter streams an in-memory Table out as a sequence of table
// slices of at most defaultSliceRowCount rows each, rather than one
// unbounded slice — matching spec.md §4.10's requirement that a writer
// never buffer an entire large table into one TableSlice section.
type TableWriter struct {
	dst   *bufio.Writer
	table *Table
}

// NewTableWriter writes the file header and table metadata immediately and
// returns a TableWriter ready to accept row ranges via WriteRows.
func NewTableWriter(w io.Writer, table *Table) (*TableWriter, error) {
	buf := bufio.NewWriterSize(w, DefaultWriteBufferSize)
	if err := writeFileHeader(buf); err != nil {
		return nil, err
	}
	if err := writeTableMetadataSection(buf, table); err != nil {
		return nil, err
	}
	return &TableWriter{dst: buf, table: table}, nil
}

// WriteRows writes one TableSlice section covering rows [lo, hi) of every
// column in the table.
func (tw *TableWriter) WriteRows(lo, hi int) error {
	if err := writeSectionHeader(tw.dst, SectionTableSlice); err != nil {
		return err
	}
	if err := writeInt32(tw.dst, int32(len(tw.table.Columns))); err != nil {
		return err
	}
	for _, col := range tw.table.Columns {
		if err := writeColumnSlice(tw.dst, col, lo, hi); err != nil {
			return err
		}
	}
	return nil
}

// WriteAll chunks the table's full row range into slices of at most
// defaultSliceRowCount rows, writing each with WriteRows, then closes with
// Close. It's the non-streaming convenience entry point.
func (tw *TableWriter) WriteAll() error {
	total := tw.table.RowCount()
	for lo := 0; lo < total; lo += defaultSliceRowCount {
		hi := lo + defaultSliceRowCount
		if hi > total {
			hi = total
		}
		if err := tw.WriteRows(lo, hi); err != nil {
			return err
		}
	}
	return tw.Close()
}

// Close writes the terminal TABLEEND section and flushes the underlying
// buffered writer.
func (tw *TableWriter) Close() error {
	if err := writeTableEnd(tw.dst); err != nil {
		return err
	}
	return tw.dst.Flush()
}

// WriteTable is a one-call convenience wrapping NewTableWriter + WriteAll
// for callers that already hold the whole table in memory and don't need
// fine-grained control over slice boundaries.
func WriteTable(w io.Writer, table *Table) error {
	tw, err := NewTableWriter(w, table)
	if err != nil {
		return err
	}
	return tw.WriteAll()
}

// writeColumnSlice writes one ColumnSlice section covering rows [lo, hi) of
// col: its value array, then (only when at least one cell in [lo, hi) is
// invalid) an IsInvalid property array. Per spec.md §4.10, any cell this slice marks
// invalid is replaced with the column type's missing-value sentinel before
// it reaches the value array, regardless of what col.Values already holds
// there. Values/Valid are exported, so a caller can populate them directly
// instead of going through Append; this keeps the sentinel substitution an
// invariant of the writer itself.
func writeColumnSlice(w io.Writer, col *Column, lo, hi int) error {
	if err := writeSectionHeader(w, SectionColumnSlice); err != nil {
		return err
	}

	values, err := sliceRange(col.Type, col.Values, lo, hi)
	if err != nil {
		return err
	}

	anyInvalid := false
	var invalid []bool
	if col.Valid != nil {
		invalid = make([]bool, hi-lo)
		mv, err := missingValue(col.Type)
		if err != nil {
			return err
		}
		for i := lo; i < hi; i++ {
			if col.Valid[i] {
				continue
			}
			invalid[i-lo] = true
			anyInvalid = true
			if values, err = sliceSet(col.Type, values, i-lo, mv); err != nil {
				return err
			}
		}
	}

	if col.Type == ValueTypeBool {
		bits, ok := values.([]bool)
		if !ok {
			return conversionError(col.Type, values)
		}
		if err := writeValueArrayBit(w, bits); err != nil {
			return err
		}
	} else if err := writeValueArrayPlain(w, col.Type, values); err != nil {
		return err
	}

	if !anyInvalid {
		return writeInt32(w, 0) // n_props
	}
	if err := writeInt32(w, 1); err != nil {
		return err
	}
	if err := writeString(w, columnPropertyIsInvalid); err != nil {
		return err
	}
	return writeValueArrayBit(w, invalid)
}

// sliceRange returns the [lo, hi) sub-range of values (a concrete slice
// produced by newValueSlice for vt) as a fresh slice of the same concrete
// type.
func sliceRange(vt ValueTypeID, values any, lo, hi int) (any, error) {
	out, err := newValueSlice(vt, hi-lo)
	if err != nil {
		return nil, err
	}
	for i := lo; i < hi; i++ {
		elem, err := sliceGet(vt, values, i)
		if err != nil {
			return nil, err
		}
		out, err = sliceAppend(vt, out, elem)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}
