// Copyright (c) 2026 TIBCO Software Inc.

package sbdf

import (
	"bufio"
	"fmt"
	"io"
)

// DefaultReadBufferSize sizes the buffered reader TableReader wraps its
// source in.
const DefaultReadBufferSize = 64 * 1024

// TableReader scans an SBDF stream slice by slice, the way dbn.DbnScanner
// scans a raw DBN stream record by record: construction reads only the
// file header and table metadata; each call to Next() pulls and folds in
// one more table slice, leaving the caller free to process a Table that
// grows incrementally instead of buffering the whole file up front.
type TableReader struct {
	src       io.Reader
	buf       *bufio.Reader
	table     *Table
	lastErr   error
	sawEnd    bool
	numSlices int
}

// NewTableReader reads the file header and table metadata immediately,
// matching spec.md §4.9's "unambiguous, streamable framing" requirement
// that the schema always precede any data.
func NewTableReader(r io.Reader) (*TableReader, error) {
	s := &TableReader{
		src: r,
		buf: bufio.NewReaderSize(r, DefaultReadBufferSize),
	}
	if _, _, err := readFileHeader(s.buf); err != nil {
		s.lastErr = err
		return nil, err
	}
	table, err := readTableMetadataSection(s.buf)
	if err != nil {
		s.lastErr = err
		return nil, err
	}
	s.table = table
	return s, nil
}

// Table returns the reader's accumulated Table: its schema is complete as
// soon as NewTableReader returns, but its row data only grows as Next is
// called.
func (s *TableReader) Table() *Table { return s.table }

// Error returns the last error encountered by Next, or nil.
func (s *TableReader) Error() error { return s.lastErr }

// Done reports whether TABLEEND has been reached.
func (s *TableReader) Done() bool { return s.sawEnd }

// Next reads one TABLESLICE (or the terminal TABLEEND) from the stream. It
// returns true if a slice was read and folded into Table(), false at
// TABLEEND or on error — callers should then check Error(), which is nil
// after a clean TABLEEND.
func (s *TableReader) Next() bool {
	if s.sawEnd || s.lastErr != nil {
		return false
	}

	id, err := readSectionHeader(s.buf)
	if err != nil {
		s.lastErr = err
		return false
	}

	switch id {
	case SectionTableEnd:
		s.sawEnd = true
		return false

	case SectionTableSlice:
		if err := s.readTableSlice(); err != nil {
			s.lastErr = err
			return false
		}
		s.numSlices++
		return true

	default:
		s.lastErr = unexpectedSectionError(id, SectionTableSlice)
		return false
	}
}

// ReadAll drains every remaining slice and returns the fully-populated
// Table, the common entry point when streaming isn't needed.
func ReadAll(r io.Reader) (*Table, error) {
	reader, err := NewTableReader(r)
	if err != nil {
		return nil, err
	}
	for reader.Next() {
	}
	if err := reader.Error(); err != nil {
		return nil, err
	}
	return reader.Table(), nil
}

// readTableSlice reads a TableSlice's column count and that many
// ColumnSlice blocks, folding each into the matching Table column.
func (s *TableReader) readTableSlice() error {
	nCols, err := readInt32(s.buf)
	if err != nil {
		return err
	}
	if int(nCols) != len(s.table.Columns) {
		return ErrFieldCountMismatch
	}
	for i := 0; i < int(nCols); i++ {
		if err := s.readColumnSlice(s.table.Columns[i]); err != nil {
			return err
		}
	}
	return nil
}

// readColumnSlice reads one ColumnSlice section and appends its values (and,
// if present, its IsInvalid mask) onto col's running slices.
func (s *TableReader) readColumnSlice(col *Column) error {
	if err := expectSection(s.buf, SectionColumnSlice); err != nil {
		return err
	}
	values, err := readValueArray(s.buf)
	if err != nil {
		return err
	}
	if values.Type != col.Type {
		return unexpectedValueTypeError(values.Type, col.Type)
	}

	nProps, err := readInt32(s.buf)
	if err != nil {
		return err
	}
	if nProps < 0 {
		return fmt.Errorf("%w: negative property count %d", ErrStructure, nProps)
	}

	var invalid *valueArray
	for i := int32(0); i < nProps; i++ {
		name, err := readString(s.buf)
		if err != nil {
			return err
		}
		prop, err := readValueArray(s.buf)
		if err != nil {
			return err
		}
		if name == columnPropertyIsInvalid {
			invalid = prop
		}
		// ErrorCode and HasReplacedValue are decoded (to stay in frame) but
		// not otherwise interpreted by this reader.
	}

	n, err := sliceLen(values.Type, values.Values)
	if err != nil {
		return err
	}

	if invalid != nil {
		if values.Encoding == EncodingRunLength {
			return unsupportedRunLengthInvalidError()
		}
		bits, ok := invalid.Values.([]bool)
		if !ok {
			return unexpectedValueTypeError(invalid.Type, ValueTypeBool)
		}
		if len(bits) != n {
			return ErrStructure
		}
		if col.Valid == nil {
			col.Valid = make([]bool, 0, col.Len()+n)
			for i := 0; i < col.Len(); i++ {
				col.Valid = append(col.Valid, true)
			}
		}
		for _, invalidBit := range bits {
			col.Valid = append(col.Valid, !invalidBit)
		}
	} else if col.Valid != nil {
		for i := 0; i < n; i++ {
			col.Valid = append(col.Valid, true)
		}
	}

	if col.Values == nil {
		col.Values = values.Values
		return nil
	}
	merged, err := concatValueSlice(col.Type, col.Values, values.Values)
	if err != nil {
		return err
	}
	col.Values = merged
	return nil
}
