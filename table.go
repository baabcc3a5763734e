// Copyright (c) 2026 TIBCO Software Inc.

package sbdf

// Column is one column of a Table: a declared value type, a concrete,
// homogeneously-typed Go slice of values (see newValueSlice for the
// mapping from ValueTypeID to its Go representation), a parallel validity
// mask, and the column's metadata map (which always carries at least Name
// and DataType once sealed — see tablemetadata.go).
//
// Values is a tagged union at the column granularity, not per cell: this
// follows spec.md §9's design note to model dynamic cell typing as "a
// closed tagged sum over the twelve value types, plus a per-column
// validity bit-vector" rather than boxing every cell individually.
type Column struct {
	Name     string
	Type     ValueTypeID
	Metadata *Metadata
	Values   any
	// Valid holds one entry per value; Valid[i] == false means the cell at
	// i is missing and Values[i] carries no meaningful value: Append stores
	// the type's missing-value sentinel there, while a column read from a
	// file keeps whatever the file held. A nil Valid means every cell is
	// valid.
	Valid []bool
}

// Len returns the column's row count.
func (c *Column) Len() int {
	n, err := sliceLen(c.Type, c.Values)
	if err != nil {
		return 0
	}
	return n
}

// IsValid reports whether row i is valid; with a nil Valid slice every row
// is valid.
func (c *Column) IsValid(i int) bool {
	if c.Valid == nil {
		return true
	}
	return c.Valid[i]
}

// At returns the boxed value at row i, regardless of validity (callers
// that care about missingness should also check IsValid).
func (c *Column) At(i int) (any, error) {
	return sliceGet(c.Type, c.Values, i)
}

// Values typed as T, e.g. Values[int32](col) for an Integer column. Returns
// ok=false if col's underlying representation isn't []T.
func Values[T any](c *Column) ([]T, bool) {
	v, ok := c.Values.([]T)
	return v, ok
}

// Table is the in-memory form of a fully-read (or not-yet-written) SBDF
// table: table-level metadata plus an ordered list of columns, all with
// equal row counts.
type Table struct {
	Metadata *Metadata
	Columns  []*Column
}

// NewTable returns an empty table with its own table-level metadata map.
func NewTable() *Table {
	return &Table{Metadata: NewMetadata()}
}

// RowCount returns the shared row count of the table's columns, or 0 if it
// has none.
func (t *Table) RowCount() int {
	if len(t.Columns) == 0 {
		return 0
	}
	return t.Columns[0].Len()
}

// ColumnByName returns the first column named name. Mirrors the name-keyed
// column view sbdf.py's _TableMetadata exposes alongside its ordered list
// (SPEC_FULL.md §3).
func (t *Table) ColumnByName(name string) (*Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// AddColumn appends a new, empty column of type vt named name, seeding its
// metadata with the mandatory Name/DataType entries plus any additional
// entries carried in extra (may be nil). extra's own Name/DataType entries,
// if any, are ignored in favor of name/vt.
func (t *Table) AddColumn(name string, vt ValueTypeID, extra *Metadata) (*Column, error) {
	meta, err := newColumnMetadata(name, vt, extra)
	if err != nil {
		return nil, err
	}
	values, err := newValueSlice(vt, 0)
	if err != nil {
		return nil, err
	}
	col := &Column{Name: name, Type: vt, Metadata: meta, Values: values}
	t.Columns = append(t.Columns, col)
	return col, nil
}

// Append adds one row's worth of values, one per column in column order,
// to the table. valid marks each value's validity; pass nil to mark every
// value in this call valid.
func (t *Table) Append(values []any, valid []bool) error {
	if len(values) != len(t.Columns) {
		return ErrFieldCountMismatch
	}
	for i, col := range t.Columns {
		v := values[i]
		isValid := valid == nil || valid[i]
		if !isValid {
			mv, err := missingValue(col.Type)
			if err != nil {
				return err
			}
			v = mv
		}
		next, err := sliceAppend(col.Type, col.Values, v)
		if err != nil {
			return err
		}
		col.Values = next
		if col.Valid != nil || !isValid {
			if col.Valid == nil {
				col.Valid = make([]bool, col.Len()-1)
				for j := range col.Valid {
					col.Valid[j] = true
				}
			}
			col.Valid = append(col.Valid, isValid)
		}
	}
	return nil
}
