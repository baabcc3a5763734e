// Copyright (c) 2026 TIBCO Software Inc.

package sbdf

import (
	"fmt"
	"io"
)

// fieldDescriptor is one folded column-metadata key shared across some or
// all of a table's columns (spec.md §4.8's FieldDesc).
type fieldDescriptor struct {
	Name       string
	Type       ValueTypeID
	Default    any
	HasDefault bool
}

// foldColumnFields walks each column's metadata in order, emitting one
// fieldDescriptor the first time a key name is seen and verifying that
// every later column sharing that key agrees on its value type and
// default — a mismatch is a hard write error ("the metadata is
// incorrect"), per spec.md §4.8 and the scenario in §8.6.
func foldColumnFields(columns []*Column) ([]fieldDescriptor, error) {
	var fields []fieldDescriptor
	seen := make(map[string]int) // name -> index into fields

	for _, col := range columns {
		for _, name := range col.Metadata.Names() {
			vt, _ := col.Metadata.Type(name)
			def, hasDefault := col.Metadata.Default(name)
			if idx, ok := seen[name]; ok {
				f := &fields[idx]
				if f.Type != vt {
					return nil, fmt.Errorf("%w: column %q field %q type disagrees with an earlier column", ErrMetadataInconsistent, col.Name, name)
				}
				if f.HasDefault != hasDefault || (hasDefault && !defaultsEqual(f.Type, f.Default, def)) {
					return nil, fmt.Errorf("%w: column %q field %q default disagrees with an earlier column", ErrMetadataInconsistent, col.Name, name)
				}
				continue
			}
			seen[name] = len(fields)
			fields = append(fields, fieldDescriptor{Name: name, Type: vt, Default: def, HasDefault: hasDefault})
		}
	}
	return fields, nil
}

// defaultsEqual compares two defaults of the same declared value type for
// the consistency check in foldColumnFields. Byte slices compare by
// content; everything else compares with ==, which is valid for every
// value type's Go representation except Decimal and BINARY's []byte — both
// handled specially below.
func defaultsEqual(vt ValueTypeID, a, b any) bool {
	switch vt {
	case ValueTypeBinary:
		ab, aok := a.([]byte)
		bb, bok := b.([]byte)
		if !aok || !bok || len(ab) != len(bb) {
			return false
		}
		for i := range ab {
			if ab[i] != bb[i] {
				return false
			}
		}
		return true
	case ValueTypeDecimal:
		ad, aok := a.(Decimal)
		bd, bok := b.(Decimal)
		if !aok || !bok {
			return false
		}
		return ad.String() == bd.String()
	default:
		return a == b
	}
}

// writeTableMetadataSection writes the SectionTableMetadata section: the
// table-level metadata block, then the folded field descriptors, then each
// column's grid of per-field values, per spec.md §6's TableMetadata
// grammar. It seals table.Metadata and every column's metadata afterward.
func writeTableMetadataSection(w io.Writer, table *Table) error {
	if err := writeSectionHeader(w, SectionTableMetadata); err != nil {
		return err
	}
	if err := writeMetadataBlock(w, table.Metadata); err != nil {
		return err
	}
	table.Metadata.Seal()

	if err := writeInt32(w, int32(len(table.Columns))); err != nil {
		return err
	}
	fields, err := foldColumnFields(table.Columns)
	if err != nil {
		return err
	}
	if err := writeInt32(w, int32(len(fields))); err != nil {
		return err
	}
	for _, f := range fields {
		if err := writeString(w, f.Name); err != nil {
			return err
		}
		if err := writeUint8(w, byte(f.Type)); err != nil {
			return err
		}
		if err := writeOptScalar(w, f.Type, f.Default, f.HasDefault); err != nil {
			return err
		}
	}
	for _, col := range table.Columns {
		for _, f := range fields {
			val, hasVal := col.Metadata.Get(f.Name)
			if err := writeOptScalar(w, f.Type, val, hasVal); err != nil {
				return err
			}
		}
		col.Metadata.Seal()
	}
	return nil
}

// readTableMetadataSection reads a SectionTableMetadata section, returning
// a Table whose Columns carry Name, Type and sealed Metadata but no row
// values yet — those are filled in by table_reader.go as table/column
// slices are read.
func readTableMetadataSection(r io.Reader) (*Table, error) {
	if err := expectSection(r, SectionTableMetadata); err != nil {
		return nil, err
	}
	tableMeta, err := readMetadataBlock(r)
	if err != nil {
		return nil, err
	}
	tableMeta.Seal()

	colCount, err := readInt32(r)
	if err != nil {
		return nil, err
	}
	if colCount < 0 {
		return nil, fmt.Errorf("%w: negative column count %d", ErrStructure, colCount)
	}
	fieldCount, err := readInt32(r)
	if err != nil {
		return nil, err
	}
	if fieldCount < 0 {
		return nil, fmt.Errorf("%w: negative field count %d", ErrStructure, fieldCount)
	}

	fields := make([]fieldDescriptor, fieldCount)
	for i := range fields {
		name, err := readString(r)
		if err != nil {
			return nil, err
		}
		if err := validateMetadataName(name); err != nil {
			return nil, err
		}
		vtByte, err := readUint8(r)
		if err != nil {
			return nil, err
		}
		vt := ValueTypeID(vtByte)
		def, hasDefault, err := readOptScalar(r, vt)
		if err != nil {
			return nil, err
		}
		fields[i] = fieldDescriptor{Name: name, Type: vt, Default: def, HasDefault: hasDefault}
	}

	columns := make([]*Column, colCount)
	for c := range columns {
		colMeta := NewMetadata()
		for _, f := range fields {
			val, hasVal, err := readOptScalar(r, f.Type)
			if err != nil {
				return nil, err
			}
			if err := colMeta.Add(f.Name, f.Type, val, hasVal, f.Default, f.HasDefault); err != nil {
				return nil, err
			}
		}
		colMeta.Seal()

		name, dataType, err := columnIdentity(colMeta)
		if err != nil {
			return nil, err
		}
		columns[c] = &Column{Name: name, Type: dataType, Metadata: colMeta}
	}

	return &Table{Metadata: tableMeta, Columns: columns}, nil
}

// columnIdentity extracts and validates the two mandatory column-metadata
// fields, Name (STRING) and DataType (BINARY wrapping exactly one byte —
// the column's value-type tag), per spec.md §4.8.
func columnIdentity(colMeta *Metadata) (name string, vt ValueTypeID, err error) {
	nameVal, ok := colMeta.Get(columnMetaName)
	if !ok {
		return "", 0, fmt.Errorf("%w: column metadata missing required %q field", ErrMetadataInconsistent, columnMetaName)
	}
	name, ok = nameVal.(string)
	if !ok {
		return "", 0, fmt.Errorf("%w: column %q field must be a string", ErrMetadataInconsistent, columnMetaName)
	}

	dtVal, ok := colMeta.Get(columnMetaDataType)
	if !ok {
		return "", 0, fmt.Errorf("%w: column %q metadata missing required %q field", ErrMetadataInconsistent, name, columnMetaDataType)
	}
	dtBytes, ok := dtVal.([]byte)
	if !ok || len(dtBytes) != 1 {
		return "", 0, fmt.Errorf("%w: column %q field %q must be exactly one byte", ErrMetadataInconsistent, name, columnMetaDataType)
	}
	return name, ValueTypeID(dtBytes[0]), nil
}

// newColumnMetadata builds the mandatory Name/DataType prefix of a column's
// metadata map, followed by the caller-supplied user entries, matching the
// order spec.md §4.10 mandates: "Name then DataType ... then user entries".
func newColumnMetadata(name string, vt ValueTypeID, user *Metadata) (*Metadata, error) {
	m := NewMetadata()
	if err := m.AddValue(columnMetaName, ValueTypeString, name); err != nil {
		return nil, err
	}
	if err := m.AddValue(columnMetaDataType, ValueTypeBinary, []byte{byte(vt)}); err != nil {
		return nil, err
	}
	if user == nil {
		return m, nil
	}
	for _, n := range user.Names() {
		if n == columnMetaName || n == columnMetaDataType {
			continue
		}
		et, _ := user.Type(n)
		val, hasVal := user.Get(n)
		def, hasDefault := user.Default(n)
		if err := m.Add(n, et, val, hasVal, def, hasDefault); err != nil {
			return nil, err
		}
	}
	return m, nil
}
