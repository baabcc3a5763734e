// Copyright (c) 2026 TIBCO Software Inc.

package sbdf

import (
	"fmt"
	"io"
	"unicode/utf8"
)

// metadataEntry is one (name -> value, default) binding inside a Metadata
// map. Value and Default, when present, always share Type.
type metadataEntry struct {
	Type       ValueTypeID
	Value      any
	HasValue   bool
	Default    any
	HasDefault bool
}

// Metadata is an ordered, unique-keyed map of name -> (optional value,
// optional default), mirroring sbdf.py's _Metadata. It starts mutable and
// becomes permanently read-only once Seal is called — a table reader seals
// every metadata block it decodes, and a table writer seals each block
// immediately after encoding it, matching spec.md §3's "immutable after
// its owning table metadata has been written/read" lifecycle rule.
type Metadata struct {
	order   []string
	entries map[string]*metadataEntry
	sealed  bool
}

// NewMetadata returns an empty, mutable Metadata map.
func NewMetadata() *Metadata {
	return &Metadata{entries: make(map[string]*metadataEntry)}
}

// Seal permanently forbids further Add/Remove/SetValue calls.
func (m *Metadata) Seal() { m.sealed = true }

// IsSealed reports whether Seal has been called.
func (m *Metadata) IsSealed() bool { return m.sealed }

// Names returns the entry names in insertion order.
func (m *Metadata) Names() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// Len returns the number of entries.
func (m *Metadata) Len() int { return len(m.order) }

// Exists reports whether name is present.
func (m *Metadata) Exists(name string) bool {
	_, ok := m.entries[name]
	return ok
}

// Type returns the declared value type of name, if present.
func (m *Metadata) Type(name string) (ValueTypeID, bool) {
	e, ok := m.entries[name]
	if !ok {
		return ValueTypeUnknown, false
	}
	return e.Type, true
}

// Get returns name's current value, if both present and set.
func (m *Metadata) Get(name string) (any, bool) {
	e, ok := m.entries[name]
	if !ok || !e.HasValue {
		return nil, false
	}
	return e.Value, true
}

// Default returns name's default value, if both present and set. This is
// the accessor sbdf.py exposes as a property independent of the entry's
// current value (SPEC_FULL.md §3).
func (m *Metadata) Default(name string) (any, bool) {
	e, ok := m.entries[name]
	if !ok || !e.HasDefault {
		return nil, false
	}
	return e.Default, true
}

// Add inserts a new entry. It fails with ErrMetadataSealed if the map is
// sealed, or ErrMetadataExists if name is already present.
func (m *Metadata) Add(name string, vt ValueTypeID, value any, hasValue bool, def any, hasDefault bool) error {
	if m.sealed {
		return ErrMetadataSealed
	}
	if m.Exists(name) {
		return ErrMetadataExists
	}
	m.order = append(m.order, name)
	m.entries[name] = &metadataEntry{
		Type: vt, Value: value, HasValue: hasValue, Default: def, HasDefault: hasDefault,
	}
	return nil
}

// AddValue is a convenience wrapper around Add for the common case of a
// value with no default.
func (m *Metadata) AddValue(name string, vt ValueTypeID, value any) error {
	return m.Add(name, vt, value, true, nil, false)
}

// SetValue replaces the current value of an existing, unsealed entry,
// checking that its value type agrees with the entry's declared type.
func (m *Metadata) SetValue(name string, vt ValueTypeID, value any) error {
	if m.sealed {
		return ErrMetadataSealed
	}
	e, ok := m.entries[name]
	if !ok {
		return ErrMetadataNotFound
	}
	if e.Type != vt {
		return ErrValueTypeMismatch
	}
	e.Value, e.HasValue = value, true
	return nil
}

// Remove deletes name, returning false if it wasn't present. Mirrors
// sbdf.py's _Metadata.remove().
func (m *Metadata) Remove(name string) bool {
	if m.sealed {
		return false
	}
	if !m.Exists(name) {
		return false
	}
	delete(m.entries, name)
	for i, n := range m.order {
		if n == name {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return true
}

// validateMetadataName enforces the UTF-8-only resolution of spec.md §9's
// open question on metadata name encoding: a name decoded from the wire
// that is not valid UTF-8 is a hard error, not a lossy decode.
func validateMetadataName(name string) error {
	if !utf8.ValidString(name) {
		return ErrInvalidUTF8Name
	}
	return nil
}

// writeMetadataBlock writes a metadata block: u32 count, then count
// MetaEntry records (spec.md §6 grammar). It does not write the section
// header or, for a table-metadata block, the column/field sections that
// follow — see tablemetadata.go.
func writeMetadataBlock(w io.Writer, m *Metadata) error {
	if err := writeInt32(w, int32(len(m.order))); err != nil {
		return err
	}
	for _, name := range m.order {
		e := m.entries[name]
		if err := writeString(w, name); err != nil {
			return err
		}
		if err := writeUint8(w, byte(e.Type)); err != nil {
			return err
		}
		if err := writeOptScalar(w, e.Type, e.Value, e.HasValue); err != nil {
			return err
		}
		if err := writeOptScalar(w, e.Type, e.Default, e.HasDefault); err != nil {
			return err
		}
	}
	return nil
}

// readMetadataBlock reads a metadata block written by writeMetadataBlock.
// The returned Metadata is mutable; callers seal it once it has been fully
// incorporated into its owning table/column metadata.
func readMetadataBlock(r io.Reader) (*Metadata, error) {
	count, err := readInt32(r)
	if err != nil {
		return nil, err
	}
	if count < 0 {
		return nil, fmt.Errorf("%w: negative metadata entry count %d", ErrStructure, count)
	}
	m := NewMetadata()
	for i := int32(0); i < count; i++ {
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
		value, hasValue, err := readOptScalar(r, vt)
		if err != nil {
			return nil, err
		}
		def, hasDefault, err := readOptScalar(r, vt)
		if err != nil {
			return nil, err
		}
		if err := m.Add(name, vt, value, hasValue, def, hasDefault); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// writeOptScalar writes the `u8 present; Scalar(vtype) if present` shape
// shared by metadata values/defaults and table-metadata field defaults.
func writeOptScalar(w io.Writer, vt ValueTypeID, value any, present bool) error {
	if !present {
		return writeUint8(w, 0)
	}
	if err := writeUint8(w, 1); err != nil {
		return err
	}
	return encodeScalar(w, vt, value)
}

func readOptScalar(r io.Reader, vt ValueTypeID) (value any, present bool, err error) {
	p, err := readUint8(r)
	if err != nil {
		return nil, false, err
	}
	if p == 0 {
		return nil, false, nil
	}
	v, err := decodeScalar(r, vt)
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}
