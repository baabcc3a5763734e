// Copyright (c) 2026 TIBCO Software Inc.
//
// Adapted from the Spotfire Binary Data Format reference implementation:
//   spotfire.sbdf (Python package)
//

package sbdf

// SectionID identifies the kind of section framed by a 0xDF 0x5B magic pair.
type SectionID uint8

const (
	// SectionUnknown is never emitted on the wire; it is the zero value
	// used internally before a section has been identified.
	SectionUnknown SectionID = 0
	// SectionFileHeader starts every SBDF file: major/minor version.
	SectionFileHeader SectionID = 1
	// SectionTableMetadata carries table-level and column metadata.
	SectionTableMetadata SectionID = 2
	// SectionTableSlice starts a slice of up to 50,000 rows.
	SectionTableSlice SectionID = 3
	// SectionColumnSlice carries one column's values within a table slice.
	SectionColumnSlice SectionID = 4
	// SectionTableEnd closes the table; no further slices follow.
	SectionTableEnd SectionID = 5
)

// ValueArrayEncoding selects how a column slice's values were packed.
type ValueArrayEncoding uint8

const (
	encodingUnknown ValueArrayEncoding = 0
	// EncodingPlain stores every element back to back, no compression.
	EncodingPlain ValueArrayEncoding = 0x1
	// EncodingRunLength stores (value, run-length) pairs. Decode-only: this
	// module never produces RUN_LENGTH output, matching the reference
	// implementation, which raises NotImplementedError on that write path.
	EncodingRunLength ValueArrayEncoding = 0x2
	// EncodingBit packs one bit per element, MSB-first within each byte.
	// Used for BOOL columns and for the IsInvalid validity mask.
	EncodingBit ValueArrayEncoding = 0x3
)

const (
	sectionMagic1 = 0xDF
	sectionMagic2 = 0x5B

	fileHeaderMajorVersion uint8 = 1
	fileHeaderMinorVersion uint8 = 0

	// decimalExponentBias is added to a Decimal's signed exponent before
	// packing it into the wire format's 14-bit biased exponent field.
	decimalExponentBias = 12320

	// defaultSliceRowCount bounds how many rows a table writer buffers into
	// one table/column slice before flushing; the final slice may hold the
	// remainder.
	defaultSliceRowCount = 50000

	// Well-known column metadata property names.
	columnMetaName     = "Name"
	columnMetaDataType = "DataType"

	// Well-known column-slice properties. IsInvalid is the only one this
	// module interprets; the reader decodes ErrorCode/HasReplacedValue to
	// stay in frame and then drops them, and the writer never emits them.
	columnPropertyIsInvalid        = "IsInvalid"
	columnPropertyErrorCode        = "ErrorCode"
	columnPropertyHasReplacedValue = "HasReplacedValue"
)
