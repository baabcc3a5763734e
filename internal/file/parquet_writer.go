// Copyright (c) 2026 TIBCO Software Inc.

package file

import (
	"fmt"
	"io"
	"time"

	"github.com/tibco/sbdf-go"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/compress"
	pqfile "github.com/apache/arrow-go/v18/parquet/file"
	pqschema "github.com/apache/arrow-go/v18/parquet/schema"
)

// WriteTableAsParquet writes a Table to a Parquet file. Unlike dbn-go's
// parquet writer, which hand-wrote one GroupNode per fixed DBN record
// layout, the schema here is built from the table's own runtime column
// list, since an SBDF table's shape isn't known until it's read.
func WriteTableAsParquet(table *sbdf.Table, w io.Writer) error {
	groupNode, err := parquetGroupNodeForTable(table)
	if err != nil {
		return err
	}

	pwProperties := parquet.NewWriterProperties(
		parquet.WithVersion(parquet.V2_LATEST),
		parquet.WithCompression(compress.Codecs.Snappy))

	pw := pqfile.NewParquetWriter(w, groupNode, pqfile.WithWriterProps(pwProperties))
	defer pw.Close()

	rgw := pw.AppendBufferedRowGroup()

	rows := table.RowCount()
	for i, col := range table.Columns {
		cw, err := rgw.Column(i)
		if err != nil {
			return fmt.Errorf("column %q: %w", col.Name, err)
		}
		if err := writeParquetColumn(cw, col, rows); err != nil {
			return fmt.Errorf("column %q: %w", col.Name, err)
		}
	}

	if err := rgw.Close(); err != nil {
		return err
	}
	return pw.FlushWithFooter()
}

///////////////////////////////////////////////////////////////////////////////

func parquetGroupNodeForTable(table *sbdf.Table) (*pqschema.GroupNode, error) {
	fields := make(pqschema.FieldList, len(table.Columns))
	for i, col := range table.Columns {
		node, err := parquetNodeForColumn(col)
		if err != nil {
			return nil, err
		}
		fields[i] = node
	}
	return pqschema.MustGroup(pqschema.NewGroupNode("schema", parquet.Repetitions.Required, fields, -1)), nil
}

func parquetNodeForColumn(col *sbdf.Column) (pqschema.Node, error) {
	switch col.Type {
	case sbdf.ValueTypeBool:
		return pqschema.NewBooleanNode(col.Name, parquet.Repetitions.Optional, -1), nil
	case sbdf.ValueTypeInt:
		return pqschema.NewInt32Node(col.Name, parquet.Repetitions.Optional, -1), nil
	case sbdf.ValueTypeLong, sbdf.ValueTypeTimeSpan:
		return pqschema.NewInt64Node(col.Name, parquet.Repetitions.Optional, -1), nil
	case sbdf.ValueTypeFloat:
		return pqschema.NewFloat32Node(col.Name, parquet.Repetitions.Optional, -1), nil
	case sbdf.ValueTypeDouble:
		return pqschema.NewFloat64Node(col.Name, parquet.Repetitions.Optional, -1), nil
	case sbdf.ValueTypeDateTime, sbdf.ValueTypeDate, sbdf.ValueTypeTime:
		return pqschema.MustPrimitive(pqschema.NewPrimitiveNodeLogical(col.Name, parquet.Repetitions.Optional,
			pqschema.NewTimestampLogicalType(true, pqschema.TimeUnitMillis), parquet.Types.Int64, 0, -1)), nil
	case sbdf.ValueTypeString:
		return pqschema.MustPrimitive(pqschema.NewPrimitiveNodeConverted(col.Name, parquet.Repetitions.Optional,
			parquet.Types.ByteArray, pqschema.ConvertedTypes.UTF8, 0, 0, 0, -1)), nil
	case sbdf.ValueTypeBinary, sbdf.ValueTypeDecimal:
		return pqschema.NewByteArrayNode(col.Name, parquet.Repetitions.Optional, -1), nil
	default:
		return nil, fmt.Errorf("no parquet mapping for value type %d", col.Type)
	}
}

// writeParquetColumn writes all of a column's rows as a single batch. Only
// the valid values are passed, one per defLevel == 1 entry, per the
// column-chunk writer's def-level convention for optional columns.
func writeParquetColumn(cw pqfile.ColumnChunkWriter, col *sbdf.Column, rows int) error {
	defLevels := make([]int16, rows)
	for i := range defLevels {
		if col.IsValid(i) {
			defLevels[i] = 1
		}
	}

	switch col.Type {
	case sbdf.ValueTypeBool:
		values, _ := sbdf.Values[bool](col)
		_, err := cw.(*pqfile.BooleanColumnChunkWriter).WriteBatch(filterValid(values, col), defLevels, nil)
		return err
	case sbdf.ValueTypeInt:
		values, _ := sbdf.Values[int32](col)
		_, err := cw.(*pqfile.Int32ColumnChunkWriter).WriteBatch(filterValid(values, col), defLevels, nil)
		return err
	case sbdf.ValueTypeLong:
		values, _ := sbdf.Values[int64](col)
		_, err := cw.(*pqfile.Int64ColumnChunkWriter).WriteBatch(filterValid(values, col), defLevels, nil)
		return err
	case sbdf.ValueTypeTimeSpan:
		durations, _ := sbdf.Values[time.Duration](col)
		millis := make([]int64, len(durations))
		for i, d := range durations {
			millis[i] = d.Milliseconds()
		}
		_, err := cw.(*pqfile.Int64ColumnChunkWriter).WriteBatch(filterValid(millis, col), defLevels, nil)
		return err
	case sbdf.ValueTypeFloat:
		values, _ := sbdf.Values[float32](col)
		_, err := cw.(*pqfile.Float32ColumnChunkWriter).WriteBatch(filterValid(values, col), defLevels, nil)
		return err
	case sbdf.ValueTypeDouble:
		values, _ := sbdf.Values[float64](col)
		_, err := cw.(*pqfile.Float64ColumnChunkWriter).WriteBatch(filterValid(values, col), defLevels, nil)
		return err
	case sbdf.ValueTypeDateTime, sbdf.ValueTypeDate, sbdf.ValueTypeTime:
		times, _ := sbdf.Values[time.Time](col)
		millis := make([]int64, len(times))
		for i, t := range times {
			millis[i] = t.UnixMilli()
		}
		_, err := cw.(*pqfile.Int64ColumnChunkWriter).WriteBatch(filterValid(millis, col), defLevels, nil)
		return err
	case sbdf.ValueTypeString:
		strs, _ := sbdf.Values[string](col)
		byteArrays := make([]parquet.ByteArray, len(strs))
		for i, s := range strs {
			byteArrays[i] = parquet.ByteArray(s)
		}
		_, err := cw.(*pqfile.ByteArrayColumnChunkWriter).WriteBatch(filterValid(byteArrays, col), defLevels, nil)
		return err
	case sbdf.ValueTypeBinary:
		bins, _ := sbdf.Values[[]byte](col)
		byteArrays := make([]parquet.ByteArray, len(bins))
		for i, b := range bins {
			byteArrays[i] = parquet.ByteArray(b)
		}
		_, err := cw.(*pqfile.ByteArrayColumnChunkWriter).WriteBatch(filterValid(byteArrays, col), defLevels, nil)
		return err
	case sbdf.ValueTypeDecimal:
		decs, _ := sbdf.Values[sbdf.Decimal](col)
		byteArrays := make([]parquet.ByteArray, len(decs))
		for i, d := range decs {
			byteArrays[i] = parquet.ByteArray(d.String())
		}
		_, err := cw.(*pqfile.ByteArrayColumnChunkWriter).WriteBatch(filterValid(byteArrays, col), defLevels, nil)
		return err
	default:
		return fmt.Errorf("no parquet writer for value type %d", col.Type)
	}
}

// filterValid drops the entries of values at invalid rows, matching the
// length of a column-chunk writer's def-level-1 count for optional columns.
func filterValid[T any](values []T, col *sbdf.Column) []T {
	if col.Valid == nil {
		return values
	}
	out := make([]T, 0, len(values))
	for i, v := range values {
		if col.IsValid(i) {
			out = append(out, v)
		}
	}
	return out
}
