// Copyright (c) 2026 TIBCO Software Inc.

package file

import (
	"bufio"
	"io"

	"github.com/tibco/sbdf-go"
	"github.com/valyala/fastjson"
)

// JsonRowScanner scans a series of newline-delimited JSON objects, one row
// per line. Modeled on dbn-go's JsonScanner, which scans line-delimited DBN
// records the same way.
type JsonRowScanner struct {
	scanner *bufio.Scanner
	parser  fastjson.Parser
}

// NewJsonRowScanner creates a JsonRowScanner over r.
func NewJsonRowScanner(r io.Reader) *JsonRowScanner {
	return &JsonRowScanner{scanner: bufio.NewScanner(r)}
}

// Next advances to the next line. Returns false at EOF or on scan error;
// call Error to distinguish the two.
func (s *JsonRowScanner) Next() bool {
	return s.scanner.Scan()
}

// Error returns the last error from Next.
func (s *JsonRowScanner) Error() error {
	return s.scanner.Err()
}

// Row parses the scanner's current line as a JSON object.
func (s *JsonRowScanner) Row() (*fastjson.Object, error) {
	val, err := s.parser.ParseBytes(s.scanner.Bytes())
	if err != nil {
		return nil, err
	}
	return val.Object()
}

// ReadTableFromJson builds a Table from a stream of line-delimited JSON
// objects. The column set, and the order of columns, is taken from the
// first row's fields; fields that only later rows carry are ignored. Each
// column's value type is then inferred from every row's value for that
// field, not just the first, since a single row with a null in some column
// must not prevent sampling a later row's value for that same column (a
// column with a value in every row but the first must still infer
// correctly). A JSON null or absent field marks that cell invalid.
func ReadTableFromJson(r io.Reader) (*sbdf.Table, error) {
	scanner := NewJsonRowScanner(r)
	table := sbdf.NewTable()

	var names []string
	var rows [][]any
	var valids [][]bool

	for scanner.Next() {
		obj, err := scanner.Row()
		if err != nil {
			return nil, err
		}
		if names == nil {
			obj.Visit(func(key []byte, _ *fastjson.Value) {
				names = append(names, string(key))
			})
		}

		values := make([]any, len(names))
		valid := make([]bool, len(names))
		for i, name := range names {
			v, ok := jsonCellValue(obj.Get(name))
			values[i], valid[i] = v, ok
		}
		rows = append(rows, values)
		valids = append(valids, valid)
	}
	if err := scanner.Error(); err != nil {
		return nil, err
	}
	if names == nil {
		return table, nil
	}

	for i, name := range names {
		var sample []any
		for r, row := range rows {
			if valids[r][i] {
				sample = append(sample, row[i])
			}
		}
		vt, err := sbdf.InferSliceValueType(sample)
		if err != nil {
			return nil, err
		}
		if _, err := table.AddColumn(name, vt, nil); err != nil {
			return nil, err
		}
	}

	for i := range rows {
		if err := table.Append(rows[i], valids[i]); err != nil {
			return nil, err
		}
	}
	return table, nil
}

// jsonCellValue converts a fastjson.Value to a Go value for type inference
// and table append. The second result is false for a missing field or JSON
// null, both of which mark the cell invalid. JSON numbers are treated as
// float64 since JSON carries no int/float distinction of its own; nested
// objects and arrays are kept as their raw JSON text.
func jsonCellValue(v *fastjson.Value) (any, bool) {
	if v == nil {
		return nil, false
	}
	switch v.Type() {
	case fastjson.TypeNull:
		return nil, false
	case fastjson.TypeTrue:
		return true, true
	case fastjson.TypeFalse:
		return false, true
	case fastjson.TypeNumber:
		return v.GetFloat64(), true
	case fastjson.TypeString:
		return string(v.GetStringBytes()), true
	default:
		return v.String(), true
	}
}
