// Copyright (c) 2026 TIBCO Software Inc.

package file

import (
	"encoding/json"
	"io"

	"github.com/tibco/sbdf-go"
)

// WriteTableAsJson writes a Table as newline-delimited JSON objects, one per
// row, keyed by column name. Invalid cells are emitted as JSON null rather
// than their SBDF missing-value sentinel.
func WriteTableAsJson(table *sbdf.Table, writer io.Writer) error {
	enc := json.NewEncoder(writer)

	rows := table.RowCount()
	row := make(map[string]any, len(table.Columns))
	for r := 0; r < rows; r++ {
		for _, col := range table.Columns {
			if !col.IsValid(r) {
				row[col.Name] = nil
				continue
			}
			v, err := col.At(r)
			if err != nil {
				return err
			}
			row[col.Name] = v
		}
		if err := enc.Encode(row); err != nil {
			return err
		}
	}
	return nil
}
