// Copyright (c) 2026 TIBCO Software Inc.

package file

import (
	"database/sql"
	"fmt"
	"os"
	"strings"

	"github.com/tibco/sbdf-go"

	_ "github.com/duckdb/duckdb-go/v2"
)

// sqlLiteral escapes a string for use as a SQL string literal, preventing
// SQL injection via embedded single quotes. Mirrors dbn-go's mcp_data
// helper of the same name.
func sqlLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// QueryTable runs a read-only SQL query over a Table's rows against an
// in-memory DuckDB instance. The table is staged to a temporary Parquet
// file and exposed as the view "t" via read_parquet(), the same technique
// dbn-go's mcp_data cache uses to layer DuckDB views over cached Parquet
// files rather than loading rows through the driver by hand.
func QueryTable(table *sbdf.Table, query string) ([]map[string]any, []string, error) {
	tmp, err := os.CreateTemp("", "sbdf-query-*.parquet")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create staging file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if err := WriteTableAsParquet(table, tmp); err != nil {
		tmp.Close()
		return nil, nil, fmt.Errorf("failed to stage parquet: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, nil, err
	}

	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open duckdb: %w", err)
	}
	defer db.Close()

	// Security hardening: disable extensions and remote filesystem access,
	// then lock the configuration so the user's query can't re-enable them.
	for _, stmt := range []string{
		"SET autoinstall_known_extensions = false",
		"SET autoload_known_extensions = false",
		"SET allow_community_extensions = false",
		"SET disabled_filesystems = 'HTTPFileSystem'",
		"SET lock_configuration = true",
	} {
		if _, err := db.Exec(stmt); err != nil {
			return nil, nil, fmt.Errorf("failed to configure duckdb (%s): %w", stmt, err)
		}
	}

	viewStmt := fmt.Sprintf(`CREATE VIEW t AS SELECT * FROM read_parquet(%s)`, sqlLiteral(tmpPath))
	if _, err := db.Exec(viewStmt); err != nil {
		return nil, nil, fmt.Errorf("failed to create view over staged table: %w", err)
	}

	rows, err := db.Query(query)
	if err != nil {
		return nil, nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}

	var out []map[string]any
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, err
		}
		row := make(map[string]any, len(cols))
		for i, c := range cols {
			row[c] = vals[i]
		}
		out = append(out, row)
	}
	return out, cols, rows.Err()
}
