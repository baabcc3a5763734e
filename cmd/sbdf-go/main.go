// Copyright (c) 2026 TIBCO Software Inc.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tibco/sbdf-go"
	sbdf_file "github.com/tibco/sbdf-go/internal/file"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

///////////////////////////////////////////////////////////////////////////////

var (
	verbose bool

	useZstd = false // read/write the SBDF payload zstd-compressed
)

func requireNoError(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err.Error())
		os.Exit(1)
	}
}

func requireNoErrorWithoutPrint(err error) {
	if err != nil {
		os.Exit(1)
	}
}

///////////////////////////////////////////////////////////////////////////////

func main() {
	cobra.OnInitialize()

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().BoolVarP(&useZstd, "zstd", "z", false, "File payload is zstd-compressed")

	rootCmd.AddCommand(catCmd)
	catCmd.Flags().BoolVarP(&useZstd, "zstd", "z", false, "File payload is zstd-compressed")

	rootCmd.AddCommand(convertCmd)
	convertCmd.Flags().BoolVarP(&useZstd, "zstd", "z", false, "Write the SBDF payload zstd-compressed")

	rootCmd.AddCommand(toParquetCmd)
	toParquetCmd.Flags().BoolVarP(&useZstd, "zstd", "z", false, "File payload is zstd-compressed")

	rootCmd.AddCommand(queryCmd)
	queryCmd.Flags().BoolVarP(&useZstd, "zstd", "z", false, "File payload is zstd-compressed")

	err := rootCmd.Execute()
	requireNoErrorWithoutPrint(err)
}

///////////////////////////////////////////////////////////////////////////////

var rootCmd = &cobra.Command{
	Use:   "sbdf-go",
	Short: "sbdf-go reads, writes and inspects Spotfire Binary Data Format files",
	Long:  "sbdf-go reads, writes and inspects Spotfire Binary Data Format files",
}

///////////////////////////////////////////////////////////////////////////////

// tableSummary is the JSON shape printed by inspectCmd.
type tableSummary struct {
	RowCount int             `json:"row_count"`
	Columns  []columnSummary `json:"columns"`
}

type columnSummary struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

var inspectCmd = &cobra.Command{
	Use:   "inspect file...",
	Short: `Prints the specified file's schema and row count as JSON`,
	Long:  `Prints the specified file's schema and row count as JSON`,
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		for _, sourceFile := range args {
			if err := inspectFile(sourceFile); err != nil {
				fmt.Fprintf(os.Stderr, "error: reading %s: %s\n", sourceFile, err.Error())
			}
		}
	},
}

func inspectFile(sourceFile string) error {
	table, err := sbdf.ReadFile(sourceFile, useZstd)
	if err != nil {
		return fmt.Errorf("failed to read table: %w", err)
	}

	summary := tableSummary{RowCount: table.RowCount()}
	for _, col := range table.Columns {
		summary.Columns = append(summary.Columns, columnSummary{
			Name: col.Name,
			Type: col.Type.String(),
		})
	}

	jstr, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}
	fmt.Printf("%s\n", jstr)

	if verbose {
		fmt.Fprintf(os.Stderr, "%s: %s rows, %s columns\n", sourceFile,
			humanize.Comma(int64(summary.RowCount)), humanize.Comma(int64(len(summary.Columns))))
	}
	return nil
}

///////////////////////////////////////////////////////////////////////////////

var catCmd = &cobra.Command{
	Use:   "cat file...",
	Short: `Prints the specified file's rows as newline-delimited JSON`,
	Long:  `Prints the specified file's rows as newline-delimited JSON`,
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		for _, sourceFile := range args {
			if err := catFile(sourceFile); err != nil {
				fmt.Fprintf(os.Stderr, "error: reading %s: %s\n", sourceFile, err.Error())
			}
		}
	},
}

func catFile(sourceFile string) error {
	table, err := sbdf.ReadFile(sourceFile, useZstd)
	if err != nil {
		return fmt.Errorf("failed to read table: %w", err)
	}
	return sbdf_file.WriteTableAsJson(table, os.Stdout)
}

///////////////////////////////////////////////////////////////////////////////

var convertCmd = &cobra.Command{
	Use:   "convert src.json dst.sbdf",
	Short: `Converts a newline-delimited JSON row stream into an SBDF file`,
	Long:  `Converts a newline-delimited JSON row stream into an SBDF file`,
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		requireNoError(convertJsonToSbdf(args[0], args[1]))
	},
}

func convertJsonToSbdf(srcFile, dstFile string) error {
	src, err := os.Open(srcFile)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", srcFile, err)
	}
	defer src.Close()

	table, err := sbdf_file.ReadTableFromJson(src)
	if err != nil {
		return fmt.Errorf("failed to parse JSON rows: %w", err)
	}

	if err := sbdf.WriteFile(dstFile, useZstd, table); err != nil {
		return fmt.Errorf("failed to write %s: %w", dstFile, err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "wrote %s rows to %s\n", humanize.Comma(int64(table.RowCount())), dstFile)
	}
	return nil
}

///////////////////////////////////////////////////////////////////////////////

var toParquetCmd = &cobra.Command{
	Use:   "to-parquet src.sbdf dst.parquet",
	Short: `Converts an SBDF file to Parquet`,
	Long:  `Converts an SBDF file to Parquet`,
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		requireNoError(convertSbdfToParquet(args[0], args[1]))
	},
}

func convertSbdfToParquet(srcFile, dstFile string) error {
	table, err := sbdf.ReadFile(srcFile, useZstd)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", srcFile, err)
	}

	dst, err := os.Create(dstFile)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dstFile, err)
	}
	defer dst.Close()

	if err := sbdf_file.WriteTableAsParquet(table, dst); err != nil {
		return fmt.Errorf("failed to write parquet: %w", err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "wrote %s rows to %s\n", humanize.Comma(int64(table.RowCount())), dstFile)
	}
	return nil
}

///////////////////////////////////////////////////////////////////////////////

var queryCmd = &cobra.Command{
	Use:   "query file sql",
	Short: `Runs a SQL query over an SBDF file's rows (as table "t") using DuckDB`,
	Long:  `Runs a SQL query over an SBDF file's rows (as table "t") using DuckDB`,
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		requireNoError(queryFile(args[0], args[1]))
	},
}

func queryFile(sourceFile, query string) error {
	table, err := sbdf.ReadFile(sourceFile, useZstd)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", sourceFile, err)
	}

	rows, columns, err := sbdf_file.QueryTable(table, query)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	for _, row := range rows {
		jstr, err := json.Marshal(row)
		if err != nil {
			return fmt.Errorf("failed to marshal row: %w", err)
		}
		fmt.Printf("%s\n", jstr)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "%s rows, %d columns\n", humanize.Comma(int64(len(rows))), len(columns))
	}
	return nil
}
