// Copyright (c) 2026 TIBCO Software Inc.

package sbdf

import (
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// ReadFile opens filename (zstd-decompressing it first if useZstd is true
// or the name ends in .zst/.zstd) and decodes its full contents into a
// Table. Pass "-" for stdin.
func ReadFile(filename string, useZstd bool) (*Table, error) {
	reader, closeReader, err := openCompressedReader(filename, useZstd)
	if err != nil {
		return nil, err
	}
	defer closeReader()
	return ReadTable(reader)
}

// WriteFile opens filename (zstd-compressing it if useZstd is true or the
// name ends in .zst/.zstd) and writes table's full contents to it. Pass
// "-" for stdout.
func WriteFile(filename string, useZstd bool, table *Table) error {
	writer, closeWriter, err := openCompressedWriter(filename, useZstd)
	if err != nil {
		return err
	}
	if err := WriteTable(writer, table); err != nil {
		closeWriter()
		return err
	}
	return closeWriter()
}

// wantsZstd reports whether a filename's extension, or an explicit force
// flag, means the stream should be zstd-framed.
func wantsZstd(filename string, forced bool) bool {
	return forced || strings.HasSuffix(filename, ".zst") || strings.HasSuffix(filename, ".zstd")
}

// openCompressedReader opens filename for reading, or os.Stdin if filename
// is "-", transparently zstd-decompressing the stream when wantsZstd
// reports true. The returned close func always runs cleanly, releasing the
// zstd decoder (if any) and the underlying file (if any).
func openCompressedReader(filename string, useZstd bool) (io.Reader, func() error, error) {
	var reader io.Reader
	var fileCloser io.Closer

	if filename != "-" {
		file, err := os.Open(filename)
		if err != nil {
			return nil, nil, err
		}
		reader, fileCloser = file, file
	} else {
		reader = os.Stdin
	}

	if !wantsZstd(filename, useZstd) {
		return reader, closeFunc(fileCloser), nil
	}

	zr, err := zstd.NewReader(reader)
	if err != nil {
		if fileCloser != nil {
			fileCloser.Close()
		}
		return nil, nil, err
	}
	return zr, func() error {
		zr.Close()
		if fileCloser != nil {
			return fileCloser.Close()
		}
		return nil
	}, nil
}

// openCompressedWriter opens filename for writing, or os.Stdout if
// filename is "-", transparently zstd-compressing the stream when
// wantsZstd reports true. The returned close func flushes the zstd
// encoder (if any) before closing the underlying file (if any); it must be
// called for a zstd-compressed write to produce a valid frame.
func openCompressedWriter(filename string, useZstd bool) (io.Writer, func() error, error) {
	var writer io.Writer
	var fileCloser io.Closer

	if filename != "-" {
		file, err := os.Create(filename)
		if err != nil {
			return nil, nil, err
		}
		writer, fileCloser = file, file
	} else {
		writer = os.Stdout
	}

	if !wantsZstd(filename, useZstd) {
		return writer, closeFunc(fileCloser), nil
	}

	zw, err := zstd.NewWriter(writer)
	if err != nil {
		if fileCloser != nil {
			fileCloser.Close()
		}
		return nil, nil, err
	}
	return zw, func() error {
		err := zw.Close()
		if fileCloser != nil {
			if cerr := fileCloser.Close(); err == nil {
				err = cerr
			}
		}
		return err
	}, nil
}

func closeFunc(c io.Closer) func() error {
	return func() error {
		if c == nil {
			return nil
		}
		return c.Close()
	}
}

// ReadTable decodes one complete SBDF stream from r: file header, table
// metadata, every table slice up to TABLEEND. This is the read_sbdf
// consumer entry point; callers that want to process slices as they
// arrive instead should use NewTableReader directly.
func ReadTable(r io.Reader) (*Table, error) {
	return ReadAll(r)
}
