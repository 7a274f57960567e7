// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package xlsx builds a minimal XLSX workbook byte-by-byte: shared-string
// deduplication, worksheet markup, and the ZIP container itself, with no
// spreadsheet SDK involved. The output is one sheet with the fixed columns
// Gene | URL | Primer 1 | Primer 2.
package xlsx

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/pdiddy/primer-crawler/pkg/types"
)

// ErrPathExists is returned by WriteFile when the destination exists and
// overwriting was not requested. Nothing has been written when it surfaces.
var ErrPathExists = errors.New("output path already exists")

// EncodingError reports a cell value that cannot be represented in the
// worksheet markup (invalid UTF-8 or control characters XML 1.0 forbids).
// Encoding fails up front instead of producing a corrupt document.
type EncodingError struct {
	Value string
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("cell value %q is not representable in worksheet markup", e.Value)
}

// headers is the fixed first row of every workbook.
var headers = [4]string{"Gene", "URL", "Primer 1", "Primer 2"}

// Encode builds the complete workbook for the record sequence. Row 1 is
// the header row; each record becomes one four-cell row in input order,
// with missing primers as empty cells. Encoding is deterministic: the same
// records produce byte-identical output. An empty record slice yields a
// valid header-only document.
func Encode(records []types.ExtractionRecord) ([]byte, error) {
	sst := newSharedStrings()
	rows := make([][]int, 0, len(records)+1)

	headerRow := make([]int, len(headers))
	for i, h := range headers {
		headerRow[i] = sst.add(h)
	}
	rows = append(rows, headerRow)

	for _, rec := range records {
		cells := [4]string{rec.Gene, rec.SourceURL, rec.Primers.Forward, rec.Primers.Reverse}
		row := make([]int, len(cells))
		for i, v := range cells {
			if !representable(v) {
				return nil, &EncodingError{Value: v}
			}
			if v == "" {
				row[i] = -1
				continue
			}
			row[i] = sst.add(v)
		}
		rows = append(rows, row)
	}

	entries := []archiveEntry{
		{name: "[Content_Types].xml", data: []byte(contentTypesXML)},
		{name: "_rels/.rels", data: []byte(packageRelsXML)},
		{name: "xl/workbook.xml", data: []byte(workbookXML)},
		{name: "xl/_rels/workbook.xml.rels", data: []byte(workbookRelsXML)},
		{name: "xl/sharedStrings.xml", data: sst.part()},
		{name: "xl/worksheets/sheet1.xml", data: sheetPart(rows)},
	}
	return writeArchive(entries), nil
}

// WriteFile encodes the records and writes the workbook to path. An
// existing destination fails with ErrPathExists unless overwrite is set.
// The document is written to a temporary file and renamed into place, so a
// failure never leaves a partial workbook at path.
func WriteFile(path string, records []types.ExtractionRecord, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s: %w", path, ErrPathExists)
		}
	}

	doc, err := Encode(records)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".xlsx-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	_, writeErr := tmp.Write(doc)
	closeErr := tmp.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing workbook: %w", writeErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// representable reports whether a cell value survives XML serialization:
// valid UTF-8 with no control characters other than tab, LF, and CR.
func representable(v string) bool {
	if !utf8.ValidString(v) {
		return false
	}
	for _, r := range v {
		if r < 0x20 && r != '\t' && r != '\n' && r != '\r' {
			return false
		}
		if r == 0xFFFE || r == 0xFFFF {
			return false
		}
	}
	return true
}
