package xlsx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/pdiddy/primer-crawler/pkg/types"
)

var sampleRecords = []types.ExtractionRecord{
	{
		ID:        "PMC1234567",
		Gene:      "IL11",
		SourceURL: "https://pmc.ncbi.nlm.nih.gov/articles/PMC1234567/",
		Primers:   types.PrimerPair{Forward: "ACGTACGTAC", Reverse: "TTGCATGCAT"},
	},
	{
		ID:        "PMC7654321",
		Gene:      "IL11",
		SourceURL: "https://pmc.ncbi.nlm.nih.gov/articles/PMC7654321/",
		Primers:   types.PrimerPair{Forward: "GGGGCCCCAA"},
	},
}

// readWorkbook parses an encoded document with the standard library's zip
// and xml readers and resolves shared-string cells back to their values.
// Empty cells come back as empty strings.
func readWorkbook(t *testing.T, doc []byte) [][]string {
	t.Helper()

	zr, err := zip.NewReader(bytes.NewReader(doc), int64(len(doc)))
	if err != nil {
		t.Fatalf("opening archive: %v", err)
	}

	var sst struct {
		Items []struct {
			T string `xml:"t"`
		} `xml:"si"`
	}
	if err := xml.Unmarshal(partData(t, zr, "xl/sharedStrings.xml"), &sst); err != nil {
		t.Fatalf("parsing shared strings: %v", err)
	}

	var sheet struct {
		Rows []struct {
			Cells []struct {
				T string `xml:"t,attr"`
				V string `xml:"v"`
			} `xml:"c"`
		} `xml:"sheetData>row"`
	}
	if err := xml.Unmarshal(partData(t, zr, "xl/worksheets/sheet1.xml"), &sheet); err != nil {
		t.Fatalf("parsing worksheet: %v", err)
	}

	var rows [][]string
	for _, row := range sheet.Rows {
		var cells []string
		for _, c := range row.Cells {
			if c.T != "s" {
				cells = append(cells, "")
				continue
			}
			i, err := strconv.Atoi(c.V)
			if err != nil || i < 0 || i >= len(sst.Items) {
				t.Fatalf("bad shared-string reference %q", c.V)
			}
			cells = append(cells, sst.Items[i].T)
		}
		rows = append(rows, cells)
	}
	return rows
}

func partData(t *testing.T, zr *zip.Reader, name string) []byte {
	t.Helper()
	f, err := zr.Open(name)
	if err != nil {
		t.Fatalf("opening part %s: %v", name, err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		t.Fatalf("reading part %s: %v", name, err)
	}
	return data
}

func TestEncodeRoundTrip(t *testing.T) {
	doc, err := Encode(sampleRecords)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	rows := readWorkbook(t, doc)
	want := [][]string{
		{"Gene", "URL", "Primer 1", "Primer 2"},
		{"IL11", "https://pmc.ncbi.nlm.nih.gov/articles/PMC1234567/", "ACGTACGTAC", "TTGCATGCAT"},
		{"IL11", "https://pmc.ncbi.nlm.nih.gov/articles/PMC7654321/", "GGGGCCCCAA", ""},
	}
	if len(rows) != len(want) {
		t.Fatalf("len(rows) = %d, want %d", len(rows), len(want))
	}
	for r := range want {
		if len(rows[r]) != len(want[r]) {
			t.Fatalf("row %d has %d cells, want %d", r, len(rows[r]), len(want[r]))
		}
		for c := range want[r] {
			if rows[r][c] != want[r][c] {
				t.Errorf("cell [%d][%d] = %q, want %q", r, c, rows[r][c], want[r][c])
			}
		}
	}
}

func TestEncodeEmptyRecords(t *testing.T) {
	doc, err := Encode(nil)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	rows := readWorkbook(t, doc)
	if len(rows) != 1 {
		t.Fatalf("len(rows) = %d, want header row only", len(rows))
	}
	for i, h := range headers {
		if rows[0][i] != h {
			t.Errorf("header cell %d = %q, want %q", i, rows[0][i], h)
		}
	}
}

func TestEncodeDeterministic(t *testing.T) {
	a, err := Encode(sampleRecords)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	b, err := Encode(sampleRecords)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Error("identical records should encode to byte-identical documents")
	}
}

func TestEncodeSharedStringDedup(t *testing.T) {
	doc, err := Encode(sampleRecords)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(doc), int64(len(doc)))
	if err != nil {
		t.Fatalf("opening archive: %v", err)
	}
	sst := partData(t, zr, "xl/sharedStrings.xml")

	// Four headers, one gene shared by both rows, two URLs, three primers.
	if got := bytes.Count(sst, []byte("<si>")); got != 10 {
		t.Errorf("unique string count = %d, want 10", got)
	}
	if bytes.Count(sst, []byte(">IL11<")) != 1 {
		t.Error("repeated cell value should appear once in the table")
	}
}

func TestEncodeEscapesMetacharacters(t *testing.T) {
	recs := []types.ExtractionRecord{{
		Gene:      `A&B <"tag">`,
		SourceURL: "https://example.org/?a=1&b=2",
		Primers:   types.PrimerPair{Forward: "ACGTACGTAC"},
	}}
	doc, err := Encode(recs)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	rows := readWorkbook(t, doc)
	if rows[1][0] != `A&B <"tag">` {
		t.Errorf("escaped value round-tripped as %q", rows[1][0])
	}
	if rows[1][1] != "https://example.org/?a=1&b=2" {
		t.Errorf("escaped URL round-tripped as %q", rows[1][1])
	}
}

func TestEncodeRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		gene string
	}{
		{"invalid utf-8", "IL11\xff\xfe"},
		{"control character", "IL11\x01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Encode([]types.ExtractionRecord{{Gene: tt.gene}})
			var encErr *EncodingError
			if !errors.As(err, &encErr) {
				t.Fatalf("err = %v, want *EncodingError", err)
			}
			if encErr.Value != tt.gene {
				t.Errorf("EncodingError.Value = %q, want %q", encErr.Value, tt.gene)
			}
		})
	}
}

func TestEncodeAllowsTabAndNewline(t *testing.T) {
	if _, err := Encode([]types.ExtractionRecord{{Gene: "a\tb\nc"}}); err != nil {
		t.Fatalf("tab and newline are representable, got %v", err)
	}
}

func TestEncodeUsesStoredEntries(t *testing.T) {
	doc, err := Encode(sampleRecords)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	zr, err := zip.NewReader(bytes.NewReader(doc), int64(len(doc)))
	if err != nil {
		t.Fatalf("opening archive: %v", err)
	}
	for _, f := range zr.File {
		if f.Method != zip.Store {
			t.Errorf("entry %s uses method %d, want stored", f.Name, f.Method)
		}
	}
}

func TestWriteFileCreatesDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "primers.xlsx")
	if err := WriteFile(path, sampleRecords, false); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	doc, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if rows := readWorkbook(t, doc); len(rows) != 3 {
		t.Errorf("len(rows) = %d, want 3", len(rows))
	}
}

func TestWriteFileExistingPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "primers.xlsx")
	if err := os.WriteFile(path, []byte("keep me"), 0o644); err != nil {
		t.Fatal(err)
	}

	err := WriteFile(path, sampleRecords, false)
	if !errors.Is(err, ErrPathExists) {
		t.Fatalf("err = %v, want ErrPathExists", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "keep me" {
		t.Error("existing file must be untouched on refusal")
	}
}

func TestWriteFileOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "primers.xlsx")
	if err := os.WriteFile(path, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := WriteFile(path, nil, true); err != nil {
		t.Fatalf("WriteFile with overwrite: %v", err)
	}
	doc, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if rows := readWorkbook(t, doc); len(rows) != 1 {
		t.Errorf("overwritten file should hold the new document, got %d rows", len(rows))
	}
}

func TestWriteFileLeavesNoTempOnError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "primers.xlsx")

	err := WriteFile(path, []types.ExtractionRecord{{Gene: "bad\x02"}}, false)
	var encErr *EncodingError
	if !errors.As(err, &encErr) {
		t.Fatalf("err = %v, want *EncodingError", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("encode failure should write nothing, found %d entries", len(entries))
	}
}

func TestColumnName(t *testing.T) {
	tests := []struct {
		col  int
		want string
	}{
		{0, "A"},
		{1, "B"},
		{25, "Z"},
		{26, "AA"},
		{27, "AB"},
		{51, "AZ"},
		{701, "ZZ"},
		{702, "AAA"},
	}
	for _, tt := range tests {
		if got := columnName(tt.col); got != tt.want {
			t.Errorf("columnName(%d) = %q, want %q", tt.col, got, tt.want)
		}
	}
}

func TestSharedStringsWhitespacePreserve(t *testing.T) {
	s := newSharedStrings()
	s.add(" padded ")
	if !bytes.Contains(s.part(), []byte(`xml:space="preserve"`)) {
		t.Error("leading whitespace should be declared significant")
	}

	s = newSharedStrings()
	s.add("plain")
	if bytes.Contains(s.part(), []byte(`xml:space`)) {
		t.Error("plain value should not carry the preserve attribute")
	}
}
