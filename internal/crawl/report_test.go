package crawl

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/pdiddy/primer-crawler/pkg/types"
)

func TestReportRoundTrip(t *testing.T) {
	report := Report{
		Query: "IL11 human PCR",
		Gene:  "IL11",
		Records: []types.ExtractionRecord{
			{
				ID:              "PMC1234567",
				Gene:            "IL11",
				SourceURL:       "https://pmc.ncbi.nlm.nih.gov/articles/PMC1234567/",
				Primers:         types.PrimerPair{Forward: "ACGTACGTAC", Reverse: "TTGCATGCAT"},
				SuccessEvidence: true,
			},
			{ID: "PMC7654321", Gene: "IL11"},
		},
		Summary: Summary{
			Articles:    2,
			WithPrimers: 1,
			WithSuccess: 1,
			Timestamp:   time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC),
		},
	}

	path := filepath.Join(t.TempDir(), "report.yaml")
	if err := WriteReport(path, report); err != nil {
		t.Fatalf("WriteReport: %v", err)
	}

	got, err := ReadReport(path)
	if err != nil {
		t.Fatalf("ReadReport: %v", err)
	}

	if got.Query != report.Query || got.Gene != report.Gene {
		t.Errorf("header = %q / %q", got.Query, got.Gene)
	}
	if len(got.Records) != 2 {
		t.Fatalf("len(Records) = %d, want 2", len(got.Records))
	}
	if got.Records[0] != report.Records[0] {
		t.Errorf("Records[0] = %+v, want %+v", got.Records[0], report.Records[0])
	}
	if got.Summary.WithPrimers != 1 {
		t.Errorf("Summary = %+v", got.Summary)
	}
	if !got.Summary.Timestamp.Equal(report.Summary.Timestamp) {
		t.Errorf("Timestamp = %v, want %v", got.Summary.Timestamp, report.Summary.Timestamp)
	}
}

func TestReadReportMissingFile(t *testing.T) {
	if _, err := ReadReport(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
