package extract

import (
	"context"
	"fmt"
	"testing"

	"github.com/pdiddy/primer-crawler/pkg/types"
)

func TestExtractFullRecord(t *testing.T) {
	e := testEngine(0)
	article := types.ArticleRecord{
		ID:        "PMC1234567",
		SourceURL: "https://pmc.ncbi.nlm.nih.gov/articles/PMC1234567/",
		RawText:   "IL-11 forward: ACGTACGTAC reverse: TTGCATGCAT, successfully amplified product",
	}

	rec := e.Extract(article)
	if rec.ID != article.ID {
		t.Errorf("ID = %q, want %q", rec.ID, article.ID)
	}
	if rec.SourceURL != article.SourceURL {
		t.Errorf("SourceURL = %q, want %q", rec.SourceURL, article.SourceURL)
	}
	if rec.Gene != "IL11" {
		t.Errorf("Gene = %q, want IL11", rec.Gene)
	}
	if rec.Primers.Forward != "ACGTACGTAC" || rec.Primers.Reverse != "TTGCATGCAT" {
		t.Errorf("Primers = %+v", rec.Primers)
	}
	if !rec.SuccessEvidence {
		t.Error("SuccessEvidence = false, want true")
	}
}

func TestExtractNoMention(t *testing.T) {
	e := testEngine(0)
	rec := e.Extract(types.ArticleRecord{
		ID:      "PMC1",
		RawText: "GAPDH forward ACGTACGTAC was validated",
	})
	if !rec.Primers.IsEmpty() || rec.SuccessEvidence {
		t.Errorf("article without a target mention should yield empty results, got %+v", rec)
	}
}

func TestExtractEmptyText(t *testing.T) {
	e := testEngine(0)
	rec := e.Extract(types.ArticleRecord{ID: "PMC2", SourceURL: "u", RawText: "   \n"})
	if rec.ID != "PMC2" || rec.SourceURL != "u" {
		t.Errorf("identity fields must survive unusable text, got %+v", rec)
	}
	if !rec.Primers.IsEmpty() || rec.SuccessEvidence {
		t.Errorf("unusable text should yield empty results, got %+v", rec)
	}
}

func TestExtractIgnoresReferencesSection(t *testing.T) {
	e := testEngine(0)
	rec := e.Extract(types.ArticleRecord{
		ID:      "PMC3",
		RawText: "The assay used standard probes.\nReferences\n1. IL11 forward ACGTACGTAC validated",
	})
	if !rec.Primers.IsEmpty() || rec.SuccessEvidence {
		t.Errorf("citation-only mentions should be ignored, got %+v", rec)
	}
}

func TestExtractUsesGeneLabel(t *testing.T) {
	e := NewEngine(types.ExtractConfig{
		TargetGene: "interleukin 11",
		GeneLabel:  "IL11",
	})
	rec := e.Extract(types.ArticleRecord{ID: "PMC4", RawText: "interleukin 11 primer ACGTACGTAC"})
	if rec.Gene != "IL11" {
		t.Errorf("Gene = %q, want label IL11", rec.Gene)
	}
	if rec.Primers.Forward != "ACGTACGTAC" {
		t.Errorf("Forward = %q, want ACGTACGTAC", rec.Primers.Forward)
	}
}

func TestStripReferences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"heading present", "body text\nReferences\ncitations", "body text\n"},
		{"case insensitive", "body\nREFERENCES\nmore", "body\n"},
		{"no heading", "plain body", "plain body"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripReferences(tt.in); got != tt.want {
				t.Errorf("StripReferences(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestExtractAllPreservesOrder(t *testing.T) {
	var articles []types.ArticleRecord
	for i := 0; i < 12; i++ {
		articles = append(articles, types.ArticleRecord{
			ID:      fmt.Sprintf("PMC%d", i),
			RawText: fmt.Sprintf("IL11 forward: ACGTACGTAC reverse: TTGCATGCA%c", 'A'+byte(i%4)),
		})
	}

	records, err := ExtractAll(context.Background(), articles, types.ExtractConfig{TargetGene: "IL11", Workers: 4})
	if err != nil {
		t.Fatalf("ExtractAll: %v", err)
	}
	if len(records) != len(articles) {
		t.Fatalf("len(records) = %d, want %d", len(records), len(articles))
	}
	for i, rec := range records {
		if rec.ID != articles[i].ID {
			t.Errorf("records[%d].ID = %q, want %q", i, rec.ID, articles[i].ID)
		}
		if rec.Primers.Forward != "ACGTACGTAC" {
			t.Errorf("records[%d].Forward = %q", i, rec.Primers.Forward)
		}
	}
}

func TestExtractAllEmptyInput(t *testing.T) {
	records, err := ExtractAll(context.Background(), nil, types.ExtractConfig{})
	if err != nil {
		t.Fatalf("ExtractAll: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("len(records) = %d, want 0", len(records))
	}
}

func TestExtractAllCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	articles := []types.ArticleRecord{{ID: "PMC1", RawText: "IL11 ACGTACGTAC"}}
	_, err := ExtractAll(ctx, articles, types.ExtractConfig{})
	if err == nil {
		t.Fatal("expected a cancellation error")
	}
}
