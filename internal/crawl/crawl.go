// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package crawl orchestrates one crawl: PMC search, article fetch,
// per-article extraction, and the machine-readable result surface the
// exporters consume.
package crawl

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pdiddy/primer-crawler/internal/extract"
	"github.com/pdiddy/primer-crawler/internal/pmc"
	"github.com/pdiddy/primer-crawler/pkg/types"
)

// Summary holds the counts for one crawl run.
type Summary struct {
	// Articles is the number of extraction records produced.
	Articles int `json:"articles" yaml:"articles"`

	// WithPrimers counts records carrying at least one primer sequence.
	WithPrimers int `json:"with_primers" yaml:"with_primers"`

	// WithSuccess counts records with success evidence.
	WithSuccess int `json:"with_success" yaml:"with_success"`

	// FetchFailures counts articles whose fetch failed; they still yield
	// empty records.
	FetchFailures int `json:"fetch_failures" yaml:"fetch_failures"`

	// Timestamp records when the crawl finished.
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}

// Report is the complete, ordered result of one crawl. It is the same
// data the spreadsheet encoder consumes, exposed read-only to the CLI,
// the run store, and saved report files.
type Report struct {
	Query   string                   `json:"query" yaml:"query"`
	Gene    string                   `json:"gene" yaml:"gene"`
	Records []types.ExtractionRecord `json:"records" yaml:"records"`
	Summary Summary                  `json:"summary" yaml:"summary"`
}

// Crawl searches PMC, fetches each article, and extracts primer data.
// Records appear in fetch order. Individual fetch failures produce empty
// records and the crawl continues; cancelling ctx stops further fetches
// and returns whatever records exist so a partial crawl can still be
// encoded. Progress lines go to w.
func Crawl(ctx context.Context, client *http.Client, cfg types.PipelineConfig, w io.Writer) (Report, error) {
	engine := extract.NewEngine(cfg.Extract)
	report := Report{Query: cfg.Search.Query, Gene: engine.Label()}

	fmt.Fprintf(w, "searching: %s (page %d, size %d)\n", cfg.Search.Query, cfg.Search.Page, cfg.Search.PageSize)
	ids, err := pmc.Search(ctx, client, cfg.Search)
	if err != nil {
		return report, fmt.Errorf("searching PMC: %w", err)
	}

	limit := cfg.Search.ArticleLimit
	if limit <= 0 {
		limit = types.DefaultArticleLimit
	}
	if len(ids) > limit {
		ids = ids[:limit]
	}
	fmt.Fprintf(w, "found %d PMC IDs, processing %d\n", len(ids), len(ids))

	var articles []types.ArticleRecord
	var summary Summary
	for _, id := range ids {
		if ctx.Err() != nil {
			fmt.Fprintf(w, "cancelled: stopping after %d article(s)\n", len(articles))
			break
		}

		article, err := pmc.FetchArticle(ctx, client, id, cfg.Search)
		if err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", id, err)
			summary.FetchFailures++
			// The record survives with empty derived fields.
		}
		articles = append(articles, article)
	}

	records, extractErr := extract.ExtractAll(ctx, articles, cfg.Extract)
	if extractErr != nil {
		// Cancelled mid-extraction: keep only the completed records.
		records = completed(records)
	}

	for _, rec := range records {
		logRecord(w, engine, rec, articleText(articles, rec.ID))
		if rec.HasPrimers() {
			summary.WithPrimers++
		}
		if rec.SuccessEvidence {
			summary.WithSuccess++
		}
	}
	summary.Articles = len(records)
	summary.Timestamp = time.Now().UTC()

	report.Records = records
	report.Summary = summary
	fmt.Fprintf(w, "\ncrawl summary: %d article(s), %d with primers, %d with success evidence, %d fetch failure(s)\n",
		summary.Articles, summary.WithPrimers, summary.WithSuccess, summary.FetchFailures)
	return report, nil
}

// WithPrimers filters the record sequence down to records that carry at
// least one primer, preserving order. The spreadsheet export uses this by
// default so primer-less articles do not pad the table.
func WithPrimers(records []types.ExtractionRecord) []types.ExtractionRecord {
	var out []types.ExtractionRecord
	for _, rec := range records {
		if rec.HasPrimers() {
			out = append(out, rec)
		}
	}
	return out
}

func logRecord(w io.Writer, engine *extract.Engine, rec types.ExtractionRecord, text string) {
	if text == "" {
		fmt.Fprintf(w, "%s: no article text\n", rec.ID)
		return
	}
	if !engine.MentionsGene(extract.StripReferences(text)) {
		fmt.Fprintf(w, "%s: no %s mention outside references\n", rec.ID, rec.Gene)
		return
	}
	count := 0
	if rec.Primers.Forward != "" {
		count++
	}
	if rec.Primers.Reverse != "" {
		count++
	}
	fmt.Fprintf(w, "%s: %d %s-linked primer sequence(s); success evidence=%v\n",
		rec.ID, count, rec.Gene, rec.SuccessEvidence)
}

func articleText(articles []types.ArticleRecord, id string) string {
	for _, a := range articles {
		if a.ID == id {
			return a.RawText
		}
	}
	return ""
}

func completed(records []types.ExtractionRecord) []types.ExtractionRecord {
	var out []types.ExtractionRecord
	for _, rec := range records {
		if rec.ID != "" {
			out = append(out, rec)
		}
	}
	return out
}
