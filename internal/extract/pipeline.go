// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract locates gene-linked primer sequences and success
// language inside unstructured article text.
package extract

import (
	"context"
	"regexp"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/primer-crawler/pkg/types"
)

// Tunable defaults for the windowing constants. Neither radius is
// semantically load-bearing; both can be overridden via ExtractConfig.
const (
	defaultWindowRadius  = 300
	defaultSuccessRadius = 160
)

// Engine holds the compiled patterns and windowing parameters for one
// extraction configuration. Methods are pure functions over their inputs
// and safe for concurrent use.
type Engine struct {
	gene          *regexp.Regexp
	label         string
	windowRadius  int
	successRadius int
	successTerms  []string
}

// NewEngine builds an Engine from the configuration, applying defaults for
// unset fields. The success vocabulary is lowercased once here.
func NewEngine(cfg types.ExtractConfig) *Engine {
	target := strings.TrimSpace(cfg.TargetGene)
	if target == "" {
		target = types.DefaultGene
	}
	label := strings.TrimSpace(cfg.GeneLabel)
	if label == "" {
		label = target
	}

	e := &Engine{
		gene:          genePattern(target),
		label:         label,
		windowRadius:  cfg.WindowRadius,
		successRadius: cfg.SuccessRadius,
	}
	if e.windowRadius <= 0 {
		e.windowRadius = defaultWindowRadius
	}
	if e.successRadius <= 0 {
		e.successRadius = defaultSuccessRadius
	}

	terms := cfg.SuccessTerms
	if len(terms) == 0 {
		terms = defaultSuccessTerms
	}
	e.successTerms = make([]string, len(terms))
	for i, t := range terms {
		e.successTerms[i] = strings.ToLower(t)
	}
	return e
}

// Label returns the gene label written to extraction records.
func (e *Engine) Label() string { return e.label }

// MentionsGene reports whether the text contains any accepted surface form
// of the target gene.
func (e *Engine) MentionsGene(text string) bool {
	return e.gene.MatchString(text)
}

// StripReferences returns the text up to the first "references" heading so
// that citation-only gene hits do not count as mentions.
func StripReferences(text string) string {
	if i := strings.Index(strings.ToLower(text), "references"); i >= 0 {
		return text[:i]
	}
	return text
}

// Extract produces the extraction record for one article. It always
// returns a record: unusable text (empty, whitespace-only) yields a record
// with empty primers and no success evidence rather than an error, so one
// bad article never aborts a crawl. The input is not mutated.
func (e *Engine) Extract(article types.ArticleRecord) types.ExtractionRecord {
	rec := types.ExtractionRecord{
		ID:        article.ID,
		Gene:      e.label,
		SourceURL: article.SourceURL,
	}

	body := StripReferences(article.RawText)
	if strings.TrimSpace(body) == "" {
		return rec
	}

	rec.Primers = e.FindPrimers(body)
	rec.SuccessEvidence = e.DetectSuccess(body)
	return rec
}

// ExtractAll runs Extract over every article with bounded concurrency.
// Results are collected by input position, so the returned slice preserves
// article order regardless of completion order. The only error is a
// cancelled context; records completed before cancellation are returned.
func ExtractAll(ctx context.Context, articles []types.ArticleRecord, cfg types.ExtractConfig) ([]types.ExtractionRecord, error) {
	e := NewEngine(cfg)
	records := make([]types.ExtractionRecord, len(articles))

	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, article := range articles {
		i, article := i, article
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			records[i] = e.Extract(article)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return records, err
	}
	return records, nil
}
