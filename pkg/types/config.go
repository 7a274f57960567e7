// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the shared data model and configuration for the
// primer crawler pipeline.
package types

import "time"

// Defaults shared by the CLI and the stage configurations.
const (
	// DefaultQuery is the PMC search used when none is given.
	DefaultQuery = `IL11 human (stomach OR gastric) (PCR OR qPCR) (primer OR "forward primer" OR "reverse primer" OR sequence)`

	// DefaultGene is the gene searched for in article text.
	DefaultGene = "IL11"

	// DefaultPageSize is the number of PMC IDs requested per search page.
	DefaultPageSize = 200

	// DefaultArticleLimit caps the number of articles processed per crawl.
	DefaultArticleLimit = 200

	// DefaultExcelPath is the spreadsheet output path.
	DefaultExcelPath = "primers.xlsx"
)

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "primer-crawler/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SearchConfig holds settings for the PMC search and fetch stage.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// Query is the PMC search term.
	Query string `json:"query" yaml:"query"`

	// ArticleLimit caps how many articles are fetched per crawl.
	ArticleLimit int `json:"article_limit" yaml:"article_limit"`

	// Page is the zero-based results page to fetch.
	Page int `json:"page" yaml:"page"`

	// PageSize is the number of PMC IDs requested per page.
	PageSize int `json:"page_size" yaml:"page_size"`

	// APIKey is an optional NCBI E-utilities key for higher rate limits.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Email is an optional contact address sent with E-utilities requests.
	Email string `json:"email,omitempty" yaml:"email,omitempty"`
}

// ExtractConfig holds settings for the text extraction engine.
type ExtractConfig struct {
	// TargetGene is the gene whose mentions anchor extraction windows.
	TargetGene string `json:"target_gene" yaml:"target_gene"`

	// GeneLabel is the label written to the first spreadsheet column.
	// Defaults to TargetGene.
	GeneLabel string `json:"gene_label" yaml:"gene_label"`

	// WindowRadius is the number of characters scanned around each gene
	// mention for primer sequences.
	WindowRadius int `json:"window_radius" yaml:"window_radius"`

	// SuccessRadius is the number of characters scanned around each gene
	// mention for success vocabulary.
	SuccessRadius int `json:"success_radius" yaml:"success_radius"`

	// SuccessTerms overrides the built-in success vocabulary when non-empty.
	SuccessTerms []string `json:"success_terms,omitempty" yaml:"success_terms,omitempty"`

	// Workers bounds concurrent per-article extraction. Zero means
	// sequential processing.
	Workers int `json:"workers" yaml:"workers"`
}

// ExportConfig holds settings for the spreadsheet export stage.
type ExportConfig struct {
	// Path is the destination for the .xlsx file.
	Path string `json:"path" yaml:"path"`

	// Overwrite allows replacing an existing file at Path.
	Overwrite bool `json:"overwrite" yaml:"overwrite"`

	// IncludeAll exports every record, including those without primers.
	IncludeAll bool `json:"include_all" yaml:"include_all"`
}

// StoreConfig holds settings for the crawl run store.
type StoreConfig struct {
	// Path is the SQLite database file.
	Path string `json:"path" yaml:"path"`
}

// PipelineConfig groups all stage configurations for one crawl.
type PipelineConfig struct {
	Search  SearchConfig  `json:"search" yaml:"search"`
	Extract ExtractConfig `json:"extract" yaml:"extract"`
	Export  ExportConfig  `json:"export" yaml:"export"`
	Store   StoreConfig   `json:"store" yaml:"store"`
}
