// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ArticleRecord is the raw input to extraction: one fetched article with
// its concatenated body text. It is owned by the caller and is never
// mutated by the extraction pipeline.
type ArticleRecord struct {
	// ID is the PMC identifier in canonical form (e.g. "PMC1234567").
	ID string `json:"pmcid" yaml:"pmcid"`

	// SourceURL is the public article URL.
	SourceURL string `json:"url" yaml:"url"`

	// RawText is the article body as plain text. Empty when the fetch
	// failed or the article had no usable body.
	RawText string `json:"-" yaml:"-"`
}

// PrimerPair holds up to two primer sequences found near a gene mention.
// Either field may be empty; an article that mentions only one primer, or
// none, is a normal outcome rather than an error.
type PrimerPair struct {
	// Forward is the forward primer sequence (uppercase A/C/G/T/U/N).
	Forward string `json:"forward,omitempty" yaml:"forward,omitempty"`

	// Reverse is the reverse primer sequence.
	Reverse string `json:"reverse,omitempty" yaml:"reverse,omitempty"`
}

// IsEmpty reports whether neither primer was found.
func (p PrimerPair) IsEmpty() bool {
	return p.Forward == "" && p.Reverse == ""
}

// ExtractionRecord is the per-article extraction result. One record is
// produced for every processed article, in fetch order, and the full
// ordered sequence is what the spreadsheet encoder consumes.
type ExtractionRecord struct {
	// ID is the PMC identifier of the source article.
	ID string `json:"pmcid" yaml:"pmcid"`

	// Gene is the configured gene label for the first spreadsheet column.
	Gene string `json:"gene" yaml:"gene"`

	// SourceURL is the public article URL.
	SourceURL string `json:"url" yaml:"url"`

	// Primers holds the sequences found near the target gene mentions.
	Primers PrimerPair `json:"primers" yaml:"primers"`

	// SuccessEvidence reports whether success/efficacy language was found
	// near a gene mention.
	SuccessEvidence bool `json:"success_evidence" yaml:"success_evidence"`
}

// HasPrimers reports whether at least one primer sequence was extracted.
func (r ExtractionRecord) HasPrimers() bool {
	return !r.Primers.IsEmpty()
}
