// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"encoding/json"
	"fmt"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/primer-crawler/pkg/types"
)

// ExportEntry holds one record of a run export.
type ExportEntry struct {
	PMCID           string `json:"pmcid" yaml:"pmcid"`
	URL             string `json:"url" yaml:"url"`
	Gene            string `json:"gene" yaml:"gene"`
	Forward         string `json:"forward,omitempty" yaml:"forward,omitempty"`
	Reverse         string `json:"reverse,omitempty" yaml:"reverse,omitempty"`
	SuccessEvidence bool   `json:"success_evidence" yaml:"success_evidence"`
}

// ExportYAML renders a stored run as YAML.
func (s *Store) ExportYAML(ctx context.Context, runID string) ([]byte, error) {
	entries, err := s.exportEntries(ctx, runID)
	if err != nil {
		return nil, err
	}
	data, err := yaml.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("marshaling YAML: %w", err)
	}
	return data, nil
}

// ExportJSON renders a stored run as indented JSON.
func (s *Store) ExportJSON(ctx context.Context, runID string) ([]byte, error) {
	entries, err := s.exportEntries(ctx, runID)
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return data, nil
}

func (s *Store) exportEntries(ctx context.Context, runID string) ([]ExportEntry, error) {
	records, err := s.RunRecords(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}
	entries := make([]ExportEntry, len(records))
	for i, rec := range records {
		entries[i] = exportEntry(rec)
	}
	return entries, nil
}

func exportEntry(rec types.ExtractionRecord) ExportEntry {
	return ExportEntry{
		PMCID:           rec.ID,
		URL:             rec.SourceURL,
		Gene:            rec.Gene,
		Forward:         rec.Primers.Forward,
		Reverse:         rec.Primers.Reverse,
		SuccessEvidence: rec.SuccessEvidence,
	}
}
