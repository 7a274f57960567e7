// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pmc queries the NCBI E-utilities API for PubMed Central articles.
package pmc

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pdiddy/primer-crawler/pkg/types"
)

// E-utilities endpoints. Declared as vars so tests can substitute httptest
// servers.
var (
	esearchBase = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/esearch.fcgi"
	efetchBase  = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/efetch.fcgi"
)

const articleURLPrefix = "https://pmc.ncbi.nlm.nih.gov/articles/"

// ArticleURL returns the public article page for a canonical PMC ID.
func ArticleURL(pmcid string) string {
	return articleURLPrefix + pmcid + "/"
}

// esearch XML response.
type esearchResult struct {
	IDs []string `xml:"IdList>Id"`
}

// Search queries PMC via esearch and returns canonical PMC IDs for one
// results page. Paging maps cfg.Page and cfg.PageSize onto the retstart
// and retmax parameters.
func Search(ctx context.Context, client *http.Client, cfg types.SearchConfig) ([]string, error) {
	query := strings.TrimSpace(cfg.Query)
	if query == "" {
		return nil, fmt.Errorf("search query is empty")
	}

	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = types.DefaultPageSize
	}
	retstart := 0
	if cfg.Page > 0 {
		retstart = cfg.Page * pageSize
	}

	params := url.Values{
		"db":       {"pmc"},
		"term":     {query},
		"retmode":  {"xml"},
		"retstart": {strconv.Itoa(retstart)},
		"retmax":   {strconv.Itoa(pageSize)},
	}
	addCourtesyParams(params, cfg)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, esearchBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("esearch request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("esearch returned HTTP %d", resp.StatusCode)
	}

	var result esearchResult
	if err := xml.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("parsing esearch response: %w", err)
	}

	ids := make([]string, 0, len(result.IDs))
	for _, raw := range result.IDs {
		id := strings.TrimSpace(raw)
		if id == "" {
			continue
		}
		if !strings.HasPrefix(id, "PMC") {
			id = "PMC" + id
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// addCourtesyParams attaches the optional NCBI api_key and email
// parameters when configured.
func addCourtesyParams(params url.Values, cfg types.SearchConfig) {
	if cfg.APIKey != "" {
		params.Set("api_key", cfg.APIKey)
	}
	if cfg.Email != "" {
		params.Set("email", cfg.Email)
	}
}
