// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pmc

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/pdiddy/primer-crawler/pkg/types"
)

// FetchArticle retrieves the full-text XML for one article via efetch and
// returns it as an ArticleRecord with the body flattened to plain text.
func FetchArticle(ctx context.Context, client *http.Client, pmcid string, cfg types.SearchConfig) (types.ArticleRecord, error) {
	record := types.ArticleRecord{ID: pmcid, SourceURL: ArticleURL(pmcid)}

	params := url.Values{
		"db":      {"pmc"},
		"id":      {pmcid},
		"retmode": {"xml"},
	}
	addCourtesyParams(params, cfg)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, efetchBase+"?"+params.Encode(), nil)
	if err != nil {
		return record, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return record, fmt.Errorf("efetch request for %s: %w", pmcid, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return record, fmt.Errorf("efetch for %s returned HTTP %d", pmcid, resp.StatusCode)
	}

	text, err := flattenXML(resp.Body)
	if err != nil {
		return record, fmt.Errorf("parsing article XML for %s: %w", pmcid, err)
	}
	record.RawText = text
	return record, nil
}

// flattenXML concatenates every character-data node in the document,
// separated by single spaces. Markup structure is deliberately discarded:
// the extraction engine works on flat prose.
func flattenXML(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)
	// JATS article XML carries DTD entities the strict decoder rejects.
	dec.Strict = false
	dec.AutoClose = xml.HTMLAutoClose
	dec.Entity = xml.HTMLEntity

	var parts []string
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		if cd, ok := tok.(xml.CharData); ok {
			if s := string(cd); strings.TrimSpace(s) != "" {
				parts = append(parts, strings.TrimSpace(s))
			}
		}
	}
	return strings.Join(parts, " "), nil
}
