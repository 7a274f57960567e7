// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/primer-crawler/internal/httputil"
	"github.com/pdiddy/primer-crawler/internal/pmc"
	"github.com/pdiddy/primer-crawler/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search [query...]",
	Short: "Search PMC and list matching article IDs",
	Long: `Search queries the PMC esearch API and prints the matching PMC IDs with
their article URLs, without fetching article text. Useful for checking how
many articles a query matches before a full crawl.`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().Int("page", 0, "zero-based page of search results to fetch")
	searchCmd.Flags().Int("page-size", types.DefaultPageSize, "number of PMC IDs to request per page")
	searchCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 15s)")
	searchCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.TrimSpace(strings.Join(args, " "))
	if query == "" {
		query = types.DefaultQuery
	}

	timeout, _ := cmd.Flags().GetDuration("timeout")
	page, _ := cmd.Flags().GetInt("page")
	pageSize, _ := cmd.Flags().GetInt("page-size")

	cfg := types.SearchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: defaultUserAgent,
		},
		Query:    query,
		Page:     page,
		PageSize: pageSize,
		APIKey:   secretDefault("ncbi-api-key", ""),
		Email:    secretDefault("ncbi-email", ""),
	}

	client := httputil.NewClient(cfg.HTTPConfig)
	ids, err := pmc.Search(cmd.Context(), client, cfg)
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		type entry struct {
			PMCID string `json:"pmcid"`
			URL   string `json:"url"`
		}
		entries := make([]entry, len(ids))
		for i, id := range ids {
			entries[i] = entry{PMCID: id, URL: pmc.ArticleURL(id)}
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	for _, id := range ids {
		fmt.Printf("%-14s  %s\n", id, pmc.ArticleURL(id))
	}
	fmt.Fprintf(os.Stderr, "\n%d result(s)\n", len(ids))
	return nil
}
