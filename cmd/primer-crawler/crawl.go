// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/primer-crawler/internal/crawl"
	"github.com/pdiddy/primer-crawler/internal/httputil"
	"github.com/pdiddy/primer-crawler/internal/store"
	"github.com/pdiddy/primer-crawler/internal/xlsx"
	"github.com/pdiddy/primer-crawler/pkg/types"
)

const defaultUserAgent = "primer-crawler/0.1"

var crawlCmd = &cobra.Command{
	Use:   "crawl [query...]",
	Short: "Search PMC, extract primers, and export a spreadsheet",
	Long: `Crawl runs the full pipeline: search PubMed Central for the query, fetch
each article's full text, extract gene-linked primer sequences and success
language, and write the findings to an .xlsx spreadsheet.

A positional query overrides the default IL11 search. Example:

  primer-crawler crawl EGR1 human "(PCR OR qPCR)" primer --target-gene EGR1`,
	RunE: runCrawl,
}

func init() {
	crawlCmd.Flags().StringP("target-gene", "t", "", "gene name to search around in article text (default: first query token)")
	crawlCmd.Flags().StringP("gene", "g", "", "gene label for the first spreadsheet column (default: target gene)")
	crawlCmd.Flags().IntP("article-limit", "n", types.DefaultArticleLimit, "number of PMC articles to process")
	crawlCmd.Flags().Int("page", 0, "zero-based page of search results to fetch")
	crawlCmd.Flags().Int("page-size", types.DefaultPageSize, "number of PMC IDs to request per page")
	crawlCmd.Flags().StringP("excel", "x", "", "path for the spreadsheet (default: primers.xlsx)")
	crawlCmd.Flags().Bool("overwrite", false, "allow overwriting an existing spreadsheet")
	crawlCmd.Flags().Bool("all-records", false, "export every record, not only those with primers")
	crawlCmd.Flags().String("save", "", "save the crawl report to a YAML file")
	crawlCmd.Flags().Bool("skip-json", false, "suppress printing the raw crawl records to stdout")
	crawlCmd.Flags().Bool("store", false, "record the crawl in the run database")
	crawlCmd.Flags().String("store-path", "", "run database path (default: primer-crawler.db)")
	crawlCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 15s)")
	crawlCmd.Flags().Int("workers", 4, "concurrent extraction workers")

	rootCmd.AddCommand(crawlCmd)
}

// pipelineConfig assembles the crawl configuration from flags, the viper
// config file, loaded secrets, and built-in defaults, in that order.
func pipelineConfig(cmd *cobra.Command, args []string) types.PipelineConfig {
	query := strings.TrimSpace(strings.Join(args, " "))
	if query == "" {
		query = viper.GetString("search.query")
	}
	if query == "" {
		query = types.DefaultQuery
	}

	targetGene, _ := cmd.Flags().GetString("target-gene")
	if targetGene == "" {
		targetGene = inferGeneLabel(query)
	}
	geneLabel, _ := cmd.Flags().GetString("gene")
	if geneLabel == "" {
		geneLabel = targetGene
	}

	timeout, _ := cmd.Flags().GetDuration("timeout")
	limit, _ := cmd.Flags().GetInt("article-limit")
	page, _ := cmd.Flags().GetInt("page")
	pageSize, _ := cmd.Flags().GetInt("page-size")
	workers, _ := cmd.Flags().GetInt("workers")

	excel, _ := cmd.Flags().GetString("excel")
	if excel == "" {
		excel = viper.GetString("export.path")
	}
	if excel == "" {
		excel = types.DefaultExcelPath
	}
	overwrite, _ := cmd.Flags().GetBool("overwrite")
	includeAll, _ := cmd.Flags().GetBool("all-records")

	storePath, _ := cmd.Flags().GetString("store-path")
	if storePath == "" {
		storePath = viper.GetString("store.path")
	}

	return types.PipelineConfig{
		Search: types.SearchConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   timeout,
				UserAgent: defaultUserAgent,
			},
			Query:        query,
			ArticleLimit: limit,
			Page:         page,
			PageSize:     pageSize,
			APIKey:       secretDefault("ncbi-api-key", ""),
			Email:        secretDefault("ncbi-email", ""),
		},
		Extract: types.ExtractConfig{
			TargetGene: targetGene,
			GeneLabel:  geneLabel,
			Workers:    workers,
		},
		Export: types.ExportConfig{
			Path:       excel,
			Overwrite:  overwrite,
			IncludeAll: includeAll,
		},
		Store: types.StoreConfig{Path: storePath},
	}
}

// inferGeneLabel pulls a gene label from the first query token.
func inferGeneLabel(query string) string {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return types.DefaultGene
	}
	return fields[0]
}

func runCrawl(cmd *cobra.Command, args []string) error {
	cfg := pipelineConfig(cmd, args)
	client := httputil.NewClient(cfg.Search.HTTPConfig)

	report, err := crawl.Crawl(cmd.Context(), client, cfg, os.Stderr)
	if err != nil {
		return err
	}

	if savePath, _ := cmd.Flags().GetString("save"); savePath != "" {
		if err := crawl.WriteReport(savePath, report); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "saved report to %s\n", savePath)
	}

	if useStore, _ := cmd.Flags().GetBool("store"); useStore {
		if err := storeRun(cmd, cfg, report); err != nil {
			return err
		}
	}

	if err := exportSpreadsheet(report, cfg.Export); err != nil {
		return err
	}

	if skipJSON, _ := cmd.Flags().GetBool("skip-json"); !skipJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report.Records); err != nil {
			return fmt.Errorf("encoding records: %w", err)
		}
	}
	return nil
}

func storeRun(cmd *cobra.Command, cfg types.PipelineConfig, report crawl.Report) error {
	s, err := store.Open(cfg.Store)
	if err != nil {
		return err
	}
	defer s.Close()

	runID, err := s.SaveRun(cmd.Context(), report)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "stored run %s\n", runID)
	return nil
}

// exportSpreadsheet writes the primer table. With nothing to export the
// spreadsheet is skipped, matching the behavior users expect from an
// empty crawl.
func exportSpreadsheet(report crawl.Report, cfg types.ExportConfig) error {
	rows := report.Records
	if !cfg.IncludeAll {
		rows = crawl.WithPrimers(rows)
	}
	if len(rows) == 0 {
		fmt.Fprintln(os.Stderr, "no primer sequences found; spreadsheet export skipped")
		return nil
	}

	if err := xlsx.WriteFile(cfg.Path, rows, cfg.Overwrite); err != nil {
		if errors.Is(err, xlsx.ErrPathExists) {
			return fmt.Errorf("%w (use --overwrite to replace it)", err)
		}
		return err
	}
	fmt.Fprintf(os.Stderr, "wrote %d row(s) to %s\n", len(rows), cfg.Path)
	return nil
}
