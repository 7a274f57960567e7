// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/primer-crawler/internal/store"
	"github.com/pdiddy/primer-crawler/internal/xlsx"
	"github.com/pdiddy/primer-crawler/pkg/types"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Manage the crawl run database (list, records, export)",
	Long: `Runs manages the SQLite database of past crawls recorded with
"crawl --store". Use subcommands to list runs, show a run's records, or
re-export a run as YAML, JSON, or a spreadsheet.`,
}

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored crawl runs",
	RunE:  runRunsList,
}

var runsRecordsCmd = &cobra.Command{
	Use:   "records [run-id]",
	Short: "Show the extraction records of a run",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunsRecords,
}

var runsExportCmd = &cobra.Command{
	Use:   "export [run-id]",
	Short: "Export a stored run as YAML, JSON, or a spreadsheet",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunsExport,
}

func init() {
	runsCmd.PersistentFlags().String("store-path", "", "run database path (default: primer-crawler.db)")

	runsExportCmd.Flags().String("format", "yaml", "export format: yaml, json, or xlsx")
	runsExportCmd.Flags().StringP("out", "o", "", "output file (default: stdout; required for xlsx)")
	runsExportCmd.Flags().Bool("overwrite", false, "allow overwriting an existing spreadsheet")

	runsCmd.AddCommand(runsListCmd)
	runsCmd.AddCommand(runsRecordsCmd)
	runsCmd.AddCommand(runsExportCmd)

	rootCmd.AddCommand(runsCmd)
}

func openStore(cmd *cobra.Command) (*store.Store, error) {
	path, _ := cmd.Flags().GetString("store-path")
	if path == "" {
		path = viper.GetString("store.path")
	}
	return store.Open(types.StoreConfig{Path: path})
}

func runRunsList(cmd *cobra.Command, args []string) error {
	s, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	runs, err := s.ListRuns(cmd.Context())
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No stored runs.")
		return nil
	}

	fmt.Printf("%-36s  %-20s  %-8s  %-8s  %-7s  %s\n",
		"ID", "Started", "Gene", "Articles", "Primers", "Query")
	fmt.Println(strings.Repeat("-", 110))
	for _, r := range runs {
		query := r.Query
		if len(query) > 30 {
			query = query[:27] + "..."
		}
		fmt.Printf("%-36s  %-20s  %-8s  %-8d  %-7d  %s\n",
			r.ID, r.Started.Format(time.DateTime), r.Gene, r.Articles, r.WithPrimers, query)
	}
	return nil
}

func runRunsRecords(cmd *cobra.Command, args []string) error {
	s, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	data, err := s.ExportJSON(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func runRunsExport(cmd *cobra.Command, args []string) error {
	s, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	format, _ := cmd.Flags().GetString("format")
	out, _ := cmd.Flags().GetString("out")

	if format == "xlsx" {
		if out == "" {
			return fmt.Errorf("xlsx export requires --out")
		}
		records, err := s.RunRecords(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		overwrite, _ := cmd.Flags().GetBool("overwrite")
		if err := xlsx.WriteFile(out, records, overwrite); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "wrote %d row(s) to %s\n", len(records), out)
		return nil
	}

	var data []byte
	switch format {
	case "yaml", "":
		data, err = s.ExportYAML(cmd.Context(), args[0])
	case "json":
		data, err = s.ExportJSON(cmd.Context(), args[0])
	default:
		return fmt.Errorf("unsupported format %q: use yaml, json, or xlsx", format)
	}
	if err != nil {
		return err
	}

	if out == "" {
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	fmt.Fprintf(os.Stderr, "exported run to %s\n", out)
	return nil
}
