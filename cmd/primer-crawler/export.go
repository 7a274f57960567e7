// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/primer-crawler/internal/crawl"
	"github.com/pdiddy/primer-crawler/internal/xlsx"
	"github.com/pdiddy/primer-crawler/pkg/types"
)

var exportCmd = &cobra.Command{
	Use:   "export [report.yaml]",
	Short: "Re-encode a saved crawl report as a spreadsheet",
	Long: `Export reads a crawl report saved with "crawl --save" and writes its
records to an .xlsx spreadsheet, without touching the network. Records
without primers are skipped unless --all-records is set.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringP("excel", "x", types.DefaultExcelPath, "path for the spreadsheet")
	exportCmd.Flags().Bool("overwrite", false, "allow overwriting an existing spreadsheet")
	exportCmd.Flags().Bool("all-records", false, "export every record, not only those with primers")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	report, err := crawl.ReadReport(args[0])
	if err != nil {
		return err
	}

	excel, _ := cmd.Flags().GetString("excel")
	overwrite, _ := cmd.Flags().GetBool("overwrite")
	includeAll, _ := cmd.Flags().GetBool("all-records")

	rows := report.Records
	if !includeAll {
		rows = crawl.WithPrimers(rows)
	}
	if len(rows) == 0 {
		fmt.Fprintln(os.Stderr, "report has no records with primers; nothing to export")
		return nil
	}

	if err := xlsx.WriteFile(excel, rows, overwrite); err != nil {
		if errors.Is(err, xlsx.ErrPathExists) {
			return fmt.Errorf("%w (use --overwrite to replace it)", err)
		}
		return err
	}
	fmt.Fprintf(os.Stderr, "wrote %d row(s) to %s\n", len(rows), excel)
	return nil
}
