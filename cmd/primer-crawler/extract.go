// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/primer-crawler/internal/extract"
	"github.com/pdiddy/primer-crawler/pkg/types"
)

var extractCmd = &cobra.Command{
	Use:   "extract [file]",
	Short: "Run the extraction engine over local article text",
	Long: `Extract runs the primer and success-language extraction engine over a
plain-text file (or stdin when the file is "-") and prints the resulting
record as JSON. Useful for tuning the window radius and vocabulary against
a known article.`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringP("target-gene", "t", types.DefaultGene, "gene name to search around in the text")
	extractCmd.Flags().StringP("gene", "g", "", "gene label for the record (default: target gene)")
	extractCmd.Flags().Int("window-radius", 0, "characters scanned around a gene mention for primers")
	extractCmd.Flags().Int("success-radius", 0, "characters scanned around a gene mention for success terms")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	var (
		text []byte
		err  error
		name string
	)
	if args[0] == "-" {
		name = "stdin"
		text, err = io.ReadAll(os.Stdin)
	} else {
		name = filepath.Base(args[0])
		text, err = os.ReadFile(args[0])
	}
	if err != nil {
		return fmt.Errorf("reading article text: %w", err)
	}

	targetGene, _ := cmd.Flags().GetString("target-gene")
	geneLabel, _ := cmd.Flags().GetString("gene")
	windowRadius, _ := cmd.Flags().GetInt("window-radius")
	successRadius, _ := cmd.Flags().GetInt("success-radius")

	engine := extract.NewEngine(types.ExtractConfig{
		TargetGene:    targetGene,
		GeneLabel:     geneLabel,
		WindowRadius:  windowRadius,
		SuccessRadius: successRadius,
	})

	record := engine.Extract(types.ArticleRecord{ID: name, RawText: string(text)})

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(record)
}
