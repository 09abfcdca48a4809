package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-entities/internal/ingestion"
)

var cleanCmd = &cobra.Command{
	Use:   "clean <file>",
	Short: "Normalize a resume file to plain text",
	Long:  "Normalize a text, markdown or HTML resume to the plain text the extractor reads, and write it with its metadata.",
	Args:  cobra.ExactArgs(1),
	RunE:  runClean,
}

var cleanOutDir string

func init() {
	cleanCmd.Flags().StringVarP(&cleanOutDir, "out", "o", "", "Output directory (required)")

	_ = cleanCmd.MarkFlagRequired("out")

	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	text, metadata, err := ingestion.IngestFromFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to ingest %s: %w", args[0], err)
	}

	name := baseName(args[0])
	if err := ingestion.WriteOutput(cleanOutDir, name, text, metadata); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Cleaned text: %s\n", filepath.Join(cleanOutDir, name+".cleaned.txt"))
	fmt.Fprintf(cmd.OutOrStdout(), "Metadata: %s\n", filepath.Join(cleanOutDir, name+".meta.json"))
	return nil
}

// baseName strips the directory and extension: "in/jane.html" -> "jane".
func baseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
