package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-entities/internal/observability"
	"github.com/jonathan/resume-entities/internal/schemas"
)

var extractCmd = &cobra.Command{
	Use:   "extract <file>",
	Short: "Extract typed entities from a resume",
	Long:  "Segment a resume and extract typed entities from every section. Output is the extracted resume data as JSON.",
	Args:  cobra.ExactArgs(1),
	RunE:  runExtract,
}

var (
	extractOut      string
	extractVerbose  bool
	extractValidate bool
)

func init() {
	extractCmd.Flags().StringVarP(&extractOut, "out", "o", "", "Write JSON to this file instead of stdout")
	extractCmd.Flags().BoolVarP(&extractVerbose, "verbose", "v", false, "Print sections and entities to stderr")
	extractCmd.Flags().BoolVar(&extractValidate, "validate", false, "Validate the output against the bundled JSON schema")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	text, meta, err := readDocument(args[0])
	if err != nil {
		return err
	}

	result := newPipeline().Run(text)
	data := result.Data

	if extractVerbose {
		p := observability.NewPrinter(cmd.ErrOrStderr())
		p.PrintSections(data.Sections)
		p.PrintEntities(data)
		p.PrintSectionFailures(sectionErrors(result.Failures))
	}

	if extractValidate {
		if err := schemas.ValidateValue(schemas.ExtractedResumeData, data); err != nil {
			return fmt.Errorf("extraction output failed schema validation: %w", err)
		}
	}

	log.Info().
		Str("file", args[0]).
		Str("hash", meta.Hash).
		Int("sections", len(data.Sections)).
		Int("entities", len(data.Entities)).
		Int("failed_sections", len(result.Failures)).
		Msg("extracted entities")

	return writeOutput(extractOut, cmd.OutOrStdout(), data)
}
