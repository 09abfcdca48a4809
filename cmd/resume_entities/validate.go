package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-entities/internal/schemas"
)

var validateCmd = &cobra.Command{
	Use:   "validate <payload.json>",
	Short: "Validate a JSON payload against a bundled or on-disk JSON schema",
	Long: `Validate an extraction or verification payload written by extract, verify or batch.

--schema takes a bundled schema name (extracted_resume_data, verification_result) or the path
of a .json schema file.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

var validateSchema string

func init() {
	validateCmd.Flags().StringVarP(&validateSchema, "schema", "s", schemas.ExtractedResumeData, "Bundled schema name or schema file path")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	payloadPath := args[0]

	var err error
	if strings.HasSuffix(validateSchema, ".json") {
		err = schemas.ValidateFile(validateSchema, payloadPath)
	} else {
		payload, readErr := os.ReadFile(payloadPath)
		if readErr != nil {
			return fmt.Errorf("failed to read payload: %w", readErr)
		}
		err = schemas.Validate(validateSchema, payload)
	}
	if err != nil {
		return err
	}

	log.Debug().Str("payload", payloadPath).Str("schema", validateSchema).Msg("payload valid")
	fmt.Fprintf(cmd.OutOrStdout(), "✓ %s is valid against %s\n", payloadPath, validateSchema)
	return nil
}
