package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-entities/internal/feedback"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <file>",
	Short: "Extract a resume and store it as the next version of a document",
	Long: "Extract entities from a resume and store the result as a new version of --document-id in the configured " +
		"store (database_url or sqlite_path). Later rewrites are verified against the stored version.",
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

var (
	ingestDocumentID string
	ingestAnalysis   string
)

func init() {
	ingestCmd.Flags().StringVarP(&ingestDocumentID, "document-id", "d", "", "Document ID (required)")
	ingestCmd.Flags().StringVar(&ingestAnalysis, "analysis", "", "Path to a JSON analysis payload stored with the record")

	_ = ingestCmd.MarkFlagRequired("document-id")

	rootCmd.AddCommand(ingestCmd)
}

type ingestOutput struct {
	DocumentID     string    `json:"documentId"`
	Version        int       `json:"version"`
	RecordID       uuid.UUID `json:"recordId"`
	Sections       int       `json:"sections"`
	Entities       int       `json:"entities"`
	FailedSections []string  `json:"failedSections,omitempty"`
}

func runIngest(cmd *cobra.Command, args []string) error {
	text, _, err := readDocument(args[0])
	if err != nil {
		return err
	}

	var analysis json.RawMessage
	if ingestAnalysis != "" {
		raw, err := os.ReadFile(ingestAnalysis)
		if err != nil {
			return fmt.Errorf("failed to read analysis: %w", err)
		}
		if !json.Valid(raw) {
			return fmt.Errorf("analysis file %s is not valid JSON", ingestAnalysis)
		}
		analysis = raw
	}

	store, closeStore, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer closeStore()

	res, err := newService(store).Ingest(cmd.Context(), &feedback.IngestRequest{
		DocumentID: ingestDocumentID,
		Text:       text,
		Analysis:   analysis,
	})
	if err != nil {
		return err
	}

	out := ingestOutput{
		DocumentID: res.Record.DocumentID,
		Version:    res.Record.Version,
		RecordID:   res.Record.ID,
		Sections:   len(res.Record.Data.Sections),
		Entities:   len(res.Record.Data.Entities),
	}
	for _, f := range res.Failures {
		out.FailedSections = append(out.FailedSections, f.SectionID)
	}
	return writeJSON(cmd.OutOrStdout(), out)
}
