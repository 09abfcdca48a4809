package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-entities/internal/feedback"
	"github.com/jonathan/resume-entities/internal/observability"
	"github.com/jonathan/resume-entities/internal/schemas"
	"github.com/jonathan/resume-entities/internal/types"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check that rewritten text preserves a resume's critical entities",
	Long: "Compare candidate text against the critical entities of an original resume. The original is either a file " +
		"(--original) or a stored extraction (--document-id, optionally --version). Exits non-zero when critical " +
		"details are missing.",
	Args: cobra.NoArgs,
	RunE: runVerify,
}

var errNotPreserved = errors.New("critical details were not preserved")

var (
	verifyOriginal   string
	verifyCandidate  string
	verifyDocumentID string
	verifyVersion    int
	verifyOut        string
	verifyVerbose    bool
	verifyValidate   bool
)

func init() {
	verifyCmd.Flags().StringVar(&verifyOriginal, "original", "", "Path to the original resume")
	verifyCmd.Flags().StringVar(&verifyCandidate, "candidate", "", "Path to the rewritten text (required)")
	verifyCmd.Flags().StringVarP(&verifyDocumentID, "document-id", "d", "", "Verify against the stored extraction of this document")
	verifyCmd.Flags().IntVar(&verifyVersion, "version", 0, "Stored version to verify against (0 = latest)")
	verifyCmd.Flags().StringVarP(&verifyOut, "out", "o", "", "Write JSON to this file instead of stdout")
	verifyCmd.Flags().BoolVarP(&verifyVerbose, "verbose", "v", false, "Print the verdict to stderr")
	verifyCmd.Flags().BoolVar(&verifyValidate, "validate", false, "Validate the result against the bundled JSON schema")

	_ = verifyCmd.MarkFlagRequired("candidate")

	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, _ []string) error {
	if verifyOriginal == "" && verifyDocumentID == "" {
		return fmt.Errorf("either --original or --document-id must be provided")
	}
	if verifyOriginal != "" && verifyDocumentID != "" {
		return fmt.Errorf("--original and --document-id are mutually exclusive; provide only one")
	}
	if verifyVersion < 0 {
		return fmt.Errorf("--version must be non-negative")
	}

	candidate, _, err := readDocument(verifyCandidate)
	if err != nil {
		return fmt.Errorf("failed to read candidate: %w", err)
	}

	var out any
	var result *types.VerificationResult
	if verifyOriginal != "" {
		original, _, err := readDocument(verifyOriginal)
		if err != nil {
			return fmt.Errorf("failed to read original: %w", err)
		}
		data := newPipeline().ExtractEntities(original)
		result = newVerifier().Verify(data.Entities, candidate)
		out = result
	} else {
		store, closeStore, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer closeStore()

		res, err := newService(store).Verify(cmd.Context(), &feedback.VerifyRequest{
			DocumentID: verifyDocumentID,
			Version:    verifyVersion,
			Candidate:  candidate,
		})
		if errors.Is(err, feedback.ErrNoBaseline) {
			return fmt.Errorf("no stored extraction to verify against, run ingest first: %w", err)
		}
		if err != nil {
			return err
		}
		result = res.Result
		out = res
	}

	if verifyVerbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintVerification(result)
	}
	if verifyValidate {
		if err := schemas.ValidateValue(schemas.VerificationResult, result); err != nil {
			return fmt.Errorf("verification result failed schema validation: %w", err)
		}
	}

	if err := writeOutput(verifyOut, cmd.OutOrStdout(), out); err != nil {
		return err
	}
	if !result.Preserved {
		return fmt.Errorf("%w: %s", errNotPreserved, result.Summary())
	}
	return nil
}
