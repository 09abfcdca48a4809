package main

import (
	"github.com/spf13/cobra"
)

var versionsCmd = &cobra.Command{
	Use:   "versions",
	Short: "List the stored versions of a document",
	Args:  cobra.NoArgs,
	RunE:  runVersions,
}

var criticalCmd = &cobra.Command{
	Use:   "critical",
	Short: "Print the critical entities a rewrite of a stored document must preserve",
	Args:  cobra.NoArgs,
	RunE:  runCritical,
}

var (
	recordDocumentID string
	recordVersion    int
)

func init() {
	for _, c := range []*cobra.Command{versionsCmd, criticalCmd} {
		c.Flags().StringVarP(&recordDocumentID, "document-id", "d", "", "Document ID (required)")
		_ = c.MarkFlagRequired("document-id")
		rootCmd.AddCommand(c)
	}
	criticalCmd.Flags().IntVar(&recordVersion, "version", 0, "Stored version (0 = latest)")
}

func runVersions(cmd *cobra.Command, _ []string) error {
	store, closeStore, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer closeStore()

	versions, err := store.ListVersions(cmd.Context(), recordDocumentID)
	if err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), map[string]any{
		"documentId": recordDocumentID,
		"versions":   versions,
	})
}

func runCritical(cmd *cobra.Command, _ []string) error {
	store, closeStore, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer closeStore()

	entities, err := newService(store).CriticalEntities(cmd.Context(), recordDocumentID, recordVersion)
	if err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), entities)
}
