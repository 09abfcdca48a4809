package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-entities/internal/observability"
	"github.com/jonathan/resume-entities/internal/segmentation"
)

var segmentCmd = &cobra.Command{
	Use:   "segment <file>",
	Short: "Split a resume into typed sections",
	Long:  "Split a resume into sections (header, experience, education, skills, ...) and print them as JSON with their document positions.",
	Args:  cobra.ExactArgs(1),
	RunE:  runSegment,
}

var (
	segmentOut     string
	segmentVerbose bool
)

func init() {
	segmentCmd.Flags().StringVarP(&segmentOut, "out", "o", "", "Write JSON to this file instead of stdout")
	segmentCmd.Flags().BoolVarP(&segmentVerbose, "verbose", "v", false, "Print a section summary to stderr")

	rootCmd.AddCommand(segmentCmd)
}

func runSegment(cmd *cobra.Command, args []string) error {
	text, _, err := readDocument(args[0])
	if err != nil {
		return err
	}

	sections := segmentation.New(appConfig.SegmentationOptions()).Segment(text)
	for _, s := range sections {
		collector.ObserveSection(string(s.Type))
	}

	if segmentVerbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintSections(sections)
	}
	return writeOutput(segmentOut, cmd.OutOrStdout(), sections)
}
