package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-entities/internal/extraction"
	"github.com/jonathan/resume-entities/internal/ingestion"
	"github.com/jonathan/resume-entities/internal/schemas"
)

var batchCmd = &cobra.Command{
	Use:   "batch <dir>",
	Short: "Extract every resume in a directory",
	Long: "Extract entities from every .txt, .md and .html resume in a directory, writing <name>.entities.json " +
		"files to --out. Files are processed in parallel; one failing file does not stop the others.",
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

var (
	batchOutDir   string
	batchParallel int
	batchValidate bool
)

func init() {
	batchCmd.Flags().StringVarP(&batchOutDir, "out", "o", "", "Output directory (required)")
	batchCmd.Flags().IntVarP(&batchParallel, "parallel", "p", 4, "Maximum files processed at once")
	batchCmd.Flags().BoolVar(&batchValidate, "validate", false, "Validate each output against the bundled JSON schema")

	_ = batchCmd.MarkFlagRequired("out")

	rootCmd.AddCommand(batchCmd)
}

type batchFailure struct {
	File  string `json:"file"`
	Error string `json:"error"`
}

type batchSummary struct {
	Processed int            `json:"processed"`
	Succeeded int            `json:"succeeded"`
	Failed    []batchFailure `json:"failed,omitempty"`
}

func runBatch(cmd *cobra.Command, args []string) error {
	if batchParallel < 1 {
		return fmt.Errorf("--parallel must be at least 1")
	}

	files, err := resumeFiles(args[0])
	if err != nil {
		return err
	}

	pipeline := newPipeline()
	summary := batchSummary{Processed: len(files)}
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(batchParallel)
	for _, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			err := extractToFile(pipeline, file, batchOutDir, batchValidate)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				log.Warn().Err(err).Str("file", file).Msg("batch extraction failed")
				summary.Failed = append(summary.Failed, batchFailure{File: file, Error: err.Error()})
				return nil
			}
			summary.Succeeded++
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	sort.Slice(summary.Failed, func(i, j int) bool { return summary.Failed[i].File < summary.Failed[j].File })
	if err := writeJSON(cmd.OutOrStdout(), summary); err != nil {
		return err
	}
	if len(summary.Failed) > 0 {
		return fmt.Errorf("%d of %d files failed", len(summary.Failed), summary.Processed)
	}
	return nil
}

// resumeFiles lists the files in dir with a supported extension, sorted by name.
func resumeFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) == "" {
			continue
		}
		if _, err := ingestion.DetectFormat(e.Name()); err != nil {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	return files, nil
}

func extractToFile(pipeline *extraction.Pipeline, path, outDir string, validate bool) error {
	text, _, err := readDocument(path)
	if err != nil {
		return err
	}

	data := pipeline.ExtractEntities(text)
	if validate {
		if err := schemas.ValidateValue(schemas.ExtractedResumeData, data); err != nil {
			return err
		}
	}
	return writeOutput(filepath.Join(outDir, baseName(path)+".entities.json"), nil, data)
}
