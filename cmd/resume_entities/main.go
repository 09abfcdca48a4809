// Package main provides the resume_entities command line tool.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resume_entities",
	Short: "Resume segmentation, entity extraction and preservation checks",
	Long: "resume_entities splits resumes into sections, extracts typed entities (names, companies, titles, dates, " +
		"degrees, metrics and more) with document positions, and verifies that rewritten text still carries the " +
		"critical details of the original.",
	SilenceUsage:       true,
	SilenceErrors:      true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: dumpMetrics,
}

var (
	configPath   string
	logLevel     string
	logFormat    string
	printMetrics bool
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a JSON or YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (overrides config): debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format (overrides config): json or pretty")
	rootCmd.PersistentFlags().BoolVar(&printMetrics, "metrics", false, "Print Prometheus counters to stderr when the command finishes")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
