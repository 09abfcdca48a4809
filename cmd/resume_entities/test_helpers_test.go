package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-entities/internal/config"
)

const sampleResume = `Jane Doe
jane.doe@example.com | (555) 123-4567

EXPERIENCE
Senior Software Engineer at Acme Corp, Jan 2019 - Present
- Increased revenue by 30% through pricing work

EDUCATION
BS Computer Science, State University, 2018

SKILLS
Go, Python, Kubernetes
`

// executeCommand runs the root command in-process. Flag values persist on the package-level
// commands between runs, so every flag is reset to its default first.
func executeCommand(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	t.Setenv(config.EnvDatabaseURL, "")
	t.Setenv(config.EnvLogLevel, "")

	resetFlags(rootCmd)
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)

	err = rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// sqliteConfig writes a config file pointing at a fresh SQLite database.
func sqliteConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	return writeFile(t, dir, "config.yaml", "sqlite_path: "+filepath.Join(dir, "records.db")+"\nlogger:\n  level: warn\n")
}
