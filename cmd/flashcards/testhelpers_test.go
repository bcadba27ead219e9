package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/flashcards/internal/testutil"
)

// setupConfigFile creates a config file using the file storage and returns it with the data directory.
func setupConfigFile(t *testing.T, opts ...testutil.ConfigOption) (cfgPath string, dataDir string) {
	t.Helper()
	tmpDir := t.TempDir()
	return testutil.SetupTestConfig(t, tmpDir, opts...), testutil.DataDirectory(tmpDir)
}

// setupBrokenConfigFile creates a config file with invalid YAML that causes Load() to fail.
func setupBrokenConfigFile(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("{{invalid yaml content"), 0644))
	return cfgPath
}

// executeCommand runs the root command with the config file and returns its output.
func executeCommand(t *testing.T, cfgPath string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	command := newRootCommand()
	command.SetOut(&out)
	command.SetErr(&out)
	command.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := command.Execute()
	return out.String(), err
}
