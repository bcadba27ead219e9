package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/flashcards/internal/export"
)

var exportedPathPattern = regexp.MustCompile(`Exported (\d+) cards to (\S+)`)

func TestExportCommands(t *testing.T) {
	cfgPath, dataDir := setupConfigFile(t)
	_, err := executeCommand(t, cfgPath, "seed")
	require.NoError(t, err)

	tests := []struct {
		name     string
		args     []string
		wantDir  string
		wantExt  string
		validate func(t *testing.T, path string)
	}{
		{
			name:    "json into the default directory",
			args:    []string{"export", "json"},
			wantDir: filepath.Join(dataDir, "exports"),
			wantExt: ".json",
			validate: func(t *testing.T, path string) {
				contents, err := os.ReadFile(path)
				require.NoError(t, err)
				var doc export.Document
				require.NoError(t, json.Unmarshal(contents, &doc))
				assert.Len(t, doc.Cards, 3)
				assert.Equal(t, appVersion, doc.AppVersion)
			},
		},
		{
			name:    "markdown into the given directory",
			args:    []string{"export", "markdown", "-o", filepath.Join(dataDir, "decks")},
			wantDir: filepath.Join(dataDir, "decks"),
			wantExt: ".md",
			validate: func(t *testing.T, path string) {
				contents, err := os.ReadFile(path)
				require.NoError(t, err)
				assert.Contains(t, string(contents), "# Spanish flashcards")
				assert.Contains(t, string(contents), "## el")
			},
		},
		{
			name:    "pdf",
			args:    []string{"export", "pdf", "--output", filepath.Join(dataDir, "decks")},
			wantDir: filepath.Join(dataDir, "decks"),
			wantExt: ".pdf",
			validate: func(t *testing.T, path string) {
				info, err := os.Stat(path)
				require.NoError(t, err)
				assert.Positive(t, info.Size())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := executeCommand(t, cfgPath, tt.args...)
			require.NoError(t, err)

			match := exportedPathPattern.FindStringSubmatch(out)
			require.Len(t, match, 3, out)
			assert.Equal(t, "3", match[1])
			path := match[2]
			assert.Equal(t, tt.wantDir, filepath.Dir(path))
			assert.Equal(t, tt.wantExt, filepath.Ext(path))
			tt.validate(t, path)
		})
	}
}
