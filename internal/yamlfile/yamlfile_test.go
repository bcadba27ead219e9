package yamlfile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string   `yaml:"name"`
	Count int      `yaml:"count"`
	Tags  []string `yaml:"tags,omitempty"`
}

func TestWriteAndRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "sample.yml")
	want := sample{Name: "hola", Count: 3, Tags: []string{"greeting"}}

	require.NoError(t, Write(path, want))

	got, err := Read[sample](path)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1, "temporary files must not be left behind")
	assert.Equal(t, "sample.yml", entries[0].Name())
}

func TestWrite_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.yml")

	require.NoError(t, Write(path, sample{Name: "first"}))
	require.NoError(t, Write(path, sample{Name: "second"}))

	got, err := Read[sample](path)
	require.NoError(t, err)
	assert.Equal(t, "second", got.Name)
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "raw", "body.json")

	require.NoError(t, WriteFile(path, []byte(`[{"word":"hola"}]`)))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `[{"word":"hola"}]`, string(got))
}

func TestRead(t *testing.T) {
	tests := []struct {
		name        string
		content     *string
		wantMissing bool
		wantErr     bool
	}{
		{
			name:        "missing file",
			wantMissing: true,
			wantErr:     true,
		},
		{
			name:    "corrupt file",
			content: ptr("name: [unterminated"),
			wantErr: true,
		},
		{
			name:    "valid file",
			content: ptr("name: adiós\ncount: 2\n"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "sample.yml")
			if tt.content != nil {
				require.NoError(t, os.WriteFile(path, []byte(*tt.content), 0o644))
			}

			got, err := Read[sample](path)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantMissing, errors.Is(err, os.ErrNotExist))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, sample{Name: "adiós", Count: 2}, got)
		})
	}
}

func ptr(s string) *string {
	return &s
}
