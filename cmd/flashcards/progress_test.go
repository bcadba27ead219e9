package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressCommands(t *testing.T) {
	cfgPath, _ := setupConfigFile(t)

	tests := []struct {
		name    string
		args    []string
		want    []string
		wantErr string
	}{
		{
			name: "show defaults",
			args: []string{"progress", "show"},
			want: []string{"Reviewed today: 0 / 10", "Remaining: 10"},
		},
		{
			name: "set the limit",
			args: []string{"progress", "limit", "5"},
			want: []string{"Reviewed today: 0 / 5"},
		},
		{
			name: "limit is persisted",
			args: []string{"progress", "show"},
			want: []string{"Reviewed today: 0 / 5", "Remaining: 5"},
		},
		{
			name: "limit below 1 is raised to 1",
			args: []string{"progress", "limit", "0"},
			want: []string{"Reviewed today: 0 / 1"},
		},
		{
			name: "reset",
			args: []string{"progress", "reset"},
			want: []string{"Reviewed today: 0 / 1"},
		},
		{
			name:    "invalid limit",
			args:    []string{"progress", "limit", "many"},
			wantErr: `invalid limit "many"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := executeCommand(t, cfgPath, tt.args...)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			for _, want := range tt.want {
				assert.Contains(t, out, want)
			}
		})
	}
}
