package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStorageDriver_Set(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    storageDriver
		wantErr bool
	}{
		{name: "file", value: "file", want: "file"},
		{name: "mysql", value: "mysql", want: "mysql"},
		{name: "unknown", value: "sqlite", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var driver storageDriver
			err := driver.Set(tt.value)
			if tt.wantErr {
				assert.ErrorContains(t, err, "invalid storage driver")
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, driver)
		})
	}
}

func TestSyncCommand(t *testing.T) {
	cfgPath, _ := setupConfigFile(t)

	t.Run("same storage on both sides", func(t *testing.T) {
		_, err := executeCommand(t, cfgPath, "sync", "--from", "file", "--to", "file")
		assert.ErrorContains(t, err, "--from and --to must be different")
	})

	t.Run("unknown storage", func(t *testing.T) {
		_, err := executeCommand(t, cfgPath, "sync", "--to", "sqlite")
		assert.ErrorContains(t, err, "invalid storage driver: sqlite")
	})

	t.Run("flags", func(t *testing.T) {
		command := newSyncCommand()
		assert.Equal(t, "file", command.Flags().Lookup("from").DefValue)
		assert.Equal(t, "mysql", command.Flags().Lookup("to").DefValue)
		assert.Equal(t, "false", command.Flags().Lookup("dry-run").DefValue)
		assert.Equal(t, "false", command.Flags().Lookup("update-existing").DefValue)
	})
}
