package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "boltdb", cfg.ApplicationConfiguration.DBConfiguration.Type)
	assert.Equal(t, "info", cfg.ApplicationConfiguration.LogLevel)
}

func TestLoad(t *testing.T) {
	data := `
ApplicationConfiguration:
  DBConfiguration:
    Type: "leveldb"
    LevelDBOptions:
      DataDirectoryPath: "/tmp/ftapt/data"
  LogLevel: "debug"
`
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "leveldb", cfg.ApplicationConfiguration.DBConfiguration.Type)
	assert.Equal(t, "/tmp/ftapt/data", cfg.ApplicationConfiguration.DBConfiguration.LevelDBOptions.DataDirectoryPath)
	assert.Equal(t, "debug", cfg.ApplicationConfiguration.LogLevel)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}
