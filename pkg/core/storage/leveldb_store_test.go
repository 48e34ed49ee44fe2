package storage

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newLevelDBStoreForTesting(t *testing.T) Store {
	ldbDir := t.TempDir()
	opts := LevelDBOptions{
		DataDirectoryPath: ldbDir,
	}
	newLevelStore, err := NewLevelDBStore(opts)
	require.NoError(t, err, "NewLevelDBStore error")
	return newLevelStore
}
