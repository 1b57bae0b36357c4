package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/pairings-web/internal/storage"
	"github.com/mcoot/pairings-web/internal/storage/storagetest"
)

func openTempStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "pairings.db"))
	require.NoError(t, err)
	return store
}

func TestStoreSuite(t *testing.T) {
	s := &storagetest.Suite{}
	s.Open = func() storage.Storage { return openTempStore(s.T()) }
	suite.Run(t, s)
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open(" ")
	assert.Error(t, err)
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pairings.db")

	first, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, second.Close())
}

func TestUpSection(t *testing.T) {
	content := "-- +migrate Up\nCREATE TABLE a (x INTEGER);\n-- +migrate Down\nDROP TABLE a;\n"
	assert.Equal(t, "\nCREATE TABLE a (x INTEGER);\n", upSection(content))
	assert.Equal(t, "SELECT 1;", upSection("SELECT 1;"))
}
