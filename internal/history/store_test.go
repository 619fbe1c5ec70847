package history

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fintrack-dev/fintrack/internal/csvfile"
)

func TestLoad_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)

	got, err := NewFileStore(path).Load()
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = os.Stat(path)
	assert.NoError(t, err, "loading should create an empty history")
}

func TestAppendThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", FileName)
	store := NewFileStore(path)

	for day := 1; day <= 3; day++ {
		require.NoError(t, store.Append(sampleSummary(day)))
	}

	got, err := store.Load()
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i := range got {
		assertSameSummary(t, sampleSummary(i+1), got[i])
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(string(data), "\n"), "one line per snapshot")
}

func TestAppend_IOError(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.Mkdir(path, 0o755))

	err := NewFileStore(path).Append(sampleSummary(1))
	require.Error(t, err)

	var ioErr *csvfile.IOError
	assert.True(t, errors.As(err, &ioErr))
}
