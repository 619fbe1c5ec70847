package csvfile

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, input string, minFields int) ([][]string, []int, []RowError) {
	t.Helper()
	var rows [][]string
	var lines []int
	skipped, err := Rows(strings.NewReader(input), minFields, func(line int, row []string) error {
		rows = append(rows, row)
		lines = append(lines, line)
		return nil
	})
	require.NoError(t, err)
	return rows, lines, skipped
}

func TestRows_SkipsShortRows(t *testing.T) {
	input := "a,b,c\nOnlyOneField\nd,e,f\n"
	rows, lines, skipped := collect(t, input, 3)

	require.Len(t, rows, 2)
	assert.Equal(t, []string{"a", "b", "c"}, rows[0])
	assert.Equal(t, []string{"d", "e", "f"}, rows[1])
	assert.Equal(t, []int{1, 3}, lines)

	require.Len(t, skipped, 1)
	assert.Equal(t, 2, skipped[0].Line)
	assert.Contains(t, skipped[0].Error(), "expected at least 3 fields, got 1")
}

func TestRows_ExtraFieldsPassThrough(t *testing.T) {
	rows, _, skipped := collect(t, "a,b,c,d\n", 3)
	assert.Empty(t, skipped)
	require.Len(t, rows, 1)
	assert.Len(t, rows[0], 4)
}

func TestRows_BlankLinesIgnored(t *testing.T) {
	rows, _, skipped := collect(t, "a,b\n\n\nc,d\n", 2)
	assert.Empty(t, skipped)
	assert.Len(t, rows, 2)
}

func TestRows_RejectedByCallback(t *testing.T) {
	input := "keep\ndrop\nkeep\n"
	var kept int
	skipped, err := Rows(strings.NewReader(input), 1, func(line int, row []string) error {
		if row[0] == "drop" {
			return errors.New("dropped")
		}
		kept++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, kept)
	require.Len(t, skipped, 1)
	assert.Equal(t, 2, skipped[0].Line)
	assert.EqualError(t, errors.Unwrap(skipped[0]), "dropped")
}

func TestReadFile_MissingCreatesEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "accounts.csv")

	called := false
	skipped, err := ReadFile(path, 1, func(int, []string) error {
		called = true
		return nil
	})
	require.NoError(t, err)
	assert.Empty(t, skipped)
	assert.False(t, called)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Zero(t, info.Size())
}

func TestReadFile_DirectoryIsIOError(t *testing.T) {
	dir := t.TempDir()
	_, err := ReadFile(dir, 1, func(int, []string) error { return nil })
	require.Error(t, err)

	var ioErr *IOError
	assert.True(t, errors.As(err, &ioErr))
}

func TestAppendRow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.csv")

	require.NoError(t, AppendRow(path, []string{"a", "1"}))
	require.NoError(t, AppendRow(path, []string{"b", "2"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a,1\nb,2\n", string(data))
}

func TestAppendRow_QuotesEmbeddedCommas(t *testing.T) {
	path := filepath.Join(t.TempDir(), "accounts.csv")
	require.NoError(t, AppendRow(path, []string{"Smith, J", "x"}))

	var got [][]string
	_, err := ReadFile(path, 2, func(_ int, row []string) error {
		got = append(got, row)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Smith, J", got[0][0])
}

func TestAppendRow_UnwritableIsIOError(t *testing.T) {
	dir := t.TempDir()
	// A directory where the file should be cannot be opened for append.
	path := filepath.Join(dir, "accounts.csv")
	require.NoError(t, os.Mkdir(path, 0o755))

	err := AppendRow(path, []string{"a"})
	require.Error(t, err)

	var ioErr *IOError
	require.True(t, errors.As(err, &ioErr))
	assert.Equal(t, "open", ioErr.Op)
	assert.Equal(t, path, ioErr.Path)

	var pathErr *fs.PathError
	assert.True(t, errors.As(err, &pathErr))
}

func TestRewriteRows_ReplacesContents(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "accounts.csv")
	require.NoError(t, os.WriteFile(path, []byte("old,row\nstale,row\n"), 0o644))

	require.NoError(t, RewriteRows(path, [][]string{{"new", "row"}}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new,row\n", string(data))

	// No temp files left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestRewriteRows_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "accounts.csv")
	require.NoError(t, RewriteRows(path, nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, data)
}
