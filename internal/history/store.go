package history

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/fintrack-dev/fintrack/internal/csvfile"
	"github.com/fintrack-dev/fintrack/internal/model"
)

// FileName is the default history file name inside a data directory.
const FileName = "history.csv"

// FileStore persists summary snapshots to an append-only CSV file.
type FileStore struct {
	Path   string
	Logger *slog.Logger
}

// NewFileStore creates a FileStore for path.
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path, Logger: slog.Default()}
}

// Load returns every snapshot in file order. Malformed rows are logged and
// skipped. A missing file is created empty.
func (s *FileStore) Load() ([]model.Summary, error) {
	f, err := os.Open(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, csvfile.Touch(s.Path)
	}
	if err != nil {
		return nil, &csvfile.IOError{Op: "open", Path: s.Path, Err: err}
	}
	defer f.Close()

	summaries, skipped, err := ReadHistory(f)
	for _, rerr := range skipped {
		s.logger().Warn("skipping history row", "path", s.Path, "line", rerr.Line, "error", rerr.Err)
	}
	if err != nil {
		return nil, &csvfile.IOError{Op: "read", Path: s.Path, Err: err}
	}
	return summaries, nil
}

// Append writes one snapshot to the end of the file, creating it if needed.
func (s *FileStore) Append(summary model.Summary) error {
	if err := csvfile.AppendRow(s.Path, MarshalSummary(summary)); err != nil {
		return fmt.Errorf("appending snapshot: %w", err)
	}
	return nil
}

func (s *FileStore) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}
