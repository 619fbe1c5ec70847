package accounts

import (
	"log/slog"

	"github.com/fintrack-dev/fintrack/internal/csvfile"
	"github.com/fintrack-dev/fintrack/internal/model"
)

// FileName is the default accounts file name inside a data directory.
const FileName = "accounts.csv"

// FileStore persists accounts to a single CSV file.
type FileStore struct {
	Path   string
	Logger *slog.Logger
}

// NewFileStore creates a FileStore for path.
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path, Logger: slog.Default()}
}

// Load reads every account in the file. Malformed rows are logged and
// skipped. Accounts with an unrecognized type are logged and kept. A missing
// file is created empty.
func (s *FileStore) Load() ([]model.Account, error) {
	var accounts []model.Account
	skipped, err := csvfile.ReadFile(s.Path, numFields, collect(&accounts))
	for _, rerr := range skipped {
		s.logger().Warn("skipping account row", "path", s.Path, "line", rerr.Line, "error", rerr.Err)
	}
	if err != nil {
		return nil, err
	}
	for i, acct := range accounts {
		if !acct.Type.Valid() {
			s.logger().Warn("unrecognized account type, counted in totals only",
				"path", s.Path, "index", i, "name", acct.Name, "type", acct.Type)
		}
	}
	return accounts, nil
}

// Append writes one account to the end of the file.
func (s *FileStore) Append(acct model.Account) error {
	return csvfile.AppendRow(s.Path, MarshalAccount(acct))
}

// Rewrite replaces the file with accounts, in order.
func (s *FileStore) Rewrite(accounts []model.Account) error {
	return csvfile.RewriteRows(s.Path, marshalAll(accounts))
}

func (s *FileStore) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}
