// Package csvfile holds the flat-file mechanics shared by the accounts and
// history stores: headerless CSV tables that tolerate bad rows on read,
// grow by appending, and are replaced whole on rewrite.
package csvfile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// RowError describes a row skipped during a load.
type RowError struct {
	Line int
	Err  error
}

func (e RowError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e RowError) Unwrap() error {
	return e.Err
}

// IOError reports a store file that could not be opened, read or written.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// RowFunc receives one record and its 1-based line number. A non-nil error
// skips the row.
type RowFunc func(line int, row []string) error

// Rows reads every record from r. Records with fewer than minFields fields,
// malformed records, and records rejected by fn are returned as RowErrors and
// do not stop the read. Only failures of r itself are returned as err.
func Rows(r io.Reader, minFields int, fn RowFunc) ([]RowError, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	var skipped []RowError
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return skipped, nil
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				skipped = append(skipped, RowError{Line: perr.Line, Err: perr.Err})
				continue
			}
			return skipped, err
		}

		line, _ := cr.FieldPos(0)
		if len(rec) < minFields {
			skipped = append(skipped, RowError{
				Line: line,
				Err:  fmt.Errorf("expected at least %d fields, got %d", minFields, len(rec)),
			})
			continue
		}
		if err := fn(line, rec); err != nil {
			skipped = append(skipped, RowError{Line: line, Err: err})
		}
	}
}

// ReadFile runs Rows over the file at path. A missing file is an empty
// table: it is created empty and no rows are reported.
func ReadFile(path string, minFields int, fn RowFunc) ([]RowError, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, Touch(path)
	}
	if err != nil {
		return nil, &IOError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	skipped, err := Rows(f, minFields, fn)
	if err != nil {
		return skipped, &IOError{Op: "read", Path: path, Err: err}
	}
	return skipped, nil
}

// Touch creates an empty file at path, and its directory, if absent.
func Touch(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &IOError{Op: "mkdir", Path: filepath.Dir(path), Err: err}
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE, 0o644)
	if err != nil {
		return &IOError{Op: "create", Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &IOError{Op: "close", Path: path, Err: err}
	}
	return nil
}

// AppendRow appends a single record to path, creating the file if needed.
func AppendRow(path string, row []string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &IOError{Op: "mkdir", Path: filepath.Dir(path), Err: err}
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return &IOError{Op: "open", Path: path, Err: err}
	}

	if err := WriteRows(f, [][]string{row}); err != nil {
		f.Close()
		return &IOError{Op: "append", Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &IOError{Op: "close", Path: path, Err: err}
	}
	return nil
}

// RewriteRows replaces the contents of path with rows. The new contents are
// written to a temporary file in the same directory and renamed into place,
// so a failed rewrite leaves the old file untouched.
func RewriteRows(path string, rows [][]string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &IOError{Op: "mkdir", Path: dir, Err: err}
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return &IOError{Op: "create", Path: path, Err: err}
	}
	tmpPath := tmp.Name()
	fail := func(op string, err error) error {
		tmp.Close()
		os.Remove(tmpPath)
		return &IOError{Op: op, Path: path, Err: err}
	}

	if err := WriteRows(tmp, rows); err != nil {
		return fail("write", err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		return fail("chmod", err)
	}
	if err := tmp.Sync(); err != nil {
		return fail("sync", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return &IOError{Op: "close", Path: path, Err: err}
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return &IOError{Op: "rename", Path: path, Err: err}
	}
	return nil
}

// WriteRows writes records to w, quoting only fields that need it.
func WriteRows(w io.Writer, rows [][]string) error {
	cw := csv.NewWriter(w)
	for i, row := range rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
