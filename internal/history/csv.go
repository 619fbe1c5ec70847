package history

import (
	"cmp"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintrack-dev/fintrack/internal/csvfile"
	"github.com/fintrack-dev/fintrack/internal/model"
)

// Header documents the column order of history.csv. The file itself has no
// header row.
const Header = "date,totalBalance,currentBalance,savingsBalance,creditBalance,isaBalance,giaBalance,cryptoBalance,totalInterest"

const (
	numFields = 9
	colDate   = 0

	// dateFormat is what we write. legacyDateFormat is the asctime layout
	// found in files written by older versions.
	dateFormat       = time.RFC3339
	legacyDateFormat = time.ANSIC
)

// MarshalSummary converts a Summary to a CSV row.
func MarshalSummary(s model.Summary) []string {
	row := make([]string, 0, numFields)
	row = append(row, s.Date.UTC().Format(dateFormat))
	for _, f := range model.SummaryFields() {
		row = append(row, s.Value(f).String())
	}
	return row
}

// UnmarshalSummary converts a CSV row to a Summary. A trailing empty field
// is tolerated; anything else past the ninth field is ignored.
func UnmarshalSummary(record []string) (model.Summary, error) {
	if len(record) < numFields {
		return model.Summary{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	date, err := parseDate(record[colDate])
	if err != nil {
		return model.Summary{}, err
	}

	s := model.Summary{Date: date}
	for i, f := range model.SummaryFields() {
		raw := strings.TrimSpace(record[i+1])
		v, err := decimal.NewFromString(raw)
		if err != nil {
			return model.Summary{}, fmt.Errorf("parsing %s %q: %w", f, raw, err)
		}
		s.SetValue(f, v)
	}
	return s, nil
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(dateFormat, raw); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(legacyDateFormat, raw); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("parsing date %q: not RFC 3339 or asctime", raw)
}

var errDanglingDate = errors.New("date line without values")

// rowParser turns records into summaries. It joins the two-line rows that
// older versions wrote when the asctime newline ended up inside the date
// field: a lone date line followed by a line whose first field is empty.
type rowParser struct {
	pending     string
	pendingLine int
	dangling    []csvfile.RowError
	summaries   []model.Summary
}

func (p *rowParser) row(line int, rec []string) error {
	if p.pending != "" {
		date := p.pending
		p.pending = ""
		if strings.TrimSpace(rec[colDate]) == "" && len(rec) >= numFields {
			return p.add(append([]string{date}, rec[1:]...))
		}
		p.dangling = append(p.dangling, csvfile.RowError{Line: p.pendingLine, Err: errDanglingDate})
	}

	if len(rec) == 1 {
		if _, err := time.Parse(legacyDateFormat, strings.TrimSpace(rec[0])); err == nil {
			p.pending = rec[0]
			p.pendingLine = line
			return nil
		}
	}
	return p.add(rec)
}

func (p *rowParser) add(rec []string) error {
	s, err := UnmarshalSummary(rec)
	if err != nil {
		return err
	}
	p.summaries = append(p.summaries, s)
	return nil
}

// finish flushes a date line left dangling at end of input.
func (p *rowParser) finish() {
	if p.pending != "" {
		p.dangling = append(p.dangling, csvfile.RowError{Line: p.pendingLine, Err: errDanglingDate})
		p.pending = ""
	}
}

// skipped merges dangling date lines into the rows skipped by the reader,
// in line order.
func (p *rowParser) skipped(fromReader []csvfile.RowError) []csvfile.RowError {
	all := append(fromReader, p.dangling...)
	slices.SortStableFunc(all, func(a, b csvfile.RowError) int {
		return cmp.Compare(a.Line, b.Line)
	})
	return all
}

// ReadHistory reads history.csv. Rows that fail to parse are skipped and
// reported in skipped; err is set only when r itself fails.
func ReadHistory(r io.Reader) (summaries []model.Summary, skipped []csvfile.RowError, err error) {
	var p rowParser
	skipped, err = csvfile.Rows(r, 1, p.row)
	if err != nil {
		return nil, skipped, fmt.Errorf("reading history CSV: %w", err)
	}
	p.finish()
	return p.summaries, p.skipped(skipped), nil
}

// WriteHistory writes summaries as history.csv rows.
func WriteHistory(w io.Writer, summaries []model.Summary) error {
	rows := make([][]string, len(summaries))
	for i, s := range summaries {
		rows[i] = MarshalSummary(s)
	}
	return csvfile.WriteRows(w, rows)
}
