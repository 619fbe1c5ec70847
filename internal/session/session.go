// Package session owns the in-memory account list, its derived summary and
// the snapshot history, and keeps them consistent with the backing stores.
//
// A Session is not safe for concurrent use. Every method runs to completion
// against the stores before returning.
package session

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintrack-dev/fintrack/internal/model"
)

var (
	// ErrIndexOutOfRange is returned when an edit targets a row that does not exist.
	ErrIndexOutOfRange = errors.New("account index out of range")
	// ErrUnknownField is returned for an edit column that is not an account field.
	ErrUnknownField = errors.New("unknown account field")
)

// AccountStore persists the account list.
type AccountStore interface {
	Load() ([]model.Account, error)
	Append(acct model.Account) error
	Rewrite(accounts []model.Account) error
}

// HistoryStore persists summary snapshots.
type HistoryStore interface {
	Load() ([]model.Summary, error)
	Append(summary model.Summary) error
}

// AccountField names an editable account column.
type AccountField string

const (
	FieldName     AccountField = "name"
	FieldBank     AccountField = "bank"
	FieldBalance  AccountField = "balance"
	FieldInterest AccountField = "interest"
	FieldType     AccountField = "type"
)

// AccountFields returns the editable columns in grid order.
func AccountFields() []AccountField {
	return []AccountField{FieldName, FieldBank, FieldBalance, FieldInterest, FieldType}
}

// ParseAccountField maps a column name, case-insensitively, to an AccountField.
func ParseAccountField(s string) (AccountField, error) {
	f := AccountField(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(AccountFields(), f) {
		return "", fmt.Errorf("%w: %q", ErrUnknownField, s)
	}
	return f, nil
}

// Point is one value of a history series. Index is the snapshot's position
// in the history, standing in for its date.
type Point struct {
	Index int
	Value decimal.Decimal
}

// Session mediates every mutation between a UI and the stores.
type Session struct {
	accounts    AccountStore
	history     HistoryStore
	now         func() time.Time
	logger      *slog.Logger
	accountList []model.Account
	summary     model.Summary
	snapshots   []model.Summary
}

// Option configures a Session.
type Option func(*Session)

// WithClock sets the time source used to stamp summaries.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithLogger sets the logger for mutation events.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// Open loads accounts and history and derives the current summary.
func Open(accounts AccountStore, history HistoryStore, opts ...Option) (*Session, error) {
	s := &Session{
		accounts: accounts,
		history:  history,
		now:      func() time.Time { return time.Now().UTC() },
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	accts, err := accounts.Load()
	if err != nil {
		return nil, fmt.Errorf("loading accounts: %w", err)
	}
	snaps, err := history.Load()
	if err != nil {
		return nil, fmt.Errorf("loading history: %w", err)
	}

	s.accountList = accts
	s.snapshots = snaps
	s.recompute()

	s.logger.Debug("session opened", "accounts", len(accts), "snapshots", len(snaps))
	return s, nil
}

// Accounts returns a copy of the current account list.
func (s *Session) Accounts() []model.Account {
	return slices.Clone(s.accountList)
}

// Summary returns the summary of the current account list.
func (s *Session) Summary() model.Summary {
	return s.summary
}

// History returns a copy of the persisted snapshots, oldest first.
func (s *Session) History() []model.Summary {
	return slices.Clone(s.snapshots)
}

// AddAccount validates acct, appends it to the store and then to the list.
// If the append fails the list is unchanged.
func (s *Session) AddAccount(acct model.Account) error {
	if err := acct.Validate(); err != nil {
		return err
	}
	if err := s.accounts.Append(acct); err != nil {
		return fmt.Errorf("saving account %q: %w", acct.Name, err)
	}

	s.accountList = append(s.accountList, acct)
	s.recompute()

	s.logger.Debug("account added", "name", acct.Name, "type", acct.Type, "index", len(s.accountList)-1)
	return nil
}

// EditAccountField sets one field of the account at index from its text
// form, then rewrites the store. Type edits are validated like new
// accounts. If the rewrite fails the account is restored.
func (s *Session) EditAccountField(index int, field AccountField, value string) error {
	if index < 0 || index >= len(s.accountList) {
		return fmt.Errorf("%w: %d (have %d)", ErrIndexOutOfRange, index, len(s.accountList))
	}

	edited, err := applyField(s.accountList[index], field, value)
	if err != nil {
		return err
	}

	prev := s.accountList[index]
	s.accountList[index] = edited
	if err := s.accounts.Rewrite(s.accountList); err != nil {
		s.accountList[index] = prev
		return fmt.Errorf("saving accounts: %w", err)
	}
	s.recompute()

	s.logger.Debug("account edited", "index", index, "field", field)
	return nil
}

func applyField(acct model.Account, field AccountField, value string) (model.Account, error) {
	switch field {
	case FieldName:
		acct.Name = value
	case FieldBank:
		acct.Bank = value
	case FieldBalance:
		v, err := model.ParseAmount(string(field), value)
		if err != nil {
			return acct, err
		}
		acct.Balance = v
	case FieldInterest:
		v, err := model.ParseAmount(string(field), value)
		if err != nil {
			return acct, err
		}
		acct.Interest = v
	case FieldType:
		t, err := model.ParseAccountType(value)
		if err != nil {
			return acct, err
		}
		acct.Type = t
	default:
		return acct, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return acct, nil
}

// SnapshotSummary stamps the current summary with the clock, appends it to
// the history store and then to the in-memory history. The stamp is
// truncated to whole seconds, the precision history.csv keeps.
func (s *Session) SnapshotSummary() (model.Summary, error) {
	snap := s.summary
	snap.Date = s.now().Truncate(time.Second)

	if err := s.history.Append(snap); err != nil {
		return model.Summary{}, fmt.Errorf("saving summary: %w", err)
	}
	s.snapshots = append(s.snapshots, snap)

	s.logger.Debug("summary saved", "total", snap.Total, "snapshots", len(s.snapshots))
	return snap, nil
}

// HistoryAsSeries returns, for each numeric summary field, the field's
// value at every snapshot in order.
func (s *Session) HistoryAsSeries() map[model.SummaryField][]Point {
	series := make(map[model.SummaryField][]Point, len(model.SummaryFields()))
	for _, f := range model.SummaryFields() {
		points := make([]Point, len(s.snapshots))
		for i, snap := range s.snapshots {
			points[i] = Point{Index: i, Value: snap.Value(f)}
		}
		series[f] = points
	}
	return series
}

func (s *Session) recompute() {
	s.summary = model.Summarize(s.now(), s.accountList)
}
