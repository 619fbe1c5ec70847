package accounts

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/fintrack-dev/fintrack/internal/csvfile"
	"github.com/fintrack-dev/fintrack/internal/model"
)

const (
	numFields   = 5
	colName     = 0
	colBank     = 1
	colBalance  = 2
	colInterest = 3
	colType     = 4
)

// ReadAccounts reads accounts.csv. Rows that fail to parse are skipped and
// reported in skipped; err is set only when r itself fails.
func ReadAccounts(r io.Reader) (accounts []model.Account, skipped []csvfile.RowError, err error) {
	skipped, err = csvfile.Rows(r, numFields, collect(&accounts))
	if err != nil {
		return nil, skipped, fmt.Errorf("reading accounts CSV: %w", err)
	}
	return accounts, skipped, nil
}

func collect(accounts *[]model.Account) csvfile.RowFunc {
	return func(_ int, rec []string) error {
		acct, err := UnmarshalAccount(rec)
		if err != nil {
			return err
		}
		*accounts = append(*accounts, acct)
		return nil
	}
}

// WriteAccounts writes accounts.csv (no header).
func WriteAccounts(w io.Writer, accounts []model.Account) error {
	return csvfile.WriteRows(w, marshalAll(accounts))
}

func marshalAll(accounts []model.Account) [][]string {
	rows := make([][]string, len(accounts))
	for i, acct := range accounts {
		rows[i] = MarshalAccount(acct)
	}
	return rows
}

// MarshalAccount converts an Account to a CSV row.
func MarshalAccount(acct model.Account) []string {
	row := make([]string, numFields)
	row[colName] = acct.Name
	row[colBank] = acct.Bank
	row[colBalance] = acct.Balance.String()
	row[colInterest] = acct.Interest.String()
	row[colType] = string(acct.Type)
	return row
}

// UnmarshalAccount converts a CSV row to an Account. Fields past the fifth
// are ignored. The type is taken as written; an unrecognized type is not an
// error here so that rewriting the file keeps the row.
func UnmarshalAccount(record []string) (model.Account, error) {
	if len(record) < numFields {
		return model.Account{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	balance, err := decimal.NewFromString(strings.TrimSpace(record[colBalance]))
	if err != nil {
		return model.Account{}, fmt.Errorf("parsing balance %q: %w", record[colBalance], err)
	}

	interest, err := decimal.NewFromString(strings.TrimSpace(record[colInterest]))
	if err != nil {
		return model.Account{}, fmt.Errorf("parsing interest %q: %w", record[colInterest], err)
	}

	return model.Account{
		Name:     record[colName],
		Bank:     record[colBank],
		Balance:  balance,
		Interest: interest,
		Type:     model.AccountType(strings.TrimSpace(record[colType])),
	}, nil
}
