package model

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// AccountType classifies an account for summary bucketing.
type AccountType string

const (
	AccountTypeSavings AccountType = "Savings"
	AccountTypeCurrent AccountType = "Current"
	AccountTypeCredit  AccountType = "Credit"
	AccountTypeISA     AccountType = "ISA"
	AccountTypeGIA     AccountType = "GIA"
	AccountTypeCrypto  AccountType = "Crypto"
)

// AccountTypes returns every recognized type in display order.
func AccountTypes() []AccountType {
	return []AccountType{
		AccountTypeCurrent,
		AccountTypeSavings,
		AccountTypeCredit,
		AccountTypeISA,
		AccountTypeGIA,
		AccountTypeCrypto,
	}
}

// Valid reports whether t is one of the recognized account types.
func (t AccountType) Valid() bool {
	switch t {
	case AccountTypeSavings, AccountTypeCurrent, AccountTypeCredit,
		AccountTypeISA, AccountTypeGIA, AccountTypeCrypto:
		return true
	}
	return false
}

// ParseAccountType converts s to an AccountType. Matching is case-sensitive.
func ParseAccountType(s string) (AccountType, error) {
	t := AccountType(strings.TrimSpace(s))
	if !t.Valid() {
		return "", &ValidationError{
			Field:  "type",
			Value:  s,
			Reason: "must be one of " + typeList(),
		}
	}
	return t, nil
}

func typeList() string {
	types := AccountTypes()
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}

// Account represents a row in accounts.csv.
type Account struct {
	Name     string
	Bank     string
	Balance  decimal.Decimal // negative for credit
	Interest decimal.Decimal // percent, e.g. 4.5
	Type     AccountType
}

// NewAccount builds an Account, rejecting unknown types.
func NewAccount(name, bank string, balance, interest decimal.Decimal, accountType string) (Account, error) {
	t, err := ParseAccountType(accountType)
	if err != nil {
		return Account{}, err
	}
	return Account{
		Name:     name,
		Bank:     bank,
		Balance:  balance,
		Interest: interest,
		Type:     t,
	}, nil
}

// Validate checks the account type of an Account built as a struct literal.
func (a Account) Validate() error {
	if !a.Type.Valid() {
		return &ValidationError{
			Field:  "type",
			Value:  string(a.Type),
			Reason: "must be one of " + typeList(),
		}
	}
	return nil
}

// ParseAmount parses a balance or interest rate typed by the user. Failures
// are reported as a ValidationError for field.
func ParseAmount(field, value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return decimal.Zero, &ValidationError{Field: field, Value: value, Reason: "not a number"}
	}
	return d, nil
}

// AccruedInterest is balance * interest * 0.01.
func (a Account) AccruedInterest() decimal.Decimal {
	return a.Balance.Mul(a.Interest).Div(decimal.NewFromInt(100))
}

// ValidationError describes rejected input for a single field.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}
