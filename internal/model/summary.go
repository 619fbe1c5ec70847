package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Summary is a point-in-time aggregation of an account list.
// It is a row in history.csv once snapshotted.
type Summary struct {
	Date     time.Time
	Total    decimal.Decimal
	Current  decimal.Decimal
	Savings  decimal.Decimal
	Credit   decimal.Decimal
	ISA      decimal.Decimal
	GIA      decimal.Decimal
	Crypto   decimal.Decimal
	Interest decimal.Decimal
}

// Summarize totals accounts in a single pass. Accounts with an unknown type
// count toward Total and Interest but no bucket.
func Summarize(at time.Time, accounts []Account) Summary {
	s := Summary{Date: at}
	for _, a := range accounts {
		s.Total = s.Total.Add(a.Balance)
		s.Interest = s.Interest.Add(a.AccruedInterest())

		switch a.Type {
		case AccountTypeCurrent:
			s.Current = s.Current.Add(a.Balance)
		case AccountTypeSavings:
			s.Savings = s.Savings.Add(a.Balance)
		case AccountTypeCredit:
			s.Credit = s.Credit.Add(a.Balance)
		case AccountTypeISA:
			s.ISA = s.ISA.Add(a.Balance)
		case AccountTypeGIA:
			s.GIA = s.GIA.Add(a.Balance)
		case AccountTypeCrypto:
			s.Crypto = s.Crypto.Add(a.Balance)
		}
	}
	return s
}

// Bucket returns the running balance for an account type.
// Unknown types return zero.
func (s Summary) Bucket(t AccountType) decimal.Decimal {
	switch t {
	case AccountTypeCurrent:
		return s.Current
	case AccountTypeSavings:
		return s.Savings
	case AccountTypeCredit:
		return s.Credit
	case AccountTypeISA:
		return s.ISA
	case AccountTypeGIA:
		return s.GIA
	case AccountTypeCrypto:
		return s.Crypto
	}
	return decimal.Zero
}

// SummaryField names one numeric column of a Summary.
type SummaryField string

const (
	FieldTotal    SummaryField = "total"
	FieldCurrent  SummaryField = "current"
	FieldSavings  SummaryField = "savings"
	FieldCredit   SummaryField = "credit"
	FieldISA      SummaryField = "isa"
	FieldGIA      SummaryField = "gia"
	FieldCrypto   SummaryField = "crypto"
	FieldInterest SummaryField = "interest"
)

// SummaryFields returns the numeric fields in history.csv column order.
func SummaryFields() []SummaryField {
	return []SummaryField{
		FieldTotal,
		FieldCurrent,
		FieldSavings,
		FieldCredit,
		FieldISA,
		FieldGIA,
		FieldCrypto,
		FieldInterest,
	}
}

// Label returns the display label for the field.
func (f SummaryField) Label() string {
	switch f {
	case FieldTotal:
		return "Total Balance"
	case FieldCurrent:
		return "Current Balance"
	case FieldSavings:
		return "Savings Balance"
	case FieldCredit:
		return "Credit Balance"
	case FieldISA:
		return "ISA Balance"
	case FieldGIA:
		return "GIA Balance"
	case FieldCrypto:
		return "Crypto Balance"
	case FieldInterest:
		return "Total Interest"
	}
	return string(f)
}

// Value returns the value of field f.
func (s Summary) Value(f SummaryField) decimal.Decimal {
	switch f {
	case FieldTotal:
		return s.Total
	case FieldCurrent:
		return s.Current
	case FieldSavings:
		return s.Savings
	case FieldCredit:
		return s.Credit
	case FieldISA:
		return s.ISA
	case FieldGIA:
		return s.GIA
	case FieldCrypto:
		return s.Crypto
	case FieldInterest:
		return s.Interest
	}
	return decimal.Zero
}

// SetValue assigns field f. Unknown fields are ignored.
func (s *Summary) SetValue(f SummaryField, v decimal.Decimal) {
	switch f {
	case FieldTotal:
		s.Total = v
	case FieldCurrent:
		s.Current = v
	case FieldSavings:
		s.Savings = v
	case FieldCredit:
		s.Credit = v
	case FieldISA:
		s.ISA = v
	case FieldGIA:
		s.GIA = v
	case FieldCrypto:
		s.Crypto = v
	case FieldInterest:
		s.Interest = v
	}
}
