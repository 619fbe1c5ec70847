package accounts

import (
	"github.com/shopspring/decimal"

	"github.com/fintrack-dev/fintrack/internal/model"
)

// SampleAccounts returns a demo list with one account of each type.
func SampleAccounts() []model.Account {
	return []model.Account{
		{Name: "Everyday", Bank: "Monzo", Balance: decimal.RequireFromString("1250.40"), Interest: decimal.Zero, Type: model.AccountTypeCurrent},
		{Name: "Rainy Day", Bank: "Nationwide", Balance: decimal.RequireFromString("5000"), Interest: decimal.RequireFromString("4.25"), Type: model.AccountTypeSavings},
		{Name: "Rewards Card", Bank: "Amex", Balance: decimal.RequireFromString("-320.15"), Interest: decimal.RequireFromString("22.9"), Type: model.AccountTypeCredit},
		{Name: "Stocks & Shares", Bank: "Vanguard", Balance: decimal.RequireFromString("12000"), Interest: decimal.RequireFromString("5"), Type: model.AccountTypeISA},
		{Name: "Trading", Bank: "Trading 212", Balance: decimal.RequireFromString("2400"), Interest: decimal.RequireFromString("3"), Type: model.AccountTypeGIA},
		{Name: "Cold Wallet", Bank: "Ledger", Balance: decimal.RequireFromString("800"), Interest: decimal.Zero, Type: model.AccountTypeCrypto},
	}
}
