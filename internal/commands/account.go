package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fintrack-dev/fintrack/internal/model"
	"github.com/fintrack-dev/fintrack/internal/session"
)

func newAccountCommand(opts *globalOptions) *cobra.Command {
	accountCmd := &cobra.Command{
		Use:     "account",
		Aliases: []string{"accounts"},
		Short:   "List, add and edit accounts",
	}
	accountCmd.AddCommand(newAccountListCommand(opts))
	accountCmd.AddCommand(newAccountAddCommand(opts))
	accountCmd.AddCommand(newAccountEditCommand(opts))
	return accountCmd
}

func newAccountListCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show every account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			accts := a.session.Accounts()
			if len(accts) == 0 {
				a.printf("No accounts yet. Add one with: fintrack account add\n")
				return nil
			}
			a.printf("%s\n", a.format.Accounts(accts))
			return nil
		},
	}
}

type accountAddOptions struct {
	name     string
	bank     string
	balance  string
	interest string
	typ      string
}

func newAccountAddCommand(opts *globalOptions) *cobra.Command {
	var add accountAddOptions

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an account",
		Long: fmt.Sprintf(`Add an account and append it to accounts.csv.

Valid types: %s.`, typeNames()),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			acct, err := add.account()
			if err != nil {
				return err
			}

			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			if err := a.session.AddAccount(acct); err != nil {
				return err
			}
			a.commit("account: add "+acct.Name, a.cfg.AccountsPath())

			a.printf("Added %s (%s) as account %d\n", acct.Name, acct.Type, len(a.session.Accounts())-1)
			return nil
		},
	}

	cmd.Flags().StringVar(&add.name, "name", "", "account name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&add.bank, "bank", "", "bank or provider")
	cmd.Flags().StringVar(&add.balance, "balance", "0", "current balance, negative for credit")
	cmd.Flags().StringVar(&add.interest, "interest", "0", "interest rate in percent")
	cmd.Flags().StringVar(&add.typ, "type", "", "account type (required)")
	_ = cmd.MarkFlagRequired("type")

	return cmd
}

func (o accountAddOptions) account() (model.Account, error) {
	balance, err := model.ParseAmount("balance", o.balance)
	if err != nil {
		return model.Account{}, err
	}
	interest, err := model.ParseAmount("interest", o.interest)
	if err != nil {
		return model.Account{}, err
	}
	return model.NewAccount(o.name, o.bank, balance, interest, o.typ)
}

func newAccountEditCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <index> <field> <value>",
		Short: "Change one field of an account",
		Long: `Change one field of an account and rewrite accounts.csv.

The index is the # column of "fintrack account list". Fields: name, bank,
balance, interest, type.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("parsing index %q: %w", args[0], err)
			}
			field, err := session.ParseAccountField(args[1])
			if err != nil {
				return err
			}

			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			if err := a.session.EditAccountField(index, field, args[2]); err != nil {
				return err
			}
			acct := a.session.Accounts()[index]
			a.commit(fmt.Sprintf("account: set %s of %s", field, acct.Name), a.cfg.AccountsPath())

			a.printf("Updated %s of account %d (%s)\n", field, index, acct.Name)
			return nil
		},
	}
}

func typeNames() string {
	types := model.AccountTypes()
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}
