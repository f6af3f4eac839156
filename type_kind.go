package finances

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownKind is returned when a kind string matches no known value.
var ErrUnknownKind = errors.New("unknown kind")

// CategoryKind tells whether a category classifies income or expenses.
type CategoryKind int

const (
	CategoryIncome CategoryKind = iota
	CategoryExpense
)

// String returns the persisted value of the kind.
func (k CategoryKind) String() string {
	switch k {
	case CategoryIncome:
		return "ingreso"
	case CategoryExpense:
		return "gasto"
	default:
		return "unknown"
	}
}

// Label returns a human friendly name.
func (k CategoryKind) Label() string {
	switch k {
	case CategoryIncome:
		return "income"
	case CategoryExpense:
		return "expense"
	default:
		return "unknown"
	}
}

// ParseCategoryKind accepts the persisted value or the english label.
func ParseCategoryKind(s string) (CategoryKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ingreso", "income":
		return CategoryIncome, nil
	case "gasto", "expense":
		return CategoryExpense, nil
	default:
		return 0, fmt.Errorf("%w: category kind %q", ErrUnknownKind, s)
	}
}

func (k CategoryKind) MarshalJSON() ([]byte, error) { return json.Marshal(k.String()) }

func (k *CategoryKind) UnmarshalJSON(data []byte) (err error) {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*k, err = ParseCategoryKind(s)
	return err
}

// AccountKind classifies accounts.
type AccountKind int

const (
	AccountCash AccountKind = iota
	AccountBank
	AccountSavings
	AccountInvestment
)

// String returns the persisted value of the kind.
func (k AccountKind) String() string {
	switch k {
	case AccountCash:
		return "efectivo"
	case AccountBank:
		return "banco"
	case AccountSavings:
		return "ahorro"
	case AccountInvestment:
		return "inversion"
	default:
		return "unknown"
	}
}

// Label returns a human friendly name.
func (k AccountKind) Label() string {
	switch k {
	case AccountCash:
		return "cash"
	case AccountBank:
		return "bank"
	case AccountSavings:
		return "savings"
	case AccountInvestment:
		return "investment"
	default:
		return "unknown"
	}
}

// ParseAccountKind accepts the persisted value or the english label.
func ParseAccountKind(s string) (AccountKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "efectivo", "cash":
		return AccountCash, nil
	case "banco", "bank":
		return AccountBank, nil
	case "ahorro", "savings":
		return AccountSavings, nil
	case "inversion", "inversión", "investment":
		return AccountInvestment, nil
	default:
		return 0, fmt.Errorf("%w: account kind %q", ErrUnknownKind, s)
	}
}

func (k AccountKind) MarshalJSON() ([]byte, error) { return json.Marshal(k.String()) }

func (k *AccountKind) UnmarshalJSON(data []byte) (err error) {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*k, err = ParseAccountKind(s)
	return err
}

// TransactionKind is the direction of a transaction. The amount of a
// transaction is always positive, the kind gives its sign.
type TransactionKind int

const (
	Income TransactionKind = iota
	Expense
	Transfer
)

// String returns the persisted value of the kind.
func (k TransactionKind) String() string {
	switch k {
	case Income:
		return "ingreso"
	case Expense:
		return "gasto"
	case Transfer:
		return "transferencia"
	default:
		return "unknown"
	}
}

// Label returns a human friendly name.
func (k TransactionKind) Label() string {
	switch k {
	case Income:
		return "income"
	case Expense:
		return "expense"
	case Transfer:
		return "transfer"
	default:
		return "unknown"
	}
}

// ParseTransactionKind accepts the persisted value or the english label.
func ParseTransactionKind(s string) (TransactionKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ingreso", "income":
		return Income, nil
	case "gasto", "expense":
		return Expense, nil
	case "transferencia", "transfer":
		return Transfer, nil
	default:
		return 0, fmt.Errorf("%w: transaction kind %q", ErrUnknownKind, s)
	}
}

func (k TransactionKind) MarshalJSON() ([]byte, error) { return json.Marshal(k.String()) }

func (k *TransactionKind) UnmarshalJSON(data []byte) (err error) {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*k, err = ParseTransactionKind(s)
	return err
}
