package finances

import (
	"encoding/json"
	"errors"

	"github.com/google/uuid"
)

// Account holds money. Its Balance only changes through the Ledger.
type Account struct {
	// ID identifies the account independently of its display name.
	ID             string
	Name           string
	Balance        Money
	InitialBalance Money
	Kind           AccountKind
	Color          string
}

// NewAccount creates an account whose balance is the initial balance.
func NewAccount(name string, initial Money, kind AccountKind, color string) Account {
	return Account{
		ID:             uuid.NewString(),
		Name:           name,
		Balance:        initial,
		InitialBalance: initial,
		Kind:           kind,
		Color:          color,
	}
}

func (a Account) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Optional("id", a.ID)
	w.Append("nombre", a.Name)
	w.Append("saldo", a.Balance)
	w.Append("saldo_inicial", a.InitialBalance)
	w.Append("tipo", a.Kind)
	w.Append("color", a.Color)
	return w.MarshalJSON()
}

// UnmarshalJSON requires the name. The initial balance defaults to 0, the
// balance to the initial balance, the kind to cash and the color to green.
// An account without id gets a new one.
func (a *Account) UnmarshalJSON(data []byte) error {
	var temp struct {
		ID             string       `json:"id"`
		Name           *string      `json:"nombre"`
		Balance        *Money       `json:"saldo"`
		InitialBalance Money        `json:"saldo_inicial"`
		Kind           *AccountKind `json:"tipo"`
		Color          *string      `json:"color"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	if temp.Name == nil {
		return errors.New("account: missing field \"nombre\"")
	}

	*a = Account{
		ID:             temp.ID,
		Name:           *temp.Name,
		Balance:        temp.InitialBalance,
		InitialBalance: temp.InitialBalance,
		Kind:           AccountCash,
		Color:          "green",
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if temp.Balance != nil {
		a.Balance = *temp.Balance
	}
	if temp.Kind != nil {
		a.Kind = *temp.Kind
	}
	if temp.Color != nil {
		a.Color = *temp.Color
	}
	return nil
}
