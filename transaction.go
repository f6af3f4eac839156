package finances

import (
	"encoding/json"
	"fmt"
)

// Transaction records money coming into or going out of an account.
type Transaction struct {
	// ID is the creation time down to the microsecond, e.g. "20261015093012345678".
	ID string
	// Amount is always positive, Kind gives its direction.
	Amount Money
	Kind   TransactionKind
	// Category is a free text label, usually a Category name.
	Category string
	// Account is the name of the account at the time the transaction was recorded.
	Account string
	// AccountID is the ID of the account whose balance the transaction
	// changed, empty when it changed none.
	AccountID   string
	Description string
	Timestamp   Timestamp
}

// Signed returns the amount with the sign of its effect on the account balance.
func (t Transaction) Signed() Money {
	switch t.Kind {
	case Income:
		return t.Amount
	case Expense, Transfer:
		return t.Amount.Neg()
	default:
		return Money{}
	}
}

func (t Transaction) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", t.ID)
	w.Append("monto", t.Amount)
	w.Append("tipo", t.Kind)
	w.Append("categoria", t.Category)
	w.Append("cuenta", t.Account)
	w.Append("cuenta_id", t.AccountID)
	w.Append("descripcion", t.Description)
	w.Append("fecha", t.Timestamp)
	return w.MarshalJSON()
}

// UnmarshalJSON requires amount, kind, category and account. A missing
// description is empty. A missing date is left empty and not replaced by the
// current time: the loss is reported when the ledger is opened.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	var temp struct {
		ID          string           `json:"id"`
		Amount      *Money           `json:"monto"`
		Kind        *TransactionKind `json:"tipo"`
		Category    *string          `json:"categoria"`
		Account     *string          `json:"cuenta"`
		AccountID   string           `json:"cuenta_id"`
		Description string           `json:"descripcion"`
		Timestamp   Timestamp        `json:"fecha"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	for _, f := range []struct {
		name    string
		missing bool
	}{
		{"monto", temp.Amount == nil},
		{"tipo", temp.Kind == nil},
		{"categoria", temp.Category == nil},
		{"cuenta", temp.Account == nil},
	} {
		if f.missing {
			return fmt.Errorf("transaction %q: missing field %q", temp.ID, f.name)
		}
	}

	*t = Transaction{
		ID:          temp.ID,
		Amount:      *temp.Amount,
		Kind:        *temp.Kind,
		Category:    *temp.Category,
		Account:     *temp.Account,
		AccountID:   temp.AccountID,
		Description: temp.Description,
		Timestamp:   temp.Timestamp,
	}
	return nil
}
