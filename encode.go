package finances

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"slices"
)

// Document is the whole persisted state of a ledger.
type Document struct {
	Accounts     []Account
	Categories   []Category
	Transactions []Transaction
}

// Clone returns a deep copy of the document.
func (d Document) Clone() Document {
	return Document{
		Accounts:     slices.Clone(d.Accounts),
		Categories:   slices.Clone(d.Categories),
		Transactions: slices.Clone(d.Transactions),
	}
}

// CorruptStoreError reports a store that exists but cannot be decoded.
type CorruptStoreError struct {
	Source string // where the document was read from, if known
	Err    error
}

func (e *CorruptStoreError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("corrupt store: %v", e.Err)
	}
	return fmt.Sprintf("corrupt store %q: %v", e.Source, e.Err)
}

func (e *CorruptStoreError) Unwrap() error { return e.Err }

// nonNil makes sure empty collections are persisted as [] and not null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// EncodeDocument writes the document as a single indented JSON object with
// the "cuentas", "categorias" and "transacciones" arrays.
func EncodeDocument(w io.Writer, doc Document) error {
	var o jsonObjectWriter
	o.Append("cuentas", nonNil(doc.Accounts))
	o.Append("categorias", nonNil(doc.Categories))
	o.Append("transacciones", nonNil(doc.Transactions))
	raw, err := o.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	var out bytes.Buffer
	if err := json.Indent(&out, raw, "", "  "); err != nil {
		return fmt.Errorf("failed to indent document: %w", err)
	}
	out.WriteByte('\n')
	if _, err := w.Write(out.Bytes()); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	return nil
}

// DecodeDocument reads a document written by EncodeDocument. The english
// top level keys "accounts", "categories" and "transactions" are accepted too.
//
// Transactions written before accounts had IDs carry no "cuenta_id": they are
// linked to the first account with the same name.
//
// Any failure is returned as a *CorruptStoreError.
func DecodeDocument(r io.Reader) (Document, error) {
	var temp struct {
		Cuentas       []Account         `json:"cuentas"`
		Categorias    []Category        `json:"categorias"`
		Transacciones []json.RawMessage `json:"transacciones"`
		Accounts      []Account         `json:"accounts"`
		Categories    []Category        `json:"categories"`
		Transactions  []json.RawMessage `json:"transactions"`
	}
	var raw json.RawMessage
	dec := json.NewDecoder(r)
	if err := dec.Decode(&raw); err != nil {
		return Document{}, &CorruptStoreError{Err: err}
	}
	if dec.More() {
		return Document{}, &CorruptStoreError{Err: fmt.Errorf("unexpected content after the document")}
	}
	if trimmed := bytes.TrimSpace(raw); len(trimmed) == 0 || trimmed[0] != '{' {
		return Document{}, &CorruptStoreError{Err: fmt.Errorf("the document is not a JSON object")}
	}
	if err := json.Unmarshal(raw, &temp); err != nil {
		return Document{}, &CorruptStoreError{Err: err}
	}

	doc := Document{
		Accounts:   temp.Cuentas,
		Categories: temp.Categorias,
	}
	if doc.Accounts == nil {
		doc.Accounts = temp.Accounts
	}
	if doc.Categories == nil {
		doc.Categories = temp.Categories
	}
	raws := temp.Transacciones
	if raws == nil {
		raws = temp.Transactions
	}

	doc.Transactions = make([]Transaction, 0, len(raws))
	for i, raw := range raws {
		var tx Transaction
		if err := json.Unmarshal(raw, &tx); err != nil {
			return Document{}, &CorruptStoreError{Err: fmt.Errorf("transaction #%d: %w", i, err)}
		}
		var link struct {
			AccountID *string `json:"cuenta_id"`
		}
		if err := json.Unmarshal(raw, &link); err != nil {
			return Document{}, &CorruptStoreError{Err: fmt.Errorf("transaction #%d: %w", i, err)}
		}
		if link.AccountID == nil {
			tx.AccountID = legacyAccountID(doc.Accounts, tx)
		}
		doc.Transactions = append(doc.Transactions, tx)
	}
	return doc, nil
}

// legacyAccountID returns the ID of the account tx was most likely applied
// to: the first account with the same name.
func legacyAccountID(accounts []Account, tx Transaction) string {
	for _, a := range accounts {
		if a.Name == tx.Account {
			return a.ID
		}
	}
	return ""
}
