package sqlite

const (
	selectLedger = `SELECT saved_at FROM ledger WHERE id = 1`
	upsertLedger = `INSERT INTO ledger (id, saved_at) VALUES (1, ?)
ON CONFLICT(id) DO UPDATE SET saved_at = excluded.saved_at`

	selectAccounts = `SELECT position, id, name, balance, initial_balance, kind, color
FROM accounts ORDER BY position`
	insertAccount = `INSERT INTO accounts (position, id, name, balance, initial_balance, kind, color)
VALUES (?, ?, ?, ?, ?, ?, ?)`
	deleteAccounts = `DELETE FROM accounts`

	selectCategories = `SELECT position, id, name, kind, icon, color
FROM categories ORDER BY position`
	insertCategory = `INSERT INTO categories (position, id, name, kind, icon, color)
VALUES (?, ?, ?, ?, ?, ?)`
	deleteCategories = `DELETE FROM categories`

	selectTransactions = `SELECT position, id, amount, kind, category, account, account_id, description, timestamp
FROM transactions ORDER BY position`
	insertTransaction = `INSERT INTO transactions (position, id, amount, kind, category, account, account_id, description, timestamp)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	deleteTransactions = `DELETE FROM transactions`
)
