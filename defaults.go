package finances

// DefaultDocument returns the document a ledger starts with when there is no
// usable store: two empty accounts and a set of common categories.
func DefaultDocument() Document {
	return Document{
		Accounts: []Account{
			NewAccount("Cash", Money{}, AccountCash, "green"),
			NewAccount("Main Bank", Money{}, AccountBank, "blue"),
		},
		Categories: []Category{
			NewCategory("Salary", CategoryIncome, "💰", "green"),
			NewCategory("Freelance", CategoryIncome, "💻", "blue"),
			NewCategory("Food", CategoryExpense, "🍔", "orange"),
			NewCategory("Transport", CategoryExpense, "🚗", "purple"),
			NewCategory("Entertainment", CategoryExpense, "🎮", "pink"),
			NewCategory("Utilities", CategoryExpense, "💡", "yellow"),
			NewCategory("Health", CategoryExpense, "🏥", "red"),
			NewCategory("Education", CategoryExpense, "📚", "cyan"),
		},
		Transactions: []Transaction{},
	}
}
