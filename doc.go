// Package finances provides the types and functions to keep a personal
// finance ledger: accounts, categories and the income, expense and transfer
// transactions between them.
//
// It is designed to be local-first. The whole ledger is held in memory by a
// [Ledger] and persisted as a single document through a [Store] after every
// mutation. The core functionalities include:
//   - Entity Model: [Account], [Category] and [Transaction], with closed kind
//     enumerations and exact decimal [Money].
//   - Persistence: encoding and decoding of the ledger [Document] to and from
//     the JSON format of the original "finanzas_data.json" store.
//   - Ledger Management: adding and removing accounts and categories,
//     recording transactions, and fee-bearing transfers between accounts.
//   - Reports: total balance, recent transactions and monthly statistics.
//
// This package serves as the foundational logic for the `fin` command-line
// tool.
package finances
