package ledger

import (
	"github.com/Dikshant1907-cyber/Banking-management-System/internal/domain/account"
	"github.com/Dikshant1907-cyber/Banking-management-System/internal/domain/customer"
	"github.com/Dikshant1907-cyber/Banking-management-System/internal/domain/transaction"
)

// Store defines the record store the ledger engine runs against.
// The store owns the three collections; the engine only ever holds
// transient references during an operation. Lookups return a second
// boolean result rather than an error: an absent id is an expected
// outcome the caller must branch on, not a failure.
//
// Add* methods allocate the record's identifier from the store's
// monotonic counter for that kind, append the record in insertion order,
// and return the assigned id. They do not touch the disk; the engine
// drives persistence explicitly through the Save* methods so it controls
// the write ordering of each operation.
type Store interface {
	// Lookups
	Customer(id int) (*customer.Customer, bool)
	Account(id int) (*account.Account, bool)

	// Listings, in insertion order
	Customers() []*customer.Customer
	Accounts() []*account.Account
	Transactions() []*transaction.Transaction
	TransactionsByAccount(accountID int) []*transaction.Transaction

	// Appends; each assigns and returns the next id for its kind
	AddCustomer(c *customer.Customer) int
	AddAccount(a *account.Account) int
	AddTransaction(t *transaction.Transaction) int

	// Full-rewrite persistence, one collection per call
	SaveCustomers() error
	SaveAccounts() error
	SaveTransactions() error
}
