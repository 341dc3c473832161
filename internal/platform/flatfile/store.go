// Package flatfile implements the record store over line-oriented
// delimited text files, one file per record kind. The whole data set
// lives in memory; every save rewrites a kind's entire file. Saves go
// through a temp-file-and-rename so a crash mid-write cannot leave a
// truncated file behind.
package flatfile

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Dikshant1907-cyber/Banking-management-System/internal/domain/account"
	"github.com/Dikshant1907-cyber/Banking-management-System/internal/domain/customer"
	"github.com/Dikshant1907-cyber/Banking-management-System/internal/domain/transaction"
	"github.com/Dikshant1907-cyber/Banking-management-System/internal/domain/user"
)

// File names match the legacy data layout so existing files load
// unchanged.
const (
	customersFile    = "customers.csv"
	accountsFile     = "accounts.csv"
	transactionsFile = "transactions.csv"
	usersFile        = "users.csv"
	userDetailsFile  = "user_details.csv"
)

// Starting identifier per record kind, used when a collection is empty.
// After a load the counter is max present id + 1, so externally edited
// files with id gaps still allocate past every existing record.
const (
	firstCustomerID    = 1001
	firstAccountID     = 5001
	firstTransactionID = 10001
)

// Store holds the three ledger collections plus the user files, each in
// insertion order with an id-keyed index for O(1) lookup. It implements
// ledger.Store and auth.UserStore.
type Store struct {
	dir string
	log *zap.Logger

	customers     []*customer.Customer
	accounts      []*account.Account
	transactions  []*transaction.Transaction
	customerIndex map[int]*customer.Customer
	accountIndex  map[int]*account.Account

	users       []*user.User
	userIndex   map[string]*user.User
	details     []*user.Details
	detailIndex map[string]*user.Details

	nextCustomerID    int
	nextAccountID     int
	nextTransactionID int
}

// New opens the store rooted at dir, loading every data file. A missing
// file means no records of that kind yet and is not an error; any other
// read failure is.
func New(dir string, log *zap.Logger) (*Store, error) {
	s := &Store{
		dir:               dir,
		log:               log,
		customerIndex:     make(map[int]*customer.Customer),
		accountIndex:      make(map[int]*account.Account),
		userIndex:         make(map[string]*user.User),
		detailIndex:       make(map[string]*user.Details),
		nextCustomerID:    firstCustomerID,
		nextAccountID:     firstAccountID,
		nextTransactionID: firstTransactionID,
	}

	if err := s.loadCustomers(); err != nil {
		return nil, err
	}
	if err := s.loadAccounts(); err != nil {
		return nil, err
	}
	if err := s.loadTransactions(); err != nil {
		return nil, err
	}
	if err := s.loadUsers(); err != nil {
		return nil, err
	}
	if err := s.loadUserDetails(); err != nil {
		return nil, err
	}

	log.Info("ledger loaded",
		zap.String("dir", dir),
		zap.Int("customers", len(s.customers)),
		zap.Int("accounts", len(s.accounts)),
		zap.Int("transactions", len(s.transactions)),
		zap.Int("users", len(s.users)))
	return s, nil
}

// Customer looks up a customer by id.
func (s *Store) Customer(id int) (*customer.Customer, bool) {
	c, ok := s.customerIndex[id]
	return c, ok
}

// Account looks up an account by id.
func (s *Store) Account(id int) (*account.Account, bool) {
	a, ok := s.accountIndex[id]
	return a, ok
}

// Customers returns all customers in insertion order.
func (s *Store) Customers() []*customer.Customer {
	return s.customers
}

// Accounts returns all accounts in insertion order.
func (s *Store) Accounts() []*account.Account {
	return s.accounts
}

// Transactions returns all transactions in insertion order.
func (s *Store) Transactions() []*transaction.Transaction {
	return s.transactions
}

// TransactionsByAccount returns an account's transactions in insertion
// order.
func (s *Store) TransactionsByAccount(accountID int) []*transaction.Transaction {
	var out []*transaction.Transaction
	for _, t := range s.transactions {
		if t.AccountID == accountID {
			out = append(out, t)
		}
	}
	return out
}

// AddCustomer assigns the next customer id and appends the record.
func (s *Store) AddCustomer(c *customer.Customer) int {
	c.ID = s.nextCustomerID
	s.nextCustomerID++
	s.customers = append(s.customers, c)
	s.customerIndex[c.ID] = c
	return c.ID
}

// AddAccount assigns the next account id and appends the record.
func (s *Store) AddAccount(a *account.Account) int {
	a.AccountID = s.nextAccountID
	s.nextAccountID++
	s.accounts = append(s.accounts, a)
	s.accountIndex[a.AccountID] = a
	return a.AccountID
}

// AddTransaction assigns the next transaction id and appends the record.
func (s *Store) AddTransaction(t *transaction.Transaction) int {
	t.TransactionID = s.nextTransactionID
	s.nextTransactionID++
	s.transactions = append(s.transactions, t)
	return t.TransactionID
}

// SaveCustomers rewrites the customers file from the in-memory collection.
func (s *Store) SaveCustomers() error {
	lines := make([]string, 0, len(s.customers))
	for _, c := range s.customers {
		lines = append(lines, marshalCustomer(c))
	}
	return s.writeFile(customersFile, lines)
}

// SaveAccounts rewrites the accounts file from the in-memory collection.
func (s *Store) SaveAccounts() error {
	lines := make([]string, 0, len(s.accounts))
	for _, a := range s.accounts {
		lines = append(lines, marshalAccount(a))
	}
	return s.writeFile(accountsFile, lines)
}

// SaveTransactions rewrites the transactions file from the in-memory
// collection.
func (s *Store) SaveTransactions() error {
	lines := make([]string, 0, len(s.transactions))
	for _, t := range s.transactions {
		lines = append(lines, marshalTransaction(t))
	}
	return s.writeFile(transactionsFile, lines)
}

// User looks up a credential by username.
func (s *Store) User(username string) (*user.User, bool) {
	u, ok := s.userIndex[username]
	return u, ok
}

// AddUser appends a credential.
func (s *Store) AddUser(u *user.User) {
	s.users = append(s.users, u)
	s.userIndex[u.Username] = u
}

// SaveUsers rewrites the users file from the in-memory collection.
func (s *Store) SaveUsers() error {
	lines := make([]string, 0, len(s.users))
	for _, u := range s.users {
		lines = append(lines, marshalUser(u))
	}
	return s.writeFile(usersFile, lines)
}

// UserDetails looks up a profile by username.
func (s *Store) UserDetails(username string) (*user.Details, bool) {
	d, ok := s.detailIndex[username]
	return d, ok
}

// PutUserDetails replaces the profile for a username, or appends one.
// A replaced profile moves to the end of the file.
func (s *Store) PutUserDetails(d *user.Details) {
	if _, ok := s.detailIndex[d.Username]; ok {
		kept := s.details[:0]
		for _, existing := range s.details {
			if existing.Username != d.Username {
				kept = append(kept, existing)
			}
		}
		s.details = kept
	}
	s.details = append(s.details, d)
	s.detailIndex[d.Username] = d
}

// SaveUserDetails rewrites the user details file from the in-memory
// collection.
func (s *Store) SaveUserDetails() error {
	lines := make([]string, 0, len(s.details))
	for _, d := range s.details {
		lines = append(lines, marshalUserDetails(d))
	}
	return s.writeFile(userDetailsFile, lines)
}

func (s *Store) loadCustomers() error {
	return s.loadFile(customersFile, func(line string) error {
		c, err := parseCustomer(line)
		if err != nil {
			return err
		}
		s.customers = append(s.customers, c)
		s.customerIndex[c.ID] = c
		if c.ID >= s.nextCustomerID {
			s.nextCustomerID = c.ID + 1
		}
		return nil
	})
}

func (s *Store) loadAccounts() error {
	return s.loadFile(accountsFile, func(line string) error {
		a, err := parseAccount(line)
		if err != nil {
			return err
		}
		s.accounts = append(s.accounts, a)
		s.accountIndex[a.AccountID] = a
		if a.AccountID >= s.nextAccountID {
			s.nextAccountID = a.AccountID + 1
		}
		return nil
	})
}

func (s *Store) loadTransactions() error {
	return s.loadFile(transactionsFile, func(line string) error {
		t, err := parseTransaction(line)
		if err != nil {
			return err
		}
		s.transactions = append(s.transactions, t)
		if t.TransactionID >= s.nextTransactionID {
			s.nextTransactionID = t.TransactionID + 1
		}
		return nil
	})
}

func (s *Store) loadUsers() error {
	return s.loadFile(usersFile, func(line string) error {
		u, err := parseUser(line)
		if err != nil {
			return err
		}
		s.users = append(s.users, u)
		s.userIndex[u.Username] = u
		return nil
	})
}

func (s *Store) loadUserDetails() error {
	return s.loadFile(userDetailsFile, func(line string) error {
		d, err := parseUserDetails(line)
		if err != nil {
			return err
		}
		s.details = append(s.details, d)
		s.detailIndex[d.Username] = d
		return nil
	})
}

// loadFile feeds every non-blank line of a data file to parse. A missing
// file is an empty collection; a malformed line is skipped with a
// warning rather than aborting the load.
func (s *Store) loadFile(name string, parse func(line string) error) error {
	f, err := os.Open(filepath.Join(s.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			s.log.Info("no data file yet, starting empty", zap.String("file", name))
			return nil
		}
		return fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()

	lineNo := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if len(line) == 0 {
			continue
		}
		if err := parse(line); err != nil {
			s.log.Warn("skipping malformed record",
				zap.String("file", name),
				zap.Int("line", lineNo),
				zap.Error(err))
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	return nil
}

// writeFile writes lines to a temp file in the data directory, then
// renames it over the target so a crash mid-write cannot leave a
// truncated file.
func (s *Store) writeFile(name string, lines []string) error {
	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", name, err)
	}

	w := bufio.NewWriter(tmp)
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
			return fmt.Errorf("write %s: %w", name, err)
		}
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, name)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace %s: %w", name, err)
	}
	return nil
}
