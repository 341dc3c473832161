package ledger

import (
	stderrors "errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Dikshant1907-cyber/Banking-management-System/internal/domain/account"
	"github.com/Dikshant1907-cyber/Banking-management-System/internal/domain/customer"
	"github.com/Dikshant1907-cyber/Banking-management-System/internal/domain/errors"
	"github.com/Dikshant1907-cyber/Banking-management-System/internal/domain/transaction"
)

// Test implementation of the Store interface
type fakeStore struct {
	customers    []*customer.Customer
	accounts     []*account.Account
	transactions []*transaction.Transaction

	nextCustomerID    int
	nextAccountID     int
	nextTransactionID int

	customersSaveErr    error
	accountsSaveErr     error
	transactionsSaveErr error

	customerSaves    int
	accountSaves     int
	transactionSaves int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		nextCustomerID:    1001,
		nextAccountID:     5001,
		nextTransactionID: 10001,
	}
}

func (f *fakeStore) Customer(id int) (*customer.Customer, bool) {
	for _, c := range f.customers {
		if c.ID == id {
			return c, true
		}
	}
	return nil, false
}

func (f *fakeStore) Account(id int) (*account.Account, bool) {
	for _, a := range f.accounts {
		if a.AccountID == id {
			return a, true
		}
	}
	return nil, false
}

func (f *fakeStore) Customers() []*customer.Customer { return f.customers }

func (f *fakeStore) Accounts() []*account.Account { return f.accounts }

func (f *fakeStore) Transactions() []*transaction.Transaction { return f.transactions }

func (f *fakeStore) TransactionsByAccount(accountID int) []*transaction.Transaction {
	var out []*transaction.Transaction
	for _, t := range f.transactions {
		if t.AccountID == accountID {
			out = append(out, t)
		}
	}
	return out
}

func (f *fakeStore) AddCustomer(c *customer.Customer) int {
	c.ID = f.nextCustomerID
	f.nextCustomerID++
	f.customers = append(f.customers, c)
	return c.ID
}

func (f *fakeStore) AddAccount(a *account.Account) int {
	a.AccountID = f.nextAccountID
	f.nextAccountID++
	f.accounts = append(f.accounts, a)
	return a.AccountID
}

func (f *fakeStore) AddTransaction(t *transaction.Transaction) int {
	t.TransactionID = f.nextTransactionID
	f.nextTransactionID++
	f.transactions = append(f.transactions, t)
	return t.TransactionID
}

func (f *fakeStore) SaveCustomers() error {
	f.customerSaves++
	return f.customersSaveErr
}

func (f *fakeStore) SaveAccounts() error {
	f.accountSaves++
	return f.accountsSaveErr
}

func (f *fakeStore) SaveTransactions() error {
	f.transactionSaves++
	return f.transactionsSaveErr
}

func (f *fakeStore) seedCustomer(id int, name string) *customer.Customer {
	c := &customer.Customer{ID: id, Name: name, Email: name + "@example.com", Phone: "555-0000", Address: "1 Main St"}
	f.customers = append(f.customers, c)
	if id >= f.nextCustomerID {
		f.nextCustomerID = id + 1
	}
	return c
}

func (f *fakeStore) seedAccount(id, customerID int, balance string) *account.Account {
	a := &account.Account{
		AccountID:   id,
		CustomerID:  customerID,
		Type:        account.Savings,
		Balance:     decimal.RequireFromString(balance),
		Status:      account.StatusActive,
		CreatedDate: time.Now(),
	}
	f.accounts = append(f.accounts, a)
	if id >= f.nextAccountID {
		f.nextAccountID = id + 1
	}
	return a
}

func newTestService(store Store) *Service {
	return NewService(store, zap.NewNop())
}

func TestCreateCustomer(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	c, err := svc.CreateCustomer(&customer.CreateCustomerRequest{
		Name:    "  Asha Rao ",
		Email:   "asha@example.com",
		Phone:   "555-1234",
		Address: "12 Lake Road",
	})
	require.NoError(t, err)
	assert.Equal(t, 1001, c.ID)
	assert.Equal(t, "Asha Rao", c.Name)
	assert.Len(t, store.customers, 1)
	assert.Equal(t, 1, store.customerSaves)

	c2, err := svc.CreateCustomer(&customer.CreateCustomerRequest{
		Name:    "Vikram Shah",
		Email:   "vikram@example.com",
		Phone:   "555-5678",
		Address: "9 Hill Street",
	})
	require.NoError(t, err)
	assert.Equal(t, 1002, c2.ID)
}

func TestCreateCustomerValidation(t *testing.T) {
	tests := []struct {
		name string
		req  customer.CreateCustomerRequest
	}{
		{"empty name", customer.CreateCustomerRequest{Email: "a@b.c", Phone: "1", Address: "x"}},
		{"empty email", customer.CreateCustomerRequest{Name: "A", Phone: "1", Address: "x"}},
		{"empty phone", customer.CreateCustomerRequest{Name: "A", Email: "a@b.c", Address: "x"}},
		{"empty address", customer.CreateCustomerRequest{Name: "A", Email: "a@b.c", Phone: "1"}},
		{"whitespace only", customer.CreateCustomerRequest{Name: "  ", Email: "a@b.c", Phone: "1", Address: "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore()
			svc := newTestService(store)
			_, err := svc.CreateCustomer(&tt.req)
			assert.ErrorIs(t, err, errors.ErrInvalidInput)
			assert.Empty(t, store.customers)
			assert.Zero(t, store.customerSaves)
		})
	}
}

func TestOpenAccountZeroInitialDeposit(t *testing.T) {
	store := newFakeStore()
	store.seedCustomer(1001, "Asha")
	svc := newTestService(store)

	a, err := svc.OpenAccount(&account.OpenAccountRequest{
		CustomerID:     "1001",
		Type:           "Savings",
		InitialDeposit: "0",
	})
	require.NoError(t, err)
	assert.Equal(t, 5001, a.AccountID)
	assert.Equal(t, account.StatusActive, a.Status)
	assert.True(t, a.Balance.IsZero())
	// A zero initial deposit produces no transaction.
	assert.Empty(t, store.transactions)
	assert.Zero(t, store.transactionSaves)
}

func TestOpenAccountWithInitialDeposit(t *testing.T) {
	store := newFakeStore()
	store.seedCustomer(1001, "Asha")
	svc := newTestService(store)

	a, err := svc.OpenAccount(&account.OpenAccountRequest{
		CustomerID:     "1001",
		Type:           "Current",
		InitialDeposit: "250.50",
	})
	require.NoError(t, err)
	assert.Equal(t, account.Current, a.Type)
	assert.True(t, a.Balance.Equal(decimal.RequireFromString("250.50")))

	require.Len(t, store.transactions, 1)
	tx := store.transactions[0]
	assert.Equal(t, 10001, tx.TransactionID)
	assert.Equal(t, a.AccountID, tx.AccountID)
	assert.Equal(t, transaction.Deposit, tx.Type)
	assert.True(t, tx.Amount.Equal(decimal.RequireFromString("250.50")))
	assert.True(t, tx.BalanceAfter.Equal(a.Balance))
	assert.Equal(t, "Initial deposit", tx.Description)
	assert.True(t, tx.Date.Equal(a.CreatedDate))
}

func TestOpenAccountValidation(t *testing.T) {
	tests := []struct {
		name string
		req  account.OpenAccountRequest
		want error
	}{
		{"non-numeric customer id", account.OpenAccountRequest{CustomerID: "abc", Type: "Savings", InitialDeposit: "0"}, errors.ErrInvalidInput},
		{"non-numeric deposit", account.OpenAccountRequest{CustomerID: "1001", Type: "Savings", InitialDeposit: "lots"}, errors.ErrInvalidInput},
		{"unknown customer", account.OpenAccountRequest{CustomerID: "999", Type: "Savings", InitialDeposit: "0"}, errors.ErrNotFound},
		{"negative deposit", account.OpenAccountRequest{CustomerID: "1001", Type: "Savings", InitialDeposit: "-5"}, errors.ErrInvalidAmount},
		{"unknown account type", account.OpenAccountRequest{CustomerID: "1001", Type: "Premium", InitialDeposit: "0"}, errors.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore()
			store.seedCustomer(1001, "Asha")
			svc := newTestService(store)
			_, err := svc.OpenAccount(&tt.req)
			assert.ErrorIs(t, err, tt.want)
			assert.Empty(t, store.accounts)
			assert.Empty(t, store.transactions)
		})
	}
}

func TestDeposit(t *testing.T) {
	store := newFakeStore()
	store.seedAccount(5001, 1001, "1000.00")
	svc := newTestService(store)

	tx, err := svc.Deposit("5001", "500.00")
	require.NoError(t, err)

	a, _ := store.Account(5001)
	assert.True(t, a.Balance.Equal(decimal.RequireFromString("1500.00")))
	assert.Equal(t, transaction.Deposit, tx.Type)
	assert.True(t, tx.BalanceAfter.Equal(decimal.RequireFromString("1500.00")))
	assert.Equal(t, "Cash Deposit", tx.Description)
	assert.Equal(t, 1, store.accountSaves)
	assert.Equal(t, 1, store.transactionSaves)
	require.Len(t, store.transactions, 1)
	assert.Equal(t, 10001, store.transactions[0].TransactionID)
}

func TestDepositValidation(t *testing.T) {
	tests := []struct {
		name      string
		accountID string
		amount    string
		want      error
	}{
		{"non-numeric account id", "abc", "10", errors.ErrInvalidInput},
		{"non-numeric amount", "5001", "ten", errors.ErrInvalidInput},
		{"unknown account", "4242", "10", errors.ErrNotFound},
		{"zero amount", "5001", "0", errors.ErrInvalidAmount},
		{"negative amount", "5001", "-10", errors.ErrInvalidAmount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore()
			store.seedAccount(5001, 1001, "1000.00")
			svc := newTestService(store)

			_, err := svc.Deposit(tt.accountID, tt.amount)
			assert.ErrorIs(t, err, tt.want)

			a, _ := store.Account(5001)
			assert.True(t, a.Balance.Equal(decimal.RequireFromString("1000.00")))
			assert.Empty(t, store.transactions)
		})
	}
}

func TestWithdraw(t *testing.T) {
	store := newFakeStore()
	store.seedAccount(5001, 1001, "1500.00")
	svc := newTestService(store)

	tx, err := svc.Withdraw("5001", "200.00")
	require.NoError(t, err)

	a, _ := store.Account(5001)
	assert.True(t, a.Balance.Equal(decimal.RequireFromString("1300.00")))
	assert.Equal(t, transaction.Withdrawal, tx.Type)
	assert.True(t, tx.BalanceAfter.Equal(decimal.RequireFromString("1300.00")))
	assert.Equal(t, "Cash Withdrawal", tx.Description)
}

func TestWithdrawInsufficientFunds(t *testing.T) {
	store := newFakeStore()
	store.seedAccount(5001, 1001, "1500.00")
	svc := newTestService(store)

	_, err := svc.Withdraw("5001", "2000.00")
	assert.ErrorIs(t, err, errors.ErrInsufficientFunds)

	a, _ := store.Account(5001)
	assert.True(t, a.Balance.Equal(decimal.RequireFromString("1500.00")))
	assert.Empty(t, store.transactions)
	assert.Zero(t, store.accountSaves)
}

func TestTransfer(t *testing.T) {
	store := newFakeStore()
	src := store.seedAccount(5001, 1001, "1500.00")
	dst := store.seedAccount(5002, 1002, "200.00")
	svc := newTestService(store)
	before := src.Balance.Add(dst.Balance)

	res, err := svc.Transfer("5001", "5002", "300.00")
	require.NoError(t, err)

	assert.True(t, src.Balance.Equal(decimal.RequireFromString("1200.00")))
	assert.True(t, dst.Balance.Equal(decimal.RequireFromString("500.00")))
	// Value conservation across the pair.
	assert.True(t, before.Equal(src.Balance.Add(dst.Balance)))

	require.Len(t, store.transactions, 2)
	out, in := res.Out, res.In
	assert.Equal(t, 10001, out.TransactionID)
	assert.Equal(t, 10002, in.TransactionID)
	assert.Equal(t, transaction.TransferOut, out.Type)
	assert.Equal(t, transaction.TransferIn, in.Type)
	assert.Equal(t, 5001, out.AccountID)
	assert.Equal(t, 5002, in.AccountID)
	assert.True(t, out.BalanceAfter.Equal(decimal.RequireFromString("1200.00")))
	assert.True(t, in.BalanceAfter.Equal(decimal.RequireFromString("500.00")))
	assert.Equal(t, "Transfer to 5002", out.Description)
	assert.Equal(t, "Transfer from 5001", in.Description)
	// Both halves share a single timestamp.
	assert.True(t, out.Date.Equal(in.Date))
	assert.Equal(t, 1, store.accountSaves)
	assert.Equal(t, 1, store.transactionSaves)
}

func TestTransferSameAccount(t *testing.T) {
	store := newFakeStore()
	store.seedAccount(5001, 1001, "1500.00")
	svc := newTestService(store)

	_, err := svc.Transfer("5001", "5001", "100.00")
	assert.ErrorIs(t, err, errors.ErrSameAccountTransfer)

	a, _ := store.Account(5001)
	assert.True(t, a.Balance.Equal(decimal.RequireFromString("1500.00")))
	assert.Empty(t, store.transactions)
}

func TestTransferInsufficientFunds(t *testing.T) {
	store := newFakeStore()
	src := store.seedAccount(5001, 1001, "100.00")
	dst := store.seedAccount(5002, 1002, "200.00")
	svc := newTestService(store)

	_, err := svc.Transfer("5001", "5002", "300.00")
	assert.ErrorIs(t, err, errors.ErrInsufficientFunds)
	assert.True(t, src.Balance.Equal(decimal.RequireFromString("100.00")))
	assert.True(t, dst.Balance.Equal(decimal.RequireFromString("200.00")))
	assert.Empty(t, store.transactions)
}

func TestTransferAccountNotFound(t *testing.T) {
	store := newFakeStore()
	store.seedAccount(5001, 1001, "100.00")
	svc := newTestService(store)

	_, err := svc.Transfer("5001", "5002", "50.00")
	assert.ErrorIs(t, err, errors.ErrNotFound)

	_, err = svc.Transfer("4000", "5001", "50.00")
	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestCheckBalance(t *testing.T) {
	store := newFakeStore()
	store.seedCustomer(1001, "Asha")
	store.seedAccount(5001, 1001, "750.25")
	svc := newTestService(store)

	d, err := svc.CheckBalance("5001")
	require.NoError(t, err)
	assert.Equal(t, 5001, d.AccountID)
	assert.Equal(t, "Asha", d.CustomerName)
	assert.Equal(t, account.Savings, d.Type)
	assert.Equal(t, account.StatusActive, d.Status)
	assert.True(t, d.Balance.Equal(decimal.RequireFromString("750.25")))
}

func TestCheckBalanceDanglingCustomer(t *testing.T) {
	store := newFakeStore()
	store.seedAccount(5001, 4242, "10.00")
	svc := newTestService(store)

	// The customer reference is weak: a missing owner is reported, not
	// treated as an error.
	d, err := svc.CheckBalance("5001")
	require.NoError(t, err)
	assert.Equal(t, "N/A", d.CustomerName)
	assert.Equal(t, 4242, d.CustomerID)
}

func TestHistory(t *testing.T) {
	store := newFakeStore()
	store.seedAccount(5001, 1001, "0")
	store.seedAccount(5002, 1001, "0")
	store.seedAccount(5003, 1002, "0")
	svc := newTestService(store)

	_, err := svc.Deposit("5001", "100")
	require.NoError(t, err)
	_, err = svc.Deposit("5002", "50")
	require.NoError(t, err)
	_, err = svc.Withdraw("5001", "30")
	require.NoError(t, err)

	txs, err := svc.History("5001")
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, transaction.Deposit, txs[0].Type)
	assert.Equal(t, transaction.Withdrawal, txs[1].Type)

	// An account with no transactions has a valid, empty history.
	empty, err := svc.History("5003")
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = svc.History("4000")
	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestDashboardSummary(t *testing.T) {
	store := newFakeStore()
	store.seedCustomer(1001, "Asha")
	store.seedCustomer(1002, "Vikram")
	store.seedAccount(5001, 1001, "100.50")
	store.seedAccount(5002, 1001, "100.25")
	inactive := store.seedAccount(5003, 1002, "99.25")
	inactive.Status = "Frozen"
	svc := newTestService(store)

	_, err := svc.Deposit("5001", "10")
	require.NoError(t, err)

	sum := svc.DashboardSummary()
	assert.Equal(t, 2, sum.TotalCustomers)
	assert.Equal(t, 3, sum.TotalAccounts)
	assert.Equal(t, 2, sum.ActiveAccounts)
	assert.Equal(t, 1, sum.TotalTransactions)
	assert.True(t, sum.TotalBalance.Equal(decimal.RequireFromString("310.00")))
	// Average runs over all accounts, active or not.
	assert.True(t, sum.AverageBalance.Equal(decimal.RequireFromString("103.3333333333333333")))
}

func TestDashboardSummaryEmpty(t *testing.T) {
	svc := newTestService(newFakeStore())
	sum := svc.DashboardSummary()
	assert.Zero(t, sum.TotalAccounts)
	assert.True(t, sum.TotalBalance.IsZero())
	assert.True(t, sum.AverageBalance.IsZero())
}

func TestDepositAccountSaveFailureKeepsMutationSkipsTransaction(t *testing.T) {
	store := newFakeStore()
	store.seedAccount(5001, 1001, "1000.00")
	store.accountsSaveErr = stderrors.New("disk full")
	svc := newTestService(store)

	_, err := svc.Deposit("5001", "500.00")
	assert.ErrorIs(t, err, errors.ErrPersistenceFailure)

	// The in-memory mutation is kept, but no transaction is appended so
	// the audit trail never references an unpersisted balance.
	a, _ := store.Account(5001)
	assert.True(t, a.Balance.Equal(decimal.RequireFromString("1500.00")))
	assert.Empty(t, store.transactions)
	assert.Zero(t, store.transactionSaves)
}

func TestDepositTransactionSaveFailure(t *testing.T) {
	store := newFakeStore()
	store.seedAccount(5001, 1001, "1000.00")
	store.transactionsSaveErr = stderrors.New("disk full")
	svc := newTestService(store)

	_, err := svc.Deposit("5001", "500.00")
	assert.ErrorIs(t, err, errors.ErrPersistenceFailure)

	a, _ := store.Account(5001)
	assert.True(t, a.Balance.Equal(decimal.RequireFromString("1500.00")))
	assert.Len(t, store.transactions, 1)
}
