package ledger

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Dikshant1907-cyber/Banking-management-System/internal/domain/account"
	"github.com/Dikshant1907-cyber/Banking-management-System/internal/domain/customer"
	"github.com/Dikshant1907-cyber/Banking-management-System/internal/domain/errors"
	"github.com/Dikshant1907-cyber/Banking-management-System/internal/domain/transaction"
)

// Service provides the ledger business logic: customer registration,
// account opening, deposits, withdrawals, transfers and the read-only
// inquiry operations. Identifier and amount inputs arrive as text from the
// presentation shell and are parsed here; every operation validates fully
// before mutating anything, so a failed operation never leaves a partial
// effect in the record store.
//
// One mutex serializes each read-validate-mutate-persist sequence. The
// shell is single-user, but a transfer touches two accounts and must not
// interleave with any other mutation.
type Service struct {
	mu    sync.Mutex
	store Store
	log   *zap.Logger
}

// NewService creates a new ledger service
func NewService(store Store, log *zap.Logger) *Service {
	return &Service{
		store: store,
		log:   log,
	}
}

// CreateCustomer registers a new customer. Every field is required.
func (s *Service) CreateCustomer(req *customer.CreateCustomerRequest) (*customer.Customer, error) {
	c := &customer.Customer{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Phone:   strings.TrimSpace(req.Phone),
		Address: strings.TrimSpace(req.Address),
	}
	if c.Name == "" || c.Email == "" || c.Phone == "" || c.Address == "" {
		return nil, errors.NewInvalidInputError("all customer fields are required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.store.AddCustomer(c)
	if err := s.store.SaveCustomers(); err != nil {
		s.log.Error("saving customers failed", zap.Int("customerId", id), zap.Error(err))
		return nil, errors.NewPersistenceError("customer registered but not saved to disk", err)
	}

	s.log.Info("customer registered", zap.Int("customerId", id), zap.String("name", c.Name))
	return c, nil
}

// OpenAccount opens an account for an existing customer. The initial
// deposit may be exactly zero; when it is positive, a DEPOSIT transaction
// is recorded with the same timestamp as the account's creation.
func (s *Service) OpenAccount(req *account.OpenAccountRequest) (*account.Account, error) {
	customerID, err := parseID("customer id", req.CustomerID)
	if err != nil {
		return nil, err
	}
	deposit, err := parseAmount(req.InitialDeposit)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.store.Customer(customerID); !ok {
		return nil, errors.NewNotFoundError(fmt.Sprintf("customer %d not found", customerID))
	}
	if deposit.IsNegative() {
		return nil, errors.NewInvalidAmountError("initial deposit cannot be negative")
	}
	accountType := account.Type(strings.TrimSpace(req.Type))
	if !accountType.IsValid() {
		return nil, errors.NewInvalidInputError(fmt.Sprintf("unknown account type %q", req.Type))
	}

	now := time.Now()
	a := &account.Account{
		CustomerID:  customerID,
		Type:        accountType,
		Balance:     deposit,
		Status:      account.StatusActive,
		CreatedDate: now,
	}
	id := s.store.AddAccount(a)
	if err := s.store.SaveAccounts(); err != nil {
		s.log.Error("saving accounts failed", zap.Int("accountId", id), zap.Error(err))
		return nil, errors.NewPersistenceError("account opened but not saved to disk", err)
	}

	if deposit.IsPositive() {
		t := &transaction.Transaction{
			AccountID:    id,
			Type:         transaction.Deposit,
			Amount:       deposit,
			BalanceAfter: deposit,
			Date:         now,
			Description:  "Initial deposit",
		}
		s.store.AddTransaction(t)
		if err := s.store.SaveTransactions(); err != nil {
			s.log.Error("saving transactions failed", zap.Int("accountId", id), zap.Error(err))
			return nil, errors.NewPersistenceError("account opened but transaction log not saved to disk", err)
		}
	}

	s.log.Info("account opened",
		zap.Int("accountId", id),
		zap.Int("customerId", customerID),
		zap.String("type", string(accountType)),
		zap.String("initialDeposit", deposit.StringFixed(2)))
	return a, nil
}

// Deposit adds a positive amount to an account's balance and records a
// DEPOSIT transaction carrying the resulting balance.
func (s *Service) Deposit(accountID, amount string) (*transaction.Transaction, error) {
	id, amt, err := parseIDAndAmount(accountID, amount)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.store.Account(id)
	if !ok {
		return nil, errors.NewNotFoundError(fmt.Sprintf("account %d not found", id))
	}
	if !amt.IsPositive() {
		return nil, errors.NewInvalidAmountError("deposit amount must be positive")
	}

	a.Balance = a.Balance.Add(amt)
	if err := s.store.SaveAccounts(); err != nil {
		// The in-memory balance keeps the new value; no transaction is
		// appended, so the audit trail never references an unpersisted
		// balance.
		s.log.Error("saving accounts failed", zap.Int("accountId", id), zap.Error(err))
		return nil, errors.NewPersistenceError("deposit applied but not saved to disk", err)
	}

	t := &transaction.Transaction{
		AccountID:    id,
		Type:         transaction.Deposit,
		Amount:       amt,
		BalanceAfter: a.Balance,
		Date:         time.Now(),
		Description:  "Cash Deposit",
	}
	s.store.AddTransaction(t)
	if err := s.store.SaveTransactions(); err != nil {
		s.log.Error("saving transactions failed", zap.Int("accountId", id), zap.Error(err))
		return nil, errors.NewPersistenceError("deposit applied but transaction log not saved to disk", err)
	}

	s.log.Info("deposit",
		zap.Int("accountId", id),
		zap.String("amount", amt.StringFixed(2)),
		zap.String("balance", a.Balance.StringFixed(2)))
	return t, nil
}

// Withdraw removes a positive amount from an account's balance, refusing
// to let the balance go negative, and records a WITHDRAWAL transaction.
func (s *Service) Withdraw(accountID, amount string) (*transaction.Transaction, error) {
	id, amt, err := parseIDAndAmount(accountID, amount)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.store.Account(id)
	if !ok {
		return nil, errors.NewNotFoundError(fmt.Sprintf("account %d not found", id))
	}
	if !amt.IsPositive() {
		return nil, errors.NewInvalidAmountError("withdrawal amount must be positive")
	}
	if a.Balance.LessThan(amt) {
		return nil, errors.NewInsufficientFundsError(
			fmt.Sprintf("insufficient funds: balance is %s", a.Balance.StringFixed(2)))
	}

	a.Balance = a.Balance.Sub(amt)
	if err := s.store.SaveAccounts(); err != nil {
		s.log.Error("saving accounts failed", zap.Int("accountId", id), zap.Error(err))
		return nil, errors.NewPersistenceError("withdrawal applied but not saved to disk", err)
	}

	t := &transaction.Transaction{
		AccountID:    id,
		Type:         transaction.Withdrawal,
		Amount:       amt,
		BalanceAfter: a.Balance,
		Date:         time.Now(),
		Description:  "Cash Withdrawal",
	}
	s.store.AddTransaction(t)
	if err := s.store.SaveTransactions(); err != nil {
		s.log.Error("saving transactions failed", zap.Int("accountId", id), zap.Error(err))
		return nil, errors.NewPersistenceError("withdrawal applied but transaction log not saved to disk", err)
	}

	s.log.Info("withdrawal",
		zap.Int("accountId", id),
		zap.String("amount", amt.StringFixed(2)),
		zap.String("balance", a.Balance.StringFixed(2)))
	return t, nil
}

// Transfer moves a positive amount between two distinct accounts. Both
// balance mutations happen together under the engine lock, so value is
// conserved: the two accounts' total is the same before and after. Two
// transactions sharing one timestamp record the debit and credit halves.
func (s *Service) Transfer(sourceID, destID, amount string) (*TransferResult, error) {
	srcID, err := parseID("source account id", sourceID)
	if err != nil {
		return nil, err
	}
	dstID, err := parseID("destination account id", destID)
	if err != nil {
		return nil, err
	}
	amt, err := parseAmount(amount)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	src, okSrc := s.store.Account(srcID)
	dst, okDst := s.store.Account(dstID)
	if !okSrc || !okDst {
		return nil, errors.NewNotFoundError("one or both account ids not found")
	}
	if srcID == dstID {
		return nil, errors.NewSameAccountTransferError()
	}
	if !amt.IsPositive() {
		return nil, errors.NewInvalidAmountError("transfer amount must be positive")
	}
	if src.Balance.LessThan(amt) {
		return nil, errors.NewInsufficientFundsError(
			fmt.Sprintf("insufficient funds in source account: balance is %s", src.Balance.StringFixed(2)))
	}

	src.Balance = src.Balance.Sub(amt)
	dst.Balance = dst.Balance.Add(amt)
	if err := s.store.SaveAccounts(); err != nil {
		// Both in-memory balances keep their new values; skipping the
		// transactions keeps the audit trail consistent with the file.
		s.log.Error("saving accounts failed",
			zap.Int("sourceAccountId", srcID), zap.Int("destAccountId", dstID), zap.Error(err))
		return nil, errors.NewPersistenceError("transfer applied but not saved to disk", err)
	}

	now := time.Now()
	out := &transaction.Transaction{
		AccountID:    srcID,
		Type:         transaction.TransferOut,
		Amount:       amt,
		BalanceAfter: src.Balance,
		Date:         now,
		Description:  fmt.Sprintf("Transfer to %d", dstID),
	}
	s.store.AddTransaction(out)
	in := &transaction.Transaction{
		AccountID:    dstID,
		Type:         transaction.TransferIn,
		Amount:       amt,
		BalanceAfter: dst.Balance,
		Date:         now,
		Description:  fmt.Sprintf("Transfer from %d", srcID),
	}
	s.store.AddTransaction(in)
	if err := s.store.SaveTransactions(); err != nil {
		s.log.Error("saving transactions failed",
			zap.Int("sourceAccountId", srcID), zap.Int("destAccountId", dstID), zap.Error(err))
		return nil, errors.NewPersistenceError("transfer applied but transaction log not saved to disk", err)
	}

	s.log.Info("transfer",
		zap.Int("sourceAccountId", srcID),
		zap.Int("destAccountId", dstID),
		zap.String("amount", amt.StringFixed(2)))
	return &TransferResult{Out: out, In: in}, nil
}

// CheckBalance returns the current state of an account together with its
// owning customer's name. A dangling customer reference is reported as
// "N/A", not an error.
func (s *Service) CheckBalance(accountID string) (*account.Details, error) {
	id, err := parseID("account id", accountID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accountDetails(id)
}

// AccountDetails returns the same joined view as CheckBalance; it backs
// the listing's per-account detail action.
func (s *Service) AccountDetails(accountID string) (*account.Details, error) {
	return s.CheckBalance(accountID)
}

// History returns every transaction recorded against an account, oldest
// first. The account must exist; an empty history is a valid result.
func (s *Service) History(accountID string) ([]*transaction.Transaction, error) {
	id, err := parseID("account id", accountID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.store.Account(id); !ok {
		return nil, errors.NewNotFoundError(fmt.Sprintf("account %d not found", id))
	}
	return s.store.TransactionsByAccount(id), nil
}

// ListCustomers returns all customers in insertion order.
func (s *Service) ListCustomers() []*customer.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Customers()
}

// ListAccounts returns all accounts in insertion order.
func (s *Service) ListAccounts() []*account.Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Accounts()
}

// DashboardSummary computes the aggregates shown on the dashboard.
func (s *Service) DashboardSummary() *Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	accounts := s.store.Accounts()
	sum := &Summary{
		TotalCustomers:    len(s.store.Customers()),
		TotalAccounts:     len(accounts),
		TotalTransactions: len(s.store.Transactions()),
	}
	for _, a := range accounts {
		if a.Status == account.StatusActive {
			sum.ActiveAccounts++
		}
		sum.TotalBalance = sum.TotalBalance.Add(a.Balance)
	}
	if len(accounts) > 0 {
		sum.AverageBalance = sum.TotalBalance.Div(decimal.NewFromInt(int64(len(accounts))))
	}
	return sum
}

func (s *Service) accountDetails(id int) (*account.Details, error) {
	a, ok := s.store.Account(id)
	if !ok {
		return nil, errors.NewNotFoundError(fmt.Sprintf("account %d not found", id))
	}

	name := "N/A"
	if c, ok := s.store.Customer(a.CustomerID); ok {
		name = c.Name
	}
	return &account.Details{
		AccountID:    a.AccountID,
		CustomerID:   a.CustomerID,
		CustomerName: name,
		Type:         a.Type,
		Status:       a.Status,
		Balance:      a.Balance,
		CreatedDate:  a.CreatedDate,
	}, nil
}

// Helper functions

// parseID parses a textual record identifier.
func parseID(field, raw string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, errors.NewInvalidInputError(field + " must be a number")
	}
	return id, nil
}

// parseAmount parses a textual monetary amount. Sign and range checks are
// operation-specific and happen at the call sites.
func parseAmount(raw string) (decimal.Decimal, error) {
	amt, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Decimal{}, errors.NewInvalidInputError("amount must be a number")
	}
	return amt, nil
}

func parseIDAndAmount(accountID, amount string) (int, decimal.Decimal, error) {
	id, err := parseID("account id", accountID)
	if err != nil {
		return 0, decimal.Decimal{}, err
	}
	amt, err := parseAmount(amount)
	if err != nil {
		return 0, decimal.Decimal{}, err
	}
	return id, amt, nil
}
