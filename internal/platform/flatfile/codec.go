package flatfile

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Dikshant1907-cyber/Banking-management-System/internal/domain/account"
	"github.com/Dikshant1907-cyber/Banking-management-System/internal/domain/customer"
	"github.com/Dikshant1907-cyber/Banking-management-System/internal/domain/transaction"
	"github.com/Dikshant1907-cyber/Banking-management-System/internal/domain/user"
)

// delimiter joins fields within a record line. Customer and account lines
// split unboundedly, so a delimiter inside one of their free-text fields
// corrupts the record on reload. That is a documented limitation of the
// file format, carried over deliberately rather than silently fixed.
// Transaction lines are the exception: see parseTransaction.
const delimiter = ","

// timeLayout is the timestamp format used across all persisted files.
const timeLayout = "2006-01-02 15:04:05"

func marshalCustomer(c *customer.Customer) string {
	return strings.Join([]string{
		strconv.Itoa(c.ID), c.Name, c.Email, c.Phone, c.Address,
	}, delimiter)
}

func parseCustomer(line string) (*customer.Customer, error) {
	fields := strings.Split(line, delimiter)
	if len(fields) < 5 {
		return nil, fmt.Errorf("customer record has %d fields, want 5", len(fields))
	}
	id, err := strconv.Atoi(fields[0])
	if err != nil {
		return nil, fmt.Errorf("customer id: %w", err)
	}
	return &customer.Customer{
		ID:      id,
		Name:    fields[1],
		Email:   fields[2],
		Phone:   fields[3],
		Address: fields[4],
	}, nil
}

func marshalAccount(a *account.Account) string {
	return strings.Join([]string{
		strconv.Itoa(a.AccountID),
		strconv.Itoa(a.CustomerID),
		string(a.Type),
		a.Balance.StringFixed(2),
		a.Status,
		a.CreatedDate.Format(timeLayout),
	}, delimiter)
}

func parseAccount(line string) (*account.Account, error) {
	fields := strings.Split(line, delimiter)
	if len(fields) < 6 {
		return nil, fmt.Errorf("account record has %d fields, want 6", len(fields))
	}
	accountID, err := strconv.Atoi(fields[0])
	if err != nil {
		return nil, fmt.Errorf("account id: %w", err)
	}
	customerID, err := strconv.Atoi(fields[1])
	if err != nil {
		return nil, fmt.Errorf("customer id: %w", err)
	}
	accountType := account.Type(fields[2])
	if !accountType.IsValid() {
		return nil, fmt.Errorf("unknown account type %q", fields[2])
	}
	balance, err := decimal.NewFromString(fields[3])
	if err != nil {
		return nil, fmt.Errorf("balance: %w", err)
	}
	created, err := time.ParseInLocation(timeLayout, fields[5], time.Local)
	if err != nil {
		return nil, fmt.Errorf("created date: %w", err)
	}
	return &account.Account{
		AccountID:   accountID,
		CustomerID:  customerID,
		Type:        accountType,
		Balance:     balance,
		Status:      fields[4],
		CreatedDate: created,
	}, nil
}

func marshalTransaction(t *transaction.Transaction) string {
	return strings.Join([]string{
		strconv.Itoa(t.TransactionID),
		strconv.Itoa(t.AccountID),
		string(t.Type),
		t.Amount.StringFixed(2),
		t.BalanceAfter.StringFixed(2),
		t.Date.Format(timeLayout),
		t.Description,
	}, delimiter)
}

// parseTransaction splits into at most 7 fields: everything from the 7th
// field onward is the literal description, so a description may contain
// the delimiter without corrupting the record.
func parseTransaction(line string) (*transaction.Transaction, error) {
	fields := strings.SplitN(line, delimiter, 7)
	if len(fields) < 6 {
		return nil, fmt.Errorf("transaction record has %d fields, want at least 6", len(fields))
	}
	transactionID, err := strconv.Atoi(fields[0])
	if err != nil {
		return nil, fmt.Errorf("transaction id: %w", err)
	}
	accountID, err := strconv.Atoi(fields[1])
	if err != nil {
		return nil, fmt.Errorf("account id: %w", err)
	}
	txType := transaction.Type(fields[2])
	if !txType.IsValid() {
		return nil, fmt.Errorf("unknown transaction type %q", fields[2])
	}
	amount, err := decimal.NewFromString(fields[3])
	if err != nil {
		return nil, fmt.Errorf("amount: %w", err)
	}
	balanceAfter, err := decimal.NewFromString(fields[4])
	if err != nil {
		return nil, fmt.Errorf("balance after: %w", err)
	}
	date, err := time.ParseInLocation(timeLayout, fields[5], time.Local)
	if err != nil {
		return nil, fmt.Errorf("date: %w", err)
	}
	description := ""
	if len(fields) > 6 {
		description = fields[6]
	}
	return &transaction.Transaction{
		TransactionID: transactionID,
		AccountID:     accountID,
		Type:          txType,
		Amount:        amount,
		BalanceAfter:  balanceAfter,
		Date:          date,
		Description:   description,
	}, nil
}

func marshalUser(u *user.User) string {
	return u.Username + delimiter + u.Password
}

func parseUser(line string) (*user.User, error) {
	fields := strings.Split(line, delimiter)
	if len(fields) < 2 {
		return nil, fmt.Errorf("user record has %d fields, want 2", len(fields))
	}
	return &user.User{Username: fields[0], Password: fields[1]}, nil
}

func marshalUserDetails(d *user.Details) string {
	return strings.Join([]string{
		d.Username, d.FirstName, d.LastName, d.Phone, d.Email, d.Address,
	}, delimiter)
}

func parseUserDetails(line string) (*user.Details, error) {
	fields := strings.Split(line, delimiter)
	if len(fields) < 6 {
		return nil, fmt.Errorf("user details record has %d fields, want 6", len(fields))
	}
	return &user.Details{
		Username:  fields[0],
		FirstName: fields[1],
		LastName:  fields[2],
		Phone:     fields[3],
		Email:     fields[4],
		Address:   fields[5],
	}, nil
}
