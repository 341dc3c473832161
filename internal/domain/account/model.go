package account

import (
	"time"

	"github.com/shopspring/decimal"
)

// Type represents the type of an account
type Type string

const (
	// Savings represents a savings account
	Savings Type = "Savings"
	// Current represents a current account
	Current Type = "Current"
)

// IsValid reports whether t is a member of the closed account type set.
func (t Type) IsValid() bool {
	switch t {
	case Savings, Current:
		return true
	}
	return false
}

// StatusActive is the status assigned at creation. No status transition
// exists; the field is persisted so a transition can be added later without
// a file format change.
const StatusActive = "Active"

// Account represents a bank account owned by a customer.
// CustomerID is a weak reference: it stores the owning customer's id and
// lookups must tolerate the customer being absent.
type Account struct {
	AccountID   int             `json:"accountId"`
	CustomerID  int             `json:"customerId"`
	Type        Type            `json:"accountType"`
	Balance     decimal.Decimal `json:"balance"`
	Status      string          `json:"status"`
	CreatedDate time.Time       `json:"createdDate"`
}

// OpenAccountRequest represents the request to open a new account.
// Fields arrive as text from the presentation shell and are parsed and
// validated by the ledger engine.
type OpenAccountRequest struct {
	CustomerID     string `json:"customerId"`
	Type           string `json:"accountType"`
	InitialDeposit string `json:"initialDeposit"`
}

// Details joins an account with its owning customer for display.
// CustomerName is "N/A" when the weak customer reference does not resolve.
type Details struct {
	AccountID    int             `json:"accountId"`
	CustomerID   int             `json:"customerId"`
	CustomerName string          `json:"customerName"`
	Type         Type            `json:"accountType"`
	Status       string          `json:"status"`
	Balance      decimal.Decimal `json:"balance"`
	CreatedDate  time.Time       `json:"createdDate"`
}
