package transaction

import (
	"time"

	"github.com/shopspring/decimal"
)

// Type represents the kind of a ledger transaction
type Type string

const (
	// Deposit represents money paid into an account
	Deposit Type = "DEPOSIT"
	// Withdrawal represents money taken out of an account
	Withdrawal Type = "WITHDRAWAL"
	// TransferOut represents the debit half of a transfer
	TransferOut Type = "TRANSFER_OUT"
	// TransferIn represents the credit half of a transfer
	TransferIn Type = "TRANSFER_IN"
)

// IsValid reports whether t is a member of the closed transaction type set.
func (t Type) IsValid() bool {
	switch t {
	case Deposit, Withdrawal, TransferOut, TransferIn:
		return true
	}
	return false
}

// Transaction represents one immutable entry in the audit trail.
// Records are append-only: once created they are never mutated or deleted.
// BalanceAfter is a stored snapshot of the account balance immediately
// after the transaction applied, not a value recomputed from history.
type Transaction struct {
	TransactionID int             `json:"transactionId"`
	AccountID     int             `json:"accountId"`
	Type          Type            `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	BalanceAfter  decimal.Decimal `json:"balanceAfter"`
	Date          time.Time       `json:"date"`
	Description   string          `json:"description"`
}
