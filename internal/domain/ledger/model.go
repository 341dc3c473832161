package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/Dikshant1907-cyber/Banking-management-System/internal/domain/transaction"
)

// TransferResult represents the outcome of a successful transfer: the two
// audit trail entries it produced, which share one timestamp.
type TransferResult struct {
	Out *transaction.Transaction `json:"out"`
	In  *transaction.Transaction `json:"in"`
}

// Summary represents the dashboard aggregates over the whole ledger.
type Summary struct {
	TotalCustomers    int             `json:"totalCustomers"`
	TotalAccounts     int             `json:"totalAccounts"`
	ActiveAccounts    int             `json:"activeAccounts"`
	TotalTransactions int             `json:"totalTransactions"`
	TotalBalance      decimal.Decimal `json:"totalBalance"`
	AverageBalance    decimal.Decimal `json:"averageBalance"`
}
