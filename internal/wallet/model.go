package wallet

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	TypeCredit = "credit"
	TypeDebit  = "debit"
)

// Wallet is the per-user stored-value balance, 2-decimal precision. Balance
// only changes through Credit/DebitTx, which append a Transaction in the same
// statement batch, so balance always equals the signed sum of transactions.
type Wallet struct {
	ID        int             `db:"id" json:"id"`
	UserID    int             `db:"user_id" json:"user_id"`
	Balance   decimal.Decimal `db:"balance" json:"balance"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt time.Time       `db:"updated_at" json:"updated_at"`
}

// Transaction is an immutable, append-only audit record of one balance change.
type Transaction struct {
	ID          int             `db:"id" json:"id"`
	WalletID    int             `db:"wallet_id" json:"wallet_id"`
	Amount      decimal.Decimal `db:"amount" json:"amount"`
	Type        string          `db:"type" json:"type"`
	Description *string         `db:"description" json:"description,omitempty"`
	Reference   *string         `db:"reference" json:"reference,omitempty"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
}

type Stats struct {
	Earnings          decimal.Decimal `json:"earnings"`
	Spent             decimal.Decimal `json:"spent"`
	TotalEarnings     decimal.Decimal `json:"totalEarnings"`
	TotalSpent        decimal.Decimal `json:"totalSpent"`
	TotalTransactions int             `json:"totalTransactions"`
}

type DepositRequest struct {
	Amount string `json:"amount" binding:"required"`
}
