package wallet

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type Repository interface {
	GetOrCreateWallet(ctx context.Context, userID int) (*Wallet, error)
	GetByUserID(ctx context.Context, userID int) (*Wallet, error)
	Credit(ctx context.Context, userID int, amount decimal.Decimal, description, reference string) (*Wallet, error)
	DebitTx(ctx context.Context, tx *sqlx.Tx, walletID int, amount decimal.Decimal, description, reference string) error
	GetTransactions(ctx context.Context, userID int, limit, offset int) ([]Transaction, error)
	GetStats(ctx context.Context, userID int) (*Stats, error)
}
