package wallet

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

var (
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrWalletNotFound      = errors.New("wallet not found")
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const walletColumns = `id, user_id, balance, created_at, updated_at`

// GetOrCreateWallet provisions the user's wallet on first access. The insert
// is an idempotent upsert, safe under concurrent first-time callers.
func (r *repository) GetOrCreateWallet(ctx context.Context, userID int) (*Wallet, error) {
	w := &Wallet{}
	err := r.db.GetContext(ctx, w, `SELECT `+walletColumns+` FROM wallets WHERE user_id = $1`, userID)
	if err == nil {
		return w, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO wallets (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING`,
		userID,
	)
	if err != nil {
		return nil, err
	}

	err = r.db.GetContext(ctx, w, `SELECT `+walletColumns+` FROM wallets WHERE user_id = $1`, userID)
	if err != nil {
		return nil, err
	}

	return w, nil
}

func (r *repository) GetByUserID(ctx context.Context, userID int) (*Wallet, error) {
	w := &Wallet{}
	err := r.db.GetContext(ctx, w, `SELECT `+walletColumns+` FROM wallets WHERE user_id = $1`, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrWalletNotFound
		}
		return nil, err
	}
	return w, nil
}

// Credit adds funds to the user's wallet and appends the matching credit
// transaction in one database transaction.
func (r *repository) Credit(ctx context.Context, userID int, amount decimal.Decimal, description, reference string) (*Wallet, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, errors.New("credit amount must be positive")
	}
	amount = amount.Round(2)

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var w Wallet
	err = tx.QueryRowxContext(ctx,
		`SELECT `+walletColumns+` FROM wallets WHERE user_id = $1 FOR UPDATE`,
		userID,
	).StructScan(&w)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		err = tx.QueryRowxContext(ctx,
			`INSERT INTO wallets (user_id) VALUES ($1) RETURNING `+walletColumns,
			userID,
		).StructScan(&w)
		if err != nil {
			return nil, err
		}
	}

	newBalance := w.Balance.Add(amount).Round(2)

	err = tx.QueryRowxContext(ctx,
		`UPDATE wallets SET balance = $1, updated_at = NOW() WHERE id = $2 RETURNING `+walletColumns,
		newBalance, w.ID,
	).StructScan(&w)
	if err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO wallet_transactions (wallet_id, amount, type, description, reference)
		 VALUES ($1, $2, $3, $4, $5)`,
		w.ID, amount, TypeCredit, description, reference,
	)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &w, nil
}

// DebitTx deducts amount from the wallet inside the caller's transaction.
// The balance guard is part of the UPDATE itself, so two concurrent debits
// cannot both pass a stale balance check and overdraw.
func (r *repository) DebitTx(ctx context.Context, tx *sqlx.Tx, walletID int, amount decimal.Decimal, description, reference string) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return errors.New("debit amount must be positive")
	}
	amount = amount.Round(2)

	result, err := tx.ExecContext(ctx,
		`UPDATE wallets
		 SET balance = balance - $1, updated_at = NOW()
		 WHERE id = $2 AND balance >= $1`,
		amount, walletID,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrInsufficientBalance
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO wallet_transactions (wallet_id, amount, type, description, reference)
		 VALUES ($1, $2, $3, $4, $5)`,
		walletID, amount, TypeDebit, description, reference,
	)

	return err
}

func (r *repository) GetTransactions(ctx context.Context, userID int, limit, offset int) ([]Transaction, error) {
	if limit <= 0 {
		limit = 50
	}

	var walletID int
	err := r.db.GetContext(ctx, &walletID, `SELECT id FROM wallets WHERE user_id = $1`, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return []Transaction{}, nil
		}
		return nil, err
	}

	var txs []Transaction
	err = r.db.SelectContext(ctx, &txs, `
		SELECT id, wallet_id, amount, type, description, reference, created_at
		FROM wallet_transactions
		WHERE wallet_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, walletID, limit, offset)
	if err != nil {
		return nil, err
	}

	return txs, nil
}

func (r *repository) GetStats(ctx context.Context, userID int) (*Stats, error) {
	var walletID int
	err := r.db.GetContext(ctx, &walletID, `SELECT id FROM wallets WHERE user_id = $1`, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &Stats{}, nil
		}
		return nil, err
	}

	var row struct {
		Earnings          decimal.Decimal `db:"earnings"`
		Spent             decimal.Decimal `db:"spent"`
		TotalEarnings     decimal.Decimal `db:"total_earnings"`
		TotalSpent        decimal.Decimal `db:"total_spent"`
		TotalTransactions int             `db:"total_transactions"`
	}

	err = r.db.GetContext(ctx, &row, `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE type = 'credit' AND created_at >= date_trunc('month', NOW())), 0) AS earnings,
			COALESCE(SUM(amount) FILTER (WHERE type = 'debit' AND created_at >= date_trunc('month', NOW())), 0) AS spent,
			COALESCE(SUM(amount) FILTER (WHERE type = 'credit'), 0) AS total_earnings,
			COALESCE(SUM(amount) FILTER (WHERE type = 'debit'), 0) AS total_spent,
			COUNT(*) AS total_transactions
		FROM wallet_transactions
		WHERE wallet_id = $1
	`, walletID)
	if err != nil {
		return nil, err
	}

	return &Stats{
		Earnings:          row.Earnings,
		Spent:             row.Spent,
		TotalEarnings:     row.TotalEarnings,
		TotalSpent:        row.TotalSpent,
		TotalTransactions: row.TotalTransactions,
	}, nil
}
