package order

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Moetaz0/BeatMarket-Back/internal/beat"
	"github.com/Moetaz0/BeatMarket-Back/internal/wallet"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type repository struct {
	db         *sqlx.DB
	walletRepo wallet.Repository
	beatRepo   beat.Repository
}

func NewRepository(db *sqlx.DB, walletRepo wallet.Repository, beatRepo beat.Repository) Repository {
	return &repository{
		db:         db,
		walletRepo: walletRepo,
		beatRepo:   beatRepo,
	}
}

const orderColumns = `id, user_id, total_amount, status, created_at, paid_at`

// CommitCheckout runs the entire commit phase in one database transaction:
// conditional wallet debit, debit transaction record, paid order with its
// items, and exclusivity transfers. Either all of it lands or none of it
// does; no order can exist without its debit, and no debit without its order.
func (r *repository) CommitCheckout(ctx context.Context, userID, walletID int, total decimal.Decimal, lines []PricedLine) (*Order, []ItemWithBeat, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, nil, err
	}
	defer tx.Rollback()

	if err := r.walletRepo.DebitTx(ctx, tx, walletID, total, "Beat purchase", "order_checkout"); err != nil {
		return nil, nil, err
	}

	var o Order
	err = tx.QueryRowxContext(ctx,
		`INSERT INTO orders (user_id, total_amount, status, paid_at)
		 VALUES ($1, $2, 'paid', NOW())
		 RETURNING `+orderColumns,
		userID, total,
	).StructScan(&o)
	if err != nil {
		return nil, nil, err
	}

	items := make([]ItemWithBeat, 0, len(lines))
	for _, line := range lines {
		var item OrderItem
		err = tx.QueryRowxContext(ctx,
			`INSERT INTO order_items (order_id, beat_id, unit_price, quantity)
			 VALUES ($1, $2, $3, $4)
			 RETURNING id, order_id, beat_id, unit_price, quantity`,
			o.ID, line.Beat.ID, line.UnitPrice, line.Quantity,
		).StructScan(&item)
		if err != nil {
			return nil, nil, err
		}
		items = append(items, ItemWithBeat{OrderItem: item, BeatTitle: line.Beat.Title})
	}

	for _, line := range lines {
		if GrantsExclusivity(line.License) {
			if err := r.beatRepo.SetExclusiveOwner(ctx, tx, line.Beat.ID, userID); err != nil {
				return nil, nil, err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, err
	}

	return &o, items, nil
}

func (r *repository) GetByID(ctx context.Context, orderID int) (*Order, error) {
	var o Order
	err := r.db.GetContext(ctx, &o, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *repository) GetItems(ctx context.Context, orderID int) ([]ItemWithBeat, error) {
	query := `
		SELECT
			oi.id,
			oi.order_id,
			oi.beat_id,
			oi.unit_price,
			oi.quantity,
			b.title AS beat_title
		FROM order_items oi
		JOIN beats b ON oi.beat_id = b.id
		WHERE oi.order_id = $1
		ORDER BY oi.id
	`

	var items []ItemWithBeat
	err := r.db.SelectContext(ctx, &items, query, orderID)
	if err != nil {
		return nil, err
	}

	return items, nil
}

func (r *repository) GetOrderBeats(ctx context.Context, orderID int) ([]PurchasedBeat, error) {
	query := `
		SELECT
			b.id AS beat_id,
			b.title,
			b.description,
			b.file_url,
			b.cover_image,
			b.price,
			b.genre,
			b.bpm,
			b.key,
			b.user_id AS producer_id,
			o.id AS order_id,
			oi.quantity,
			oi.unit_price,
			o.paid_at AS purchased_at
		FROM orders o
		JOIN order_items oi ON oi.order_id = o.id
		JOIN beats b ON b.id = oi.beat_id
		WHERE o.id = $1
		ORDER BY oi.id
	`

	var beats []PurchasedBeat
	err := r.db.SelectContext(ctx, &beats, query, orderID)
	if err != nil {
		return nil, err
	}

	return beats, nil
}

func (r *repository) ListByUser(ctx context.Context, userID int) ([]Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE user_id = $1 ORDER BY created_at DESC`

	var orders []Order
	err := r.db.SelectContext(ctx, &orders, query, userID)
	if err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *repository) ListPurchasedBeats(ctx context.Context, userID int) ([]PurchasedBeat, error) {
	query := `
		SELECT
			b.id AS beat_id,
			b.title,
			b.description,
			b.file_url,
			b.cover_image,
			b.price,
			b.genre,
			b.bpm,
			b.key,
			b.user_id AS producer_id,
			o.id AS order_id,
			oi.quantity,
			oi.unit_price,
			o.paid_at AS purchased_at
		FROM orders o
		JOIN order_items oi ON oi.order_id = o.id
		JOIN beats b ON b.id = oi.beat_id
		WHERE o.user_id = $1 AND o.status = 'paid'
		ORDER BY o.created_at DESC, oi.id
	`

	var beats []PurchasedBeat
	err := r.db.SelectContext(ctx, &beats, query, userID)
	if err != nil {
		return nil, err
	}

	return beats, nil
}

func (r *repository) HasPurchasedBeat(ctx context.Context, userID, beatID int) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1
			FROM orders o
			JOIN order_items oi ON oi.order_id = o.id
			WHERE o.user_id = $1 AND o.status = 'paid' AND oi.beat_id = $2
		)
	`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, userID, beatID)
	if err != nil {
		return false, err
	}

	return exists, nil
}
