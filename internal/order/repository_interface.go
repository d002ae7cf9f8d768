package order

import (
	"context"

	"github.com/shopspring/decimal"
)

type Repository interface {
	CommitCheckout(ctx context.Context, userID, walletID int, total decimal.Decimal, lines []PricedLine) (*Order, []ItemWithBeat, error)
	GetByID(ctx context.Context, orderID int) (*Order, error)
	GetItems(ctx context.Context, orderID int) ([]ItemWithBeat, error)
	GetOrderBeats(ctx context.Context, orderID int) ([]PurchasedBeat, error)
	ListByUser(ctx context.Context, userID int) ([]Order, error)
	ListPurchasedBeats(ctx context.Context, userID int) ([]PurchasedBeat, error)
	HasPurchasedBeat(ctx context.Context, userID, beatID int) (bool, error)
}
