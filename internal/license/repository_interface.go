package license

import (
	"context"

	"github.com/shopspring/decimal"
)

type Repository interface {
	Create(ctx context.Context, name string, terms *string, priceMultiplier decimal.Decimal, isExclusive bool) (*License, error)
	GetByID(ctx context.Context, id int) (*License, error)
	GetAll(ctx context.Context) ([]License, error)
}
