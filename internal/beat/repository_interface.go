package beat

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type Repository interface {
	Create(ctx context.Context, b *Beat) (*Beat, error)
	GetByID(ctx context.Context, id int) (*Beat, error)
	GetAll(ctx context.Context, genre string) ([]Beat, error)
	GetByBeatmaker(ctx context.Context, userID int) ([]Beat, error)
	SetExclusiveOwner(ctx context.Context, tx *sqlx.Tx, beatID, ownerID int) error
}
