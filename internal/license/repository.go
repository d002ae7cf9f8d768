package license

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

var ErrLicenseNotFound = errors.New("license not found")

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, name string, terms *string, priceMultiplier decimal.Decimal, isExclusive bool) (*License, error) {
	query := `
		INSERT INTO licenses (name, terms, price_multiplier, is_exclusive)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, terms, price_multiplier, is_exclusive
	`

	var lic License
	err := r.db.GetContext(ctx, &lic, query, name, terms, priceMultiplier, isExclusive)
	if err != nil {
		return nil, err
	}

	return &lic, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*License, error) {
	query := `
		SELECT id, name, terms, price_multiplier, is_exclusive
		FROM licenses
		WHERE id = $1
	`

	var lic License
	err := r.db.GetContext(ctx, &lic, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLicenseNotFound
		}
		return nil, err
	}

	return &lic, nil
}

func (r *repository) GetAll(ctx context.Context) ([]License, error) {
	query := `
		SELECT id, name, terms, price_multiplier, is_exclusive
		FROM licenses
		ORDER BY price_multiplier ASC
	`

	var licenses []License
	err := r.db.SelectContext(ctx, &licenses, query)
	if err != nil {
		return nil, err
	}

	return licenses, nil
}
