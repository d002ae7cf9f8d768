package beat

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrBeatNotFound = errors.New("beat not found")

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const beatColumns = `id, title, description, file_url, cover_image, price, genre, bpm, key, user_id, license_id, is_exclusive, exclusive_owner_id, uploaded_at`

func (r *repository) Create(ctx context.Context, b *Beat) (*Beat, error) {
	query := `
		INSERT INTO beats (title, description, file_url, cover_image, price, genre, bpm, key, user_id, license_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + beatColumns

	var created Beat
	err := r.db.GetContext(ctx, &created, query,
		b.Title, b.Description, b.FileURL, b.CoverImage, b.Price, b.Genre, b.BPM, b.Key, b.UserID, b.LicenseID,
	)
	if err != nil {
		return nil, err
	}

	return &created, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Beat, error) {
	query := `SELECT ` + beatColumns + ` FROM beats WHERE id = $1`

	var b Beat
	err := r.db.GetContext(ctx, &b, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBeatNotFound
		}
		return nil, err
	}

	return &b, nil
}

func (r *repository) GetAll(ctx context.Context, genre string) ([]Beat, error) {
	var beats []Beat
	var err error

	if genre != "" {
		query := `SELECT ` + beatColumns + ` FROM beats WHERE genre = $1 ORDER BY uploaded_at DESC`
		err = r.db.SelectContext(ctx, &beats, query, genre)
	} else {
		query := `SELECT ` + beatColumns + ` FROM beats ORDER BY uploaded_at DESC`
		err = r.db.SelectContext(ctx, &beats, query)
	}

	if err != nil {
		return nil, err
	}

	return beats, nil
}

func (r *repository) GetByBeatmaker(ctx context.Context, userID int) ([]Beat, error) {
	query := `SELECT ` + beatColumns + ` FROM beats WHERE user_id = $1 ORDER BY uploaded_at DESC`

	var beats []Beat
	err := r.db.SelectContext(ctx, &beats, query, userID)
	if err != nil {
		return nil, err
	}

	return beats, nil
}

// SetExclusiveOwner marks a beat exclusively owned inside the caller's
// transaction. Flag and owner are written by one statement so the pair can
// never diverge, whatever the interleaving.
func (r *repository) SetExclusiveOwner(ctx context.Context, tx *sqlx.Tx, beatID, ownerID int) error {
	query := `
		UPDATE beats
		SET is_exclusive = TRUE, exclusive_owner_id = $1
		WHERE id = $2
	`

	result, err := tx.ExecContext(ctx, query, ownerID, beatID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrBeatNotFound
	}

	return nil
}
