package beat

import (
	"time"

	"github.com/shopspring/decimal"
)

// Beat is a sellable audio listing. IsExclusive and ExclusiveOwnerID move
// together: both are set by a paid exclusive-license purchase and are never
// written separately.
type Beat struct {
	ID               int             `db:"id" json:"id"`
	Title            string          `db:"title" json:"title"`
	Description      *string         `db:"description" json:"description,omitempty"`
	FileURL          string          `db:"file_url" json:"file_url"`
	CoverImage       *string         `db:"cover_image" json:"cover_image,omitempty"`
	Price            decimal.Decimal `db:"price" json:"price"`
	Genre            string          `db:"genre" json:"genre"`
	BPM              int             `db:"bpm" json:"bpm"`
	Key              *string         `db:"key" json:"key,omitempty"`
	UserID           int             `db:"user_id" json:"user_id"`
	LicenseID        *int            `db:"license_id" json:"license_id,omitempty"`
	IsExclusive      bool            `db:"is_exclusive" json:"is_exclusive"`
	ExclusiveOwnerID *int            `db:"exclusive_owner_id" json:"exclusive_owner_id,omitempty"`
	UploadedAt       time.Time       `db:"uploaded_at" json:"uploaded_at"`
}

type CreateBeatRequest struct {
	Title       string  `json:"title" binding:"required,max=255"`
	Description *string `json:"description"`
	FileURL     string  `json:"file_url" binding:"required"`
	CoverImage  *string `json:"cover_image"`
	Price       string  `json:"price" binding:"required"`
	Genre       string  `json:"genre" binding:"required,max=50"`
	BPM         int     `json:"bpm" binding:"required,min=1"`
	Key         *string `json:"key"`
	LicenseID   *int    `json:"license_id"`
}
