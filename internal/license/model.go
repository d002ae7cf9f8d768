package license

import "github.com/shopspring/decimal"

// License is a usage-rights tier applied to a beat at checkout. The price
// multiplier scales the beat's base price; an exclusive license transfers
// sole ownership of the beat to the buyer.
type License struct {
	ID              int             `db:"id" json:"id"`
	Name            string          `db:"name" json:"name"`
	Terms           *string         `db:"terms" json:"terms,omitempty"`
	PriceMultiplier decimal.Decimal `db:"price_multiplier" json:"price_multiplier"`
	IsExclusive     bool            `db:"is_exclusive" json:"is_exclusive"`
}

type CreateLicenseRequest struct {
	Name            string  `json:"name" binding:"required,max=255"`
	Terms           *string `json:"terms"`
	PriceMultiplier string  `json:"price_multiplier" binding:"required"`
	IsExclusive     bool    `json:"is_exclusive"`
}
