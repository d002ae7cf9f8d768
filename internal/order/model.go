package order

import (
	"time"

	"github.com/Moetaz0/BeatMarket-Back/internal/beat"
	"github.com/Moetaz0/BeatMarket-Back/internal/license"

	"github.com/shopspring/decimal"
)

const (
	StatusPending   = "pending"
	StatusPaid      = "paid"
	StatusCancelled = "cancelled"
)

// Order becomes durable only at commit time, already paid. Callers never
// observe a pending order from the wallet checkout flow.
type Order struct {
	ID          int             `db:"id" json:"id"`
	UserID      int             `db:"user_id" json:"user_id"`
	TotalAmount decimal.Decimal `db:"total_amount" json:"totalAmount"`
	Status      string          `db:"status" json:"status"`
	CreatedAt   time.Time       `db:"created_at" json:"createdAt"`
	PaidAt      *time.Time      `db:"paid_at" json:"paidAt,omitempty"`
}

// OrderItem freezes the unit price at purchase time; later beat price changes
// do not touch it.
type OrderItem struct {
	ID        int             `db:"id" json:"id"`
	OrderID   int             `db:"order_id" json:"order_id"`
	BeatID    int             `db:"beat_id" json:"beatId"`
	UnitPrice decimal.Decimal `db:"unit_price" json:"unitPrice"`
	Quantity  int             `db:"quantity" json:"quantity"`
}

type ItemWithBeat struct {
	OrderItem
	BeatTitle string `db:"beat_title" json:"beatTitle"`
}

// PurchasedBeat is one beat from a paid order, with purchase context.
type PurchasedBeat struct {
	BeatID      int             `db:"beat_id" json:"id"`
	Title       string          `db:"title" json:"title"`
	Description *string         `db:"description" json:"description,omitempty"`
	FileURL     string          `db:"file_url" json:"fileUrl"`
	CoverImage  *string         `db:"cover_image" json:"coverImage,omitempty"`
	Price       decimal.Decimal `db:"price" json:"price"`
	Genre       string          `db:"genre" json:"genre"`
	BPM         int             `db:"bpm" json:"bpm"`
	Key         *string         `db:"key" json:"key,omitempty"`
	ProducerID  int             `db:"producer_id" json:"producerId"`
	OrderID     int             `db:"order_id" json:"orderId"`
	Quantity    int             `db:"quantity" json:"quantity"`
	UnitPrice   decimal.Decimal `db:"unit_price" json:"unitPrice"`
	PurchasedAt *time.Time      `db:"purchased_at" json:"purchasedAt,omitempty"`
}

// Quantity is a pointer so an omitted field (defaults to one) can be told
// apart from an explicit zero (rejected).
type CheckoutItem struct {
	BeatID    int  `json:"beatId" binding:"required"`
	Quantity  *int `json:"quantity"`
	LicenseID *int `json:"licenseId"`
}

type CheckoutRequest struct {
	Items []CheckoutItem `json:"items" binding:"required,min=1,dive"`
}

// PricedLine is one validated, priced cart line awaiting commit. License is
// the resolved license (explicit, beat default, or nil).
type PricedLine struct {
	Beat      *beat.Beat
	License   *license.License
	Quantity  int
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
}

type CheckoutResult struct {
	Order   *Order
	Items   []ItemWithBeat
	Balance decimal.Decimal
}
