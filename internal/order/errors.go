package order

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrNotOrderOwner = errors.New("order belongs to another user")
	ErrEmptyCart     = errors.New("items are required")
)

type BeatNotFoundError struct {
	BeatID int
}

func (e *BeatNotFoundError) Error() string {
	return fmt.Sprintf("beat not found: %d", e.BeatID)
}

type LicenseNotFoundError struct {
	LicenseID int
}

func (e *LicenseNotFoundError) Error() string {
	return fmt.Sprintf("license not found: %d", e.LicenseID)
}

type InvalidQuantityError struct {
	ItemIndex int
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("invalid quantity for item #%d", e.ItemIndex)
}

// ExclusivityBlockedError names the offending beat so the client can report it.
type ExclusivityBlockedError struct {
	BeatTitle string
}

func (e *ExclusivityBlockedError) Error() string {
	return fmt.Sprintf("beat '%s' is exclusively owned by another user", e.BeatTitle)
}

// InsufficientFundsError carries both figures for client display.
type InsufficientFundsError struct {
	Balance decimal.Decimal
	Total   decimal.Decimal
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient wallet balance: balance %s, total %s", e.Balance.StringFixed(2), e.Total.StringFixed(2))
}
