package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/Moetaz0/BeatMarket-Back/internal/beat"
	"github.com/Moetaz0/BeatMarket-Back/internal/email"
	"github.com/Moetaz0/BeatMarket-Back/internal/license"
	"github.com/Moetaz0/BeatMarket-Back/internal/logger"
	"github.com/Moetaz0/BeatMarket-Back/internal/metrics"
	"github.com/Moetaz0/BeatMarket-Back/internal/user"
	"github.com/Moetaz0/BeatMarket-Back/internal/wallet"
)

type Service interface {
	Checkout(ctx context.Context, userID int, req CheckoutRequest) (*CheckoutResult, error)
	GetOrder(ctx context.Context, userID, orderID int) (*Order, []ItemWithBeat, error)
	GetOrderBeats(ctx context.Context, userID, orderID int) (*Order, []PurchasedBeat, error)
	ListUserOrders(ctx context.Context, userID int) ([]Order, error)
	ListPurchasedBeats(ctx context.Context, userID int) ([]PurchasedBeat, error)
	HasPurchasedBeat(ctx context.Context, userID, beatID int) (bool, error)
}

type service struct {
	orderRepo    Repository
	beatRepo     beat.Repository
	licenseRepo  license.Repository
	walletRepo   wallet.Repository
	userRepo     user.Repository
	emailService *email.Service
}

func NewService(
	orderRepo Repository,
	beatRepo beat.Repository,
	licenseRepo license.Repository,
	walletRepo wallet.Repository,
	userRepo user.Repository,
	emailService *email.Service,
) Service {
	return &service{
		orderRepo:    orderRepo,
		beatRepo:     beatRepo,
		licenseRepo:  licenseRepo,
		walletRepo:   walletRepo,
		userRepo:     userRepo,
		emailService: emailService,
	}
}

// Checkout converts a cart into a paid order. Steps 1-3 (wallet provisioning,
// validation, pricing, funds check) write nothing except the wallet upsert;
// every write of the commit phase goes through CommitCheckout as one unit.
func (s *service) Checkout(ctx context.Context, userID int, req CheckoutRequest) (*CheckoutResult, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyCart
	}

	// Wallet provisioning persists regardless of checkout outcome.
	w, err := s.walletRepo.GetOrCreateWallet(ctx, userID)
	if err != nil {
		return nil, err
	}

	lines := make([]PricedLine, 0, len(req.Items))
	for i, item := range req.Items {
		// Only a missing quantity defaults to one; an explicit zero is rejected.
		quantity := 1
		if item.Quantity != nil {
			quantity = *item.Quantity
		}
		if quantity < 1 {
			return nil, &InvalidQuantityError{ItemIndex: i + 1}
		}

		b, err := s.beatRepo.GetByID(ctx, item.BeatID)
		if err != nil {
			if errors.Is(err, beat.ErrBeatNotFound) {
				return nil, &BeatNotFoundError{BeatID: item.BeatID}
			}
			return nil, err
		}

		if err := CheckAvailability(b, userID); err != nil {
			return nil, err
		}

		lic, err := s.resolveLicense(ctx, item.LicenseID, b)
		if err != nil {
			return nil, err
		}

		unitPrice, lineTotal := PriceLine(b.Price, MultiplierFor(lic), quantity)
		lines = append(lines, PricedLine{
			Beat:      b,
			License:   lic,
			Quantity:  quantity,
			UnitPrice: unitPrice,
			LineTotal: lineTotal,
		})
	}

	total := OrderTotal(lines)

	if w.Balance.LessThan(total) {
		metrics.RecordCheckout("insufficient_funds")
		return nil, &InsufficientFundsError{Balance: w.Balance, Total: total}
	}

	o, items, err := s.orderRepo.CommitCheckout(ctx, userID, w.ID, total, lines)
	if err != nil {
		metrics.RecordCheckout("failed")
		if errors.Is(err, wallet.ErrInsufficientBalance) {
			// Lost a race against a concurrent checkout on the same wallet.
			if fresh, ferr := s.walletRepo.GetByUserID(ctx, userID); ferr == nil {
				return nil, &InsufficientFundsError{Balance: fresh.Balance, Total: total}
			}
			return nil, &InsufficientFundsError{Balance: w.Balance, Total: total}
		}
		return nil, fmt.Errorf("checkout commit: %w", err)
	}

	metrics.RecordCheckout("paid")
	metrics.RecordCheckoutAmount(total.InexactFloat64())
	for _, line := range lines {
		if GrantsExclusivity(line.License) {
			metrics.RecordExclusiveGrant()
		}
	}

	newBalance := w.Balance.Sub(total).Round(2)
	if fresh, ferr := s.walletRepo.GetByUserID(ctx, userID); ferr == nil {
		newBalance = fresh.Balance
	}

	s.sendConfirmation(ctx, userID, o, items)

	return &CheckoutResult{
		Order:   o,
		Items:   items,
		Balance: newBalance,
	}, nil
}

// resolveLicense picks the effective license: explicitly requested id first,
// then the beat's default, then none. An unknown explicit id fails the whole
// checkout; the beat's own default is trusted reference data.
func (s *service) resolveLicense(ctx context.Context, requestedID *int, b *beat.Beat) (*license.License, error) {
	if requestedID != nil {
		lic, err := s.licenseRepo.GetByID(ctx, *requestedID)
		if err != nil {
			if errors.Is(err, license.ErrLicenseNotFound) {
				return nil, &LicenseNotFoundError{LicenseID: *requestedID}
			}
			return nil, err
		}
		return lic, nil
	}

	if b.LicenseID != nil {
		lic, err := s.licenseRepo.GetByID(ctx, *b.LicenseID)
		if err != nil {
			return nil, fmt.Errorf("default license %d for beat %d: %w", *b.LicenseID, b.ID, err)
		}
		return lic, nil
	}

	return nil, nil
}

// sendConfirmation is fire-and-forget: a failed email never fails or blocks
// the checkout response.
func (s *service) sendConfirmation(ctx context.Context, userID int, o *Order, items []ItemWithBeat) {
	u, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		logger.Errorf("Failed to load user %d for order confirmation: %v", userID, err)
		return
	}

	lines := make([]email.OrderLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, email.OrderLine{
			BeatTitle: item.BeatTitle,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice.StringFixed(2),
		})
	}

	if err := s.emailService.SendOrderConfirmation(ctx, u.Email, u.Name, o.ID, o.TotalAmount.StringFixed(2), lines); err != nil {
		logger.Errorf("Failed to send order confirmation for order %d: %v", o.ID, err)
	}
}

func (s *service) GetOrder(ctx context.Context, userID, orderID int) (*Order, []ItemWithBeat, error) {
	o, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}

	if o.UserID != userID {
		return nil, nil, ErrNotOrderOwner
	}

	items, err := s.orderRepo.GetItems(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}

	return o, items, nil
}

// GetOrderBeats returns the full beat details behind one order's items.
func (s *service) GetOrderBeats(ctx context.Context, userID, orderID int) (*Order, []PurchasedBeat, error) {
	o, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}

	if o.UserID != userID {
		return nil, nil, ErrNotOrderOwner
	}

	beats, err := s.orderRepo.GetOrderBeats(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}

	return o, beats, nil
}

func (s *service) ListUserOrders(ctx context.Context, userID int) ([]Order, error) {
	return s.orderRepo.ListByUser(ctx, userID)
}

func (s *service) ListPurchasedBeats(ctx context.Context, userID int) ([]PurchasedBeat, error) {
	return s.orderRepo.ListPurchasedBeats(ctx, userID)
}

func (s *service) HasPurchasedBeat(ctx context.Context, userID, beatID int) (bool, error) {
	return s.orderRepo.HasPurchasedBeat(ctx, userID, beatID)
}
