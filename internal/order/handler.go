package order

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Moetaz0/BeatMarket-Back/internal/auth"
	"github.com/Moetaz0/BeatMarket-Back/internal/beat"
	"github.com/Moetaz0/BeatMarket-Back/internal/email"
	"github.com/Moetaz0/BeatMarket-Back/internal/license"
	"github.com/Moetaz0/BeatMarket-Back/internal/logger"
	"github.com/Moetaz0/BeatMarket-Back/internal/user"
	"github.com/Moetaz0/BeatMarket-Back/internal/wallet"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Handler struct {
	service Service
}

func NewHandler(db *sqlx.DB, emailService *email.Service) *Handler {
	walletRepo := wallet.NewRepository(db)
	beatRepo := beat.NewRepository(db)

	return &Handler{
		service: NewService(
			NewRepository(db, walletRepo, beatRepo),
			beatRepo,
			license.NewRepository(db),
			walletRepo,
			user.NewRepository(db),
			emailService,
		),
	}
}

func NewHandlerWithService(service Service) *Handler {
	return &Handler{service: service}
}

// Money fields are formatted to two decimals explicitly; a raw decimal
// marshals as a trimmed string ("5" instead of "5.00").
func itemsJSON(items []ItemWithBeat) []gin.H {
	out := make([]gin.H, 0, len(items))
	for _, item := range items {
		out = append(out, gin.H{
			"id":        item.ID,
			"beatId":    item.BeatID,
			"beatTitle": item.BeatTitle,
			"quantity":  item.Quantity,
			"unitPrice": item.UnitPrice.StringFixed(2),
		})
	}
	return out
}

// Checkout godoc
// @Summary      Wallet checkout
// @Description  Prices the cart, debits the wallet, and creates a paid order in one unit.
// @Tags         orders
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CheckoutRequest  true  "Cart items"
// @Success      200      {object}  map[string]interface{}
// @Failure      400      {object}  gin.H
// @Failure      401      {object}  gin.H
// @Failure      404      {object}  gin.H
// @Failure      500      {object}  gin.H
// @Router       /orders/checkout [post]
func (h *Handler) Checkout(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Items are required"})
		return
	}

	result, err := h.service.Checkout(c.Request.Context(), userID, req)
	if err != nil {
		var insufficientFunds *InsufficientFundsError
		var blocked *ExclusivityBlockedError
		var beatNotFound *BeatNotFoundError
		var licenseNotFound *LicenseNotFoundError
		var invalidQuantity *InvalidQuantityError

		switch {
		case errors.As(err, &insufficientFunds):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Insufficient wallet balance",
				"balance": insufficientFunds.Balance.StringFixed(2),
				"total":   insufficientFunds.Total.StringFixed(2),
			})
		case errors.As(err, &blocked):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Beat '" + blocked.BeatTitle + "' is exclusively owned by another user"})
		case errors.As(err, &beatNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Beat not found: " + strconv.Itoa(beatNotFound.BeatID)})
		case errors.As(err, &licenseNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "License not found: " + strconv.Itoa(licenseNotFound.LicenseID)})
		case errors.As(err, &invalidQuantity):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quantity for item #" + strconv.Itoa(invalidQuantity.ItemIndex)})
		case errors.Is(err, ErrEmptyCart):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Items are required"})
		default:
			logger.Errorf("Checkout failed for user %d: %v", userID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Checkout failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Checkout successful",
		"order": gin.H{
			"id":          result.Order.ID,
			"status":      result.Order.Status,
			"totalAmount": result.Order.TotalAmount.StringFixed(2),
			"createdAt":   result.Order.CreatedAt,
			"paidAt":      result.Order.PaidAt,
			"items":       itemsJSON(result.Items),
		},
		"wallet": gin.H{
			"balance": result.Balance.StringFixed(2),
		},
	})
}

// ListMyOrders godoc
// @Summary      List my orders
// @Description  Returns orders of the authenticated user, newest first.
// @Tags         orders
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   Order
// @Failure      401  {object}  gin.H
// @Failure      500  {object}  gin.H
// @Router       /orders [get]
func (h *Handler) ListMyOrders(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	orders, err := h.service.ListUserOrders(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}

	c.JSON(http.StatusOK, orders)
}

// GetOrder godoc
// @Summary      Get order
// @Description  Returns one order with its items. Owner only.
// @Tags         orders
// @Security     BearerAuth
// @Produce      json
// @Param        orderID  path      int  true  "Order ID"
// @Success      200      {object}  map[string]interface{}
// @Failure      400      {object}  gin.H
// @Failure      403      {object}  gin.H
// @Failure      404      {object}  gin.H
// @Router       /orders/{orderID} [get]
func (h *Handler) GetOrder(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	orderID, err := strconv.Atoi(c.Param("orderID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	o, items, err := h.service.GetOrder(c.Request.Context(), userID, orderID)
	if err != nil {
		switch {
		case errors.Is(err, ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		case errors.Is(err, ErrNotOrderOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":          o.ID,
		"status":      o.Status,
		"totalAmount": o.TotalAmount.StringFixed(2),
		"createdAt":   o.CreatedAt,
		"paidAt":      o.PaidAt,
		"items":       itemsJSON(items),
	})
}

// GetOrderBeats godoc
// @Summary      Beats of an order
// @Description  Returns the full beat details for every item of one order. Owner only.
// @Tags         orders
// @Security     BearerAuth
// @Produce      json
// @Param        orderID  path      int  true  "Order ID"
// @Success      200      {object}  map[string]interface{}
// @Failure      400      {object}  gin.H
// @Failure      403      {object}  gin.H
// @Failure      404      {object}  gin.H
// @Router       /orders/{orderID}/beats [get]
func (h *Handler) GetOrderBeats(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	orderID, err := strconv.Atoi(c.Param("orderID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	o, beats, err := h.service.GetOrderBeats(c.Request.Context(), userID, orderID)
	if err != nil {
		switch {
		case errors.Is(err, ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		case errors.Is(err, ErrNotOrderOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order beats"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orderId":     o.ID,
		"status":      o.Status,
		"totalAmount": o.TotalAmount.StringFixed(2),
		"beats":       beats,
	})
}

// ListPurchasedBeats godoc
// @Summary      List purchased beats
// @Description  Returns every beat from the user's paid orders.
// @Tags         orders
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  gin.H
// @Failure      500  {object}  gin.H
// @Router       /orders/purchased-beats [get]
func (h *Handler) ListPurchasedBeats(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	beats, err := h.service.ListPurchasedBeats(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch purchased beats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total": len(beats),
		"beats": beats,
	})
}

// DownloadBeat godoc
// @Summary      Download purchased beat
// @Description  Verifies purchase, then redirects to the beat file.
// @Tags         orders
// @Security     BearerAuth
// @Produce      json
// @Param        beatID  path  int  true  "Beat ID"
// @Success      302
// @Failure      400  {object}  gin.H
// @Failure      403  {object}  gin.H
// @Failure      404  {object}  gin.H
// @Router       /orders/beats/{beatID}/download [get]
func (h *Handler) DownloadBeat(beatRepo beat.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		beatID, err := strconv.Atoi(c.Param("beatID"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid beat ID"})
			return
		}

		b, err := beatRepo.GetByID(c.Request.Context(), beatID)
		if err != nil {
			if errors.Is(err, beat.ErrBeatNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Beat not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch beat"})
			return
		}

		purchased, err := h.service.HasPurchasedBeat(c.Request.Context(), userID, beatID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify purchase"})
			return
		}
		if !purchased {
			c.JSON(http.StatusForbidden, gin.H{"error": "Beat not purchased or access denied"})
			return
		}

		if b.FileURL == "" {
			c.JSON(http.StatusNotFound, gin.H{"error": "Beat file not available"})
			return
		}

		c.Redirect(http.StatusFound, b.FileURL)
	}
}
