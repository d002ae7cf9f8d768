package wallet

import (
	"net/http"
	"strconv"

	"github.com/Moetaz0/BeatMarket-Back/internal/auth"
	"github.com/Moetaz0/BeatMarket-Back/internal/email"
	"github.com/Moetaz0/BeatMarket-Back/internal/logger"
	"github.com/Moetaz0/BeatMarket-Back/internal/metrics"
	"github.com/Moetaz0/BeatMarket-Back/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type Handler struct {
	repo         Repository
	userRepo     user.Repository
	emailService *email.Service
}

func NewHandler(db *sqlx.DB, emailService *email.Service) *Handler {
	return &Handler{
		repo:         NewRepository(db),
		userRepo:     user.NewRepository(db),
		emailService: emailService,
	}
}

// GetWallet godoc
// @Summary      Get wallet
// @Description  Returns the authenticated user's wallet, creating it on first access.
// @Tags         wallet
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  Wallet
// @Failure      401  {object}  gin.H
// @Failure      500  {object}  gin.H
// @Router       /wallet [get]
func (h *Handler) GetWallet(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	w, err := h.repo.GetOrCreateWallet(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load wallet"})
		return
	}

	c.JSON(http.StatusOK, w)
}

// Deposit godoc
// @Summary      Deposit funds
// @Description  Credits the wallet. The external payment processor confirms the charge upstream.
// @Tags         wallet
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      DepositRequest  true  "Deposit amount"
// @Success      200      {object}  gin.H
// @Failure      400      {object}  gin.H
// @Failure      401      {object}  gin.H
// @Failure      500      {object}  gin.H
// @Router       /wallet/deposit [post]
func (h *Handler) Deposit(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount is required"})
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || amount.LessThanOrEqual(decimal.Zero) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be a positive decimal"})
		return
	}

	if _, err := h.repo.GetOrCreateWallet(c.Request.Context(), userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load wallet"})
		return
	}

	w, err := h.repo.Credit(c.Request.Context(), userID, amount, "Wallet deposit", "wallet_deposit")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to deposit funds"})
		return
	}

	metrics.RecordWalletDeposit()

	// Receipt email is best-effort.
	if u, uerr := h.userRepo.FindByID(c.Request.Context(), userID); uerr == nil {
		if serr := h.emailService.SendDepositReceipt(c.Request.Context(), u.Email, u.Name, amount.StringFixed(2)); serr != nil {
			logger.Errorf("Failed to send deposit receipt to user %d: %v", userID, serr)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Deposit successful",
		"wallet":  w,
	})
}

// ListTransactions godoc
// @Summary      List wallet transactions
// @Description  Returns the wallet's transaction history, newest first.
// @Tags         wallet
// @Security     BearerAuth
// @Produce      json
// @Param        limit   query     int  false  "Page size (default 50)"
// @Param        offset  query     int  false  "Offset"
// @Success      200     {array}   Transaction
// @Failure      401     {object}  gin.H
// @Failure      500     {object}  gin.H
// @Router       /wallet/transactions [get]
func (h *Handler) ListTransactions(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	txs, err := h.repo.GetTransactions(c.Request.Context(), userID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load transactions"})
		return
	}

	c.JSON(http.StatusOK, txs)
}

// GetStats godoc
// @Summary      Wallet statistics
// @Description  Returns lifetime and current-month earnings/spend totals.
// @Tags         wallet
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  Stats
// @Failure      401  {object}  gin.H
// @Failure      500  {object}  gin.H
// @Router       /wallet/stats [get]
func (h *Handler) GetStats(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	stats, err := h.repo.GetStats(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load wallet stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}
