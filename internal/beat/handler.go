package beat

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Moetaz0/BeatMarket-Back/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type Handler struct {
	repo Repository
}

func NewHandler(db *sqlx.DB) *Handler {
	return &Handler{
		repo: NewRepository(db),
	}
}

// ListBeats godoc
// @Summary      List beats
// @Description  Returns the beat catalog, optionally filtered by genre.
// @Tags         beats
// @Security     BearerAuth
// @Produce      json
// @Param        genre  query     string  false  "Genre filter"
// @Success      200    {array}   Beat
// @Failure      500    {object}  gin.H
// @Router       /beats [get]
func (h *Handler) ListBeats(c *gin.Context) {
	beats, err := h.repo.GetAll(c.Request.Context(), c.Query("genre"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch beats"})
		return
	}

	c.JSON(http.StatusOK, beats)
}

// GetBeat godoc
// @Summary      Get beat
// @Tags         beats
// @Security     BearerAuth
// @Produce      json
// @Param        beatID  path      int  true  "Beat ID"
// @Success      200     {object}  Beat
// @Failure      400     {object}  gin.H
// @Failure      404     {object}  gin.H
// @Router       /beats/{beatID} [get]
func (h *Handler) GetBeat(c *gin.Context) {
	beatID, err := strconv.Atoi(c.Param("beatID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid beat ID"})
		return
	}

	b, err := h.repo.GetByID(c.Request.Context(), beatID)
	if err != nil {
		if errors.Is(err, ErrBeatNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Beat not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch beat"})
		return
	}

	c.JSON(http.StatusOK, b)
}

// ListMyBeats godoc
// @Summary      List own beats
// @Description  Returns beats uploaded by the authenticated beatmaker.
// @Tags         beats
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   Beat
// @Failure      401  {object}  gin.H
// @Failure      500  {object}  gin.H
// @Router       /beats/mine [get]
func (h *Handler) ListMyBeats(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	beats, err := h.repo.GetByBeatmaker(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch beats"})
		return
	}

	c.JSON(http.StatusOK, beats)
}

// CreateBeat godoc
// @Summary      Upload beat
// @Description  Creates a new beat listing. Beatmaker only.
// @Tags         beats
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateBeatRequest  true  "Beat data"
// @Success      201      {object}  Beat
// @Failure      400      {object}  gin.H
// @Failure      401      {object}  gin.H
// @Failure      500      {object}  gin.H
// @Router       /beats [post]
func (h *Handler) CreateBeat(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req CreateBeatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil || price.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "price must be a non-negative decimal"})
		return
	}

	b, err := h.repo.Create(c.Request.Context(), &Beat{
		Title:       req.Title,
		Description: req.Description,
		FileURL:     req.FileURL,
		CoverImage:  req.CoverImage,
		Price:       price,
		Genre:       req.Genre,
		BPM:         req.BPM,
		Key:         req.Key,
		UserID:      userID,
		LicenseID:   req.LicenseID,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create beat"})
		return
	}

	c.JSON(http.StatusCreated, b)
}
