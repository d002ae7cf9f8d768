package license

import (
	"errors"
	"net/http"
	"strconv"

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

// ListLicenses godoc
// @Summary      List licenses
// @Description  Returns all available license tiers.
// @Tags         licenses
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   License
// @Failure      500  {object}  gin.H
// @Router       /licenses [get]
func (h *Handler) ListLicenses(c *gin.Context) {
	licenses, err := h.repo.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch licenses"})
		return
	}

	c.JSON(http.StatusOK, licenses)
}

// GetLicense godoc
// @Summary      Get license
// @Tags         licenses
// @Security     BearerAuth
// @Produce      json
// @Param        licenseID  path      int  true  "License ID"
// @Success      200        {object}  License
// @Failure      400        {object}  gin.H
// @Failure      404        {object}  gin.H
// @Router       /licenses/{licenseID} [get]
func (h *Handler) GetLicense(c *gin.Context) {
	licenseID, err := strconv.Atoi(c.Param("licenseID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid license ID"})
		return
	}

	lic, err := h.repo.GetByID(c.Request.Context(), licenseID)
	if err != nil {
		if errors.Is(err, ErrLicenseNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "License not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch license"})
		return
	}

	c.JSON(http.StatusOK, lic)
}

// CreateLicense godoc
// @Summary      Create license
// @Description  Creates a new license tier. Admin only.
// @Tags         licenses
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateLicenseRequest  true  "License data"
// @Success      201      {object}  License
// @Failure      400      {object}  gin.H
// @Failure      500      {object}  gin.H
// @Router       /admin/licenses [post]
func (h *Handler) CreateLicense(c *gin.Context) {
	var req CreateLicenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	multiplier, err := decimal.NewFromString(req.PriceMultiplier)
	if err != nil || multiplier.LessThanOrEqual(decimal.Zero) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "price_multiplier must be a positive decimal"})
		return
	}

	lic, err := h.repo.Create(c.Request.Context(), req.Name, req.Terms, multiplier, req.IsExclusive)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create license"})
		return
	}

	c.JSON(http.StatusCreated, lic)
}
