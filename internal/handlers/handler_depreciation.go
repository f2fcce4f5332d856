package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	portssvc "github.com/hisabat-app/hisabat-backend/internal/core/ports/services"
	"github.com/hisabat-app/hisabat-backend/internal/dto"
	"github.com/hisabat-app/hisabat-backend/internal/middleware"
)

// depreciationHandler handles HTTP requests for fixed assets and
// depreciation runs.
type depreciationHandler struct {
	depreciationService portssvc.DepreciationSvc
}

func newDepreciationHandler(ds portssvc.DepreciationSvc) *depreciationHandler {
	return &depreciationHandler{depreciationService: ds}
}

// registerDepreciationRoutes registers asset and run routes on the
// company-scoped group.
func registerDepreciationRoutes(rg *gin.RouterGroup, depreciationService portssvc.DepreciationSvc) {
	h := newDepreciationHandler(depreciationService)

	assets := rg.Group("/assets")
	{
		assets.POST("", h.createAsset)
		assets.GET("", h.listAssets)
	}
	depreciation := rg.Group("/depreciation")
	{
		depreciation.POST("/run", h.runMonthly)
		depreciation.GET("/runs/:year/:month", h.getRun)
	}
}

// createAsset godoc
// @Summary Register a depreciable fixed asset
// @Tags depreciation
// @Accept json
// @Produce json
// @Param companyID path string true "Company ID"
// @Param asset body dto.CreateAssetRequest true "Asset details"
// @Success 201 {object} domain.FixedAsset
// @Failure 400 {object} map[string]string "Validation error"
// @Security BearerAuth
// @Router /companies/{companyID}/assets [post]
func (h *depreciationHandler) createAsset(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	var req dto.CreateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateAsset", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err)})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	asset, err := h.depreciationService.CreateAsset(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create asset")
		return
	}

	logger.Info("Fixed asset created", slog.String("asset_id", asset.AssetID))
	c.JSON(http.StatusCreated, asset)
}

// listAssets godoc
// @Summary List fixed assets
// @Tags depreciation
// @Produce json
// @Param companyID path string true "Company ID"
// @Success 200 {array} domain.FixedAsset
// @Security BearerAuth
// @Router /companies/{companyID}/assets [get]
func (h *depreciationHandler) listAssets(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	assets, err := h.depreciationService.ListAssets(c.Request.Context(), companyID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list assets")
		return
	}
	c.JSON(http.StatusOK, assets)
}

// runMonthly godoc
// @Summary Run monthly depreciation for a period
// @Description Idempotent per period; a completed run with a failed journal mirror returns partialFailure with recovery instructions
// @Tags depreciation
// @Accept json
// @Produce json
// @Param companyID path string true "Company ID"
// @Param period body dto.RunDepreciationRequest true "Year and month"
// @Success 200 {object} dto.DepreciationResultResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 409 {object} map[string]string "Period already processed"
// @Security BearerAuth
// @Router /companies/{companyID}/depreciation/run [post]
func (h *depreciationHandler) runMonthly(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	var req dto.RunDepreciationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RunDepreciation", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err)})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	result, err := h.depreciationService.RunMonthly(c.Request.Context(), companyID, req.Year, time.Month(req.Month), userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to run depreciation")
		return
	}

	logger.Info("Depreciation run finished",
		slog.String("run_id", result.Run.RunID), slog.Bool("partial_failure", result.PartialFailure))
	c.JSON(http.StatusOK, dto.ToDepreciationResultResponse(result))
}

// getRun godoc
// @Summary Get a period's depreciation run
// @Tags depreciation
// @Produce json
// @Param companyID path string true "Company ID"
// @Param year path int true "Year"
// @Param month path int true "Month (1-12)"
// @Success 200 {object} domain.DepreciationRun
// @Failure 404 {object} map[string]string "Period not processed"
// @Security BearerAuth
// @Router /companies/{companyID}/depreciation/runs/{year}/{month} [get]
func (h *depreciationHandler) getRun(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year"})
		return
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil || month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid month"})
		return
	}

	run, err := h.depreciationService.GetRun(c.Request.Context(), companyID, year, time.Month(month))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve depreciation run")
		return
	}
	c.JSON(http.StatusOK, run)
}
