package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	portssvc "github.com/hisabat-app/hisabat-backend/internal/core/ports/services"
	"github.com/hisabat-app/hisabat-backend/internal/middleware"
)

// integrityHandler handles HTTP requests for integrity verification.
type integrityHandler struct {
	integrityService portssvc.IntegritySvc
}

func newIntegrityHandler(is portssvc.IntegritySvc) *integrityHandler {
	return &integrityHandler{integrityService: is}
}

// registerIntegrityRoutes registers verification routes on the
// company-scoped group.
func registerIntegrityRoutes(rg *gin.RouterGroup, integrityService portssvc.IntegritySvc) {
	h := newIntegrityHandler(integrityService)

	integrity := rg.Group("/integrity")
	{
		integrity.GET("/verify", h.verify)
		integrity.POST("/cleanup-orphans", h.cleanupOrphans)
	}
}

// verify godoc
// @Summary Verify ledger and journal consistency
// @Description Read-only reconciliation; reports typed discrepancies without changing anything
// @Tags integrity
// @Produce json
// @Param companyID path string true "Company ID"
// @Success 200 {object} domain.IntegrityReport
// @Security BearerAuth
// @Router /companies/{companyID}/integrity/verify [get]
func (h *integrityHandler) verify(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	report, err := h.integrityService.Verify(c.Request.Context(), companyID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to verify integrity")
		return
	}
	c.JSON(http.StatusOK, report)
}

// cleanupOrphans godoc
// @Summary Remove orphaned journal entries
// @Description Deletes journal entries whose linked transaction no longer exists; dryRun=true only lists them
// @Tags integrity
// @Produce json
// @Param companyID path string true "Company ID"
// @Param dryRun query bool false "List without deleting (default false)"
// @Success 200 {object} domain.CleanupResult
// @Security BearerAuth
// @Router /companies/{companyID}/integrity/cleanup-orphans [post]
func (h *integrityHandler) cleanupOrphans(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	dryRun, err := strconv.ParseBool(c.DefaultQuery("dryRun", "false"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid dryRun value"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	result, err := h.integrityService.CleanupOrphans(c.Request.Context(), companyID, dryRun, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to clean up orphan entries")
		return
	}
	c.JSON(http.StatusOK, result)
}
