package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	portssvc "github.com/hisabat-app/hisabat-backend/internal/core/ports/services"
	"github.com/hisabat-app/hisabat-backend/internal/middleware"
)

// reportingHandler handles HTTP requests for financial reports.
type reportingHandler struct {
	reportingService portssvc.ReportingSvc
}

func newReportingHandler(rs portssvc.ReportingSvc) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

// registerReportingRoutes registers report routes on the company-scoped
// group.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvc) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/accounts/:code/balance", h.accountBalance)
		reports.GET("/trial-balance", h.trialBalance)
		reports.GET("/balance-sheet", h.balanceSheet)
	}
}

// asOfOrNow parses the optional asOf query parameter (RFC 3339 or a plain
// date), defaulting to now.
func asOfOrNow(c *gin.Context) (time.Time, bool) {
	raw := c.Query("asOf")
	if raw == "" {
		return time.Now().UTC(), true
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		// Whole-day cutoff: include everything dated that day.
		return t.Add(24*time.Hour - time.Nanosecond), true
	}
	return time.Time{}, false
}

// accountBalance godoc
// @Summary Get one account's balance
// @Description Recomputes the account's posted activity as of a date
// @Tags reports
// @Produce json
// @Param companyID path string true "Company ID"
// @Param code path string true "Account code"
// @Param asOf query string false "Cutoff date (RFC 3339 or YYYY-MM-DD, default now)"
// @Success 200 {object} domain.AccountBalance
// @Failure 400 {object} map[string]string "Invalid asOf date"
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /companies/{companyID}/reports/accounts/{code}/balance [get]
func (h *reportingHandler) accountBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")
	code := c.Param("code")

	asOf, ok := asOfOrNow(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asOf date"})
		return
	}

	balance, err := h.reportingService.AccountBalance(c.Request.Context(), companyID, code, asOf)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to compute account balance")
		return
	}
	c.JSON(http.StatusOK, balance)
}

// trialBalance godoc
// @Summary Get the trial balance
// @Description Lists every account with activity; balances sit on the account's normal side
// @Tags reports
// @Produce json
// @Param companyID path string true "Company ID"
// @Param asOf query string false "Cutoff date (RFC 3339 or YYYY-MM-DD, default now)"
// @Success 200 {object} domain.TrialBalanceReport
// @Failure 400 {object} map[string]string "Invalid asOf date"
// @Security BearerAuth
// @Router /companies/{companyID}/reports/trial-balance [get]
func (h *reportingHandler) trialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	asOf, ok := asOfOrNow(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asOf date"})
		return
	}

	report, err := h.reportingService.TrialBalance(c.Request.Context(), companyID, asOf)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to compute trial balance")
		return
	}
	c.JSON(http.StatusOK, report)
}

// balanceSheet godoc
// @Summary Get the balance sheet
// @Description Groups balances by account type, folding current net income into equity
// @Tags reports
// @Produce json
// @Param companyID path string true "Company ID"
// @Param asOf query string false "Cutoff date (RFC 3339 or YYYY-MM-DD, default now)"
// @Success 200 {object} domain.BalanceSheetReport
// @Failure 400 {object} map[string]string "Invalid asOf date"
// @Security BearerAuth
// @Router /companies/{companyID}/reports/balance-sheet [get]
func (h *reportingHandler) balanceSheet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	asOf, ok := asOfOrNow(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asOf date"})
		return
	}

	report, err := h.reportingService.BalanceSheet(c.Request.Context(), companyID, asOf)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to compute balance sheet")
		return
	}
	c.JSON(http.StatusOK, report)
}
