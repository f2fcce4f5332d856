package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/hisabat-app/hisabat-backend/internal/core/ports/services"
	"github.com/hisabat-app/hisabat-backend/internal/dto"
	"github.com/hisabat-app/hisabat-backend/internal/middleware"
)

// paymentHandler handles HTTP requests for client payments.
type paymentHandler struct {
	paymentService portssvc.PaymentSvc
}

func newPaymentHandler(ps portssvc.PaymentSvc) *paymentHandler {
	return &paymentHandler{paymentService: ps}
}

// registerPaymentRoutes registers payment routes on the company-scoped group.
func registerPaymentRoutes(rg *gin.RouterGroup, paymentService portssvc.PaymentSvc) {
	h := newPaymentHandler(paymentService)

	payments := rg.Group("/payments")
	{
		payments.POST("/plan", h.planAllocation)
		payments.POST("", h.recordPayment)
		payments.POST("/:paymentID/reverse", h.reversePayment)
	}
}

// planAllocation godoc
// @Summary Preview a FIFO payment allocation
// @Description Shows how an amount would spread across the client's open receivables, oldest first; nothing is persisted
// @Tags payments
// @Accept json
// @Produce json
// @Param companyID path string true "Company ID"
// @Param plan body dto.PlanAllocationRequest true "Client and amount"
// @Success 200 {object} dto.AllocationPlanResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Security BearerAuth
// @Router /companies/{companyID}/payments/plan [post]
func (h *paymentHandler) planAllocation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	var req dto.PlanAllocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for PlanAllocation", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err)})
		return
	}

	plan, err := h.paymentService.PlanAllocation(c.Request.Context(), companyID, req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to plan allocation")
		return
	}
	c.JSON(http.StatusOK, dto.ToAllocationPlanResponse(*plan))
}

// recordPayment godoc
// @Summary Record a client payment
// @Description Distributes the amount FIFO across open receivables and persists payment, allocations, balances and journal entry atomically
// @Tags payments
// @Accept json
// @Produce json
// @Param companyID path string true "Company ID"
// @Param payment body dto.RecordPaymentRequest true "Payment details"
// @Success 201 {object} dto.PaymentResponse
// @Failure 400 {object} map[string]string "Validation error or no open receivables"
// @Failure 409 {object} map[string]string "Receivable balances moved, retry"
// @Security BearerAuth
// @Router /companies/{companyID}/payments [post]
func (h *paymentHandler) recordPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	var req dto.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err)})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	recorded, err := h.paymentService.RecordPayment(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to record payment")
		return
	}

	logger.Info("Payment recorded", slog.String("payment_id", recorded.Payment.PaymentID))
	c.JSON(http.StatusCreated, dto.ToPaymentResponse(&recorded.Payment, recorded.Plan))
}

// reversePayment godoc
// @Summary Reverse a recorded payment
// @Description Restores receivable balances, removes allocations and payment, and reverses the linked journal entry
// @Tags payments
// @Produce json
// @Param companyID path string true "Company ID"
// @Param paymentID path string true "Payment ID"
// @Success 204
// @Failure 404 {object} map[string]string "Payment not found"
// @Security BearerAuth
// @Router /companies/{companyID}/payments/{paymentID}/reverse [post]
func (h *paymentHandler) reversePayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")
	paymentID := c.Param("paymentID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.paymentService.ReversePayment(c.Request.Context(), companyID, paymentID, userID); err != nil {
		respondServiceError(c, logger, err, "Failed to reverse payment")
		return
	}

	logger.Info("Payment reversed", slog.String("payment_id", paymentID))
	c.Status(http.StatusNoContent)
}
