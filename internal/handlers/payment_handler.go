package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edupay/fees-service/internal/repositories"
	"github.com/edupay/fees-service/internal/services"
	"github.com/edupay/fees-service/internal/utils"
)

type PaymentHandler struct {
	BaseHandler
	service services.LedgerService
}

func NewPaymentHandler(service services.LedgerService, logger utils.Logger) *PaymentHandler {
	return &PaymentHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// Record applies a payment to a student's fee period. The recorded_by
// field comes from the authenticated identity, never from the body.
func (h *PaymentHandler) Record(c *gin.Context) {
	h.LogRequest(c, "Recording payment")

	id, ok := pathID(c)
	if !ok {
		return
	}

	recordedBy, ok := identity(c)
	if !ok {
		return
	}

	var req services.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "bad_request", Message: "invalid request body"})
		return
	}

	result, err := h.service.RecordPayment(c.Request.Context(), id, &req, recordedBy)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// History returns the student's payment ledger, newest first.
func (h *PaymentHandler) History(c *gin.Context) {
	h.LogRequest(c, "Getting payment history")

	id, ok := pathID(c)
	if !ok {
		return
	}

	filters := repositories.PaymentFilters{}
	if term := c.Query("term"); term != "" {
		filters.Term = &term
	}
	if year := c.Query("academic_year"); year != "" {
		filters.AcademicYear = &year
	}

	payments, err := h.service.PaymentHistory(c.Request.Context(), id, filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"payments": payments})
}

// Outstanding returns the fee periods that still carry a balance, used to
// populate the payment form.
func (h *PaymentHandler) Outstanding(c *gin.Context) {
	h.LogRequest(c, "Getting outstanding periods")

	id, ok := pathID(c)
	if !ok {
		return
	}

	periods, err := h.service.OutstandingPeriods(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"periods": periods})
}
