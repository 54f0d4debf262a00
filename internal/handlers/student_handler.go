package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edupay/fees-service/internal/models"
	"github.com/edupay/fees-service/internal/repositories"
	"github.com/edupay/fees-service/internal/services"
	"github.com/edupay/fees-service/internal/utils"
)

type StudentHandler struct {
	BaseHandler
	service services.StudentService
}

func NewStudentHandler(service services.StudentService, logger utils.Logger) *StudentHandler {
	return &StudentHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// Register creates a student together with the initial fee period.
func (h *StudentHandler) Register(c *gin.Context) {
	h.LogRequest(c, "Registering student")

	var req services.RegisterStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "bad_request", Message: "invalid request body"})
		return
	}

	student, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, student)
}

// List returns students with aggregated fee totals and derived statuses.
// Supports search, class, term and fee_status query filters.
func (h *StudentHandler) List(c *gin.Context) {
	h.LogRequest(c, "Listing students")

	filters := repositories.StudentFilters{
		Search: c.Query("search"),
	}
	if class := c.Query("class"); class != "" {
		filters.Class = &class
	}
	if term := c.Query("term"); term != "" {
		filters.Term = &term
	}

	var feeStatus *models.FeeStatus
	if status := c.Query("fee_status"); status != "" {
		fs := models.FeeStatus(status)
		feeStatus = &fs
	}

	resp, err := h.service.List(c.Request.Context(), filters, feeStatus)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Get returns student detail: record, fee breakdown, aggregated status
// and payment history.
func (h *StudentHandler) Get(c *gin.Context) {
	h.LogRequest(c, "Getting student details")

	id, ok := pathID(c)
	if !ok {
		return
	}

	detail, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

func (h *StudentHandler) Update(c *gin.Context) {
	h.LogRequest(c, "Updating student")

	id, ok := pathID(c)
	if !ok {
		return
	}

	var req services.UpdateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "bad_request", Message: "invalid request body"})
		return
	}

	student, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, student)
}

// Delete removes a student and all owned fee periods and payments.
func (h *StudentHandler) Delete(c *gin.Context) {
	h.LogRequest(c, "Deleting student")

	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "student and all associated records deleted"})
}
