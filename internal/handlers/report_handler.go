package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/edupay/fees-service/internal/models"
	"github.com/edupay/fees-service/internal/repositories"
	"github.com/edupay/fees-service/internal/services"
	"github.com/edupay/fees-service/internal/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportHandler struct {
	BaseHandler
	service services.ReportService
}

func NewReportHandler(service services.ReportService, logger utils.Logger) *ReportHandler {
	return &ReportHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// FeeReport streams the student fee-status workbook as an attachment.
func (h *ReportHandler) FeeReport(c *gin.Context) {
	h.LogRequest(c, "Exporting fee report")

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

	report, err := h.service.StudentFeeReport(c.Request.Context(), filters, feeStatus)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("fee-report-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, report)
}
