package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edupay/fees-service/internal/services"
	"github.com/edupay/fees-service/internal/utils"
)

type DashboardHandler struct {
	BaseHandler
	service services.DashboardService
}

func NewDashboardHandler(service services.DashboardService, logger utils.Logger) *DashboardHandler {
	return &DashboardHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// Overview returns revenue totals, status counts and recent payments.
func (h *DashboardHandler) Overview(c *gin.Context) {
	h.LogRequest(c, "Getting dashboard overview")

	overview, err := h.service.Overview(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, overview)
}
