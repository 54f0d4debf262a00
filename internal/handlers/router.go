package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/edupay/fees-service/internal/models"
	"github.com/edupay/fees-service/internal/services"
	"github.com/edupay/fees-service/internal/utils"
)

type HandlerManager struct {
	authHandler      *AuthHandler
	studentHandler   *StudentHandler
	paymentHandler   *PaymentHandler
	dashboardHandler *DashboardHandler
	reportHandler    *ReportHandler
	authMiddleware   *JWTAuthMiddleware
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	logger utils.Logger,
	jwtSecret string,
	tokenTTL time.Duration,
) *HandlerManager {
	authMiddleware := NewJWTAuthMiddleware(jwtSecret, tokenTTL)

	return &HandlerManager{
		authHandler:      NewAuthHandler(serviceManager.Account(), authMiddleware, logger),
		studentHandler:   NewStudentHandler(serviceManager.Student(), logger),
		paymentHandler:   NewPaymentHandler(serviceManager.Ledger(), logger),
		dashboardHandler: NewDashboardHandler(serviceManager.Dashboard(), logger),
		reportHandler:    NewReportHandler(serviceManager.Report(), logger),
		authMiddleware:   authMiddleware,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	v1 := router.Group("/api/v1")

	// Login is the only unauthenticated endpoint
	v1.POST("/auth/login", hm.authHandler.Login)

	authed := v1.Group("")
	authed.Use(hm.authMiddleware.AuthMiddleware())
	{
		// Account directory
		users := authed.Group("/users")
		{
			users.POST("", hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin), hm.authHandler.CreateUser)
			users.GET("/me", hm.authHandler.Me)
		}

		// Student records and fee ledger
		students := authed.Group("/students")
		{
			students.POST("", hm.studentHandler.Register)
			students.GET("", hm.studentHandler.List)
			students.GET("/:id", hm.studentHandler.Get)
			students.PUT("/:id", hm.studentHandler.Update)
			students.DELETE("/:id", hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin), hm.studentHandler.Delete)

			students.POST("/:id/payments", hm.paymentHandler.Record)
			students.GET("/:id/payments", hm.paymentHandler.History)
			students.GET("/:id/outstanding", hm.paymentHandler.Outstanding)
		}

		// Admin dashboard
		authed.GET("/dashboard", hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin), hm.dashboardHandler.Overview)

		// Reports
		authed.GET("/reports/fees", hm.reportHandler.FeeReport)
	}
}
