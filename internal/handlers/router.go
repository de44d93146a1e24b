package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/online-test-service/internal/auth"
	"github.com/SAP-F-2025/online-test-service/internal/services"
	"github.com/SAP-F-2025/online-test-service/internal/utils"
)

const healthCheckTimeout = 2 * time.Second

// Pinger reports whether the backing store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

type HandlerManager struct {
	authHandler    *AuthHandler
	testHandler    *TestHandler
	attemptHandler *AttemptHandler
	adminHandler   *AdminHandler

	tokens *auth.TokenManager
	store  Pinger
	logger utils.Logger
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	store Pinger,
	tokens *auth.TokenManager,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		authHandler:    NewAuthHandler(serviceManager.Auth(), logger),
		testHandler:    NewTestHandler(serviceManager.Catalog(), serviceManager.Submission(), logger),
		attemptHandler: NewAttemptHandler(serviceManager.Result(), logger),
		adminHandler:   NewAdminHandler(serviceManager.Admin(), serviceManager.Export(), logger),
		tokens:         tokens,
		store:          store,
		logger:         logger,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", hm.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.Use(auth.Authenticate(hm.tokens))
	{
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/register", hm.authHandler.Register)
			authGroup.POST("/login", hm.authHandler.Login)
			authGroup.POST("/google", hm.authHandler.GoogleLogin)
			authGroup.GET("/me", auth.RequireAuth(), hm.authHandler.Me)
		}

		// Test catalog and submission
		tests := v1.Group("/tests")
		{
			tests.GET("", hm.testHandler.ListTests)
			tests.GET("/:id", hm.testHandler.GetTestDetails)
			tests.GET("/:id/listening", hm.testHandler.GetListeningTestDetails)
			tests.POST("/:id/submit", auth.RequireAuth(), hm.testHandler.SubmitTest)
		}

		attempts := v1.Group("/attempts")
		{
			attempts.GET("/me", auth.RequireAuth(), hm.attemptHandler.GetMyHistory)
			attempts.GET("/:id/result", hm.attemptHandler.GetTestResult)
		}

		// Admin routes
		admin := v1.Group("/admin", auth.RequireRole("admin"))
		{
			admin.GET("/tests", hm.adminHandler.ListTests)
			admin.POST("/tests", hm.adminHandler.CreateTest)
			admin.GET("/tests/:id", hm.adminHandler.GetTest)
			admin.PUT("/tests/:id", hm.adminHandler.UpdateTest)
			admin.DELETE("/tests/:id", hm.adminHandler.DeleteTest)
			admin.GET("/tests/:id/results/export", hm.adminHandler.ExportResults)
		}
	}
}

// HealthCheck reports service health, including database reachability
func (hm *HandlerManager) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	if err := hm.store.Ping(ctx); err != nil {
		utils.GetLoggerFromContext(c, hm.logger).LogError(err, "Health check failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "unhealthy",
			"service":  "online-test-service",
			"database": "unreachable",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"service":  "online-test-service",
		"database": "ok",
	})
}
