package main

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"tax-portal.backend/internal/interfaces/http/handlers"
	"tax-portal.backend/internal/interfaces/http/middleware"
	"tax-portal.backend/internal/realtime"
	"tax-portal.backend/pkg/jwt"
	"tax-portal.backend/pkg/redis"
)

type routeDeps struct {
	authHandler      *handlers.AuthHandler
	requestHandler   *handlers.RequestHandler
	paymentHandler   *handlers.PaymentHandler
	documentHandler  *handlers.DocumentHandler
	taxFilingHandler *handlers.TaxFilingHandler
	adminHandler     *handlers.AdminHandler
	activityHandler  *handlers.ActivityHandler
	authMiddleware   gin.HandlerFunc
}

func applyCORSMiddleware(r *gin.Engine, allowedOrigins []string) {
	r.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{
			"Origin", "Content-Type", "Accept", "Authorization",
			"X-Request-ID", "X-Session-ID", "Idempotency-Key",
		},
		ExposeHeaders:    []string{"X-Request-ID", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		redisStatus := "ok"
		if err := redis.Healthy(c.Request.Context()); err != nil {
			redisStatus = "unavailable"
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "redis": redisStatus})
	})
}

func registerMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func registerWebsocketRoute(r *gin.Engine, hub *realtime.Hub, jwtService *jwt.JWTService) {
	r.GET("/ws", func(c *gin.Context) {
		realtime.ServeWs(hub, jwtService, c)
	})
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", d.authHandler.Register)
			auth.POST("/login", d.authHandler.Login)
			auth.POST("/google", d.authHandler.GoogleSignIn)
			auth.POST("/refresh", d.authHandler.RefreshToken)
			auth.POST("/logout", d.authHandler.Logout)
		}

		// Profile routes (protected)
		profile := v1.Group("/profile")
		profile.Use(d.authMiddleware)
		{
			profile.GET("", d.authHandler.GetProfile)
			profile.PATCH("", d.authHandler.UpdateProfile)
		}

		// Service request routes (protected)
		requests := v1.Group("/requests")
		requests.Use(d.authMiddleware)
		{
			requests.POST("", d.requestHandler.Create)
			requests.GET("", d.requestHandler.List)
			requests.GET("/:id", d.requestHandler.Get)
		}

		// Payment routes (protected; method listing is public)
		v1.GET("/payments/methods", d.paymentHandler.Methods)
		payments := v1.Group("/payments")
		payments.Use(d.authMiddleware)
		{
			payments.POST("", middleware.IdempotencyMiddleware(), d.paymentHandler.Submit)
			payments.GET("", d.paymentHandler.List)
			payments.GET("/:id/receipt", d.paymentHandler.Receipt)
		}

		// Document routes (protected)
		documents := v1.Group("/documents")
		documents.Use(d.authMiddleware)
		{
			documents.POST("", d.documentHandler.Upload)
			documents.GET("", d.documentHandler.List)
			documents.GET("/:id/download", d.documentHandler.Download)
			documents.DELETE("/:id", d.documentHandler.Delete)
		}

		// Tax filing routes (protected)
		taxFilings := v1.Group("/tax-filings")
		taxFilings.Use(d.authMiddleware)
		{
			taxFilings.PUT("/draft", d.taxFilingHandler.SaveDraft)
			taxFilings.GET("/draft", d.taxFilingHandler.GetDraft)
			taxFilings.DELETE("/draft", d.taxFilingHandler.ClearDraft)
			taxFilings.POST("/estimate", d.taxFilingHandler.Estimate)
			taxFilings.POST("/submit", d.taxFilingHandler.Submit)
		}

		// Activity feed (protected)
		activity := v1.Group("/activity")
		activity.Use(d.authMiddleware)
		{
			activity.GET("", d.activityHandler.List)
		}

		// Admin console routes (admin role required)
		admin := v1.Group("/admin")
		admin.Use(d.authMiddleware, middleware.RequireAdmin())
		{
			admin.GET("/stats", d.adminHandler.Stats)
			admin.GET("/activity", d.adminHandler.RecentActivity)

			admin.GET("/clients", d.adminHandler.ListClients)
			admin.GET("/clients/:id", d.adminHandler.GetClient)
			admin.PATCH("/clients/:id/verification", d.adminHandler.SetVerification)

			admin.GET("/requests", d.requestHandler.ListAll)
			admin.PATCH("/requests/:id/status", d.requestHandler.UpdateStatus)

			admin.GET("/payments", d.paymentHandler.ListAll)
			admin.POST("/payments/:id/verify", d.paymentHandler.Verify)
			admin.POST("/payments/:id/reject", d.paymentHandler.Reject)

			admin.GET("/transactions/export", d.adminHandler.ExportTransactions)
		}
	}
}
