package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"bankflow.backend/internal/interfaces/http/handlers"
	"bankflow.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	authHandler         *handlers.AuthHandler
	accountHandler      *handlers.AccountHandler
	transactionHandler  *handlers.TransactionHandler
	transferHandler     *handlers.TransferHandler
	beneficiaryHandler  *handlers.BeneficiaryHandler
	otpHandler          *handlers.OTPHandler
	notificationHandler *handlers.NotificationHandler
	currencyHandler     *handlers.CurrencyHandler
	adminHandler        *handlers.AdminHandler
	authMiddleware      gin.HandlerFunc
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func applyCORSMiddleware(r *gin.Engine) {
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, Idempotency-Key, X-Request-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/", d.authHandler.Register)
			auth.POST("/verify-email", d.authHandler.VerifyEmail)
			auth.POST("/resend-otp", d.authHandler.ResendOTP)
			auth.POST("/token", d.authHandler.Login)
			auth.POST("/refresh", d.authHandler.Refresh)
			auth.POST("/forgot-password", d.authHandler.ForgotPassword)
			auth.POST("/reset-password", d.authHandler.ResetPassword)
			auth.POST("/change-password", d.authMiddleware, d.authHandler.ChangePassword)
			auth.GET("/me", d.authMiddleware, d.authHandler.Me)
		}

		// Account routes (protected)
		accounts := v1.Group("/accounts")
		accounts.Use(d.authMiddleware)
		{
			accounts.POST("", d.accountHandler.Create)
			accounts.GET("", d.accountHandler.List)
			accounts.GET("/:id", d.accountHandler.Get)
			accounts.DELETE("/:id", d.accountHandler.Delete)
			accounts.GET("/:id/balance", d.accountHandler.Balance)
			accounts.POST("/:id/deposit", middleware.IdempotencyMiddleware(), d.accountHandler.Deposit)
			accounts.POST("/:id/withdraw", middleware.IdempotencyMiddleware(), d.accountHandler.Withdraw)
			accounts.POST("/:id/transfer", middleware.IdempotencyMiddleware(), d.accountHandler.TransferInternal)
		}

		// Transaction routes (protected)
		transactions := v1.Group("/transactions")
		transactions.Use(d.authMiddleware)
		{
			transactions.POST("/credit", middleware.IdempotencyMiddleware(), d.transactionHandler.Credit)
			transactions.POST("/debit", middleware.IdempotencyMiddleware(), d.transactionHandler.Debit)
			transactions.GET("", d.transactionHandler.List)
			transactions.GET("/summary", d.transactionHandler.Summary)
			transactions.GET("/:id", d.transactionHandler.Get)
		}

		// Transfer routes (protected)
		transfers := v1.Group("/transfers")
		transfers.Use(d.authMiddleware)
		{
			transfers.POST("/initiate", d.transferHandler.Initiate)
			transfers.POST("/confirm", middleware.IdempotencyMiddleware(), d.transferHandler.Confirm)
			transfers.GET("", d.transferHandler.List)
			transfers.GET("/summary", d.transferHandler.Summary)
			transfers.GET("/:id", d.transferHandler.Get)
		}

		// Beneficiary routes (protected)
		beneficiaries := v1.Group("/beneficiaries")
		beneficiaries.Use(d.authMiddleware)
		{
			beneficiaries.POST("", d.beneficiaryHandler.Create)
			beneficiaries.GET("", d.beneficiaryHandler.List)
			beneficiaries.GET("/:id", d.beneficiaryHandler.Get)
			beneficiaries.PATCH("/:id", d.beneficiaryHandler.Update)
			beneficiaries.DELETE("/:id", d.beneficiaryHandler.Delete)
		}

		// OTP routes (protected)
		otp := v1.Group("/otp")
		otp.Use(d.authMiddleware)
		{
			otp.POST("/generate", d.otpHandler.Generate)
			otp.POST("/verify", d.otpHandler.Verify)
		}

		// Notification routes (protected)
		notifications := v1.Group("/notifications")
		notifications.Use(d.authMiddleware)
		{
			notifications.GET("", d.notificationHandler.List)
			notifications.DELETE("/:id", d.notificationHandler.Delete)
		}

		// Currency routes (public)
		currency := v1.Group("/currency")
		{
			currency.GET("/rates", d.currencyHandler.Rates)
			currency.POST("/convert", d.currencyHandler.Convert)
			currency.GET("/bank-info", d.currencyHandler.BankInfo)
		}

		// Admin routes (protected)
		admin := v1.Group("/admin")
		admin.Use(d.authMiddleware, middleware.RequireAdmin())
		{
			admin.GET("/users", d.adminHandler.ListUsers)
			admin.GET("/users/:id", d.adminHandler.GetUser)
			admin.PATCH("/users/:id", d.adminHandler.UpdateUser)
			admin.DELETE("/users/:id", d.adminHandler.DeleteUser)

			admin.GET("/accounts", d.adminHandler.ListAccounts)
			admin.PATCH("/accounts/:id/status", d.adminHandler.UpdateAccountStatus)

			admin.PATCH("/beneficiaries/:id/verify", d.adminHandler.VerifyBeneficiary)

			admin.POST("/news", d.adminHandler.BroadcastNews)
		}
	}
}
