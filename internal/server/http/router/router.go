package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/pasarmart/pasarmart/internal/server/http/handlers"
	"github.com/pasarmart/pasarmart/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.MarketFacade, sweeper handlers.SweepRunner, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	receiptHandler := handlers.NewReceiptHandler(facade)
	webhookHandler := handlers.NewWebhookHandler(facade)
	sellerHandler := handlers.NewSellerHandler(facade)
	sweepHandler := handlers.NewSweepHandler(sweeper)

	api := engine.Group("/api")
	api.POST("/orders", orderHandler.Create)
	api.GET("/orders/:id", orderHandler.Get)
	api.POST("/orders/:id/receipt", receiptHandler.Upload)

	webhooks := api.Group("/webhooks")
	webhooks.POST("/hostedbill", webhookHandler.HostedBill)
	webhooks.POST("/bankredirect", webhookHandler.BankRedirect)

	seller := api.Group("/seller")
	seller.POST("/login", authHandler.Login)

	sellerAuth := seller.Group("")
	sellerAuth.Use(middleware.AuthRequired(facade))
	sellerAuth.GET("/receipts", receiptHandler.Pending)
	sellerAuth.POST("/receipts/:id/approve", receiptHandler.Approve)
	sellerAuth.POST("/receipts/:id/reject", receiptHandler.Reject)
	sellerAuth.POST("/orders/:id/status", orderHandler.UpdateStatus)
	sellerAuth.PUT("/reminders", sellerHandler.UpdateReminders)

	internal := api.Group("/internal")
	internal.POST("/sweep", sweepHandler.Trigger)

	return engine
}
