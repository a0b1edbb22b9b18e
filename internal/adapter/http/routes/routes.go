package routes

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "donation_platform/docs" // swagger spec registration
	"donation_platform/internal/adapter/http/handlers"
	"donation_platform/internal/adapter/http/middleware"
	"donation_platform/internal/infrastructure/bootstrap"
	"donation_platform/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Run starts the HTTP server and the reconciliation loop, and blocks until SIGINT/SIGTERM.
func Run(cfg *config.Config) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	container, err := bootstrap.Build(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to startup the application: %v", err)
	}
	defer container.Close()

	gin.SetMode(cfg.GinMode)
	router := NewRouter(container)

	go bootstrap.RunReconcileLoop(ctx, container.Reconciliation, cfg.ReconcileInterval, cfg.ReconcileBatch)

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Printf("[http] listening addr=%s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to startup the application: %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[http] shutdown failed err=%v", err)
	}
	log.Printf("[http] stopped")
}

// NewRouter builds the gin engine with every route wired to the container's use cases.
func NewRouter(c *bootstrap.Container) *gin.Engine {
	router := gin.New()
	setMiddlewares(router)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	donationHandler := handlers.NewDonationHandler(c.Intents, c.Confirm, c.Queries, c.Stats, c.Campaigns)
	refundHandler := handlers.NewRefundHandler(c.Refunds)
	webhookHandler := handlers.NewWebhookHandler(c.Confirm, c.Config.PaymentGateway, c.Config.WebhookSecret)
	campaignDonationHandler := handlers.NewCampaignDonationHandler(c.Stats, c.Queries, c.Campaigns)
	campaignHandler := handlers.NewCampaignHandler(c.Campaigns)
	reconciliationHandler := handlers.NewReconciliationHandler(c.Reconciliation)

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	// Webhooks authenticate with the provider signature, not a bearer token.
	addWebhookRoutes(v1, webhookHandler)

	authed := v1.Group("")
	authed.Use(middleware.AuthRequired(c.Config.JWTSecret))
	addDonationRoutes(authed, donationHandler, refundHandler)
	addCampaignRoutes(authed, campaignHandler, campaignDonationHandler)
	addAdminRoutes(authed, reconciliationHandler)

	return router
}

func setMiddlewares(router *gin.Engine) {
	router.Use(gin.Logger())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(http.StatusInternalServerError)
	}))
}
