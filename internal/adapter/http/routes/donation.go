package routes

import (
	"net/http"

	"donation_platform/internal/adapter/http/handlers"
	"donation_platform/internal/adapter/http/middleware"
	"donation_platform/internal/domain/entities"
	"donation_platform/pkg"

	"github.com/gin-gonic/gin"
)

const (
	PathPing           = "/ping"
	PathDonations      = "/donations"
	PathCampaigns      = "/campaigns"
	PathReconciliation = "/admin/reconciliation"
)

func addPingRoutes(rg *gin.RouterGroup) {
	rg.GET(PathPing, func(c *gin.Context) {
		c.JSON(http.StatusOK, pkg.NewSuccess("pong", nil))
	})
}

func addWebhookRoutes(rg *gin.RouterGroup, webhookHandler *handlers.WebhookHandler) {
	rg.POST(PathDonations+"/webhooks/:provider", webhookHandler.Receive)
}

func addDonationRoutes(rg *gin.RouterGroup, donationHandler *handlers.DonationHandler, refundHandler *handlers.RefundHandler) {
	donations := rg.Group(PathDonations)
	{
		donations.POST("/intents", donationHandler.CreateIntent)
		donations.POST("/intents/:intent_id/confirm", donationHandler.ConfirmIntent)
		donations.GET("/payments/:payment_id", donationHandler.GetPayment)
		donations.POST("/payments/:payment_id/refunds", refundHandler.CreateRefund)
		donations.GET("/history", donationHandler.History)
		donations.GET("/history/summary", donationHandler.HistorySummary)
	}
}

func addCampaignRoutes(rg *gin.RouterGroup, campaignHandler *handlers.CampaignHandler, donationHandler *handlers.CampaignDonationHandler) {
	campaigns := rg.Group(PathCampaigns)
	{
		campaigns.POST("", middleware.RoleRequired(entities.RoleAdmin, entities.RoleCreator), campaignHandler.Register)
		campaigns.GET("/:campaign_id", campaignHandler.Get)
		campaigns.PATCH("/:campaign_id/activate", campaignHandler.Activate)
		campaigns.PATCH("/:campaign_id/pause", campaignHandler.Pause)
		campaigns.PATCH("/:campaign_id/complete", campaignHandler.Complete)

		campaigns.GET("/:campaign_id/donations", donationHandler.Payments)
		campaigns.GET("/:campaign_id/donations/stats", donationHandler.Stats)
		campaigns.GET("/:campaign_id/donations/donors", donationHandler.Donors)
	}
}

func addAdminRoutes(rg *gin.RouterGroup, reconciliationHandler *handlers.ReconciliationHandler) {
	admin := rg.Group(PathReconciliation, middleware.RoleRequired(entities.RoleAdmin))
	{
		admin.GET("/tasks", reconciliationHandler.ListPending)
		admin.POST("/drain", reconciliationHandler.Drain)
	}
}
