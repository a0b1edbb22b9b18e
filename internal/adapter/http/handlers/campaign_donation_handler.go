package handlers

import (
	"net/http"

	response "donation_platform/internal/adapter/http/dto/response"
	"donation_platform/internal/usecase"
	"donation_platform/pkg"

	"github.com/gin-gonic/gin"
)

// CampaignDonationHandler exposes per-campaign aggregates.
type CampaignDonationHandler struct {
	stats     usecase.IStatsUseCase
	payments  usecase.IPaymentQueryUseCase
	campaigns usecase.ICampaignUseCase
}

func NewCampaignDonationHandler(stats usecase.IStatsUseCase, payments usecase.IPaymentQueryUseCase, campaigns usecase.ICampaignUseCase) *CampaignDonationHandler {
	return &CampaignDonationHandler{stats: stats, payments: payments, campaigns: campaigns}
}

func (h *CampaignDonationHandler) Stats(c *gin.Context) {
	stats, err := h.stats.CampaignStats(c.Request.Context(), c.Param("campaign_id"))
	if err != nil {
		writeUsecaseError(c, "stats", err)
		return
	}
	c.JSON(http.StatusOK, pkg.NewSuccess("Campaign donation stats", response.FromCampaignStats(stats)))
}

func (h *CampaignDonationHandler) Donors(c *gin.Context) {
	donors, err := h.stats.DonorListing(c.Request.Context(), c.Param("campaign_id"))
	if err != nil {
		writeUsecaseError(c, "stats", err)
		return
	}
	c.JSON(http.StatusOK, pkg.NewSuccess("Campaign donors", response.FromDonorSummaries(donors)))
}

// Payments lists every payment of a campaign, pending and failed included. Owner or admin only.
func (h *CampaignDonationHandler) Payments(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	campaignID := c.Param("campaign_id")

	campaign, err := h.campaigns.GetByID(c.Request.Context(), campaignID)
	if err != nil {
		writeUsecaseError(c, "stats", err)
		return
	}
	if !actor.IsAdmin() && campaign.OwnerID != actor.ID {
		writeError(c, errForbidden)
		return
	}

	payments, err := h.payments.ListByCampaignID(c.Request.Context(), campaignID)
	if err != nil {
		writeUsecaseError(c, "stats", err)
		return
	}
	c.JSON(http.StatusOK, pkg.NewSuccess("Campaign payments", response.FromPayments(payments, actor.ID)))
}
