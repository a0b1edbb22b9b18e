package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"

	request "donation_platform/internal/adapter/http/dto/request"
	response "donation_platform/internal/adapter/http/dto/response"
	"donation_platform/internal/domain/entities"
	"donation_platform/internal/usecase"
	"donation_platform/pkg"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// CampaignHandler provisions the ledger view of campaigns.
type CampaignHandler struct {
	usecase usecase.ICampaignUseCase
}

func NewCampaignHandler(uc usecase.ICampaignUseCase) *CampaignHandler {
	return &CampaignHandler{usecase: uc}
}

func (h *CampaignHandler) Register(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var payload request.RegisterCampaignRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		log.Printf("[campaign][handler] invalid payload actor_id=%s err=%v", actor.ID, err)
		writeError(c, errInvalidRequest)
		return
	}
	goal, err := request.ParseAmount(payload.GoalAmount)
	if err != nil {
		writeError(c, errInvalidAmount)
		return
	}

	ownerID := actor.ID
	if actor.IsAdmin() && strings.TrimSpace(payload.OwnerID) != "" {
		ownerID = strings.TrimSpace(payload.OwnerID)
	} else if payload.OwnerID != "" && payload.OwnerID != actor.ID {
		writeError(c, errForbidden)
		return
	}

	cmd := usecase.RegisterCampaignCommand{
		ID:       strings.TrimSpace(payload.ID),
		OwnerID:  ownerID,
		Title:    payload.Title,
		Type:     entities.CampaignType(strings.ToLower(strings.TrimSpace(payload.Type))),
		Currency: payload.Currency,
	}
	if goal != nil {
		cmd.GoalAmount = *goal
	} else {
		cmd.GoalAmount = decimal.Zero
	}

	campaign, err := h.usecase.Register(c.Request.Context(), cmd)
	if err != nil {
		writeUsecaseError(c, "campaign", err)
		return
	}
	log.Printf("[campaign][handler] registered campaign_id=%s owner_id=%s", campaign.ID, campaign.OwnerID)
	c.JSON(http.StatusCreated, pkg.NewSuccess("Campaign registered", response.FromCampaign(campaign)))
}

func (h *CampaignHandler) Get(c *gin.Context) {
	campaign, err := h.usecase.GetByID(c.Request.Context(), c.Param("campaign_id"))
	if err != nil {
		writeUsecaseError(c, "campaign", err)
		return
	}
	c.JSON(http.StatusOK, pkg.NewSuccess("Campaign found", response.FromCampaign(campaign)))
}

func (h *CampaignHandler) Activate(c *gin.Context) {
	h.changeStatus(c, h.usecase.Activate)
}

func (h *CampaignHandler) Pause(c *gin.Context) {
	h.changeStatus(c, h.usecase.Pause)
}

func (h *CampaignHandler) Complete(c *gin.Context) {
	h.changeStatus(c, h.usecase.Complete)
}

func (h *CampaignHandler) changeStatus(
	c *gin.Context,
	updater func(ctx context.Context, actor entities.Actor, campaignID string) (entities.Campaign, error),
) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	campaign, err := updater(c.Request.Context(), actor, c.Param("campaign_id"))
	if err != nil {
		writeUsecaseError(c, "campaign", err)
		return
	}
	c.JSON(http.StatusOK, pkg.NewSuccess("Campaign updated", response.FromCampaign(campaign)))
}
