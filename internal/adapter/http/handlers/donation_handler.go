package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	request "donation_platform/internal/adapter/http/dto/request"
	response "donation_platform/internal/adapter/http/dto/response"
	"donation_platform/internal/domain/entities"
	"donation_platform/internal/usecase"
	"donation_platform/pkg"

	"github.com/gin-gonic/gin"
)

// DonationHandler serves the donor side: intents, confirmation, payment detail and history.
type DonationHandler struct {
	intents   usecase.IPaymentIntentUseCase
	confirm   usecase.IPaymentConfirmUseCase
	payments  usecase.IPaymentQueryUseCase
	stats     usecase.IStatsUseCase
	campaigns usecase.ICampaignUseCase
}

func NewDonationHandler(
	intents usecase.IPaymentIntentUseCase,
	confirm usecase.IPaymentConfirmUseCase,
	payments usecase.IPaymentQueryUseCase,
	stats usecase.IStatsUseCase,
	campaigns usecase.ICampaignUseCase,
) *DonationHandler {
	return &DonationHandler{intents: intents, confirm: confirm, payments: payments, stats: stats, campaigns: campaigns}
}

func (h *DonationHandler) CreateIntent(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var payload request.CreateIntentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		log.Printf("[donation][handler] create-intent invalid payload donor_id=%s err=%v", actor.ID, err)
		writeError(c, errInvalidRequest)
		return
	}
	amount, err := request.ParseAmount(payload.Amount)
	if err != nil || amount == nil {
		writeError(c, errInvalidAmount)
		return
	}

	result, err := h.intents.CreateIntent(c.Request.Context(), usecase.CreateIntentCommand{
		CampaignID:      payload.CampaignID,
		Amount:          *amount,
		Currency:        payload.ResolveCurrency(),
		Donor:           actor,
		Anonymous:       payload.Anonymous,
		Message:         payload.Message,
		ProviderPayload: payload.ProviderPayload,
	})
	if err != nil {
		writeUsecaseError(c, "donation", err)
		return
	}
	log.Printf("[donation][handler] create-intent success payment_id=%s intent_id=%s", result.Payment.ID, result.IntentID)

	c.JSON(http.StatusCreated, pkg.NewSuccess("Payment intent created", response.FromIntentResult(result)))
}

// ConfirmIntent answers 200 on success, 202 when the gateway needs a donor action and
// 402 when the charge was declined.
func (h *DonationHandler) ConfirmIntent(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	intentID := strings.TrimSpace(c.Param("intent_id"))

	result, err := h.confirm.Confirm(c.Request.Context(), intentID, actor.ID)
	if err != nil {
		writeUsecaseError(c, "donation", err)
		return
	}
	writeConfirmResult(c, result, actor.ID)
}

func writeConfirmResult(c *gin.Context, result usecase.ConfirmResult, viewerID string) {
	body := response.FromConfirmResult(result, viewerID)
	switch result.Outcome {
	case entities.IntentOutcomeFailed:
		resp := errDeclined.ToHTTPError()
		c.JSON(errDeclined.HTTPStatus, gin.H{"success": resp.Success, "message": resp.Message, "error": resp.Error, "data": body})
	case entities.IntentOutcomeRequiresAction:
		c.JSON(http.StatusAccepted, pkg.NewSuccess("Additional donor action required", body))
	default:
		msg := "Donation confirmed"
		if result.LedgerPending {
			msg = "Donation confirmed; campaign total update pending"
		}
		c.JSON(http.StatusOK, pkg.NewSuccess(msg, body))
	}
}

// GetPayment is visible to the donor, the campaign owner and admins.
func (h *DonationHandler) GetPayment(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	paymentID := c.Param("payment_id")

	p, err := h.payments.GetByID(c.Request.Context(), paymentID)
	if err != nil {
		writeUsecaseError(c, "donation", err)
		return
	}

	if !actor.IsAdmin() && p.DonorID != actor.ID {
		campaign, err := h.campaigns.GetByID(c.Request.Context(), p.CampaignID)
		if err != nil && !errors.Is(err, usecase.ErrNotFound) {
			writeUsecaseError(c, "donation", err)
			return
		}
		if campaign.OwnerID == "" || campaign.OwnerID != actor.ID {
			writeError(c, errForbidden)
			return
		}
	}

	c.JSON(http.StatusOK, pkg.NewSuccess("Payment found", response.FromPayment(p, actor.ID)))
}

func (h *DonationHandler) History(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	payments, err := h.payments.ListByDonorID(c.Request.Context(), actor.ID)
	if err != nil {
		writeUsecaseError(c, "donation", err)
		return
	}

	c.JSON(http.StatusOK, pkg.NewSuccess("Donation history", response.FromPayments(payments, actor.ID)))
}

func (h *DonationHandler) HistorySummary(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	totals, err := h.stats.DonorTotals(c.Request.Context(), actor.ID)
	if err != nil {
		writeUsecaseError(c, "donation", err)
		return
	}

	c.JSON(http.StatusOK, pkg.NewSuccess("Donation totals", response.FromDonorTotals(totals)))
}
