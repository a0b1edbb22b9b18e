package handlers

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	request "donation_platform/internal/adapter/http/dto/request"
	response "donation_platform/internal/adapter/http/dto/response"
	"donation_platform/internal/usecase"
	"donation_platform/pkg"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76/webhook"
)

const (
	providerStripe = "stripe"

	webhookSecretHeader   = "X-Webhook-Secret"
	stripeSignatureHeader = "Stripe-Signature"
	maxWebhookBody        = 64 << 10
)

var (
	errUnknownProvider  = pkg.NewDomainErrorSimple("UNKNOWN_PROVIDER", "Webhook provider not configured", http.StatusNotFound)
	errInvalidSignature = pkg.NewDomainErrorSimple("INVALID_SIGNATURE", "Webhook signature verification failed", http.StatusUnauthorized)
)

// WebhookHandler confirms intents from gateway notifications. The notification is only a
// trigger: the usecase re-reads the intent from the gateway, so a forged body cannot mark
// a payment succeeded.
type WebhookHandler struct {
	usecase  usecase.IPaymentConfirmUseCase
	provider string
	secret   string
}

func NewWebhookHandler(uc usecase.IPaymentConfirmUseCase, provider, secret string) *WebhookHandler {
	return &WebhookHandler{usecase: uc, provider: strings.ToLower(provider), secret: secret}
}

func (h *WebhookHandler) Receive(c *gin.Context) {
	provider := strings.ToLower(c.Param("provider"))
	if provider != h.provider {
		log.Printf("[donation][webhook] unknown provider=%s configured=%s", provider, h.provider)
		writeError(c, errUnknownProvider)
		return
	}

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		writeError(c, errInvalidRequest)
		return
	}
	if !h.verify(c, provider, body) {
		log.Printf("[donation][webhook] signature rejected provider=%s", provider)
		writeError(c, errInvalidSignature)
		return
	}

	var payload request.WebhookRequest
	if err := json.Unmarshal(body, &payload); err != nil {
		writeError(c, errInvalidRequest)
		return
	}
	if provider == providerStripe && payload.Type != "" && !strings.HasPrefix(payload.Type, "payment_intent.") {
		c.JSON(http.StatusOK, pkg.NewSuccess("Event ignored", gin.H{"type": payload.Type}))
		return
	}
	intentID := payload.ResolveIntentID()
	if intentID == "" {
		c.JSON(http.StatusOK, pkg.NewSuccess("Event ignored", gin.H{"type": payload.Type}))
		return
	}
	log.Printf("[donation][webhook] received provider=%s type=%s intent_id=%s", provider, payload.Type, intentID)

	result, err := h.usecase.ConfirmFromWebhook(c.Request.Context(), intentID)
	if err != nil {
		// Unknown intents are acknowledged so the provider stops redelivering them.
		if errors.Is(err, usecase.ErrPaymentNotFound) {
			log.Printf("[donation][webhook] unknown intent acknowledged intent_id=%s", intentID)
			c.JSON(http.StatusOK, pkg.NewSuccess("Event ignored", gin.H{"intent_id": intentID}))
			return
		}
		writeUsecaseError(c, "donation", err)
		return
	}
	log.Printf("[donation][webhook] processed intent_id=%s outcome=%s", intentID, result.Outcome)
	c.JSON(http.StatusOK, pkg.NewSuccess("Webhook processed", response.FromConfirmResult(result, "")))
}

func (h *WebhookHandler) verify(c *gin.Context, provider string, body []byte) bool {
	if h.secret == "" {
		return true
	}
	if provider == providerStripe {
		_, err := webhook.ConstructEventWithOptions(body, c.GetHeader(stripeSignatureHeader), h.secret, webhook.ConstructEventOptions{
			IgnoreAPIVersionMismatch: true,
		})
		if err != nil {
			log.Printf("[donation][webhook] stripe signature invalid err=%v", err)
			return false
		}
		return true
	}
	got := c.GetHeader(webhookSecretHeader)
	return subtle.ConstantTimeCompare([]byte(got), []byte(h.secret)) == 1
}
