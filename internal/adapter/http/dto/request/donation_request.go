package request

import (
	"encoding/json"
	"strings"
)

// CreateIntentRequest opens a donation. provider_payload is passed untouched to the gateway
// (Stripe payment_method, Mercado Pago card token payload).
type CreateIntentRequest struct {
	CampaignID      string          `json:"campaign_id" binding:"required"`
	Amount          json.RawMessage `json:"amount" swaggertype:"string" example:"25.00"`
	Currency        string          `json:"currency" example:"USD"`
	Anonymous       bool            `json:"anonymous"`
	Message         string          `json:"message"`
	ProviderPayload json.RawMessage `json:"provider_payload" swaggertype:"object"`
}

func (r CreateIntentRequest) ResolveCurrency() string {
	return strings.ToUpper(strings.TrimSpace(r.Currency))
}

// RefundRequest: amount omitted means refund the remaining amount.
type RefundRequest struct {
	Amount json.RawMessage `json:"amount" swaggertype:"string" example:"10.00"`
	Reason string          `json:"reason"`
}

// WebhookRequest covers the notification shapes of the supported providers:
//
//	stripe:      {"type":"payment_intent.succeeded","data":{"object":{"id":"pi_..."}}}
//	mercadopago: {"type":"payment","data":{"id":"123"}}
//	generic:     {"intent_id":"..."}
type WebhookRequest struct {
	Type     string `json:"type"`
	IntentID string `json:"intent_id"`
	Data     struct {
		ID     json.RawMessage `json:"id"`
		Object struct {
			ID string `json:"id"`
		} `json:"object"`
	} `json:"data"`
}

func (r WebhookRequest) ResolveIntentID() string {
	if v := strings.TrimSpace(r.IntentID); v != "" {
		return v
	}
	if v := strings.TrimSpace(r.Data.Object.ID); v != "" {
		return v
	}
	if len(r.Data.ID) > 0 {
		var s string
		if err := json.Unmarshal(r.Data.ID, &s); err == nil {
			return strings.TrimSpace(s)
		}
		var n json.Number
		if err := json.Unmarshal(r.Data.ID, &n); err == nil {
			return n.String()
		}
	}
	return ""
}
