package entities

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// IntentOutcome is the typed result of confirming a gateway intent.
type IntentOutcome string

const (
	IntentOutcomeSucceeded      IntentOutcome = "succeeded"
	IntentOutcomeRequiresAction IntentOutcome = "requires_action"
	IntentOutcomeFailed         IntentOutcome = "failed"
)

type GatewayIntentRequest struct {
	Amount          decimal.Decimal
	Currency        string
	Description     string
	Metadata        map[string]string
	ProviderPayload json.RawMessage
}

type GatewayIntent struct {
	IntentID    string
	ClientToken string
}

type GatewayConfirmation struct {
	Outcome           IntentOutcome
	ChargeID          string
	ContinuationToken string
	ProviderStatus    string
}

type GatewayRefundRequest struct {
	ChargeID       string
	Amount         decimal.Decimal
	Currency       string
	Reason         string
	IdempotencyKey string
}

type GatewayRefund struct {
	RefundID       string
	ProviderStatus string
}
