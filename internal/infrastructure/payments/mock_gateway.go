package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"donation_platform/internal/domain/entities"
	"donation_platform/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrMockIntentNotFound = errors.New("mock intent not found")
	ErrMockChargeNotFound = errors.New("mock charge not found")
	ErrMockRefundExceeds  = errors.New("mock refund exceeds captured amount")
)

// mockPayload lets local clients pick the confirm outcome, e.g. {"simulate":"declined"}.
type mockPayload struct {
	Simulate string `json:"simulate"`
}

type mockIntent struct {
	amount   decimal.Decimal
	simulate string
	chargeID string
}

type mockCharge struct {
	amount   decimal.Decimal
	refunded decimal.Decimal
}

// MockGateway approves everything unless told otherwise. Enabled with
// PAYMENT_GATEWAY=mock or PAYMENT_GATEWAY_MOCK=true for local runs.
type MockGateway struct {
	mu      sync.Mutex
	intents map[string]*mockIntent
	charges map[string]*mockCharge
	refunds map[string]entities.GatewayRefund
}

var _ interfaces.IPaymentGateway = (*MockGateway)(nil)

func NewMockGateway() *MockGateway {
	log.Printf("[payment][gateway][mock] mock mode enabled")
	return &MockGateway{
		intents: make(map[string]*mockIntent),
		charges: make(map[string]*mockCharge),
		refunds: make(map[string]entities.GatewayRefund),
	}
}

func (g *MockGateway) Name() string { return "mock" }

func (g *MockGateway) CreateIntent(_ context.Context, req entities.GatewayIntentRequest) (entities.GatewayIntent, error) {
	var payload mockPayload
	if len(req.ProviderPayload) > 0 {
		_ = json.Unmarshal(req.ProviderPayload, &payload)
	}

	id := "mock_pi_" + uuid.NewString()
	g.mu.Lock()
	g.intents[id] = &mockIntent{amount: req.Amount, simulate: strings.ToLower(payload.Simulate)}
	g.mu.Unlock()

	log.Printf("[payment][gateway][mock] create intent intent_id=%s amount=%s", id, req.Amount)
	return entities.GatewayIntent{IntentID: id, ClientToken: id + "_secret"}, nil
}

func (g *MockGateway) ConfirmIntent(_ context.Context, intentID string) (entities.GatewayConfirmation, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	in, ok := g.intents[intentID]
	if !ok {
		return entities.GatewayConfirmation{}, fmt.Errorf("%w: %s", ErrMockIntentNotFound, intentID)
	}

	switch in.simulate {
	case "declined":
		return entities.GatewayConfirmation{Outcome: entities.IntentOutcomeFailed, ProviderStatus: "card_declined"}, nil
	case "requires_action":
		return entities.GatewayConfirmation{
			Outcome:           entities.IntentOutcomeRequiresAction,
			ContinuationToken: intentID + "_3ds",
			ProviderStatus:    "requires_action",
		}, nil
	}

	if in.chargeID == "" {
		in.chargeID = "mock_ch_" + uuid.NewString()
		g.charges[in.chargeID] = &mockCharge{amount: in.amount}
	}
	return entities.GatewayConfirmation{
		Outcome:        entities.IntentOutcomeSucceeded,
		ChargeID:       in.chargeID,
		ProviderStatus: "succeeded",
	}, nil
}

// CreateRefund is idempotent per key and never refunds more than was captured.
func (g *MockGateway) CreateRefund(_ context.Context, req entities.GatewayRefundRequest) (entities.GatewayRefund, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if req.IdempotencyKey != "" {
		if prev, ok := g.refunds[req.IdempotencyKey]; ok {
			return prev, nil
		}
	}
	ch, ok := g.charges[req.ChargeID]
	if !ok {
		return entities.GatewayRefund{}, fmt.Errorf("%w: %s", ErrMockChargeNotFound, req.ChargeID)
	}
	if ch.refunded.Add(req.Amount).GreaterThan(ch.amount) {
		return entities.GatewayRefund{}, ErrMockRefundExceeds
	}
	ch.refunded = ch.refunded.Add(req.Amount)

	out := entities.GatewayRefund{RefundID: "mock_re_" + uuid.NewString(), ProviderStatus: "succeeded"}
	if req.IdempotencyKey != "" {
		g.refunds[req.IdempotencyKey] = out
	}
	log.Printf("[payment][gateway][mock] refund charge_id=%s amount=%s refund_id=%s", req.ChargeID, req.Amount, out.RefundID)
	return out, nil
}
