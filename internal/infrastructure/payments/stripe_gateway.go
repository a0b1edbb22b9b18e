package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"donation_platform/internal/domain/entities"
	"donation_platform/internal/usecase/interfaces"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

var ErrMissingStripeSecretKey = errors.New("missing STRIPE_SECRET_KEY")

// stripeIntentPayload is the optional provider payload the frontend can send.
type stripeIntentPayload struct {
	PaymentMethod string `json:"payment_method"`
	ReceiptEmail  string `json:"receipt_email"`
}

type StripeGateway struct {
	sc *client.API
}

var _ interfaces.IPaymentGateway = (*StripeGateway)(nil)

func NewStripeGateway(secretKey string) (*StripeGateway, error) {
	if secretKey == "" {
		log.Printf("[payment][gateway][stripe] missing STRIPE_SECRET_KEY")
		return nil, ErrMissingStripeSecretKey
	}
	log.Printf("[payment][gateway][stripe] client initialized")
	return &StripeGateway{sc: client.New(secretKey, nil)}, nil
}

func newStripeGatewayWithBackends(secretKey string, backends *stripe.Backends) *StripeGateway {
	return &StripeGateway{sc: client.New(secretKey, backends)}
}

func (g *StripeGateway) Name() string { return "stripe" }

func (g *StripeGateway) CreateIntent(ctx context.Context, req entities.GatewayIntentRequest) (entities.GatewayIntent, error) {
	var payload stripeIntentPayload
	if len(req.ProviderPayload) > 0 {
		if err := json.Unmarshal(req.ProviderPayload, &payload); err != nil {
			return entities.GatewayIntent{}, fmt.Errorf("stripe payload: %w", err)
		}
	}

	params := &stripe.PaymentIntentParams{
		Amount:      stripe.Int64(toMinorUnits(req.Amount, req.Currency)),
		Currency:    stripe.String(strings.ToLower(req.Currency)),
		Description: stripe.String(req.Description),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	if id := req.Metadata["payment_id"]; id != "" {
		params.SetIdempotencyKey("intent-" + id)
	}
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}
	if payload.PaymentMethod != "" {
		params.PaymentMethod = stripe.String(payload.PaymentMethod)
	}
	if payload.ReceiptEmail != "" {
		params.ReceiptEmail = stripe.String(payload.ReceiptEmail)
	}

	pi, err := g.sc.PaymentIntents.New(params)
	if err != nil {
		log.Printf("[payment][gateway][stripe] create intent failed err=%v", err)
		return entities.GatewayIntent{}, describeStripeError(err)
	}
	log.Printf("[payment][gateway][stripe] create intent success intent_id=%s status=%s", pi.ID, pi.Status)
	return entities.GatewayIntent{IntentID: pi.ID, ClientToken: pi.ClientSecret}, nil
}

// ConfirmIntent reads the intent and confirms it server side only while Stripe still
// waits for confirmation. Intents confirmed by Stripe.js are just read.
func (g *StripeGateway) ConfirmIntent(ctx context.Context, intentID string) (entities.GatewayConfirmation, error) {
	getParams := &stripe.PaymentIntentParams{}
	getParams.Context = ctx
	pi, err := g.sc.PaymentIntents.Get(intentID, getParams)
	if err != nil {
		return entities.GatewayConfirmation{}, describeStripeError(err)
	}

	if pi.Status == stripe.PaymentIntentStatusRequiresConfirmation {
		confirmParams := &stripe.PaymentIntentConfirmParams{}
		confirmParams.Context = ctx
		confirmParams.SetIdempotencyKey("confirm-" + intentID)
		pi, err = g.sc.PaymentIntents.Confirm(intentID, confirmParams)
		if err != nil {
			var se *stripe.Error
			if errors.As(err, &se) && se.Type == stripe.ErrorTypeCard {
				log.Printf("[payment][gateway][stripe] confirm declined intent_id=%s code=%s", intentID, se.Code)
				return entities.GatewayConfirmation{Outcome: entities.IntentOutcomeFailed, ProviderStatus: string(se.Code)}, nil
			}
			return entities.GatewayConfirmation{}, describeStripeError(err)
		}
	}

	out := entities.GatewayConfirmation{ProviderStatus: string(pi.Status)}
	switch pi.Status {
	case stripe.PaymentIntentStatusSucceeded:
		out.Outcome = entities.IntentOutcomeSucceeded
		if pi.LatestCharge != nil {
			out.ChargeID = pi.LatestCharge.ID
		}
	case stripe.PaymentIntentStatusRequiresAction, stripe.PaymentIntentStatusProcessing, stripe.PaymentIntentStatusRequiresCapture:
		out.Outcome = entities.IntentOutcomeRequiresAction
		out.ContinuationToken = pi.ClientSecret
	default:
		out.Outcome = entities.IntentOutcomeFailed
	}
	log.Printf("[payment][gateway][stripe] confirm intent_id=%s status=%s outcome=%s", intentID, pi.Status, out.Outcome)
	return out, nil
}

func (g *StripeGateway) CreateRefund(ctx context.Context, req entities.GatewayRefundRequest) (entities.GatewayRefund, error) {
	params := &stripe.RefundParams{
		Charge: stripe.String(req.ChargeID),
		Amount: stripe.Int64(toMinorUnits(req.Amount, req.Currency)),
		Reason: stripe.String(string(stripe.RefundReasonRequestedByCustomer)),
	}
	params.Context = ctx
	if req.IdempotencyKey != "" {
		params.SetIdempotencyKey(req.IdempotencyKey)
	}
	if req.Reason != "" {
		params.AddMetadata("reason", req.Reason)
	}

	rf, err := g.sc.Refunds.New(params)
	if err != nil {
		log.Printf("[payment][gateway][stripe] refund failed charge_id=%s err=%v", req.ChargeID, err)
		return entities.GatewayRefund{}, describeStripeError(err)
	}
	log.Printf("[payment][gateway][stripe] refund success refund_id=%s status=%s", rf.ID, rf.Status)
	return entities.GatewayRefund{RefundID: rf.ID, ProviderStatus: string(rf.Status)}, nil
}

func describeStripeError(err error) error {
	var se *stripe.Error
	if errors.As(err, &se) {
		return fmt.Errorf("stripe %s (%s): %w", se.Type, se.Code, err)
	}
	return err
}
