package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"

	"donation_platform/internal/domain/entities"
	"donation_platform/internal/usecase/interfaces"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/refund"
)

var (
	ErrMissingMercadoPagoAccessToken = errors.New("missing MERCADOPAGO_ACCESS_TOKEN")
	ErrInvalidMercadoPagoID          = errors.New("invalid mercado pago payment id")
)

// MercadoPagoGateway creates the payment straight away (card token flow), so the
// provider payment id is both the intent id and the charge id.
type MercadoPagoGateway struct {
	payments payment.Client
	refunds  refund.Client
}

var _ interfaces.IPaymentGateway = (*MercadoPagoGateway)(nil)

func NewMercadoPagoGateway(accessToken string) (*MercadoPagoGateway, error) {
	if accessToken == "" {
		log.Printf("[payment][gateway][mercadopago] missing MERCADOPAGO_ACCESS_TOKEN")
		return nil, ErrMissingMercadoPagoAccessToken
	}

	cfg, err := config.New(accessToken)
	if err != nil {
		log.Printf("[payment][gateway][mercadopago] failed creating sdk config err=%v", err)
		return nil, err
	}
	log.Printf("[payment][gateway][mercadopago] client initialized")

	return &MercadoPagoGateway{
		payments: payment.NewClient(cfg),
		refunds:  refund.NewClient(cfg),
	}, nil
}

func (g *MercadoPagoGateway) Name() string { return "mercadopago" }

func (g *MercadoPagoGateway) CreateIntent(ctx context.Context, req entities.GatewayIntentRequest) (entities.GatewayIntent, error) {
	log.Printf("[payment][gateway][mercadopago] create start payload_len=%d", len(req.ProviderPayload))

	var mpReq payment.Request
	if len(req.ProviderPayload) > 0 {
		if err := json.Unmarshal(req.ProviderPayload, &mpReq); err != nil {
			log.Printf("[payment][gateway][mercadopago] payload unmarshal failed err=%v", err)
			return entities.GatewayIntent{}, err
		}
	}
	// The SDK takes float64; amounts were already checked to have two decimal places.
	mpReq.TransactionAmount = req.Amount.InexactFloat64()
	mpReq.ExternalReference = req.Metadata["payment_id"]
	if req.Description != "" {
		mpReq.Description = req.Description
	}
	if len(req.Metadata) > 0 {
		meta := make(map[string]any, len(req.Metadata))
		for k, v := range req.Metadata {
			meta[k] = v
		}
		mpReq.Metadata = meta
	}

	resp, err := g.payments.Create(ctx, mpReq)
	if err != nil {
		log.Printf("[payment][gateway][mercadopago] sdk create failed err=%v", err)
		return entities.GatewayIntent{}, err
	}
	log.Printf("[payment][gateway][mercadopago] create success provider_payment_id=%d provider_status=%s", resp.ID, resp.Status)

	return entities.GatewayIntent{IntentID: strconv.Itoa(resp.ID), ClientToken: resp.Status}, nil
}

func (g *MercadoPagoGateway) ConfirmIntent(ctx context.Context, intentID string) (entities.GatewayConfirmation, error) {
	id, err := parseMercadoPagoID(intentID)
	if err != nil {
		return entities.GatewayConfirmation{}, err
	}

	resp, err := g.payments.Get(ctx, id)
	if err != nil {
		log.Printf("[payment][gateway][mercadopago] get failed provider_payment_id=%d err=%v", id, err)
		return entities.GatewayConfirmation{}, err
	}

	out := entities.GatewayConfirmation{
		Outcome:        mercadoPagoOutcome(resp.Status),
		ProviderStatus: resp.Status,
	}
	switch out.Outcome {
	case entities.IntentOutcomeSucceeded:
		out.ChargeID = intentID
	case entities.IntentOutcomeRequiresAction:
		out.ContinuationToken = resp.StatusDetail
	}
	log.Printf("[payment][gateway][mercadopago] confirm provider_payment_id=%d status=%s detail=%s", id, resp.Status, resp.StatusDetail)
	return out, nil
}

func (g *MercadoPagoGateway) CreateRefund(ctx context.Context, req entities.GatewayRefundRequest) (entities.GatewayRefund, error) {
	id, err := parseMercadoPagoID(req.ChargeID)
	if err != nil {
		return entities.GatewayRefund{}, err
	}

	resp, err := g.refunds.CreatePartialRefund(ctx, id, req.Amount.InexactFloat64())
	if err != nil {
		log.Printf("[payment][gateway][mercadopago] refund failed provider_payment_id=%d err=%v", id, err)
		return entities.GatewayRefund{}, err
	}
	log.Printf("[payment][gateway][mercadopago] refund success provider_payment_id=%d refund_id=%d status=%s", id, resp.ID, resp.Status)
	return entities.GatewayRefund{RefundID: strconv.Itoa(resp.ID), ProviderStatus: resp.Status}, nil
}

// mercadoPagoOutcome maps Mercado Pago payment statuses to intent outcomes.
func mercadoPagoOutcome(status string) entities.IntentOutcome {
	switch status {
	case "approved":
		return entities.IntentOutcomeSucceeded
	case "pending", "in_process", "authorized":
		return entities.IntentOutcomeRequiresAction
	default:
		return entities.IntentOutcomeFailed
	}
}

func parseMercadoPagoID(id string) (int, error) {
	n, err := strconv.Atoi(id)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidMercadoPagoID, id)
	}
	return n, nil
}
