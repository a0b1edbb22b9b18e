package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"donation_platform/internal/domain/entities"
	"donation_platform/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateIntentCommand struct {
	CampaignID      string
	Amount          decimal.Decimal
	Currency        string
	Donor           entities.Actor
	Anonymous       bool
	Message         string
	ProviderPayload json.RawMessage
}

type CreateIntentResult struct {
	Payment     entities.Payment
	IntentID    string
	ClientToken string
}

// IPaymentIntentUseCase opens a donation: validate, create the gateway intent, then
// persist the pending payment. Nothing is stored when the gateway refuses.
type IPaymentIntentUseCase interface {
	CreateIntent(ctx context.Context, cmd CreateIntentCommand) (CreateIntentResult, error)
}

type PaymentIntentUseCase struct {
	repo    interfaces.IPaymentRepository
	ledger  interfaces.ICampaignLedger
	gateway interfaces.IPaymentGateway
	policy  PaymentPolicy
}

var _ IPaymentIntentUseCase = (*PaymentIntentUseCase)(nil)

func NewPaymentIntentUseCase(repo interfaces.IPaymentRepository, ledger interfaces.ICampaignLedger, gateway interfaces.IPaymentGateway, policy PaymentPolicy) *PaymentIntentUseCase {
	return &PaymentIntentUseCase{repo: repo, ledger: ledger, gateway: gateway, policy: policy.withDefaults()}
}

func (u *PaymentIntentUseCase) CreateIntent(ctx context.Context, cmd CreateIntentCommand) (CreateIntentResult, error) {
	campaignID := strings.TrimSpace(cmd.CampaignID)
	log.Printf("[donation][intent] create start campaign_id=%q donor_id=%s", campaignID, cmd.Donor.ID)
	if campaignID == "" {
		return CreateIntentResult{}, ErrInvalidCampaignID
	}
	if strings.TrimSpace(cmd.Donor.ID) == "" {
		return CreateIntentResult{}, ErrInvalidDonorID
	}

	if !moneyShapeOK(cmd.Amount) {
		log.Printf("[donation][intent] amount out of representable range campaign_id=%s", campaignID)
		return CreateIntentResult{}, ErrInvalidAmount
	}
	if cmd.Amount.LessThan(u.policy.MinDonation) {
		return CreateIntentResult{}, ErrAmountBelowMinimum
	}
	if cmd.Amount.GreaterThan(u.policy.MaxDonation) {
		return CreateIntentResult{}, ErrAmountAboveMaximum
	}
	amount := roundMoney(cmd.Amount)
	if !amount.Equal(cmd.Amount) {
		log.Printf("[donation][intent] amount has more than two decimals campaign_id=%s amount=%s", campaignID, cmd.Amount.String())
		return CreateIntentResult{}, ErrInvalidAmount
	}
	message := strings.TrimSpace(cmd.Message)
	if utf8.RuneCountInString(message) > maxMessageLength {
		return CreateIntentResult{}, ErrMessageTooLong
	}
	if len(cmd.ProviderPayload) > 0 && !json.Valid(cmd.ProviderPayload) {
		return CreateIntentResult{}, fmt.Errorf("%w: provider payload is not valid json", ErrValidation)
	}
	if u.gateway == nil {
		log.Printf("[donation][intent] gateway not configured campaign_id=%s", campaignID)
		return CreateIntentResult{}, ErrGatewayNotConfigured
	}

	campaign, err := u.ledger.FindDonatable(ctx, campaignID)
	if err != nil {
		log.Printf("[donation][intent] failed loading campaign campaign_id=%s err=%v", campaignID, err)
		return CreateIntentResult{}, err
	}
	if campaign.ID == "" {
		return CreateIntentResult{}, ErrCampaignNotFound
	}
	if !campaign.AcceptsDonations() {
		log.Printf("[donation][intent] campaign not donatable campaign_id=%s type=%s status=%s", campaignID, campaign.Type, campaign.Status)
		return CreateIntentResult{}, ErrCampaignNotDonatable
	}

	currency := strings.ToUpper(strings.TrimSpace(cmd.Currency))
	if currency == "" {
		currency = campaign.Currency
	}
	if !strings.EqualFold(currency, campaign.Currency) {
		return CreateIntentResult{}, ErrCurrencyMismatch
	}

	paymentID := uuid.NewString()
	gctx, cancel := context.WithTimeout(ctx, u.policy.GatewayTimeout)
	intent, err := u.gateway.CreateIntent(gctx, entities.GatewayIntentRequest{
		Amount:      amount,
		Currency:    currency,
		Description: fmt.Sprintf("Donation to %s", campaign.Title),
		Metadata: map[string]string{
			"payment_id":  paymentID,
			"campaign_id": campaignID,
			"donor_id":    cmd.Donor.ID,
		},
		ProviderPayload: cmd.ProviderPayload,
	})
	cancel()
	if err != nil {
		log.Printf("[donation][intent] gateway create failed campaign_id=%s payment_id=%s err=%v", campaignID, paymentID, err)
		return CreateIntentResult{}, &GatewayError{Op: "create_intent", Err: err}
	}
	if strings.TrimSpace(intent.IntentID) == "" {
		return CreateIntentResult{}, &GatewayError{Op: "create_intent", Err: errors.New("gateway returned empty intent id")}
	}

	now := time.Now().UTC()
	p := entities.Payment{
		ID:             paymentID,
		CampaignID:     campaignID,
		DonorID:        cmd.Donor.ID,
		IntentID:       intent.IntentID,
		Gateway:        u.gateway.Name(),
		Amount:         amount,
		Currency:       currency,
		RefundedAmount: decimal.Zero,
		Status:         entities.PaymentStatusPending,
		DonorName:      cmd.Donor.Name,
		DonorEmail:     cmd.Donor.Email,
		Anonymous:      cmd.Anonymous,
		Message:        message,
		Version:        1,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	created, err := u.repo.Create(ctx, p)
	if err != nil {
		// The gateway intent stays orphaned; it can never be confirmed locally and expires upstream.
		log.Printf("[donation][intent] payment repository create failed payment_id=%s intent_id=%s err=%v", paymentID, intent.IntentID, err)
		return CreateIntentResult{}, err
	}

	log.Printf("[donation][intent] create success payment_id=%s intent_id=%s gateway=%s", created.ID, created.IntentID, created.Gateway)
	return CreateIntentResult{Payment: created, IntentID: created.IntentID, ClientToken: intent.ClientToken}, nil
}
