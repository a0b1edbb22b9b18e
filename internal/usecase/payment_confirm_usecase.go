package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	"donation_platform/internal/domain/entities"
	"donation_platform/internal/usecase/interfaces"
)

type ConfirmResult struct {
	Payment           entities.Payment
	Outcome           entities.IntentOutcome
	ContinuationToken string
	// AlreadyConfirmed is true when the payment had already succeeded before this call.
	AlreadyConfirmed bool
	// LedgerPending is true when the charge succeeded but the campaign total is queued for reconciliation.
	LedgerPending bool
}

// IPaymentConfirmUseCase finalizes a gateway intent. Confirming the same intent twice
// never charges or records twice.
type IPaymentConfirmUseCase interface {
	Confirm(ctx context.Context, intentID, donorID string) (ConfirmResult, error)
	ConfirmFromWebhook(ctx context.Context, intentID string) (ConfirmResult, error)
}

type PaymentConfirmUseCase struct {
	repo      interfaces.IPaymentRepository
	gateway   interfaces.IPaymentGateway
	recorder  IDonationRecorderUseCase
	queue     interfaces.IReconciliationQueue
	publisher interfaces.IEventPublisher
	policy    PaymentPolicy
}

var _ IPaymentConfirmUseCase = (*PaymentConfirmUseCase)(nil)

func NewPaymentConfirmUseCase(
	repo interfaces.IPaymentRepository,
	gateway interfaces.IPaymentGateway,
	recorder IDonationRecorderUseCase,
	queue interfaces.IReconciliationQueue,
	publisher interfaces.IEventPublisher,
	policy PaymentPolicy,
) *PaymentConfirmUseCase {
	return &PaymentConfirmUseCase{
		repo:      repo,
		gateway:   gateway,
		recorder:  recorder,
		queue:     queue,
		publisher: publisher,
		policy:    policy.withDefaults(),
	}
}

func (u *PaymentConfirmUseCase) Confirm(ctx context.Context, intentID, donorID string) (ConfirmResult, error) {
	donorID = strings.TrimSpace(donorID)
	if donorID == "" {
		return ConfirmResult{}, ErrInvalidDonorID
	}
	return u.confirm(ctx, intentID, donorID, true)
}

// ConfirmFromWebhook runs the confirm flow for a gateway notification. The donor check
// is skipped because the caller is the processor, not the donor.
func (u *PaymentConfirmUseCase) ConfirmFromWebhook(ctx context.Context, intentID string) (ConfirmResult, error) {
	return u.confirm(ctx, intentID, "", false)
}

func (u *PaymentConfirmUseCase) confirm(ctx context.Context, intentID, donorID string, checkDonor bool) (ConfirmResult, error) {
	intentID = strings.TrimSpace(intentID)
	log.Printf("[donation][confirm] start intent_id=%q donor_id=%s webhook=%t", intentID, donorID, !checkDonor)
	if intentID == "" {
		return ConfirmResult{}, ErrInvalidIntentID
	}

	p, err := u.repo.GetByIntentID(ctx, intentID)
	if err != nil {
		log.Printf("[donation][confirm] failed loading payment intent_id=%s err=%v", intentID, err)
		return ConfirmResult{}, err
	}
	if p.ID == "" {
		return ConfirmResult{}, ErrPaymentNotFound
	}
	if checkDonor && p.DonorID != donorID {
		log.Printf("[donation][confirm] donor mismatch intent_id=%s payment_id=%s", intentID, p.ID)
		return ConfirmResult{}, ErrNotPaymentDonor
	}

	switch p.Status {
	case entities.PaymentStatusSucceeded, entities.PaymentStatusRefunded:
		log.Printf("[donation][confirm] already confirmed payment_id=%s status=%s", p.ID, p.Status)
		return alreadyConfirmed(p), nil
	case entities.PaymentStatusFailed, entities.PaymentStatusCanceled:
		return ConfirmResult{Payment: p}, ErrInvalidTransition
	}

	if u.gateway == nil {
		return ConfirmResult{}, ErrGatewayNotConfigured
	}
	gctx, cancel := context.WithTimeout(ctx, u.policy.GatewayTimeout)
	conf, err := u.gateway.ConfirmIntent(gctx, intentID)
	cancel()
	if err != nil {
		log.Printf("[donation][confirm] gateway confirm failed payment_id=%s intent_id=%s err=%v", p.ID, intentID, err)
		return ConfirmResult{}, &GatewayError{Op: "confirm_intent", Err: err}
	}
	log.Printf("[donation][confirm] gateway outcome payment_id=%s outcome=%s provider_status=%s", p.ID, conf.Outcome, conf.ProviderStatus)

	switch conf.Outcome {
	case entities.IntentOutcomeSucceeded:
		return u.onSucceeded(ctx, p, conf)
	case entities.IntentOutcomeRequiresAction:
		return ConfirmResult{
			Payment:           p,
			Outcome:           entities.IntentOutcomeRequiresAction,
			ContinuationToken: conf.ContinuationToken,
		}, nil
	default:
		failed, err := markFailed(ctx, u.repo, p)
		if err != nil {
			if errors.Is(err, ErrInvalidTransition) && failed.CountsTowardsLedger() {
				// A concurrent confirm already saw the charge succeed.
				return alreadyConfirmed(failed), nil
			}
			log.Printf("[donation][confirm] failed marking payment failed payment_id=%s err=%v", p.ID, err)
			return ConfirmResult{}, err
		}
		log.Printf("[donation][confirm] payment failed payment_id=%s", failed.ID)
		return ConfirmResult{Payment: failed, Outcome: entities.IntentOutcomeFailed}, nil
	}
}

func (u *PaymentConfirmUseCase) onSucceeded(ctx context.Context, p entities.Payment, conf entities.GatewayConfirmation) (ConfirmResult, error) {
	succeeded, changed, err := markSucceeded(ctx, u.repo, p, conf.ChargeID)
	if err != nil {
		if errors.Is(err, ErrInvalidTransition) {
			return ConfirmResult{Payment: succeeded}, err
		}
		// The charge went through but the status write did not. Queue it; the drain marks
		// the payment succeeded and records it.
		log.Printf("[CRITICAL][donation][confirm] status write failed after charge payment_id=%s charge_id=%s err=%v", p.ID, conf.ChargeID, err)
		u.enqueue(ctx, entities.ReconciliationTask{
			Kind:       entities.ReconciliationLedgerIncrement,
			PaymentID:  p.ID,
			CampaignID: p.CampaignID,
			DedupeKey:  p.ID,
			Amount:     p.Amount,
			ChargeID:   conf.ChargeID,
			LastError:  err.Error(),
		})
		pending := p
		pending.Status = entities.PaymentStatusSucceeded
		pending.ChargeID = conf.ChargeID
		return ConfirmResult{Payment: pending, Outcome: entities.IntentOutcomeSucceeded, LedgerPending: true}, nil
	}

	if !changed {
		// Lost the race; the winner records the donation.
		log.Printf("[donation][confirm] concurrent confirm won payment_id=%s", p.ID)
		return alreadyConfirmed(succeeded), nil
	}

	recorded, err := u.recorder.AddDonation(ctx, succeeded)
	if err != nil {
		log.Printf("[CRITICAL][donation][confirm] ledger record failed payment_id=%s campaign_id=%s err=%v", succeeded.ID, succeeded.CampaignID, err)
		u.enqueue(ctx, entities.ReconciliationTask{
			Kind:       entities.ReconciliationLedgerIncrement,
			PaymentID:  succeeded.ID,
			CampaignID: succeeded.CampaignID,
			DedupeKey:  succeeded.ID,
			Amount:     succeeded.Amount,
			ChargeID:   succeeded.ChargeID,
			LastError:  err.Error(),
		})
		return ConfirmResult{Payment: succeeded, Outcome: entities.IntentOutcomeSucceeded, LedgerPending: true}, nil
	}

	log.Printf("[donation][confirm] success payment_id=%s intent_id=%s charge_id=%s", recorded.ID, recorded.IntentID, recorded.ChargeID)
	return ConfirmResult{Payment: recorded, Outcome: entities.IntentOutcomeSucceeded}, nil
}

func (u *PaymentConfirmUseCase) enqueue(ctx context.Context, task entities.ReconciliationTask) {
	enqueueReconciliation(ctx, u.queue, u.publisher, task)
}

func alreadyConfirmed(p entities.Payment) ConfirmResult {
	return ConfirmResult{
		Payment:          p,
		Outcome:          entities.IntentOutcomeSucceeded,
		AlreadyConfirmed: true,
		LedgerPending:    !p.LedgerRecorded,
	}
}
