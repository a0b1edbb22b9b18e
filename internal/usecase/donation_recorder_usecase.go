package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"donation_platform/internal/domain/entities"
	"donation_platform/internal/usecase/interfaces"
)

// DonationRecordedEvent is published on interfaces.TopicDonationRecorded.
type DonationRecordedEvent struct {
	PaymentID  string    `json:"payment_id"`
	CampaignID string    `json:"campaign_id"`
	DonorID    string    `json:"donor_id,omitempty"`
	Anonymous  bool      `json:"anonymous"`
	Amount     string    `json:"amount"`
	Currency   string    `json:"currency"`
	RecordedAt time.Time `json:"recorded_at"`
}

// IDonationRecorderUseCase folds a succeeded payment into its campaign aggregate.
// Calling it again with the same payment is a no-op on the ledger.
type IDonationRecorderUseCase interface {
	AddDonation(ctx context.Context, p entities.Payment) (entities.Payment, error)
}

type DonationRecorderUseCase struct {
	repo      interfaces.IPaymentRepository
	ledger    interfaces.ICampaignLedger
	cache     interfaces.IStatsCache
	publisher interfaces.IEventPublisher
	policy    PaymentPolicy
}

var _ IDonationRecorderUseCase = (*DonationRecorderUseCase)(nil)

func NewDonationRecorderUseCase(repo interfaces.IPaymentRepository, ledger interfaces.ICampaignLedger, cache interfaces.IStatsCache, publisher interfaces.IEventPublisher, policy PaymentPolicy) *DonationRecorderUseCase {
	return &DonationRecorderUseCase{repo: repo, ledger: ledger, cache: cache, publisher: publisher, policy: policy.withDefaults()}
}

func (u *DonationRecorderUseCase) AddDonation(ctx context.Context, p entities.Payment) (entities.Payment, error) {
	if p.ID == "" {
		return p, ErrInvalidPaymentID
	}
	if p.CampaignID == "" {
		return p, ErrInvalidCampaignID
	}
	if !p.CountsTowardsLedger() {
		log.Printf("[donation][recorder] refusing non-succeeded payment payment_id=%s status=%s", p.ID, p.Status)
		return p, ErrInvalidTransition
	}

	entry := entities.DonationEntry{
		PaymentID: p.ID,
		DonorID:   p.DonorID,
		DonorName: p.DonorName,
		Anonymous: p.Anonymous,
		Amount:    p.Amount,
		CreatedAt: time.Now().UTC(),
	}
	if p.SucceededAt != nil {
		entry.CreatedAt = *p.SucceededAt
	}

	var (
		applied bool
		err     error
	)
	for attempt := 1; attempt <= u.policy.LedgerRetryAttempts; attempt++ {
		applied, err = u.ledger.IncrementRaised(ctx, p.CampaignID, p.Amount, entry)
		if err == nil {
			break
		}
		if errors.Is(err, interfaces.ErrLedgerCampaignNotFound) || ctx.Err() != nil {
			break
		}
		log.Printf("[donation][recorder] ledger increment failed payment_id=%s attempt=%d err=%v", p.ID, attempt, err)
		if attempt < u.policy.LedgerRetryAttempts {
			if sErr := sleepCtx(ctx, time.Duration(attempt)*u.policy.LedgerRetryBackoff); sErr != nil {
				break
			}
		}
	}
	if err != nil {
		return p, &ReconciliationError{Op: string(entities.ReconciliationLedgerIncrement), PaymentID: p.ID, Err: err}
	}
	if !applied {
		log.Printf("[donation][recorder] ledger already has payment payment_id=%s campaign_id=%s", p.ID, p.CampaignID)
	}

	recorded, err := markLedgerRecorded(ctx, u.repo, p)
	if err != nil {
		log.Printf("[donation][recorder] failed flagging payment as recorded payment_id=%s err=%v", p.ID, err)
		return p, &ReconciliationError{Op: string(entities.ReconciliationLedgerIncrement), PaymentID: p.ID, Err: err}
	}

	if applied {
		invalidateStats(ctx, u.cache, p.CampaignID)
		publish(ctx, u.publisher, interfaces.TopicDonationRecorded, p.CampaignID, DonationRecordedEvent{
			PaymentID:  p.ID,
			CampaignID: p.CampaignID,
			DonorID:    visibleDonorID(p),
			Anonymous:  p.Anonymous,
			Amount:     p.Amount.StringFixed(moneyDecimalPlaces),
			Currency:   p.Currency,
			RecordedAt: entry.CreatedAt,
		})
	}
	log.Printf("[donation][recorder] recorded payment_id=%s campaign_id=%s applied=%t", p.ID, p.CampaignID, applied)
	return recorded, nil
}

func visibleDonorID(p entities.Payment) string {
	if p.Anonymous {
		return ""
	}
	return p.DonorID
}

func invalidateStats(ctx context.Context, cache interfaces.IStatsCache, campaignID string) {
	if cache == nil {
		return
	}
	if err := cache.InvalidateCampaign(ctx, campaignID); err != nil {
		log.Printf("[donation][cache] invalidate failed campaign_id=%s err=%v", campaignID, err)
	}
}

func publish(ctx context.Context, publisher interfaces.IEventPublisher, topic, key string, payload any) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, topic, key, payload); err != nil {
		log.Printf("[donation][events] publish failed topic=%s key=%s err=%v", topic, key, err)
	}
}
