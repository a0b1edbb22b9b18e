package usecase

import (
	"context"
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

type RefundCommand struct {
	PaymentID string
	// Amount nil means refund whatever is left.
	Amount *decimal.Decimal
	Reason string
	Actor  entities.Actor
	// IdempotencyKey names the request. A retry with the same key returns the refund it
	// already created. Empty means a fresh key per call.
	IdempotencyKey string
}

type RefundResult struct {
	Payment entities.Payment
	Refund  entities.RefundRecord
	// ReconciliationPending is true when the gateway refunded but a local write is queued.
	ReconciliationPending bool
}

// DonationRefundedEvent is published on interfaces.TopicDonationRefunded.
type DonationRefundedEvent struct {
	PaymentID      string    `json:"payment_id"`
	CampaignID     string    `json:"campaign_id"`
	RefundID       string    `json:"refund_id"`
	Amount         string    `json:"amount"`
	RefundedAmount string    `json:"refunded_amount"`
	Currency       string    `json:"currency"`
	FullyRefunded  bool      `json:"fully_refunded"`
	RefundedAt     time.Time `json:"refunded_at"`
}

// IRefundUseCase returns money for a recorded donation and pulls it out of the campaign total.
type IRefundUseCase interface {
	Refund(ctx context.Context, cmd RefundCommand) (RefundResult, error)
	ApplyQueuedRefund(ctx context.Context, task entities.ReconciliationTask) error
}

type RefundUseCase struct {
	repo      interfaces.IPaymentRepository
	ledger    interfaces.ICampaignLedger
	gateway   interfaces.IPaymentGateway
	queue     interfaces.IReconciliationQueue
	cache     interfaces.IStatsCache
	publisher interfaces.IEventPublisher
	policy    PaymentPolicy
}

var _ IRefundUseCase = (*RefundUseCase)(nil)

func NewRefundUseCase(
	repo interfaces.IPaymentRepository,
	ledger interfaces.ICampaignLedger,
	gateway interfaces.IPaymentGateway,
	queue interfaces.IReconciliationQueue,
	cache interfaces.IStatsCache,
	publisher interfaces.IEventPublisher,
	policy PaymentPolicy,
) *RefundUseCase {
	return &RefundUseCase{
		repo:      repo,
		ledger:    ledger,
		gateway:   gateway,
		queue:     queue,
		cache:     cache,
		publisher: publisher,
		policy:    policy.withDefaults(),
	}
}

func (u *RefundUseCase) Refund(ctx context.Context, cmd RefundCommand) (RefundResult, error) {
	paymentID := strings.TrimSpace(cmd.PaymentID)
	log.Printf("[donation][refund] start payment_id=%q actor_id=%s role=%s", paymentID, cmd.Actor.ID, cmd.Actor.Role)
	if paymentID == "" {
		return RefundResult{}, ErrInvalidPaymentID
	}
	reason := strings.TrimSpace(cmd.Reason)
	if utf8.RuneCountInString(reason) > maxReasonLength {
		return RefundResult{}, ErrReasonTooLong
	}
	if cmd.Amount != nil && !moneyShapeOK(*cmd.Amount) {
		log.Printf("[donation][refund] amount out of representable range payment_id=%s", paymentID)
		return RefundResult{}, ErrInvalidAmount
	}
	key := strings.TrimSpace(cmd.IdempotencyKey)
	if len(key) > maxIdempotencyKeyLength {
		return RefundResult{}, ErrInvalidIdempotencyKey
	}

	p, err := u.repo.GetByID(ctx, paymentID)
	if err != nil {
		log.Printf("[donation][refund] failed loading payment payment_id=%s err=%v", paymentID, err)
		return RefundResult{}, err
	}
	if p.ID == "" {
		return RefundResult{}, ErrPaymentNotFound
	}

	if err := u.authorize(ctx, cmd.Actor, p); err != nil {
		return RefundResult{}, err
	}

	if prev, ok := p.RefundByKey(key); ok {
		if cmd.Amount != nil && !cmd.Amount.Equal(prev.Amount) {
			log.Printf("[donation][refund] idempotency key reused with another amount payment_id=%s refund_id=%s", p.ID, prev.RefundID)
			return RefundResult{}, ErrIdempotencyKeyReused
		}
		log.Printf("[donation][refund] replayed request payment_id=%s refund_id=%s", p.ID, prev.RefundID)
		return RefundResult{Payment: p, Refund: prev}, nil
	}
	if key == "" {
		key = uuid.NewString()
	}

	if p.Status != entities.PaymentStatusSucceeded {
		log.Printf("[donation][refund] payment not refundable payment_id=%s status=%s", p.ID, p.Status)
		return RefundResult{}, ErrRefundNotAllowed
	}
	if !p.LedgerRecorded {
		log.Printf("[donation][refund] payment not yet recorded payment_id=%s", p.ID)
		return RefundResult{}, ErrDonationNotRecorded
	}

	remaining := p.RefundableAmount()
	amount := remaining
	if cmd.Amount != nil {
		amount = *cmd.Amount
		if !roundMoney(amount).Equal(amount) {
			return RefundResult{}, ErrInvalidAmount
		}
	}
	if !amount.IsPositive() {
		return RefundResult{}, ErrInvalidRefundAmount
	}
	if amount.GreaterThan(remaining) {
		log.Printf("[donation][refund] over refund payment_id=%s amount=%s remaining=%s", p.ID, amount.String(), remaining.String())
		return RefundResult{}, ErrOverRefund
	}
	if p.ChargeID == "" {
		return RefundResult{}, fmt.Errorf("%w: payment has no gateway charge", ErrRefundNotAllowed)
	}
	if u.gateway == nil {
		return RefundResult{}, ErrGatewayNotConfigured
	}

	gctx, cancel := context.WithTimeout(ctx, u.policy.GatewayTimeout)
	gr, err := u.gateway.CreateRefund(gctx, entities.GatewayRefundRequest{
		ChargeID:       p.ChargeID,
		Amount:         amount,
		Currency:       p.Currency,
		Reason:         reason,
		IdempotencyKey: "refund-" + p.ID + "-" + key,
	})
	cancel()
	if err != nil {
		log.Printf("[donation][refund] gateway refund failed payment_id=%s err=%v", p.ID, err)
		return RefundResult{}, &GatewayError{Op: "create_refund", Err: err}
	}
	log.Printf("[donation][refund] gateway refund accepted payment_id=%s refund_id=%s provider_status=%s", p.ID, gr.RefundID, gr.ProviderStatus)

	rec := entities.RefundRecord{
		RefundID:       gr.RefundID,
		IdempotencyKey: key,
		Amount:         amount,
		Reason:         reason,
		RequestedBy:    cmd.Actor.ID,
		CreatedAt:      time.Now().UTC(),
	}

	updated, err := u.applyRefund(ctx, p, rec)
	if err != nil {
		log.Printf("[CRITICAL][donation][refund] local refund write failed after gateway refund payment_id=%s refund_id=%s err=%v", p.ID, rec.RefundID, err)
		task := refundTask(entities.ReconciliationRefundApply, p, rec, err)
		if isPermanentReplayError(err) {
			// A concurrent refund consumed the balance first. The gateway accepted this one
			// anyway, so replaying cannot help; an operator has to settle it.
			task.Status = entities.ReconciliationStatusManualReview
			enqueueReconciliation(ctx, u.queue, u.publisher, task)
			return RefundResult{Payment: p, Refund: rec, ReconciliationPending: true},
				&ReconciliationError{Op: string(entities.ReconciliationRefundApply), PaymentID: p.ID, Err: err}
		}
		enqueueReconciliation(ctx, u.queue, u.publisher, task)
		return RefundResult{Payment: p, Refund: rec, ReconciliationPending: true}, nil
	}

	pending := !u.decrement(ctx, updated, rec)
	u.afterRefund(ctx, updated, rec)

	log.Printf("[donation][refund] success payment_id=%s refund_id=%s refunded_amount=%s status=%s", updated.ID, rec.RefundID, updated.RefundedAmount.String(), updated.Status)
	return RefundResult{Payment: updated, Refund: rec, ReconciliationPending: pending}, nil
}

// ApplyQueuedRefund replays the local half of a refund the gateway already executed.
func (u *RefundUseCase) ApplyQueuedRefund(ctx context.Context, task entities.ReconciliationTask) error {
	p, err := u.repo.GetByID(ctx, task.PaymentID)
	if err != nil {
		return err
	}
	if p.ID == "" {
		return ErrPaymentNotFound
	}
	rec := entities.RefundRecord{
		RefundID:       task.RefundID,
		IdempotencyKey: task.IdempotencyKey,
		Amount:         task.Amount,
		Reason:         task.Reason,
		RequestedBy:    task.RequestedBy,
		CreatedAt:      task.CreatedAt,
	}
	updated, err := u.applyRefund(ctx, p, rec)
	if err != nil {
		return err
	}
	if _, err := u.ledger.DecrementRaised(ctx, updated.CampaignID, rec.Amount, refundDedupeKey(rec.RefundID)); err != nil {
		return err
	}
	u.afterRefund(ctx, updated, rec)
	return nil
}

func (u *RefundUseCase) authorize(ctx context.Context, actor entities.Actor, p entities.Payment) error {
	if actor.IsAdmin() {
		return nil
	}
	if actor.ID == "" {
		return ErrRefundForbidden
	}
	campaign, err := u.ledger.FindDonatable(ctx, p.CampaignID)
	if err != nil {
		return err
	}
	if campaign.ID == "" || campaign.OwnerID != actor.ID {
		log.Printf("[donation][refund] actor not allowed payment_id=%s actor_id=%s", p.ID, actor.ID)
		return ErrRefundForbidden
	}
	return nil
}

// applyRefund folds rec into the payment with compare-and-set. The bound is checked
// against the latest stored state, so concurrent refunds cannot exceed Amount together.
func (u *RefundUseCase) applyRefund(ctx context.Context, p entities.Payment, rec entities.RefundRecord) (entities.Payment, error) {
	updated, _, err := updatePayment(ctx, u.repo, p, func(cur entities.Payment) (entities.Payment, error) {
		if cur.HasRefund(rec.RefundID) {
			return cur, errNoChange
		}
		if cur.Status != entities.PaymentStatusSucceeded {
			return cur, ErrRefundNotAllowed
		}
		if rec.Amount.GreaterThan(cur.RefundableAmount()) {
			return cur, ErrOverRefund
		}
		return cur.ApplyRefund(rec), nil
	})
	return updated, err
}

// decrement reports whether the ledger now reflects the refund.
func (u *RefundUseCase) decrement(ctx context.Context, p entities.Payment, rec entities.RefundRecord) bool {
	applied, err := u.ledger.DecrementRaised(ctx, p.CampaignID, rec.Amount, refundDedupeKey(rec.RefundID))
	if err != nil {
		log.Printf("[CRITICAL][donation][refund] ledger decrement failed payment_id=%s refund_id=%s err=%v", p.ID, rec.RefundID, err)
		enqueueReconciliation(ctx, u.queue, u.publisher, refundTask(entities.ReconciliationLedgerDecrement, p, rec, err))
		return false
	}
	if !applied {
		log.Printf("[donation][refund] ledger already has refund payment_id=%s refund_id=%s", p.ID, rec.RefundID)
	}
	return true
}

func (u *RefundUseCase) afterRefund(ctx context.Context, p entities.Payment, rec entities.RefundRecord) {
	invalidateStats(ctx, u.cache, p.CampaignID)
	publish(ctx, u.publisher, interfaces.TopicDonationRefunded, p.CampaignID, DonationRefundedEvent{
		PaymentID:      p.ID,
		CampaignID:     p.CampaignID,
		RefundID:       rec.RefundID,
		Amount:         rec.Amount.StringFixed(moneyDecimalPlaces),
		RefundedAmount: p.RefundedAmount.StringFixed(moneyDecimalPlaces),
		Currency:       p.Currency,
		FullyRefunded:  p.Status == entities.PaymentStatusRefunded,
		RefundedAt:     rec.CreatedAt,
	})
}

// isPermanentReplayError reports errors a later replay would hit again.
func isPermanentReplayError(err error) bool {
	return errors.Is(err, ErrOverRefund) || errors.Is(err, ErrRefundNotAllowed)
}

func refundDedupeKey(refundID string) string {
	return "refund:" + refundID
}

func refundTask(kind entities.ReconciliationKind, p entities.Payment, rec entities.RefundRecord, cause error) entities.ReconciliationTask {
	task := entities.ReconciliationTask{
		Kind:           kind,
		PaymentID:      p.ID,
		CampaignID:     p.CampaignID,
		DedupeKey:      refundDedupeKey(rec.RefundID),
		Amount:         rec.Amount,
		ChargeID:       p.ChargeID,
		RefundID:       rec.RefundID,
		IdempotencyKey: rec.IdempotencyKey,
		Reason:         rec.Reason,
		RequestedBy:    rec.RequestedBy,
	}
	if cause != nil {
		task.LastError = cause.Error()
	}
	return task
}

// enqueueReconciliation stores a task for the drain. Losing it would lose money
// the gateway already moved, so a failure here is logged as critical.
func enqueueReconciliation(ctx context.Context, queue interfaces.IReconciliationQueue, publisher interfaces.IEventPublisher, task entities.ReconciliationTask) {
	if queue == nil {
		log.Printf("[CRITICAL][reconciliation] queue not configured kind=%s payment_id=%s", task.Kind, task.PaymentID)
		return
	}
	now := time.Now().UTC()
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	if task.Status == "" {
		task.Status = entities.ReconciliationStatusPending
	}
	task.CreatedAt = now
	task.UpdatedAt = now
	saved, err := queue.Enqueue(ctx, task)
	if err != nil {
		log.Printf("[CRITICAL][reconciliation] enqueue failed kind=%s payment_id=%s err=%v", task.Kind, task.PaymentID, err)
		return
	}
	log.Printf("[reconciliation] queued task_id=%s kind=%s status=%s payment_id=%s", saved.ID, saved.Kind, saved.Status, saved.PaymentID)
	publish(ctx, publisher, interfaces.TopicReconciliationQueued, saved.PaymentID, saved)
}
