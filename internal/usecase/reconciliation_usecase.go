package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"

	"donation_platform/internal/domain/entities"
	"donation_platform/internal/usecase/interfaces"
)

const (
	defaultDrainLimit = 50
	// maxTaskAttempts is how many failed replays a task gets before it is parked.
	maxTaskAttempts = 10
)

// DrainReport counts parked tasks in both Failed and ManualReview.
type DrainReport struct {
	Processed    int      `json:"processed"`
	Resolved     int      `json:"resolved"`
	Failed       int      `json:"failed"`
	ManualReview int      `json:"manual_review"`
	Errors       []string `json:"errors,omitempty"`
}

// IReconciliationUseCase replays local writes that failed after the gateway moved money.
type IReconciliationUseCase interface {
	Drain(ctx context.Context, limit int) (DrainReport, error)
	ListPending(ctx context.Context, limit int) ([]entities.ReconciliationTask, error)
}

type ReconciliationUseCase struct {
	queue    interfaces.IReconciliationQueue
	repo     interfaces.IPaymentRepository
	ledger   interfaces.ICampaignLedger
	recorder IDonationRecorderUseCase
	refunds  IRefundUseCase
	cache    interfaces.IStatsCache
}

var _ IReconciliationUseCase = (*ReconciliationUseCase)(nil)

func NewReconciliationUseCase(
	queue interfaces.IReconciliationQueue,
	repo interfaces.IPaymentRepository,
	ledger interfaces.ICampaignLedger,
	recorder IDonationRecorderUseCase,
	refunds IRefundUseCase,
	cache interfaces.IStatsCache,
) *ReconciliationUseCase {
	return &ReconciliationUseCase{queue: queue, repo: repo, ledger: ledger, recorder: recorder, refunds: refunds, cache: cache}
}

func (u *ReconciliationUseCase) ListPending(ctx context.Context, limit int) ([]entities.ReconciliationTask, error) {
	if limit <= 0 {
		limit = defaultDrainLimit
	}
	return u.queue.ListPending(ctx, limit)
}

// Drain processes up to limit pending tasks. A failing task stays pending with its
// attempt counter bumped; it never stops the rest of the batch. Tasks that fail with
// an error no replay can fix, or that run out of attempts, move to manual review.
func (u *ReconciliationUseCase) Drain(ctx context.Context, limit int) (DrainReport, error) {
	tasks, err := u.ListPending(ctx, limit)
	if err != nil {
		log.Printf("[reconciliation][drain] failed listing tasks err=%v", err)
		return DrainReport{}, err
	}

	var report DrainReport
	for _, task := range tasks {
		if ctx.Err() != nil {
			break
		}
		report.Processed++
		if err := u.process(ctx, task); err != nil {
			report.Failed++
			report.Errors = append(report.Errors, fmt.Sprintf("%s: %v", task.ID, err))
			if isPermanentReplayError(err) || errors.Is(err, errUnknownTaskKind) || task.Attempts+1 >= maxTaskAttempts {
				report.ManualReview++
				log.Printf("[CRITICAL][reconciliation][drain] task parked for manual review task_id=%s kind=%s payment_id=%s attempts=%d err=%v", task.ID, task.Kind, task.PaymentID, task.Attempts+1, err)
				if mErr := u.queue.MarkManualReview(ctx, task.ID, err.Error()); mErr != nil {
					log.Printf("[reconciliation][drain] failed updating task task_id=%s err=%v", task.ID, mErr)
				}
				continue
			}
			log.Printf("[reconciliation][drain] task failed task_id=%s kind=%s payment_id=%s attempts=%d err=%v", task.ID, task.Kind, task.PaymentID, task.Attempts+1, err)
			if mErr := u.queue.MarkAttemptFailed(ctx, task.ID, err.Error()); mErr != nil {
				log.Printf("[reconciliation][drain] failed updating task task_id=%s err=%v", task.ID, mErr)
			}
			continue
		}
		if err := u.queue.MarkResolved(ctx, task.ID); err != nil {
			// The replay is idempotent, so leaving the task pending only costs a retry.
			log.Printf("[reconciliation][drain] failed resolving task task_id=%s err=%v", task.ID, err)
			report.Failed++
			continue
		}
		report.Resolved++
		log.Printf("[reconciliation][drain] task resolved task_id=%s kind=%s payment_id=%s", task.ID, task.Kind, task.PaymentID)
	}
	log.Printf("[reconciliation][drain] done processed=%d resolved=%d failed=%d manual_review=%d", report.Processed, report.Resolved, report.Failed, report.ManualReview)
	return report, nil
}

var errUnknownTaskKind = fmt.Errorf("%w: unknown task kind", ErrReconciliation)

func (u *ReconciliationUseCase) process(ctx context.Context, task entities.ReconciliationTask) error {
	switch task.Kind {
	case entities.ReconciliationLedgerIncrement:
		p, err := u.repo.GetByID(ctx, task.PaymentID)
		if err != nil {
			return err
		}
		if p.ID == "" {
			return ErrPaymentNotFound
		}
		if p.Status == entities.PaymentStatusPending {
			p, _, err = markSucceeded(ctx, u.repo, p, task.ChargeID)
			if err != nil {
				return err
			}
		}
		if p.LedgerRecorded {
			return nil
		}
		_, err = u.recorder.AddDonation(ctx, p)
		return err
	case entities.ReconciliationLedgerDecrement:
		if _, err := u.ledger.DecrementRaised(ctx, task.CampaignID, task.Amount, task.DedupeKey); err != nil {
			return err
		}
		invalidateStats(ctx, u.cache, task.CampaignID)
		return nil
	case entities.ReconciliationRefundApply:
		return u.refunds.ApplyQueuedRefund(ctx, task)
	default:
		return fmt.Errorf("%w: %q", errUnknownTaskKind, task.Kind)
	}
}
