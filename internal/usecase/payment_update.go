package usecase

import (
	"context"
	"errors"
	"time"

	"donation_platform/internal/domain/entities"
	"donation_platform/internal/usecase/interfaces"
)

// errNoChange tells updatePayment the current state already satisfies the mutation.
var errNoChange = errors.New("no change")

// updatePayment applies mutate with compare-and-set on Payment.Version, reloading and
// re-applying on conflicts. mutate sees the latest stored state on every attempt.
func updatePayment(
	ctx context.Context,
	repo interfaces.IPaymentRepository,
	current entities.Payment,
	mutate func(cur entities.Payment) (entities.Payment, error),
) (entities.Payment, bool, error) {
	for attempt := 0; attempt < maxCASAttempts; attempt++ {
		next, err := mutate(current)
		if errors.Is(err, errNoChange) {
			return current, false, nil
		}
		if err != nil {
			return current, false, err
		}
		next.UpdatedAt = time.Now().UTC()

		updated, err := repo.Update(ctx, next, current.Version)
		if err == nil {
			return updated, true, nil
		}
		if !errors.Is(err, interfaces.ErrPaymentVersionConflict) {
			return current, false, err
		}

		reloaded, err := repo.GetByID(ctx, current.ID)
		if err != nil {
			return current, false, err
		}
		if reloaded.ID == "" {
			return current, false, ErrPaymentNotFound
		}
		current = reloaded
	}
	return current, false, ErrConcurrentModification
}

// markSucceeded moves a pending payment to succeeded with the gateway charge id.
// changed is false when another caller already did it.
func markSucceeded(ctx context.Context, repo interfaces.IPaymentRepository, p entities.Payment, chargeID string) (entities.Payment, bool, error) {
	return updatePayment(ctx, repo, p, func(cur entities.Payment) (entities.Payment, error) {
		if cur.Status == entities.PaymentStatusSucceeded || cur.Status == entities.PaymentStatusRefunded {
			return cur, errNoChange
		}
		if !cur.Status.CanTransitionTo(entities.PaymentStatusSucceeded) {
			return cur, ErrInvalidTransition
		}
		now := time.Now().UTC()
		cur.Status = entities.PaymentStatusSucceeded
		cur.ChargeID = chargeID
		cur.SucceededAt = &now
		return cur, nil
	})
}

func markFailed(ctx context.Context, repo interfaces.IPaymentRepository, p entities.Payment) (entities.Payment, error) {
	failed, _, err := updatePayment(ctx, repo, p, func(cur entities.Payment) (entities.Payment, error) {
		if cur.Status == entities.PaymentStatusFailed {
			return cur, errNoChange
		}
		if !cur.Status.CanTransitionTo(entities.PaymentStatusFailed) {
			return cur, ErrInvalidTransition
		}
		cur.Status = entities.PaymentStatusFailed
		return cur, nil
	})
	return failed, err
}

func markLedgerRecorded(ctx context.Context, repo interfaces.IPaymentRepository, p entities.Payment) (entities.Payment, error) {
	recorded, _, err := updatePayment(ctx, repo, p, func(cur entities.Payment) (entities.Payment, error) {
		if cur.LedgerRecorded {
			return cur, errNoChange
		}
		cur.LedgerRecorded = true
		return cur, nil
	})
	return recorded, err
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
