package interfaces

import (
	"context"

	"donation_platform/internal/domain/entities"
)

// IReconciliationQueue stores local writes that must be retried because the gateway
// already moved money.
type IReconciliationQueue interface {
	Enqueue(ctx context.Context, task entities.ReconciliationTask) (entities.ReconciliationTask, error)
	ListPending(ctx context.Context, limit int) ([]entities.ReconciliationTask, error)
	MarkResolved(ctx context.Context, id string) error
	MarkAttemptFailed(ctx context.Context, id string, lastErr string) error
	// MarkManualReview takes a task out of the pending set after a failure no replay can fix.
	MarkManualReview(ctx context.Context, id string, lastErr string) error
}
