package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"donation_platform/internal/domain/entities"
	"donation_platform/internal/usecase/interfaces"
)

type ReconciliationQueue struct {
	mu    sync.Mutex
	tasks map[string]entities.ReconciliationTask
}

var _ interfaces.IReconciliationQueue = (*ReconciliationQueue)(nil)

func NewReconciliationQueue() *ReconciliationQueue {
	return &ReconciliationQueue{tasks: make(map[string]entities.ReconciliationTask)}
}

func (q *ReconciliationQueue) Enqueue(_ context.Context, task entities.ReconciliationTask) (entities.ReconciliationTask, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.tasks[task.ID] = task
	return task, nil
}

// ListPending returns the oldest pending tasks first.
func (q *ReconciliationQueue) ListPending(_ context.Context, limit int) ([]entities.ReconciliationTask, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]entities.ReconciliationTask, 0)
	for _, t := range q.tasks {
		if t.Status == entities.ReconciliationStatusPending {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (q *ReconciliationQueue) MarkResolved(_ context.Context, id string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	t, ok := q.tasks[id]
	if !ok {
		return nil
	}
	t.Status = entities.ReconciliationStatusResolved
	t.UpdatedAt = time.Now().UTC()
	q.tasks[id] = t
	return nil
}

func (q *ReconciliationQueue) MarkManualReview(_ context.Context, id string, lastErr string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	t, ok := q.tasks[id]
	if !ok {
		return nil
	}
	t.Attempts++
	t.Status = entities.ReconciliationStatusManualReview
	t.LastError = lastErr
	t.UpdatedAt = time.Now().UTC()
	q.tasks[id] = t
	return nil
}

// Get returns the stored task, zero value when missing.
func (q *ReconciliationQueue) Get(id string) entities.ReconciliationTask {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.tasks[id]
}

func (q *ReconciliationQueue) MarkAttemptFailed(_ context.Context, id string, lastErr string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	t, ok := q.tasks[id]
	if !ok {
		return nil
	}
	t.Attempts++
	t.LastError = lastErr
	t.UpdatedAt = time.Now().UTC()
	q.tasks[id] = t
	return nil
}
