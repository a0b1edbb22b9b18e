package memory

import (
	"context"
	"sync"

	"donation_platform/internal/domain/entities"
	"donation_platform/internal/usecase/interfaces"
)

// PaymentRepository keeps payments in process memory. Used for local runs and tests.
type PaymentRepository struct {
	mu       sync.RWMutex
	byID     map[string]entities.Payment
	byIntent map[string]string
}

var _ interfaces.IPaymentRepository = (*PaymentRepository)(nil)

func NewPaymentRepository() *PaymentRepository {
	return &PaymentRepository{
		byID:     make(map[string]entities.Payment),
		byIntent: make(map[string]string),
	}
}

func (r *PaymentRepository) Create(_ context.Context, p entities.Payment) (entities.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byIntent[p.IntentID]; ok {
		return entities.Payment{}, interfaces.ErrDuplicateIntent
	}
	if p.Version == 0 {
		p.Version = 1
	}
	stored := clonePayment(p)
	r.byID[p.ID] = stored
	r.byIntent[p.IntentID] = p.ID
	return clonePayment(stored), nil
}

func (r *PaymentRepository) GetByID(_ context.Context, id string) (entities.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return clonePayment(r.byID[id]), nil
}

func (r *PaymentRepository) GetByIntentID(_ context.Context, intentID string) (entities.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byIntent[intentID]
	if !ok {
		return entities.Payment{}, nil
	}
	return clonePayment(r.byID[id]), nil
}

func (r *PaymentRepository) Update(_ context.Context, p entities.Payment, expectedVersion int64) (entities.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.byID[p.ID]
	if !ok || current.Version != expectedVersion {
		return entities.Payment{}, interfaces.ErrPaymentVersionConflict
	}
	p.Version = expectedVersion + 1
	p.IntentID = current.IntentID
	p.CreatedAt = current.CreatedAt
	stored := clonePayment(p)
	r.byID[p.ID] = stored
	return clonePayment(stored), nil
}

func (r *PaymentRepository) ListByCampaignID(_ context.Context, campaignID string) ([]entities.Payment, error) {
	return r.filter(func(p entities.Payment) bool { return p.CampaignID == campaignID }), nil
}

func (r *PaymentRepository) ListByDonorID(_ context.Context, donorID string) ([]entities.Payment, error) {
	return r.filter(func(p entities.Payment) bool { return p.DonorID == donorID }), nil
}

func (r *PaymentRepository) filter(keep func(entities.Payment) bool) []entities.Payment {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entities.Payment, 0)
	for _, p := range r.byID {
		if keep(p) {
			out = append(out, clonePayment(p))
		}
	}
	return out
}

func clonePayment(p entities.Payment) entities.Payment {
	if p.Refunds != nil {
		p.Refunds = append([]entities.RefundRecord(nil), p.Refunds...)
	}
	if p.SucceededAt != nil {
		t := *p.SucceededAt
		p.SucceededAt = &t
	}
	return p
}
