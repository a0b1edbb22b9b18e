package response

import (
	"time"

	"donation_platform/internal/domain/entities"
)

type ReconciliationTaskResponse struct {
	ID         string    `json:"id"`
	Kind       string    `json:"kind"`
	Status     string    `json:"status"`
	PaymentID  string    `json:"payment_id"`
	CampaignID string    `json:"campaign_id"`
	Amount     string    `json:"amount"`
	ChargeID   string    `json:"charge_id,omitempty"`
	RefundID   string    `json:"refund_id,omitempty"`
	Attempts   int       `json:"attempts"`
	LastError  string    `json:"last_error,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func FromReconciliationTasks(in []entities.ReconciliationTask) []ReconciliationTaskResponse {
	out := make([]ReconciliationTaskResponse, 0, len(in))
	for _, t := range in {
		out = append(out, ReconciliationTaskResponse{
			ID:         t.ID,
			Kind:       string(t.Kind),
			Status:     string(t.Status),
			PaymentID:  t.PaymentID,
			CampaignID: t.CampaignID,
			Amount:     formatMoney(t.Amount),
			ChargeID:   t.ChargeID,
			RefundID:   t.RefundID,
			Attempts:   t.Attempts,
			LastError:  t.LastError,
			CreatedAt:  t.CreatedAt,
			UpdatedAt:  t.UpdatedAt,
		})
	}
	return out
}
