package response

import (
	"time"

	"donation_platform/internal/domain/entities"
	"donation_platform/internal/usecase"
)

type RefundRecordResponse struct {
	RefundID    string    `json:"refund_id"`
	Amount      string    `json:"amount"`
	Reason      string    `json:"reason,omitempty"`
	RequestedBy string    `json:"requested_by"`
	CreatedAt   time.Time `json:"created_at"`
}

type PaymentResponse struct {
	ID             string                 `json:"id"`
	CampaignID     string                 `json:"campaign_id"`
	DonorID        string                 `json:"donor_id,omitempty"`
	IntentID       string                 `json:"intent_id"`
	ChargeID       string                 `json:"charge_id,omitempty"`
	Gateway        string                 `json:"gateway"`
	Amount         string                 `json:"amount"`
	RefundedAmount string                 `json:"refunded_amount"`
	NetAmount      string                 `json:"net_amount"`
	Currency       string                 `json:"currency"`
	Status         string                 `json:"status"`
	LedgerRecorded bool                   `json:"ledger_recorded"`
	Anonymous      bool                   `json:"anonymous"`
	DonorName      string                 `json:"donor_name,omitempty"`
	Message        string                 `json:"message,omitempty"`
	Refunds        []RefundRecordResponse `json:"refunds"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
	SucceededAt    *time.Time             `json:"succeeded_at,omitempty"`
}

func FromRefundRecord(r entities.RefundRecord) RefundRecordResponse {
	return RefundRecordResponse{
		RefundID:    r.RefundID,
		Amount:      formatMoney(r.Amount),
		Reason:      r.Reason,
		RequestedBy: r.RequestedBy,
		CreatedAt:   r.CreatedAt,
	}
}

// FromPayment renders p for the caller identified by viewerID. The donor e-mail is
// never exposed; for anonymous gifts the donor id and name are shown to the donor only.
func FromPayment(p entities.Payment, viewerID string) PaymentResponse {
	refunds := make([]RefundRecordResponse, 0, len(p.Refunds))
	for _, r := range p.Refunds {
		refunds = append(refunds, FromRefundRecord(r))
	}
	donorID, name := p.DonorID, p.DonorName
	if p.Anonymous && (viewerID == "" || viewerID != p.DonorID) {
		donorID, name = "", ""
	}
	return PaymentResponse{
		ID:             p.ID,
		CampaignID:     p.CampaignID,
		DonorID:        donorID,
		IntentID:       p.IntentID,
		ChargeID:       p.ChargeID,
		Gateway:        p.Gateway,
		Amount:         formatMoney(p.Amount),
		RefundedAmount: formatMoney(p.RefundedAmount),
		NetAmount:      formatMoney(p.NetAmount()),
		Currency:       p.Currency,
		Status:         string(p.Status),
		LedgerRecorded: p.LedgerRecorded,
		Anonymous:      p.Anonymous,
		DonorName:      name,
		Message:        p.Message,
		Refunds:        refunds,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
		SucceededAt:    p.SucceededAt,
	}
}

func FromPayments(ps []entities.Payment, viewerID string) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, FromPayment(p, viewerID))
	}
	return out
}

type IntentResponse struct {
	PaymentID   string          `json:"payment_id"`
	IntentID    string          `json:"intent_id"`
	ClientToken string          `json:"client_token,omitempty"`
	Payment     PaymentResponse `json:"payment"`
}

func FromIntentResult(r usecase.CreateIntentResult) IntentResponse {
	return IntentResponse{
		PaymentID:   r.Payment.ID,
		IntentID:    r.IntentID,
		ClientToken: r.ClientToken,
		Payment:     FromPayment(r.Payment, r.Payment.DonorID),
	}
}

type ConfirmResponse struct {
	Outcome           string          `json:"outcome"`
	ContinuationToken string          `json:"continuation_token,omitempty"`
	AlreadyConfirmed  bool            `json:"already_confirmed"`
	LedgerPending     bool            `json:"ledger_pending"`
	Payment           PaymentResponse `json:"payment"`
}

func FromConfirmResult(r usecase.ConfirmResult, viewerID string) ConfirmResponse {
	return ConfirmResponse{
		Outcome:           string(r.Outcome),
		ContinuationToken: r.ContinuationToken,
		AlreadyConfirmed:  r.AlreadyConfirmed,
		LedgerPending:     r.LedgerPending,
		Payment:           FromPayment(r.Payment, viewerID),
	}
}

type RefundResultResponse struct {
	Refund                RefundRecordResponse `json:"refund"`
	ReconciliationPending bool                 `json:"reconciliation_pending"`
	Payment               PaymentResponse      `json:"payment"`
}

func FromRefundResult(r usecase.RefundResult, viewerID string) RefundResultResponse {
	return RefundResultResponse{
		Refund:                FromRefundRecord(r.Refund),
		ReconciliationPending: r.ReconciliationPending,
		Payment:               FromPayment(r.Payment, viewerID),
	}
}
