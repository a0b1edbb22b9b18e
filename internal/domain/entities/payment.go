package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus represents the lifecycle of a donation attempt.
//
//	pending -> succeeded | failed | canceled
//	succeeded -> succeeded (partial refund) | refunded
//
// A partially refunded payment stays succeeded with 0 < RefundedAmount < Amount.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusSucceeded PaymentStatus = "succeeded"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusCanceled  PaymentStatus = "canceled"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentStatusPending:   {PaymentStatusSucceeded, PaymentStatusFailed, PaymentStatusCanceled},
	PaymentStatusSucceeded: {PaymentStatusSucceeded, PaymentStatusRefunded},
}

func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	for _, allowed := range paymentTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s PaymentStatus) IsTerminal() bool {
	return s == PaymentStatusFailed || s == PaymentStatusCanceled || s == PaymentStatusRefunded
}

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusSucceeded, PaymentStatusFailed, PaymentStatusCanceled, PaymentStatusRefunded:
		return true
	}
	return false
}

// RefundRecord is one gateway refund applied to a payment.
// IdempotencyKey identifies the refund request that produced it.
type RefundRecord struct {
	RefundID       string          `json:"refund_id"`
	IdempotencyKey string          `json:"idempotency_key,omitempty"`
	Amount         decimal.Decimal `json:"amount"`
	Reason         string          `json:"reason"`
	RequestedBy    string          `json:"requested_by"`
	CreatedAt      time.Time       `json:"created_at"`
}

// Payment is one donation attempt and the audit trail for it. Payments are never deleted.
//
// Storage model (DynamoDB):
//   - PK: id
//   - uniqueness marker item: id = "intent#<intent_id>"
//   - GSI campaign_id-index, donor_id-index
type Payment struct {
	ID         string `json:"id"`
	CampaignID string `json:"campaign_id"`
	DonorID    string `json:"donor_id"`
	IntentID   string `json:"intent_id"`
	ChargeID   string `json:"charge_id,omitempty"`
	Gateway    string `json:"gateway"`

	Amount         decimal.Decimal `json:"amount"`
	Currency       string          `json:"currency"`
	RefundedAmount decimal.Decimal `json:"refunded_amount"`
	Status         PaymentStatus   `json:"status"`

	// LedgerRecorded is set once the campaign aggregate reflects this payment.
	// Refunds are only accepted after that point.
	LedgerRecorded bool           `json:"ledger_recorded"`
	Refunds        []RefundRecord `json:"refunds,omitempty"`

	DonorName  string `json:"donor_name"`
	DonorEmail string `json:"donor_email"`
	Anonymous  bool   `json:"anonymous"`
	Message    string `json:"message,omitempty"`

	Version     int64      `json:"version"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	SucceededAt *time.Time `json:"succeeded_at,omitempty"`
}

func (p Payment) NetAmount() decimal.Decimal {
	return p.Amount.Sub(p.RefundedAmount)
}

// RefundableAmount is what is left to refund.
func (p Payment) RefundableAmount() decimal.Decimal {
	rest := p.Amount.Sub(p.RefundedAmount)
	if rest.IsNegative() {
		return decimal.Zero
	}
	return rest
}

func (p Payment) IsPartiallyRefunded() bool {
	return p.Status == PaymentStatusSucceeded && p.RefundedAmount.IsPositive() && p.RefundedAmount.LessThan(p.Amount)
}

// CountsTowardsLedger reports whether the payment contributes to aggregates.
func (p Payment) CountsTowardsLedger() bool {
	return p.Status == PaymentStatusSucceeded || p.Status == PaymentStatusRefunded
}

// ApplyRefund returns a copy with the refund folded in. It does not check the bound;
// callers validate against RefundableAmount first.
func (p Payment) ApplyRefund(rec RefundRecord) Payment {
	next := p
	next.RefundedAmount = p.RefundedAmount.Add(rec.Amount)
	next.Refunds = append(append([]RefundRecord(nil), p.Refunds...), rec)
	if next.RefundedAmount.GreaterThanOrEqual(p.Amount) {
		next.Status = PaymentStatusRefunded
	}
	return next
}

// RefundByKey finds the refund created by the request carrying key.
func (p Payment) RefundByKey(key string) (RefundRecord, bool) {
	if key == "" {
		return RefundRecord{}, false
	}
	for _, r := range p.Refunds {
		if r.IdempotencyKey == key {
			return r, true
		}
	}
	return RefundRecord{}, false
}

func (p Payment) HasRefund(refundID string) bool {
	for _, r := range p.Refunds {
		if r.RefundID == refundID {
			return true
		}
	}
	return false
}
