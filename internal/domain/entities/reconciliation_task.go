package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReconciliationKind names the local write that failed after the gateway already moved money.
type ReconciliationKind string

const (
	ReconciliationLedgerIncrement ReconciliationKind = "ledger_increment"
	ReconciliationLedgerDecrement ReconciliationKind = "ledger_decrement"
	ReconciliationRefundApply     ReconciliationKind = "refund_apply"
)

type ReconciliationStatus string

const (
	ReconciliationStatusPending      ReconciliationStatus = "pending"
	ReconciliationStatusResolved     ReconciliationStatus = "resolved"
	// ReconciliationStatusManualReview is parked: the drain no longer picks it up.
	ReconciliationStatusManualReview ReconciliationStatus = "manual_review"
)

// ReconciliationTask is an operator-visible retry queue item.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI status-index: status
type ReconciliationTask struct {
	ID             string               `json:"id"`
	Kind           ReconciliationKind   `json:"kind"`
	Status         ReconciliationStatus `json:"status"`
	PaymentID      string               `json:"payment_id"`
	CampaignID     string               `json:"campaign_id"`
	DedupeKey      string               `json:"dedupe_key"`
	Amount         decimal.Decimal      `json:"amount"`
	ChargeID       string               `json:"charge_id,omitempty"`
	RefundID       string               `json:"refund_id,omitempty"`
	IdempotencyKey string               `json:"idempotency_key,omitempty"`
	Reason         string               `json:"reason,omitempty"`
	RequestedBy    string               `json:"requested_by,omitempty"`
	Attempts       int                  `json:"attempts"`
	LastError      string               `json:"last_error,omitempty"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
}
