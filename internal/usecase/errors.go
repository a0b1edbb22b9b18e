package usecase

import (
	"errors"
	"fmt"
)

// Error categories. Every error returned by this package matches exactly one of
// them through errors.Is.
var (
	ErrValidation     = errors.New("validation error")
	ErrNotFound       = errors.New("not found")
	ErrAuthorization  = errors.New("authorization error")
	ErrGateway        = errors.New("payment gateway error")
	ErrReconciliation = errors.New("reconciliation error")
	ErrConflict       = errors.New("conflict")
)

var (
	ErrInvalidAmount         = fmt.Errorf("%w: invalid amount", ErrValidation)
	ErrAmountBelowMinimum    = fmt.Errorf("%w: amount below platform minimum", ErrValidation)
	ErrAmountAboveMaximum    = fmt.Errorf("%w: amount above platform maximum", ErrValidation)
	ErrCurrencyMismatch      = fmt.Errorf("%w: currency does not match campaign currency", ErrValidation)
	ErrMessageTooLong        = fmt.Errorf("%w: message longer than 500 characters", ErrValidation)
	ErrInvalidCampaignID     = fmt.Errorf("%w: invalid campaign_id", ErrValidation)
	ErrInvalidPaymentID      = fmt.Errorf("%w: invalid payment_id", ErrValidation)
	ErrInvalidIntentID       = fmt.Errorf("%w: invalid intent_id", ErrValidation)
	ErrInvalidDonorID        = fmt.Errorf("%w: invalid donor_id", ErrValidation)
	ErrCampaignNotDonatable  = fmt.Errorf("%w: campaign does not accept donations", ErrValidation)
	ErrInvalidTransition     = fmt.Errorf("%w: invalid payment status transition", ErrValidation)
	ErrRefundNotAllowed      = fmt.Errorf("%w: only succeeded payments can be refunded", ErrValidation)
	ErrDonationNotRecorded   = fmt.Errorf("%w: donation not yet recorded in the campaign ledger", ErrValidation)
	ErrInvalidRefundAmount   = fmt.Errorf("%w: refund amount must be positive", ErrValidation)
	ErrOverRefund            = fmt.Errorf("%w: refund exceeds remaining amount", ErrValidation)
	ErrReasonTooLong         = fmt.Errorf("%w: reason longer than 500 characters", ErrValidation)
	ErrInvalidCampaignInput  = fmt.Errorf("%w: invalid campaign input", ErrValidation)
	ErrInvalidIdempotencyKey = fmt.Errorf("%w: idempotency key longer than 200 characters", ErrValidation)

	ErrPaymentNotFound  = fmt.Errorf("%w: payment", ErrNotFound)
	ErrCampaignNotFound = fmt.Errorf("%w: campaign", ErrNotFound)

	ErrNotPaymentDonor = fmt.Errorf("%w: payment belongs to another donor", ErrAuthorization)
	ErrRefundForbidden = fmt.Errorf("%w: only admins or the campaign owner can refund", ErrAuthorization)

	ErrGatewayNotConfigured = fmt.Errorf("%w: not configured", ErrGateway)

	ErrCampaignAlreadyExists  = fmt.Errorf("%w: campaign already exists", ErrConflict)
	ErrConcurrentModification = fmt.Errorf("%w: payment modified concurrently", ErrConflict)
	ErrIdempotencyKeyReused   = fmt.Errorf("%w: idempotency key already used for a different refund", ErrConflict)
)

// GatewayError wraps a failure reported by the external processor.
type GatewayError struct {
	Op  string
	Err error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("payment gateway %s failed: %v", e.Op, e.Err)
}

func (e *GatewayError) Unwrap() error { return e.Err }

func (e *GatewayError) Is(target error) bool { return target == ErrGateway }

// ReconciliationError means a local write failed after the gateway had already
// succeeded. It is never shown to a donor as a failed donation.
type ReconciliationError struct {
	Op        string
	PaymentID string
	Err       error
}

func (e *ReconciliationError) Error() string {
	return fmt.Sprintf("reconciliation %s failed payment_id=%s: %v", e.Op, e.PaymentID, e.Err)
}

func (e *ReconciliationError) Unwrap() error { return e.Err }

func (e *ReconciliationError) Is(target error) bool { return target == ErrReconciliation }
