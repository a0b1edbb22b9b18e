package interfaces

import "context"

const (
	TopicDonationRecorded     = "donation.recorded"
	TopicDonationRefunded     = "donation.refunded"
	TopicReconciliationQueued = "donation.reconciliation.queued"
)

// IEventPublisher emits integration events for chat/notifications and reporting.
// Publishing is best effort: failures are logged by callers and never roll back ledger writes.
type IEventPublisher interface {
	Publish(ctx context.Context, topic, key string, payload any) error
}
