package interfaces

import (
	"context"

	"donation_platform/internal/domain/entities"
)

// IPaymentRepository persists Payment records.
//
// Lookups return a zero Payment (empty ID) and nil error when nothing matches.
// Update is a compare-and-set on Version: it returns ErrPaymentVersionConflict when
// the stored version differs from expectedVersion.
type IPaymentRepository interface {
	Create(ctx context.Context, p entities.Payment) (entities.Payment, error)
	GetByID(ctx context.Context, id string) (entities.Payment, error)
	GetByIntentID(ctx context.Context, intentID string) (entities.Payment, error)
	Update(ctx context.Context, p entities.Payment, expectedVersion int64) (entities.Payment, error)
	ListByCampaignID(ctx context.Context, campaignID string) ([]entities.Payment, error)
	ListByDonorID(ctx context.Context, donorID string) ([]entities.Payment, error)
}
