package interfaces

import (
	"context"

	"donation_platform/internal/domain/entities"
	"github.com/shopspring/decimal"
)

// ICampaignLedger owns campaign.raised_amount.
//
// IncrementRaised and DecrementRaised are single atomic storage operations, never a
// read-modify-write in process memory. Both are idempotent per dedupe key and report
// applied=false when the key was already seen. DecrementRaised floors the result at zero.
// Lookups return a zero Campaign (empty ID) when nothing matches.
type ICampaignLedger interface {
	Create(ctx context.Context, c entities.Campaign) (entities.Campaign, error)
	FindDonatable(ctx context.Context, campaignID string) (entities.Campaign, error)
	UpdateStatus(ctx context.Context, campaignID string, status entities.CampaignStatus) (entities.Campaign, error)
	IncrementRaised(ctx context.Context, campaignID string, amount decimal.Decimal, entry entities.DonationEntry) (bool, error)
	DecrementRaised(ctx context.Context, campaignID string, amount decimal.Decimal, dedupeKey string) (bool, error)
	ListDonationHistory(ctx context.Context, campaignID string) ([]entities.DonationEntry, error)
}
