package interfaces

import (
	"context"

	"donation_platform/internal/domain/entities"
)

// IStatsCache caches campaign stats per generation. InvalidateCampaign moves the campaign
// to a new generation, so stats computed before it and stored afterwards are never read.
// A miss returns found=false and nil error.
type IStatsCache interface {
	StatsGeneration(ctx context.Context, campaignID string) (int64, error)
	GetCampaignStats(ctx context.Context, campaignID string, generation int64) (entities.CampaignStats, bool, error)
	SetCampaignStats(ctx context.Context, stats entities.CampaignStats, generation int64) error
	InvalidateCampaign(ctx context.Context, campaignID string) error
}
