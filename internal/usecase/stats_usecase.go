package usecase

import (
	"context"
	"log"
	"sort"
	"strconv"
	"strings"

	"donation_platform/internal/domain/entities"
	"donation_platform/internal/usecase/interfaces"

	"github.com/shopspring/decimal"
)

const anonymousDisplayName = "Anonymous"

// IStatsUseCase answers read-only aggregate questions. Pending, failed and canceled
// payments never appear in any figure.
type IStatsUseCase interface {
	CampaignStats(ctx context.Context, campaignID string) (entities.CampaignStats, error)
	DonorListing(ctx context.Context, campaignID string) ([]entities.DonorSummary, error)
	DonorTotals(ctx context.Context, donorID string) (entities.DonorTotals, error)
}

type StatsUseCase struct {
	repo   interfaces.IPaymentRepository
	ledger interfaces.ICampaignLedger
	cache  interfaces.IStatsCache
}

var _ IStatsUseCase = (*StatsUseCase)(nil)

func NewStatsUseCase(repo interfaces.IPaymentRepository, ledger interfaces.ICampaignLedger, cache interfaces.IStatsCache) *StatsUseCase {
	return &StatsUseCase{repo: repo, ledger: ledger, cache: cache}
}

// donationView is one donation as seen by the aggregates, coming either from the
// payment ledger or from a legacy history entry.
type donationView struct {
	paymentID string
	donorID   string
	donorName string
	anonymous bool
	gross     decimal.Decimal
	refunded  decimal.Decimal
	legacy    bool
}

func (u *StatsUseCase) CampaignStats(ctx context.Context, campaignID string) (entities.CampaignStats, error) {
	campaignID = strings.TrimSpace(campaignID)
	if campaignID == "" {
		return entities.CampaignStats{}, ErrInvalidCampaignID
	}

	// The generation is read before computing: a ledger write that lands meanwhile bumps
	// it, and the stats stored below under the old generation are never served.
	cached := false
	var generation int64
	if u.cache != nil {
		gen, err := u.cache.StatsGeneration(ctx, campaignID)
		if err != nil {
			log.Printf("[donation][stats] cache generation read failed campaign_id=%s err=%v", campaignID, err)
		} else {
			cached, generation = true, gen
			hit, found, err := u.cache.GetCampaignStats(ctx, campaignID, generation)
			if err != nil {
				log.Printf("[donation][stats] cache read failed campaign_id=%s err=%v", campaignID, err)
			} else if found {
				return hit, nil
			}
		}
	}

	campaign, views, err := u.load(ctx, campaignID)
	if err != nil {
		return entities.CampaignStats{}, err
	}

	stats := entities.CampaignStats{
		CampaignID:      campaignID,
		Currency:        campaign.Currency,
		TotalGross:      decimal.Zero,
		AverageDonation: decimal.Zero,
		TotalRefunded:   decimal.Zero,
		GoalAmount:      campaign.GoalAmount,
		RaisedAmount:    campaign.RaisedAmount,
		ProgressPercent: decimal.Zero,
	}
	for _, v := range views {
		stats.TotalGross = stats.TotalGross.Add(v.gross)
		stats.TotalRefunded = stats.TotalRefunded.Add(v.refunded)
		stats.TotalDonations++
		if v.legacy {
			stats.LegacyDonations++
		}
	}
	stats.NetAmount = stats.TotalGross.Sub(stats.TotalRefunded)
	if stats.TotalDonations > 0 {
		stats.AverageDonation = stats.TotalGross.DivRound(decimal.NewFromInt(int64(stats.TotalDonations)), moneyDecimalPlaces)
	}
	if campaign.GoalAmount.IsPositive() {
		stats.ProgressPercent = campaign.RaisedAmount.Mul(decimal.NewFromInt(100)).DivRound(campaign.GoalAmount, moneyDecimalPlaces)
	}

	if cached {
		if err := u.cache.SetCampaignStats(ctx, stats, generation); err != nil {
			log.Printf("[donation][stats] cache write failed campaign_id=%s err=%v", campaignID, err)
		}
	}
	return stats, nil
}

// DonorListing groups donations by donor. Every anonymous donation is its own bucket so
// repeated anonymous gifts cannot be correlated back to one person.
func (u *StatsUseCase) DonorListing(ctx context.Context, campaignID string) ([]entities.DonorSummary, error) {
	campaignID = strings.TrimSpace(campaignID)
	if campaignID == "" {
		return nil, ErrInvalidCampaignID
	}

	_, views, err := u.load(ctx, campaignID)
	if err != nil {
		return nil, err
	}

	buckets := make(map[string]*entities.DonorSummary)
	order := make([]string, 0, len(views))
	for i, v := range views {
		var key string
		summary := entities.DonorSummary{TotalAmount: decimal.Zero}
		switch {
		case v.anonymous:
			key = "anonymous:" + strconv.Itoa(i)
			summary.DisplayName = anonymousDisplayName
			summary.Anonymous = true
		case v.donorID != "":
			key = "donor:" + v.donorID
			summary.DonorID = v.donorID
			summary.DisplayName = v.donorName
		default:
			key = "name:" + strings.ToLower(strings.TrimSpace(v.donorName))
			summary.DisplayName = v.donorName
		}

		b, ok := buckets[key]
		if !ok {
			s := summary
			b = &s
			buckets[key] = b
			order = append(order, key)
		}
		if b.DisplayName == "" && !b.Anonymous {
			b.DisplayName = v.donorName
		}
		b.TotalAmount = b.TotalAmount.Add(v.gross.Sub(v.refunded))
		b.DonationCount++
	}

	out := make([]entities.DonorSummary, 0, len(order))
	for _, key := range order {
		out = append(out, *buckets[key])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalAmount.GreaterThan(out[j].TotalAmount)
	})
	return out, nil
}

func (u *StatsUseCase) DonorTotals(ctx context.Context, donorID string) (entities.DonorTotals, error) {
	donorID = strings.TrimSpace(donorID)
	if donorID == "" {
		return entities.DonorTotals{}, ErrInvalidDonorID
	}

	payments, err := u.repo.ListByDonorID(ctx, donorID)
	if err != nil {
		return entities.DonorTotals{}, err
	}

	totals := entities.DonorTotals{
		DonorID:       donorID,
		TotalGross:    decimal.Zero,
		TotalRefunded: decimal.Zero,
		NetAmount:     decimal.Zero,
	}
	campaigns := make(map[string]struct{})
	for _, p := range payments {
		if !p.CountsTowardsLedger() {
			continue
		}
		totals.TotalGross = totals.TotalGross.Add(p.Amount)
		totals.TotalRefunded = totals.TotalRefunded.Add(p.RefundedAmount)
		totals.DonationCount++
		campaigns[p.CampaignID] = struct{}{}
	}
	totals.NetAmount = totals.TotalGross.Sub(totals.TotalRefunded)
	totals.Campaigns = len(campaigns)
	return totals, nil
}

// load merges succeeded payments with legacy history entries. A history entry whose
// payment id is known to the payment ledger is the same donation and is skipped.
func (u *StatsUseCase) load(ctx context.Context, campaignID string) (entities.Campaign, []donationView, error) {
	campaign, err := u.ledger.FindDonatable(ctx, campaignID)
	if err != nil {
		return entities.Campaign{}, nil, err
	}
	if campaign.ID == "" {
		return entities.Campaign{}, nil, ErrCampaignNotFound
	}

	payments, err := u.repo.ListByCampaignID(ctx, campaignID)
	if err != nil {
		return entities.Campaign{}, nil, err
	}
	history, err := u.ledger.ListDonationHistory(ctx, campaignID)
	if err != nil {
		return entities.Campaign{}, nil, err
	}

	known := make(map[string]struct{}, len(payments))
	views := make([]donationView, 0, len(payments)+len(history))
	for _, p := range payments {
		known[p.ID] = struct{}{}
		if p.Status != entities.PaymentStatusSucceeded {
			continue
		}
		views = append(views, donationView{
			paymentID: p.ID,
			donorID:   p.DonorID,
			donorName: p.DonorName,
			anonymous: p.Anonymous,
			gross:     p.Amount,
			refunded:  p.RefundedAmount,
		})
	}

	seenLegacy := make(map[string]struct{})
	for _, e := range history {
		if e.PaymentID != "" {
			if _, ok := known[e.PaymentID]; ok {
				continue
			}
			if _, ok := seenLegacy[e.PaymentID]; ok {
				continue
			}
			seenLegacy[e.PaymentID] = struct{}{}
		}
		views = append(views, donationView{
			paymentID: e.PaymentID,
			donorID:   e.DonorID,
			donorName: e.DonorName,
			anonymous: e.Anonymous,
			gross:     e.Amount,
			refunded:  decimal.Zero,
			legacy:    true,
		})
	}
	return campaign, views, nil
}
