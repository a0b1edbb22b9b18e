package memory

import (
	"context"
	"sync"
	"time"

	"donation_platform/internal/domain/entities"
	"donation_platform/internal/usecase/interfaces"

	"github.com/shopspring/decimal"
)

type ledgerRecord struct {
	campaign    entities.Campaign
	donationIDs map[string]struct{}
	decrements  map[string]struct{}
}

// CampaignLedger applies increments and decrements under one mutex, which plays the
// role of the atomic conditional update a database gives the other backends.
type CampaignLedger struct {
	mu        sync.Mutex
	campaigns map[string]*ledgerRecord
}

var _ interfaces.ICampaignLedger = (*CampaignLedger)(nil)

func NewCampaignLedger() *CampaignLedger {
	return &CampaignLedger{campaigns: make(map[string]*ledgerRecord)}
}

func (l *CampaignLedger) Create(_ context.Context, c entities.Campaign) (entities.Campaign, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.campaigns[c.ID]; ok {
		return entities.Campaign{}, interfaces.ErrCampaignAlreadyExists
	}
	rec := &ledgerRecord{
		campaign:    cloneCampaign(c),
		donationIDs: make(map[string]struct{}),
		decrements:  make(map[string]struct{}),
	}
	for _, d := range c.Donations {
		if d.PaymentID != "" {
			rec.donationIDs[d.PaymentID] = struct{}{}
		}
	}
	l.campaigns[c.ID] = rec
	return cloneCampaign(rec.campaign), nil
}

func (l *CampaignLedger) FindDonatable(_ context.Context, campaignID string) (entities.Campaign, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	rec, ok := l.campaigns[campaignID]
	if !ok {
		return entities.Campaign{}, nil
	}
	return cloneCampaign(rec.campaign), nil
}

func (l *CampaignLedger) UpdateStatus(_ context.Context, campaignID string, status entities.CampaignStatus) (entities.Campaign, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	rec, ok := l.campaigns[campaignID]
	if !ok {
		return entities.Campaign{}, nil
	}
	rec.campaign.Status = status
	rec.campaign.UpdatedAt = time.Now().UTC()
	return cloneCampaign(rec.campaign), nil
}

func (l *CampaignLedger) IncrementRaised(_ context.Context, campaignID string, amount decimal.Decimal, entry entities.DonationEntry) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	rec, ok := l.campaigns[campaignID]
	if !ok {
		return false, interfaces.ErrLedgerCampaignNotFound
	}
	if _, seen := rec.donationIDs[entry.PaymentID]; seen {
		return false, nil
	}
	rec.donationIDs[entry.PaymentID] = struct{}{}
	rec.campaign.RaisedAmount = rec.campaign.RaisedAmount.Add(amount)
	rec.campaign.Donations = append(rec.campaign.Donations, entry)
	rec.campaign.UpdatedAt = time.Now().UTC()
	return true, nil
}

func (l *CampaignLedger) DecrementRaised(_ context.Context, campaignID string, amount decimal.Decimal, dedupeKey string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	rec, ok := l.campaigns[campaignID]
	if !ok {
		return false, interfaces.ErrLedgerCampaignNotFound
	}
	if _, seen := rec.decrements[dedupeKey]; seen {
		return false, nil
	}
	rec.decrements[dedupeKey] = struct{}{}
	next := rec.campaign.RaisedAmount.Sub(amount)
	if next.IsNegative() {
		next = decimal.Zero
	}
	rec.campaign.RaisedAmount = next
	rec.campaign.UpdatedAt = time.Now().UTC()
	return true, nil
}

func (l *CampaignLedger) ListDonationHistory(_ context.Context, campaignID string) ([]entities.DonationEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	rec, ok := l.campaigns[campaignID]
	if !ok {
		return nil, nil
	}
	return append([]entities.DonationEntry(nil), rec.campaign.Donations...), nil
}

func cloneCampaign(c entities.Campaign) entities.Campaign {
	if c.Donations != nil {
		c.Donations = append([]entities.DonationEntry(nil), c.Donations...)
	}
	return c
}
