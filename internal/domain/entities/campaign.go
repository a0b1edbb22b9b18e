package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

type CampaignType string

const (
	CampaignTypeCrowdfunding CampaignType = "crowdfunding"
	CampaignTypeVolunteering CampaignType = "volunteering"
	CampaignTypeMarketplace  CampaignType = "marketplace"
)

type CampaignStatus string

const (
	CampaignStatusDraft     CampaignStatus = "draft"
	CampaignStatusActive    CampaignStatus = "active"
	CampaignStatusPaused    CampaignStatus = "paused"
	CampaignStatusCompleted CampaignStatus = "completed"
	CampaignStatusCanceled  CampaignStatus = "canceled"
)

// DonationEntry is one immutable line of a campaign's donation history.
// PaymentID doubles as the dedupe key of the ledger increment; legacy
// entries written before the payment ledger existed may carry an empty or unknown id.
type DonationEntry struct {
	PaymentID string          `json:"payment_id"`
	DonorID   string          `json:"donor_id"`
	DonorName string          `json:"donor_name"`
	Anonymous bool            `json:"anonymous"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"created_at"`
}

// Campaign is the ledger view of a campaign: only what donations and refunds touch.
//
// RaisedAmount is written exclusively by the ledger increment (donations) and the
// floored decrement (refunds).
type Campaign struct {
	ID           string          `json:"id"`
	OwnerID      string          `json:"owner_id"`
	Title        string          `json:"title"`
	Type         CampaignType    `json:"type"`
	Status       CampaignStatus  `json:"status"`
	Currency     string          `json:"currency"`
	GoalAmount   decimal.Decimal `json:"goal_amount"`
	RaisedAmount decimal.Decimal `json:"raised_amount"`
	Donations    []DonationEntry `json:"donations,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func (c Campaign) AcceptsDonations() bool {
	return c.Type == CampaignTypeCrowdfunding && c.Status == CampaignStatusActive
}

func (c Campaign) HasDonation(paymentID string) bool {
	for _, d := range c.Donations {
		if d.PaymentID == paymentID {
			return true
		}
	}
	return false
}
