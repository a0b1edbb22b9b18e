package entities

import "github.com/shopspring/decimal"

// CampaignStats is computed from succeeded payments (partially refunded included)
// merged with legacy history entries that have no ledger payment.
type CampaignStats struct {
	CampaignID      string          `json:"campaign_id"`
	Currency        string          `json:"currency"`
	TotalGross      decimal.Decimal `json:"total_gross"`
	TotalDonations  int             `json:"total_donations"`
	AverageDonation decimal.Decimal `json:"average_donation"`
	TotalRefunded   decimal.Decimal `json:"total_refunded"`
	NetAmount       decimal.Decimal `json:"net_amount"`
	GoalAmount      decimal.Decimal `json:"goal_amount"`
	RaisedAmount    decimal.Decimal `json:"raised_amount"`
	ProgressPercent decimal.Decimal `json:"progress_percent"`
	LegacyDonations int             `json:"legacy_donations"`
}

// DonorSummary is one bucket of the donor listing. Anonymous buckets carry no donor id.
type DonorSummary struct {
	DonorID       string          `json:"donor_id,omitempty"`
	DisplayName   string          `json:"display_name"`
	Anonymous     bool            `json:"anonymous"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	DonationCount int             `json:"donation_count"`
}

type DonorTotals struct {
	DonorID       string          `json:"donor_id"`
	TotalGross    decimal.Decimal `json:"total_gross"`
	TotalRefunded decimal.Decimal `json:"total_refunded"`
	NetAmount     decimal.Decimal `json:"net_amount"`
	DonationCount int             `json:"donation_count"`
	Campaigns     int             `json:"campaigns"`
}
