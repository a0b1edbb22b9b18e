package response

import "donation_platform/internal/domain/entities"

type CampaignStatsResponse struct {
	CampaignID      string `json:"campaign_id"`
	Currency        string `json:"currency"`
	TotalDonations  int    `json:"total_donations"`
	TotalGross      string `json:"total_gross"`
	AverageDonation string `json:"average_donation"`
	TotalRefunded   string `json:"total_refunded"`
	NetAmount       string `json:"net_amount"`
	GoalAmount      string `json:"goal_amount"`
	RaisedAmount    string `json:"raised_amount"`
	ProgressPercent string `json:"progress_percent"`
	LegacyDonations int    `json:"legacy_donations"`
}

func FromCampaignStats(s entities.CampaignStats) CampaignStatsResponse {
	return CampaignStatsResponse{
		CampaignID:      s.CampaignID,
		Currency:        s.Currency,
		TotalDonations:  s.TotalDonations,
		TotalGross:      formatMoney(s.TotalGross),
		AverageDonation: formatMoney(s.AverageDonation),
		TotalRefunded:   formatMoney(s.TotalRefunded),
		NetAmount:       formatMoney(s.NetAmount),
		GoalAmount:      formatMoney(s.GoalAmount),
		RaisedAmount:    formatMoney(s.RaisedAmount),
		ProgressPercent: formatMoney(s.ProgressPercent),
		LegacyDonations: s.LegacyDonations,
	}
}

type DonorSummaryResponse struct {
	DonorID       string `json:"donor_id,omitempty"`
	DisplayName   string `json:"display_name"`
	Anonymous     bool   `json:"anonymous"`
	TotalAmount   string `json:"total_amount"`
	DonationCount int    `json:"donation_count"`
}

func FromDonorSummaries(in []entities.DonorSummary) []DonorSummaryResponse {
	out := make([]DonorSummaryResponse, 0, len(in))
	for _, s := range in {
		out = append(out, DonorSummaryResponse{
			DonorID:       s.DonorID,
			DisplayName:   s.DisplayName,
			Anonymous:     s.Anonymous,
			TotalAmount:   formatMoney(s.TotalAmount),
			DonationCount: s.DonationCount,
		})
	}
	return out
}

type DonorTotalsResponse struct {
	DonorID       string `json:"donor_id"`
	TotalGross    string `json:"total_gross"`
	TotalRefunded string `json:"total_refunded"`
	NetAmount     string `json:"net_amount"`
	DonationCount int    `json:"donation_count"`
	Campaigns     int    `json:"campaigns"`
}

func FromDonorTotals(t entities.DonorTotals) DonorTotalsResponse {
	return DonorTotalsResponse{
		DonorID:       t.DonorID,
		TotalGross:    formatMoney(t.TotalGross),
		TotalRefunded: formatMoney(t.TotalRefunded),
		NetAmount:     formatMoney(t.NetAmount),
		DonationCount: t.DonationCount,
		Campaigns:     t.Campaigns,
	}
}
