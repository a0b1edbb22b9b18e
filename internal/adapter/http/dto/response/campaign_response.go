package response

import (
	"time"

	"donation_platform/internal/domain/entities"
)

type CampaignResponse struct {
	ID           string    `json:"id"`
	OwnerID      string    `json:"owner_id"`
	Title        string    `json:"title"`
	Type         string    `json:"type"`
	Status       string    `json:"status"`
	Currency     string    `json:"currency"`
	GoalAmount   string    `json:"goal_amount"`
	RaisedAmount string    `json:"raised_amount"`
	Donations    int       `json:"donations"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func FromCampaign(c entities.Campaign) CampaignResponse {
	return CampaignResponse{
		ID:           c.ID,
		OwnerID:      c.OwnerID,
		Title:        c.Title,
		Type:         string(c.Type),
		Status:       string(c.Status),
		Currency:     c.Currency,
		GoalAmount:   formatMoney(c.GoalAmount),
		RaisedAmount: formatMoney(c.RaisedAmount),
		Donations:    len(c.Donations),
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}
