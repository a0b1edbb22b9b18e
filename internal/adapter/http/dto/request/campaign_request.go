package request

import "encoding/json"

// RegisterCampaignRequest provisions the ledger view of a campaign. Admins may register
// on behalf of owner_id; everybody else registers their own campaigns.
type RegisterCampaignRequest struct {
	ID         string          `json:"id"`
	OwnerID    string          `json:"owner_id"`
	Title      string          `json:"title" binding:"required"`
	Type       string          `json:"type" binding:"required" example:"crowdfunding"`
	Currency   string          `json:"currency" binding:"required" example:"USD"`
	GoalAmount json.RawMessage `json:"goal_amount" swaggertype:"string" example:"1000.00"`
}
