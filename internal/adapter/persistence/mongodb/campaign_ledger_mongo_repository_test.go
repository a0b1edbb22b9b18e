package mongodb

import (
	"testing"
	"time"

	"donation_platform/internal/domain/entities"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCampaignDocument_DecimalPrecision(t *testing.T) {
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	c := entities.Campaign{
		ID:           "camp-1",
		Currency:     "BRL",
		GoalAmount:   decimal.RequireFromString("10000.00"),
		RaisedAmount: decimal.RequireFromString("0.30"),
		Donations: []entities.DonationEntry{
			{PaymentID: "pay-1", Amount: decimal.RequireFromString("0.10"), CreatedAt: now},
			{PaymentID: "pay-2", Amount: decimal.RequireFromString("0.20"), CreatedAt: now},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	doc, err := toCampaignDocument(c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	raw, err := bson.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded campaignDocument
	if err := bson.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	got, err := fromCampaignDocument(decoded)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sum := got.Donations[0].Amount.Add(got.Donations[1].Amount)
	if !sum.Equal(got.RaisedAmount) || !got.GoalAmount.Equal(c.GoalAmount) {
		t.Fatalf("decimal drift: sum=%s raised=%s goal=%s", sum, got.RaisedAmount, got.GoalAmount)
	}
}

func TestFromDecimal128_ZeroValue(t *testing.T) {
	d, err := fromDecimal128(primitive.Decimal128{})
	if err != nil || !d.IsZero() {
		t.Fatalf("expected zero, got %s err=%v", d, err)
	}
}
