package entities

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestPaymentStatus_CanTransitionTo(t *testing.T) {
	cases := []struct {
		from PaymentStatus
		to   PaymentStatus
		want bool
	}{
		{PaymentStatusPending, PaymentStatusSucceeded, true},
		{PaymentStatusPending, PaymentStatusFailed, true},
		{PaymentStatusPending, PaymentStatusCanceled, true},
		{PaymentStatusPending, PaymentStatusRefunded, false},
		{PaymentStatusSucceeded, PaymentStatusRefunded, true},
		{PaymentStatusSucceeded, PaymentStatusSucceeded, true},
		{PaymentStatusSucceeded, PaymentStatusPending, false},
		{PaymentStatusFailed, PaymentStatusSucceeded, false},
		{PaymentStatusCanceled, PaymentStatusSucceeded, false},
		{PaymentStatusRefunded, PaymentStatusSucceeded, false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.want {
			t.Fatalf("%s -> %s: expected %v, got %v", tc.from, tc.to, tc.want, got)
		}
	}
}

func TestPayment_ApplyRefund(t *testing.T) {
	p := Payment{Amount: decimal.NewFromInt(20), Status: PaymentStatusSucceeded}

	partial := p.ApplyRefund(RefundRecord{RefundID: "re_1", Amount: decimal.NewFromInt(15)})
	if partial.Status != PaymentStatusSucceeded || !partial.IsPartiallyRefunded() {
		t.Fatalf("expected partially refunded succeeded payment, got %+v", partial)
	}
	if !partial.RefundableAmount().Equal(decimal.NewFromInt(5)) {
		t.Fatalf("expected 5 refundable, got %s", partial.RefundableAmount())
	}
	if len(p.Refunds) != 0 {
		t.Fatalf("original payment must not be mutated")
	}

	full := partial.ApplyRefund(RefundRecord{RefundID: "re_2", Amount: decimal.NewFromInt(5)})
	if full.Status != PaymentStatusRefunded {
		t.Fatalf("expected refunded, got %s", full.Status)
	}
	if !full.NetAmount().IsZero() || !full.HasRefund("re_2") {
		t.Fatalf("unexpected payment after full refund: %+v", full)
	}
}

func TestPayment_RefundByKey(t *testing.T) {
	p := Payment{Refunds: []RefundRecord{
		{RefundID: "re_1", IdempotencyKey: "req-1"},
		{RefundID: "re_2"},
	}}
	if r, ok := p.RefundByKey("req-1"); !ok || r.RefundID != "re_1" {
		t.Fatalf("expected re_1, got %+v ok=%v", r, ok)
	}
	if _, ok := p.RefundByKey(""); ok {
		t.Fatalf("empty key must not match a refund without key")
	}
	if _, ok := p.RefundByKey("req-9"); ok {
		t.Fatalf("unexpected match for unknown key")
	}
}

func TestCampaign_AcceptsDonations(t *testing.T) {
	c := Campaign{Type: CampaignTypeCrowdfunding, Status: CampaignStatusActive}
	if !c.AcceptsDonations() {
		t.Fatalf("expected active crowdfunding campaign to accept donations")
	}
	c.Status = CampaignStatusPaused
	if c.AcceptsDonations() {
		t.Fatalf("paused campaign must not accept donations")
	}
	c = Campaign{Type: CampaignTypeVolunteering, Status: CampaignStatusActive}
	if c.AcceptsDonations() {
		t.Fatalf("volunteering campaign must not accept donations")
	}
}
