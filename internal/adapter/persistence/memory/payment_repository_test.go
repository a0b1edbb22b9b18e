package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"donation_platform/internal/domain/entities"
	"donation_platform/internal/usecase/interfaces"

	"github.com/shopspring/decimal"
)

func TestPaymentRepository(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("intent is unique", func(t *testing.T) {
		repo := NewPaymentRepository()
		p, err := repo.Create(ctx, entities.Payment{ID: "pay-1", IntentID: "pi_1", CampaignID: "camp-1"})
		if err != nil || p.Version != 1 {
			t.Fatalf("unexpected create: %+v err=%v", p, err)
		}
		if _, err := repo.Create(ctx, entities.Payment{ID: "pay-2", IntentID: "pi_1"}); !errors.Is(err, interfaces.ErrDuplicateIntent) {
			t.Fatalf("expected ErrDuplicateIntent, got %v", err)
		}
		got, _ := repo.GetByIntentID(ctx, "pi_1")
		if got.ID != "pay-1" {
			t.Fatalf("expected pay-1, got %+v", got)
		}
		missing, _ := repo.GetByIntentID(ctx, "pi_x")
		if missing.ID != "" {
			t.Fatalf("expected zero payment, got %+v", missing)
		}
	})

	t.Run("update is compare and set", func(t *testing.T) {
		repo := NewPaymentRepository()
		p, _ := repo.Create(ctx, entities.Payment{ID: "pay-1", IntentID: "pi_1", CreatedAt: created, Amount: decimal.NewFromInt(10)})

		next := p
		next.Status = entities.PaymentStatusSucceeded
		next.IntentID = "pi_other"
		next.CreatedAt = time.Now()
		updated, err := repo.Update(ctx, next, p.Version)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updated.Version != 2 || updated.IntentID != "pi_1" || !updated.CreatedAt.Equal(created) {
			t.Fatalf("unexpected update: %+v", updated)
		}

		if _, err := repo.Update(ctx, next, p.Version); !errors.Is(err, interfaces.ErrPaymentVersionConflict) {
			t.Fatalf("expected stale version to conflict, got %v", err)
		}
		if _, err := repo.Update(ctx, entities.Payment{ID: "ghost"}, 1); !errors.Is(err, interfaces.ErrPaymentVersionConflict) {
			t.Fatalf("expected missing payment to conflict, got %v", err)
		}
	})

	t.Run("stored copies are isolated", func(t *testing.T) {
		repo := NewPaymentRepository()
		p, _ := repo.Create(ctx, entities.Payment{ID: "pay-1", IntentID: "pi_1", Refunds: []entities.RefundRecord{{RefundID: "re_1"}}})
		p.Refunds[0].RefundID = "mutated"

		got, _ := repo.GetByID(ctx, "pay-1")
		if got.Refunds[0].RefundID != "re_1" {
			t.Fatalf("caller mutation leaked into the store")
		}
	})

	t.Run("list filters", func(t *testing.T) {
		repo := NewPaymentRepository()
		_, _ = repo.Create(ctx, entities.Payment{ID: "a", IntentID: "1", CampaignID: "camp-1", DonorID: "don-1"})
		_, _ = repo.Create(ctx, entities.Payment{ID: "b", IntentID: "2", CampaignID: "camp-2", DonorID: "don-1"})
		_, _ = repo.Create(ctx, entities.Payment{ID: "c", IntentID: "3", CampaignID: "camp-1", DonorID: "don-2"})

		byCampaign, _ := repo.ListByCampaignID(ctx, "camp-1")
		byDonor, _ := repo.ListByDonorID(ctx, "don-1")
		if len(byCampaign) != 2 || len(byDonor) != 2 {
			t.Fatalf("unexpected lists: %d %d", len(byCampaign), len(byDonor))
		}
	})
}
