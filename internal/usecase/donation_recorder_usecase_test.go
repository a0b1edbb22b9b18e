package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"donation_platform/internal/domain/entities"
	"donation_platform/internal/usecase/interfaces"
	mock_interfaces "donation_platform/internal/usecase/interfaces/mocks"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

func TestDonationRecorderUseCase_AddDonation_Validations(t *testing.T) {
	uc := NewDonationRecorderUseCase(nil, nil, nil, nil, testPolicy)

	if _, err := uc.AddDonation(context.Background(), entities.Payment{CampaignID: "camp-1"}); !errors.Is(err, ErrInvalidPaymentID) {
		t.Fatalf("expected ErrInvalidPaymentID, got %v", err)
	}
	if _, err := uc.AddDonation(context.Background(), entities.Payment{ID: "pay-1"}); !errors.Is(err, ErrInvalidCampaignID) {
		t.Fatalf("expected ErrInvalidCampaignID, got %v", err)
	}
	pending := entities.Payment{ID: "pay-1", CampaignID: "camp-1", Status: entities.PaymentStatusPending}
	if _, err := uc.AddDonation(context.Background(), pending); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestDonationRecorderUseCase_AddDonation_Flows(t *testing.T) {
	succeeded := entities.Payment{
		ID: "pay-1", CampaignID: "camp-1", DonorID: donorAlice.ID, DonorName: "Alice",
		Amount: money("25"), Currency: "USD", Status: entities.PaymentStatusSucceeded, Version: 2,
	}

	t.Run("records, flags, invalidates and publishes", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		ledger := mock_interfaces.NewMockICampaignLedger(ctrl)
		cache := mock_interfaces.NewMockIStatsCache(ctrl)
		publisher := mock_interfaces.NewMockIEventPublisher(ctrl)
		uc := NewDonationRecorderUseCase(repo, ledger, cache, publisher, testPolicy)

		ledger.EXPECT().IncrementRaised(gomock.Any(), "camp-1", gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, amount decimal.Decimal, entry entities.DonationEntry) (bool, error) {
				if !amount.Equal(money("25")) {
					t.Fatalf("unexpected amount %s", amount)
				}
				if entry.PaymentID != "pay-1" || entry.DonorName != "Alice" || !entry.Amount.Equal(money("25")) {
					t.Fatalf("unexpected entry: %+v", entry)
				}
				return true, nil
			},
		)
		repo.EXPECT().Update(gomock.Any(), gomock.Any(), int64(2)).DoAndReturn(
			func(_ context.Context, p entities.Payment, _ int64) (entities.Payment, error) {
				if !p.LedgerRecorded {
					t.Fatalf("expected LedgerRecorded flag")
				}
				p.Version = 3
				return p, nil
			},
		)
		cache.EXPECT().InvalidateCampaign(gomock.Any(), "camp-1").Return(nil)
		publisher.EXPECT().Publish(gomock.Any(), interfaces.TopicDonationRecorded, "camp-1", gomock.AssignableToTypeOf(DonationRecordedEvent{})).Return(errors.New("broker down"))

		got, err := uc.AddDonation(context.Background(), succeeded)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !got.LedgerRecorded || got.Version != 3 {
			t.Fatalf("unexpected payment: %+v", got)
		}
	})

	t.Run("duplicate is a no-op on the ledger", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		ledger := mock_interfaces.NewMockICampaignLedger(ctrl)
		cache := mock_interfaces.NewMockIStatsCache(ctrl)
		publisher := mock_interfaces.NewMockIEventPublisher(ctrl)
		uc := NewDonationRecorderUseCase(repo, ledger, cache, publisher, testPolicy)

		recorded := succeeded
		recorded.LedgerRecorded = true
		ledger.EXPECT().IncrementRaised(gomock.Any(), "camp-1", gomock.Any(), gomock.Any()).Return(false, nil)

		got, err := uc.AddDonation(context.Background(), recorded)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Version != recorded.Version {
			t.Fatalf("expected untouched payment, got %+v", got)
		}
	})

	t.Run("transient errors are retried", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		ledger := mock_interfaces.NewMockICampaignLedger(ctrl)
		uc := NewDonationRecorderUseCase(repo, ledger, nil, nil, testPolicy)

		gomock.InOrder(
			ledger.EXPECT().IncrementRaised(gomock.Any(), "camp-1", gomock.Any(), gomock.Any()).Return(false, errors.New("throttled")),
			ledger.EXPECT().IncrementRaised(gomock.Any(), "camp-1", gomock.Any(), gomock.Any()).Return(true, nil),
		)
		repo.EXPECT().Update(gomock.Any(), gomock.Any(), int64(2)).DoAndReturn(
			func(_ context.Context, p entities.Payment, _ int64) (entities.Payment, error) {
				p.Version = 3
				return p, nil
			},
		)

		if _, err := uc.AddDonation(context.Background(), succeeded); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("missing campaign is not retried", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		ledger := mock_interfaces.NewMockICampaignLedger(ctrl)
		uc := NewDonationRecorderUseCase(mock_interfaces.NewMockIPaymentRepository(ctrl), ledger, nil, nil, testPolicy)

		ledger.EXPECT().IncrementRaised(gomock.Any(), "camp-1", gomock.Any(), gomock.Any()).Return(false, interfaces.ErrLedgerCampaignNotFound).Times(1)

		_, err := uc.AddDonation(context.Background(), succeeded)
		if !errors.Is(err, ErrReconciliation) || !errors.Is(err, interfaces.ErrLedgerCampaignNotFound) {
			t.Fatalf("expected reconciliation error, got %v", err)
		}
	})
}

func TestDonationRecorderUseCase_ConcurrentDonationsAreAllCounted(t *testing.T) {
	env := newTestEnv(t)
	env.seedCampaign(t, "camp-1", ownerCarol.ID)
	ctx := context.Background()

	const n = 50
	payments := make([]entities.Payment, 0, n)
	for i := 0; i < n; i++ {
		p, err := env.repo.Create(ctx, entities.Payment{
			ID: fmt.Sprintf("pay-%d", i), CampaignID: "camp-1", DonorID: fmt.Sprintf("donor-%d", i),
			IntentID: fmt.Sprintf("pi_%d", i), Amount: money("1.00"), Currency: "USD",
			Status: entities.PaymentStatusSucceeded, Version: 1,
		})
		if err != nil {
			t.Fatalf("seed payment: %v", err)
		}
		payments = append(payments, p)
	}

	var wg sync.WaitGroup
	for _, p := range payments {
		wg.Add(1)
		go func(p entities.Payment) {
			defer wg.Done()
			if _, err := env.recorder.AddDonation(ctx, p); err != nil {
				t.Errorf("add donation %s: %v", p.ID, err)
			}
		}(p)
	}
	wg.Wait()

	if got := env.raised(t, "camp-1"); !got.Equal(money("50")) {
		t.Fatalf("expected raised 50.00, got %s", got)
	}

	// Replaying every payment must not change the total.
	for _, p := range payments {
		if _, err := env.recorder.AddDonation(ctx, p); err != nil {
			t.Fatalf("replay %s: %v", p.ID, err)
		}
	}
	if got := env.raised(t, "camp-1"); !got.Equal(money("50")) {
		t.Fatalf("expected raised 50.00 after replay, got %s", got)
	}
}
