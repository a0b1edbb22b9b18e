package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"donation_platform/internal/domain/entities"
	mock_interfaces "donation_platform/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func TestPaymentQueryUseCase_Getters(t *testing.T) {
	t.Run("get by id validations", func(t *testing.T) {
		uc := NewPaymentQueryUseCase(nil)
		if _, err := uc.GetByID(context.Background(), " "); !errors.Is(err, ErrInvalidPaymentID) {
			t.Fatalf("expected ErrInvalidPaymentID, got %v", err)
		}
		if _, err := uc.ListByCampaignID(context.Background(), ""); !errors.Is(err, ErrInvalidCampaignID) {
			t.Fatalf("expected ErrInvalidCampaignID, got %v", err)
		}
		if _, err := uc.ListByDonorID(context.Background(), ""); !errors.Is(err, ErrInvalidDonorID) {
			t.Fatalf("expected ErrInvalidDonorID, got %v", err)
		}
	})

	t.Run("get by id not found and error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		uc := NewPaymentQueryUseCase(repo)

		repo.EXPECT().GetByID(gomock.Any(), "pay-1").Return(entities.Payment{}, nil)
		if _, err := uc.GetByID(context.Background(), "pay-1"); !errors.Is(err, ErrPaymentNotFound) {
			t.Fatalf("expected ErrPaymentNotFound, got %v", err)
		}

		repo.EXPECT().GetByID(gomock.Any(), "pay-2").Return(entities.Payment{}, errors.New("db"))
		if _, err := uc.GetByID(context.Background(), "pay-2"); err == nil || err.Error() != "db" {
			t.Fatalf("expected db error, got %v", err)
		}
	})

	t.Run("lists newest first", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		uc := NewPaymentQueryUseCase(repo)

		now := time.Now().UTC()
		repo.EXPECT().ListByDonorID(gomock.Any(), donorAlice.ID).Return([]entities.Payment{
			{ID: "old", CreatedAt: now.Add(-time.Hour)},
			{ID: "new", CreatedAt: now},
		}, nil)

		got, err := uc.ListByDonorID(context.Background(), donorAlice.ID)
		if err != nil || len(got) != 2 || got[0].ID != "new" {
			t.Fatalf("unexpected list: %+v err=%v", got, err)
		}
	})
}
