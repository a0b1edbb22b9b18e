package usecase

import (
	"context"
	"sort"
	"strings"

	"donation_platform/internal/domain/entities"
	"donation_platform/internal/usecase/interfaces"
)

type IPaymentQueryUseCase interface {
	GetByID(ctx context.Context, id string) (entities.Payment, error)
	ListByCampaignID(ctx context.Context, campaignID string) ([]entities.Payment, error)
	ListByDonorID(ctx context.Context, donorID string) ([]entities.Payment, error)
}

type PaymentQueryUseCase struct {
	repo interfaces.IPaymentRepository
}

var _ IPaymentQueryUseCase = (*PaymentQueryUseCase)(nil)

func NewPaymentQueryUseCase(repo interfaces.IPaymentRepository) *PaymentQueryUseCase {
	return &PaymentQueryUseCase{repo: repo}
}

func (u *PaymentQueryUseCase) GetByID(ctx context.Context, id string) (entities.Payment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Payment{}, ErrInvalidPaymentID
	}

	p, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Payment{}, err
	}
	if p.ID == "" {
		return entities.Payment{}, ErrPaymentNotFound
	}
	return p, nil
}

func (u *PaymentQueryUseCase) ListByCampaignID(ctx context.Context, campaignID string) ([]entities.Payment, error) {
	campaignID = strings.TrimSpace(campaignID)
	if campaignID == "" {
		return nil, ErrInvalidCampaignID
	}
	out, err := u.repo.ListByCampaignID(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	sortNewestFirst(out)
	return out, nil
}

func (u *PaymentQueryUseCase) ListByDonorID(ctx context.Context, donorID string) ([]entities.Payment, error) {
	donorID = strings.TrimSpace(donorID)
	if donorID == "" {
		return nil, ErrInvalidDonorID
	}
	out, err := u.repo.ListByDonorID(ctx, donorID)
	if err != nil {
		return nil, err
	}
	sortNewestFirst(out)
	return out, nil
}

func sortNewestFirst(ps []entities.Payment) {
	sort.SliceStable(ps, func(i, j int) bool { return ps[i].CreatedAt.After(ps[j].CreatedAt) })
}
