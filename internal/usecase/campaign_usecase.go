package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"donation_platform/internal/domain/entities"
	"donation_platform/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var campaignTransitions = map[entities.CampaignStatus][]entities.CampaignStatus{
	entities.CampaignStatusDraft:  {entities.CampaignStatusActive, entities.CampaignStatusCanceled},
	entities.CampaignStatusActive: {entities.CampaignStatusPaused, entities.CampaignStatusCompleted},
	entities.CampaignStatusPaused: {entities.CampaignStatusActive, entities.CampaignStatusCompleted},
}

type RegisterCampaignCommand struct {
	ID         string
	OwnerID    string
	Title      string
	Type       entities.CampaignType
	Currency   string
	GoalAmount decimal.Decimal
}

// ICampaignUseCase provisions the ledger view of a campaign. It is not campaign CRUD:
// only what donations and refunds read.
type ICampaignUseCase interface {
	Register(ctx context.Context, cmd RegisterCampaignCommand) (entities.Campaign, error)
	Activate(ctx context.Context, actor entities.Actor, campaignID string) (entities.Campaign, error)
	Pause(ctx context.Context, actor entities.Actor, campaignID string) (entities.Campaign, error)
	Complete(ctx context.Context, actor entities.Actor, campaignID string) (entities.Campaign, error)
	GetByID(ctx context.Context, campaignID string) (entities.Campaign, error)
}

type CampaignUseCase struct {
	ledger interfaces.ICampaignLedger
}

var _ ICampaignUseCase = (*CampaignUseCase)(nil)

func NewCampaignUseCase(ledger interfaces.ICampaignLedger) *CampaignUseCase {
	return &CampaignUseCase{ledger: ledger}
}

func (u *CampaignUseCase) Register(ctx context.Context, cmd RegisterCampaignCommand) (entities.Campaign, error) {
	ownerID := strings.TrimSpace(cmd.OwnerID)
	title := strings.TrimSpace(cmd.Title)
	currency := strings.ToUpper(strings.TrimSpace(cmd.Currency))
	if ownerID == "" || title == "" {
		return entities.Campaign{}, ErrInvalidCampaignInput
	}
	if len(currency) != 3 {
		return entities.Campaign{}, fmt.Errorf("%w: currency must be an ISO 4217 code", ErrValidation)
	}
	switch cmd.Type {
	case entities.CampaignTypeCrowdfunding, entities.CampaignTypeVolunteering, entities.CampaignTypeMarketplace:
	default:
		return entities.Campaign{}, fmt.Errorf("%w: unknown campaign type %q", ErrValidation, cmd.Type)
	}
	if cmd.GoalAmount.IsNegative() || !roundMoney(cmd.GoalAmount).Equal(cmd.GoalAmount) {
		return entities.Campaign{}, ErrInvalidAmount
	}

	id := strings.TrimSpace(cmd.ID)
	if id == "" {
		id = uuid.NewString()
	} else if existing, err := u.ledger.FindDonatable(ctx, id); err != nil {
		return entities.Campaign{}, err
	} else if existing.ID != "" {
		return entities.Campaign{}, ErrCampaignAlreadyExists
	}

	now := time.Now().UTC()
	c := entities.Campaign{
		ID:           id,
		OwnerID:      ownerID,
		Title:        title,
		Type:         cmd.Type,
		Status:       entities.CampaignStatusDraft,
		Currency:     currency,
		GoalAmount:   cmd.GoalAmount,
		RaisedAmount: decimal.Zero,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	created, err := u.ledger.Create(ctx, c)
	if errors.Is(err, interfaces.ErrCampaignAlreadyExists) {
		return entities.Campaign{}, ErrCampaignAlreadyExists
	}
	return created, err
}

func (u *CampaignUseCase) Activate(ctx context.Context, actor entities.Actor, campaignID string) (entities.Campaign, error) {
	return u.updateStatus(ctx, actor, campaignID, entities.CampaignStatusActive)
}

func (u *CampaignUseCase) Pause(ctx context.Context, actor entities.Actor, campaignID string) (entities.Campaign, error) {
	return u.updateStatus(ctx, actor, campaignID, entities.CampaignStatusPaused)
}

func (u *CampaignUseCase) Complete(ctx context.Context, actor entities.Actor, campaignID string) (entities.Campaign, error) {
	return u.updateStatus(ctx, actor, campaignID, entities.CampaignStatusCompleted)
}

func (u *CampaignUseCase) updateStatus(ctx context.Context, actor entities.Actor, campaignID string, status entities.CampaignStatus) (entities.Campaign, error) {
	current, err := u.GetByID(ctx, campaignID)
	if err != nil {
		return entities.Campaign{}, err
	}
	if !actor.IsAdmin() && actor.ID != current.OwnerID {
		return entities.Campaign{}, fmt.Errorf("%w: only admins or the campaign owner can change its status", ErrAuthorization)
	}
	if !campaignCanTransition(current.Status, status) {
		return entities.Campaign{}, fmt.Errorf("%w: campaign %s -> %s", ErrInvalidTransition, current.Status, status)
	}

	updated, err := u.ledger.UpdateStatus(ctx, current.ID, status)
	if err != nil {
		return entities.Campaign{}, err
	}
	if updated.ID == "" {
		return entities.Campaign{}, ErrCampaignNotFound
	}
	return updated, nil
}

func (u *CampaignUseCase) GetByID(ctx context.Context, campaignID string) (entities.Campaign, error) {
	campaignID = strings.TrimSpace(campaignID)
	if campaignID == "" {
		return entities.Campaign{}, ErrInvalidCampaignID
	}

	c, err := u.ledger.FindDonatable(ctx, campaignID)
	if err != nil {
		return entities.Campaign{}, err
	}
	if c.ID == "" {
		return entities.Campaign{}, ErrCampaignNotFound
	}
	return c, nil
}

func campaignCanTransition(from, to entities.CampaignStatus) bool {
	for _, allowed := range campaignTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
