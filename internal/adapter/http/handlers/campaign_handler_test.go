package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	response "donation_platform/internal/adapter/http/dto/response"
	"donation_platform/internal/adapter/http/handlers/mocks"
	"donation_platform/internal/domain/entities"
	"donation_platform/internal/usecase"

	"go.uber.org/mock/gomock"
)

func TestCampaignHandler_Register(t *testing.T) {
	t.Run("creator registers own campaign", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockICampaignUseCase(ctrl)
		h := NewCampaignHandler(uc)

		r := newTestRouter(&ownerCarol)
		r.POST("/v1/campaigns", h.Register)

		uc.EXPECT().Register(gomock.Any(), gomock.AssignableToTypeOf(usecase.RegisterCampaignCommand{})).DoAndReturn(
			func(_ context.Context, cmd usecase.RegisterCampaignCommand) (entities.Campaign, error) {
				if cmd.OwnerID != ownerCarol.ID || cmd.Type != entities.CampaignTypeCrowdfunding || !cmd.GoalAmount.Equal(money("1000")) {
					t.Fatalf("unexpected command: %+v", cmd)
				}
				return entities.Campaign{ID: "camp-1", OwnerID: cmd.OwnerID, Status: entities.CampaignStatusDraft, GoalAmount: cmd.GoalAmount}, nil
			},
		)

		w := doJSON(t, r, http.MethodPost, "/v1/campaigns", `{"title":"Water","type":"Crowdfunding","currency":"USD","goal_amount":"1000"}`)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d body=%s", w.Code, w.Body.String())
		}
		var data response.CampaignResponse
		if err := json.Unmarshal(decodeEnvelope(t, w).Data, &data); err != nil || data.GoalAmount != "1000.00" || data.Status != "draft" {
			t.Fatalf("unexpected data: %+v err=%v", data, err)
		}
	})

	t.Run("creator cannot register for someone else", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		h := NewCampaignHandler(mocks.NewMockICampaignUseCase(ctrl))

		r := newTestRouter(&ownerCarol)
		r.POST("/v1/campaigns", h.Register)

		w := doJSON(t, r, http.MethodPost, "/v1/campaigns", `{"owner_id":"other","title":"Water","type":"crowdfunding","currency":"USD"}`)
		if w.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", w.Code)
		}
	})

	t.Run("admin registers on behalf", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockICampaignUseCase(ctrl)
		h := NewCampaignHandler(uc)

		r := newTestRouter(&adminDan)
		r.POST("/v1/campaigns", h.Register)

		uc.EXPECT().Register(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, cmd usecase.RegisterCampaignCommand) (entities.Campaign, error) {
				if cmd.OwnerID != ownerCarol.ID || cmd.ID != "camp-9" || !cmd.GoalAmount.IsZero() {
					t.Fatalf("unexpected command: %+v", cmd)
				}
				return entities.Campaign{}, usecase.ErrCampaignAlreadyExists
			},
		)

		w := doJSON(t, r, http.MethodPost, "/v1/campaigns", `{"id":"camp-9","owner_id":"owner-carol","title":"Water","type":"crowdfunding","currency":"USD"}`)
		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("missing fields", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		h := NewCampaignHandler(mocks.NewMockICampaignUseCase(ctrl))

		r := newTestRouter(&ownerCarol)
		r.POST("/v1/campaigns", h.Register)

		if w := doJSON(t, r, http.MethodPost, "/v1/campaigns", `{"title":"Water"}`); w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})
}

func TestCampaignHandler_StatusChanges(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc := mocks.NewMockICampaignUseCase(ctrl)
	h := NewCampaignHandler(uc)

	r := newTestRouter(&ownerCarol)
	r.GET("/v1/campaigns/:campaign_id", h.Get)
	r.PATCH("/v1/campaigns/:campaign_id/activate", h.Activate)
	r.PATCH("/v1/campaigns/:campaign_id/pause", h.Pause)
	r.PATCH("/v1/campaigns/:campaign_id/complete", h.Complete)

	uc.EXPECT().Activate(gomock.Any(), ownerCarol, "camp-1").Return(entities.Campaign{ID: "camp-1", Status: entities.CampaignStatusActive}, nil)
	uc.EXPECT().Pause(gomock.Any(), ownerCarol, "camp-1").Return(entities.Campaign{}, usecase.ErrInvalidTransition)
	uc.EXPECT().Complete(gomock.Any(), ownerCarol, "camp-2").Return(entities.Campaign{}, usecase.ErrAuthorization)
	uc.EXPECT().GetByID(gomock.Any(), "missing").Return(entities.Campaign{}, usecase.ErrCampaignNotFound)

	if w := doJSON(t, r, http.MethodPatch, "/v1/campaigns/camp-1/activate", ""); w.Code != http.StatusOK {
		t.Fatalf("activate: expected 200, got %d", w.Code)
	}
	if w := doJSON(t, r, http.MethodPatch, "/v1/campaigns/camp-1/pause", ""); w.Code != http.StatusConflict {
		t.Fatalf("pause: expected 409, got %d", w.Code)
	}
	if w := doJSON(t, r, http.MethodPatch, "/v1/campaigns/camp-2/complete", ""); w.Code != http.StatusForbidden {
		t.Fatalf("complete: expected 403, got %d", w.Code)
	}
	if w := doJSON(t, r, http.MethodGet, "/v1/campaigns/missing", ""); w.Code != http.StatusNotFound {
		t.Fatalf("get: expected 404, got %d", w.Code)
	}
}

func TestCampaignDonationHandler(t *testing.T) {
	t.Run("stats and donors", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		stats := mocks.NewMockIStatsUseCase(ctrl)
		h := NewCampaignDonationHandler(stats, mocks.NewMockIPaymentQueryUseCase(ctrl), mocks.NewMockICampaignUseCase(ctrl))

		r := newTestRouter(&donorAlice)
		r.GET("/v1/campaigns/:campaign_id/donations/stats", h.Stats)
		r.GET("/v1/campaigns/:campaign_id/donations/donors", h.Donors)

		stats.EXPECT().CampaignStats(gomock.Any(), "camp-1").Return(entities.CampaignStats{CampaignID: "camp-1", TotalDonations: 3, AverageDonation: money("18.333")}, nil)
		stats.EXPECT().DonorListing(gomock.Any(), "camp-1").Return([]entities.DonorSummary{
			{DisplayName: "Anonymous", Anonymous: true, TotalAmount: money("30"), DonationCount: 1},
		}, nil)
		stats.EXPECT().CampaignStats(gomock.Any(), "missing").Return(entities.CampaignStats{}, usecase.ErrCampaignNotFound)

		w := doJSON(t, r, http.MethodGet, "/v1/campaigns/camp-1/donations/stats", "")
		var s response.CampaignStatsResponse
		if err := json.Unmarshal(decodeEnvelope(t, w).Data, &s); err != nil || w.Code != http.StatusOK || s.AverageDonation != "18.33" {
			t.Fatalf("unexpected stats: code=%d %+v err=%v", w.Code, s, err)
		}

		w = doJSON(t, r, http.MethodGet, "/v1/campaigns/camp-1/donations/donors", "")
		var donors []response.DonorSummaryResponse
		if err := json.Unmarshal(decodeEnvelope(t, w).Data, &donors); err != nil || len(donors) != 1 || donors[0].DonorID != "" {
			t.Fatalf("unexpected donors: %+v err=%v", donors, err)
		}

		if w := doJSON(t, r, http.MethodGet, "/v1/campaigns/missing/donations/stats", ""); w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("payments list is owner only", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		payments := mocks.NewMockIPaymentQueryUseCase(ctrl)
		campaigns := mocks.NewMockICampaignUseCase(ctrl)
		h := NewCampaignDonationHandler(mocks.NewMockIStatsUseCase(ctrl), payments, campaigns)

		campaigns.EXPECT().GetByID(gomock.Any(), "camp-1").Return(entities.Campaign{ID: "camp-1", OwnerID: ownerCarol.ID}, nil).Times(2)
		payments.EXPECT().ListByCampaignID(gomock.Any(), "camp-1").Return([]entities.Payment{
			{ID: "pay-1", DonorID: donorAlice.ID, DonorName: "Alice"},
			{ID: "pay-2", DonorID: donorAlice.ID, DonorName: "Alice", Anonymous: true},
		}, nil)

		donorRouter := newTestRouter(&donorAlice)
		donorRouter.GET("/v1/campaigns/:campaign_id/donations", h.Payments)
		if w := doJSON(t, donorRouter, http.MethodGet, "/v1/campaigns/camp-1/donations", ""); w.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", w.Code)
		}

		ownerRouter := newTestRouter(&ownerCarol)
		ownerRouter.GET("/v1/campaigns/:campaign_id/donations", h.Payments)
		w := doJSON(t, ownerRouter, http.MethodGet, "/v1/campaigns/camp-1/donations", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var listed []response.PaymentResponse
		if err := json.Unmarshal(decodeEnvelope(t, w).Data, &listed); err != nil {
			t.Fatalf("decode payments: %v", err)
		}
		if len(listed) != 2 || listed[0].DonorID != donorAlice.ID {
			t.Fatalf("unexpected payments: %+v", listed)
		}
		if listed[1].DonorID != "" || listed[1].DonorName != "" {
			t.Fatalf("anonymous gift leaked donor identity to the owner: %+v", listed[1])
		}
	})
}
