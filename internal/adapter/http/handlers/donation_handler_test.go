package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	response "donation_platform/internal/adapter/http/dto/response"
	"donation_platform/internal/adapter/http/handlers/mocks"
	"donation_platform/internal/domain/entities"
	"donation_platform/internal/usecase"

	"go.uber.org/mock/gomock"
)

type donationMocks struct {
	intents   *mocks.MockIPaymentIntentUseCase
	confirm   *mocks.MockIPaymentConfirmUseCase
	payments  *mocks.MockIPaymentQueryUseCase
	stats     *mocks.MockIStatsUseCase
	campaigns *mocks.MockICampaignUseCase
}

func newDonationHandler(ctrl *gomock.Controller) (*DonationHandler, donationMocks) {
	m := donationMocks{
		intents:   mocks.NewMockIPaymentIntentUseCase(ctrl),
		confirm:   mocks.NewMockIPaymentConfirmUseCase(ctrl),
		payments:  mocks.NewMockIPaymentQueryUseCase(ctrl),
		stats:     mocks.NewMockIStatsUseCase(ctrl),
		campaigns: mocks.NewMockICampaignUseCase(ctrl),
	}
	return NewDonationHandler(m.intents, m.confirm, m.payments, m.stats, m.campaigns), m
}

func TestDonationHandler_CreateIntent(t *testing.T) {
	t.Run("unauthenticated", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		h, _ := newDonationHandler(ctrl)

		r := newTestRouter(nil)
		r.POST("/v1/donations/intents", h.CreateIntent)

		w := doJSON(t, r, http.MethodPost, "/v1/donations/intents", `{"campaign_id":"camp-1","amount":"10"}`)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("invalid payloads", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		h, _ := newDonationHandler(ctrl)

		r := newTestRouter(&donorAlice)
		r.POST("/v1/donations/intents", h.CreateIntent)

		for _, body := range []string{`{`, `{"amount":"10"}`, `{"campaign_id":"camp-1"}`, `{"campaign_id":"camp-1","amount":true}`} {
			w := doJSON(t, r, http.MethodPost, "/v1/donations/intents", body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("%s: expected 400, got %d", body, w.Code)
			}
		}
	})

	t.Run("usecase validation error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		h, m := newDonationHandler(ctrl)

		r := newTestRouter(&donorAlice)
		r.POST("/v1/donations/intents", h.CreateIntent)

		m.intents.EXPECT().CreateIntent(gomock.Any(), gomock.Any()).Return(usecase.CreateIntentResult{}, usecase.ErrAmountBelowMinimum)

		w := doJSON(t, r, http.MethodPost, "/v1/donations/intents", `{"campaign_id":"camp-1","amount":"0.50"}`)
		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", w.Code)
		}
		if env := decodeEnvelope(t, w); env.Success || env.Error.Code != "INVALID_AMOUNT" {
			t.Fatalf("unexpected envelope: %+v", env)
		}
	})

	t.Run("gateway failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		h, m := newDonationHandler(ctrl)

		r := newTestRouter(&donorAlice)
		r.POST("/v1/donations/intents", h.CreateIntent)

		m.intents.EXPECT().CreateIntent(gomock.Any(), gomock.Any()).Return(usecase.CreateIntentResult{}, &usecase.GatewayError{Op: "create_intent", Err: errors.New("down")})

		w := doJSON(t, r, http.MethodPost, "/v1/donations/intents", `{"campaign_id":"camp-1","amount":10}`)
		if w.Code != http.StatusBadGateway {
			t.Fatalf("expected 502, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		h, m := newDonationHandler(ctrl)

		r := newTestRouter(&donorAlice)
		r.POST("/v1/donations/intents", h.CreateIntent)

		m.intents.EXPECT().CreateIntent(gomock.Any(), gomock.AssignableToTypeOf(usecase.CreateIntentCommand{})).DoAndReturn(
			func(_ context.Context, cmd usecase.CreateIntentCommand) (usecase.CreateIntentResult, error) {
				if cmd.Donor.ID != donorAlice.ID || !cmd.Amount.Equal(money("25.5")) || cmd.Currency != "USD" || !cmd.Anonymous {
					t.Fatalf("unexpected command: %+v", cmd)
				}
				if string(cmd.ProviderPayload) != `{"payment_method":"pm_card_visa"}` {
					t.Fatalf("provider payload not forwarded: %s", cmd.ProviderPayload)
				}
				return usecase.CreateIntentResult{
					Payment:     entities.Payment{ID: "pay-1", IntentID: "pi_1", Amount: cmd.Amount, Status: entities.PaymentStatusPending},
					IntentID:    "pi_1",
					ClientToken: "pi_1_secret",
				}, nil
			},
		)

		w := doJSON(t, r, http.MethodPost, "/v1/donations/intents",
			`{"campaign_id":"camp-1","amount":"25.50","currency":"usd","anonymous":true,"provider_payload":{"payment_method":"pm_card_visa"}}`)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d body=%s", w.Code, w.Body.String())
		}
		env := decodeEnvelope(t, w)
		var data response.IntentResponse
		if err := json.Unmarshal(env.Data, &data); err != nil {
			t.Fatalf("decode data: %v", err)
		}
		if data.IntentID != "pi_1" || data.ClientToken != "pi_1_secret" || data.Payment.Amount != "25.50" {
			t.Fatalf("unexpected data: %+v", data)
		}
	})
}

func TestDonationHandler_ConfirmIntent(t *testing.T) {
	cases := []struct {
		name   string
		result usecase.ConfirmResult
		err    error
		status int
	}{
		{"succeeded", usecase.ConfirmResult{Outcome: entities.IntentOutcomeSucceeded}, nil, http.StatusOK},
		{"ledger pending", usecase.ConfirmResult{Outcome: entities.IntentOutcomeSucceeded, LedgerPending: true}, nil, http.StatusOK},
		{"requires action", usecase.ConfirmResult{Outcome: entities.IntentOutcomeRequiresAction, ContinuationToken: "secret"}, nil, http.StatusAccepted},
		{"declined", usecase.ConfirmResult{Outcome: entities.IntentOutcomeFailed}, nil, http.StatusPaymentRequired},
		{"other donor", usecase.ConfirmResult{}, usecase.ErrNotPaymentDonor, http.StatusForbidden},
		{"unknown intent", usecase.ConfirmResult{}, usecase.ErrPaymentNotFound, http.StatusNotFound},
		{"gateway down", usecase.ConfirmResult{}, &usecase.GatewayError{Op: "confirm_intent", Err: errors.New("timeout")}, http.StatusBadGateway},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			h, m := newDonationHandler(ctrl)

			r := newTestRouter(&donorAlice)
			r.POST("/v1/donations/intents/:intent_id/confirm", h.ConfirmIntent)

			tc.result.Payment = entities.Payment{ID: "pay-1", IntentID: "pi_1"}
			m.confirm.EXPECT().Confirm(gomock.Any(), "pi_1", donorAlice.ID).Return(tc.result, tc.err)

			w := doJSON(t, r, http.MethodPost, "/v1/donations/intents/pi_1/confirm", "")
			if w.Code != tc.status {
				t.Fatalf("expected %d, got %d body=%s", tc.status, w.Code, w.Body.String())
			}
			if tc.status == http.StatusPaymentRequired {
				if env := decodeEnvelope(t, w); env.Success || env.Error.Code != "PAYMENT_DECLINED" || len(env.Data) == 0 {
					t.Fatalf("unexpected declined envelope: %s", w.Body.String())
				}
			}
		})
	}
}

func TestDonationHandler_GetPayment(t *testing.T) {
	p := entities.Payment{ID: "pay-1", CampaignID: "camp-1", DonorID: donorAlice.ID, Amount: money("10")}

	t.Run("donor sees own payment", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		h, m := newDonationHandler(ctrl)

		r := newTestRouter(&donorAlice)
		r.GET("/v1/donations/payments/:payment_id", h.GetPayment)

		m.payments.EXPECT().GetByID(gomock.Any(), "pay-1").Return(p, nil)

		if w := doJSON(t, r, http.MethodGet, "/v1/donations/payments/pay-1", ""); w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("campaign owner allowed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		h, m := newDonationHandler(ctrl)

		r := newTestRouter(&ownerCarol)
		r.GET("/v1/donations/payments/:payment_id", h.GetPayment)

		m.payments.EXPECT().GetByID(gomock.Any(), "pay-1").Return(p, nil)
		m.campaigns.EXPECT().GetByID(gomock.Any(), "camp-1").Return(entities.Campaign{ID: "camp-1", OwnerID: ownerCarol.ID}, nil)

		if w := doJSON(t, r, http.MethodGet, "/v1/donations/payments/pay-1", ""); w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("stranger forbidden", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		h, m := newDonationHandler(ctrl)

		stranger := entities.Actor{ID: "someone", Role: entities.RoleDonor}
		r := newTestRouter(&stranger)
		r.GET("/v1/donations/payments/:payment_id", h.GetPayment)

		m.payments.EXPECT().GetByID(gomock.Any(), "pay-1").Return(p, nil)
		m.campaigns.EXPECT().GetByID(gomock.Any(), "camp-1").Return(entities.Campaign{}, usecase.ErrCampaignNotFound)

		if w := doJSON(t, r, http.MethodGet, "/v1/donations/payments/pay-1", ""); w.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", w.Code)
		}
	})

	t.Run("admin skips ownership lookup", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		h, m := newDonationHandler(ctrl)

		r := newTestRouter(&adminDan)
		r.GET("/v1/donations/payments/:payment_id", h.GetPayment)

		m.payments.EXPECT().GetByID(gomock.Any(), "pay-1").Return(p, nil)

		if w := doJSON(t, r, http.MethodGet, "/v1/donations/payments/pay-1", ""); w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		h, m := newDonationHandler(ctrl)

		r := newTestRouter(&donorAlice)
		r.GET("/v1/donations/payments/:payment_id", h.GetPayment)

		m.payments.EXPECT().GetByID(gomock.Any(), "missing").Return(entities.Payment{}, usecase.ErrPaymentNotFound)

		if w := doJSON(t, r, http.MethodGet, "/v1/donations/payments/missing", ""); w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})
}

func TestDonationHandler_History(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	h, m := newDonationHandler(ctrl)

	r := newTestRouter(&donorAlice)
	r.GET("/v1/donations/history", h.History)
	r.GET("/v1/donations/history/summary", h.HistorySummary)

	m.payments.EXPECT().ListByDonorID(gomock.Any(), donorAlice.ID).Return([]entities.Payment{{ID: "pay-2"}, {ID: "pay-1"}}, nil)
	m.stats.EXPECT().DonorTotals(gomock.Any(), donorAlice.ID).Return(entities.DonorTotals{DonorID: donorAlice.ID, TotalGross: money("35"), NetAmount: money("25"), DonationCount: 2}, nil)

	w := doJSON(t, r, http.MethodGet, "/v1/donations/history", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var list []response.PaymentResponse
	if err := json.Unmarshal(decodeEnvelope(t, w).Data, &list); err != nil || len(list) != 2 || list[0].ID != "pay-2" {
		t.Fatalf("unexpected history: %+v err=%v", list, err)
	}

	w = doJSON(t, r, http.MethodGet, "/v1/donations/history/summary", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var totals response.DonorTotalsResponse
	if err := json.Unmarshal(decodeEnvelope(t, w).Data, &totals); err != nil || totals.NetAmount != "25.00" || totals.DonationCount != 2 {
		t.Fatalf("unexpected totals: %+v err=%v", totals, err)
	}
}
