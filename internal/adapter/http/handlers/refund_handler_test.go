package handlers

import (
	"context"
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"donation_platform/internal/adapter/http/handlers/mocks"
	"donation_platform/internal/domain/entities"
	"donation_platform/internal/usecase"

	"go.uber.org/mock/gomock"
)

func TestRefundHandler_CreateRefund(t *testing.T) {
	t.Run("invalid amount", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		h := NewRefundHandler(mocks.NewMockIRefundUseCase(ctrl))

		r := newTestRouter(&adminDan)
		r.POST("/v1/donations/payments/:payment_id/refunds", h.CreateRefund)

		for _, body := range []string{`{"amount":"ten"}`, `{"amount":1e20000000}`} {
			w := doJSON(t, r, http.MethodPost, "/v1/donations/payments/pay-1/refunds", body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("%s: expected 400, got %d", body, w.Code)
			}
		}
	})

	t.Run("empty body refunds the remainder", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIRefundUseCase(ctrl)
		h := NewRefundHandler(uc)

		r := newTestRouter(&ownerCarol)
		r.POST("/v1/donations/payments/:payment_id/refunds", h.CreateRefund)

		uc.EXPECT().Refund(gomock.Any(), gomock.AssignableToTypeOf(usecase.RefundCommand{})).DoAndReturn(
			func(_ context.Context, cmd usecase.RefundCommand) (usecase.RefundResult, error) {
				if cmd.Amount != nil || cmd.PaymentID != "pay-1" || cmd.Actor.ID != ownerCarol.ID {
					t.Fatalf("unexpected command: %+v", cmd)
				}
				return usecase.RefundResult{
					Payment: entities.Payment{ID: "pay-1", Status: entities.PaymentStatusRefunded},
					Refund:  entities.RefundRecord{RefundID: "re_1", Amount: money("25")},
				}, nil
			},
		)

		w := doJSON(t, r, http.MethodPost, "/v1/donations/payments/pay-1/refunds", "")
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d body=%s", w.Code, w.Body.String())
		}
	})

	t.Run("partial amount", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIRefundUseCase(ctrl)
		h := NewRefundHandler(uc)

		r := newTestRouter(&adminDan)
		r.POST("/v1/donations/payments/:payment_id/refunds", h.CreateRefund)

		uc.EXPECT().Refund(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, cmd usecase.RefundCommand) (usecase.RefundResult, error) {
				if cmd.Amount == nil || !cmd.Amount.Equal(money("10")) || cmd.Reason != "duplicate" {
					t.Fatalf("unexpected command: %+v", cmd)
				}
				return usecase.RefundResult{Refund: entities.RefundRecord{RefundID: "re_1"}, ReconciliationPending: true}, nil
			},
		)

		w := doJSON(t, r, http.MethodPost, "/v1/donations/payments/pay-1/refunds", `{"amount":10,"reason":"duplicate"}`)
		if w.Code != http.StatusAccepted {
			t.Fatalf("expected 202, got %d", w.Code)
		}
	})

	t.Run("passes the idempotency key header", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIRefundUseCase(ctrl)
		h := NewRefundHandler(uc)

		r := newTestRouter(&adminDan)
		r.POST("/v1/donations/payments/:payment_id/refunds", h.CreateRefund)

		uc.EXPECT().Refund(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, cmd usecase.RefundCommand) (usecase.RefundResult, error) {
				if cmd.IdempotencyKey != "req-42" {
					t.Fatalf("expected header key, got %q", cmd.IdempotencyKey)
				}
				return usecase.RefundResult{Refund: entities.RefundRecord{RefundID: "re_1"}}, nil
			},
		)

		req := httptest.NewRequest(http.MethodPost, "/v1/donations/payments/pay-1/refunds", bytes.NewBufferString(`{"amount":"5"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Idempotency-Key", "req-42")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
	})

	t.Run("reconciliation error after gateway refund", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIRefundUseCase(ctrl)
		h := NewRefundHandler(uc)

		r := newTestRouter(&adminDan)
		r.POST("/v1/donations/payments/:payment_id/refunds", h.CreateRefund)

		uc.EXPECT().Refund(gomock.Any(), gomock.Any()).Return(
			usecase.RefundResult{Refund: entities.RefundRecord{RefundID: "re_2"}, ReconciliationPending: true},
			&usecase.ReconciliationError{Op: "refund_apply", PaymentID: "pay-1", Err: usecase.ErrOverRefund},
		)

		w := doJSON(t, r, http.MethodPost, "/v1/donations/payments/pay-1/refunds", `{"amount":"5"}`)
		if w.Code != http.StatusAccepted {
			t.Fatalf("expected 202, got %d", w.Code)
		}
		if env := decodeEnvelope(t, w); !env.Success {
			t.Fatalf("reconciliation must not surface as failure: %s", w.Body.String())
		}
	})

	t.Run("mapped errors", func(t *testing.T) {
		cases := map[error]int{
			usecase.ErrOverRefund:      http.StatusUnprocessableEntity,
			usecase.ErrRefundForbidden: http.StatusForbidden,
			usecase.ErrPaymentNotFound: http.StatusNotFound,
			&usecase.GatewayError{Op: "create_refund", Err: errors.New("down")}: http.StatusBadGateway,
		}
		for err, status := range cases {
			ctrl := gomock.NewController(t)
			uc := mocks.NewMockIRefundUseCase(ctrl)
			h := NewRefundHandler(uc)

			r := newTestRouter(&adminDan)
			r.POST("/v1/donations/payments/:payment_id/refunds", h.CreateRefund)

			uc.EXPECT().Refund(gomock.Any(), gomock.Any()).Return(usecase.RefundResult{}, err)

			w := doJSON(t, r, http.MethodPost, "/v1/donations/payments/pay-1/refunds", `{"amount":"5"}`)
			if w.Code != status {
				t.Fatalf("%v: expected %d, got %d", err, status, w.Code)
			}
			ctrl.Finish()
		}
	})
}
