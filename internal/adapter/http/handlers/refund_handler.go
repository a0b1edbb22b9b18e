package handlers

import (
	"errors"
	"io"
	"log"
	"net/http"

	request "donation_platform/internal/adapter/http/dto/request"
	response "donation_platform/internal/adapter/http/dto/response"
	"donation_platform/internal/usecase"
	"donation_platform/pkg"

	"github.com/gin-gonic/gin"
)

const idempotencyKeyHeader = "Idempotency-Key"

type RefundHandler struct {
	usecase usecase.IRefundUseCase
}

func NewRefundHandler(uc usecase.IRefundUseCase) *RefundHandler {
	return &RefundHandler{usecase: uc}
}

// CreateRefund answers 201 when every write landed and 202 when the gateway refunded
// but part of the local bookkeeping is queued for reconciliation. Clients retry safely
// by resending the same Idempotency-Key header.
func (h *RefundHandler) CreateRefund(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	paymentID := c.Param("payment_id")

	var payload request.RefundRequest
	// An empty body refunds the remaining amount.
	if err := c.ShouldBindJSON(&payload); err != nil && !errors.Is(err, io.EOF) {
		log.Printf("[refund][handler] invalid payload payment_id=%s err=%v", paymentID, err)
		writeError(c, errInvalidRequest)
		return
	}
	amount, err := request.ParseAmount(payload.Amount)
	if err != nil {
		writeError(c, errInvalidAmount)
		return
	}

	result, err := h.usecase.Refund(c.Request.Context(), usecase.RefundCommand{
		PaymentID: paymentID,
		Amount:    amount,
		Reason:    payload.Reason,
		Actor:     actor,

		IdempotencyKey: c.GetHeader(idempotencyKeyHeader),
	})
	if err != nil {
		if errors.Is(err, usecase.ErrReconciliation) && result.Refund.RefundID != "" {
			log.Printf("[CRITICAL][refund][handler] refund accepted by gateway, local write queued payment_id=%s refund_id=%s err=%v", paymentID, result.Refund.RefundID, err)
			c.JSON(http.StatusAccepted, pkg.NewSuccess("Refund accepted; reconciliation pending", response.FromRefundResult(result, actor.ID)))
			return
		}
		writeUsecaseError(c, "refund", err)
		return
	}

	if result.ReconciliationPending {
		c.JSON(http.StatusAccepted, pkg.NewSuccess("Refund accepted; reconciliation pending", response.FromRefundResult(result, actor.ID)))
		return
	}
	c.JSON(http.StatusCreated, pkg.NewSuccess("Refund created", response.FromRefundResult(result, actor.ID)))
}
