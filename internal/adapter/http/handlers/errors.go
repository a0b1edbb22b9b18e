package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"donation_platform/internal/adapter/http/middleware"
	"donation_platform/internal/domain/entities"
	"donation_platform/internal/usecase"
	"donation_platform/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidRequest = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	errInvalidAmount  = pkg.NewDomainErrorSimple("INVALID_AMOUNT", "Amount must be a decimal number", http.StatusBadRequest)
	errUnauthorized   = pkg.NewDomainErrorSimple("UNAUTHORIZED", "Authentication required", http.StatusUnauthorized)
	errForbidden      = pkg.NewDomainErrorSimple("FORBIDDEN", "Not allowed to access this resource", http.StatusForbidden)
	errDeclined       = pkg.NewDomainErrorSimple("PAYMENT_DECLINED", "Payment was declined", http.StatusPaymentRequired)
)

// mapUsecaseError turns usecase error categories into the API error envelope.
// Reconciliation is checked first: a reconciliation error may also wrap a validation error.
func mapUsecaseError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrReconciliation):
		return pkg.NewDomainError("RECONCILIATION_PENDING", "Operation accepted by the payment gateway; local records are being reconciled", err, http.StatusInternalServerError)

	case errors.Is(err, usecase.ErrAmountBelowMinimum), errors.Is(err, usecase.ErrAmountAboveMaximum), errors.Is(err, usecase.ErrInvalidAmount):
		return pkg.NewDomainError("INVALID_AMOUNT", "Donation amount is outside the accepted range", err, http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrCurrencyMismatch):
		return pkg.NewDomainError("CURRENCY_MISMATCH", "Currency does not match the campaign currency", err, http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrCampaignNotDonatable):
		return pkg.NewDomainError("CAMPAIGN_NOT_DONATABLE", "Campaign does not accept donations", err, http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrOverRefund), errors.Is(err, usecase.ErrInvalidRefundAmount):
		return pkg.NewDomainError("INVALID_REFUND_AMOUNT", "Refund amount exceeds the remaining refundable amount", err, http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrRefundNotAllowed), errors.Is(err, usecase.ErrDonationNotRecorded):
		return pkg.NewDomainError("REFUND_NOT_ALLOWED", "Payment cannot be refunded", err, http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrInvalidTransition):
		return pkg.NewDomainError("INVALID_TRANSITION", "Invalid status transition", err, http.StatusConflict)
	case errors.Is(err, usecase.ErrValidation):
		return pkg.NewDomainError("INVALID_REQUEST", "Invalid request", err, http.StatusBadRequest)

	case errors.Is(err, usecase.ErrAuthorization):
		return pkg.NewDomainError("FORBIDDEN", "Not allowed to perform this operation", err, http.StatusForbidden)

	case errors.Is(err, usecase.ErrPaymentNotFound):
		return pkg.NewDomainError("PAYMENT_NOT_FOUND", "Payment not found", err, http.StatusNotFound)
	case errors.Is(err, usecase.ErrCampaignNotFound):
		return pkg.NewDomainError("CAMPAIGN_NOT_FOUND", "Campaign not found", err, http.StatusNotFound)
	case errors.Is(err, usecase.ErrNotFound):
		return pkg.NewDomainError("NOT_FOUND", "Resource not found", err, http.StatusNotFound)

	case errors.Is(err, usecase.ErrIdempotencyKeyReused):
		return pkg.NewDomainError("IDEMPOTENCY_KEY_REUSED", "Idempotency key was already used for a different refund", err, http.StatusConflict)
	case errors.Is(err, usecase.ErrCampaignAlreadyExists):
		return pkg.NewDomainError("CAMPAIGN_ALREADY_EXISTS", "Campaign already exists", err, http.StatusConflict)
	case errors.Is(err, usecase.ErrConflict):
		return pkg.NewDomainError("CONFLICT", "Resource was modified concurrently, retry", err, http.StatusConflict)

	case errors.Is(err, usecase.ErrGateway):
		return pkg.NewDomainError("PAYMENT_GATEWAY_ERROR", "Payment gateway unavailable", err, http.StatusBadGateway)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}

func writeError(c *gin.Context, appErr *pkg.AppError) {
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

func writeUsecaseError(c *gin.Context, tag string, err error) {
	appErr := mapUsecaseError(err)
	log.Printf("[%s][handler] failed status=%d code=%s err=%v", tag, appErr.HTTPStatus, appErr.Code, err)
	writeError(c, appErr)
}

// requireActor writes 401 and returns false when the auth middleware did not run.
func requireActor(c *gin.Context) (entities.Actor, bool) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		writeError(c, errUnauthorized)
		return entities.Actor{}, false
	}
	return actor, true
}

func queryLimit(c *gin.Context) int {
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil || limit < 0 {
		return 0
	}
	return limit
}
