package interfaces

import (
	"context"

	"donation_platform/internal/domain/entities"
)

// IPaymentGateway abstracts the external payment processor (Stripe, Mercado Pago).
//
// Implementations must honor ctx deadlines; the use cases bound every call with a timeout.
type IPaymentGateway interface {
	Name() string
	CreateIntent(ctx context.Context, req entities.GatewayIntentRequest) (entities.GatewayIntent, error)
	ConfirmIntent(ctx context.Context, intentID string) (entities.GatewayConfirmation, error)
	CreateRefund(ctx context.Context, req entities.GatewayRefundRequest) (entities.GatewayRefund, error)
}
