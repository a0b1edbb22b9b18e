package payments

import (
	"fmt"

	"donation_platform/internal/usecase/interfaces"
)

// NewGateway picks the adapter by name: stripe, mercadopago or mock.
// On error the returned interface is nil, never a typed nil pointer.
func NewGateway(name, stripeSecretKey, mercadoPagoAccessToken string) (interfaces.IPaymentGateway, error) {
	switch name {
	case "stripe":
		g, err := NewStripeGateway(stripeSecretKey)
		if err != nil {
			return nil, err
		}
		return g, nil
	case "mercadopago":
		g, err := NewMercadoPagoGateway(mercadoPagoAccessToken)
		if err != nil {
			return nil, err
		}
		return g, nil
	case "mock":
		return NewMockGateway(), nil
	default:
		return nil, fmt.Errorf("unknown payment gateway %q", name)
	}
}
