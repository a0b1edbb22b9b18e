package usecase

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	maxMessageLength        = 500
	maxReasonLength         = 500
	// Stripe caps idempotency keys at 255 and ours get a "refund-<payment_id>-" prefix.
	maxIdempotencyKeyLength = 200
	maxCASAttempts          = 5
	moneyDecimalPlaces      = 2
)

// PaymentPolicy carries the platform limits and timeouts the donation flow enforces.
type PaymentPolicy struct {
	MinDonation         decimal.Decimal
	MaxDonation         decimal.Decimal
	GatewayTimeout      time.Duration
	LedgerRetryAttempts int
	LedgerRetryBackoff  time.Duration
}

func DefaultPaymentPolicy() PaymentPolicy {
	return PaymentPolicy{
		MinDonation:         decimal.RequireFromString("0.50"),
		MaxDonation:         decimal.RequireFromString("999999.99"),
		GatewayTimeout:      15 * time.Second,
		LedgerRetryAttempts: 3,
		LedgerRetryBackoff:  200 * time.Millisecond,
	}
}

func (p PaymentPolicy) withDefaults() PaymentPolicy {
	def := DefaultPaymentPolicy()
	if p.MinDonation.IsZero() {
		p.MinDonation = def.MinDonation
	}
	if p.MaxDonation.IsZero() {
		p.MaxDonation = def.MaxDonation
	}
	if p.GatewayTimeout <= 0 {
		p.GatewayTimeout = def.GatewayTimeout
	}
	if p.LedgerRetryAttempts <= 0 {
		p.LedgerRetryAttempts = def.LedgerRetryAttempts
	}
	if p.LedgerRetryBackoff < 0 {
		p.LedgerRetryBackoff = 0
	}
	return p
}

const (
	maxMoneyExponent = 12
	minMoneyExponent = -12
	maxMoneyDigits   = 24
)

// moneyShapeOK rejects values whose exponent or coefficient is far outside anything a
// money amount can be. It must run before any Round or comparison, both of which
// rescale to the wider exponent.
func moneyShapeOK(d decimal.Decimal) bool {
	exp := d.Exponent()
	return exp <= maxMoneyExponent && exp >= minMoneyExponent && d.NumDigits() <= maxMoneyDigits
}

func roundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(moneyDecimalPlaces)
}
