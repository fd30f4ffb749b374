package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

const DefaultCurrency = "GBP"

type Money struct {
	Amount   decimal.Decimal
	Currency string
}

// NewMoney validates a course price. Free courses (zero) are allowed.
func NewMoney(amount decimal.Decimal, currency string) (Money, error) {
	if amount.IsNegative() {
		return Money{}, NewInvalidAmountError(amount.String())
	}
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		return Money{}, NewMissingRequiredFieldError("currency")
	}
	return Money{Amount: amount.Round(2), Currency: currency}, nil
}

// Value renders the amount with two decimals, the way providers expect it.
func (m Money) Value() string {
	return m.Amount.StringFixed(2)
}

func (m Money) IsZero() bool {
	return m.Amount.IsZero()
}
