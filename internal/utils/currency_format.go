package utils

import (
	"github.com/SscSPs/produce_settlement_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// FormatAmount formats a money amount with fixed currency precision.
// Example: 200 returns "200.00", 12.345 returns "12.35".
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(domain.CurrencyPlaces)
}
