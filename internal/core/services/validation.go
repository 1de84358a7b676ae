package services

import (
	"fmt"

	"github.com/SscSPs/produce_settlement_app/internal/apperrors"
	"github.com/SscSPs/produce_settlement_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// validateLineValues checks the numeric invariants of a line item.
func validateLineValues(quantity, pricePerUnit decimal.Decimal, unit domain.Unit) error {
	if !quantity.IsPositive() {
		return fmt.Errorf("%w: quantity must be greater than zero", apperrors.ErrValidation)
	}
	if !quantity.Equal(quantity.Truncate(domain.QuantityPlaces)) {
		return fmt.Errorf("%w: quantity %s has more than %d decimal places", apperrors.ErrValidation, quantity, domain.QuantityPlaces)
	}
	if pricePerUnit.IsNegative() {
		return fmt.Errorf("%w: price per unit cannot be negative", apperrors.ErrValidation)
	}
	if !unit.IsValid() {
		return fmt.Errorf("%w: unknown unit %q", apperrors.ErrValidation, unit)
	}
	return nil
}
