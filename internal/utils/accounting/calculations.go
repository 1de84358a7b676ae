package accounting

import (
	"fmt"

	"github.com/SscSPs/produce_settlement_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SumLineAmounts adds up the amounts of the given line items.
// Each item amount is already rounded to currency precision, so the sum is too.
// This is used in both services and repositories to ensure consistent totals.
func SumLineAmounts(items []domain.LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Amount())
	}
	return total
}

// SumSnapshotTotals adds up the frozen totals of settlement snapshots.
func SumSnapshotTotals(snapshots []domain.SettlementSnapshot) decimal.Decimal {
	total := decimal.Zero
	for _, s := range snapshots {
		total = total.Add(s.TotalAmount)
	}
	return total
}

// ValidateBatchTotals checks that a batch agrees with its snapshots:
// the settled amount equals the sum of snapshot totals and the product count
// equals the number of snapshots.
func ValidateBatchTotals(batch domain.SettlementBatch, snapshots []domain.SettlementSnapshot) error {
	if len(snapshots) == 0 {
		return fmt.Errorf("settlement batch %s has no snapshots", batch.BatchID)
	}
	if batch.ProductCount != len(snapshots) {
		return fmt.Errorf("settlement batch %s product count is %d but has %d snapshots", batch.BatchID, batch.ProductCount, len(snapshots))
	}

	sum := SumSnapshotTotals(snapshots)
	if !batch.SettledAmount.Equal(sum) {
		return fmt.Errorf("settlement batch %s settled amount is %s but snapshots sum to %s", batch.BatchID, batch.SettledAmount.String(), sum.String())
	}
	if !sum.IsPositive() {
		return fmt.Errorf("settlement batch %s must settle a positive amount", batch.BatchID)
	}
	return nil
}
