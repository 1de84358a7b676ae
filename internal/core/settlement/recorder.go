package settlement

import (
	"fmt"

	"github.com/SscSPs/produce_settlement_app/internal/apperrors"
	"github.com/SscSPs/produce_settlement_app/internal/core/domain"
	"github.com/SscSPs/produce_settlement_app/internal/utils/accounting"
)

// AssembleBatch completes a settlement batch from the producer's locked ledger rows.
//
// locked must hold every unsettled item of the producer plus any requested ids
// that were found, as read inside the recording transaction. The returned batch
// carries one snapshot per selected item, SettledAmount equal to their sum and
// TotalAmount equal to the producer's outstanding total before the settlement.
// The returned items are the selected rows, ready to be flipped to settled.
func AssembleBatch(batch domain.SettlementBatch, locked []domain.LineItem, lineItemIDs []string, newID func() string) (domain.SettlementBatch, []domain.LineItem, error) {
	selected, err := Select(locked, Selection{ItemIDs: lineItemIDs})
	if err != nil {
		return domain.SettlementBatch{}, nil, err
	}

	candidate := BuildCandidate(batch.ProducerID, selected)
	if err := ValidateCandidate(candidate, batch.ProofImageRef); err != nil {
		return domain.SettlementBatch{}, nil, err
	}

	if batch.SettlementMethod == "" {
		batch.SettlementMethod = domain.DefaultSettlementMethod
	}
	if batch.SettlementDate.IsZero() {
		batch.SettlementDate = batch.CreatedAt
	}

	snapshots := make([]domain.SettlementSnapshot, len(selected))
	for i, item := range selected {
		snapshots[i] = domain.SnapshotOf(newID(), batch.BatchID, item, batch.CreatedAt)
	}
	batch.Snapshots = snapshots
	batch.ProductCount = len(snapshots)
	batch.SettledAmount = accounting.SumSnapshotTotals(snapshots)
	batch.TotalAmount = SumAmount(Partition(locked).Unsettled)

	if err := accounting.ValidateBatchTotals(batch, snapshots); err != nil {
		return domain.SettlementBatch{}, nil, apperrors.NewAppError(500, "inconsistent settlement batch", fmt.Errorf("%w: %w", apperrors.ErrInternal, err))
	}
	return batch, selected, nil
}
