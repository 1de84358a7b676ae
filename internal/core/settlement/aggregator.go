// Package settlement holds the pure settlement logic: partitioning a producer's
// line items, building a settlement candidate from a selection, and regrouping
// settled items for history views. Nothing in this package performs I/O.
package settlement

import (
	"errors"
	"fmt"
	"strings"

	"github.com/SscSPs/produce_settlement_app/internal/apperrors"
	"github.com/SscSPs/produce_settlement_app/internal/core/domain"
	"github.com/SscSPs/produce_settlement_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptySelection     = errors.New("no line items selected for settlement")
	ErrNonPositiveAmount  = errors.New("settlement amount must be greater than zero")
	ErrProofRequired      = errors.New("payment proof image is required")
	ErrItemAlreadySettled = errors.New("line item is already settled")
)

// NoReceiptKey groups settled items that carry neither a batch id nor a proof reference.
const NoReceiptKey = "no-receipt"

// Partitioned splits a producer's items by payment status.
type Partitioned struct {
	Unsettled []domain.LineItem
	Settled   []domain.LineItem
}

// Partition splits items into unsettled and settled, keeping input order.
// The two slices are disjoint and together contain every input item.
func Partition(items []domain.LineItem) Partitioned {
	p := Partitioned{
		Unsettled: make([]domain.LineItem, 0, len(items)),
		Settled:   make([]domain.LineItem, 0),
	}
	for _, item := range items {
		if item.IsSettled() {
			p.Settled = append(p.Settled, item)
		} else {
			p.Unsettled = append(p.Unsettled, item)
		}
	}
	return p
}

// SumAmount is the total of quantity times price across items, at currency precision.
func SumAmount(items []domain.LineItem) decimal.Decimal {
	return accounting.SumLineAmounts(items)
}

// ReceiptGroup is a set of settled items paid out under the same receipt.
type ReceiptGroup struct {
	Key           string
	BatchID       *string
	ProofImageRef *string
	Items         []domain.LineItem
	Total         decimal.Decimal
}

func receiptKey(item domain.LineItem) string {
	if item.SettlementBatchID != nil && *item.SettlementBatchID != "" {
		return *item.SettlementBatchID
	}
	if item.ProofImageRef != nil && *item.ProofImageRef != "" {
		return *item.ProofImageRef
	}
	return NoReceiptKey
}

// GroupSettledByBatchKey groups settled items by the receipt they were paid under.
// The key is the settlement batch id when known, else the proof reference,
// else NoReceiptKey. Groups appear in first-seen order.
func GroupSettledByBatchKey(settled []domain.LineItem) []ReceiptGroup {
	groups := make([]ReceiptGroup, 0)
	index := make(map[string]int)
	for _, item := range settled {
		if !item.IsSettled() {
			continue
		}
		key := receiptKey(item)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, ReceiptGroup{
				Key:           key,
				BatchID:       item.SettlementBatchID,
				ProofImageRef: item.ProofImageRef,
				Total:         decimal.Zero,
			})
		}
		groups[i].Items = append(groups[i].Items, item)
		groups[i].Total = groups[i].Total.Add(item.Amount())
	}
	return groups
}

// BuildCandidate proposes a settlement of exactly the selected items.
func BuildCandidate(producerID string, selected []domain.LineItem) domain.SettlementCandidate {
	total := SumAmount(selected)
	return domain.SettlementCandidate{
		ProducerID:      producerID,
		TotalAmount:     total,
		UnsettledAmount: total,
		Items:           selected,
	}
}

// Selection names which unsettled items to settle: one item, an explicit subset, or All.
type Selection struct {
	ItemIDs []string
	All     bool
}

// Select resolves a selection against a producer's ledger.
// Every requested id must exist in items and be unsettled; offending ids are
// reported together in an apperrors.ItemsError. The result keeps ledger order.
func Select(items []domain.LineItem, sel Selection) ([]domain.LineItem, error) {
	if sel.All {
		unsettled := Partition(items).Unsettled
		if len(unsettled) == 0 {
			return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrEmptySelection)
		}
		return unsettled, nil
	}
	if len(sel.ItemIDs) == 0 {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrEmptySelection)
	}

	wanted := make(map[string]bool, len(sel.ItemIDs))
	for _, id := range sel.ItemIDs {
		wanted[id] = true
	}

	selected := make([]domain.LineItem, 0, len(wanted))
	var settled []string
	for _, item := range items {
		if !wanted[item.LineItemID] {
			continue
		}
		delete(wanted, item.LineItemID)
		if item.IsSettled() {
			settled = append(settled, item.LineItemID)
			continue
		}
		selected = append(selected, item)
	}

	if len(wanted) > 0 {
		missing := make([]string, 0, len(wanted))
		for _, id := range sel.ItemIDs {
			if wanted[id] {
				missing = append(missing, id)
				delete(wanted, id)
			}
		}
		return nil, apperrors.NewItemsError("select line items", missing, apperrors.ErrNotFound)
	}
	if len(settled) > 0 {
		return nil, apperrors.NewItemsError("select line items", settled, fmt.Errorf("%w: %w", apperrors.ErrConflict, ErrItemAlreadySettled))
	}
	return selected, nil
}

// ValidateCandidate checks the preconditions for recording a settlement.
// It must pass before anything is written.
func ValidateCandidate(c domain.SettlementCandidate, proofImageRef string) error {
	if len(c.Items) == 0 {
		return fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrEmptySelection)
	}
	if !c.TotalAmount.IsPositive() {
		return fmt.Errorf("%w: %w (got %s)", apperrors.ErrValidation, ErrNonPositiveAmount, c.TotalAmount.StringFixed(domain.CurrencyPlaces))
	}
	if strings.TrimSpace(proofImageRef) == "" {
		return fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrProofRequired)
	}
	return nil
}
