package settlement_test

import (
	"errors"
	"testing"

	"github.com/SscSPs/produce_settlement_app/internal/apperrors"
	"github.com/SscSPs/produce_settlement_app/internal/core/domain"
	"github.com/SscSPs/produce_settlement_app/internal/core/settlement"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartition_IsCompleteAndDisjoint(t *testing.T) {
	items := []domain.LineItem{
		item("a", "Tomatoes", 10, 20, domain.PaymentUnsettled),
		item("b", "Onions", 5, 30, domain.PaymentSettled),
		item("c", "Chillies", 2, 80, domain.PaymentUnsettled),
		item("d", "Potatoes", 50, 12, domain.PaymentSettled),
	}

	p := settlement.Partition(items)

	assert.Len(t, p.Unsettled, 2)
	assert.Len(t, p.Settled, 2)
	assert.Equal(t, len(items), len(p.Unsettled)+len(p.Settled))

	seen := map[string]int{}
	for _, li := range p.Unsettled {
		assert.Equal(t, domain.PaymentUnsettled, li.PaymentStatus)
		seen[li.LineItemID]++
	}
	for _, li := range p.Settled {
		assert.Equal(t, domain.PaymentSettled, li.PaymentStatus)
		seen[li.LineItemID]++
	}
	for _, li := range items {
		assert.Equal(t, 1, seen[li.LineItemID], "item %s must appear exactly once", li.LineItemID)
	}
	assert.Equal(t, "a", p.Unsettled[0].LineItemID)
	assert.Equal(t, "c", p.Unsettled[1].LineItemID)
}

func TestPartition_Empty(t *testing.T) {
	p := settlement.Partition(nil)
	assert.NotNil(t, p.Unsettled)
	assert.NotNil(t, p.Settled)
	assert.Empty(t, p.Unsettled)
	assert.Empty(t, p.Settled)
}

func TestSumAmount_MatchesQuantityTimesPrice(t *testing.T) {
	items := []domain.LineItem{
		item("a", "Tomatoes", 10, 20, domain.PaymentUnsettled),
		item("b", "Onions", 3, 45, domain.PaymentUnsettled),
	}
	items = append(items, domain.LineItem{
		LineItemID:   "c",
		Quantity:     dec("2.25"),
		PricePerUnit: dec("18.50"),
	})

	expected := decimal.Zero
	for _, li := range items {
		expected = expected.Add(li.Quantity.Mul(li.PricePerUnit).Round(2))
	}

	got := settlement.SumAmount(items)
	assert.True(t, expected.Equal(got), "expected %s got %s", expected, got)
	assert.True(t, dec("376.63").Equal(got), "got %s", got)
	assert.True(t, decimal.Zero.Equal(settlement.SumAmount(nil)))
}

func TestBuildCandidate_SingleItemSettlement(t *testing.T) {
	tomatoes := item("tomatoes", "Tomatoes", 10, 20, domain.PaymentUnsettled)

	candidate := settlement.BuildCandidate("producer-1", []domain.LineItem{tomatoes})

	assert.Equal(t, "producer-1", candidate.ProducerID)
	assert.True(t, dec("200").Equal(candidate.TotalAmount))
	assert.True(t, candidate.TotalAmount.Equal(candidate.UnsettledAmount))
	require.Len(t, candidate.Items, 1)
	assert.NoError(t, settlement.ValidateCandidate(candidate, "https://cdn.example/receipts/r1.jpg"))
}

func TestSelect_PartialSelectionLeavesRemainderUnsettled(t *testing.T) {
	ledger := []domain.LineItem{
		item("i100", "Okra", 10, 10, domain.PaymentUnsettled),
		item("i150", "Beans", 10, 15, domain.PaymentUnsettled),
		item("i250", "Garlic", 10, 25, domain.PaymentUnsettled),
	}
	require.True(t, dec("500").Equal(settlement.SumAmount(ledger)))

	selected, err := settlement.Select(ledger, settlement.Selection{ItemIDs: []string{"i150", "i100"}})
	require.NoError(t, err)
	require.Len(t, selected, 2)
	assert.Equal(t, "i100", selected[0].LineItemID)
	assert.Equal(t, "i150", selected[1].LineItemID)

	candidate := settlement.BuildCandidate("producer-1", selected)
	assert.True(t, dec("250").Equal(candidate.TotalAmount))

	remaining := settlement.SumAmount(ledger).Sub(candidate.TotalAmount)
	assert.True(t, dec("250").Equal(remaining))
}

func TestSelect_All(t *testing.T) {
	ledger := []domain.LineItem{
		item("a", "Okra", 1, 10, domain.PaymentUnsettled),
		item("b", "Beans", 1, 15, domain.PaymentSettled),
		item("c", "Garlic", 1, 25, domain.PaymentUnsettled),
	}
	selected, err := settlement.Select(ledger, settlement.Selection{All: true})
	require.NoError(t, err)
	assert.Len(t, selected, 2)

	_, err = settlement.Select(ledger[1:2], settlement.Selection{All: true})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.ErrorIs(t, err, settlement.ErrEmptySelection)
}

func TestSelect_ReportsFailingItems(t *testing.T) {
	ledger := []domain.LineItem{
		item("a", "Okra", 1, 10, domain.PaymentUnsettled),
		item("b", "Beans", 1, 15, domain.PaymentSettled),
	}

	_, err := settlement.Select(ledger, settlement.Selection{ItemIDs: []string{"a", "missing", "missing"}})
	var itemsErr *apperrors.ItemsError
	require.True(t, errors.As(err, &itemsErr))
	assert.Equal(t, []string{"missing"}, itemsErr.ItemIDs)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = settlement.Select(ledger, settlement.Selection{ItemIDs: []string{"a", "b"}})
	require.True(t, errors.As(err, &itemsErr))
	assert.Equal(t, []string{"b"}, itemsErr.ItemIDs)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.ErrorIs(t, err, settlement.ErrItemAlreadySettled)

	_, err = settlement.Select(ledger, settlement.Selection{})
	assert.ErrorIs(t, err, settlement.ErrEmptySelection)
}

func TestValidateCandidate(t *testing.T) {
	tomatoes := item("a", "Tomatoes", 10, 20, domain.PaymentUnsettled)
	free := item("b", "Samples", 3, 0, domain.PaymentUnsettled)

	tests := []struct {
		name    string
		items   []domain.LineItem
		proof   string
		wantErr error
	}{
		{name: "valid", items: []domain.LineItem{tomatoes}, proof: "receipt.jpg"},
		{name: "missing proof blocks settlement", items: []domain.LineItem{tomatoes}, proof: "", wantErr: settlement.ErrProofRequired},
		{name: "blank proof blocks settlement", items: []domain.LineItem{tomatoes}, proof: "   ", wantErr: settlement.ErrProofRequired},
		{name: "empty selection", items: nil, proof: "receipt.jpg", wantErr: settlement.ErrEmptySelection},
		{name: "zero total", items: []domain.LineItem{free}, proof: "receipt.jpg", wantErr: settlement.ErrNonPositiveAmount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := settlement.ValidateCandidate(settlement.BuildCandidate("producer-1", tt.items), tt.proof)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}

func TestGroupSettledByBatchKey(t *testing.T) {
	batch1 := strPtr("batch-1")
	proofA := strPtr("https://cdn.example/a.jpg")
	items := []domain.LineItem{
		settledWith(item("a", "Okra", 10, 10, ""), batch1, proofA),
		settledWith(item("b", "Beans", 2, 15, ""), nil, strPtr("https://cdn.example/legacy.jpg")),
		settledWith(item("c", "Garlic", 1, 25, ""), batch1, proofA),
		settledWith(item("d", "Leeks", 1, 5, ""), nil, nil),
		item("e", "Unsettled", 1, 5, domain.PaymentUnsettled),
	}

	groups := settlement.GroupSettledByBatchKey(items)

	require.Len(t, groups, 3)
	assert.Equal(t, "batch-1", groups[0].Key)
	assert.Len(t, groups[0].Items, 2)
	assert.True(t, dec("125").Equal(groups[0].Total))
	assert.Equal(t, "https://cdn.example/legacy.jpg", groups[1].Key)
	assert.Equal(t, settlement.NoReceiptKey, groups[2].Key)
	assert.True(t, dec("5").Equal(groups[2].Total))
}
