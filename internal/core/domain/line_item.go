package domain

import (
	"github.com/shopspring/decimal"
)

// PaymentStatus is the settlement state of a line item.
type PaymentStatus string

const (
	PaymentUnsettled PaymentStatus = "unsettled"
	PaymentSettled   PaymentStatus = "settled"
)

// IsValid reports whether the status is one of the known values.
func (s PaymentStatus) IsValid() bool {
	return s == PaymentUnsettled || s == PaymentSettled
}

// Unit is the unit of measure of a line item quantity.
type Unit string

const (
	UnitKilogram   Unit = "kg"
	UnitGram       Unit = "g"
	UnitLitre      Unit = "l"
	UnitMillilitre Unit = "ml"
	UnitPiece      Unit = "pcs"
	UnitBox        Unit = "box"
	UnitQuintal    Unit = "quintal"
)

var validUnits = map[Unit]struct{}{
	UnitKilogram:   {},
	UnitGram:       {},
	UnitLitre:      {},
	UnitMillilitre: {},
	UnitPiece:      {},
	UnitBox:        {},
	UnitQuintal:    {},
}

// IsValid reports whether the unit is one of the supported units.
func (u Unit) IsValid() bool {
	_, ok := validUnits[u]
	return ok
}

// CurrencyPlaces is the number of decimal places money is rounded to.
const CurrencyPlaces int32 = 2

// QuantityPlaces is the most decimal places a quantity may carry.
const QuantityPlaces int32 = 3

// LineItem is one product entry supplied by a producer. It carries a payment
// obligation until a settlement flips it to PaymentSettled.
type LineItem struct {
	LineItemID        string          `json:"lineItemID"`
	ProducerID        string          `json:"producerID"`
	Name              string          `json:"name"`
	Category          string          `json:"category"`
	Quantity          decimal.Decimal `json:"quantity"`
	Unit              Unit            `json:"unit"`
	PricePerUnit      decimal.Decimal `json:"pricePerUnit"`
	PaymentStatus     PaymentStatus   `json:"paymentStatus"`
	ProofImageRef     *string         `json:"proofImageRef,omitempty"`
	SettlementBatchID *string         `json:"settlementBatchID,omitempty"`
	AuditFields
}

// Amount is quantity times price per unit, rounded to currency precision.
// It is derived on every call and never stored.
func (li LineItem) Amount() decimal.Decimal {
	return li.Quantity.Mul(li.PricePerUnit).Round(CurrencyPlaces)
}

// IsSettled reports whether the item has been paid out.
func (li LineItem) IsSettled() bool {
	return li.PaymentStatus == PaymentSettled
}
