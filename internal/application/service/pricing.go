package service

import (
	"github.com/shopspring/decimal"
	"github.com/tk-rocha/garcom-api/internal/domain/entity"
	"github.com/tk-rocha/garcom-api/internal/domain/enum"
	"github.com/tk-rocha/garcom-api/pkg/money"
)

// Totals holds the derived monetary values for a context snapshot. All
// fields are rounded to 2 decimal places, half-up.
type Totals struct {
	Subtotal         decimal.Decimal `json:"subtotal"`
	DiscountAmount   decimal.Decimal `json:"discount_amount"`
	TaxAmount        decimal.Decimal `json:"tax_amount"`
	ServiceFeeAmount decimal.Decimal `json:"service_fee_amount"`
	Total            decimal.Decimal `json:"total"`
}

// ComputeTotals derives totals from a context snapshot. It never mutates the
// context and stores nothing: discount, tax and service fee are re-derived
// from the live subtotal on every call, so subtotal changes after an
// adjustment was entered still rescale percentage adjustments.
//
// Pending (unsent) items count toward the subtotal; the sent/pending split
// only matters for the finalize gate.
func ComputeTotals(oc *entity.OrderContext) Totals {
	// Accumulate unrounded, round once at the end.
	subtotal := decimal.Zero
	for i := range oc.Items {
		subtotal = subtotal.Add(oc.Items[i].LineTotal())
	}

	discount := adjustmentAmount(oc.Discount, subtotal, true)
	tax := adjustmentAmount(oc.Tax, subtotal, false)
	serviceFee := adjustmentAmount(oc.ServiceFee, subtotal, false)

	roundedSubtotal := money.Round2(subtotal)
	total := money.FloorZero(roundedSubtotal.Add(tax).Add(serviceFee).Sub(discount))

	return Totals{
		Subtotal:         roundedSubtotal,
		DiscountAmount:   discount,
		TaxAmount:        tax,
		ServiceFeeAmount: serviceFee,
		Total:            total,
	}
}

// adjustmentAmount computes the monetary value of one adjustment against the
// raw subtotal. Fixed discounts are capped at the subtotal so the discount
// alone can never drive the total negative; the entry-time boundary enforces
// the stricter input rules.
func adjustmentAmount(adj *entity.Adjustment, subtotal decimal.Decimal, capAtSubtotal bool) decimal.Decimal {
	if adj == nil {
		return decimal.Zero
	}
	if adj.Kind == enum.AdjustmentPercentage {
		return money.Round2(money.Percent(subtotal, adj.Amount))
	}
	amount := money.Round2(adj.Amount)
	if capAtSubtotal {
		return money.Min(amount, money.Round2(subtotal))
	}
	return amount
}
