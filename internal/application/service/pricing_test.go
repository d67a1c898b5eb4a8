package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tk-rocha/garcom-api/internal/domain/entity"
	"github.com/tk-rocha/garcom-api/internal/domain/enum"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func lineItem(price string, qty int) entity.LineItem {
	return entity.LineItem{
		ProductID: uuid.New(),
		Name:      "item",
		UnitPrice: d(price),
		Quantity:  qty,
	}
}

func TestComputeTotals_Subtotal(t *testing.T) {
	tests := []struct {
		name  string
		items []entity.LineItem
		want  string
	}{
		{"empty cart", nil, "0.00"},
		{"single item", []entity.LineItem{lineItem("10.00", 1)}, "10.00"},
		{"quantity multiplies", []entity.LineItem{lineItem("10.00", 3)}, "30.00"},
		{"multiple rows", []entity.LineItem{lineItem("10.00", 2), lineItem("4.50", 1)}, "24.50"},
		{"rounds half up once at the end", []entity.LineItem{lineItem("3.335", 1)}, "3.34"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oc := entity.NewOrderContext(entity.CounterKey)
			oc.Items = tt.items

			got := ComputeTotals(oc)
			if got.Subtotal.StringFixed(2) != tt.want {
				t.Errorf("Subtotal = %s, want %s", got.Subtotal.StringFixed(2), tt.want)
			}
			if got.Total.StringFixed(2) != tt.want {
				t.Errorf("Total = %s, want %s", got.Total.StringFixed(2), tt.want)
			}
		})
	}
}

func TestComputeTotals_CustomizationExtras(t *testing.T) {
	oc := entity.NewOrderContext(entity.CounterKey)
	item := lineItem("20.00", 2)
	item.Customizations = []entity.Customization{
		{Label: "extra cheese", ExtraPrice: d("3.00")},
		{Label: "no onion", ExtraPrice: decimal.Zero},
	}
	oc.Items = []entity.LineItem{item}

	got := ComputeTotals(oc)
	if got.Subtotal.StringFixed(2) != "46.00" {
		t.Errorf("Subtotal = %s, want 46.00", got.Subtotal.StringFixed(2))
	}
}

func TestComputeTotals_PercentageDiscountTracksSubtotal(t *testing.T) {
	oc := entity.NewOrderContext(entity.CounterKey)
	oc.Items = []entity.LineItem{lineItem("50.00", 1)}
	oc.Discount = &entity.Adjustment{Kind: enum.AdjustmentPercentage, Amount: d("10")}

	got := ComputeTotals(oc)
	if got.DiscountAmount.StringFixed(2) != "5.00" {
		t.Errorf("DiscountAmount = %s, want 5.00", got.DiscountAmount.StringFixed(2))
	}

	// Same stored discount, bigger cart: the percentage rescales.
	oc.Items = append(oc.Items, lineItem("50.00", 1))
	got = ComputeTotals(oc)
	if got.DiscountAmount.StringFixed(2) != "10.00" {
		t.Errorf("DiscountAmount after growth = %s, want 10.00", got.DiscountAmount.StringFixed(2))
	}
}

func TestComputeTotals_FixedDiscountCappedAtSubtotal(t *testing.T) {
	oc := entity.NewOrderContext(entity.CounterKey)
	oc.Items = []entity.LineItem{lineItem("8.00", 1)}
	oc.Discount = &entity.Adjustment{Kind: enum.AdjustmentFixed, Amount: d("20.00")}

	got := ComputeTotals(oc)
	if got.DiscountAmount.StringFixed(2) != "8.00" {
		t.Errorf("DiscountAmount = %s, want 8.00", got.DiscountAmount.StringFixed(2))
	}
	if got.Total.StringFixed(2) != "0.00" {
		t.Errorf("Total = %s, want 0.00", got.Total.StringFixed(2))
	}
}

func TestComputeTotals_TotalNeverNegative(t *testing.T) {
	// A fixed discount together with zero-amount adjustments cannot push the
	// total below zero.
	oc := entity.NewOrderContext(entity.TableKey(1))
	oc.Items = []entity.LineItem{lineItem("5.00", 1)}
	oc.Discount = &entity.Adjustment{Kind: enum.AdjustmentFixed, Amount: d("5.00")}

	got := ComputeTotals(oc)
	if got.Total.IsNegative() {
		t.Errorf("Total = %s, want >= 0", got.Total)
	}
}

func TestComputeTotals_ServiceFeeAndFixedDiscount(t *testing.T) {
	// Table order: 2x 10.00, automatic 10% service fee, 5.00 fixed discount.
	oc := entity.NewOrderContext(entity.TableKey(5))
	oc.Items = []entity.LineItem{lineItem("10.00", 2)}
	oc.ServiceFee = &entity.Adjustment{Kind: enum.AdjustmentPercentage, Amount: d("10")}
	oc.Discount = &entity.Adjustment{Kind: enum.AdjustmentFixed, Amount: d("5.00")}

	got := ComputeTotals(oc)
	if got.Subtotal.StringFixed(2) != "20.00" {
		t.Errorf("Subtotal = %s, want 20.00", got.Subtotal.StringFixed(2))
	}
	if got.ServiceFeeAmount.StringFixed(2) != "2.00" {
		t.Errorf("ServiceFeeAmount = %s, want 2.00", got.ServiceFeeAmount.StringFixed(2))
	}
	if got.Total.StringFixed(2) != "17.00" {
		t.Errorf("Total = %s, want 17.00", got.Total.StringFixed(2))
	}
}

func TestComputeTotals_TaxAdjustment(t *testing.T) {
	oc := entity.NewOrderContext(entity.CounterKey)
	oc.Items = []entity.LineItem{lineItem("100.00", 1)}
	oc.Tax = &entity.Adjustment{Kind: enum.AdjustmentFixed, Amount: d("2.50"), Name: "cover charge"}

	got := ComputeTotals(oc)
	if got.TaxAmount.StringFixed(2) != "2.50" {
		t.Errorf("TaxAmount = %s, want 2.50", got.TaxAmount.StringFixed(2))
	}
	if got.Total.StringFixed(2) != "102.50" {
		t.Errorf("Total = %s, want 102.50", got.Total.StringFixed(2))
	}
}

func TestComputeTotals_InsertionOrderIrrelevant(t *testing.T) {
	items := []entity.LineItem{
		lineItem("9.99", 3),
		lineItem("0.05", 7),
		lineItem("123.45", 1),
		lineItem("3.335", 2),
	}

	forward := entity.NewOrderContext(entity.CounterKey)
	forward.Items = items
	forward.Discount = &entity.Adjustment{Kind: enum.AdjustmentPercentage, Amount: d("7.5")}

	reversed := entity.NewOrderContext(entity.CounterKey)
	for i := len(items) - 1; i >= 0; i-- {
		reversed.Items = append(reversed.Items, items[i])
	}
	reversed.Discount = forward.Discount

	a, b := ComputeTotals(forward), ComputeTotals(reversed)
	if !a.Total.Equal(b.Total) {
		t.Errorf("total depends on insertion order: %s vs %s", a.Total, b.Total)
	}
	if !a.DiscountAmount.Equal(b.DiscountAmount) {
		t.Errorf("discount depends on insertion order: %s vs %s", a.DiscountAmount, b.DiscountAmount)
	}
}

func TestComputeTotals_DoesNotMutateContext(t *testing.T) {
	oc := entity.NewOrderContext(entity.CounterKey)
	oc.Items = []entity.LineItem{lineItem("9.99", 3)}
	oc.Discount = &entity.Adjustment{Kind: enum.AdjustmentPercentage, Amount: d("15")}

	first := ComputeTotals(oc)
	second := ComputeTotals(oc)
	if !first.Total.Equal(second.Total) {
		t.Errorf("repeated calls diverge: %s vs %s", first.Total, second.Total)
	}
	if oc.Discount.Amount.StringFixed(2) != "15.00" {
		t.Errorf("stored discount mutated: %s", oc.Discount.Amount)
	}
}
