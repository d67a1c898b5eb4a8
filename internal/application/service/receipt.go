package service

import (
	"fmt"

	"github.com/tk-rocha/garcom-api/internal/domain/entity"
	"github.com/tk-rocha/garcom-api/internal/domain/enum"
	"github.com/tk-rocha/garcom-api/pkg/money"
)

// BuildReceipt composes a customer-facing receipt from a finalized sale.
// Amounts are formatted in BRL; nothing here touches the database.
func BuildReceipt(header entity.ReceiptHeader, sale *entity.Sale) *entity.Receipt {
	items := make([]entity.ReceiptItem, 0, len(sale.Items))
	for _, item := range sale.Items {
		items = append(items, entity.ReceiptItem{
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: money.FormatBRL(item.UnitPrice),
			Total:     money.FormatBRL(item.Total),
		})
	}

	payments := make([]entity.ReceiptPayment, 0, len(sale.Payments))
	for _, p := range sale.Payments {
		rp := entity.ReceiptPayment{
			Method: p.Method.String(),
			Amount: money.FormatBRL(p.Amount),
		}
		if p.ChangeGiven.IsPositive() {
			rp.Change = money.FormatBRL(p.ChangeGiven)
		}
		payments = append(payments, rp)
	}

	contextLabel := sale.ContextType
	if sale.ContextNumber > 0 {
		contextLabel = fmt.Sprintf("%s:%d", sale.ContextType, sale.ContextNumber)
	}

	receipt := &entity.Receipt{
		Header:      header,
		CupomNumber: sale.CupomNumber,
		Date:        sale.SaleDate.Format("02/01/2006"),
		Context:     contextLabel,
		Operator:    sale.OperatorName,
		Items:       items,
		SubTotal:    money.FormatBRL(sale.GrossAmount.Sub(sale.TaxAmount).Sub(sale.ServiceFeeAmount)),
		Total:       money.FormatBRL(sale.NetAmount),
		Payments:    payments,
		Cancelled:   sale.Status == enum.SaleStatusCancelled,
	}
	if sale.CustomerCPF != nil {
		receipt.CustomerCPF = *sale.CustomerCPF
	}
	if sale.DiscountAmount.IsPositive() {
		receipt.Discount = money.FormatBRL(sale.DiscountAmount)
	}
	if sale.TaxAmount.IsPositive() {
		receipt.Tax = money.FormatBRL(sale.TaxAmount)
	}
	if sale.ServiceFeeAmount.IsPositive() {
		receipt.ServiceFee = money.FormatBRL(sale.ServiceFeeAmount)
	}
	if sale.ChangeAmount.IsPositive() {
		receipt.Change = money.FormatBRL(sale.ChangeAmount)
	}
	return receipt
}
