package service

import (
	"context"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tk-rocha/garcom-api/internal/domain/entity"
	"github.com/tk-rocha/garcom-api/internal/domain/enum"
	"github.com/tk-rocha/garcom-api/internal/domain/repository"
	"github.com/tk-rocha/garcom-api/pkg/apperror"
	"github.com/tk-rocha/garcom-api/pkg/money"
	"github.com/tk-rocha/garcom-api/pkg/pagination"
)

// CheckoutService drives the finalize-and-clear lifecycle: it gates the
// transition, applies payments, obtains the cupom number through the durable
// store and clears the context only after the sale is safely persisted.
type CheckoutService struct {
	registry *RegistryService
	saleRepo repository.SaleRepository
	ledger   *LedgerService
	loyalty  *LoyaltyService
	drawer   *DrawerService
}

// NewCheckoutService creates a new checkout service. loyalty and drawer are
// optional collaborators; pass nil to disable them.
func NewCheckoutService(
	registry *RegistryService,
	saleRepo repository.SaleRepository,
	ledger *LedgerService,
	loyalty *LoyaltyService,
	drawer *DrawerService,
) *CheckoutService {
	return &CheckoutService{
		registry: registry,
		saleRepo: saleRepo,
		ledger:   ledger,
		loyalty:  loyalty,
		drawer:   drawer,
	}
}

// PaymentInput is one tendered payment
type PaymentInput struct {
	Method enum.PaymentMethod
	Amount decimal.Decimal
}

// FinalizeInput carries everything needed to close out a context
type FinalizeInput struct {
	Key            entity.ContextKey
	Payments       []PaymentInput
	DiscardPending bool
	CustomerCPF    *string
	LoyaltyCPF     *string
	Operator       entity.Operator
}

// Finalize converts a context into an immutable sale. Ordering is strict:
// cupom assignment and persistence happen before the context is cleared, so
// a store failure leaves the cart intact for a retry.
func (s *CheckoutService) Finalize(ctx context.Context, input FinalizeInput) (*entity.Sale, error) {
	snapshot := s.registry.Snapshot(input.Key)

	if snapshot.IsEmpty() {
		return nil, apperror.NewFinalizeGateError("Cannot finalize an empty order")
	}
	if input.Key.RequiresKitchenSend() && !snapshot.HasSentItems() {
		return nil, apperror.NewFinalizeGateError("Order has no items sent to the kitchen")
	}

	// Pending items on a table/tab must be explicitly discarded before the
	// sale closes; counter sales are direct and take pending items as-is.
	if input.Key.RequiresKitchenSend() {
		if pending := snapshot.ItemsPending(); len(pending) > 0 {
			if !input.DiscardPending {
				return nil, apperror.NewFinalizeGateError("Order has pending items; discard them or send to kitchen first")
			}
			err := s.registry.Update(ctx, input.Key, EventItemRemoved, func(oc *entity.OrderContext) error {
				for _, item := range pending {
					oc.RemoveItem(item.ProductID)
				}
				return nil
			})
			if err != nil {
				return nil, err
			}
			snapshot = s.registry.Snapshot(input.Key)
		}
	}

	totals := ComputeTotals(snapshot)
	payments, change, err := applyPayments(input.Payments, totals.Total)
	if err != nil {
		return nil, err
	}

	sale := buildSale(snapshot, totals, payments, change, input)
	if err := s.saleRepo.Finalize(ctx, sale); err != nil {
		// The cart is untouched; the operator can retry.
		return nil, apperror.NewPersistenceError("Failed to record sale: " + err.Error())
	}

	if s.loyalty != nil && input.LoyaltyCPF != nil && *input.LoyaltyCPF != "" {
		if err := s.loyalty.Accrue(ctx, *input.LoyaltyCPF, sale.NetAmount); err != nil {
			log.Printf("Warning: loyalty accrual failed for cupom %d: %v", sale.CupomNumber, err)
		}
	}
	if s.drawer != nil {
		if cash := cashReceived(sale); cash.IsPositive() {
			if err := s.drawer.RecordSaleCash(ctx, sale.ID, cash); err != nil {
				log.Printf("Warning: drawer movement failed for cupom %d: %v", sale.CupomNumber, err)
			}
		}
	}

	s.registry.ClearCompletely(ctx, input.Key, sale)
	return sale, nil
}

// applyPayments validates and applies tendered payments against the total.
// Non-cash methods are capped at the remaining balance; cash may exceed it
// and the excess becomes change. The applied amounts must cover the total
// exactly, otherwise the transition is blocked.
func applyPayments(inputs []PaymentInput, total decimal.Decimal) ([]entity.Payment, decimal.Decimal, error) {
	remaining := total
	change := decimal.Zero
	payments := make([]entity.Payment, 0, len(inputs))

	for _, p := range inputs {
		if !p.Amount.IsPositive() {
			return nil, decimal.Zero, apperror.NewValidationError("payment amount must be greater than zero")
		}
		applied := money.Round2(p.Amount)
		paymentChange := decimal.Zero
		if applied.GreaterThan(remaining) {
			if p.Method.AllowsOverpayment() {
				paymentChange = applied.Sub(remaining)
				change = change.Add(paymentChange)
			}
			applied = remaining
		}
		// A payment capped to nothing records no row; any cash excess is
		// already accounted for as change.
		if applied.IsZero() {
			continue
		}
		payments = append(payments, entity.Payment{
			Method:      p.Method,
			Amount:      applied,
			ChangeGiven: paymentChange,
		})
		remaining = remaining.Sub(applied)
	}

	if remaining.IsPositive() {
		return nil, decimal.Zero, apperror.NewFinalizeGateError("Payments do not cover the order total")
	}
	return payments, change, nil
}

func buildSale(snapshot *entity.OrderContext, totals Totals, payments []entity.Payment, change decimal.Decimal, input FinalizeInput) *entity.Sale {
	contextType := "counter"
	switch {
	case input.Key.IsTable():
		contextType = "table"
	case input.Key.IsTab():
		contextType = "tab"
	}

	items := make([]entity.SaleItem, 0, len(snapshot.Items))
	for _, li := range snapshot.Items {
		items = append(items, entity.SaleItem{
			ProductID:     li.ProductID,
			Name:          li.Name,
			UnitPrice:     money.Round2(li.UnitPriceWithExtras()),
			Quantity:      li.Quantity,
			Total:         money.Round2(li.LineTotal()),
			Observation:   li.Observation,
			SentToKitchen: li.SentToKitchen,
		})
	}

	return &entity.Sale{
		CupomNumber:      0, // assigned by the store at persist time
		SaleDate:         time.Now(),
		ContextType:      contextType,
		ContextNumber:    input.Key.Number(),
		GrossAmount:      totals.Subtotal.Add(totals.TaxAmount).Add(totals.ServiceFeeAmount),
		NetAmount:        totals.Total,
		DiscountAmount:   totals.DiscountAmount,
		TaxAmount:        totals.TaxAmount,
		ServiceFeeAmount: totals.ServiceFeeAmount,
		ChangeAmount:     money.Round2(change),
		CustomerCPF:      input.CustomerCPF,
		LoyaltyCPF:       input.LoyaltyCPF,
		OperatorID:       input.Operator.ID,
		OperatorName:     input.Operator.Name,
		Status:           enum.SaleStatusFinalized,
		Items:            items,
		Payments:         payments,
	}
}

func cashReceived(sale *entity.Sale) decimal.Decimal {
	cash := decimal.Zero
	for _, p := range sale.Payments {
		if p.Method == enum.PaymentCash {
			cash = cash.Add(p.Amount)
		}
	}
	return cash
}

// Cancel voids a finalized sale by cupom number. The cupom is never reused;
// the sale flips to cancelled and its net amount leaves the daily ledger
// exactly once.
func (s *CheckoutService) Cancel(ctx context.Context, cupomNumber int64, reason string) error {
	if reason == "" {
		return apperror.NewValidationError("a cancellation reason is required")
	}

	sale, err := s.saleRepo.GetByCupom(ctx, cupomNumber)
	if err != nil {
		return apperror.NewPersistenceError("Failed to load sale: " + err.Error())
	}
	if sale == nil {
		return apperror.NewNotFoundError("Sale")
	}
	if sale.Status == enum.SaleStatusCancelled {
		return apperror.NewConflictError("Sale is already cancelled")
	}

	if err := s.saleRepo.UpdateStatus(ctx, cupomNumber, enum.SaleStatusCancelled, reason); err != nil {
		return apperror.NewPersistenceError("Failed to cancel sale: " + err.Error())
	}

	if err := s.ledger.SubtractCancelled(ctx, sale); err != nil {
		log.Printf("Warning: ledger subtraction failed for cupom %d: %v", cupomNumber, err)
	}
	if s.drawer != nil {
		if cash := cashReceived(sale); cash.IsPositive() {
			if err := s.drawer.RecordReversal(ctx, sale.ID, cash); err != nil {
				log.Printf("Warning: drawer reversal failed for cupom %d: %v", cupomNumber, err)
			}
		}
	}
	return nil
}

// GetSale loads a sale by cupom number
func (s *CheckoutService) GetSale(ctx context.Context, cupomNumber int64) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetByCupom(ctx, cupomNumber)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return sale, nil
}

// ListSales returns a page of sales for a date, cancelled ones included
func (s *CheckoutService) ListSales(ctx context.Context, date string, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Sale], error) {
	if params == nil {
		params = pagination.DefaultPagination()
	}
	params.Validate()

	sales, total, err := s.saleRepo.ListByDate(ctx, date, params)
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(sales, pagination.NewPagination(params.Page, params.PerPage, total)), nil
}
