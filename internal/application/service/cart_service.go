package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tk-rocha/garcom-api/internal/domain/entity"
	"github.com/tk-rocha/garcom-api/internal/domain/enum"
	"github.com/tk-rocha/garcom-api/pkg/apperror"
)

// CartService implements the per-context cart operations. All mutations run
// through the registry so they are atomic, persisted and published.
type CartService struct {
	registry *RegistryService
	kitchen  KitchenNotifier
}

// NewCartService creates a new cart service
func NewCartService(registry *RegistryService, kitchen KitchenNotifier) *CartService {
	if kitchen == nil {
		kitchen = NoopKitchenNotifier{}
	}
	return &CartService{registry: registry, kitchen: kitchen}
}

// AddItemInput carries the catalog data for an add-to-cart operation
type AddItemInput struct {
	ProductID      uuid.UUID
	Name           string
	UnitPrice      decimal.Decimal
	ImageRef       string
	Customizations []entity.Customization
	Operator       *entity.Operator
}

// AddItem adds one unit of a product to the context's cart. Rows are keyed
// by product id: a repeat add increments the existing quantity. Adding to an
// already-sent row keeps sentToKitchen set — the extra unit is treated as in
// flight too; the kitchen ticket published at send time carried the delta.
func (s *CartService) AddItem(ctx context.Context, key entity.ContextKey, input AddItemInput) error {
	if input.UnitPrice.IsNegative() {
		return apperror.NewValidationError("unit price cannot be negative")
	}
	for _, c := range input.Customizations {
		if c.ExtraPrice.IsNegative() {
			return apperror.NewValidationError("customization price cannot be negative")
		}
	}
	if input.Name == "" {
		return apperror.NewValidationError("product name is required")
	}

	return s.registry.Update(ctx, key, EventItemAdded, func(oc *entity.OrderContext) error {
		if item := oc.FindItem(input.ProductID); item != nil {
			item.Quantity++
			return nil
		}
		oc.Items = append(oc.Items, entity.LineItem{
			ProductID:      input.ProductID,
			Name:           input.Name,
			UnitPrice:      input.UnitPrice,
			Quantity:       1,
			ImageRef:       input.ImageRef,
			Customizations: input.Customizations,
			Operator:       input.Operator,
			AddedAt:        time.Now(),
		})
		return nil
	})
}

// DecrementItem removes one unit of a product; the row is dropped when the
// quantity reaches zero. Sent items cannot be decremented.
func (s *CartService) DecrementItem(ctx context.Context, key entity.ContextKey, productID uuid.UUID) error {
	return s.registry.Update(ctx, key, EventItemUpdated, func(oc *entity.OrderContext) error {
		item := oc.FindItem(productID)
		if item == nil {
			return apperror.NewNotFoundError("Item")
		}
		if item.SentToKitchen {
			return apperror.NewValidationError("items sent to the kitchen cannot be decremented")
		}
		item.Quantity--
		if item.Quantity <= 0 {
			oc.RemoveItem(productID)
		}
		return nil
	})
}

// RemoveItem drops a row unconditionally, regardless of sent state. Used for
// user-initiated deletes of pending items and for the discard-pending flow
// at finalize time.
func (s *CartService) RemoveItem(ctx context.Context, key entity.ContextKey, productID uuid.UUID) error {
	return s.registry.Update(ctx, key, EventItemRemoved, func(oc *entity.OrderContext) error {
		if !oc.RemoveItem(productID) {
			return apperror.NewNotFoundError("Item")
		}
		return nil
	})
}

// SetObservation attaches free text to an item. Observation editing is the
// one mutation allowed on sent items. Text over the limit is truncated, not
// rejected.
func (s *CartService) SetObservation(ctx context.Context, key entity.ContextKey, productID uuid.UUID, text string) error {
	if runes := []rune(text); len(runes) > entity.ObservationMaxLen {
		text = string(runes[:entity.ObservationMaxLen])
	}
	return s.registry.Update(ctx, key, EventItemUpdated, func(oc *entity.OrderContext) error {
		item := oc.FindItem(productID)
		if item == nil {
			return apperror.NewNotFoundError("Item")
		}
		item.Observation = text
		return nil
	})
}

// AdjustmentInput carries an operator-entered discount, tax or service fee
type AdjustmentInput struct {
	Kind         enum.AdjustmentKind
	Amount       decimal.Decimal
	Name         string
	RawInput     string
	RawInputUnit string
}

// SetDiscount validates and stores the context discount. The entry-time
// rules are stricter than the pricing floor: a percentage over 100 or a
// fixed amount at or above the current subtotal is rejected here so a stored
// discount can never swallow the whole sale.
func (s *CartService) SetDiscount(ctx context.Context, key entity.ContextKey, input AdjustmentInput) error {
	if !input.Amount.IsPositive() {
		return apperror.NewValidationError("discount must be greater than zero")
	}
	return s.registry.Update(ctx, key, EventAdjustmentSet, func(oc *entity.OrderContext) error {
		if input.Kind == enum.AdjustmentPercentage {
			if input.Amount.GreaterThan(decimal.NewFromInt(100)) {
				return apperror.NewValidationError("percentage discount cannot exceed 100%")
			}
		} else {
			subtotal := ComputeTotals(oc).Subtotal
			if input.Amount.GreaterThanOrEqual(subtotal) {
				return apperror.NewValidationError("fixed discount must be below the subtotal")
			}
		}
		oc.Discount = &entity.Adjustment{
			Kind:         input.Kind,
			Amount:       input.Amount,
			RawInput:     input.RawInput,
			RawInputUnit: input.RawInputUnit,
		}
		return nil
	})
}

// ClearDiscount removes the context discount
func (s *CartService) ClearDiscount(ctx context.Context, key entity.ContextKey) error {
	return s.registry.Update(ctx, key, EventAdjustmentSet, func(oc *entity.OrderContext) error {
		oc.Discount = nil
		return nil
	})
}

// SetTax stores a named tax adjustment (e.g. "tip", "cover charge")
func (s *CartService) SetTax(ctx context.Context, key entity.ContextKey, input AdjustmentInput) error {
	if input.Amount.IsNegative() {
		return apperror.NewValidationError("tax cannot be negative")
	}
	return s.registry.Update(ctx, key, EventAdjustmentSet, func(oc *entity.OrderContext) error {
		oc.Tax = &entity.Adjustment{
			Kind:         input.Kind,
			Amount:       input.Amount,
			Name:         input.Name,
			RawInput:     input.RawInput,
			RawInputUnit: input.RawInputUnit,
		}
		return nil
	})
}

// SetServiceFee stores the service fee, replacing the automatic table fee
func (s *CartService) SetServiceFee(ctx context.Context, key entity.ContextKey, input AdjustmentInput) error {
	if input.Amount.IsNegative() {
		return apperror.NewValidationError("service fee cannot be negative")
	}
	return s.registry.Update(ctx, key, EventAdjustmentSet, func(oc *entity.OrderContext) error {
		oc.ServiceFee = &entity.Adjustment{
			Kind:         input.Kind,
			Amount:       input.Amount,
			Name:         input.Name,
			RawInput:     input.RawInput,
			RawInputUnit: input.RawInputUnit,
		}
		return nil
	})
}

// MarkAllSentToKitchen flags every current item as dispatched. Idempotent:
// items already sent stay sent. A kitchen ticket with the pending delta is
// published best-effort after the state change.
func (s *CartService) MarkAllSentToKitchen(ctx context.Context, key entity.ContextKey, operator string) error {
	var ticket *Ticket
	err := s.registry.Update(ctx, key, EventItemsSent, func(oc *entity.OrderContext) error {
		pending := oc.ItemsPending()
		for i := range oc.Items {
			oc.Items[i].SentToKitchen = true
		}
		if len(pending) > 0 {
			t := newTicket(oc, pending, operator)
			ticket = &t
		}
		return nil
	})
	if err != nil {
		return err
	}

	if ticket != nil {
		if err := s.kitchen.PublishTicket(ctx, *ticket); err != nil {
			log.Printf("Warning: failed to publish kitchen ticket for %s: %v", key, err)
		}
	}
	return nil
}

// ItemsSent returns the items already dispatched to the kitchen
func (s *CartService) ItemsSent(key entity.ContextKey) []entity.LineItem {
	return s.registry.Snapshot(key).ItemsSent()
}

// ItemsPending returns the items not yet dispatched
func (s *CartService) ItemsPending(key entity.ContextKey) []entity.LineItem {
	return s.registry.Snapshot(key).ItemsPending()
}

// HasSentItems reports whether the context has at least one sent item
func (s *CartService) HasSentItems(key entity.ContextKey) bool {
	return s.registry.Snapshot(key).HasSentItems()
}

// Totals computes the derived totals for the context's current state
func (s *CartService) Totals(key entity.ContextKey) Totals {
	return ComputeTotals(s.registry.Snapshot(key))
}
