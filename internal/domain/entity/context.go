package entity

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tk-rocha/garcom-api/internal/domain/enum"
)

// ObservationMaxLen is the hard limit for a line item observation. Longer
// input is truncated, not rejected.
const ObservationMaxLen = 40

// ContextKey identifies an order-taking scope: the counter, a table or a tab.
// Wire format: "counter", "table:<n>", "tab:<n>".
type ContextKey string

const CounterKey ContextKey = "counter"

// TableKey builds the key for a numbered table
func TableKey(n int) ContextKey {
	return ContextKey(fmt.Sprintf("table:%d", n))
}

// TabKey builds the key for a numbered tab (comanda)
func TabKey(n int) ContextKey {
	return ContextKey(fmt.Sprintf("tab:%d", n))
}

// ParseContextKey normalizes raw input into a ContextKey. Empty input
// defaults to the counter.
func ParseContextKey(raw string) (ContextKey, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == string(CounterKey) {
		return CounterKey, nil
	}
	parts := strings.SplitN(raw, ":", 2)
	if len(parts) != 2 {
		return "", fmt.Errorf("invalid context key %q", raw)
	}
	if parts[0] != "table" && parts[0] != "tab" {
		return "", fmt.Errorf("invalid context key %q", raw)
	}
	n, err := strconv.Atoi(parts[1])
	if err != nil || n < 1 {
		return "", fmt.Errorf("invalid context key %q", raw)
	}
	return ContextKey(parts[0] + ":" + strconv.Itoa(n)), nil
}

// IsTable reports whether the key identifies a table
func (k ContextKey) IsTable() bool {
	return strings.HasPrefix(string(k), "table:")
}

// IsTab reports whether the key identifies a tab
func (k ContextKey) IsTab() bool {
	return strings.HasPrefix(string(k), "tab:")
}

// Number returns the table/tab number, or 0 for the counter
func (k ContextKey) Number() int {
	parts := strings.SplitN(string(k), ":", 2)
	if len(parts) != 2 {
		return 0
	}
	n, _ := strconv.Atoi(parts[1])
	return n
}

// RequiresKitchenSend reports whether finalize is gated on at least one item
// having been sent to the kitchen. Counter sales are direct and exempt.
func (k ContextKey) RequiresKitchenSend() bool {
	return k.IsTable() || k.IsTab()
}

// Operator is the opaque identity supplied by the auth collaborator
type Operator struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Customization is an option applied to a line item, e.g. "extra cheese"
type Customization struct {
	Label      string          `json:"label"`
	OptionName string          `json:"option_name"`
	ExtraPrice decimal.Decimal `json:"extra_price"`
}

// LineItem is one product row in a context's cart. Rows are keyed by
// ProductID: repeat adds accumulate quantity instead of creating duplicates.
type LineItem struct {
	ProductID      uuid.UUID       `json:"product_id"`
	Name           string          `json:"name"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	Quantity       int             `json:"quantity"`
	ImageRef       string          `json:"image_ref,omitempty"`
	SentToKitchen  bool            `json:"sent_to_kitchen"`
	Observation    string          `json:"observation,omitempty"`
	Customizations []Customization `json:"customizations,omitempty"`
	Operator       *Operator       `json:"operator,omitempty"`
	AddedAt        time.Time       `json:"added_at"`
}

// UnitPriceWithExtras returns the unit price plus all customization extras
func (li *LineItem) UnitPriceWithExtras() decimal.Decimal {
	price := li.UnitPrice
	for _, c := range li.Customizations {
		price = price.Add(c.ExtraPrice)
	}
	return price
}

// LineTotal returns the unrounded total for this row
func (li *LineItem) LineTotal() decimal.Decimal {
	return li.UnitPriceWithExtras().Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Adjustment is the shape shared by discount, tax and service fee. RawInput
// and RawInputUnit retain what the operator typed so the value can be
// re-edited later.
type Adjustment struct {
	Kind         enum.AdjustmentKind `json:"kind"`
	Amount       decimal.Decimal     `json:"amount"`
	Name         string              `json:"name,omitempty"`
	RawInput     string              `json:"raw_input,omitempty"`
	RawInputUnit string              `json:"raw_input_unit,omitempty"`
}

// OrderContext owns the cart and adjustments for one order-taking scope.
// A contextKey maps to at most one OrderContext; absence means an empty
// default context.
type OrderContext struct {
	Key        ContextKey  `json:"key"`
	Items      []LineItem  `json:"items"`
	Discount   *Adjustment `json:"discount,omitempty"`
	Tax        *Adjustment `json:"tax,omitempty"`
	ServiceFee *Adjustment `json:"service_fee,omitempty"`
	PartySize  int         `json:"party_size"`
	Reviewed   bool        `json:"reviewed"`
}

// NewOrderContext creates an empty context for the given key
func NewOrderContext(key ContextKey) *OrderContext {
	return &OrderContext{
		Key:       key,
		Items:     []LineItem{},
		PartySize: 1,
	}
}

// FindItem returns the row for productID, or nil
func (oc *OrderContext) FindItem(productID uuid.UUID) *LineItem {
	for i := range oc.Items {
		if oc.Items[i].ProductID == productID {
			return &oc.Items[i]
		}
	}
	return nil
}

// RemoveItem drops the row for productID regardless of sent state
func (oc *OrderContext) RemoveItem(productID uuid.UUID) bool {
	for i := range oc.Items {
		if oc.Items[i].ProductID == productID {
			oc.Items = append(oc.Items[:i], oc.Items[i+1:]...)
			return true
		}
	}
	return false
}

// ItemsSent returns the items already dispatched to the kitchen
func (oc *OrderContext) ItemsSent() []LineItem {
	sent := make([]LineItem, 0, len(oc.Items))
	for _, item := range oc.Items {
		if item.SentToKitchen {
			sent = append(sent, item)
		}
	}
	return sent
}

// ItemsPending returns the items not yet dispatched to the kitchen
func (oc *OrderContext) ItemsPending() []LineItem {
	pending := make([]LineItem, 0, len(oc.Items))
	for _, item := range oc.Items {
		if !item.SentToKitchen {
			pending = append(pending, item)
		}
	}
	return pending
}

// HasSentItems reports whether at least one item was sent to the kitchen
func (oc *OrderContext) HasSentItems() bool {
	for _, item := range oc.Items {
		if item.SentToKitchen {
			return true
		}
	}
	return false
}

// IsEmpty reports whether the cart has no items
func (oc *OrderContext) IsEmpty() bool {
	return len(oc.Items) == 0
}

// Clone returns a deep copy, used for snapshots handed to pricing and
// persistence so callers never observe a half-applied mutation.
func (oc *OrderContext) Clone() *OrderContext {
	cp := *oc
	cp.Items = make([]LineItem, len(oc.Items))
	copy(cp.Items, oc.Items)
	for i := range cp.Items {
		if n := len(oc.Items[i].Customizations); n > 0 {
			cp.Items[i].Customizations = make([]Customization, n)
			copy(cp.Items[i].Customizations, oc.Items[i].Customizations)
		}
		if oc.Items[i].Operator != nil {
			op := *oc.Items[i].Operator
			cp.Items[i].Operator = &op
		}
	}
	if oc.Discount != nil {
		d := *oc.Discount
		cp.Discount = &d
	}
	if oc.Tax != nil {
		t := *oc.Tax
		cp.Tax = &t
	}
	if oc.ServiceFee != nil {
		f := *oc.ServiceFee
		cp.ServiceFee = &f
	}
	return &cp
}
