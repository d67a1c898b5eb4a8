package service

import (
	"context"
	"time"

	"github.com/tk-rocha/garcom-api/internal/domain/entity"
)

// TicketItem is one line on a kitchen ticket
type TicketItem struct {
	Name        string `json:"name"`
	Quantity    int    `json:"quantity"`
	Observation string `json:"observation,omitempty"`
}

// Ticket carries the newly sent items of one context to the kitchen. Only
// the pending delta is included; items already in flight are not repeated.
type Ticket struct {
	ContextKey string       `json:"context_key"`
	PartySize  int          `json:"party_size"`
	Items      []TicketItem `json:"items"`
	Operator   string       `json:"operator,omitempty"`
	SentAt     time.Time    `json:"sent_at"`
}

// KitchenNotifier publishes kitchen tickets. Publishing is best-effort: a
// failed publish never blocks the send-to-kitchen state change.
type KitchenNotifier interface {
	PublishTicket(ctx context.Context, ticket Ticket) error
}

// NoopKitchenNotifier discards tickets, used when no broker is configured
type NoopKitchenNotifier struct{}

func (NoopKitchenNotifier) PublishTicket(ctx context.Context, ticket Ticket) error {
	return nil
}

func newTicket(oc *entity.OrderContext, pending []entity.LineItem, operator string) Ticket {
	items := make([]TicketItem, 0, len(pending))
	for _, li := range pending {
		items = append(items, TicketItem{
			Name:        li.Name,
			Quantity:    li.Quantity,
			Observation: li.Observation,
		})
	}
	return Ticket{
		ContextKey: string(oc.Key),
		PartySize:  oc.PartySize,
		Items:      items,
		Operator:   operator,
		SentAt:     time.Now(),
	}
}
