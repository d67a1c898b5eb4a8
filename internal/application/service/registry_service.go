package service

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tk-rocha/garcom-api/internal/domain/entity"
	"github.com/tk-rocha/garcom-api/internal/domain/enum"
	"github.com/tk-rocha/garcom-api/internal/domain/repository"
	"github.com/tk-rocha/garcom-api/pkg/apperror"
)

// EventKind classifies a context change notification
type EventKind string

const (
	EventItemAdded        EventKind = "item_added"
	EventItemUpdated      EventKind = "item_updated"
	EventItemRemoved      EventKind = "item_removed"
	EventItemsSent        EventKind = "items_sent"
	EventAdjustmentSet    EventKind = "adjustment_set"
	EventPartySizeChanged EventKind = "party_size_changed"
	EventCleared          EventKind = "cleared"
	EventFinalized        EventKind = "finalized"
)

// ContextEvent is the typed notification delivered to registry subscribers,
// scoped to one context key. Sale is set only for EventFinalized.
type ContextEvent struct {
	Key  entity.ContextKey
	Kind EventKind
	Sale *entity.Sale
	At   time.Time
}

// RegistryService owns the process-wide map from context key to its
// OrderContext. It is the single writer of context state: all cart and
// finalization mutations go through Update so they are atomic with respect
// to each other and are persisted + published as a unit.
//
// Constructed once at process start and passed by reference; there are no
// ambient singletons.
type RegistryService struct {
	mu          sync.Mutex
	contexts    map[entity.ContextKey]*entity.OrderContext
	store       repository.ContextStateRepository
	tableFeePct decimal.Decimal

	subMu       sync.RWMutex
	subscribers map[int]func(ContextEvent)
	nextSubID   int
}

// NewRegistryService creates a new registry. tableFeePct is the service-fee
// percentage auto-applied to new table contexts (commonly 10).
func NewRegistryService(store repository.ContextStateRepository, tableFeePct decimal.Decimal) *RegistryService {
	return &RegistryService{
		contexts:    make(map[entity.ContextKey]*entity.OrderContext),
		store:       store,
		tableFeePct: tableFeePct,
		subscribers: make(map[int]func(ContextEvent)),
	}
}

// Load restores persisted contexts from the durable store. Called once at
// startup, before the HTTP surface is up.
func (s *RegistryService) Load(ctx context.Context) error {
	states, err := s.store.LoadAll(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range states {
		oc, err := states[i].Restore()
		if err != nil {
			log.Printf("Warning: skipping corrupt context snapshot %q: %v", states[i].Key, err)
			continue
		}
		s.contexts[oc.Key] = oc
	}
	return nil
}

// Subscribe registers a callback for context change events. The returned
// function unsubscribes. Callbacks run synchronously on the mutating
// goroutine and must not call back into the registry.
func (s *RegistryService) Subscribe(fn func(ContextEvent)) func() {
	s.subMu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subscribers, id)
		s.subMu.Unlock()
	}
}

func (s *RegistryService) publish(event ContextEvent) {
	event.At = time.Now()
	s.subMu.RLock()
	defer s.subMu.RUnlock()
	for _, fn := range s.subscribers {
		fn(event)
	}
}

// getOrCreate returns the live context for key, materializing the empty
// default on first access. New table contexts get the automatic service fee,
// exactly once, because a cleared context is dropped from the map and
// recreated here. Caller must hold mu.
func (s *RegistryService) getOrCreate(key entity.ContextKey) *entity.OrderContext {
	if oc, ok := s.contexts[key]; ok {
		return oc
	}
	oc := entity.NewOrderContext(key)
	if key.IsTable() && s.tableFeePct.IsPositive() {
		oc.ServiceFee = &entity.Adjustment{
			Kind:   enum.AdjustmentPercentage,
			Amount: s.tableFeePct,
			Name:   "service fee",
		}
	}
	s.contexts[key] = oc
	return oc
}

// Snapshot returns a deep copy of the context for key, creating the empty
// default if absent. It never fails.
func (s *RegistryService) Snapshot(key entity.ContextKey) *entity.OrderContext {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getOrCreate(key).Clone()
}

// ActiveKeys lists the keys of contexts that currently hold any state.
// Used by the floor overview; ordering is not guaranteed.
func (s *RegistryService) ActiveKeys() []entity.ContextKey {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]entity.ContextKey, 0, len(s.contexts))
	for key := range s.contexts {
		keys = append(keys, key)
	}
	return keys
}

// Update applies fn to the context for key under the registry lock. If fn
// returns an error nothing is persisted or published; the context is left
// exactly as fn left it, so fn must only mutate after its validations pass.
func (s *RegistryService) Update(ctx context.Context, key entity.ContextKey, kind EventKind, fn func(*entity.OrderContext) error) error {
	s.mu.Lock()
	oc := s.getOrCreate(key)
	if err := fn(oc); err != nil {
		s.mu.Unlock()
		return err
	}
	s.persistLocked(ctx, oc)
	s.mu.Unlock()

	s.publish(ContextEvent{Key: key, Kind: kind})
	return nil
}

// SetPartySize records the number of people at a table or tab. Party size is
// independent of cart contents and persists with the context.
func (s *RegistryService) SetPartySize(ctx context.Context, key entity.ContextKey, size int) error {
	if size < 1 {
		return apperror.NewValidationError("party size must be at least 1")
	}
	return s.Update(ctx, key, EventPartySizeChanged, func(oc *entity.OrderContext) error {
		oc.PartySize = size
		return nil
	})
}

// SetReviewed flags a table/tab order as reviewed with the customer
func (s *RegistryService) SetReviewed(ctx context.Context, key entity.ContextKey, reviewed bool) error {
	return s.Update(ctx, key, EventItemUpdated, func(oc *entity.OrderContext) error {
		oc.Reviewed = reviewed
		return nil
	})
}

// Clear empties the cart and adjustments for key. For table/tab contexts the
// party size and reviewed flag are reset too, returning the context to its
// default shape (so the automatic table service fee re-applies on next use).
func (s *RegistryService) Clear(ctx context.Context, key entity.ContextKey) {
	s.reset(ctx, key, EventCleared, nil)
}

// ClearCompletely is the post-finalize variant of Clear. It behaves the same
// at the registry level; the distinction is that finalization calls it
// without the "discard pending items" gate the mid-session flow requires.
// The finalized event carries the sale so subscribers can show the total.
func (s *RegistryService) ClearCompletely(ctx context.Context, key entity.ContextKey, sale *entity.Sale) {
	s.reset(ctx, key, EventFinalized, sale)
}

func (s *RegistryService) reset(ctx context.Context, key entity.ContextKey, kind EventKind, sale *entity.Sale) {
	s.mu.Lock()
	oc, ok := s.contexts[key]
	if ok && !key.RequiresKitchenSend() {
		// Counter keeps its party size across clears.
		partySize := oc.PartySize
		fresh := entity.NewOrderContext(key)
		fresh.PartySize = partySize
		s.contexts[key] = fresh
		s.persistLocked(ctx, fresh)
	} else {
		delete(s.contexts, key)
		if err := s.store.Delete(ctx, string(key)); err != nil {
			log.Printf("Warning: failed to delete context snapshot %q: %v", key, err)
		}
	}
	s.mu.Unlock()

	s.publish(ContextEvent{Key: key, Kind: kind, Sale: sale})
}

// persistLocked writes the durable snapshot for oc. Failures are logged, not
// propagated: the in-memory context stays authoritative for the session and
// the next mutation retries the write.
func (s *RegistryService) persistLocked(ctx context.Context, oc *entity.OrderContext) {
	state, err := entity.NewContextState(oc)
	if err != nil {
		log.Printf("Warning: failed to serialize context %q: %v", oc.Key, err)
		return
	}
	if err := s.store.Save(ctx, state); err != nil {
		log.Printf("Warning: failed to persist context %q: %v", oc.Key, err)
	}
}
