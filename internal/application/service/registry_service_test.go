package service

import (
	"context"
	"testing"

	"github.com/tk-rocha/garcom-api/internal/domain/entity"
	"github.com/tk-rocha/garcom-api/internal/domain/enum"
)

func TestRegistryService_DefaultContext(t *testing.T) {
	registry, _ := newTestRegistry()

	snapshot := registry.Snapshot(entity.CounterKey)
	if !snapshot.IsEmpty() {
		t.Errorf("expected empty default context, got %d items", len(snapshot.Items))
	}
	if snapshot.PartySize != 1 {
		t.Errorf("PartySize = %d, want 1", snapshot.PartySize)
	}
	if snapshot.ServiceFee != nil {
		t.Error("counter context should not carry a service fee")
	}
}

func TestRegistryService_TableGetsAutomaticServiceFee(t *testing.T) {
	registry, _ := newTestRegistry()

	snapshot := registry.Snapshot(entity.TableKey(3))
	if snapshot.ServiceFee == nil {
		t.Fatal("new table context should carry the automatic service fee")
	}
	if snapshot.ServiceFee.Kind != enum.AdjustmentPercentage {
		t.Errorf("fee kind = %v, want percentage", snapshot.ServiceFee.Kind)
	}
	if snapshot.ServiceFee.Amount.StringFixed(2) != "10.00" {
		t.Errorf("fee amount = %s, want 10.00", snapshot.ServiceFee.Amount.StringFixed(2))
	}

	// Tabs don't get the fee.
	if registry.Snapshot(entity.TabKey(7)).ServiceFee != nil {
		t.Error("tab context should not carry the automatic service fee")
	}
}

func TestRegistryService_ClearSemantics(t *testing.T) {
	ctx := context.Background()
	registry, store := newTestRegistry()

	t.Run("counter keeps party size", func(t *testing.T) {
		if err := registry.SetPartySize(ctx, entity.CounterKey, 4); err != nil {
			t.Fatalf("SetPartySize: %v", err)
		}
		registry.Clear(ctx, entity.CounterKey)

		snapshot := registry.Snapshot(entity.CounterKey)
		if !snapshot.IsEmpty() {
			t.Error("counter not emptied")
		}
		if snapshot.PartySize != 4 {
			t.Errorf("PartySize = %d, want 4 after clear", snapshot.PartySize)
		}
	})

	t.Run("table is dropped and fee reapplies", func(t *testing.T) {
		key := entity.TableKey(2)
		if err := registry.SetPartySize(ctx, key, 6); err != nil {
			t.Fatalf("SetPartySize: %v", err)
		}
		// Replace the automatic fee, then clear.
		err := registry.Update(ctx, key, EventAdjustmentSet, func(oc *entity.OrderContext) error {
			oc.ServiceFee = nil
			return nil
		})
		if err != nil {
			t.Fatalf("Update: %v", err)
		}
		registry.Clear(ctx, key)

		if _, ok := store.states[string(key)]; ok {
			t.Error("cleared table snapshot still persisted")
		}

		snapshot := registry.Snapshot(key)
		if snapshot.PartySize != 1 {
			t.Errorf("PartySize = %d, want reset to 1", snapshot.PartySize)
		}
		if snapshot.ServiceFee == nil {
			t.Error("automatic fee did not reapply after clear")
		}
	})
}

func TestRegistryService_SetPartySizeValidation(t *testing.T) {
	registry, _ := newTestRegistry()

	if err := registry.SetPartySize(context.Background(), entity.TableKey(1), 0); err == nil {
		t.Error("expected error for party size 0")
	}
	if err := registry.SetPartySize(context.Background(), entity.TableKey(1), -2); err == nil {
		t.Error("expected error for negative party size")
	}
}

func TestRegistryService_SnapshotIsDeepCopy(t *testing.T) {
	ctx := context.Background()
	registry, _ := newTestRegistry()
	key := entity.TableKey(9)

	err := registry.Update(ctx, key, EventItemAdded, func(oc *entity.OrderContext) error {
		oc.Items = append(oc.Items, lineItem("10.00", 1))
		return nil
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	snapshot := registry.Snapshot(key)
	snapshot.Items[0].Quantity = 99
	snapshot.ServiceFee.Amount = d("50")

	fresh := registry.Snapshot(key)
	if fresh.Items[0].Quantity != 1 {
		t.Errorf("registry state mutated through snapshot: qty = %d", fresh.Items[0].Quantity)
	}
	if fresh.ServiceFee.Amount.StringFixed(2) != "10.00" {
		t.Errorf("registry fee mutated through snapshot: %s", fresh.ServiceFee.Amount)
	}
}

func TestRegistryService_Subscribe(t *testing.T) {
	ctx := context.Background()
	registry, _ := newTestRegistry()

	var events []ContextEvent
	unsubscribe := registry.Subscribe(func(e ContextEvent) {
		events = append(events, e)
	})

	if err := registry.SetPartySize(ctx, entity.TableKey(1), 2); err != nil {
		t.Fatalf("SetPartySize: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if events[0].Kind != EventPartySizeChanged {
		t.Errorf("event kind = %s, want %s", events[0].Kind, EventPartySizeChanged)
	}
	if events[0].Key != entity.TableKey(1) {
		t.Errorf("event key = %s, want table:1", events[0].Key)
	}

	unsubscribe()
	if err := registry.SetPartySize(ctx, entity.TableKey(1), 3); err != nil {
		t.Fatalf("SetPartySize: %v", err)
	}
	if len(events) != 1 {
		t.Errorf("received event after unsubscribe, got %d", len(events))
	}
}

func TestRegistryService_LoadRestoresSnapshots(t *testing.T) {
	ctx := context.Background()
	store := newFakeContextStore()

	oc := entity.NewOrderContext(entity.TableKey(4))
	oc.Items = []entity.LineItem{lineItem("12.00", 2)}
	oc.PartySize = 3
	state, err := entity.NewContextState(oc)
	if err != nil {
		t.Fatalf("NewContextState: %v", err)
	}
	if err := store.Save(ctx, state); err != nil {
		t.Fatalf("Save: %v", err)
	}

	registry := NewRegistryService(store, d("10"))
	if err := registry.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}

	restored := registry.Snapshot(entity.TableKey(4))
	if len(restored.Items) != 1 || restored.Items[0].Quantity != 2 {
		t.Errorf("restored items = %+v", restored.Items)
	}
	if restored.PartySize != 3 {
		t.Errorf("restored PartySize = %d, want 3", restored.PartySize)
	}
}

func TestRegistryService_ActiveKeys(t *testing.T) {
	registry, _ := newTestRegistry()

	if got := registry.ActiveKeys(); len(got) != 0 {
		t.Errorf("fresh registry has %d active keys", len(got))
	}

	registry.Snapshot(entity.TableKey(1))
	registry.Snapshot(entity.TabKey(2))

	keys := registry.ActiveKeys()
	if len(keys) != 2 {
		t.Errorf("got %d active keys, want 2", len(keys))
	}
}

func TestRegistryService_UpdateErrorLeavesNothingPublished(t *testing.T) {
	ctx := context.Background()
	registry, _ := newTestRegistry()

	var events int
	registry.Subscribe(func(ContextEvent) { events++ })

	wantErr := registry.Update(ctx, entity.CounterKey, EventItemAdded, func(oc *entity.OrderContext) error {
		return errTest
	})
	if wantErr == nil {
		t.Fatal("expected error from Update")
	}
	if events != 0 {
		t.Errorf("published %d events for a failed update", events)
	}
}
