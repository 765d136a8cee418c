// Package realtime applies broadcast events to the local mirror and tells
// interested consumers when the mirrored state moved.
package realtime

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"orderboard/board-svc/internal/domain"
	"orderboard/board-svc/internal/state"
)

// Change is the typed notification emitted after the mirror absorbs an
// event or a full resync.
type Change struct {
	Channel string
	Event   string
}

const EventResync = "resync"

type EventSource interface {
	Listen(ctx context.Context, handler func(channel string, event domain.Event), channels ...string) error
}

// Reconciler is the receiving end of the broadcast channels. Every handler
// is a single synchronous pass over the store and is idempotent, so
// duplicate, replayed, or out-of-order deliveries converge: an `updated`
// arriving before its `added` is dropped and healed by the next resync.
type Reconciler struct {
	store *state.Store

	mu   sync.Mutex
	subs []func(Change)
}

func NewReconciler(store *state.Store) *Reconciler {
	return &Reconciler{store: store}
}

// Subscribe registers a consumer for change notifications.
func (r *Reconciler) Subscribe(fn func(Change)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subs = append(r.subs, fn)
}

func (r *Reconciler) notify(channel, event string) {
	r.mu.Lock()
	subs := append(([]func(Change))(nil), r.subs...)
	r.mu.Unlock()
	for _, fn := range subs {
		fn(Change{Channel: channel, Event: event})
	}
}

// Run consumes the broadcast channels until the context ends.
func (r *Reconciler) Run(ctx context.Context, source EventSource) error {
	return source.Listen(ctx, r.HandleEvent, domain.ChannelOrders, domain.ChannelRestaurants)
}

// Resync replaces the whole mirror after a fresh full-state fetch. Events
// applied while the fetch was in flight are overwritten; stragglers landing
// afterwards are applied on top and heal on the next resync.
func (r *Reconciler) Resync(restaurants []domain.Restaurant, orders []domain.Order) {
	r.store.ReplaceAll(restaurants, orders)
	r.notify("", EventResync)
}

func (r *Reconciler) HandleEvent(channel string, event domain.Event) {
	switch channel {
	case domain.ChannelOrders:
		r.handleOrderEvent(event)
	case domain.ChannelRestaurants:
		r.handleRestaurantEvent(event)
	}
}

func (r *Reconciler) handleOrderEvent(event domain.Event) {
	switch event.Name {
	case domain.EventAdded:
		var order domain.Order
		if !decode(event, &order) {
			return
		}
		r.store.ApplyOrderAdded(order)
	case domain.EventUpdated:
		var order domain.Order
		if !decode(event, &order) {
			return
		}
		r.store.ApplyOrderUpdated(order)
	case domain.EventRemoved:
		var ref domain.OrderRef
		if !decode(event, &ref) {
			return
		}
		r.store.ApplyOrderRemoved(ref.ID)
	case domain.EventCleared:
		r.store.Clear()
	default:
		return
	}
	r.notify(domain.ChannelOrders, event.Name)
}

func (r *Reconciler) handleRestaurantEvent(event domain.Event) {
	switch event.Name {
	case domain.EventAdded:
		var rest domain.Restaurant
		if !decode(event, &rest) {
			return
		}
		r.store.ApplyRestaurantAdded(rest)
	case domain.EventRemoved:
		var ref domain.RestaurantRef
		if !decode(event, &ref) {
			return
		}
		r.store.ApplyRestaurantRemoved(ref.Name)
	default:
		return
	}
	r.notify(domain.ChannelRestaurants, event.Name)
}

func decode(event domain.Event, out interface{}) bool {
	if err := json.Unmarshal(event.Data, out); err != nil {
		log.Printf("Error unmarshaling %s event payload: %v", event.Name, err)
		return false
	}
	return true
}
