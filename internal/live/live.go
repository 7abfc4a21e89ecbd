// Package live implements push-on-write queries over the local store.
//
// Writers call Hub.Publish with the tables they changed once the write is
// committed. Readers call Watch with a query and the tables it reads; the
// returned channel yields the current snapshot first and a fresh snapshot
// after every publish touching one of those tables.
//
//	hub := live.NewHub()
//	updates := live.Watch(ctx, hub, repo.List, "exercises")
//	for exercises := range updates {
//		render(exercises)
//	}
package live

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"
)

// Query loads one snapshot. It is re-run after every relevant publish.
type Query[T any] func(ctx context.Context) (T, error)

// Hub fans table change notifications out to subscribers.
type Hub struct {
	mu     sync.Mutex
	nextID uint64
	subs   map[uint64]*subscriber
}

type subscriber struct {
	tables map[string]struct{}
	notify chan struct{}
}

func NewHub() *Hub {
	return &Hub{
		subs: make(map[uint64]*subscriber),
	}
}

// Publish notifies every subscriber reading one of tables. It never blocks:
// a subscriber that has not consumed its previous notification yet is
// already going to reload.
func (h *Hub) Publish(tables ...string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, sub := range h.subs {
		if !sub.interested(tables) {
			continue
		}
		select {
		case sub.notify <- struct{}{}:
		default:
		}
	}
}

// Subscribers returns the number of attached subscribers.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

func (h *Hub) subscribe(tables []string) (uint64, <-chan struct{}) {
	sub := &subscriber{
		tables: make(map[string]struct{}, len(tables)),
		notify: make(chan struct{}, 1),
	}
	for _, table := range tables {
		sub.tables[table] = struct{}{}
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.nextID++
	h.subs[h.nextID] = sub
	return h.nextID, sub.notify
}

func (h *Hub) unsubscribe(id uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.subs, id)
}

func (s *subscriber) interested(tables []string) bool {
	// no tables means "everything changed"
	if len(tables) == 0 {
		return true
	}
	for _, table := range tables {
		if _, ok := s.tables[table]; ok {
			return true
		}
	}
	return false
}

// Watch subscribes query to tables and streams its snapshots until ctx is
// done, then closes the channel. Nothing runs until Watch is called and
// every call starts an independent subscription. With a nil hub the query
// is loaded once and never refreshed.
//
// Snapshots are coalesced: a consumer that falls behind receives the most
// recent snapshot, not a backlog. A failing query is logged and the last
// good snapshot is kept.
func Watch[T any](ctx context.Context, hub *Hub, query Query[T], tables ...string) <-chan T {
	out := make(chan T)
	var notify <-chan struct{}
	var id uint64
	if hub != nil {
		id, notify = hub.subscribe(tables)
	}

	go func() {
		defer close(out)
		if hub != nil {
			defer hub.unsubscribe(id)
		}

		var (
			pending    T
			hasPending bool
		)
		load := func() {
			snapshot, err := query(ctx)
			if err != nil {
				if ctx.Err() == nil {
					log.Errorf("live query on %v: %s", tables, err)
				}
				return
			}
			pending, hasPending = snapshot, true
		}

		load()
		for {
			var send chan<- T
			if hasPending {
				send = out
			}

			select {
			case <-ctx.Done():
				return
			case <-notify:
				load()
			case send <- pending:
				hasPending = false
			}
		}
	}()

	return out
}
