// Package live provides in-process publish/subscribe of complete snapshots.
// Consumers always receive the full current state for a topic, never diffs,
// and recompute derived data from scratch on each delivery.
package live

import "sync"

// Broker fans out snapshots of type T to per-topic subscribers. Publishing
// never blocks: a subscriber that has not drained its channel loses the
// stale snapshot and keeps only the latest one.
type Broker[T any] struct {
	mu   sync.RWMutex
	subs map[string]map[chan T]struct{}
}

func NewBroker[T any]() *Broker[T] {
	return &Broker[T]{subs: make(map[string]map[chan T]struct{})}
}

// Subscribe registers a subscriber for topic. The returned cancel function
// must be called on teardown, on every exit path; it is safe to call more
// than once. After cancel returns the channel is closed.
func (b *Broker[T]) Subscribe(topic string) (<-chan T, func()) {
	ch := make(chan T, 1)

	b.mu.Lock()
	if b.subs[topic] == nil {
		b.subs[topic] = make(map[chan T]struct{})
	}
	b.subs[topic][ch] = struct{}{}
	b.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs[topic], ch)
			if len(b.subs[topic]) == 0 {
				delete(b.subs, topic)
			}
			b.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// Publish delivers snapshot to every subscriber of topic, replacing any
// undelivered previous snapshot.
func (b *Broker[T]) Publish(topic string, snapshot T) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for ch := range b.subs[topic] {
		select {
		case ch <- snapshot:
		default:
			// Drop the stale snapshot, then try once more. If another
			// publisher won the race the channel already holds a newer
			// snapshot, which is fine.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snapshot:
			default:
			}
		}
	}
}

// SubscriberCount reports how many subscribers a topic currently has.
func (b *Broker[T]) SubscriberCount(topic string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[topic])
}
