package live

// Observe subscribes to topic and delivers initial as the first snapshot,
// mirroring a live query that replays current state on attach. The
// forwarding keeps the broker's latest-wins behavior: an undrained snapshot
// is replaced, not queued behind.
func Observe[T any](b *Broker[T], topic string, initial T) (<-chan T, func()) {
	ch, cancel := b.Subscribe(topic)

	out := make(chan T, 1)
	out <- initial

	go func() {
		defer close(out)
		for snap := range ch {
			select {
			case out <- snap:
			default:
				select {
				case <-out:
				default:
				}
				select {
				case out <- snap:
				default:
				}
			}
		}
	}()

	return out, cancel
}
