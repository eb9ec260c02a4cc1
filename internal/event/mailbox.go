// Package event provides per-tick notification mailboxes.
//
// A Mailbox is emptied at the start of every simulation tick, written by
// producers during the tick and drained by consumers before the tick ends.
// Each consumer decides explicitly whether it needs every notification of the
// tick (All) or only the most recent one (Latest).
package event

// Mailbox buffers notifications of a single type for one tick.
type Mailbox[T any] struct {
	items []T
}

// Send appends a notification.
func (m *Mailbox[T]) Send(v T) {
	m.items = append(m.items, v)
}

// All returns every notification sent this tick, in send order.
// The returned slice is only valid until the next Reset.
func (m *Mailbox[T]) All() []T {
	return m.items
}

// Latest returns the most recently sent notification.
func (m *Mailbox[T]) Latest() (T, bool) {
	if len(m.items) == 0 {
		var zero T
		return zero, false
	}
	return m.items[len(m.items)-1], true
}

// Pending reports whether at least one notification was sent this tick.
func (m *Mailbox[T]) Pending() bool {
	return len(m.items) > 0
}

// Len returns the number of pending notifications.
func (m *Mailbox[T]) Len() int {
	return len(m.items)
}

// Reset drops all notifications, keeping the backing storage.
func (m *Mailbox[T]) Reset() {
	clear(m.items)
	m.items = m.items[:0]
}
