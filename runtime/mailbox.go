package runtime

import "sync"

// Mailbox is the unbounded outbound queue of one peer session. The
// registry pushes into it while holding its lock, so Push must never
// block; the owning session is the only consumer.
type Mailbox struct {
	mu     sync.Mutex
	items  []Event
	wake   chan struct{}
	closed bool
}

func NewMailbox() *Mailbox {
	return &Mailbox{wake: make(chan struct{}, 1)}
}

// Push enqueues an event. It reports false when the mailbox is closed,
// which broadcasters treat as a silent drop: the peer is tearing down
// independently.
func (m *Mailbox) Push(ev Event) bool {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return false
	}
	m.items = append(m.items, ev)
	m.mu.Unlock()

	select {
	case m.wake <- struct{}{}:
	default:
	}
	return true
}

// TryPop dequeues the oldest pending event without blocking.
func (m *Mailbox) TryPop() (Event, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.items) == 0 {
		return nil, false
	}
	ev := m.items[0]
	m.items[0] = nil
	m.items = m.items[1:]

	if len(m.items) > 0 {
		select {
		case m.wake <- struct{}{}:
		default:
		}
	}
	return ev, true
}

// Wake returns the channel signalled whenever items may be pending. A
// receive does not guarantee an item; callers re-check with TryPop.
func (m *Mailbox) Wake() <-chan struct{} {
	return m.wake
}

// Close marks the mailbox detached. Pending items are discarded; the
// owning session does not drain its own queue on exit.
func (m *Mailbox) Close() {
	m.mu.Lock()
	m.closed = true
	m.items = nil
	m.mu.Unlock()
}
