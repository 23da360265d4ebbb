package encrypt

import (
	"sync"
	"sync/atomic"
)

// statusSubscription is one registered status-change listener.
type statusSubscription struct {
	id       uint64
	callback func()
	active   atomic.Bool
}

// subscriptionManager broadcasts status-change events with safe lifecycle
// management: a callback is never invoked after its unsubscribe completes.
// Events carry no payload; subscribers re-query current state.
type subscriptionManager struct {
	mu     sync.RWMutex
	subs   map[uint64]*statusSubscription
	nextID atomic.Uint64
}

func newSubscriptionManager() *subscriptionManager {
	return &subscriptionManager{
		subs: make(map[uint64]*statusSubscription),
	}
}

// subscribe registers a callback invoked whenever encryption is enabled,
// activated, or disabled on this device. Returns an unsubscribe function
// that must be called to clean up.
func (m *subscriptionManager) subscribe(callback func()) func() {
	sub := &statusSubscription{
		id:       m.nextID.Add(1),
		callback: callback,
	}
	sub.active.Store(true)

	m.mu.Lock()
	m.subs[sub.id] = sub
	m.mu.Unlock()

	return func() {
		m.unsubscribe(sub.id)
	}
}

// unsubscribe removes a subscription. Safe to call multiple times.
func (m *subscriptionManager) unsubscribe(id uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if sub, ok := m.subs[id]; ok {
		sub.active.Store(false)
		delete(m.subs, id)
	}
}

// notify invokes all registered callbacks. Callbacks run synchronously
// after the read lock is released; the active flag prevents calls after
// unsubscribe.
func (m *subscriptionManager) notify() {
	m.mu.RLock()
	subs := make([]*statusSubscription, 0, len(m.subs))
	for _, sub := range m.subs {
		subs = append(subs, sub)
	}
	m.mu.RUnlock()

	for _, sub := range subs {
		if sub.active.Load() {
			sub.callback()
		}
	}
}

// clear removes all subscriptions. Called during Client.Close().
func (m *subscriptionManager) clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, sub := range m.subs {
		sub.active.Store(false)
	}
	m.subs = make(map[uint64]*statusSubscription)
}
