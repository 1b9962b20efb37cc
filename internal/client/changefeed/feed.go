// Package changefeed notifies local watchers that a household's cached data
// changed. Notifications carry no payload: subscribers re-read the store.
package changefeed

import "sync"

// Feed is a per-household pub/sub. Each subscriber channel has a buffer of one
// and publishes never block, so bursts of writes collapse into one wake-up.
type Feed struct {
	mu   sync.Mutex
	subs map[string]map[chan struct{}]struct{}
}

func New() *Feed {
	return &Feed{subs: make(map[string]map[chan struct{}]struct{})}
}

// Subscribe returns a notification channel for householdID and a function
// that unsubscribes and closes it. Calling the function twice is safe.
func (f *Feed) Subscribe(householdID string) (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	f.mu.Lock()
	set, ok := f.subs[householdID]
	if !ok {
		set = make(map[chan struct{}]struct{})
		f.subs[householdID] = set
	}
	set[ch] = struct{}{}
	f.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			f.mu.Lock()
			defer f.mu.Unlock()
			delete(f.subs[householdID], ch)
			if len(f.subs[householdID]) == 0 {
				delete(f.subs, householdID)
			}
			close(ch)
		})
	}
	return ch, cancel
}

// Publish wakes every subscriber of householdID.
func (f *Feed) Publish(householdID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for ch := range f.subs[householdID] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Subscribers returns the number of active subscriptions for householdID.
func (f *Feed) Subscribers(householdID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs[householdID])
}
