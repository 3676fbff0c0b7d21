package notify

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/sangwon514/room-search-map/internal/domain"
	"github.com/sangwon514/room-search-map/internal/eventbus"
	"github.com/sangwon514/room-search-map/internal/filterstore"
)

// DefaultQuietPeriod is how long the notifier waits after the last filter
// mutation before committing it.
const DefaultQuietPeriod = 300 * time.Millisecond

// FilterNotifier observes the filter store and publishes a
// FilterCommittedEvent once a burst of mutations has settled. Mutations
// that leave the canonical projection unchanged never schedule an
// emission, and the emitted filter is re-read at fire time so it always
// reflects the last mutation in the burst.
type FilterNotifier struct {
	store *filterstore.Store
	bus   eventbus.EventBus
	deb   *Debouncer

	mu   sync.Mutex
	last string

	unsubscribe func()
}

// NewFilterNotifier subscribes to the store and starts watching.
func NewFilterNotifier(store *filterstore.Store, bus eventbus.EventBus, quiet time.Duration) *FilterNotifier {
	if quiet <= 0 {
		quiet = DefaultQuietPeriod
	}
	n := &FilterNotifier{
		store: store,
		bus:   bus,
		deb:   NewDebouncer(quiet),
	}
	n.unsubscribe = store.Subscribe(n.onChange)
	return n
}

// Close detaches from the store and cancels any pending emission.
func (n *FilterNotifier) Close() {
	if n.unsubscribe != nil {
		n.unsubscribe()
		n.unsubscribe = nil
	}
	n.deb.Stop()
}

func (n *FilterNotifier) onChange(f domain.Filter) {
	serialized := canonical(f)

	n.mu.Lock()
	if serialized == n.last {
		n.mu.Unlock()
		return
	}
	n.last = serialized
	n.mu.Unlock()

	n.deb.Call(func() {
		n.bus.Publish(eventbus.FilterCommittedEvent{Filter: n.store.Snapshot()})
	})
}

// canonical serializes the request-parameter projection of the filter to a
// comparable form.
func canonical(f domain.Filter) string {
	b, err := json.Marshal(f)
	if err != nil {
		// Filter is a plain value type; Marshal cannot fail on it.
		return ""
	}
	return string(b)
}
