package feed

import (
	"context"
	"sync"

	"wanderlog/internal/entity"
	"wanderlog/internal/realtime"
	"wanderlog/pkg/logger"
)

type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateLoaded  State = "loaded"
	StateError   State = "error"
)

// Snapshot is the externally visible state of a feed. On a failed fetch
// Posts keeps its last known value so stale data stays visible behind
// the error message.
type Snapshot struct {
	Posts []*entity.Post `json:"posts"`
	State State          `json:"state"`
	Err   string         `json:"error,omitempty"`
}

func (s Snapshot) Loading() bool {
	return s.State == StateLoading
}

// Store lists posts for a filter, ordered by event date descending.
type Store interface {
	List(ctx context.Context, filter entity.Filter) ([]*entity.Post, error)
}

// Notifier delivers posts change notifications. The cancel func
// releases the subscription.
type Notifier interface {
	Subscribe(ctx context.Context) (<-chan realtime.Event, func(), error)
}

// Feed keeps a filtered post collection live. Filter changes, manual
// refetch calls and change notifications all enqueue a fetch request
// onto a single-consumer queue; the worker drains the queue and serves
// only the newest request, making the last-request-wins policy explicit
// instead of an incidental race. Any change notification triggers a
// full re-fetch with the current filter regardless of which record
// changed; seeing every change is valued over avoiding redundant
// fetches.
type Feed struct {
	store  Store
	logger *logger.Logger
	ctx    context.Context

	mu     sync.RWMutex
	filter entity.Filter
	snap   Snapshot

	requests    chan entity.Filter
	updates     chan struct{}
	done        chan struct{}
	wg          sync.WaitGroup
	unsubscribe func()
	closeOnce   sync.Once
}

// New starts a feed for the given filter and immediately issues the
// first fetch. A nil notifier disables live updates. Close must be
// called to release the worker and the subscription.
func New(ctx context.Context, store Store, notifier Notifier, filter entity.Filter, log *logger.Logger) (*Feed, error) {
	f := &Feed{
		store:    store,
		logger:   log,
		ctx:      ctx,
		filter:   filter,
		snap:     Snapshot{Posts: []*entity.Post{}, State: StateIdle},
		requests: make(chan entity.Filter, 16),
		updates:  make(chan struct{}, 1),
		done:     make(chan struct{}),
	}

	var events <-chan realtime.Event
	if notifier != nil {
		var cancel func()
		var err error
		events, cancel, err = notifier.Subscribe(ctx)
		if err != nil {
			return nil, err
		}
		f.unsubscribe = cancel
	}

	f.wg.Add(1)
	go f.run()

	if events != nil {
		f.wg.Add(1)
		go f.watch(events)
	}

	f.enqueue(filter)
	return f, nil
}

// Snapshot returns the current feed state.
func (f *Feed) Snapshot() Snapshot {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.snap
}

// Updates signals whenever the snapshot changes. The channel is
// coalescing; read Snapshot after each signal.
func (f *Feed) Updates() <-chan struct{} {
	return f.updates
}

// SetFilter replaces the active filter and requests a fresh fetch.
func (f *Feed) SetFilter(filter entity.Filter) {
	f.mu.Lock()
	f.filter = filter
	f.mu.Unlock()
	f.enqueue(filter)
}

// Refetch requests an on-demand re-fetch with the current filter.
func (f *Feed) Refetch() {
	f.mu.RLock()
	filter := f.filter
	f.mu.RUnlock()
	f.enqueue(filter)
}

// Close tears down the subscription and stops the worker. No event is
// processed after Close returns.
func (f *Feed) Close() {
	f.closeOnce.Do(func() {
		if f.unsubscribe != nil {
			f.unsubscribe()
		}
		close(f.done)
	})
	f.wg.Wait()
}

func (f *Feed) enqueue(filter entity.Filter) {
	select {
	case f.requests <- filter:
	case <-f.done:
	}
}

func (f *Feed) watch(events <-chan realtime.Event) {
	defer f.wg.Done()
	for {
		select {
		case <-f.done:
			return
		case _, ok := <-events:
			if !ok {
				return
			}
			f.Refetch()
		}
	}
}

func (f *Feed) run() {
	defer f.wg.Done()
	for {
		select {
		case <-f.done:
			return
		case filter := <-f.requests:
			// Drain queued requests, newest supersedes.
			for drained := false; !drained; {
				select {
				case filter = <-f.requests:
				default:
					drained = true
				}
			}
			f.fetch(filter)
		}
	}
}

func (f *Feed) fetch(filter entity.Filter) {
	f.setLoading()

	posts, err := f.store.List(f.ctx, filter)
	if err != nil {
		f.logger.Error("Feed fetch failed: %v", err)
		f.setError(err.Error())
		return
	}
	f.setLoaded(posts)
}

func (f *Feed) setLoading() {
	f.mu.Lock()
	f.snap.State = StateLoading
	f.snap.Err = ""
	f.mu.Unlock()
	f.signal()
}

func (f *Feed) setLoaded(posts []*entity.Post) {
	f.mu.Lock()
	f.snap = Snapshot{Posts: posts, State: StateLoaded}
	f.mu.Unlock()
	f.signal()
}

// setError keeps the previous posts so stale data stays visible.
func (f *Feed) setError(msg string) {
	f.mu.Lock()
	f.snap.State = StateError
	f.snap.Err = msg
	f.mu.Unlock()
	f.signal()
}

func (f *Feed) signal() {
	select {
	case f.updates <- struct{}{}:
	default:
	}
}
