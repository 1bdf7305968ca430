package promptservice

import "sync"

// ChangeNotifier is a small in-process pub-sub used by prompt containers to
// signal that their prompt set changed, so list-changed notifications can be
// forwarded to interested transports.
type ChangeNotifier struct {
	mu     sync.Mutex
	subs   []chan struct{}
	closed bool
}

// Notify signals every subscriber that the prompt set changed. Delivery is
// best-effort: a subscriber that has not drained its previous signal is
// skipped rather than blocked on.
func (cn *ChangeNotifier) Notify() {
	cn.mu.Lock()
	defer cn.mu.Unlock()
	if cn.closed {
		return
	}
	for _, ch := range cn.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Subscriber returns a channel receiving a signal per Notify call. After
// Close, the returned channel is already closed.
func (cn *ChangeNotifier) Subscriber() <-chan struct{} {
	cn.mu.Lock()
	defer cn.mu.Unlock()
	if cn.closed {
		ch := make(chan struct{})
		close(ch)
		return ch
	}
	ch := make(chan struct{}, 1)
	cn.subs = append(cn.subs, ch)
	return ch
}

// Close closes every subscriber channel. Further Notify calls are no-ops.
func (cn *ChangeNotifier) Close() {
	cn.mu.Lock()
	if cn.closed {
		cn.mu.Unlock()
		return
	}
	cn.closed = true
	subs := cn.subs
	cn.subs = nil
	cn.mu.Unlock()
	for _, ch := range subs {
		close(ch)
	}
}

// ChangeSubscriber is implemented by containers that can report prompt set
// changes.
type ChangeSubscriber interface {
	Subscriber() <-chan struct{}
}
