package f2

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"
	"github.com/twinj/uuid"
)

// Handle is the result of a pending request. It resolves exactly once.
//
// There is no timeout: a handle whose reply never arrives stays pending.
// Callers may stop waiting through the context passed to Wait, which does not
// remove the entry.
type Handle struct {
	id       uuid.UUID
	identity Identity

	done    chan struct{}
	message Message
	err     error
}

func newHandle(identity Identity) *Handle {
	return &Handle{
		id:       uuid.NewV4(),
		identity: identity,
		done:     make(chan struct{}),
	}
}

// Identity returns the key the handle is waiting for.
func (h *Handle) Identity() Identity {
	return h.identity
}

// Done is closed once the handle resolved.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Wait blocks until the handle resolved or the context is done.
func (h *Handle) Wait(ctx context.Context) (Message, error) {
	select {
	case <-ctx.Done():
		return Message{}, ctx.Err()
	case <-h.done:
		return h.message, h.err
	}
}

// Only called by the table, with the entry already removed.
func (h *Handle) resolve(message Message, err error) {
	h.message = message
	h.err = err

	close(h.done)
}

// PendingTable maps identities to unresolved handles. A key has at most one
// live entry.
type PendingTable struct {
	entries map[string]*Handle
	closed  error
	lock    sync.Mutex
}

// NewPendingTable returns an empty table.
func NewPendingTable() *PendingTable {
	return &PendingTable{
		entries: map[string]*Handle{},
	}
}

// RequestOrJoin returns the live handle for identity, or creates one and
// invokes send. The boolean is true when an existing request was joined, in
// which case send is not invoked.
//
// If send fails, the entry is removed and the handle (including joiners)
// fails with the same error.
func (t *PendingTable) RequestOrJoin(identity Identity, send func() error) (*Handle, bool, error) {
	key := identity.Key()

	t.lock.Lock()

	if t.closed != nil {
		t.lock.Unlock()
		return nil, false, t.closed
	}

	if h, ok := t.entries[key]; ok {
		t.lock.Unlock()

		log.Debugf("Joining pending request %v (%s).", h.id, identity)

		return h, true, nil
	}

	h := newHandle(identity)
	t.entries[key] = h

	t.lock.Unlock()

	log.Debugf("Pending request %v (%s).", h.id, identity)

	// Send outside the lock; the reply may already be matched by the time
	// send returns.
	if err := send(); err != nil {
		t.remove(key, h, err)

		return h, false, err
	}

	return h, false, nil
}

// Resolve resolves and removes the first live entry matched by message. It
// returns false if no entry matched.
func (t *PendingTable) Resolve(message Message) bool {
	t.lock.Lock()

	var found *Handle
	var key string

	for k, h := range t.entries {
		if h.identity.Matches(message) {
			found, key = h, k
			break
		}
	}

	if found == nil {
		t.lock.Unlock()
		return false
	}

	delete(t.entries, key)
	t.lock.Unlock()

	log.Debugf("Resolved pending request %v.", found.id)

	found.resolve(message, nil)

	return true
}

// Len returns the number of live entries.
func (t *PendingTable) Len() int {
	t.lock.Lock()
	defer t.lock.Unlock()

	return len(t.entries)
}

// Close fails every live entry with err. Later requests fail with err too.
func (t *PendingTable) Close(err error) {
	t.lock.Lock()
	t.closed = err
	entries := t.entries
	t.entries = map[string]*Handle{}
	t.lock.Unlock()

	for _, h := range entries {
		h.resolve(Message{}, err)
	}
}

// remove fails h if it is still the live entry for key.
func (t *PendingTable) remove(key string, h *Handle, err error) {
	t.lock.Lock()

	if t.entries[key] != h {
		t.lock.Unlock()
		return
	}

	delete(t.entries, key)
	t.lock.Unlock()

	h.resolve(Message{}, err)
}
