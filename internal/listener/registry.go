package listener

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Bus is the message fabric events ride between game logic and connections.
// The embedded NATS server satisfies it.
type Bus interface {
	Publish(subject string, data []byte) error
	Subscribe(subject string, handler func(data []byte)) (unsubscribe func(), err error)
}

// Transport is one client's live connection.
type Transport interface {
	ReadMessage() ([]byte, error)
	WriteMessage(data []byte) error
	Close() error
}

type registered struct {
	transport Transport
	unsub     func()
}

// ConnectionRegistry maps connection identities to their transports. Each
// registered connection gets its own bus subject; delivery is best-effort,
// and a transport that fails a write is unregistered. Per recipient, events
// arrive in the order they were sent to it; nothing is promised across
// recipients.
type ConnectionRegistry struct {
	mu    sync.RWMutex
	bus   Bus
	conns map[string]*registered
}

func NewConnectionRegistry(bus Bus) *ConnectionRegistry {
	return &ConnectionRegistry{
		bus:   bus,
		conns: make(map[string]*registered),
	}
}

func clientSubject(id string) string {
	return fmt.Sprintf("client-%s", id)
}

// Register assigns the transport a fresh identity and subscribes it to its
// client subject. A write failure on delivery unregisters the connection.
func (r *ConnectionRegistry) Register(t Transport) (string, error) {
	id := uuid.NewString()

	unsub, err := r.bus.Subscribe(clientSubject(id), func(data []byte) {
		if err := t.WriteMessage(data); err != nil {
			r.Unregister(id)
		}
	})
	if err != nil {
		return "", fmt.Errorf("subscribing client subject: %w", err)
	}

	r.mu.Lock()
	r.conns[id] = &registered{transport: t, unsub: unsub}
	r.mu.Unlock()

	return id, nil
}

// Unregister drops a connection, removing its subscription and closing the
// transport. Unknown ids are ignored; calling it twice is safe.
func (r *ConnectionRegistry) Unregister(id string) {
	r.mu.Lock()
	c, ok := r.conns[id]
	if ok {
		delete(r.conns, id)
	}
	r.mu.Unlock()

	if !ok {
		return
	}

	c.unsub()
	_ = c.transport.Close()
}

// Len returns the number of registered connections.
func (r *ConnectionRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}

// Send delivers a payload to one connection, best-effort. Unknown ids and
// publish failures are silently dropped; a publish failure also unregisters
// the connection.
func (r *ConnectionRegistry) Send(id string, data []byte) {
	r.mu.RLock()
	_, ok := r.conns[id]
	r.mu.RUnlock()

	if !ok {
		return
	}

	if err := r.bus.Publish(clientSubject(id), data); err != nil {
		r.Unregister(id)
	}
}

// Broadcast attempts delivery to every registered connection except exclude.
// The recipient set is snapshotted first, and any connection whose delivery
// fails is unregistered after the sweep completes, never mid-sweep.
func (r *ConnectionRegistry) Broadcast(data []byte, exclude string) {
	r.mu.RLock()
	ids := make([]string, 0, len(r.conns))
	for id := range r.conns {
		if id != exclude {
			ids = append(ids, id)
		}
	}
	r.mu.RUnlock()

	var failed []string
	for _, id := range ids {
		if err := r.bus.Publish(clientSubject(id), data); err != nil {
			failed = append(failed, id)
		}
	}

	for _, id := range failed {
		r.Unregister(id)
	}
}
