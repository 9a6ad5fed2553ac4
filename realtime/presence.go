package realtime

import (
	"encoding/json"
	"sync"
)

// PresenceStore holds the shared set of currently online user IDs. It is
// fed by an ordinary online-users subscription, not by a hardwired
// handler inside the socket client.
type PresenceStore struct {
	mu     sync.RWMutex
	online map[string]struct{}
}

// NewPresenceStore creates an empty presence store.
func NewPresenceStore() *PresenceStore {
	return &PresenceStore{online: make(map[string]struct{})}
}

// Bind subscribes the store to the client's online-users event and
// returns the unsubscribe function.
func (p *PresenceStore) Bind(c *Client) func() {
	return c.OnOnlineUsers(func(e Event) {
		var ids []string
		if err := json.Unmarshal(e.Payload, &ids); err != nil {
			return
		}
		p.Replace(ids)
	})
}

// Replace swaps the online set wholesale. The server sends the full set
// on every update.
func (p *PresenceStore) Replace(ids []string) {
	next := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		next[id] = struct{}{}
	}

	p.mu.Lock()
	p.online = next
	p.mu.Unlock()
}

// IsOnline reports whether a user is currently online.
func (p *PresenceStore) IsOnline(userID string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	_, ok := p.online[userID]
	return ok
}

// List returns the online user IDs.
func (p *PresenceStore) List() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	ids := make([]string, 0, len(p.online))
	for id := range p.online {
		ids = append(ids, id)
	}
	return ids
}

// Count returns the number of online users.
func (p *PresenceStore) Count() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.online)
}
