// Package realtime maintains the identity-bound socket connection for
// notifications. One connection exists per session; when the bound
// identity changes, the caller closes the client and dials again — there
// is no automatic reconnect.
package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/glosshouse/glosshouse-go/session"
)

// State is the connection lifecycle state.
type State int32

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
)

func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	default:
		return fmt.Sprintf("state(%d)", s)
	}
}

// ErrClosed is returned by Emit after Close.
var ErrClosed = errors.New("realtime: connection closed")

// Identity scopes event delivery server-side. It is passed as
// connection-time query parameters; the client does not filter events
// itself.
type Identity struct {
	UserID   string
	Timezone string
	Role     session.Role
	SalonID  string
}

// Event is one inbound frame.
type Event struct {
	Name    string          `json:"event"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Handler processes one inbound event.
type Handler func(Event)

// Config holds socket client configuration.
type Config struct {
	// URL is the socket endpoint (ws:// or wss://; http origins are
	// rewritten).
	URL string
	// Identity is required: the connection only opens for a known user.
	Identity Identity
	// HandshakeTimeout bounds the dial. Defaults to 10s.
	HandshakeTimeout time.Duration
	// HeartbeatInterval between pings. Defaults to 30s.
	HeartbeatInterval time.Duration
	// Logger is optional; a discard logger is used when nil.
	Logger logrus.FieldLogger
}

type handlerEntry struct {
	id      int64
	handler Handler
}

// Client is the socket connection. All inbound events, including
// presence updates, go through the same subscription interface.
type Client struct {
	mu       sync.RWMutex
	writeMu  sync.Mutex
	conn     *websocket.Conn
	handlers map[string][]handlerEntry
	nextID   int64
	state    State
	done     chan struct{}
	log      logrus.FieldLogger
	identity Identity
}

// Dial opens the connection and starts the read and heartbeat loops.
func Dial(ctx context.Context, cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.URL) == "" {
		return nil, fmt.Errorf("realtime: URL is required")
	}
	if cfg.Identity.UserID == "" {
		return nil, fmt.Errorf("realtime: identity is required")
	}

	wsURL, err := buildURL(cfg.URL, cfg.Identity)
	if err != nil {
		return nil, err
	}

	handshake := cfg.HandshakeTimeout
	if handshake == 0 {
		handshake = 10 * time.Second
	}
	heartbeat := cfg.HeartbeatInterval
	if heartbeat == 0 {
		heartbeat = 30 * time.Second
	}

	log := cfg.Logger
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		log = l
	}

	c := &Client{
		handlers: make(map[string][]handlerEntry),
		state:    StateConnecting,
		done:     make(chan struct{}),
		log:      log,
		identity: cfg.Identity,
	}

	dialer := websocket.Dialer{HandshakeTimeout: handshake}
	conn, _, err := dialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		c.mu.Lock()
		c.state = StateDisconnected
		c.mu.Unlock()
		return nil, fmt.Errorf("realtime: dial: %w", err)
	}

	c.mu.Lock()
	c.conn = conn
	c.state = StateConnected
	c.mu.Unlock()

	log.WithFields(logrus.Fields{
		"component": "realtime",
		"user_id":   cfg.Identity.UserID,
		"role":      cfg.Identity.Role,
	}).Info("socket connected")

	go c.readLoop()
	go c.heartbeat(heartbeat)

	return c, nil
}

// buildURL appends the identity query parameters to the endpoint.
func buildURL(raw string, id Identity) (string, error) {
	if strings.HasPrefix(raw, "https://") {
		raw = "wss://" + strings.TrimPrefix(raw, "https://")
	} else if strings.HasPrefix(raw, "http://") {
		raw = "ws://" + strings.TrimPrefix(raw, "http://")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("realtime: invalid URL: %w", err)
	}

	q := u.Query()
	q.Set("userId", id.UserID)
	q.Set("timezone", id.Timezone)
	q.Set("role", id.Role.String())
	if id.SalonID != "" {
		q.Set("salonId", id.SalonID)
	}
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// State returns the connection state.
func (c *Client) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Identity returns the identity the connection was opened with.
func (c *Client) Identity() Identity {
	return c.identity
}

// On registers a handler for a named event and returns its unsubscribe
// function. Callers must unsubscribe on teardown to avoid duplicate
// registrations across reconnects.
func (c *Client) On(event string, handler Handler) func() {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.handlers[event] = append(c.handlers[event], handlerEntry{id: id, handler: handler})
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		entries := c.handlers[event]
		for i, e := range entries {
			if e.id == id {
				c.handlers[event] = append(entries[:i], entries[i+1:]...)
				return
			}
		}
	}
}

// Emit sends a fire-and-forget client-to-server signal. There is no
// acknowledgment contract.
func (c *Client) Emit(event string, payload any) error {
	c.mu.RLock()
	conn := c.conn
	state := c.state
	c.mu.RUnlock()

	if state != StateConnected || conn == nil {
		return ErrClosed
	}

	var raw json.RawMessage
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("realtime: marshal payload: %w", err)
		}
		raw = data
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if err := conn.WriteJSON(Event{Name: event, Payload: raw}); err != nil {
		return fmt.Errorf("realtime: emit %s: %w", event, err)
	}
	return nil
}

// Close tears the connection down. Safe to call more than once.
func (c *Client) Close() error {
	c.mu.Lock()
	if c.state == StateDisconnected {
		c.mu.Unlock()
		return nil
	}
	c.state = StateDisconnected
	conn := c.conn
	c.conn = nil
	close(c.done)
	c.mu.Unlock()

	if conn == nil {
		return nil
	}

	c.writeMu.Lock()
	err := conn.WriteMessage(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
	)
	c.writeMu.Unlock()
	conn.Close()

	c.log.WithField("component", "realtime").Info("socket closed")
	if err != nil {
		return fmt.Errorf("realtime: close message: %w", err)
	}
	return nil
}

func (c *Client) readLoop() {
	for {
		select {
		case <-c.done:
			return
		default:
		}

		c.mu.RLock()
		conn := c.conn
		c.mu.RUnlock()
		if conn == nil {
			return
		}

		_, message, err := conn.ReadMessage()
		if err != nil {
			c.mu.Lock()
			c.state = StateDisconnected
			c.mu.Unlock()
			return
		}

		var event Event
		if err := json.Unmarshal(message, &event); err != nil {
			c.log.WithField("component", "realtime").WithError(err).Debug("dropping malformed frame")
			continue
		}

		c.dispatch(event)
	}
}

func (c *Client) dispatch(event Event) {
	c.mu.RLock()
	entries := make([]handlerEntry, len(c.handlers[event.Name]))
	copy(entries, c.handlers[event.Name])
	c.mu.RUnlock()

	for _, e := range entries {
		go e.handler(event)
	}
}

func (c *Client) heartbeat(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			c.mu.RLock()
			conn := c.conn
			c.mu.RUnlock()
			if conn == nil {
				return
			}
			c.writeMu.Lock()
			conn.WriteMessage(websocket.PingMessage, nil)
			c.writeMu.Unlock()
		}
	}
}
