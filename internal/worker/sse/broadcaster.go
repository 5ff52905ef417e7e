// Package sse provides Server-Sent Events broadcasting for promptdeck.
package sse

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// clientBuffer is the number of queued messages before a client is dropped.
const clientBuffer = 16

// Event is one message sent to clients.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

// Client represents a connected SSE client.
type Client struct {
	ID       string
	messages chan []byte
	done     chan struct{}
	once     sync.Once
}

// Done is closed when the client is removed.
func (c *Client) Done() <-chan struct{} {
	return c.done
}

func (c *Client) close() {
	c.once.Do(func() { close(c.done) })
}

// Broadcaster manages SSE client connections and message fan-out.
type Broadcaster struct {
	clients map[string]*Client
	mu      sync.RWMutex
}

// NewBroadcaster creates a new SSE broadcaster.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		clients: make(map[string]*Client),
	}
}

// AddClient registers a new client.
func (b *Broadcaster) AddClient() *Client {
	client := &Client{
		ID:       uuid.NewString(),
		messages: make(chan []byte, clientBuffer),
		done:     make(chan struct{}),
	}

	b.mu.Lock()
	b.clients[client.ID] = client
	clientCount := len(b.clients)
	b.mu.Unlock()

	log.Debug().
		Str("clientId", client.ID).
		Int("totalClients", clientCount).
		Msg("SSE client connected")

	return client
}

// RemoveClient unregisters a client and closes its Done channel.
func (b *Broadcaster) RemoveClient(client *Client) {
	b.mu.Lock()
	delete(b.clients, client.ID)
	clientCount := len(b.clients)
	b.mu.Unlock()

	client.close()

	log.Debug().
		Str("clientId", client.ID).
		Int("totalClients", clientCount).
		Msg("SSE client disconnected")
}

// Broadcast queues an event for every client. Clients whose queue is full
// are dropped instead of blocking the caller.
func (b *Broadcaster) Broadcast(ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal SSE event")
		return
	}

	b.mu.RLock()
	clients := make([]*Client, 0, len(b.clients))
	for _, c := range b.clients {
		clients = append(clients, c)
	}
	b.mu.RUnlock()

	for _, c := range clients {
		select {
		case c.messages <- data:
		default:
			log.Warn().Str("clientId", c.ID).Msg("SSE client too slow, dropping")
			b.RemoveClient(c)
		}
	}
}

// ClientCount returns the number of connected clients.
func (b *Broadcaster) ClientCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.clients)
}

// HandleSSE streams events to one HTTP client until it disconnects.
func (b *Broadcaster) HandleSSE(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	client := b.AddClient()
	defer b.RemoveClient(client)

	fmt.Fprintf(w, "data: {\"type\":\"connected\",\"clientId\":%q}\n\n", client.ID)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-client.done:
			return
		case msg := <-client.messages:
			if _, err := fmt.Fprintf(w, "data: %s\n\n", msg); err != nil {
				log.Debug().Err(err).Str("clientId", client.ID).Msg("SSE write failed")
				return
			}
			flusher.Flush()
		}
	}
}
