// Package sse streams evaluation events to browsers and scripts via
// Server-Sent Events.
package sse

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/felixgeelhaar/stackaudit/pkg/domain/events"
)

type frame struct {
	id        uint64
	eventType string
	data      []byte
}

// Handler fans out every dispatched event to the connected clients. Slow
// clients miss events rather than blocking the evaluation.
type Handler struct {
	mu      sync.RWMutex
	clients map[chan frame]struct{}
	seq     atomic.Uint64
}

// NewHandler creates a Handler with no subscribers.
func NewHandler() *Handler {
	return &Handler{clients: make(map[chan frame]struct{})}
}

// Registration subscribes the handler to all events of a dispatcher.
func (h *Handler) Registration() events.HandlerRegistration {
	return events.HandlerRegistration{
		Name:       "sse",
		EventTypes: []string{"*"},
		Handler:    h.publish,
	}
}

// Clients returns the number of connected clients.
func (h *Handler) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Handler) publish(_ context.Context, e events.DomainEvent) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	f := frame{id: h.seq.Add(1), eventType: e.EventType(), data: data}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.clients {
		select {
		case ch <- f:
		default:
		}
	}
	return nil
}

// ServeHTTP streams events until the client disconnects. The optional
// "types" query parameter is a comma-separated list of event types.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	typeFilter := make(map[string]bool)
	if types := r.URL.Query().Get("types"); types != "" {
		for _, t := range strings.Split(types, ",") {
			typeFilter[strings.TrimSpace(t)] = true
		}
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	ch := make(chan frame, 64)
	h.mu.Lock()
	h.clients[ch] = struct{}{}
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, ch)
		h.mu.Unlock()
		close(ch)
	}()

	_, _ = fmt.Fprint(w, ": connected\n\n")
	flusher.Flush()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case f := <-ch:
			if len(typeFilter) > 0 && !typeFilter[f.eventType] {
				continue
			}
			_, _ = fmt.Fprintf(w, "id: %d\n", f.id)
			_, _ = fmt.Fprintf(w, "event: %s\n", f.eventType)
			_, _ = fmt.Fprintf(w, "data: %s\n\n", f.data)
			flusher.Flush()
		}
	}
}
