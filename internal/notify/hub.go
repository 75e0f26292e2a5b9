// Package notify fans events out to connected UI surfaces.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Surface names the kind of UI a session belongs to.
type Surface string

const (
	// SurfaceOverlay is the in-page player overlay.
	SurfaceOverlay Surface = "overlay"
	// SurfacePanel is the standalone management panel.
	SurfacePanel Surface = "panel"
)

// Event is one message pushed to a session.
type Event struct {
	Action  string `json:"action"`
	Payload any    `json:"payload,omitempty"`
}

// Session is one connected surface.
type Session struct {
	ID      string
	Surface Surface
	// Events is the outbound queue. The hub never closes it; a reader
	// leaves by unregistering and abandoning the channel.
	Events chan Event

	videoID  string
	lastSeen time.Time
}

// Hub tracks connected sessions and delivers events to them. Delivery
// is best effort: a session whose queue is full just misses the event,
// every surface re-reads state from the store on reconnect anyway.
type Hub struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		sessions: make(map[string]*Session),
	}
}

// Register adds a new session for a surface and returns it.
func (h *Hub) Register(surface Surface) *Session {
	s := &Session{
		ID:       uuid.NewString(),
		Surface:  surface,
		Events:   make(chan Event, 16),
		lastSeen: time.Now(),
	}

	h.mu.Lock()
	h.sessions[s.ID] = s
	h.mu.Unlock()
	return s
}

// Unregister drops a session. The event channel is left open so a
// concurrent Publish can never hit a closed channel.
func (h *Hub) Unregister(id string) {
	h.mu.Lock()
	delete(h.sessions, id)
	h.mu.Unlock()
}

// Touch marks a session as alive.
func (h *Hub) Touch(id string) {
	h.mu.Lock()
	if s, ok := h.sessions[id]; ok {
		s.lastSeen = time.Now()
	}
	h.mu.Unlock()
}

// SetVideo records which video a session is currently on.
func (h *Hub) SetVideo(id, videoID string) {
	h.mu.Lock()
	if s, ok := h.sessions[id]; ok {
		s.videoID = videoID
		s.lastSeen = time.Now()
	}
	h.mu.Unlock()
}

// CurrentVideo returns the video a session reported last.
func (h *Hub) CurrentVideo(id string) (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	s, ok := h.sessions[id]
	if !ok {
		return "", false
	}
	return s.videoID, true
}

// HasOverlay reports whether any overlay session is connected.
func (h *Hub) HasOverlay() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, s := range h.sessions {
		if s.Surface == SurfaceOverlay {
			return true
		}
	}
	return false
}

// Publish sends an event to every session. Sessions with a full queue
// are skipped.
func (h *Hub) Publish(ev Event) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	delivered := 0
	for _, s := range h.sessions {
		select {
		case s.Events <- ev:
			delivered++
		default:
		}
	}
	return delivered
}

// PublishTo sends an event to the sessions of one surface.
func (h *Hub) PublishTo(surface Surface, ev Event) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	delivered := 0
	for _, s := range h.sessions {
		if s.Surface != surface {
			continue
		}
		select {
		case s.Events <- ev:
			delivered++
		default:
		}
	}
	return delivered
}

// Len returns the number of connected sessions.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions)
}

// SweepStale drops every session not seen within ttl and returns how
// many were removed.
func (h *Hub) SweepStale(ttl time.Duration) int {
	cutoff := time.Now().Add(-ttl)

	h.mu.Lock()
	defer h.mu.Unlock()

	removed := 0
	for id, s := range h.sessions {
		if s.lastSeen.Before(cutoff) {
			delete(h.sessions, id)
			removed++
		}
	}
	return removed
}
