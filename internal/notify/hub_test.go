package notify

import (
	"testing"
	"time"
)

func TestHubRegisterUnregister(t *testing.T) {
	h := NewHub()

	s := h.Register(SurfaceOverlay)
	if s.ID == "" {
		t.Fatal("Register() returned an empty session id")
	}
	if h.Len() != 1 {
		t.Errorf("Len() = %d, want 1", h.Len())
	}

	h.Unregister(s.ID)
	if h.Len() != 0 {
		t.Errorf("Len() = %d after unregister, want 0", h.Len())
	}
}

func TestHubPublishReachesAll(t *testing.T) {
	h := NewHub()
	a := h.Register(SurfaceOverlay)
	b := h.Register(SurfacePanel)

	if got := h.Publish(Event{Action: "tagsUpdated"}); got != 2 {
		t.Errorf("Publish() delivered = %d, want 2", got)
	}

	for _, s := range []*Session{a, b} {
		select {
		case ev := <-s.Events:
			if ev.Action != "tagsUpdated" {
				t.Errorf("received action %q", ev.Action)
			}
		default:
			t.Errorf("session %s received nothing", s.ID)
		}
	}
}

func TestHubPublishToSurface(t *testing.T) {
	h := NewHub()
	overlay := h.Register(SurfaceOverlay)
	panel := h.Register(SurfacePanel)

	if got := h.PublishTo(SurfaceOverlay, Event{Action: "jumpToTime"}); got != 1 {
		t.Errorf("PublishTo() delivered = %d, want 1", got)
	}
	select {
	case <-overlay.Events:
	default:
		t.Error("overlay session received nothing")
	}
	select {
	case <-panel.Events:
		t.Error("panel session should not receive overlay events")
	default:
	}
}

func TestHubPublishSkipsFullQueue(t *testing.T) {
	h := NewHub()
	s := h.Register(SurfacePanel)

	for i := 0; i < cap(s.Events); i++ {
		s.Events <- Event{Action: "fill"}
	}

	if got := h.Publish(Event{Action: "overflow"}); got != 0 {
		t.Errorf("Publish() delivered = %d to a full queue, want 0", got)
	}
}

func TestHubPublishAfterUnregisterDoesNotPanic(t *testing.T) {
	h := NewHub()
	s := h.Register(SurfaceOverlay)
	h.Unregister(s.ID)

	// The channel stays open, so this must be safe.
	h.Publish(Event{Action: "tagsUpdated"})
}

func TestHubHasOverlay(t *testing.T) {
	h := NewHub()
	if h.HasOverlay() {
		t.Error("HasOverlay() = true on empty hub")
	}

	h.Register(SurfacePanel)
	if h.HasOverlay() {
		t.Error("HasOverlay() = true with only a panel session")
	}

	s := h.Register(SurfaceOverlay)
	if !h.HasOverlay() {
		t.Error("HasOverlay() = false with an overlay session")
	}

	h.Unregister(s.ID)
	if h.HasOverlay() {
		t.Error("HasOverlay() = true after the overlay left")
	}
}

func TestHubCurrentVideo(t *testing.T) {
	h := NewHub()
	s := h.Register(SurfaceOverlay)

	if _, ok := h.CurrentVideo(s.ID); !ok {
		t.Error("CurrentVideo() should find a registered session")
	}

	h.SetVideo(s.ID, "abc123")
	vid, ok := h.CurrentVideo(s.ID)
	if !ok || vid != "abc123" {
		t.Errorf("CurrentVideo() = %q, %v", vid, ok)
	}

	if _, ok := h.CurrentVideo("unknown"); ok {
		t.Error("CurrentVideo() found an unknown session")
	}
}

func TestHubSweepStale(t *testing.T) {
	h := NewHub()
	stale := h.Register(SurfaceOverlay)
	fresh := h.Register(SurfacePanel)

	h.mu.Lock()
	h.sessions[stale.ID].lastSeen = time.Now().Add(-time.Hour)
	h.mu.Unlock()

	if got := h.SweepStale(10 * time.Minute); got != 1 {
		t.Errorf("SweepStale() removed = %d, want 1", got)
	}
	if h.Len() != 1 {
		t.Errorf("Len() = %d after sweep, want 1", h.Len())
	}
	if _, ok := h.CurrentVideo(fresh.ID); !ok {
		t.Error("SweepStale() removed a fresh session")
	}
}
