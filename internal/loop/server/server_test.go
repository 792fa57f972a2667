package server

import (
	"testing"
	"time"
)

func TestRegisterAssignsUniqueIDs(t *testing.T) {
	s := NewServer()
	a := s.RegisterClient("alice")
	b := s.RegisterClient("bob")

	if a.ID == b.ID {
		t.Fatalf("duplicate client id %d", a.ID)
	}
	if a.Username != "alice" || b.Username != "bob" {
		t.Fatalf("usernames not kept: %q %q", a.Username, b.Username)
	}
	if s.Clients() != 2 {
		t.Fatalf("Clients()=%d, want 2", s.Clients())
	}
}

func TestUnregisterClosesEvents(t *testing.T) {
	s := NewServer()
	h := s.RegisterClient("carol")
	s.UnregisterClient(h.ID)
	s.UnregisterClient(h.ID)

	if _, ok := <-h.EventsCh; ok {
		t.Fatalf("events channel still open")
	}
	if s.Clients() != 0 {
		t.Fatalf("Clients()=%d, want 0", s.Clients())
	}
}

func TestShutdownNotifiesAndWaits(t *testing.T) {
	s := NewServer()
	h := s.RegisterClient("dave")

	go func() {
		ev := <-h.EventsCh
		if ev.Type == EventServerShutdown {
			s.UnregisterClient(h.ID)
		}
	}()

	if !s.Shutdown(2 * time.Second) {
		t.Fatalf("Shutdown timed out with a cooperating client")
	}
}

func TestShutdownTimesOut(t *testing.T) {
	s := NewServer()
	s.RegisterClient("erin")

	start := time.Now()
	if s.Shutdown(50 * time.Millisecond) {
		t.Fatalf("Shutdown reported success with a client still connected")
	}
	if time.Since(start) > time.Second {
		t.Fatalf("Shutdown ignored its timeout")
	}
}

func TestShutdownWithoutClientsReturnsImmediately(t *testing.T) {
	if !NewServer().Shutdown(time.Hour) {
		t.Fatalf("empty server did not shut down")
	}
}

func TestRegisterDuringShutdownGetsEvent(t *testing.T) {
	s := NewServer()
	s.Shutdown(0)

	h := s.RegisterClient("late")
	select {
	case ev := <-h.EventsCh:
		if ev.Type != EventServerShutdown {
			t.Fatalf("unexpected event %v", ev.Type)
		}
	default:
		t.Fatalf("late client not told about shutdown")
	}
}
