package curation

import (
	"sync"
	"testing"
)

func TestManagerSession(t *testing.T) {
	m := NewManager("chat")

	s1 := m.Session("abc")
	if s1 == nil {
		t.Fatal("Session returned nil")
	}
	if s1.SessionID != "abc" || s1.Variant != "chat" {
		t.Errorf("state = %q/%q, want abc/chat", s1.SessionID, s1.Variant)
	}

	if m.Session("abc") != s1 {
		t.Error("Session should return the same state for the same id")
	}
	if m.Len() != 1 {
		t.Errorf("Len() = %d, want 1", m.Len())
	}
}

func TestManagerNewSession(t *testing.T) {
	m := NewManager("")

	a := m.NewSession()
	b := m.NewSession()
	if a.SessionID == b.SessionID {
		t.Error("generated session ids should be unique")
	}
	if m.Len() != 2 {
		t.Errorf("Len() = %d, want 2", m.Len())
	}
}

func TestManagerPeekAndEnd(t *testing.T) {
	m := NewManager("")

	if _, ok := m.Peek("ghost"); ok {
		t.Error("Peek must not create sessions")
	}

	m.Session("abc")
	if _, ok := m.Peek("abc"); !ok {
		t.Error("Peek should find an existing session")
	}

	m.End("abc")
	if _, ok := m.Peek("abc"); ok {
		t.Error("End should remove the session")
	}
	if m.Len() != 0 {
		t.Errorf("Len() = %d, want 0", m.Len())
	}
}

func TestManagerConcurrentAccess(t *testing.T) {
	m := NewManager("")

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Session("shared")
			m.Peek("shared")
			m.Len()
		}()
	}
	wg.Wait()

	if m.Len() != 1 {
		t.Errorf("Len() = %d, want 1 after concurrent creation of one id", m.Len())
	}
}
