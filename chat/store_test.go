package chat

import (
	"testing"

	"quick-chat-client/llm"
)

func TestStoreAppendOrder(t *testing.T) {
	s := NewStore()

	s.AppendUser("first", nil)
	s.AppendAssistantPlaceholder()
	s.AppendUser("second", nil)

	msgs := s.Messages()
	if len(msgs) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(msgs))
	}
	if msgs[0].Content != "first" || msgs[0].Role != llm.RoleUser {
		t.Errorf("unexpected first message: %+v", msgs[0])
	}
	if msgs[1].Role != llm.RoleAssistant || msgs[1].Content != "" {
		t.Errorf("expected empty assistant placeholder, got %+v", msgs[1])
	}
	if msgs[2].Content != "second" {
		t.Errorf("unexpected third message: %+v", msgs[2])
	}
}

func TestStoreUniqueIDs(t *testing.T) {
	s := NewStore()
	a := s.AppendUser("a", nil)
	b := s.AppendUser("b", nil)

	if a.ID == "" || b.ID == "" {
		t.Fatal("messages must have ids assigned at creation")
	}
	if a.ID == b.ID {
		t.Error("message ids must be unique")
	}
}

func TestStoreUpdateAssistant(t *testing.T) {
	s := NewStore()
	s.AppendUser("question", nil)
	placeholder := s.AppendAssistantPlaceholder()

	s.UpdateAssistant(placeholder.ID, "Hel", "")
	s.UpdateAssistant(placeholder.ID, "Hello", "because")

	msgs := s.Messages()
	if msgs[1].Content != "Hello" {
		t.Errorf("expected overwritten content %q, got %q", "Hello", msgs[1].Content)
	}
	if msgs[1].Reasoning != "because" {
		t.Errorf("expected reasoning %q, got %q", "because", msgs[1].Reasoning)
	}
}

func TestStoreUpdateUnknownID(t *testing.T) {
	s := NewStore()
	s.AppendUser("question", nil)

	// A stale stream updating a reset conversation must be a no-op
	s.UpdateAssistant("missing", "text", "")

	if s.Messages()[0].Content != "question" {
		t.Error("update with unknown id must not touch other messages")
	}
}

func TestStoreRemove(t *testing.T) {
	s := NewStore()
	s.AppendUser("question", nil)
	placeholder := s.AppendAssistantPlaceholder()

	if !s.Remove(placeholder.ID) {
		t.Fatal("expected placeholder to be removed")
	}
	if s.Len() != 1 {
		t.Fatalf("expected 1 message after rollback, got %d", s.Len())
	}
	if s.Remove(placeholder.ID) {
		t.Error("removing a removed id must report false")
	}
}

func TestStoreReset(t *testing.T) {
	s := NewStore()
	s.AppendUser("question", nil)
	s.AppendAssistantPlaceholder()

	s.Reset()
	if s.Len() != 0 {
		t.Fatalf("expected empty store after reset, got %d messages", s.Len())
	}
}

func TestStoreSnapshotIsolation(t *testing.T) {
	s := NewStore()
	s.AppendUser("question", nil)
	placeholder := s.AppendAssistantPlaceholder()

	snapshot := s.Snapshot()
	s.UpdateAssistant(placeholder.ID, "streamed text", "")

	if snapshot[1].Content != "" {
		t.Error("snapshot must not observe later mutations")
	}

	// Mutating the snapshot must not leak back either
	snapshot[0].Content = "tampered"
	if s.Messages()[0].Content != "question" {
		t.Error("mutating a snapshot must not affect the store")
	}
}
