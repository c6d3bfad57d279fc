// Package chat holds the in-memory conversation state owned by the UI.
package chat

import (
	"sync"

	"quick-chat-client/llm"
)

// Store is the ordered list of messages for the current conversation.
// The UI appends a user message and an assistant placeholder before each
// send, then overwrites the placeholder's text from progress callbacks.
//
// The mutex only guards against the network goroutine's callbacks racing a
// concurrent snapshot; all structural changes happen on the UI thread.
type Store struct {
	mu       sync.Mutex
	messages []*llm.Message
}

// NewStore creates an empty conversation store
func NewStore() *Store {
	return &Store{}
}

// AppendUser appends a user message and returns it
func (s *Store) AppendUser(content string, images []llm.ImageAttachment) *llm.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg := llm.NewUserMessage(content, images)
	s.messages = append(s.messages, msg)
	return msg
}

// AppendAssistantPlaceholder appends an empty assistant message to be
// filled in-place while the response streams
func (s *Store) AppendAssistantPlaceholder() *llm.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg := llm.NewAssistantPlaceholder()
	s.messages = append(s.messages, msg)
	return msg
}

// UpdateAssistant overwrites a message's content and reasoning with the
// cumulative values from a progress callback. Unknown ids are ignored;
// the stream may outlive a conversation that was already reset.
func (s *Store) UpdateAssistant(id, content, reasoning string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, msg := range s.messages {
		if msg.ID == id {
			msg.Content = content
			msg.Reasoning = reasoning
			return
		}
	}
}

// Remove deletes a message by id, used to roll back a placeholder after a
// failed send. Returns true if a message was removed.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, msg := range s.messages {
		if msg.ID == id {
			s.messages = append(s.messages[:i], s.messages[i+1:]...)
			return true
		}
	}
	return false
}

// Reset clears the conversation for a new chat
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages = nil
}

// Len returns the number of messages
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.messages)
}

// Messages returns the current message pointers in order, for rendering
func (s *Store) Messages() []*llm.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*llm.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Snapshot returns a value copy of the conversation to hand to the
// streaming client, which never retains it beyond the call
func (s *Store) Snapshot() []llm.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]llm.Message, len(s.messages))
	for i, msg := range s.messages {
		out[i] = *msg
	}
	return out
}
