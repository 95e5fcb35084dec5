// Package conversation holds the in-memory dialogue state for RFP drafting
// sessions. It is the single source of truth for message history during the
// process lifetime; nothing here survives a restart.
package conversation

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/barenakeddev/intelliplan-sub000/internal/models"
)

// ErrNotFound is returned when a conversation id has no matching state.
var ErrNotFound = errors.New("conversation not found")

// Message is one immutable turn of the dialogue transcript. Insertion order
// is the model's conditioning context.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Conversation is the mutable state of one drafting session. All access goes
// through methods guarded by the internal mutex.
type Conversation struct {
	ID        string
	CreatedAt time.Time

	mu           sync.Mutex
	messages     []Message
	messageCount int
	extraction   *models.ExtractionResult
}

// Append adds a message to the history and bumps the message counter.
func (c *Conversation) Append(role, content string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, Message{Role: role, Content: content})
	c.messageCount++
}

// History returns a copy of the message list; callers may read or mutate it
// freely without affecting the live transcript.
func (c *Conversation) History() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Len returns the current message counter.
func (c *Conversation) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.messageCount
}

// ReplaceHistory swaps the transcript for a compacted one and resets the
// message counter to the new length. Used by context compaction only.
func (c *Conversation) ReplaceHistory(msgs []Message) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = make([]Message, len(msgs))
	copy(c.messages, msgs)
	c.messageCount = len(c.messages)
}

// SetExtraction stores the accumulated extraction state for this conversation.
func (c *Conversation) SetExtraction(r *models.ExtractionResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.extraction = r
}

// Extraction returns a copy of the accumulated extraction state, or nil if
// no extraction has run yet.
func (c *Conversation) Extraction() *models.ExtractionResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.extraction.Clone()
}

// Store is the in-memory conversation registry. It is constructed once at
// process start and injected into the services that need dialogue state;
// there is no package-level singleton.
type Store struct {
	mu            sync.RWMutex
	conversations map[string]*Conversation
}

// NewStore creates an empty conversation store.
func NewStore() *Store {
	return &Store{conversations: make(map[string]*Conversation)}
}

// Create registers a new conversation seeded with the given messages and
// returns it. Ids are random UUIDs, safe under rapid successive creation.
func (s *Store) Create(seed ...Message) *Conversation {
	conv := &Conversation{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
	}
	conv.messages = append(conv.messages, seed...)
	conv.messageCount = len(conv.messages)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.conversations[conv.ID] = conv
	return conv
}

// Get returns the conversation for id, or ErrNotFound.
func (s *Store) Get(id string) (*Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	conv, ok := s.conversations[id]
	if !ok {
		return nil, ErrNotFound
	}
	return conv, nil
}

// Len returns the number of live conversations.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.conversations)
}
