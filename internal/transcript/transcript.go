// Package transcript holds the conversation as an append-only list of
// messages and projects it into HTML or terminal markup.
package transcript

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser      Role = "You"
	RoleAssistant Role = "Assistant"
	RoleError     Role = "Error"
	RoleInfo      Role = "Info"
)

type Message struct {
	ID   uuid.UUID
	Role Role
	Text string
	// Preformatted text keeps its whitespace and line breaks when rendered.
	Preformatted bool
	At           time.Time
}

type Transcript struct {
	mu       sync.RWMutex
	messages []Message
	now      func() time.Time
}

func New() *Transcript {
	return &Transcript{now: time.Now}
}

// Append stores m at the end and returns the stored copy with ID and At set.
func (t *Transcript) Append(m Message) Message {
	t.mu.Lock()
	defer t.mu.Unlock()

	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.At.IsZero() {
		m.At = t.now()
	}
	t.messages = append(t.messages, m)
	return m
}

func (t *Transcript) User(text string) Message {
	return t.Append(Message{Role: RoleUser, Text: text})
}

func (t *Transcript) Assistant(text string) Message {
	return t.Append(Message{Role: RoleAssistant, Text: text, Preformatted: true})
}

func (t *Transcript) Error(text string) Message {
	return t.Append(Message{Role: RoleError, Text: text})
}

func (t *Transcript) Info(text string) Message {
	return t.Append(Message{Role: RoleInfo, Text: text, Preformatted: true})
}

// Messages returns a snapshot in append order.
func (t *Transcript) Messages() []Message {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]Message, len(t.messages))
	copy(out, t.messages)
	return out
}

func (t *Transcript) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.messages)
}
