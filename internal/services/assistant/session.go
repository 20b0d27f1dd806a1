package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
)

// DefaultReplyDelay is the pause between a question and its answer
const DefaultReplyDelay = 500 * time.Millisecond

// Message is one chat entry
type Message struct {
	Role    string    `json:"role"` // "user" or "assistant"
	Content string    `json:"content"`
	Time    time.Time `json:"time"`
}

// Source produces a fresh financial picture. The session calls it before
// the welcome digest and again before every answer, so replies always see
// edits made elsewhere in the app.
type Source func() (*Data, error)

// Session holds the chat history for one client
type Session struct {
	mu       sync.Mutex
	source   Source
	delay    time.Duration
	now      func() time.Time
	messages []Message
	opened   bool
}

func NewSession(source Source) *Session {
	return &Session{
		source: source,
		delay:  DefaultReplyDelay,
		now:    time.Now,
	}
}

// SetDelay overrides the pause before each reply. Zero disables it.
func (s *Session) SetDelay(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delay = d
}

// Open records the welcome digest the first time it is called; later
// calls just return the history
func (s *Session) Open() ([]Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.opened {
		data, err := s.source()
		if err != nil {
			return nil, fmt.Errorf("load financial data: %w", err)
		}
		s.opened = true
		s.append("assistant", WelcomeMessage(data, s.now()))
	}
	return s.history(), nil
}

// Ask records the question, waits out the reply delay and records the
// answer. Cancelling the context during the delay discards the pending
// reply; the question stays in the history.
func (s *Session) Ask(ctx context.Context, question string) (Message, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return Message{}, errors.New("empty question")
	}

	s.mu.Lock()
	s.append("user", question)
	delay := s.delay
	s.mu.Unlock()

	if delay > 0 {
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return Message{}, ctx.Err()
		case <-timer.C:
		}
	}

	data, err := s.source()
	if err != nil {
		return Message{}, fmt.Errorf("load financial data: %w", err)
	}
	answer := Respond(question, data, s.now())

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.append("assistant", answer), nil
}

// Messages returns a copy of the chat history
func (s *Session) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history()
}

// Reset clears the history; the next Open shows the welcome digest again
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = nil
	s.opened = false
}

// append must be called with the lock held
func (s *Session) append(role, content string) Message {
	msg := Message{Role: role, Content: content, Time: s.now()}
	s.messages = append(s.messages, msg)
	return msg
}

// history must be called with the lock held
func (s *Session) history() []Message {
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}
