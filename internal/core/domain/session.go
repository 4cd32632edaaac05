package domain

import "time"

// Role identifies the author of a session item.
type Role string

// Session item roles.
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// SessionItem is one message of the accumulated conversation.
type SessionItem struct {
	ID        string
	Role      Role
	Content   string
	CreatedAt time.Time
}

// Session is the accumulated, ordered conversational context shared by every
// fragment of a run, and by later runs that reuse the same ID.
//
// A Session has a single writer: the session driver threads it explicitly
// through each agent call and records the exchange after the call resolves.
// It carries no lock.
type Session struct {
	ID    string
	items []SessionItem
}

// NewSession creates a session with previously persisted items.
func NewSession(id string, items []SessionItem) *Session {
	s := &Session{ID: id}
	s.items = append(s.items, items...)
	return s
}

// Len returns the number of items in the session.
func (s *Session) Len() int {
	return len(s.items)
}

// History returns the most recent limit items in order. A limit of zero
// or less returns the whole history. The returned slice is a copy.
func (s *Session) History(limit int) []SessionItem {
	start := 0
	if limit > 0 && len(s.items) > limit {
		start = len(s.items) - limit
	}
	out := make([]SessionItem, len(s.items)-start)
	copy(out, s.items[start:])
	return out
}

// Record appends items to the session.
func (s *Session) Record(items ...SessionItem) {
	s.items = append(s.items, items...)
}
