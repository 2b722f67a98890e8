package models

import "time"

// DefaultSessionTitle is the title a session carries before its first user message.
const DefaultSessionTitle = "New Conversation"

// titleLimit is the number of runes kept when deriving a title from a message.
const titleLimit = 50

// Session is a persisted, titled conversation. Model reflects the model used for the most
// recent turn; individual messages carry their own model tag.
type Session struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Messages  []Message `json:"messages"`
	Model     string    `json:"model"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewSession creates an empty session with the given id and active model.
func NewSession(id, model string) Session {
	now := time.Now()
	return Session{
		ID:        id,
		Title:     DefaultSessionTitle,
		Model:     model,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Append adds a message to the session and refreshes UpdatedAt. The first user message
// sets the session title.
func (s *Session) Append(msg Message) {
	s.Messages = append(s.Messages, msg)
	s.UpdatedAt = time.Now()
	if msg.Role == RoleUser && (s.Title == "" || s.Title == DefaultSessionTitle) {
		s.Title = DeriveTitle(msg.Content)
	}
}

// DeriveTitle truncates a message to a session title, appending an ellipsis when the
// message is longer than the limit.
func DeriveTitle(content string) string {
	runes := []rune(content)
	if len(runes) <= titleLimit {
		return content
	}
	return string(runes[:titleLimit]) + "..."
}
