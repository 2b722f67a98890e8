package models

import "time"

// Role represents the author of a message.
type Role string

const (
	// RoleUser marks a message submitted by the user.
	RoleUser Role = "user"
	// RoleAssistant marks a message produced by a provider.
	RoleAssistant Role = "assistant"
)

// Message is a single entry in a chat session. Model records the model that produced an
// assistant message, so history stays accurate when a session later switches models.
type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	Model     string    `json:"model,omitempty"`
}
