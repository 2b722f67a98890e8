package models_test

import (
	"strings"
	"testing"
	"time"

	"github.com/gammalabs/gamma-chat/internal/models"
)

func TestDeriveTitle(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "short message",
			content: "Hello",
			want:    "Hello",
		},
		{
			name:    "exactly at the limit",
			content: strings.Repeat("a", 50),
			want:    strings.Repeat("a", 50),
		},
		{
			name:    "over the limit",
			content: strings.Repeat("a", 60),
			want:    strings.Repeat("a", 50) + "...",
		},
		{
			name:    "multibyte runes",
			content: strings.Repeat("é", 60),
			want:    strings.Repeat("é", 50) + "...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := models.DeriveTitle(tt.content); got != tt.want {
				t.Errorf("DeriveTitle() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSessionAppend(t *testing.T) {
	session := models.NewSession("abc", "gpt-4")
	if session.Title != models.DefaultSessionTitle {
		t.Fatalf("NewSession().Title = %q, want %q", session.Title, models.DefaultSessionTitle)
	}

	before := session.UpdatedAt
	time.Sleep(time.Millisecond)

	session.Append(models.Message{ID: "1", Role: models.RoleUser, Content: "What is gravity?"})
	if session.Title != "What is gravity?" {
		t.Errorf("Title after first user message = %q, want %q", session.Title, "What is gravity?")
	}
	if !session.UpdatedAt.After(before) {
		t.Error("UpdatedAt was not refreshed by Append")
	}

	// Later user messages must not retitle the session.
	session.Append(models.Message{ID: "2", Role: models.RoleAssistant, Content: "A force."})
	session.Append(models.Message{ID: "3", Role: models.RoleUser, Content: "Tell me more"})
	if session.Title != "What is gravity?" {
		t.Errorf("Title after later messages = %q, want %q", session.Title, "What is gravity?")
	}

	if len(session.Messages) != 3 {
		t.Errorf("len(Messages) = %d, want 3", len(session.Messages))
	}
}

func TestSessionAppendAssistantFirst(t *testing.T) {
	session := models.NewSession("abc", "gpt-4")

	session.Append(models.Message{ID: "1", Role: models.RoleAssistant, Content: "Welcome!"})
	if session.Title != models.DefaultSessionTitle {
		t.Errorf("Title after assistant message = %q, want %q", session.Title, models.DefaultSessionTitle)
	}
}
