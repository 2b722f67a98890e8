package handlers

import (
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/gammalabs/gamma-chat/internal/models"
)

type sessionView struct {
	ID           string
	Title        string
	Active       bool
	MessageCount int
	UpdatedAt    time.Time
}

type messageView struct {
	ID        string
	Role      string
	Content   template.HTML
	Timestamp time.Time
	Model     string

	StreamingState string
}

type homePageData struct {
	Models []models.Model
}

type chatPageData struct {
	Sessions         []sessionView
	Models           []models.Model
	CurrentSessionID string
	CurrentModel     string
	Messages         []messageView
}

// HandleHome renders the landing page.
func (m Main) HandleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	data := homePageData{
		Models: models.Catalog,
	}
	if err := m.templates.ExecuteTemplate(w, "home.html", data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// HandleChatPage renders the chat page: the session sidebar (most recently updated
// first), the model selector, and the history of the selected session, if any.
func (m Main) HandleChatPage(w http.ResponseWriter, r *http.Request) {
	sessions := m.store.List()
	currentID := r.URL.Query().Get("session_id")

	data := chatPageData{
		Models:           models.Catalog,
		CurrentSessionID: currentID,
		CurrentModel:     models.Catalog[0].ID,
	}

	for _, ses := range sessions {
		data.Sessions = append(data.Sessions, sessionView{
			ID:           ses.ID,
			Title:        ses.Title,
			Active:       ses.ID == currentID,
			MessageCount: len(ses.Messages),
			UpdatedAt:    ses.UpdatedAt,
		})

		if ses.ID != currentID {
			continue
		}
		data.CurrentModel = ses.Model
		for _, msg := range ses.Messages {
			data.Messages = append(data.Messages, messageView{
				ID:             msg.ID,
				Role:           string(msg.Role),
				Content:        m.renderMarkdown(msg.Content),
				Timestamp:      msg.Timestamp,
				Model:          msg.Model,
				StreamingState: "ended",
			})
		}
	}

	if err := m.templates.ExecuteTemplate(w, "chat.html", data); err != nil {
		m.logger.Error("Failed to render chat page", slog.String(errLoggerKey, err.Error()))
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
