package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gammalabs/gamma-chat/internal/models"
	"github.com/google/uuid"
	"github.com/tmaxmax/go-sse"
)

// SSE event types for real-time updates.
var (
	chatsSSEType    = sse.Type("chats")
	messagesSSEType = sse.Type("messages")
)

// HandleChats processes a message send through an HTTP POST request. It expects a
// "message" form field plus optional "session_id" and "model_id" fields; a missing
// session id starts a new session, a missing model id selects the first catalog entry.
//
// The user message is committed to the session immediately. The provider response is
// produced asynchronously: a goroutine drives the dispatcher and publishes the
// accumulating text over SSE to a topic tied to the placeholder assistant message id,
// which is also where an eventual error message lands. The handler itself responds with
// rendered partials so the page can display the user message and the loading assistant
// placeholder right away.
func (m Main) HandleChats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		m.logger.Error("Method not allowed", slog.String("method", r.Method))
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	msg := r.FormValue("message")
	if msg == "" {
		m.logger.Error("Message is required")
		http.Error(w, "Message is required", http.StatusBadRequest)
		return
	}

	modelID := r.FormValue("model_id")
	if modelID == "" {
		modelID = models.Catalog[0].ID
	}

	var session models.Session
	isNewSession := false

	sessionID := r.FormValue("session_id")
	if sessionID == "" {
		session = models.NewSession(m.store.GenerateID(), modelID)
		isNewSession = true
	} else {
		var ok bool
		session, ok = m.findSession(sessionID)
		if !ok {
			m.logger.Error("Session not found", slog.String("sessionID", sessionID))
			http.Error(w, "Session not found", http.StatusNotFound)
			return
		}
	}

	userMsg := models.Message{
		ID:        uuid.New().String(),
		Role:      models.RoleUser,
		Content:   msg,
		Timestamp: time.Now(),
		Model:     modelID,
	}
	session.Append(userMsg)
	session.Model = modelID
	m.store.Save(session)

	aiMsgID := uuid.New().String()
	go m.streamResponse(session, msg, modelID, aiMsgID)

	if isNewSession {
		m.publishChatList(session.ID)

		data := chatPageData{
			CurrentSessionID: session.ID,
			CurrentModel:     modelID,
			Messages: []messageView{
				m.messageView(userMsg, "ended"),
				{ID: aiMsgID, Role: string(models.RoleAssistant), Model: modelID, StreamingState: "loading"},
			},
		}
		if err := m.templates.ExecuteTemplate(w, "chatbox", data); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	if err := m.templates.ExecuteTemplate(w, "user_message", m.messageView(userMsg, "ended")); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	err := m.templates.ExecuteTemplate(w, "ai_message", messageView{
		ID:             aiMsgID,
		Role:           string(models.RoleAssistant),
		Model:          modelID,
		StreamingState: "loading",
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// HandleDeleteSession removes a session by id. Deleting an unknown id is a no-op. The
// refreshed sidebar markup is written back so the page can swap it in place.
func (m Main) HandleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	sessionID := r.FormValue("session_id")
	if sessionID == "" {
		http.Error(w, "Session id is required", http.StatusBadRequest)
		return
	}

	m.store.Delete(sessionID)

	divs, err := m.chatDivs("")
	if err != nil {
		m.logger.Error("Failed to render chat list", slog.String(errLoggerKey, err.Error()))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if _, err := w.Write([]byte(divs)); err != nil {
		m.logger.Error("Failed to write response", slog.String(errLoggerKey, err.Error()))
	}
}

// streamResponse drives one dispatcher call and publishes the accumulating response to
// the message topic. The assistant message is committed to the session only once the
// stream completes; on failure the session keeps its prior state and the error text,
// rendered like any other message content, is published instead.
func (m Main) streamResponse(session models.Session, text, modelID, aiMsgID string) {
	defer func() {
		e := &sse.Message{Type: sse.Type("closeMessage")}
		e.AppendData("bye")
		_ = m.sseSrv.Publish(e)
	}()

	var accumulated strings.Builder
	full, err := m.dispatcher.SendMessage(context.Background(), text, modelID, func(fragment string) {
		accumulated.WriteString(fragment)

		e := &sse.Message{Type: messagesSSEType}
		e.AppendData(string(m.renderMarkdown(accumulated.String())))
		_ = m.sseSrv.Publish(e, messageIDTopic(aiMsgID))
	})
	if err != nil {
		m.logger.Error("Error from provider",
			slog.String("model", modelID),
			slog.String(errLoggerKey, err.Error()))

		e := &sse.Message{Type: messagesSSEType}
		e.AppendData(string(m.renderMarkdown(err.Error())))
		_ = m.sseSrv.Publish(e, messageIDTopic(aiMsgID))
		return
	}

	session.Append(models.Message{
		ID:        aiMsgID,
		Role:      models.RoleAssistant,
		Content:   full,
		Timestamp: time.Now(),
		Model:     modelID,
	})
	m.store.Save(session)

	m.publishChatList(session.ID)
}

func (m Main) publishChatList(activeID string) {
	divs, err := m.chatDivs(activeID)
	if err != nil {
		m.logger.Error("Failed to render chat list", slog.String(errLoggerKey, err.Error()))
		return
	}

	e := &sse.Message{Type: chatsSSEType}
	e.AppendData(divs)
	if err := m.sseSrv.Publish(e, chatsSSETopic); err != nil {
		m.logger.Error("Failed to publish chat list", slog.String(errLoggerKey, err.Error()))
	}
}

func (m Main) chatDivs(activeID string) (string, error) {
	var sb strings.Builder
	for _, ses := range m.store.List() {
		err := m.templates.ExecuteTemplate(&sb, "chat_title", sessionView{
			ID:           ses.ID,
			Title:        ses.Title,
			Active:       ses.ID == activeID,
			MessageCount: len(ses.Messages),
			UpdatedAt:    ses.UpdatedAt,
		})
		if err != nil {
			return "", err
		}
	}
	return sb.String(), nil
}

func (m Main) findSession(id string) (models.Session, bool) {
	for _, ses := range m.store.List() {
		if ses.ID == id {
			return ses, true
		}
	}
	return models.Session{}, false
}

func (m Main) messageView(msg models.Message, streamingState string) messageView {
	return messageView{
		ID:             msg.ID,
		Role:           string(msg.Role),
		Content:        m.renderMarkdown(msg.Content),
		Timestamp:      msg.Timestamp,
		Model:          msg.Model,
		StreamingState: streamingState,
	}
}
