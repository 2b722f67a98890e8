package handlers

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	gammachat "github.com/gammalabs/gamma-chat"
	"github.com/gammalabs/gamma-chat/internal/models"
	"github.com/tmaxmax/go-sse"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting"
	"github.com/yuin/goldmark/extension"
)

// Dispatcher routes a user message to the provider serving the requested model and
// streams the response back through the chunk callback. See internal/providers.
type Dispatcher interface {
	SendMessage(ctx context.Context, text, modelID string, onChunk func(string)) (string, error)
}

// SessionStore persists the durable collection of chat sessions. Operations absorb
// storage failures; List returns sessions most recently updated first.
type SessionStore interface {
	Save(session models.Session)
	List() []models.Session
	Delete(id string)
	GenerateID() string
}

// Main handles the web frontend: page rendering, message sends, and server-sent events
// carrying streamed response fragments to the browser.
type Main struct {
	sseSrv    *sse.Server
	templates *template.Template
	markdown  goldmark.Markdown

	dispatcher Dispatcher
	store      SessionStore

	logger *slog.Logger
}

const (
	chatsSSETopic = "chats"
	errLoggerKey  = "err"
)

// NewMain creates a Main instance with the provided dispatcher and store. It parses the
// embedded HTML templates and configures the SSE server so each client subscribes to the
// chat-list topic plus, optionally, one message-specific topic.
func NewMain(dispatcher Dispatcher, store SessionStore, logger *slog.Logger) (Main, error) {
	tmpl, err := template.ParseFS(
		gammachat.TemplateFS,
		"templates/layout/*.html",
		"templates/pages/*.html",
		"templates/partials/*.html",
	)
	if err != nil {
		return Main{}, err
	}

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(highlighting.WithStyle("monokai")),
		),
	)

	return Main{
		sseSrv: &sse.Server{
			OnSession: func(s *sse.Session) (sse.Subscription, bool) {
				topics := []string{sse.DefaultTopic, chatsSSETopic}

				messageID := s.Req.URL.Query().Get("message_id")
				if messageID != "" {
					topics = append(topics, messageIDTopic(messageID))
				}

				return sse.Subscription{
					Client:      s,
					LastEventID: s.LastEventID,
					Topics:      topics,
				}, true
			},
		},
		templates:  tmpl,
		markdown:   md,
		dispatcher: dispatcher,
		store:      store,
		logger:     logger.With(slog.String("module", "handlers")),
	}, nil
}

func messageIDTopic(messageID string) string {
	return fmt.Sprintf("message-%s", messageID)
}

// HandleSSE serves the event stream the chat page subscribes to.
func (m Main) HandleSSE(w http.ResponseWriter, r *http.Request) {
	m.sseSrv.ServeHTTP(w, r)
}

// renderMarkdown converts message content to HTML. If conversion fails the content is
// escaped and returned as-is.
func (m Main) renderMarkdown(content string) template.HTML {
	var buf bytes.Buffer
	if err := m.markdown.Convert([]byte(content), &buf); err != nil {
		m.logger.Warn("Failed to render markdown", slog.String(errLoggerKey, err.Error()))
		return template.HTML(template.HTMLEscapeString(content)) //nolint:gosec
	}
	return template.HTML(buf.String()) //nolint:gosec
}

// Shutdown gracefully terminates the SSE server, broadcasting a close message to all
// connected clients and waiting up to 5 seconds for connections to terminate.
func (m Main) Shutdown(ctx context.Context) error {
	e := &sse.Message{Type: sse.Type("closeChat")}
	e.AppendData("bye")

	_ = m.sseSrv.Publish(e)

	ctx, cancel := context.WithTimeout(ctx, time.Second*5)
	defer cancel()

	return m.sseSrv.Shutdown(ctx)
}
