package store

import (
	"encoding/json"
	"log/slog"
	"math/rand/v2"
	"slices"
	"strconv"
	"time"

	"github.com/gammalabs/gamma-chat/internal/models"
)

// sessionsKey is the single namespaced key holding the serialized session list.
const sessionsKey = "gamma-chat-sessions"

// KV is the minimal key-value backing behind the session store. BoltKV provides the
// durable implementation; MemoryKV serves tests and ephemeral runs.
type KV interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
}

// Store persists the full list of chat sessions under one key, rewriting the whole list
// on every mutation. There is no cross-writer coordination; the last writer wins, which
// is acceptable while at most one send is in flight. Storage and parse failures are
// absorbed and logged, never surfaced: a Store with a nil or failing backing behaves as
// if it were empty.
type Store struct {
	kv KV

	logger *slog.Logger
}

// New creates a Store over the given backing. A nil backing is allowed and turns all
// operations into no-ops.
func New(kv KV, logger *slog.Logger) Store {
	return Store{
		kv:     kv,
		logger: logger.With(slog.String("module", "store")),
	}
}

// Save upserts the session by id and rewrites storage.
func (s Store) Save(session models.Session) {
	if s.kv == nil {
		return
	}

	sessions := s.load()
	idx := slices.IndexFunc(sessions, func(ses models.Session) bool { return ses.ID == session.ID })
	if idx >= 0 {
		sessions[idx] = session
	} else {
		sessions = append(sessions, session)
	}
	s.persist(sessions)
}

// List returns all persisted sessions, most recently updated first. Absent or
// unreadable data yields an empty list.
func (s Store) List() []models.Session {
	sessions := s.load()
	slices.SortFunc(sessions, func(a, b models.Session) int {
		return b.UpdatedAt.Compare(a.UpdatedAt)
	})
	return sessions
}

// Delete removes the session with the given id and rewrites storage. Unknown ids are a
// no-op.
func (s Store) Delete(id string) {
	if s.kv == nil {
		return
	}

	sessions := slices.DeleteFunc(s.load(), func(ses models.Session) bool { return ses.ID == id })
	s.persist(sessions)
}

// GenerateID produces a session identifier from the current time in base 36 plus a
// random base-36 suffix. Uniqueness is probabilistic; collisions are not checked
// against existing ids.
func (s Store) GenerateID() string {
	return strconv.FormatInt(time.Now().UnixMilli(), 36) + strconv.FormatInt(rand.Int64N(1<<62), 36)
}

func (s Store) load() []models.Session {
	if s.kv == nil {
		return nil
	}

	raw, err := s.kv.Get(sessionsKey)
	if err != nil {
		s.logger.Warn("Failed to read sessions", slog.String("err", err.Error()))
		return nil
	}
	if len(raw) == 0 {
		return nil
	}

	var sessions []models.Session
	if err := json.Unmarshal(raw, &sessions); err != nil {
		s.logger.Warn("Discarding unreadable session data", slog.String("err", err.Error()))
		return nil
	}
	return sessions
}

func (s Store) persist(sessions []models.Session) {
	raw, err := json.Marshal(sessions)
	if err != nil {
		s.logger.Error("Failed to marshal sessions", slog.String("err", err.Error()))
		return
	}
	if err := s.kv.Set(sessionsKey, raw); err != nil {
		s.logger.Error("Failed to write sessions", slog.String("err", err.Error()))
	}
}
