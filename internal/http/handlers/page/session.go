package page

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aanand-mishra/orgconnect/internal/ui"
)

// CookieName identifies a browser's session.
const CookieName = "orgconnect_session"

// Sessions gives every browser its own ui.App, keyed by a random id kept
// in a cookie. Sessions idle for longer than the TTL are dropped and
// their pending redirects cancelled.
type Sessions struct {
	ttl    time.Duration
	newApp func() *ui.App
	now    func() time.Time

	mu       sync.Mutex
	sessions map[string]*session
}

type session struct {
	app      *ui.App
	lastSeen time.Time
}

// NewSessions returns an empty session store. newApp builds the state for
// a browser seen for the first time.
func NewSessions(ttl time.Duration, newApp func() *ui.App) *Sessions {
	return &Sessions{
		ttl:      ttl,
		newApp:   newApp,
		now:      time.Now,
		sessions: make(map[string]*session),
	}
}

// App returns the caller's App, starting a new session (and setting its
// cookie on w) when the request carries no live one.
func (s *Sessions) App(w http.ResponseWriter, r *http.Request) *ui.App {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.evictLocked(now)

	if c, err := r.Cookie(CookieName); err == nil {
		if sess, ok := s.sessions[c.Value]; ok {
			sess.lastSeen = now
			return sess.app
		}
	}

	id := uuid.NewString()
	sess := &session{app: s.newApp(), lastSeen: now}
	s.sessions[id] = sess

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	slog.Debug("session started", slog.String("session", id))

	return sess.app
}

// Len reports the number of live sessions.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.sessions)
}

// Close cancels every session's pending work.
func (s *Sessions) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, sess := range s.sessions {
		sess.app.Close()
		delete(s.sessions, id)
	}
}

func (s *Sessions) evictLocked(now time.Time) {
	if s.ttl <= 0 {
		return
	}
	for id, sess := range s.sessions {
		if now.Sub(sess.lastSeen) > s.ttl {
			sess.app.Close()
			delete(s.sessions, id)
			slog.Debug("session expired", slog.String("session", id))
		}
	}
}
