// Package visitor assigns every browser an anonymous, stable visitor id.
//
// The id is a random uuid kept in a signed session cookie. It keys the
// visitor's saved resources, search history and cached location, and
// doubles as the session id that varies search ordering.
package visitor

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

// DefaultSessionName is used when no cookie name is configured.
const DefaultSessionName = "vethub-visitor"

const idKey = "visitor_id"

// maxAge keeps the visitor cookie for a year.
const maxAge = 365 * 24 * 60 * 60

type ctxKey string

const visitorIDKey ctxKey = "visitorID"

// Manager issues and reads visitor cookies.
type Manager struct {
	store *sessions.CookieStore
	name  string
	log   *zap.Logger
}

// NewManager creates a cookie-backed visitor manager. The `secure` flag
// controls whether cookies are marked Secure.
func NewManager(sessionKey, name string, secure bool, logger *zap.Logger) (*Manager, error) {
	if sessionKey == "" {
		return nil, fmt.Errorf("session key is empty; provide ≥32 random chars")
	}
	if len(sessionKey) < 32 {
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(sessionKey)))
	}
	if name == "" {
		name = DefaultSessionName
	}

	store := sessions.NewCookieStore([]byte(sessionKey))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	return &Manager{store: store, name: name, log: logger}, nil
}

// Middleware loads the visitor id from the cookie, issuing a new one when
// the cookie is missing or fails verification, and puts it in the request
// context.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := m.store.Get(r, m.name)
		if err != nil {
			if scErr, ok := err.(securecookie.Error); ok && scErr.IsDecode() {
				m.log.Debug("visitor cookie invalid, issuing a new one", zap.Error(err))
			} else {
				m.log.Warn("visitor cookie error, issuing a new one", zap.Error(err))
			}
		}

		id, _ := sess.Values[idKey].(string)
		if _, perr := uuid.Parse(id); perr != nil {
			id = uuid.NewString()
			sess.Values[idKey] = id
			if err := sess.Save(r, w); err != nil {
				m.log.Warn("failed to save visitor cookie", zap.Error(err))
			}
		}

		next.ServeHTTP(w, WithID(r, id))
	})
}

// ID returns the visitor id from the request context, or "" when the
// middleware did not run.
func ID(r *http.Request) string {
	id, _ := r.Context().Value(visitorIDKey).(string)
	return id
}

// WithID returns r with id as its visitor id.
func WithID(r *http.Request, id string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), visitorIDKey, id))
}
