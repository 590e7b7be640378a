// Package visitor identifies anonymous visitors with a signed cookie so each
// browser gets its own pipeline.
package visitor

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

const (
	SessionName       = "trendscout_visitor"
	VisitorIDKey      = "visitor_id"
	SessionCreatedKey = "created_at"

	sessionMaxAge = 86400 * 7 // 7 days
)

var ErrNoVisitor = errors.New("no visitor session")

type Manager struct {
	store *sessions.CookieStore
}

func NewManager(secret string) *Manager {
	if secret == "" {
		slog.Warn("SESSION_SECRET not set; visitor cookies will not survive a restart")
		secret = generateSecret()
	}
	return &Manager{
		store: sessions.NewCookieStore([]byte(secret)),
	}
}

func generateSecret() string {
	b := make([]byte, 32)
	_, _ = rand.Read(b)
	return base64.StdEncoding.EncodeToString(b)
}

// VisitorID returns the visitor id stored in the request's cookie.
func (m *Manager) VisitorID(r *http.Request) (string, error) {
	session, err := m.store.Get(r, SessionName)
	if err != nil {
		_, cookieErr := r.Cookie(SessionName)
		slog.Warn("failed to decode visitor session", "error", err, "host", r.Host, "has_cookie", cookieErr == nil)
		return "", err
	}

	val, ok := session.Values[VisitorIDKey]
	if !ok {
		return "", ErrNoVisitor
	}
	id, ok := val.(string)
	if !ok || id == "" {
		return "", ErrNoVisitor
	}
	return id, nil
}

// Ensure returns the request's visitor id, issuing a new cookie when the
// request has none or it cannot be decoded.
func (m *Manager) Ensure(w http.ResponseWriter, r *http.Request) (string, error) {
	if id, err := m.VisitorID(r); err == nil {
		return id, nil
	}

	// A cookie signed with an old secret decodes with an error; start over.
	session, _ := m.store.New(r, SessionName)
	id := uuid.NewString()
	session.Values[VisitorIDKey] = id
	session.Values[SessionCreatedKey] = time.Now().Unix()

	isHTTPS := r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https"
	session.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   sessionMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   isHTTPS,
	}

	if err := session.Save(r, w); err != nil {
		return "", err
	}
	return id, nil
}
