package session

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"
)

const (
	sessionName = "faide_session"
	visitorKey  = "visitor_id"
)

// Manager assigns each browser a stable anonymous visitor ID. The ID keys the
// visitor's cart and checkout-profile snapshots; there is no account state.
type Manager struct {
	store sessions.Store
}

func NewManager(secret string) *Manager {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 30, // 30 days
		HttpOnly: true,
		Secure:   false, // behind TLS-terminating proxy in production
		SameSite: http.SameSiteLaxMode,
	}
	return &Manager{store: store}
}

// VisitorID returns the visitor ID from the session, minting and saving a new
// one on first contact.
func (m *Manager) VisitorID(c echo.Context) (string, error) {
	session, err := m.store.Get(c.Request(), sessionName)
	if err != nil {
		// A cookie signed with an old secret decodes with an error but still
		// yields a usable new session.
		session, _ = m.store.New(c.Request(), sessionName)
	}

	if id, ok := session.Values[visitorKey].(string); ok && id != "" {
		return id, nil
	}

	id := uuid.New().String()
	session.Values[visitorKey] = id
	if err := m.store.Save(c.Request(), c.Response(), session); err != nil {
		return "", fmt.Errorf("failed to save session: %w", err)
	}
	return id, nil
}
