package handler

import (
	"net/http"

	"sabrosa/internal/repositories"
	"sabrosa/models"
)

// SessionCookieName identifies the visitor's in-memory session.
const SessionCookieName = "session_id"

// resolveSession attaches the request to its session, minting a new session
// (and cookie) when the visitor has none or their session is gone after a
// restart.
func resolveSession(w http.ResponseWriter, r *http.Request, sessions repositories.SessionRepositoryInterface) *models.Session {
	var id string
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		id = cookie.Value
	}

	session := sessions.GetOrCreate(id)
	if session.ID != id {
		http.SetCookie(w, &http.Cookie{
			Name:     SessionCookieName,
			Value:    session.ID,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return session
}
