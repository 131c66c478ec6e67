// internal/handlers/session.go
package handlers

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/jmallory/wordwheel/internal/auth"
)

const sessionCookieName = "session_token"

// EnsureEphemeralSession resolves the connection identity for a request.
// A valid session cookie yields the identity it carries; otherwise a fresh
// uuid is minted, signed, and set as a cookie so reloads keep the same
// identity. Must run before the websocket upgrade, while headers can still
// be written.
func EnsureEphemeralSession(w http.ResponseWriter, r *http.Request) (uuid.UUID, error) {
	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		if sub, err := auth.VerifySessionToken(cookie.Value); err == nil {
			if id, err := uuid.Parse(sub); err == nil {
				return id, nil
			}
		}
		// Bad or stale cookie (e.g. signed by a previous process run);
		// fall through and mint a new identity.
	}

	id := uuid.New()
	token, err := auth.CreateSessionToken(id.String())
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create session token: %w", err)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		HttpOnly: true,
		Path:     "/",
	})
	return id, nil
}
