// Package sessioncookie centralizes the anonymous draw session cookie.
package sessioncookie

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/louisbranch/luckydraw/internal/services/web/platform/requestmeta"
)

// Name is the canonical web session cookie name.
const Name = "luckydraw_session"

// Read returns the session id when the cookie holds a well-formed UUID.
func Read(r *http.Request) (string, bool) {
	if r == nil {
		return "", false
	}
	cookie, err := r.Cookie(Name)
	if err != nil || cookie == nil {
		return "", false
	}
	id, err := uuid.Parse(strings.TrimSpace(cookie.Value))
	if err != nil {
		return "", false
	}
	return id.String(), true
}

// WriteWithPolicy sets the session cookie for the current request context.
func WriteWithPolicy(w http.ResponseWriter, r *http.Request, sessionID string, policy requestmeta.SchemePolicy) {
	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     Name,
		Value:    strings.TrimSpace(sessionID),
		Path:     "/",
		HttpOnly: true,
		Secure:   requestmeta.IsHTTPSWithPolicy(r, policy),
		SameSite: http.SameSiteLaxMode,
	})
}

// Ensure returns the request's session id, issuing a fresh one when the
// cookie is missing or malformed. The second result reports whether a new
// id was issued.
func Ensure(w http.ResponseWriter, r *http.Request, policy requestmeta.SchemePolicy) (string, bool) {
	if id, ok := Read(r); ok {
		return id, false
	}
	id := uuid.NewString()
	WriteWithPolicy(w, r, id, policy)
	return id, true
}
